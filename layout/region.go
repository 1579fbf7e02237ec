package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rorycl/tdlayout/address"
	"github.com/rorycl/tdlayout/config"
	"golang.org/x/exp/constraints"
	"gopkg.in/yaml.v2"
)

// Region is a single region entry as written in a configuration file.
type Region struct {
	Name string `yaml:"name" hcl:"name,label"`
	Size string `yaml:"size" hcl:"size"`
	Type string `yaml:"type" hcl:"type,optional"`
}

type yamlFile struct {
	Regions []Region `yaml:"regions"`
}

type hclFile struct {
	Regions []Region `hcl:"region,block"`
}

// Decode reads the regions from a configuration source in the syntax named
// by its Format.
func Decode(src config.Source) ([]Region, error) {
	switch src.Format {
	case config.YAML:
		var f yamlFile
		if err := yaml.UnmarshalStrict([]byte(src.Text), &f); err != nil {
			return nil, fmt.Errorf("unable to parse YAML: %w", err)
		}
		return f.Regions, nil

	case config.HCL:
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCL([]byte(src.Text), src.Path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL: %w", diags)
		}
		var f hclFile
		diags = gohcl.DecodeBody(file.Body, nil, &f)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %w", diags)
		}
		return f.Regions, nil
	}
	return nil, fmt.Errorf("unknown configuration format %d", src.Format)
}

// entry is a region with its size parsed and its name converted to a Go
// identifier.
type entry struct {
	name  string
	ident string
	size  uint64
	typ   string
}

// prepare checks the common region rules: at least one region, unique
// non-empty names and non-zero sizes.
func prepare(regions []Region) ([]entry, error) {
	if len(regions) == 0 {
		return nil, errors.New("no regions defined")
	}
	entries := make([]entry, 0, len(regions))
	seen := map[string]string{}
	for i, r := range regions {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("region %d has no name", i)
		}
		ident, err := identifier(r.Name)
		if err != nil {
			return nil, err
		}
		if prior, ok := seen[ident]; ok {
			return nil, fmt.Errorf("region %q clashes with region %q", r.Name, prior)
		}
		seen[ident] = r.Name

		if r.Size == "" {
			return nil, fmt.Errorf("region %q has no size", r.Name)
		}
		size, err := address.Parse(r.Size)
		if err != nil {
			return nil, fmt.Errorf("region %q size: %w", r.Name, err)
		}
		if size == 0 {
			return nil, fmt.Errorf("region %q has zero size", r.Name)
		}
		entries = append(entries, entry{name: r.Name, ident: ident, size: size, typ: r.Type})
	}
	return entries, nil
}

// identifier converts a region name such as "td-payload" or "Acpi Tables"
// to an exported Go identifier ("TdPayload", "AcpiTables"). Letters after
// the first of each word keep their case.
func identifier(name string) (string, error) {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !(r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	ident := b.String()
	if ident == "" || !unicode.IsLetter(rune(ident[0])) {
		return "", fmt.Errorf("region name %q does not start with a letter", name)
	}
	return ident, nil
}

// checkNames reports a generated constant name that would be declared
// twice.
func checkNames(fixed []string, entries []entry, suffixes ...string) error {
	names := map[string]bool{}
	for _, n := range fixed {
		names[n] = true
	}
	for _, e := range entries {
		for _, s := range suffixes {
			n := e.ident + s
			if names[n] {
				return fmt.Errorf("region %q generates the reserved name %s", e.name, n)
			}
			names[n] = true
		}
	}
	return nil
}

// Align rounds a up to the next multiple of b, which must be a power of two.
func Align[I constraints.Integer](a, b I) I {
	return (a + b - 1) &^ (b - 1)
}

// alignPage rounds size up to a whole page, reporting overflow.
func alignPage(size uint64) (uint64, error) {
	if size > math.MaxUint64-(address.PageSize-1) {
		return 0, fmt.Errorf("size %s overflows when aligned", address.Hex(size))
	}
	return Align(size, address.PageSize), nil
}
