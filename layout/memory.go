package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/rorycl/tdlayout/config"
)

// Memory region types.
var memoryTypes = []string{"Memory", "Reserved", "Acpi", "Nvs", "Unaccepted"}

// MemoryRegion is a planned region of a memory layout.
type MemoryRegion struct {
	Name  string
	Ident string
	Type  string
	Base  uint64
	Size  uint64
}

// MemoryLayout is a memory map with regions in ascending address order.
type MemoryLayout struct {
	Source  string
	Regions []MemoryRegion
	Total   uint64
}

// PlanMemory places the regions upward from address zero in the order
// given. Each region size is rounded up to a whole page. An empty type
// means "Memory".
func PlanMemory(regions []Region) (*MemoryLayout, error) {
	entries, err := prepare(regions)
	if err != nil {
		return nil, err
	}
	if err := checkNames([]string{"MemoryLayoutSize"}, entries, "Base", "Size", "Type"); err != nil {
		return nil, err
	}

	layout := &MemoryLayout{}
	for _, e := range entries {
		typ, err := memoryType(e.typ)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", e.name, err)
		}
		size, err := alignPage(e.size)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", e.name, err)
		}
		if size > math.MaxUint64-layout.Total {
			return nil, fmt.Errorf("region %q overflows the address space", e.name)
		}
		layout.Regions = append(layout.Regions, MemoryRegion{
			Name:  e.name,
			Ident: e.ident,
			Type:  typ,
			Base:  layout.Total,
			Size:  size,
		})
		layout.Total += size
	}
	return layout, nil
}

// memoryType returns the canonical spelling of a region type.
func memoryType(t string) (string, error) {
	if t == "" {
		return memoryTypes[0], nil
	}
	for _, mt := range memoryTypes {
		if strings.EqualFold(t, mt) {
			return mt, nil
		}
	}
	return "", fmt.Errorf("unknown type %q, want one of %s", t, strings.Join(memoryTypes, ", "))
}

// Memory decodes src, plans a memory layout and renders it.
func (g *Generator) Memory(src config.Source) (string, error) {
	regions, err := Decode(src)
	if err != nil {
		return "", &Error{Op: "memory", Err: err}
	}
	layout, err := PlanMemory(regions)
	if err != nil {
		return "", &Error{Op: "memory", Err: err}
	}
	layout.Source = sourceName(src)
	out, err := render(g.memory, layout)
	if err != nil {
		return "", &Error{Op: "memory", Err: err}
	}
	return out, nil
}
