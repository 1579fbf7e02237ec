package layout

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"io/fs"
	"path/filepath"
	"text/template"

	"github.com/rorycl/tdlayout/address"
	"github.com/rorycl/tdlayout/config"
)

// TemplatesFS holds the default templates under "templates/".
//
//go:embed templates
var TemplatesFS embed.FS

const (
	memoryTemplate = "memory.go.tmpl"
	imageTemplate  = "image.go.tmpl"
)

// Generator renders planned layouts with a pair of templates.
type Generator struct {
	memory *template.Template
	image  *template.Template
}

// NewGenerator parses the memory and image templates at the root of
// templates. Both must be present.
func NewGenerator(templates fs.FS) (*Generator, error) {
	funcs := template.FuncMap{"hex": address.Hex}
	memory, err := template.New(memoryTemplate).Funcs(funcs).ParseFS(templates, memoryTemplate)
	if err != nil {
		return nil, fmt.Errorf("memory template error: %w", err)
	}
	image, err := template.New(imageTemplate).Funcs(funcs).ParseFS(templates, imageTemplate)
	if err != nil {
		return nil, fmt.Errorf("image template error: %w", err)
	}
	return &Generator{memory: memory, image: image}, nil
}

// render executes t and formats the result as Go source.
func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template %s error: %w", t.Name(), err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("template %s did not render valid Go source: %w", t.Name(), err)
	}
	return string(out), nil
}

// sourceName is the configuration file name recorded in generated output.
func sourceName(src config.Source) string {
	if src.Path == "" {
		return "unnamed"
	}
	return filepath.Base(src.Path)
}
