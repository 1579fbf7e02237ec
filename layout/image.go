package layout

import (
	"fmt"

	"github.com/rorycl/tdlayout/address"
	"github.com/rorycl/tdlayout/config"
)

// ImageRegion is a planned region of a firmware image.
type ImageRegion struct {
	Name   string
	Ident  string
	Offset uint64 // from the start of the image file
	Size   uint64
	Base   uint64 // loaded address
}

// ImageLayout is a firmware image loaded so that it ends at FirmwareTop.
type ImageLayout struct {
	Source      string
	FirmwareTop uint64
	Base        uint64
	Total       uint64
	Regions     []ImageRegion
}

// PlanImage places the regions contiguously in file order. Region sizes
// must be page multiples and the image must fit below fwTop.
func PlanImage(regions []Region, fwTop uint64) (*ImageLayout, error) {
	entries, err := prepare(regions)
	if err != nil {
		return nil, err
	}
	if err := checkNames([]string{"FirmwareTop", "ImageSize", "ImageBase"}, entries, "Offset", "Size", "Base"); err != nil {
		return nil, err
	}

	layout := &ImageLayout{FirmwareTop: fwTop}
	for _, e := range entries {
		if e.typ != "" {
			return nil, fmt.Errorf("region %q: type is only valid in memory layouts", e.name)
		}
		if e.size%address.PageSize != 0 {
			return nil, fmt.Errorf("region %q size %s is not 4KB-aligned", e.name, address.Hex(e.size))
		}
		if e.size > fwTop-layout.Total {
			return nil, fmt.Errorf("region %q does not fit below firmware top %s", e.name, address.Hex(fwTop))
		}
		layout.Regions = append(layout.Regions, ImageRegion{
			Name:   e.name,
			Ident:  e.ident,
			Offset: layout.Total,
			Size:   e.size,
		})
		layout.Total += e.size
	}

	layout.Base = fwTop - layout.Total
	for i := range layout.Regions {
		layout.Regions[i].Base = layout.Base + layout.Regions[i].Offset
	}
	return layout, nil
}

// Image decodes src, plans an image layout ending at fwTop and renders it.
func (g *Generator) Image(src config.Source, fwTop uint64) (string, error) {
	regions, err := Decode(src)
	if err != nil {
		return "", &Error{Op: "image", Err: err}
	}
	layout, err := PlanImage(regions, fwTop)
	if err != nil {
		return "", &Error{Op: "image", Err: err}
	}
	layout.Source = sourceName(src)
	out, err := render(g.image, layout)
	if err != nil {
		return "", &Error{Op: "image", Err: err}
	}
	return out, nil
}
