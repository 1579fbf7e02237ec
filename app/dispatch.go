package app

import (
	"fmt"

	"github.com/rorycl/tdlayout/config"
)

// Layouter computes layouts from configuration sources. It is implemented
// by *layout.Generator.
type Layouter interface {
	Memory(src config.Source) (string, error)
	Image(src config.Source, fwTop uint64) (string, error)
}

// Dispatch calls the Layouter method for mode exactly once. fwTop is only
// used in ImageMode.
func Dispatch(l Layouter, mode ConfigMode, src config.Source, fwTop uint64) (string, error) {
	switch mode {
	case MemoryMode:
		return l.Memory(src)
	case ImageMode:
		return l.Image(src, fwTop)
	}
	return "", &UsageError{Msg: fmt.Sprintf("unknown config mode %d", int(mode))}
}
