package app

import "github.com/rorycl/tdlayout/address"

// FirmwareTop validates the optional firmware top literal raw for mode.
// Without a literal the 4GB ceiling is returned. A literal is only valid in
// ImageMode, must parse, must not exceed 4GB and must be 4KB-aligned; the
// checks are made in that order.
func FirmwareTop(mode ConfigMode, raw *string) (uint64, error) {
	if raw == nil {
		return address.Ceiling4G, nil
	}
	if mode != ImageMode {
		return 0, &UsageError{Msg: "fw_top only valid with image mode"}
	}
	v, err := address.Parse(*raw)
	if err != nil {
		return 0, err
	}
	if v > address.Ceiling4G {
		return 0, &RangeError{Value: v}
	}
	if v%address.PageSize != 0 {
		return 0, &AlignmentError{Value: v}
	}
	return v, nil
}
