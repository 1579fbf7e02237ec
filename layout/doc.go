// Package layout computes memory and firmware image layouts from a region
// list and renders them as Go source.
//
// A configuration lists named regions in order. Memory layouts place the
// regions upward from address zero, rounding each region up to a page.
// Image layouts place the regions contiguously in the image file and load
// the image so that it ends at the firmware top.
//
// Configurations are YAML (or JSON):
//
//	regions:
//	  - name: Bios
//	    size: 0x200000
//	    type: Reserved
//
// or HCL:
//
//	region "Bios" {
//	  size = "0x200000"
//	  type = "Reserved"
//	}
package layout
