package app

import (
	"fmt"
	"strings"
)

// ConfigMode selects the layout computed from a configuration file.
type ConfigMode int

const (
	InvalidMode ConfigMode = iota
	MemoryMode
	ImageMode
)

var modeName = map[ConfigMode]string{
	InvalidMode: "invalid",
	MemoryMode:  "memory",
	ImageMode:   "image",
}

// String returns the ConfigMode name as used on the command line.
func (m ConfigMode) String() string {
	return modeName[m]
}

// ParseMode converts a command line config type to a ConfigMode.
func ParseMode(s string) (ConfigMode, error) {
	switch strings.ToLower(s) {
	case "memory":
		return MemoryMode, nil
	case "image":
		return ImageMode, nil
	}
	return InvalidMode, &UsageError{Msg: fmt.Sprintf("config_type must be memory or image, got %q", s)}
}
