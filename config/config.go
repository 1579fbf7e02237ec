package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format is the syntax of a layout configuration file.
type Format int

const (
	YAML Format = iota // also accepts JSON
	HCL
)

var formatName = map[Format]string{
	YAML: "yaml",
	HCL:  "hcl",
}

// String returns the Format name.
func (f Format) String() string {
	return formatName[f]
}

// Source is the raw content of a layout configuration file.
type Source struct {
	Path   string
	Text   string
	Format Format
}

// ParseError reports a configuration file that could not be read as text.
type ParseError struct {
	Path string
	Err  error
}

// Error fulfills the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("configuration file invalid: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatFromPath determines the configuration syntax from the file suffix.
// Files ending in ".hcl" are HCL; everything else, including ".json", is
// decoded as YAML.
func FormatFromPath(filePath string) Format {
	if strings.EqualFold(filepath.Ext(filePath), ".hcl") {
		return HCL
	}
	return YAML
}

// Load reads the configuration file at filePath as UTF-8 text.
func Load(filePath string) (*Source, error) {
	if filePath == "" {
		return nil, &ParseError{Path: filePath, Err: errors.New("no file path provided")}
	}
	s, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, &ParseError{Path: filePath, Err: errors.New("file does not exist")}
	}
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: err}
	}
	if s.IsDir() {
		return nil, &ParseError{Path: filePath, Err: errors.New("is a directory")}
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &ParseError{Path: filePath, Err: fmt.Errorf("failed to read: %w", err)}
	}
	if !utf8.Valid(content) {
		return nil, &ParseError{Path: filePath, Err: errors.New("content is not valid UTF-8")}
	}

	return &Source{
		Path:   filePath,
		Text:   string(content),
		Format: FormatFromPath(filePath),
	}, nil
}
