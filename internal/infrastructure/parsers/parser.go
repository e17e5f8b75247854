// Package parsers provides parsers for importing lexicon entries from
// various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntry represents a lexicon entry parsed from an external source
// before validation.
type RawEntry struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Locale   string `json:"locale,omitempty"`
	Severity int    `json:"severity"`
	Note     string `json:"note,omitempty"`
	LineNum  int    `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing lexicon entries from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawEntry, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
