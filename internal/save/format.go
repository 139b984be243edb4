// Package save persists blackjack rounds in three interchangeable
// formats and maintains a metadata index of saved games.
package save

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects one of the three save encodings.
type Format string

const (
	FormatJSON Format = "JSON"
	FormatXML  Format = "XML"
	FormatTXT  Format = "TXT"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatXML, FormatTXT}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatXML:
		return ".xml"
	case FormatTXT:
		return ".txt"
	}
	return ""
}

// ParseFormat maps a stored format name (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToUpper(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	case FormatTXT:
		return FormatTXT, nil
	}
	return "", fmt.Errorf("unknown save format %q", s)
}

// FormatForFilename picks the decode format from a filename extension.
func FormatForFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON, nil
	case ".xml":
		return FormatXML, nil
	case ".txt":
		return FormatTXT, nil
	}
	return "", fmt.Errorf("no save format for filename %q", name)
}
