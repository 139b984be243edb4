package save

import (
	"fmt"
	"strings"

	"github.com/jask/blackjack/internal/game"
)

// Encode renders a round in the given format.
func Encode(r game.Round, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return encodeJSON(r)
	case FormatXML:
		return encodeXML(r)
	case FormatTXT:
		return encodeTXT(r)
	}
	return nil, fmt.Errorf("encode: unknown format %q", f)
}

// Decode parses a round in the given format.
func Decode(data []byte, f Format) (game.Round, error) {
	switch f {
	case FormatJSON:
		return decodeJSON(data)
	case FormatXML:
		return decodeXML(data)
	case FormatTXT:
		return decodeTXT(data)
	}
	return game.Round{}, fmt.Errorf("decode: unknown format %q", f)
}

// Sniff decodes externally supplied content of unknown format. The
// ordering is a best-effort heuristic, not a content-type contract:
// content starting with '{' is tried as JSON first, '<' as XML first,
// and the line format is always the final fallback. Valid line-format
// content that happens to start with '{' therefore decodes as
// whichever attempt succeeds first; that ambiguity is accepted.
func Sniff(content string) (game.Round, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return game.Round{}, fmt.Errorf("sniff: empty content")
	}

	var errs []error
	if strings.HasPrefix(trimmed, "{") {
		r, err := decodeJSON([]byte(content))
		if err == nil {
			return r, nil
		}
		errs = append(errs, err)
	}
	if strings.HasPrefix(trimmed, "<") {
		r, err := decodeXML([]byte(content))
		if err == nil {
			return r, nil
		}
		errs = append(errs, err)
	}
	r, err := decodeTXT([]byte(content))
	if err == nil {
		return r, nil
	}
	errs = append(errs, err)
	return game.Round{}, fmt.Errorf("sniff: no format matched: %v", errs)
}
