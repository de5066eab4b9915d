package subject

import (
	"fmt"
	"strings"
)

const (
	// idSeparator joins the release name, tile index and object ID
	idSeparator = "_"

	// negativeMarker replaces every hyphen in an object ID
	negativeMarker = "NEG"
)

// TileIndex is the set of types accepted as a tile index by MakeIDStr.
type TileIndex interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~string
}

// IDOption configures MakeIDStr
type IDOption func(*idConfig)

type idConfig struct {
	releaseName    string
	hasReleaseName bool
}

// WithReleaseName prefixes the identifier with name and an underscore.
// An empty name still counts as present and yields a leading underscore.
func WithReleaseName(name string) IDOption {
	return func(cfg *idConfig) {
		cfg.releaseName = name
		cfg.hasReleaseName = true
	}
}

// MakeIDStr builds the identifier of a single subject.
//
// Integer and text tile indices produce the same output for the same digits.
// Text tile indices are not validated and are written as-is.
//
//	MakeIDStr(12345, "abc-123", WithReleaseName("Q1_R1")) // "Q1_R1_12345_abcNEG123"
//	MakeIDStr("12345", "abc-123")                         // "12345_abcNEG123"
func MakeIDStr[T TileIndex](tileIndex T, objectID string, opts ...IDOption) string {
	cfg := &idConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	prefix := ""
	if cfg.hasReleaseName {
		prefix = cfg.releaseName + idSeparator
	}
	return buildID(prefix, fmt.Sprint(tileIndex), objectID)
}

// buildID assembles an identifier from an already rendered prefix and tile index
func buildID(prefix, tileIndex, objectID string) string {
	var b strings.Builder
	b.Grow(len(prefix) + len(tileIndex) + len(idSeparator) + len(objectID) + 2*len(negativeMarker))
	b.WriteString(prefix)
	b.WriteString(tileIndex)
	b.WriteString(idSeparator)
	b.WriteString(strings.ReplaceAll(objectID, "-", negativeMarker))
	return b.String()
}
