// Package codec turns slot documents into bytes and back.
//
// Codecs only translate the serialization boundary of a slot (its header
// and flat sequence of records). They never deduplicate: a decoded document
// carries every record the bytes contained, and duplicate keys are resolved
// later by slot.GameSlot.RebuildFromSerialization.
package codec

import (
	"fmt"

	"github.com/cbodonnell/savestate/pkg/slot"
)

const (
	FormatJSON        = "json"
	FormatYAML        = "yaml"
	FormatFlatbuffers = "flatbuffers"
)

type Codec interface {
	// Format names the encoding; it is stored next to encoded slots so they
	// can be decoded with the matching codec.
	Format() string
	Encode(doc slot.Document) ([]byte, error)
	Decode(b []byte) (slot.Document, error)
}

// ForFormat returns the codec for a format name.
func ForFormat(format string) (Codec, error) {
	switch format {
	case FormatJSON:
		return NewJSONCodec(), nil
	case FormatYAML:
		return NewYAMLCodec(), nil
	case FormatFlatbuffers:
		return NewFlatbuffersCodec()
	default:
		return nil, fmt.Errorf("unknown codec format: %s", format)
	}
}
