package codec

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/savestate/pkg/slot"
	"gopkg.in/yaml.v3"
)

// JSONCodec encodes documents as indented JSON.
type JSONCodec struct{}

func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Format() string {
	return FormatJSON
}

func (c *JSONCodec) Encode(doc slot.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}

func (c *JSONCodec) Decode(b []byte) (slot.Document, error) {
	var doc slot.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return slot.Document{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc, nil
}

// YAMLCodec encodes documents as YAML.
type YAMLCodec struct{}

func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Format() string {
	return FormatYAML
}

func (c *YAMLCodec) Encode(doc slot.Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

func (c *YAMLCodec) Decode(b []byte) (slot.Document, error) {
	var doc slot.Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return slot.Document{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return doc, nil
}
