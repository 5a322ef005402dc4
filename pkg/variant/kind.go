package variant

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind tags the category of value a Variant holds.
type Kind uint8

const (
	// KindEmpty marks an empty variant, and is what KindOf reports for types
	// that cannot be stored at all.
	KindEmpty Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindBytes
	KindStrings
	KindID
	KindVector
)

var kindNames = [...]string{
	KindEmpty:   "empty",
	KindInt:     "int",
	KindFloat:   "float",
	KindBool:    "bool",
	KindString:  "string",
	KindBytes:   "bytes",
	KindStrings: "strings",
	KindID:      "id",
	KindVector:  "vector",
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return int(k) < len(kindNames)
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// ParseKind parses the text name of a kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return KindEmpty, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Kind) MarshalYAML() (interface{}, error) {
	text, err := k.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("failed to decode kind: %w", err)
	}
	return k.UnmarshalText([]byte(s))
}
