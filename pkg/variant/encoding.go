package variant

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/kinematic"
	"gopkg.in/yaml.v3"
)

type jsonVariant struct {
	Kind  Kind            `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

func (v Variant) MarshalJSON() ([]byte, error) {
	doc := jsonVariant{Kind: v.kind}
	if v.kind != KindEmpty {
		value := v.value
		if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			value = formatNonFinite(f)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s value: %w", v.kind, err)
		}
		doc.Value = raw
	}
	return json.Marshal(doc)
}

func (v *Variant) UnmarshalJSON(data []byte) error {
	var doc jsonVariant
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal variant: %w", err)
	}
	decoded, err := decodePayload(doc.Kind, func(out any) error {
		return json.Unmarshal(doc.Value, out)
	})
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

type yamlVariant struct {
	Kind  Kind      `yaml:"kind"`
	Value yaml.Node `yaml:"value,omitempty"`
}

func (v Variant) MarshalYAML() (interface{}, error) {
	var value interface{}
	switch x := v.value.(type) {
	case []byte:
		value = base64.StdEncoding.EncodeToString(x)
	case ident.ID:
		value = x.String()
	default:
		value = x
	}
	return struct {
		Kind  Kind        `yaml:"kind"`
		Value interface{} `yaml:"value,omitempty"`
	}{Kind: v.kind, Value: value}, nil
}

func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var doc yamlVariant
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode variant: %w", err)
	}

	var decoded Variant
	var err error
	switch doc.Kind {
	case KindBytes:
		var s string
		if err = doc.Value.Decode(&s); err != nil {
			return fmt.Errorf("failed to decode bytes value: %w", err)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fmt.Errorf("failed to decode bytes value: %w", err)
		}
		decoded = New(b)
	case KindID:
		var s string
		if err = doc.Value.Decode(&s); err != nil {
			return fmt.Errorf("failed to decode id value: %w", err)
		}
		id, err := ident.Parse(s)
		if err != nil {
			return err
		}
		decoded = New(id)
	default:
		decoded, err = decodePayload(doc.Kind, doc.Value.Decode)
		if err != nil {
			return err
		}
	}
	*v = decoded
	return nil
}

// decodePayload decodes a value of the given kind with unmarshal, which
// behaves like json.Unmarshal or yaml.Node.Decode.
func decodePayload(kind Kind, unmarshal func(out any) error) (Variant, error) {
	switch kind {
	case KindEmpty:
		return Variant{}, nil
	case KindInt:
		return decodeAs[int64](kind, unmarshal)
	case KindFloat:
		return decodeFloat(unmarshal)
	case KindBool:
		return decodeAs[bool](kind, unmarshal)
	case KindString:
		return decodeAs[string](kind, unmarshal)
	case KindBytes:
		return decodeAs[[]byte](kind, unmarshal)
	case KindStrings:
		return decodeAs[[]string](kind, unmarshal)
	case KindID:
		return decodeAs[ident.ID](kind, unmarshal)
	case KindVector:
		return decodeAs[kinematic.Vector](kind, unmarshal)
	default:
		return Variant{}, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
}

func decodeAs[T Storable](kind Kind, unmarshal func(out any) error) (Variant, error) {
	var x T
	if err := unmarshal(&x); err != nil {
		return Variant{}, fmt.Errorf("failed to decode %s value: %w", kind, err)
	}
	return New(x), nil
}

// JSON has no literal for NaN and the infinities, so they are written as
// the strings "NaN", "+Inf" and "-Inf".
func formatNonFinite(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case f > 0:
		return "+Inf"
	default:
		return "-Inf"
	}
}

func decodeFloat(unmarshal func(out any) error) (Variant, error) {
	var f float64
	err := unmarshal(&f)
	if err == nil {
		return New(f), nil
	}

	var s string
	if unmarshal(&s) != nil {
		return Variant{}, fmt.Errorf("failed to decode %s value: %w", KindFloat, err)
	}
	switch s {
	case "NaN":
		return New(math.NaN()), nil
	case "+Inf":
		return New(math.Inf(1)), nil
	case "-Inf":
		return New(math.Inf(-1)), nil
	default:
		return Variant{}, fmt.Errorf("failed to decode %s value: %q is not a number", KindFloat, s)
	}
}

// MarshalBinary encodes the kind as one byte followed by a little-endian
// payload. Strings lists are a uvarint count followed by uvarint-prefixed
// elements.
func (v Variant) MarshalBinary() ([]byte, error) {
	b := []byte{byte(v.kind)}
	switch x := v.value.(type) {
	case nil:
	case int64:
		b = binary.LittleEndian.AppendUint64(b, uint64(x))
	case float64:
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(x))
	case bool:
		if x {
			b = append(b, 1)
		} else {
			b = append(b, 0)
		}
	case string:
		b = append(b, x...)
	case []byte:
		b = append(b, x...)
	case []string:
		b = binary.AppendUvarint(b, uint64(len(x)))
		for _, s := range x {
			b = binary.AppendUvarint(b, uint64(len(s)))
			b = append(b, s...)
		}
	case ident.ID:
		b = append(b, x[:]...)
	case kinematic.Vector:
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(x.X))
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(x.Y))
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, x)
	}
	return b, nil
}

func (v *Variant) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("failed to decode variant: no data")
	}
	kind, payload := Kind(data[0]), data[1:]

	fixed := func(n int) error {
		if len(payload) != n {
			return fmt.Errorf("failed to decode %s value: want %d bytes, got %d", kind, n, len(payload))
		}
		return nil
	}

	switch kind {
	case KindEmpty:
		if err := fixed(0); err != nil {
			return err
		}
		*v = Variant{}
	case KindInt:
		if err := fixed(8); err != nil {
			return err
		}
		*v = New(int64(binary.LittleEndian.Uint64(payload)))
	case KindFloat:
		if err := fixed(8); err != nil {
			return err
		}
		*v = New(math.Float64frombits(binary.LittleEndian.Uint64(payload)))
	case KindBool:
		if err := fixed(1); err != nil {
			return err
		}
		*v = New(payload[0] != 0)
	case KindString:
		*v = New(string(payload))
	case KindBytes:
		*v = New(payload)
	case KindStrings:
		list, err := decodeStrings(payload)
		if err != nil {
			return err
		}
		*v = New(list)
	case KindID:
		id, err := ident.FromBytes(payload)
		if err != nil {
			return err
		}
		*v = New(id)
	case KindVector:
		if err := fixed(16); err != nil {
			return err
		}
		*v = New(kinematic.Vector{
			X: math.Float64frombits(binary.LittleEndian.Uint64(payload[:8])),
			Y: math.Float64frombits(binary.LittleEndian.Uint64(payload[8:])),
		})
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
	return nil
}

func decodeStrings(payload []byte) ([]string, error) {
	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, fmt.Errorf("failed to decode strings value: bad count")
	}
	payload = payload[n:]
	if count > uint64(len(payload)) {
		return nil, fmt.Errorf("failed to decode strings value: count %d exceeds payload", count)
	}

	list := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		size, n := binary.Uvarint(payload)
		if n <= 0 || size > uint64(len(payload)-n) {
			return nil, fmt.Errorf("failed to decode strings value: bad element %d", i)
		}
		payload = payload[n:]
		list = append(list, string(payload[:size]))
		payload = payload[size:]
	}
	if len(payload) != 0 {
		return nil, fmt.Errorf("failed to decode strings value: %d trailing bytes", len(payload))
	}
	return list, nil
}

type jsonContainer struct {
	Name  string  `json:"name" yaml:"name"`
	Kind  Kind    `json:"kind" yaml:"kind"`
	Value Variant `json:"value" yaml:"value"`
}

func (c Container) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonContainer{Name: c.name, Kind: c.kind, Value: c.value})
}

func (c *Container) UnmarshalJSON(data []byte) error {
	var doc jsonContainer
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal container: %w", err)
	}
	decoded, err := NewContainer(doc.Name, doc.Kind, doc.Value)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}

func (c Container) MarshalYAML() (interface{}, error) {
	return jsonContainer{Name: c.name, Kind: c.kind, Value: c.value}, nil
}

func (c *Container) UnmarshalYAML(node *yaml.Node) error {
	var doc jsonContainer
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode container: %w", err)
	}
	decoded, err := NewContainer(doc.Name, doc.Kind, doc.Value)
	if err != nil {
		return err
	}
	*c = decoded
	return nil
}
