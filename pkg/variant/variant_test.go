package variant

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		got  Kind
		want Kind
	}{
		{name: "int", got: KindOf[int](), want: KindInt},
		{name: "int64", got: KindOf[int64](), want: KindInt},
		{name: "float32", got: KindOf[float32](), want: KindFloat},
		{name: "float64", got: KindOf[float64](), want: KindFloat},
		{name: "bool", got: KindOf[bool](), want: KindBool},
		{name: "string", got: KindOf[string](), want: KindString},
		{name: "bytes", got: KindOf[[]byte](), want: KindBytes},
		{name: "strings", got: KindOf[[]string](), want: KindStrings},
		{name: "id", got: KindOf[ident.ID](), want: KindID},
		{name: "vector", got: KindOf[kinematic.Vector](), want: KindVector},
		{name: "unsupported uint8", got: KindOf[uint8](), want: KindEmpty},
		{name: "unsupported map", got: KindOf[map[string]int](), want: KindEmpty},
		{name: "unsupported interface", got: KindOf[any](), want: KindEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestAs_roundTrip(t *testing.T) {
	id := ident.FromName("E7")

	n, err := As[int](New(100))
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	n64, err := As[int64](New(100))
	require.NoError(t, err)
	assert.Equal(t, int64(100), n64)

	f, err := As[float32](New(float32(1.5)))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f)

	s, err := As[string](New("sword"))
	require.NoError(t, err)
	assert.Equal(t, "sword", s)

	gotID, err := As[ident.ID](New(id))
	require.NoError(t, err)
	assert.Equal(t, id, gotID)

	vec, err := As[kinematic.Vector](New(kinematic.Vector{X: 1, Y: -2}))
	require.NoError(t, err)
	assert.Equal(t, kinematic.Vector{X: 1, Y: -2}, vec)
}

func TestAs_mismatch(t *testing.T) {
	v := New(100)

	_, err := As[string](v)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, KindString, mismatch.Want)
	assert.Equal(t, KindInt, mismatch.Got)

	_, err = As[bool](v)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = As[uint8](v)
	assert.ErrorIs(t, err, ErrTypeMismatch)

	_, err = As[int](Empty())
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestVariant_noAliasing(t *testing.T) {
	payload := []byte{1, 2, 3}
	v := New(payload)
	payload[0] = 9

	got, err := As[[]byte](v)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)

	got[1] = 9
	again, err := As[[]byte](v)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, again)

	list := New([]string{"a", "b"})
	clone := list.Clone()
	raw := clone.value.([]string)
	raw[0] = "z"

	original, err := As[[]string](list)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, original)
}

func TestContainer(t *testing.T) {
	_, err := NewContainer("health", KindString, New(100))
	assert.ErrorIs(t, err, ErrKindMismatch)

	c, err := NewContainer("health", KindInt, New(100))
	require.NoError(t, err)
	assert.Equal(t, "health", c.Name())
	assert.Equal(t, KindInt, c.Kind())

	n, err := Value[int](c)
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	_, err = Value[string](c)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestContainer_Clone(t *testing.T) {
	c := Wrap("inventory", New([]string{"sword", "shield"}))
	clone := c.Clone()
	assert.True(t, c.Equal(clone))

	clone.value.value.([]string)[0] = "bow"

	got, err := Value[[]string](c)
	require.NoError(t, err)
	assert.Equal(t, []string{"sword", "shield"}, got)
	assert.False(t, c.Equal(clone))
}

func encodingSamples() []Variant {
	return []Variant{
		Empty(),
		New(int64(-42)),
		New(3.25),
		New(true),
		New(false),
		New("hello"),
		New([]byte{0, 1, 254, 255}),
		New([]string{"a", "", "ccc"}),
		New(ident.FromName("E7")),
		New(kinematic.Vector{X: 10.5, Y: -3}),
	}
}

func TestVariant_JSON(t *testing.T) {
	for _, v := range encodingSamples() {
		t.Run(v.Kind().String(), func(t *testing.T) {
			b, err := json.Marshal(v)
			require.NoError(t, err)

			var got Variant
			require.NoError(t, json.Unmarshal(b, &got))
			assert.True(t, v.Equal(got), "got %v want %v", got, v)
		})
	}
}

func TestVariant_YAML(t *testing.T) {
	for _, v := range encodingSamples() {
		t.Run(v.Kind().String(), func(t *testing.T) {
			b, err := yaml.Marshal(v)
			require.NoError(t, err)

			var got Variant
			require.NoError(t, yaml.Unmarshal(b, &got))
			assert.True(t, v.Equal(got), "got %v want %v", got, v)
		})
	}
}

func TestVariant_Binary(t *testing.T) {
	for _, v := range encodingSamples() {
		t.Run(v.Kind().String(), func(t *testing.T) {
			b, err := v.MarshalBinary()
			require.NoError(t, err)

			var got Variant
			require.NoError(t, got.UnmarshalBinary(b))
			assert.True(t, v.Equal(got), "got %v want %v", got, v)
		})
	}
}

func TestVariant_decodeErrors(t *testing.T) {
	var v Variant
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"kind":"complex","value":1}`), &v), ErrUnknownKind)
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"int","value":"ten"}`), &v))
	assert.Error(t, v.UnmarshalBinary(nil))
	assert.Error(t, v.UnmarshalBinary([]byte{byte(KindInt), 1, 2}))
	assert.ErrorIs(t, v.UnmarshalBinary([]byte{200}), ErrUnknownKind)
	assert.Error(t, v.UnmarshalBinary([]byte{byte(KindStrings), 3, 1, 'a'}))
}

func TestContainer_JSONRejectsKindMismatch(t *testing.T) {
	data := []byte(`{"name":"health","kind":"string","value":{"kind":"int","value":100}}`)

	var c Container
	assert.ErrorIs(t, json.Unmarshal(data, &c), ErrKindMismatch)
}

func TestContainer_YAML(t *testing.T) {
	c := Wrap("position", New(kinematic.Vector{X: 1, Y: 2}))

	b, err := yaml.Marshal(c)
	require.NoError(t, err)

	var got Container
	require.NoError(t, yaml.Unmarshal(b, &got))
	assert.True(t, c.Equal(got))
}

func TestVariant_JSONNonFiniteFloats(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "nan", value: math.NaN(), want: `{"kind":"float","value":"NaN"}`},
		{name: "positive infinity", value: math.Inf(1), want: `{"kind":"float","value":"+Inf"}`},
		{name: "negative infinity", value: math.Inf(-1), want: `{"kind":"float","value":"-Inf"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(New(tt.value))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))

			var got Variant
			require.NoError(t, json.Unmarshal(b, &got))
			f, err := As[float64](got)
			require.NoError(t, err)
			if math.IsNaN(tt.value) {
				assert.True(t, math.IsNaN(f))
			} else {
				assert.Equal(t, tt.value, f)
			}
		})
	}

	var got Variant
	assert.Error(t, json.Unmarshal([]byte(`{"kind":"float","value":"lots"}`), &got))
}
