// Package variant holds type-erased values that remember their kind.
//
// A Variant is built from one of the types listed in Storable and can only be
// read back as a type that maps to the same Kind. Reads never reinterpret a
// payload: a mismatched read returns an error matching ErrTypeMismatch.
//
//	v := variant.New(int64(100))
//	n, err := variant.As[int64](v)   // 100, nil
//	_, err = variant.As[string](v)   // ErrTypeMismatch
//
// Mutable payloads ([]byte, []string) are copied on the way in and on the
// way out, so a Variant never shares memory with its callers or its clones.
package variant

import (
	"bytes"
	"fmt"
	"math"
	"slices"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/kinematic"
)

// Storable lists the static types a Variant can be built from.
type Storable interface {
	int | int64 | float32 | float64 | bool | string | []byte | []string | ident.ID | kinematic.Vector
}

// Variant holds exactly one value together with its kind. The zero Variant
// is the empty variant.
type Variant struct {
	kind  Kind
	value any
}

// Empty returns the empty variant.
func Empty() Variant {
	return Variant{}
}

// New wraps v. Integers are stored as int64 and floats as float64.
func New[T Storable](v T) Variant {
	switch x := any(v).(type) {
	case int:
		return Variant{kind: KindInt, value: int64(x)}
	case int64:
		return Variant{kind: KindInt, value: x}
	case float32:
		return Variant{kind: KindFloat, value: float64(x)}
	case float64:
		return Variant{kind: KindFloat, value: x}
	case bool:
		return Variant{kind: KindBool, value: x}
	case string:
		return Variant{kind: KindString, value: x}
	case []byte:
		return Variant{kind: KindBytes, value: bytes.Clone(x)}
	case []string:
		return Variant{kind: KindStrings, value: slices.Clone(x)}
	case ident.ID:
		return Variant{kind: KindID, value: x}
	case kinematic.Vector:
		return Variant{kind: KindVector, value: x}
	}
	panic(fmt.Sprintf("variant: unhandled type %T", v))
}

// KindOf maps a static type to the kind it is stored as. Types that cannot be
// stored map to KindEmpty.
func KindOf[T any]() Kind {
	var zero T
	switch any(zero).(type) {
	case int, int64:
		return KindInt
	case float32, float64:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindString
	case []byte:
		return KindBytes
	case []string:
		return KindStrings
	case ident.ID:
		return KindID
	case kinematic.Vector:
		return KindVector
	default:
		return KindEmpty
	}
}

// As returns the held value as T. It fails unless KindOf[T] equals the
// variant's kind.
func As[T any](v Variant) (T, error) {
	var zero T
	want := KindOf[T]()
	if want == KindEmpty || want != v.kind {
		return zero, &MismatchError{Type: fmt.Sprintf("%T", zero), Want: want, Got: v.kind}
	}

	var out any
	switch any(zero).(type) {
	case int:
		n := v.value.(int64)
		if n < math.MinInt || n > math.MaxInt {
			return zero, fmt.Errorf("%w: %d does not fit in int", ErrOutOfRange, n)
		}
		out = int(n)
	case float32:
		f := v.value.(float64)
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return zero, fmt.Errorf("%w: %g does not fit in float32", ErrOutOfRange, f)
		}
		out = float32(f)
	case []byte:
		out = bytes.Clone(v.value.([]byte))
	case []string:
		out = slices.Clone(v.value.([]string))
	default:
		out = v.value
	}
	return out.(T), nil
}

func (v Variant) Kind() Kind {
	return v.kind
}

func (v Variant) IsEmpty() bool {
	return v.kind == KindEmpty
}

// Clone returns a copy of v that shares no mutable state with it.
func (v Variant) Clone() Variant {
	switch x := v.value.(type) {
	case []byte:
		return Variant{kind: v.kind, value: bytes.Clone(x)}
	case []string:
		return Variant{kind: v.kind, value: slices.Clone(x)}
	default:
		return v
	}
}

// Equal reports whether both variants hold the same kind and value.
func (v Variant) Equal(other Variant) bool {
	if v.kind != other.kind {
		return false
	}
	switch x := v.value.(type) {
	case []byte:
		return bytes.Equal(x, other.value.([]byte))
	case []string:
		return slices.Equal(x, other.value.([]string))
	default:
		return v.value == other.value
	}
}

func (v Variant) String() string {
	if v.kind == KindEmpty {
		return "empty"
	}
	return fmt.Sprintf("%s(%v)", v.kind, v.value)
}
