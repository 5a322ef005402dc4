package variant

import "fmt"

// Container is a named, kind-tagged variant: the unit a save slot stores.
// Its kind always equals the kind of the variant it wraps.
type Container struct {
	name  string
	kind  Kind
	value Variant
}

// NewContainer wraps v under name. It fails if kind is not v's kind.
func NewContainer(name string, kind Kind, v Variant) (Container, error) {
	if kind != v.Kind() {
		return Container{}, fmt.Errorf("%w: container %q declares %s, variant holds %s", ErrKindMismatch, name, kind, v.Kind())
	}
	return Container{name: name, kind: kind, value: v}, nil
}

// Wrap wraps v under name using v's own kind.
func Wrap(name string, v Variant) Container {
	return Container{name: name, kind: v.Kind(), value: v}
}

func (c Container) Name() string {
	return c.name
}

func (c Container) Kind() Kind {
	return c.kind
}

func (c Container) Variant() Variant {
	return c.value.Clone()
}

// Clone deep-copies the container's payload.
func (c Container) Clone() Container {
	return Container{name: c.name, kind: c.kind, value: c.value.Clone()}
}

func (c Container) Equal(other Container) bool {
	return c.name == other.name && c.kind == other.kind && c.value.Equal(other.value)
}

// Value reads the container's value as T.
func Value[T any](c Container) (T, error) {
	return As[T](c.value)
}
