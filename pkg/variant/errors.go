package variant

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is matched by every failed checked read.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrKindMismatch is returned when a container's declared kind differs
	// from the kind of the variant it wraps.
	ErrKindMismatch = errors.New("container kind does not match variant kind")
	// ErrOutOfRange is returned when a stored number does not fit the
	// requested narrower type.
	ErrOutOfRange   = errors.New("value out of range")
	ErrUnknownKind  = errors.New("unknown variant kind")
)

// MismatchError describes a checked read that asked for the wrong type.
// Want is KindEmpty when the requested type is not storable at all.
type MismatchError struct {
	Type string
	Want Kind
	Got  Kind
}

func (e *MismatchError) Error() string {
	if e.Want == KindEmpty {
		return fmt.Sprintf("type mismatch: %s cannot be stored in a variant", e.Type)
	}
	return fmt.Sprintf("type mismatch: %s wants kind %s, variant holds %s", e.Type, e.Want, e.Got)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}
