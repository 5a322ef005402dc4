package save

import (
	"errors"

	"github.com/cbodonnell/savestate/pkg/variant"
)

var (
	// ErrInvalidArgument is returned when a save is attempted without an
	// active slot or with a blank variable name.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrKeyExists is returned when overwriting is disabled and the key
	// already holds a value.
	ErrKeyExists = errors.New("key already exists")
	// ErrNotFound is returned when there is no active slot or no value
	// stored under the key.
	ErrNotFound = errors.New("not found")
	// ErrTypeMismatch is returned when the requested type cannot be stored
	// or differs from the stored kind.
	ErrTypeMismatch = variant.ErrTypeMismatch
)
