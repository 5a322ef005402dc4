// Package ident provides the identification token that names the owner of a
// saved value. IDs are UUIDs: comparable, usable as map keys and totally
// ordered by their bytes.
package ident

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// namespace scopes name-based IDs produced by FromName.
var namespace = uuid.MustParse("4b1d6f0e-61a4-4f3c-9a57-2c0f3c8e7d10")

// ID identifies an entity that owns saved values.
type ID uuid.UUID

// Nil is the zero ID.
var Nil ID

// New returns a random ID.
func New() ID {
	return ID(uuid.New())
}

// FromName returns a deterministic ID for name, so a host can give a
// long-lived entity the same identification across runs.
func FromName(name string) ID {
	return ID(uuid.NewSHA1(namespace, []byte(name)))
}

// Parse parses the canonical string form of an ID.
func Parse(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("failed to parse id %q: %w", s, err)
	}
	return ID(u), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}

// FromBytes builds an ID from its 16 raw bytes.
func FromBytes(b []byte) (ID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return Nil, fmt.Errorf("failed to read id bytes: %w", err)
	}
	return ID(u), nil
}

func (id ID) IsNil() bool {
	return id == Nil
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

// Bytes returns a copy of the raw bytes of the ID.
func (id ID) Bytes() []byte {
	b := make([]byte, len(id))
	copy(b, id[:])
	return b
}

// Compare orders IDs by their raw bytes. It returns -1, 0 or +1.
func (id ID) Compare(other ID) int {
	return bytes.Compare(id[:], other[:])
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
