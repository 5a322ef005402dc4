package slot

import (
	"strings"

	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cespare/xxhash/v2"
)

// SaveKey identifies one stored value: the owning entity and the variable
// name. Two keys are equal only when both parts are equal.
type SaveKey struct {
	owner ident.ID
	name  string
}

func NewSaveKey(owner ident.ID, name string) SaveKey {
	return SaveKey{owner: owner, name: name}
}

func (k SaveKey) Owner() ident.ID {
	return k.owner
}

func (k SaveKey) Name() string {
	return k.name
}

func (k SaveKey) Equal(other SaveKey) bool {
	return k == other
}

// Hash returns a hash of the key that is stable across processes.
func (k SaveKey) Hash() uint64 {
	d := xxhash.New()
	_, _ = d.Write(k.owner[:])
	_, _ = d.WriteString(k.name)
	return d.Sum64()
}

// Compare orders keys by owner, then by name.
func (k SaveKey) Compare(other SaveKey) int {
	if c := k.owner.Compare(other.owner); c != 0 {
		return c
	}
	return strings.Compare(k.name, other.name)
}

func (k SaveKey) String() string {
	return k.owner.String() + "/" + k.name
}
