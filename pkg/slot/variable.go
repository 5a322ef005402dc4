package slot

import (
	"github.com/cbodonnell/savestate/pkg/ident"
	"github.com/cbodonnell/savestate/pkg/variant"
)

// SavedVariable is the persisted record of one stored value.
type SavedVariable struct {
	Owner     ident.ID          `json:"owner" yaml:"owner"`
	Name      string            `json:"name" yaml:"name"`
	Container variant.Container `json:"container" yaml:"container"`
}

func NewSavedVariable(owner ident.ID, name string, container variant.Container) SavedVariable {
	return SavedVariable{
		Owner:     owner,
		Name:      name,
		Container: container,
	}
}

// Key returns the key the record is stored under.
func (v SavedVariable) Key() SaveKey {
	return NewSaveKey(v.Owner, v.Name)
}

// Clone returns a copy with a deep-copied container.
func (v SavedVariable) Clone() SavedVariable {
	return SavedVariable{
		Owner:     v.Owner,
		Name:      v.Name,
		Container: v.Container.Clone(),
	}
}

func (v SavedVariable) Equal(other SavedVariable) bool {
	return v.Owner == other.Owner && v.Name == other.Name && v.Container.Equal(other.Container)
}
