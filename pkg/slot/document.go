package slot

import "time"

// Document is the shape of a slot at the serialization boundary: the slot
// header and its flat sequence of records. Every codec encodes and decodes
// exactly this.
type Document struct {
	ID         int             `json:"id" yaml:"id"`
	PrettyName string          `json:"prettyName,omitempty" yaml:"prettyName,omitempty"`
	SavedAt    time.Time       `json:"savedAt" yaml:"savedAt"`
	Version    int             `json:"version" yaml:"version"`
	Variables  []SavedVariable `json:"variables" yaml:"variables"`
}

// Document prepares the flat sequence and returns it with the slot header.
func (s *GameSlot) Document() Document {
	return Document{
		ID:         s.id,
		PrettyName: s.prettyName,
		SavedAt:    s.savedAt,
		Version:    s.version,
		Variables:  s.PrepareForSerialization(),
	}
}
