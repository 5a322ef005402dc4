package models

// SlotRecord is an encoded slot as stored by a repository. Data holds the
// slot document encoded with the codec named by Format; list operations
// leave it empty.
type SlotRecord struct {
	SlotID     int    `json:"slot_id"`
	PrettyName string `json:"pretty_name"`
	Version    int    `json:"version"`
	SavedAt    int64  `json:"saved_at"`
	Format     string `json:"format"`
	Data       []byte `json:"data,omitempty"`
}

// Info returns a copy of the record without its data.
func (r *SlotRecord) Info() *SlotRecord {
	return &SlotRecord{
		SlotID:     r.SlotID,
		PrettyName: r.PrettyName,
		Version:    r.Version,
		SavedAt:    r.SavedAt,
		Format:     r.Format,
	}
}
