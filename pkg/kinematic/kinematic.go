package kinematic

// Vector is a 2D position or velocity, the one aggregate kind a save slot
// stores natively.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}
