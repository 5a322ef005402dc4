package session

import "errors"

// ErrUnsupportedVersion is returned by Continue for slots written by a newer
// slot schema than the host's current version.
var ErrUnsupportedVersion = errors.New("unsupported slot version")
