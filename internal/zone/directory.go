// Package zone serves descriptive details for named travel zones from a
// JSON file mapping zone name to an arbitrary object.
package zone

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNotFound is returned when the zones file has no usable entry for a name.
var ErrNotFound = errors.New("zone not found")

// Details is the free-form description of one zone.
type Details map[string]any

// Directory looks zones up in the file at Path. The file is re-read on every
// lookup so edits show up without a restart.
type Directory struct {
	Path string
}

// NewDirectory returns a Directory reading from path.
func NewDirectory(path string) *Directory {
	return &Directory{Path: path}
}

// Lookup returns the details for name, or ErrNotFound when the file has no
// entry for it or the entry is not a non-empty object. Only the requested
// entry is decoded, so a malformed neighbour does not hide valid zones.
func (d *Directory) Lookup(name string) (Details, error) {
	b, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("reading zones file %s: %w", d.Path, err)
	}

	var zones map[string]json.RawMessage
	if err := json.Unmarshal(b, &zones); err != nil {
		return nil, fmt.Errorf("decoding zones file %s: %w", d.Path, err)
	}

	raw, ok := zones[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	var z Details
	if err := json.Unmarshal(raw, &z); err != nil || len(z) == 0 {
		return nil, fmt.Errorf("%w: %q has no details", ErrNotFound, name)
	}
	return z, nil
}
