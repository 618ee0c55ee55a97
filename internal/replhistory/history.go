// Package replhistory persists REPL input lines across sessions. This
// is shell-style convenience for the CLI, not language state: the
// interpreter never reads it back.
package replhistory

import (
	"os"

	"github.com/fxamacker/cbor/v2"
)

// History is an ordered list of accepted REPL lines, oldest first.
type History struct {
	Lines []string `cbor:"lines"`
}

// Load reads a CBOR-encoded history file. A missing file yields an
// empty History, not an error.
func Load(path string) (*History, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &History{}, nil
	}
	if err != nil {
		return nil, err
	}

	var h History
	if err := cbor.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Append records line in memory; it does not write to disk (call Save
// when that's wanted).
func (h *History) Append(line string) {
	h.Lines = append(h.Lines, line)
}

// encMode produces deterministic (canonical) CBOR output, the same
// encoding discipline the teacher's plan-document serializer uses, so
// two saves of identical history bytes are identical on disk.
var encMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(err) // cbor.CanonicalEncOptions() is always valid
	}
	return mode
}()

// Save writes the history to path as canonical CBOR.
func (h *History) Save(path string) error {
	data, err := encMode.Marshal(h)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
