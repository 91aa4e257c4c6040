package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound means no persisted state exists yet.
	ErrNotFound = errors.New("state not found")
	// ErrCorruptState means the persisted blob failed structural
	// validation and was rejected wholesale.
	ErrCorruptState = errors.New("corrupt state")
)

// Persister is the narrow storage boundary. Implementations carry no
// scheduling knowledge; the core never blocks on or fails because of
// them.
type Persister interface {
	Save(blob []byte) error
	Load() ([]byte, error)
}

// Encode serializes the state to its persisted JSON form.
func Encode(s *State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding state: %w", err)
	}
	return data, nil
}

// Decode parses and structurally validates a persisted blob. A blob
// missing the goals or trainingLogs arrays is rejected wholesale with
// ErrCorruptState rather than partially trusted.
func Decode(data []byte) (*State, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	for _, field := range []string{"goals", "trainingLogs"} {
		raw, ok := probe[field]
		if !ok {
			return nil, fmt.Errorf("%w: missing %s array", ErrCorruptState, field)
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, fmt.Errorf("%w: %s is not an array", ErrCorruptState, field)
		}
	}

	s := DefaultState()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return s, nil
}

// LoadOrDefault loads the persisted state. Absent state yields the
// default silently; a corrupt blob yields the default plus
// ErrCorruptState so the caller can surface "failed to load" without
// crashing.
func LoadOrDefault(p Persister) (*State, error) {
	blob, err := p.Load()
	if errors.Is(err, ErrNotFound) {
		return DefaultState(), nil
	}
	if err != nil {
		return DefaultState(), fmt.Errorf("loading state: %w", err)
	}
	s, err := Decode(blob)
	if err != nil {
		return DefaultState(), err
	}
	return s, nil
}

// Save encodes and persists the state.
func Save(p Persister, s *State) error {
	blob, err := Encode(s)
	if err != nil {
		return err
	}
	if err := p.Save(blob); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// FilePersister stores the blob at Path with atomic
// write-temp-rename semantics, keeping the previous version at
// Path + ".bak".
type FilePersister struct {
	Path string
}

func (f *FilePersister) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return data, nil
}

func (f *FilePersister) Save(blob []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}

	// Keep the previous version as a backup before replacing.
	if _, err := os.Stat(f.Path); err == nil {
		if err := os.Rename(f.Path, f.Path+".bak"); err != nil {
			return fmt.Errorf("backing up %s: %w", f.Path, err)
		}
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("replacing %s: %w", f.Path, err)
	}
	return nil
}
