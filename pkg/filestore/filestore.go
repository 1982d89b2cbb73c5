package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const envelopeVersion = "1.0"

// Envelope wraps every persisted record with versioned metadata.
type Envelope struct {
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
}

type Metadata struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"saved_at"`
}

// Store persists one JSON envelope per key in a directory. Writes go to a
// temp file first and are swapped in with a rename so readers never observe
// a partial file.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating filestore directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) Save(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	envelope, err := json.MarshalIndent(Envelope{
		Data: data,
		Metadata: Metadata{
			Version: envelopeVersion,
			SavedAt: time.Now(),
		},
	}, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	if _, err := tmp.Write(envelope); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

// Load decodes the envelope data for key into out. Returns os.ErrNotExist
// when the key has never been saved.
func (s *Store) Load(key string, out interface{}) error {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		return err
	}
	var envelope Envelope
	if err := json.Unmarshal(content, &envelope); err != nil {
		return fmt.Errorf("decoding envelope %s: %w", key, err)
	}
	return json.Unmarshal(envelope.Data, out)
}

// Delete removes the record for key; deleting a missing key is a no-op.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ListKeys returns the keys of all stored records.
func (s *Store) ListKeys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	return keys, nil
}
