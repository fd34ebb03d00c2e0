package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const JSONFileName = "records.json"

type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string {
	return s.path
}

func (s *JSONStore) Load(_ context.Context) (Records, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Records{}, fmt.Errorf("read records: %w", err)
	}
	r := Empty()
	if err := json.Unmarshal(data, &r); err != nil {
		return Records{}, fmt.Errorf("decode records %s: %w", s.path, err)
	}
	if r.Records == nil {
		r.Records = []Record{}
	}
	return r, nil
}

// Save rewrites the file in full through a temporary file so a crash never
// leaves a truncated document behind.
func (s *JSONStore) Save(_ context.Context, r Records) error {
	if r.Records == nil {
		r.Records = []Record{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create records dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".records-*.json")
	if err != nil {
		return fmt.Errorf("create temp records file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close records: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace records: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
