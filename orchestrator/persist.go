package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const recordPrefix = "analysis-"

// FileStore keeps one directory per session under root and one JSON file
// per analysis, named so that lexical order is creation order.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore { return &FileStore{root: root} }

func (s *FileStore) sessionDir(sessionID string) (string, error) {
	if sessionID == "" || sessionID != filepath.Base(sessionID) || sessionID == "." || sessionID == ".." {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	return filepath.Join(s.root, sessionID), nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (s *FileStore) Save(_ context.Context, rec *Record) error {
	dir, err := s.sessionDir(rec.SessionID)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	ts := rec.CreatedAt.UTC().Format("20060102-150405.000000000")
	id := rec.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return writeJSON(filepath.Join(dir, recordPrefix+ts+"-"+id+".json"), rec)
}

func (s *FileStore) Latest(_ context.Context, sessionID string) (*Record, error) {
	dir, err := s.sessionDir(sessionID)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoAnalysis
	}
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), recordPrefix) && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, ErrNoAnalysis
	}
	sort.Strings(names)

	f, err := os.Open(filepath.Join(dir, names[len(names)-1]))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var rec Record
	if err := json.NewDecoder(f).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode %s: %w", names[len(names)-1], err)
	}
	return &rec, nil
}
