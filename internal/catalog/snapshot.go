package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
)

// Snapshot is the serialized output of the ingest step. Names, not ids, link
// the tables together; ids are derived when a Catalog is built from it.
type Snapshot struct {
	DataDate  string          `json:"dataDate,omitempty"`
	Champions []ChampionEntry `json:"champions"`
	Skinsets  []string        `json:"skinsets"`
}

type ChampionEntry struct {
	Name     string   `json:"name"`
	Lanes    []string `json:"lanes"`
	Skinsets []string `json:"skinsets"`
}

// Normalize sorts every list by name so equal snapshots encode identically.
func (s *Snapshot) Normalize() {
	sort.Slice(s.Champions, func(i, j int) bool {
		return s.Champions[i].Name < s.Champions[j].Name
	})
	sort.Strings(s.Skinsets)
	for i := range s.Champions {
		sort.Strings(s.Champions[i].Skinsets)
	}
}

func Decode(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode catalog snapshot: %w", err)
	}
	return &snap, nil
}

func (s *Snapshot) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// LoadFile reads a snapshot written by the ingest tool.
func LoadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

func (s *Snapshot) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog %s: %w", path, err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write catalog %s: %w", path, err)
	}
	return f.Close()
}
