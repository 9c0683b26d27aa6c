package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides add lanes the scraped table does not list, e.g.
//
//	lanes:
//	  Garen: [Mid]
//	  Yuumi: [Bot]
type Overrides struct {
	Lanes map[string][]string `yaml:"lanes"`
}

// DecodeOverrides reads an overrides document. Unknown keys are rejected and an
// empty document yields empty overrides.
func DecodeOverrides(r io.Reader) (*Overrides, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var o Overrides
	if err := dec.Decode(&o); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}
	return &o, nil
}

func LoadOverrides(path string) (*Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open overrides %s: %w", path, err)
	}
	defer f.Close()
	return DecodeOverrides(f)
}
