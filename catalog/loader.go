package catalog

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"hardware-mapper/models"
)

// File is the YAML document format for extra boards and parts
//
//	boards:
//	  - id: nano
//	    name: Arduino Nano
//	    rows: 15
//	    header: {x: 0.1, y: 0.2, w: 0.8, h: 0.1}
//	    pinMapping: {19: A0}
//	parts:
//	  - id: pir
//	    name: PIR Motion
//	    roles: [Motion]
//	    pinCount: 1
type File struct {
	Boards []models.BoardDefinition `yaml:"boards"`
	Parts  []models.PartDefinition  `yaml:"parts"`
}

// ParseFile decodes a catalog document, rejecting unknown fields
func ParseFile(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog file: %w", err)
	}
	return &f, nil
}

// Load returns the built-in catalog, extended with the definitions in path when path is not empty.
// Invalid definitions fail here, before anything is rendered.
func Load(path string) (*Catalog, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	f, err := ParseFile(data)
	if err != nil {
		return nil, err
	}

	merged, err := base.Merge(f.Boards, f.Parts)
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Catalog loaded from %s: %d boards, %d parts", path, len(merged.boards), len(merged.parts))
	return merged, nil
}
