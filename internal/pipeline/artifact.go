// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pdiddy/nli-prep/internal/vocab"
)

// WriteArtifact gob-encodes v to path. Gob is the serialization format the
// downstream trainer loads the artifacts with.
func WriteArtifact(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating artifact %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encoding artifact %s: %w", path, err)
	}
	return nil
}

// ReadArtifact gob-decodes the artifact at path into v.
func ReadArtifact(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening artifact %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("decoding artifact %s: %w", path, err)
	}
	return nil
}

// writeWordDictJSON exports the word dictionary as indented JSON so the
// vocabulary can be inspected without decoding gob.
func writeWordDictJSON(path string, dict vocab.WordDict) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dict); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
