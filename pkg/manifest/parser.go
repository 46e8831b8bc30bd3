package manifest

import (
	"io"
	"os"

	"github.com/thorn-jmh/errorst"
	"gopkg.in/yaml.v3"
)

// FromYAMLFile reads a YAML manifest file and returns a Manifest.
func FromYAMLFile(filePath string) (*Manifest, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errorst.NewError("failed to open manifest %s: %w", filePath, err)
	}

	defer func() {
		_ = f.Close()
	}()

	return FromYAML(f)
}

// FromYAML reads from a YAML reader and returns a Manifest.
func FromYAML(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errorst.NewError("failed to unmarshal manifest: %w", err)
	}

	return &m, nil
}
