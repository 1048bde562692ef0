// Package catalog provides the enumerated option sets backing the
// nationality and preferred-language fields. The defaults ship embedded in
// the binary; deployments can override them with a YAML file of the same
// shape.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

// Catalog holds the allowed values for the enumerated form fields.
type Catalog struct {
	Nationalities []string `yaml:"nationalities"`
	Languages     []string `yaml:"languages"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Load(embedded)
}

// MustDefault returns the embedded catalog or panics. The embedded document
// is compiled into the binary, so a failure here is a build defect.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded document invalid: %v", err))
	}
	return c
}

// Load parses a catalog from raw YAML.
func Load(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	if len(c.Nationalities) == 0 {
		return nil, errors.New("catalog: no nationalities defined")
	}
	if len(c.Languages) == 0 {
		return nil, errors.New("catalog: no languages defined")
	}
	return &c, nil
}

// LoadReader parses a catalog from a stream.
func LoadReader(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Load(raw)
}

// LoadFile parses a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Load(raw)
}

// HasNationality reports whether the value is an allowed nationality.
func (c *Catalog) HasNationality(value string) bool {
	return contains(c.Nationalities, value)
}

// HasLanguage reports whether the value is an allowed preferred language.
func (c *Catalog) HasLanguage(value string) bool {
	return contains(c.Languages, value)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
