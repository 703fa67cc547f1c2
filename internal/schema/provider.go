// Package schema supplies the declared properties of behavior modules.
package schema

import (
	"fmt"
	"os"
	"sync"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"gopkg.in/yaml.v3"
)

// Provider holds property schemas keyed by behavior URI.
type Provider struct {
	mu      sync.RWMutex
	schemas map[string][]domain.PropertyDef
}

func NewProvider() *Provider {
	return &Provider{schemas: make(map[string][]domain.PropertyDef)}
}

// Set replaces the schema for key.
func (p *Provider) Set(key string, defs []domain.PropertyDef) {
	cp := make([]domain.PropertyDef, len(defs))
	copy(cp, defs)

	p.mu.Lock()
	p.schemas[key] = cp
	p.mu.Unlock()
}

// SchemaFor returns the declared properties for key, or nil if none are known.
func (p *Provider) SchemaFor(key string) []domain.PropertyDef {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.schemas[key]
}

type schemaFile struct {
	Behaviors []struct {
		URI        string               `yaml:"uri"`
		Properties []domain.PropertyDef `yaml:"properties"`
	} `yaml:"behaviors"`
}

// LoadFile reads a YAML (or JSON) schema document and sets every behavior it
// lists. Property types are not checked here; an unknown type fails when a
// use of that behavior is built.
func (p *Provider) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema file: %w", err)
	}

	var f schemaFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	for _, b := range f.Behaviors {
		if b.URI == "" {
			return 0, fmt.Errorf("schema file %s: behavior without uri", path)
		}
		p.Set(b.URI, b.Properties)
	}
	return len(f.Behaviors), nil
}
