// Package models loads the model registry: which LLM providers the backend
// exposes and which models each one offers. The registry only shapes the
// choices offered to the user; actual routing happens in the backend.
package models

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
)

// AutoSelection is the sentinel model choice that defers model selection to
// the backend's automatic routing. It is always offered first and is never
// sent as a concrete model name.
const AutoSelection = "Automatic Model Selection (Model Routing)"

// ProviderModels describes one provider's model lineup.
type ProviderModels struct {
	PrimaryModel    string   `yaml:"primary_model"`
	CandidateModels []string `yaml:"candidate_models"`
}

// registryFile is the YAML document layout.
type registryFile struct {
	Providers map[string]ProviderModels `yaml:"providers"`
}

// Registry maps lowercase provider names to their model lineups.
type Registry struct {
	providers map[string]ProviderModels
}

// Load reads the registry from path, failing loudly when it is missing or
// empty.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses raw YAML bytes into a Registry. Provider names are
// normalized to lowercase.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing model registry: %w", err)
	}

	if len(f.Providers) == 0 {
		return nil, errors.New("model registry contains no providers")
	}

	providers := make(map[string]ProviderModels, len(f.Providers))
	for name, cfg := range f.Providers {
		providers[strings.ToLower(name)] = cfg
	}

	return &Registry{providers: providers}, nil
}

// Providers returns the known provider names, sorted.
func (r *Registry) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ModelsFor returns the model choices for a provider: the automatic-routing
// sentinel first, then the primary model, then the candidates. An unknown
// provider still offers automatic routing.
func (r *Registry) ModelsFor(provider string) []string {
	choices := []string{AutoSelection}

	cfg, ok := r.providers[strings.ToLower(provider)]
	if !ok {
		return choices
	}

	if cfg.PrimaryModel != "" {
		choices = append(choices, cfg.PrimaryModel)
	}
	return append(choices, cfg.CandidateModels...)
}

// Normalize maps the user's model choice to the wire value: the automatic
// routing sentinel becomes empty (the payload omits the model field), and
// anything else passes through.
func Normalize(model string) string {
	if model == AutoSelection {
		return ""
	}
	return model
}
