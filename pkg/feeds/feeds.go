// Package feeds loads the feed registry: the list of newsletters the
// backend indexes, used to populate feed filters in both skins.
package feeds

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Feed is one entry in the registry.
type Feed struct {
	Name   string `yaml:"name"`
	Author string `yaml:"author"`
	URL    string `yaml:"url,omitempty"`
}

// registryFile is the YAML document layout.
type registryFile struct {
	Feeds []Feed `yaml:"feeds"`
}

// Registry holds the loaded feed list in file order.
type Registry struct {
	feeds []Feed
}

// Load reads the registry from path. A missing or empty registry is an
// error; the registry is required configuration.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading feed registry %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses raw YAML bytes into a Registry.
func Parse(data []byte) (*Registry, error) {
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing feed registry: %w", err)
	}

	if len(f.Feeds) == 0 {
		return nil, errors.New("feed registry contains no feeds")
	}

	for i, feed := range f.Feeds {
		if feed.Name == "" {
			return nil, fmt.Errorf("feed registry entry %d has no name", i)
		}
	}

	return &Registry{feeds: f.Feeds}, nil
}

// Feeds returns the feed list in registry order.
func (r *Registry) Feeds() []Feed {
	return r.feeds
}

// Names returns every feed name in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.feeds))
	for i, f := range r.feeds {
		names[i] = f.Name
	}
	return names
}

// Authors returns every feed author in registry order.
func (r *Registry) Authors() []string {
	authors := make([]string, len(r.feeds))
	for i, f := range r.feeds {
		authors[i] = f.Author
	}
	return authors
}
