// Package catalogue holds the list of services the consultancy offers.
package catalogue

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/northwind-labs/sitecms/pkg/debug"
)

//go:embed services.yaml
var defaultServices []byte

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Service is one offered service
type Service struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Icon        string   `yaml:"icon" json:"icon"`
	Summary     string   `yaml:"summary" json:"summary"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
}

type document struct {
	Services []Service `yaml:"services"`
}

// Parse decodes and validates a catalogue document.
func Parse(data []byte) ([]Service, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse services: %w", err)
	}
	if len(doc.Services) == 0 {
		return nil, errors.New("services catalogue is empty")
	}
	seen := make(map[string]bool, len(doc.Services))
	for i, s := range doc.Services {
		if !slugPattern.MatchString(s.Slug) {
			return nil, fmt.Errorf("service %d: invalid slug %q", i, s.Slug)
		}
		if s.Slug == "other" {
			return nil, fmt.Errorf("service %d: slug %q is reserved", i, s.Slug)
		}
		if seen[s.Slug] {
			return nil, fmt.Errorf("service %d: duplicate slug %q", i, s.Slug)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("service %q: title is required", s.Slug)
		}
		seen[s.Slug] = true
		if doc.Services[i].Features == nil {
			doc.Services[i].Features = []string{}
		}
	}
	return doc.Services, nil
}

// Catalogue is a concurrency-safe, reloadable service list.
type Catalogue struct {
	mu       sync.RWMutex
	path     string
	services []Service
	index    map[string]int
}

// New loads the embedded catalogue, replaced by the file at path when path is set.
func New(path string) (*Catalogue, error) {
	c := &Catalogue{path: path}
	if path == "" {
		services, err := Parse(defaultServices)
		if err != nil {
			return nil, err
		}
		c.set(services)
		return c, nil
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// FromServices builds a fixed catalogue, mainly for tests.
func FromServices(services []Service) *Catalogue {
	c := &Catalogue{}
	c.set(services)
	return c
}

func (c *Catalogue) set(services []Service) {
	index := make(map[string]int, len(services))
	for i, s := range services {
		index[s.Slug] = i
	}
	c.mu.Lock()
	c.services = services
	c.index = index
	c.mu.Unlock()
}

// Reload re-reads the override file. On error the current list is kept.
func (c *Catalogue) Reload() error {
	if c.path == "" {
		return nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to read services file: %w", err)
	}
	services, err := Parse(data)
	if err != nil {
		return err
	}
	c.set(services)
	debug.Info("Loaded %d services from %s", len(services), c.path)
	return nil
}

// List returns a copy of all services in file order.
func (c *Catalogue) List() []Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Get looks a service up by slug.
func (c *Catalogue) Get(slug string) (Service, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.index[slug]
	if !ok {
		return Service{}, false
	}
	return c.services[i], true
}

// Has reports whether slug names a service
func (c *Catalogue) Has(slug string) bool {
	_, ok := c.Get(slug)
	return ok
}

// Label returns the service title, or the slug itself when unknown.
func (c *Catalogue) Label(slug string) string {
	if s, ok := c.Get(slug); ok {
		return s.Title
	}
	return slug
}

// Watch reloads the catalogue whenever the override file changes, until ctx is done.
// The parent directory is watched so editors that replace the file are picked up.
func (c *Catalogue) Watch(ctx context.Context) error {
	if c.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	target, err := filepath.Abs(c.path)
	if err != nil {
		watcher.Close()
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if err := c.Reload(); err != nil {
					debug.Warning("Keeping previous services catalogue: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				debug.Error("Services watcher error: %v", err)
			}
		}
	}()

	debug.Info("Watching %s for service changes", c.path)
	return nil
}
