// Package catalog provides the built-in container templates.
//
// The templates live in an embedded YAML document that is parsed once per
// process into an immutable table. Callers receive copies, so the table
// itself never changes after loading.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/stowage/internal/inventory"
	"github.com/shinji-kodama/stowage/internal/model"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Kind is a container template.
type Kind struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Capacity    model.Amount        `yaml:"capacity"`
	Reserved    model.Amount        `yaml:"reserved"`
	Tags        []string            `yaml:"tags"`
	Accept      inventory.TagFilter `yaml:"accept"`
}

// New builds an empty container of this kind.
func (k Kind) New(name string) (*inventory.Container, error) {
	return inventory.NewContainer(name, k.Capacity, k.Reserved,
		inventory.WithContainerTags(k.Tags...),
		inventory.WithAccept(k.Accept),
	)
}

type document struct {
	Kinds []Kind `yaml:"kinds"`
}

var (
	loadOnce sync.Once
	kinds    []Kind
	byName   map[string]Kind
	loadErr  error
)

func load() {
	loadOnce.Do(func() {
		kinds, byName, loadErr = parse(catalogYAML)
	})
}

// parse decodes and validates a catalog document. Every kind must build
// a valid container.
func parse(data []byte) ([]Kind, map[string]Kind, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	index := make(map[string]Kind, len(doc.Kinds))
	for i, k := range doc.Kinds {
		k.Name = strings.ToLower(strings.TrimSpace(k.Name))
		k.Accept = k.Accept.Normalize()
		if _, dup := index[k.Name]; dup {
			return nil, nil, fmt.Errorf("%w: catalog kind %q defined twice", model.ErrInvalidValue, k.Name)
		}
		if _, err := k.New(k.Name); err != nil {
			return nil, nil, fmt.Errorf("catalog kind %q: %w", k.Name, err)
		}
		doc.Kinds[i] = k
		index[k.Name] = k
	}

	sort.SliceStable(doc.Kinds, func(i, j int) bool { return doc.Kinds[i].Name < doc.Kinds[j].Name })
	return doc.Kinds, index, nil
}

// Kinds returns every template sorted by name.
func Kinds() ([]Kind, error) {
	load()
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Kind, len(kinds))
	for i, k := range kinds {
		out[i] = k.clone()
	}
	return out, nil
}

// Lookup returns the template called name (case-insensitive), or
// model.ErrNotFound.
func Lookup(name string) (Kind, error) {
	load()
	if loadErr != nil {
		return Kind{}, loadErr
	}
	k, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Kind{}, fmt.Errorf("%w: container kind %q (see `stowage kinds`)", model.ErrNotFound, name)
	}
	return k.clone(), nil
}

func (k Kind) clone() Kind {
	out := k
	out.Tags = append([]string(nil), k.Tags...)
	out.Accept = k.Accept.Clone()
	return out
}
