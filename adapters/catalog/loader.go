// Package catalog loads economy snapshots from catalog files.
//
// Every format describes the same document: an ordered list of grades, each
// with a name and a material-to-price map. Material order inside a grade is
// kept as written, since the optimizer breaks ties by catalog order.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"materia-calc/core/types"
	"materia-calc/internal/errors"
	"materia-calc/internal/logging"

	"go.uber.org/zap"
)

// Loader decodes one catalog format
type Loader interface {
	// Name returns the format name
	Name() string

	// Extensions lists the file extensions handled, with leading dot
	Extensions() []string

	// Load decodes src. filename is used in error messages.
	Load(src []byte, filename string) (*types.Economy, error)
}

// Registry maps file extensions to loaders
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
	byExt   map[string]Loader
	order   []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		loaders: make(map[string]Loader),
		byExt:   make(map[string]Loader),
	}
}

// Register adds a loader
func (r *Registry) Register(l Loader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := l.Name()
	if _, exists := r.loaders[name]; exists {
		return fmt.Errorf("loader already registered: %s", name)
	}
	for _, ext := range l.Extensions() {
		if other, exists := r.byExt[strings.ToLower(ext)]; exists {
			return fmt.Errorf("extension %s already handled by %s", ext, other.Name())
		}
	}

	r.loaders[name] = l
	r.order = append(r.order, name)
	for _, ext := range l.Extensions() {
		r.byExt[strings.ToLower(ext)] = l
	}
	return nil
}

// Get returns a loader by format name
func (r *Registry) Get(name string) (Loader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.loaders[name]
	return l, ok
}

// ForPath returns the loader for a file's extension
func (r *Registry) ForPath(path string) (Loader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Formats returns registered format names in registration order
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// LoadFile reads and decodes a catalog file
func (r *Registry) LoadFile(path string) (*types.Economy, error) {
	l, ok := r.ForPath(path)
	if !ok {
		return nil, errors.InvalidInputf("unsupported catalog format %q (known: %s)",
			filepath.Ext(path), strings.Join(r.Formats(), ", "))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.TypeNotFound, err, "catalog %s", path)
		}
		return nil, errors.Wrapf(errors.TypeInternal, err, "read catalog %s", path)
	}

	economy, err := l.Load(src, path)
	if err != nil {
		return nil, err
	}

	logging.Debug("catalog loaded",
		zap.String("path", path),
		zap.String("format", l.Name()),
		zap.Int("grades", economy.Len()))
	return economy, nil
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the registry with every built-in format
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, l := range []Loader{NewJSONLoader(), NewYAMLLoader(), NewHCLLoader()} {
			if err := defaultRegistry.Register(l); err != nil {
				panic(err)
			}
		}
	})
	return defaultRegistry
}

// LoadFile decodes a catalog file with the default registry
func LoadFile(path string) (*types.Economy, error) {
	return Default().LoadFile(path)
}

// rawGrade is a decoded grade before validation
type rawGrade struct {
	Name    string
	Line    int
	Materia []rawPrice
}

type rawPrice struct {
	Name  string
	Value int64
	Line  int
}

// build validates decoded grades into an economy
func build(filename string, grades []rawGrade) (*types.Economy, error) {
	economy := types.NewEconomy()
	for _, g := range grades {
		c := types.NewCatalog()
		for _, m := range g.Materia {
			if m.Value < 0 {
				return nil, located(filename, m.Line,
					errors.InvalidInputf("grade %s: price of %q is negative", g.Name, m.Name))
			}
			if err := c.Add(m.Name, types.Price(m.Value)); err != nil {
				return nil, located(filename, m.Line, errors.Wrapf(errors.TypeInvalidInput, err, "grade %s", g.Name))
			}
		}
		if err := economy.Add(g.Name, c); err != nil {
			return nil, located(filename, g.Line, err)
		}
	}
	return economy, nil
}

// located attaches the source position to a validation error
func located(filename string, line int, err error) error {
	e, ok := err.(*errors.Error)
	if !ok {
		e = errors.Wrap(errors.TypeInvalidInput, "invalid catalog", err)
	}
	e.WithContext("file", filename)
	if line > 0 {
		e.WithContext("line", line)
	}
	return e
}
