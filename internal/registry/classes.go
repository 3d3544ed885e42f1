package registry

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/mabhi256/jprobe/internal/meta"
)

const SourceBuiltin = "builtin"

var (
	ErrClassNotFound  = errors.New("class not found")
	ErrAmbiguousName  = errors.New("ambiguous simple name")
	ErrDuplicateClass = errors.New("class already registered")
)

type ClassInfo struct {
	Class     *meta.Class
	Source    string // builtin, samples, a catalog path or a Go package path
	LoadOrder int    // Order in which the class was registered
}

// ClassRegistry maps qualified names to class descriptors. It is safe for
// concurrent use.
type ClassRegistry struct {
	classesByName *BaseRegistry[string, *ClassInfo]

	mu        sync.Mutex
	loadOrder int
}

// NewClassRegistry creates a registry holding the root, String and the
// primitive classes.
func NewClassRegistry() *ClassRegistry {
	cr := &ClassRegistry{
		classesByName: NewBaseRegistry[string, *ClassInfo](),
	}
	cr.bootstrap()
	return cr
}

func (cr *ClassRegistry) bootstrap() {
	for _, c := range meta.Builtins() {
		// Builtins have unique names, Register cannot fail here.
		_ = cr.Register(c, SourceBuiltin)
	}
}

// Register adds a class. Registering the same descriptor twice is a no-op;
// a different descriptor under a taken name is an error.
func (cr *ClassRegistry) Register(c *meta.Class, source string) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if existing, ok := cr.classesByName.Get(c.Name()); ok {
		if existing.Class == c {
			return nil
		}
		return fmt.Errorf("%w: %s (from %s)", ErrDuplicateClass, c.Name(), existing.Source)
	}

	cr.loadOrder++
	cr.classesByName.Add(c.Name(), &ClassInfo{
		Class:     c,
		Source:    source,
		LoadOrder: cr.loadOrder,
	})
	return nil
}

func (cr *ClassRegistry) RegisterAll(classes []*meta.Class, source string) error {
	for _, c := range classes {
		if err := cr.Register(c, source); err != nil {
			return err
		}
	}
	return nil
}

// GetByName looks a class up by qualified name only.
func (cr *ClassRegistry) GetByName(className string) (*ClassInfo, bool) {
	return cr.classesByName.Get(className)
}

// Lookup resolves a qualified name, a primitive keyword, or a simple name
// that identifies exactly one registered class.
func (cr *ClassRegistry) Lookup(name string) (*meta.Class, error) {
	name = strings.TrimSpace(name)
	if info, ok := cr.classesByName.Get(name); ok {
		return info.Class, nil
	}

	var candidates []*ClassInfo
	for _, info := range cr.classesByName.GetAll() {
		if info.Class.SimpleName() == name {
			candidates = append(candidates, info)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrClassNotFound, name)
	case 1:
		return candidates[0].Class, nil
	default:
		names := make([]string, len(candidates))
		for i, info := range candidates {
			names[i] = info.Class.Name()
		}
		slices.Sort(names)
		return nil, fmt.Errorf("%w: %s matches %s", ErrAmbiguousName, name, strings.Join(names, ", "))
	}
}

func sortByLoadOrder(classes []*ClassInfo) []*ClassInfo {
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].LoadOrder < classes[j].LoadOrder
	})

	return classes
}

// GetAllClasses returns every registered class in registration order.
func (cr *ClassRegistry) GetAllClasses() []*ClassInfo {
	all := cr.classesByName.GetAll()
	classes := make([]*ClassInfo, 0, len(all))
	for _, info := range all {
		classes = append(classes, info)
	}

	return sortByLoadOrder(classes)
}

// GetClassesBySource returns the classes registered from one source.
func (cr *ClassRegistry) GetClassesBySource(source string) []*ClassInfo {
	var classes []*ClassInfo
	for _, info := range cr.classesByName.GetAll() {
		if info.Source == source {
			classes = append(classes, info)
		}
	}

	return sortByLoadOrder(classes)
}

func (cr *ClassRegistry) Count() int {
	return cr.classesByName.Count()
}

// Clear drops everything except the builtins.
func (cr *ClassRegistry) Clear() {
	cr.mu.Lock()
	cr.classesByName.Clear()
	cr.loadOrder = 0
	cr.mu.Unlock()

	cr.bootstrap()
}
