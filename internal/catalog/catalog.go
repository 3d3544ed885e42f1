// Package catalog loads class descriptors declared in TOML files.
//
// A catalog lists classes as [[class]] tables with nested [[class.field]],
// [[class.method]] and [[class.constructor]] tables. Types may name
// primitives, String, any class the Resolver knows, or any class of the same
// catalog regardless of declaration order.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/pelletier/go-toml/v2"
)

// Resolver finds classes defined outside the catalog being loaded.
type Resolver interface {
	Lookup(name string) (*meta.Class, error)
}

type document struct {
	Classes []classDecl `toml:"class"`
}

type classDecl struct {
	Name         string            `toml:"name"`
	Kind         string            `toml:"kind"`
	Modifiers    []string          `toml:"modifiers"`
	Extends      string            `toml:"extends"`
	Implements   []string          `toml:"implements"`
	Fields       []fieldDecl       `toml:"field"`
	Methods      []methodDecl      `toml:"method"`
	Constructors []constructorDecl `toml:"constructor"`
}

type fieldDecl struct {
	Name      string   `toml:"name"`
	Type      string   `toml:"type"`
	Modifiers []string `toml:"modifiers"`
	Value     any      `toml:"value"`
}

type methodDecl struct {
	Name      string   `toml:"name"`
	Modifiers []string `toml:"modifiers"`
	Params    []string `toml:"params"`
	Returns   string   `toml:"returns"`
	Getter    string   `toml:"getter"`
	Constant  any      `toml:"constant"`
}

type constructorDecl struct {
	Modifiers []string `toml:"modifiers"`
	Params    []string `toml:"params"`
	Assigns   []string `toml:"assigns"`
}

var ErrCycle = errors.New("inheritance cycle")

type Loader struct {
	resolver Resolver
	logger   *log.Logger
}

type Option func(*Loader)

func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(resolver Resolver, opts ...Option) *Loader {
	l := &Loader{
		resolver: resolver,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and links one catalog file.
func (l *Loader) LoadFile(path string) ([]*meta.Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	classes, err := l.Parse(path, data)
	if err != nil {
		return nil, err
	}

	l.logger.Info("catalog loaded", "file", path, "classes", len(classes))
	return classes, nil
}

// Parse decodes and links catalog data. source names the data in errors.
// Classes are returned in declaration order.
func (l *Loader) Parse(source string, data []byte) ([]*meta.Class, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", source, describeDecodeError(err))
	}

	classes, err := newLinker(l.resolver, doc.Classes).link()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return classes, nil
}

func describeDecodeError(err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("line %d, column %d: %w", row, col, err)
	}

	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return fmt.Errorf("unknown keys:\n%s", strictErr.String())
	}

	return err
}
