// Package goimport derives class descriptors from Go source.
//
// Each named struct becomes a class and each named interface with methods
// becomes an interface. The first embedded struct is taken as the
// superclass, exported identifiers are public and unexported ones private.
// Methods are imported without bodies; NewT functions become public
// constructors of T.
package goimport

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/meta"
	"golang.org/x/tools/go/packages"
)

const loadMode = packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedFiles

type Importer struct {
	logger *log.Logger
}

type Option func(*Importer)

func WithLogger(logger *log.Logger) Option {
	return func(im *Importer) {
		im.logger = logger
	}
}

func New(opts ...Option) *Importer {
	im := &Importer{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import loads the packages matching patterns under dir and returns their
// classes, package by package in declaration order.
func (im *Importer) Import(ctx context.Context, dir string, patterns ...string) ([]*meta.Class, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{Context: ctx, Mode: loadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	var loadErrs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e)
		}
	})
	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("errors found while loading packages: %w", errors.Join(loadErrs...))
	}

	b := newBuilder(im.logger)
	for _, pkg := range pkgs {
		b.declare(pkg.Types)
	}
	classes, err := b.build()
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		im.logger.Info("package imported", "package", pkg.PkgPath, "classes", b.perPackage[pkg.PkgPath])
	}
	return classes, nil
}

type entry struct {
	named *types.Named
	class *meta.Class
	super *entry
}

// builder declares every eligible named type first so member types can
// refer to any class of the import set, then defines supertypes first.
type builder struct {
	logger     *log.Logger
	entries    []*entry
	byType     map[*types.TypeName]*entry
	ctors      map[*types.TypeName][]*types.Func
	perPackage map[string]int
}

func newBuilder(logger *log.Logger) *builder {
	return &builder{
		logger:     logger,
		byType:     make(map[*types.TypeName]*entry),
		ctors:      make(map[*types.TypeName][]*types.Func),
		perPackage: make(map[string]int),
	}
}

func (b *builder) declare(pkg *types.Package) {
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		switch u := named.Underlying().(type) {
		case *types.Struct:
		case *types.Interface:
			if u.NumMethods() == 0 {
				continue
			}
		default:
			continue
		}

		e := &entry{named: named, class: meta.Declare(pkg.Path() + meta.NameSeparator + tn.Name())}
		b.entries = append(b.entries, e)
		b.byType[tn] = e
		b.perPackage[pkg.Path()]++
	}

	for _, name := range scope.Names() {
		fn, ok := scope.Lookup(name).(*types.Func)
		if !ok || !strings.HasPrefix(fn.Name(), "New") {
			continue
		}
		if e := b.constructed(fn); e != nil {
			tn := e.named.Obj()
			b.ctors[tn] = append(b.ctors[tn], fn)
		}
	}
}

// constructed returns the struct entry fn constructs: fn must be named
// New<T> and return T or *T first.
func (b *builder) constructed(fn *types.Func) *entry {
	sig := fn.Type().(*types.Signature)
	if sig.Results().Len() == 0 {
		return nil
	}
	e := b.entryFor(sig.Results().At(0).Type())
	if e == nil || fn.Name() != "New"+e.named.Obj().Name() {
		return nil
	}
	if _, isStruct := e.named.Underlying().(*types.Struct); !isStruct {
		return nil
	}
	if e.named.Obj().Pkg() != fn.Pkg() {
		return nil
	}
	return e
}

func (b *builder) entryFor(t types.Type) *entry {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}
	return b.byType[named.Obj()]
}

func (b *builder) build() ([]*meta.Class, error) {
	for _, e := range b.entries {
		st, ok := e.named.Underlying().(*types.Struct)
		if !ok {
			continue
		}
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if !f.Embedded() {
				continue
			}
			if super := b.entryFor(f.Type()); super != nil {
				if _, isStruct := super.named.Underlying().(*types.Struct); isStruct {
					e.super = super
				}
				break
			}
		}
	}

	const (
		visiting = iota + 1
		done
	)
	state := make(map[*entry]int, len(b.entries))
	var visit func(e *entry) error
	visit = func(e *entry) error {
		if state[e] != 0 {
			return nil
		}
		state[e] = visiting
		if e.super != nil {
			if state[e.super] == visiting {
				b.logger.Warn("embedding cycle, superclass dropped", "class", e.class.Name(), "super", e.super.class.Name())
				e.super = nil
			} else if err := visit(e.super); err != nil {
				return err
			}
		}
		for _, iface := range b.interfacesOf(e) {
			if err := visit(iface); err != nil {
				return err
			}
		}
		state[e] = done
		return e.class.Define(b.options(e)...)
	}

	classes := make([]*meta.Class, 0, len(b.entries))
	for _, e := range b.entries {
		if err := visit(e); err != nil {
			return nil, err
		}
		classes = append(classes, e.class)
	}
	return classes, nil
}

// interfacesOf lists the imported interfaces e implements, or for an
// interface the imported interfaces it embeds.
func (b *builder) interfacesOf(e *entry) []*entry {
	var result []*entry
	if iface, ok := e.named.Underlying().(*types.Interface); ok {
		for i := 0; i < iface.NumEmbeddeds(); i++ {
			if other := b.entryFor(iface.EmbeddedType(i)); other != nil && other != e {
				result = append(result, other)
			}
		}
		return result
	}

	ptr := types.NewPointer(e.named)
	for _, other := range b.entries {
		iface, ok := other.named.Underlying().(*types.Interface)
		if !ok {
			continue
		}
		if types.Implements(e.named, iface) || types.Implements(ptr, iface) {
			result = append(result, other)
		}
	}
	return result
}

func (b *builder) options(e *entry) []meta.ClassOption {
	tn := e.named.Obj()
	opts := []meta.ClassOption{meta.WithModifiers(access(tn.Exported()))}

	ifaces := b.interfacesOf(e)
	implemented := make([]*meta.Class, 0, len(ifaces))
	for _, other := range ifaces {
		implemented = append(implemented, other.class)
	}

	if iface, ok := e.named.Underlying().(*types.Interface); ok {
		opts = append(opts, meta.AsInterface())
		if len(implemented) > 0 {
			opts = append(opts, meta.Implements(implemented...))
		}
		for i := 0; i < iface.NumExplicitMethods(); i++ {
			m := iface.ExplicitMethod(i)
			opts = append(opts, meta.WithMethod(b.method(m, meta.Public|meta.Abstract)))
		}
		return opts
	}

	if e.super != nil {
		opts = append(opts, meta.Extends(e.super.class))
	}
	if len(implemented) > 0 {
		opts = append(opts, meta.Implements(implemented...))
	}

	st := e.named.Underlying().(*types.Struct)
	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		if f.Name() == "_" {
			continue
		}
		if f.Embedded() && e.super != nil && b.entryFor(f.Type()) == e.super {
			continue
		}
		opts = append(opts, meta.WithField(&meta.Field{
			Name:      f.Name(),
			Type:      b.classOf(f.Type()),
			Modifiers: access(f.Exported()),
		}))
	}

	for i := 0; i < e.named.NumMethods(); i++ {
		m := e.named.Method(i)
		opts = append(opts, meta.WithMethod(b.method(m, access(m.Exported()))))
	}

	for _, fn := range b.ctors[tn] {
		sig := fn.Type().(*types.Signature)
		opts = append(opts, meta.WithConstructor(&meta.Constructor{
			Modifiers: meta.Public,
			Params:    b.params(sig),
		}))
	}

	return opts
}

func (b *builder) method(fn *types.Func, mods meta.Modifier) *meta.Method {
	sig := fn.Type().(*types.Signature)
	m := &meta.Method{
		Name:      fn.Name(),
		Modifiers: mods,
		Params:    b.params(sig),
	}
	if sig.Results().Len() > 0 {
		m.Returns = b.classOf(sig.Results().At(0).Type())
	}
	return m
}

func (b *builder) params(sig *types.Signature) []*meta.Class {
	params := make([]*meta.Class, sig.Params().Len())
	for i := range params {
		params[i] = b.classOf(sig.Params().At(i).Type())
	}
	return params
}

// classOf maps a Go type to a class: basic kinds to primitives, imported
// named types (through one pointer) to their class, anything else to the
// root class.
func (b *builder) classOf(t types.Type) *meta.Class {
	if e := b.entryFor(t); e != nil {
		return e.class
	}
	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return meta.ObjectClass
	}
	switch basic.Kind() {
	case types.Int, types.Int32, types.Uint16, types.Uint32, types.Uint:
		return meta.Int
	case types.Int64, types.Uint64, types.Uintptr:
		return meta.Long
	case types.Int16:
		return meta.Short
	case types.Int8, types.Uint8:
		return meta.Byte
	case types.Float32:
		return meta.Float
	case types.Float64:
		return meta.Double
	case types.Bool:
		return meta.Boolean
	case types.String:
		return meta.StringClass
	default:
		return meta.ObjectClass
	}
}

func access(exported bool) meta.Modifier {
	if exported {
		return meta.Public
	}
	return meta.Private
}
