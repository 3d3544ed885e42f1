package catalog

import (
	"fmt"
	"strings"

	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/values"
)

// linker turns declarations into classes in two passes: every class is
// declared first so members can name any class of the catalog, then classes
// are defined supertypes first.
type linker struct {
	resolver Resolver
	decls    []classDecl
	classes  []*meta.Class
	byName   map[string]*meta.Class
	index    map[*meta.Class]int
}

func newLinker(resolver Resolver, decls []classDecl) *linker {
	return &linker{
		resolver: resolver,
		decls:    decls,
		byName:   make(map[string]*meta.Class, len(decls)),
		index:    make(map[*meta.Class]int, len(decls)),
	}
}

func (k *linker) link() ([]*meta.Class, error) {
	for i := range k.decls {
		name := strings.TrimSpace(k.decls[i].Name)
		if name == "" {
			return nil, fmt.Errorf("class #%d: missing name", i+1)
		}
		if _, dup := k.byName[name]; dup {
			return nil, fmt.Errorf("duplicate class %s", name)
		}
		c := meta.Declare(name)
		k.classes = append(k.classes, c)
		k.byName[name] = c
		k.index[c] = i
	}

	order, err := k.order()
	if err != nil {
		return nil, err
	}

	for _, i := range order {
		if err := k.define(i); err != nil {
			return nil, err
		}
	}
	return k.classes, nil
}

func (k *linker) resolve(name string) (*meta.Class, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("missing type name")
	}
	if c, ok := meta.Primitive(name); ok {
		return c, nil
	}
	if c, ok := values.TypeKeyword(name); ok {
		return c, nil
	}
	if c, ok := k.byName[name]; ok {
		return c, nil
	}

	var local []*meta.Class
	for _, c := range k.classes {
		if c.SimpleName() == name {
			local = append(local, c)
		}
	}
	switch len(local) {
	case 1:
		return local[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("ambiguous type %s: %s, %s", name, local[0].Name(), local[1].Name())
	}

	if k.resolver == nil {
		return nil, fmt.Errorf("unknown type %s", name)
	}
	c, err := k.resolver.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("unknown type %s: %w", name, err)
	}
	return c, nil
}

func (k *linker) resolveAll(names []string) ([]*meta.Class, error) {
	classes := make([]*meta.Class, 0, len(names))
	for _, name := range names {
		c, err := k.resolve(name)
		if err != nil {
			return nil, err
		}
		if c == meta.Void {
			return nil, fmt.Errorf("void is not a value type")
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// supertypes returns the indexes of the catalog classes d extends or
// implements.
func (k *linker) supertypes(d classDecl) ([]int, error) {
	names := d.Implements
	if d.Extends != "" {
		names = append([]string{d.Extends}, names...)
	}

	var deps []int
	for _, name := range names {
		c, err := k.resolve(name)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", strings.TrimSpace(d.Name), err)
		}
		if i, ok := k.index[c]; ok {
			deps = append(deps, i)
		}
	}
	return deps, nil
}

// assignable is IsAssignableFrom that also sees through catalog classes not
// defined yet, following the supertypes their declarations name.
func (k *linker) assignable(target, from *meta.Class) bool {
	if target.IsAssignableFrom(from) {
		return true
	}
	i, ok := k.index[from]
	if !ok || !from.Pending() {
		return false
	}

	d := k.decls[i]
	names := d.Implements
	if d.Extends != "" {
		names = append([]string{d.Extends}, names...)
	}
	for _, name := range names {
		// order has already resolved these and ruled out cycles.
		if sup, err := k.resolve(name); err == nil && k.assignable(target, sup) {
			return true
		}
	}
	return false
}

// order sorts classes so supertypes come before subtypes, failing on cycles.
func (k *linker) order() ([]int, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(k.decls))
	order := make([]int, 0, len(k.decls))
	var path []string

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			start := 0
			for j, name := range path {
				if name == k.classes[i].Name() {
					start = j
				}
			}
			cycle := append(path[start:], k.classes[i].Name())
			return fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
		}

		state[i] = visiting
		path = append(path, k.classes[i].Name())
		deps, err := k.supertypes(k.decls[i])
		if err != nil {
			return err
		}
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		path = path[:len(path)-1]
		state[i] = done
		order = append(order, i)
		return nil
	}

	for i := range k.decls {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (k *linker) define(i int) error {
	d, c := k.decls[i], k.classes[i]
	opts, err := k.options(d)
	if err != nil {
		return fmt.Errorf("class %s: %w", c.Name(), err)
	}
	return c.Define(opts...)
}

func (k *linker) options(d classDecl) ([]meta.ClassOption, error) {
	var opts []meta.ClassOption

	switch strings.ToLower(strings.TrimSpace(d.Kind)) {
	case "", "class":
	case "interface":
		opts = append(opts, meta.AsInterface())
	default:
		return nil, fmt.Errorf("unknown kind %q", d.Kind)
	}

	mods, err := meta.ParseModifiers(d.Modifiers)
	if err != nil {
		return nil, err
	}
	opts = append(opts, meta.WithModifiers(mods))

	var super *meta.Class
	if d.Extends != "" {
		if super, err = k.resolve(d.Extends); err != nil {
			return nil, err
		}
		opts = append(opts, meta.Extends(super))
	} else if !strings.EqualFold(d.Kind, "interface") {
		super = meta.ObjectClass
	}

	ifaces, err := k.resolveAll(d.Implements)
	if err != nil {
		return nil, err
	}
	if len(ifaces) > 0 {
		opts = append(opts, meta.Implements(ifaces...))
	}

	fields, err := k.fields(d.Fields)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		opts = append(opts, meta.WithField(f))
	}

	visible := visibleFields(fields, super)

	for _, md := range d.Methods {
		m, err := k.method(md, visible)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", md.Name, err)
		}
		opts = append(opts, meta.WithMethod(m))
	}

	for n, cd := range d.Constructors {
		ctor, err := k.constructor(cd, visible)
		if err != nil {
			return nil, fmt.Errorf("constructor #%d: %w", n+1, err)
		}
		opts = append(opts, meta.WithConstructor(ctor))
	}

	return opts, nil
}

func (k *linker) fields(decls []fieldDecl) ([]*meta.Field, error) {
	fields := make([]*meta.Field, 0, len(decls))
	for _, fd := range decls {
		t, err := k.resolve(fd.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name, err)
		}
		if t == meta.Void {
			return nil, fmt.Errorf("field %s: void is not a value type", fd.Name)
		}
		mods, err := meta.ParseModifiers(fd.Modifiers)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", fd.Name, err)
		}

		var initial meta.Value
		if fd.Value != nil {
			if initial, err = values.Coerce(fd.Value, t); err != nil {
				return nil, fmt.Errorf("field %s: %w", fd.Name, err)
			}
		}

		fields = append(fields, &meta.Field{
			Name:      fd.Name,
			Type:      t,
			Modifiers: mods,
			Initial:   initial,
		})
	}
	return fields, nil
}

// visibleFields maps the names a body may touch: the class's own fields,
// then inherited ones not shadowed by them.
func visibleFields(own []*meta.Field, super *meta.Class) map[string]*meta.Field {
	visible := make(map[string]*meta.Field)
	for _, f := range own {
		visible[f.Name] = f
	}
	if super == nil {
		return visible
	}
	for _, f := range meta.ChainFields(super) {
		if _, shadowed := visible[f.Name]; !shadowed {
			visible[f.Name] = f
		}
	}
	return visible
}

func (k *linker) returnType(name string) (*meta.Class, error) {
	if name == "" || name == meta.Void.Name() {
		return nil, nil
	}
	return k.resolve(name)
}

func (k *linker) method(md methodDecl, visible map[string]*meta.Field) (*meta.Method, error) {
	mods, err := meta.ParseModifiers(md.Modifiers)
	if err != nil {
		return nil, err
	}
	params, err := k.resolveAll(md.Params)
	if err != nil {
		return nil, err
	}
	returns, err := k.returnType(md.Returns)
	if err != nil {
		return nil, err
	}

	m := &meta.Method{
		Name:      md.Name,
		Modifiers: mods,
		Params:    params,
		Returns:   returns,
	}

	hasGetter, hasConstant := md.Getter != "", md.Constant != nil
	switch {
	case hasGetter && hasConstant:
		return nil, fmt.Errorf("getter and constant are exclusive")
	case (hasGetter || hasConstant) && mods.IsAbstract():
		return nil, fmt.Errorf("abstract method cannot have a body")
	case (hasGetter || hasConstant) && returns == nil:
		return nil, fmt.Errorf("void method cannot return a value")
	case hasGetter:
		f, ok := visible[md.Getter]
		if !ok {
			return nil, fmt.Errorf("getter: unknown field %s", md.Getter)
		}
		if mods.IsStatic() && !f.Modifiers.IsStatic() {
			return nil, fmt.Errorf("static getter cannot read instance field %s", f.Name)
		}
		if !k.assignable(returns, f.Type) {
			return nil, fmt.Errorf("getter returns %s but field %s is %s", returns.Name(), f.Name, f.Type.Name())
		}
		m.Body = getterBody(f)
	case hasConstant:
		v, err := values.Coerce(md.Constant, returns)
		if err != nil {
			return nil, fmt.Errorf("constant: %w", err)
		}
		m.Body = constantBody(v)
	}

	return m, nil
}

func (k *linker) constructor(cd constructorDecl, visible map[string]*meta.Field) (*meta.Constructor, error) {
	mods, err := meta.ParseModifiers(cd.Modifiers)
	if err != nil {
		return nil, err
	}
	params, err := k.resolveAll(cd.Params)
	if err != nil {
		return nil, err
	}

	ctor := &meta.Constructor{Modifiers: mods, Params: params}
	if len(cd.Assigns) == 0 {
		return ctor, nil
	}
	if len(cd.Assigns) != len(params) {
		return nil, fmt.Errorf("%d params but %d assigns", len(params), len(cd.Assigns))
	}

	for i, name := range cd.Assigns {
		f, ok := visible[name]
		if !ok {
			return nil, fmt.Errorf("assigns unknown field %s", name)
		}
		if !k.assignable(f.Type, params[i]) {
			return nil, fmt.Errorf("parameter %d (%s) cannot be assigned to field %s (%s)",
				i, params[i].Name(), f.Name, f.Type.Name())
		}
	}
	ctor.Body = assignBody(cd.Assigns)

	return ctor, nil
}

// getterBody reads the field from the receiver. Static getters have no
// receiver and return the field's initial value.
func getterBody(f *meta.Field) meta.Body {
	return func(recv *meta.Object, _ []meta.Value) (meta.Value, error) {
		if recv == nil {
			if f.Initial != nil {
				return f.Initial, nil
			}
			return meta.ZeroValue(f.Type), nil
		}
		v, _ := recv.Get(f.Name)
		return v, nil
	}
}

func constantBody(v meta.Value) meta.Body {
	return func(*meta.Object, []meta.Value) (meta.Value, error) {
		return v, nil
	}
}

func assignBody(names []string) meta.ConstructorBody {
	return func(obj *meta.Object, args []meta.Value) error {
		for i, name := range names {
			if err := obj.Set(name, args[i]); err != nil {
				return err
			}
		}
		return nil
	}
}
