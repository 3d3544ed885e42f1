package meta

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindPrimitive:
		return "primitive"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Body runs a method. recv is nil for static methods.
type Body func(recv *Object, args []Value) (Value, error)

// ConstructorBody initialises a freshly allocated object.
type ConstructorBody func(obj *Object, args []Value) error

var (
	ErrNoBody         = errors.New("member has no body")
	ErrAlreadyDefined = errors.New("class already defined")
)

type Field struct {
	Name      string
	Modifiers Modifier
	Type      *Class
	Initial   Value // nil means the zero value of Type

	owner *Class
}

func (f *Field) Owner() *Class { return f.owner }

func (f *Field) clone() *Field {
	cp := *f
	return &cp
}

func (f *Field) String() string {
	return joinNonEmpty(f.Modifiers.String(), typeName(f.Type), f.Name)
}

type Method struct {
	Name      string
	Modifiers Modifier
	Params    []*Class
	Returns   *Class // nil is void
	Body      Body

	owner *Class
}

func (m *Method) Owner() *Class { return m.owner }

func (m *Method) clone() *Method {
	cp := *m
	cp.Params = slices.Clone(m.Params)
	return &cp
}

// Signature renders the name and parameter list, e.g. "add(int, int)".
func (m *Method) Signature() string {
	return FormatSignature(m.Name, m.Params)
}

func (m *Method) String() string {
	ret := "void"
	if m.Returns != nil {
		ret = m.Returns.SimpleName()
	}
	return joinNonEmpty(m.Modifiers.String(), ret, m.Signature())
}

// Matches reports whether the method has exactly this name and parameter list.
func (m *Method) Matches(name string, params []*Class) bool {
	return m.Name == name && sameParams(m.Params, params)
}

type Constructor struct {
	Modifiers Modifier
	Params    []*Class
	Body      ConstructorBody

	owner *Class
}

func (c *Constructor) Owner() *Class { return c.owner }

func (c *Constructor) clone() *Constructor {
	cp := *c
	cp.Params = slices.Clone(c.Params)
	return &cp
}

func (c *Constructor) Arity() int { return len(c.Params) }

func (c *Constructor) Signature() string {
	name := ""
	if c.owner != nil {
		name = c.owner.SimpleName()
	}
	return name + paramList(c.Params)
}

func (c *Constructor) String() string {
	return joinNonEmpty(c.Modifiers.String(), c.Signature())
}

// Class is the descriptor of a type: its own declared members plus links to
// its superclass and directly implemented interfaces. Inherited members are
// never copied in; walk Superclass for those.
type Class struct {
	name         string
	kind         Kind
	modifiers    Modifier
	super        *Class
	interfaces   []*Class
	fields       []*Field
	methods      []*Method
	constructors []*Constructor

	pending bool
}

type ClassOption func(*classBuilder)

type classBuilder struct {
	class    *Class
	superSet bool
}

// Extends sets the superclass. Classes default to ObjectClass.
func Extends(super *Class) ClassOption {
	return func(b *classBuilder) {
		b.class.super = super
		b.superSet = true
	}
}

// Implements adds directly implemented interfaces. On an interface it lists
// the interfaces it extends.
func Implements(ifaces ...*Class) ClassOption {
	return func(b *classBuilder) {
		b.class.interfaces = append(b.class.interfaces, ifaces...)
	}
}

func WithModifiers(m Modifier) ClassOption {
	return func(b *classBuilder) {
		b.class.modifiers |= m
	}
}

// AsInterface marks the class as an interface type.
func AsInterface() ClassOption {
	return func(b *classBuilder) {
		b.class.kind = KindInterface
		b.class.modifiers |= Interface | Abstract
	}
}

// WithField, WithMethod and WithConstructor store a copy of the member;
// later changes to the caller's struct do not reach the class.
func WithField(f *Field) ClassOption {
	return func(b *classBuilder) {
		b.class.fields = append(b.class.fields, f.clone())
	}
}

func WithMethod(m *Method) ClassOption {
	return func(b *classBuilder) {
		b.class.methods = append(b.class.methods, m.clone())
	}
}

func WithConstructor(c *Constructor) ClassOption {
	return func(b *classBuilder) {
		b.class.constructors = append(b.class.constructors, c.clone())
	}
}

// NewClass builds and validates a class descriptor.
func NewClass(name string, opts ...ClassOption) (*Class, error) {
	c := Declare(name)
	if err := c.Define(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Declare reserves a descriptor so members can refer to a class before it
// is defined, including the class itself. It must be completed with Define
// before it is used as a superclass, an interface or an invocation target.
func Declare(name string) *Class {
	return &Class{name: name, kind: KindClass, pending: true}
}

// Pending reports whether a declared class has not been defined yet.
func (c *Class) Pending() bool { return c.pending }

// Define completes a declared class. A failed Define leaves the class
// pending so it can be retried.
func (c *Class) Define(opts ...ClassOption) error {
	if !c.pending {
		return fmt.Errorf("class %s: %w", c.name, ErrAlreadyDefined)
	}

	b := &classBuilder{class: &Class{name: c.name, kind: KindClass}}
	for _, opt := range opts {
		opt(b)
	}

	built := b.class
	if !b.superSet && built.kind == KindClass {
		built.super = ObjectClass
	}

	if err := built.validate(c); err != nil {
		return fmt.Errorf("class %s: %w", c.name, err)
	}

	*c = *built
	for _, f := range c.fields {
		f.owner = c
	}
	for _, m := range c.methods {
		m.owner = c
	}
	for _, ctor := range c.constructors {
		ctor.owner = c
	}

	return nil
}

// MustClass is like NewClass but panics on error. Meant for package-level
// descriptors whose shape is fixed at compile time.
func MustClass(name string, opts ...ClassOption) *Class {
	c, err := NewClass(name, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// validate checks the built descriptor. self is the declared pointer the
// descriptor will be stored in.
func (c *Class) validate(self *Class) error {
	if strings.TrimSpace(c.name) == "" {
		return fmt.Errorf("empty class name")
	}
	if err := c.modifiers.Validate(); err != nil {
		return err
	}

	if c.super != nil {
		switch {
		case c.super == self || c.super.name == c.name:
			return fmt.Errorf("class cannot extend itself")
		case c.super.pending:
			return fmt.Errorf("superclass %s is not defined", c.super.name)
		case c.super.kind != KindClass:
			return fmt.Errorf("cannot extend %s %s", c.super.kind, c.super.name)
		case c.super.modifiers.IsFinal():
			return fmt.Errorf("cannot extend final class %s", c.super.name)
		}
	}
	if c.kind == KindInterface {
		if c.super != nil {
			return fmt.Errorf("interface cannot have a superclass")
		}
		if len(c.constructors) > 0 {
			return fmt.Errorf("interface cannot declare constructors")
		}
	}

	for _, iface := range c.interfaces {
		if iface == nil {
			return fmt.Errorf("nil interface")
		}
		if iface == self || iface.name == c.name {
			return fmt.Errorf("interface cannot extend itself")
		}
		if iface.pending {
			return fmt.Errorf("interface %s is not defined", iface.name)
		}
		if iface.kind != KindInterface {
			return fmt.Errorf("%s is not an interface", iface.name)
		}
	}

	fieldNames := make(map[string]bool, len(c.fields))
	for _, f := range c.fields {
		if f.Type == nil {
			return fmt.Errorf("field %s has no type", f.Name)
		}
		if fieldNames[f.Name] {
			return fmt.Errorf("duplicate field %s", f.Name)
		}
		if err := f.Modifiers.Validate(); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		fieldNames[f.Name] = true
	}

	signatures := make(map[string]bool, len(c.methods))
	for _, m := range c.methods {
		if err := checkParams(m.Params); err != nil {
			return fmt.Errorf("method %s: %w", m.Name, err)
		}
		sig := m.Signature()
		key := m.Name + paramKey(m.Params)
		if signatures[key] {
			return fmt.Errorf("duplicate method %s", sig)
		}
		if err := m.Modifiers.Validate(); err != nil {
			return fmt.Errorf("method %s: %w", sig, err)
		}
		if m.Modifiers.IsAbstract() && !c.modifiers.IsAbstract() {
			return fmt.Errorf("abstract method %s in non-abstract class", sig)
		}
		signatures[key] = true
	}

	ctorSignatures := make(map[string]bool, len(c.constructors))
	for _, ctor := range c.constructors {
		if err := checkParams(ctor.Params); err != nil {
			return fmt.Errorf("constructor: %w", err)
		}
		sig := paramList(ctor.Params)
		key := paramKey(ctor.Params)
		if ctorSignatures[key] {
			return fmt.Errorf("duplicate constructor %s", sig)
		}
		if err := ctor.Modifiers.Validate(); err != nil {
			return fmt.Errorf("constructor %s: %w", sig, err)
		}
		ctorSignatures[key] = true
	}

	return nil
}

func (c *Class) Name() string        { return c.name }
func (c *Class) SimpleName() string  { return SimpleName(c.name) }
func (c *Class) Kind() Kind          { return c.kind }
func (c *Class) Modifiers() Modifier { return c.modifiers }
func (c *Class) IsInterface() bool   { return c.kind == KindInterface }
func (c *Class) IsPrimitive() bool   { return c.kind == KindPrimitive }
func (c *Class) IsAbstract() bool    { return c.modifiers.IsAbstract() }

// Superclass returns the direct superclass, nil for the root, interfaces
// and primitives.
func (c *Class) Superclass() *Class { return c.super }

func (c *Class) Interfaces() []*Class {
	return append([]*Class(nil), c.interfaces...)
}

// DeclaredFields, DeclaredMethods and DeclaredConstructors return copies of
// the members in declaration order.
func (c *Class) DeclaredFields() []*Field {
	return cloneAll(c.fields, (*Field).clone)
}

func (c *Class) DeclaredMethods() []*Method {
	return cloneAll(c.methods, (*Method).clone)
}

func (c *Class) DeclaredConstructors() []*Constructor {
	return cloneAll(c.constructors, (*Constructor).clone)
}

func cloneAll[T any](members []*T, clone func(*T) *T) []*T {
	if members == nil {
		return nil
	}
	out := make([]*T, len(members))
	for i, m := range members {
		out[i] = clone(m)
	}
	return out
}

// DeclaredField looks up a field declared on this class only.
func (c *Class) DeclaredField(name string) (*Field, bool) {
	for _, f := range c.fields {
		if f.Name == name {
			return f.clone(), true
		}
	}
	return nil, false
}

// DeclaredMethod resolves a method declared on this class by exact name and
// parameter classes.
func (c *Class) DeclaredMethod(name string, params []*Class) (*Method, bool) {
	for _, m := range c.methods {
		if m.Matches(name, params) {
			return m.clone(), true
		}
	}
	return nil, false
}

// IsAssignableFrom reports whether a value of class other can be used where
// c is expected.
func (c *Class) IsAssignableFrom(other *Class) bool {
	if c == nil || other == nil {
		return false
	}
	if SameClass(c, other) {
		return true
	}
	if c.IsPrimitive() || other.IsPrimitive() {
		return false
	}
	if SameClass(c, ObjectClass) {
		return true
	}
	for k := other; k != nil; k = k.super {
		if SameClass(k, c) {
			return true
		}
		for _, iface := range k.interfaces {
			if interfaceExtends(iface, c) {
				return true
			}
		}
	}
	return false
}

func (c *Class) String() string {
	return joinNonEmpty(c.modifiers.String(), c.name)
}

func interfaceExtends(iface, target *Class) bool {
	if SameClass(iface, target) {
		return true
	}
	for _, parent := range iface.interfaces {
		if interfaceExtends(parent, target) {
			return true
		}
	}
	return false
}

// SameClass compares classes by identity, falling back to qualified name so
// descriptors rebuilt from the same source compare equal.
func SameClass(a, b *Class) bool {
	if a == b {
		return true
	}
	return a != nil && b != nil && a.name == b.name
}

func sameParams(a, b []*Class) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SameClass(a[i], b[i]) {
			return false
		}
	}
	return true
}

func checkParams(params []*Class) error {
	for i, p := range params {
		if p == nil {
			return fmt.Errorf("parameter %d has no type", i)
		}
	}
	return nil
}

// FormatSignature renders a member name with simple parameter type names.
func FormatSignature(name string, params []*Class) string {
	return name + paramList(params)
}

func paramList(params []*Class) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = typeName(p)
	}
	return "(" + strings.Join(names, ", ") + ")"
}

// paramKey uses qualified names so same-named types from different
// namespaces do not collide.
func paramKey(params []*Class) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.name
	}
	return "(" + strings.Join(names, ",") + ")"
}

func typeName(c *Class) string {
	if c == nil {
		return "?"
	}
	return c.SimpleName()
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
