package meta

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Value is anything passed to or returned from a member body.
type Value = any

// TypeOf infers the class of a runtime value. It fails for nil and for Go
// types with no class counterpart.
func TypeOf(v Value) (*Class, bool) {
	switch v := v.(type) {
	case int, int32:
		return Int, true
	case int64:
		return Long, true
	case int16:
		return Short, true
	case int8:
		return Byte, true
	case float32:
		return Float, true
	case float64:
		return Double, true
	case bool:
		return Boolean, true
	case string:
		return StringClass, true
	case *Object:
		if v == nil {
			return nil, false
		}
		return v.class, true
	default:
		return nil, false
	}
}

// Canonical returns v in the Go form its class uses everywhere else: int32
// becomes int. Other values are returned unchanged.
func Canonical(v Value) Value {
	if n, ok := v.(int32); ok {
		return int(n)
	}
	return v
}

// TypesOf infers the class of every value, failing on the first it cannot.
func TypesOf(values []Value) ([]*Class, error) {
	classes := make([]*Class, len(values))
	for i, v := range values {
		c, ok := TypeOf(v)
		if !ok {
			return nil, fmt.Errorf("cannot infer type of argument %d (%T)", i, v)
		}
		classes[i] = c
	}
	return classes, nil
}

// ZeroValue is the default a field of class c holds before assignment.
func ZeroValue(c *Class) Value {
	switch c {
	case Int:
		return 0
	case Long:
		return int64(0)
	case Short:
		return int16(0)
	case Byte:
		return int8(0)
	case Float:
		return float32(0)
	case Double:
		return float64(0)
	case Boolean:
		return false
	default:
		return nil
	}
}

// Accepts reports whether v may be passed where class c is expected.
func Accepts(c *Class, v Value) bool {
	if v == nil {
		return !c.IsPrimitive()
	}
	actual, ok := TypeOf(v)
	if !ok {
		return false
	}
	return c.IsAssignableFrom(actual)
}

// Object is a live instance. Its field store covers the fields of every
// class in its chain; a name redeclared by a subclass shares one slot.
type Object struct {
	class  *Class
	fields map[string]Value
}

// NewObject allocates an instance with every chain field at its initial value.
func NewObject(c *Class) *Object {
	obj := &Object{class: c, fields: make(map[string]Value)}
	lineage := Lineage(c)
	for _, k := range lineage {
		for _, f := range k.fields {
			if f.Initial != nil {
				obj.fields[f.Name] = f.Initial
			} else {
				obj.fields[f.Name] = ZeroValue(f.Type)
			}
		}
	}
	return obj
}

func (o *Object) Class() *Class { return o.class }

func (o *Object) Get(name string) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

func (o *Object) Set(name string, v Value) error {
	if _, ok := o.fields[name]; !ok {
		return fmt.Errorf("%s has no field %s", o.class.name, name)
	}
	o.fields[name] = v
	return nil
}

func (o *Object) String() string {
	names := slices.Sorted(maps.Keys(o.fields))
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%v", name, o.fields[name])
	}
	return fmt.Sprintf("%s{%s}", o.class.SimpleName(), strings.Join(parts, ", "))
}
