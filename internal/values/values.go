// Package values converts loosely typed literals (TOML values, command line
// arguments, MCP tool arguments) into the Go representation the meta
// package uses for each primitive class.
package values

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/spf13/cast"
)

var ErrOutOfRange = errors.New("value out of range")

// Coerce converts v to the representation of class t. Only primitive and
// String classes take literals; any other class only accepts nil.
func Coerce(v any, t *meta.Class) (meta.Value, error) {
	if t == nil {
		return nil, fmt.Errorf("no target type")
	}
	if v == nil {
		if t.IsPrimitive() {
			return nil, fmt.Errorf("null is not a valid %s", t.Name())
		}
		return nil, nil
	}

	switch t {
	case meta.Int:
		return integer(v, math.MinInt32, math.MaxInt32, func(n int64) meta.Value { return int(n) })
	case meta.Long:
		return integer(v, math.MinInt64, math.MaxInt64, func(n int64) meta.Value { return n })
	case meta.Short:
		return integer(v, math.MinInt16, math.MaxInt16, func(n int64) meta.Value { return int16(n) })
	case meta.Byte:
		return integer(v, math.MinInt8, math.MaxInt8, func(n int64) meta.Value { return int8(n) })
	case meta.Float:
		return wrap(cast.ToFloat32E(v))
	case meta.Double:
		return wrap(cast.ToFloat64E(v))
	case meta.Boolean:
		return wrap(cast.ToBoolE(v))
	case meta.Void:
		return nil, fmt.Errorf("void takes no value")
	}

	if meta.SameClass(t, meta.StringClass) {
		return wrap(cast.ToStringE(v))
	}
	return nil, fmt.Errorf("cannot convert %v to %s", v, t.Name())
}

func wrap[T any](v T, err error) (meta.Value, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func integer(v any, lo, hi int64, convert func(int64) meta.Value) (meta.Value, error) {
	n, err := toInt64(v)
	if err != nil {
		return nil, err
	}
	if n < lo || n > hi {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, n, lo, hi)
	}
	return convert(n), nil
}

// toInt64 is cast.ToInt64E without its float truncation: floats must be
// integral and fit in an int64.
func toInt64(v any) (int64, error) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return cast.ToInt64E(v)
	}

	if math.IsNaN(f) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", v)
	}
	// 2^63 is the first float above MaxInt64.
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, fmt.Errorf("%w: %v not in [%d, %d]", ErrOutOfRange, v, int64(math.MinInt64), int64(math.MaxInt64))
	}
	return int64(f), nil
}

// TypeKeyword resolves the names accepted in a typed literal prefix:
// primitive keywords plus String.
func TypeKeyword(name string) (*meta.Class, bool) {
	if c, ok := meta.Primitive(name); ok && c != meta.Void {
		return c, true
	}
	if name == meta.StringClass.SimpleName() || name == meta.StringClass.Name() {
		return meta.StringClass, true
	}
	return nil, false
}

// Parse turns one textual argument into a value. "long:5" or "String:42"
// force a type; otherwise the type is inferred by Infer.
func Parse(raw string) (meta.Value, error) {
	if name, literal, ok := strings.Cut(raw, ":"); ok {
		if t, known := TypeKeyword(name); known {
			v, err := Coerce(literal, t)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", raw, err)
			}
			return v, nil
		}
	}
	return Infer(raw), nil
}

func ParseAll(raws []string) ([]meta.Value, error) {
	args := make([]meta.Value, 0, len(raws))
	for _, raw := range raws {
		v, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return args, nil
}

// Infer picks int, double, boolean or String from the literal's syntax.
// null yields nil, and a double-quoted literal is always a String.
func Infer(raw string) meta.Value {
	switch raw {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n >= math.MinInt32 && n <= math.MaxInt32 {
			return n
		}
		return int64(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && strings.ContainsAny(raw, ".eE") {
		return f
	}
	if s, err := strconv.Unquote(raw); err == nil {
		return s
	}
	return raw
}

// Format renders a value for display, null for nil.
func Format(v meta.Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	default:
		return cast.ToString(x)
	}
}

// Resolver finds classes that are not type keywords.
type Resolver interface {
	Lookup(name string) (*meta.Class, error)
}

// ResolveTypes maps parameter type names to classes. Keywords resolve
// without consulting r.
func ResolveTypes(r Resolver, names []string) ([]*meta.Class, error) {
	params := make([]*meta.Class, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if t, ok := TypeKeyword(name); ok {
			params = append(params, t)
			continue
		}
		c, err := r.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("parameter type %s: %w", name, err)
		}
		params = append(params, c)
	}
	return params, nil
}

// ParamTypes returns the declared parameter classes when names is non-nil,
// and otherwise infers them from args.
func ParamTypes(r Resolver, names []string, args []meta.Value) ([]*meta.Class, error) {
	if names != nil {
		return ResolveTypes(r, names)
	}
	return meta.TypesOf(args)
}
