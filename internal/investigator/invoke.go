package investigator

import (
	"fmt"
	"math"

	"github.com/mabhi256/jprobe/internal/meta"
	"golang.org/x/exp/constraints"
)

// InvokeInt calls a public method on the loaded instance and narrows its
// result to int. The method is resolved by name and by the runtime types of
// args, not by any declared signature: passing an int64 looks for a long
// parameter.
func (inv *Investigator) InvokeInt(name string, args ...meta.Value) (int, error) {
	const op = "invoke"
	if !inv.Loaded() {
		return 0, inv.fail(op, name, ErrNotLoaded, nil)
	}

	params, err := meta.TypesOf(args)
	if err != nil {
		return 0, inv.fail(op, name, ErrNoSuchMember, err)
	}

	sig := meta.FormatSignature(name, params)
	method, ok := inv.target.class.DeclaredMethod(name, params)
	if !ok {
		return 0, inv.fail(op, sig, ErrNoSuchMember, nil)
	}
	if !method.Modifiers.IsPublic() {
		return 0, inv.fail(op, sig, ErrInaccessible, fmt.Errorf("method is %s", visibility(method.Modifiers)))
	}

	result, err := inv.call(method, args)
	if err != nil {
		return 0, inv.fail(op, sig, ErrInvocation, err)
	}

	n, err := toInt(result)
	if err != nil {
		return 0, inv.fail(op, sig, ErrInvocation, err)
	}
	return n, nil
}

// CreateInstance builds a new instance of the loaded class through the public
// constructor taking argc parameters. When several public constructors share
// that arity the last declared one wins. The loaded target is left untouched.
func (inv *Investigator) CreateInstance(argc int, args ...meta.Value) (*meta.Object, error) {
	const op = "create"
	if !inv.Loaded() {
		return nil, inv.fail(op, fmt.Sprintf("<init>/%d", argc), ErrNotLoaded, nil)
	}

	class := inv.target.class
	member := fmt.Sprintf("%s/%d", class.SimpleName(), argc)

	var chosen *meta.Constructor
	for _, ctor := range class.DeclaredConstructors() {
		if ctor.Modifiers.IsPublic() && ctor.Arity() == argc {
			chosen = ctor
		}
	}
	if chosen == nil {
		return nil, inv.fail(op, member, ErrNoSuchMember, nil)
	}

	member = chosen.Signature()
	if class.IsAbstract() {
		return nil, inv.fail(op, member, ErrInvocation, fmt.Errorf("cannot instantiate abstract %s", class.Name()))
	}
	args, err := checkArgs(chosen.Params, args)
	if err != nil {
		return nil, inv.fail(op, member, ErrInvocation, err)
	}

	obj := meta.NewObject(class)
	if chosen.Body != nil {
		if err := runConstructor(chosen.Body, obj, args); err != nil {
			return nil, inv.fail(op, member, ErrInvocation, err)
		}
	}
	return obj, nil
}

// ElevateAndInvoke resolves a method by exact name and parameter classes and
// calls it on the loaded instance whatever its declared visibility.
func (inv *Investigator) ElevateAndInvoke(name string, params []*meta.Class, args ...meta.Value) (meta.Value, error) {
	const op = "elevate"
	if !inv.Loaded() {
		return nil, inv.fail(op, name, ErrNotLoaded, nil)
	}

	sig := meta.FormatSignature(name, params)
	method, ok := inv.target.class.DeclaredMethod(name, params)
	if !ok {
		return nil, inv.fail(op, sig, ErrNoSuchMember, nil)
	}

	result, err := inv.call(method, args)
	if err != nil {
		return nil, inv.fail(op, sig, ErrInvocation, err)
	}
	return result, nil
}

func (inv *Investigator) call(method *meta.Method, args []meta.Value) (meta.Value, error) {
	if method.Body == nil {
		return nil, meta.ErrNoBody
	}
	args, err := checkArgs(method.Params, args)
	if err != nil {
		return nil, err
	}

	recv := inv.target.instance
	if method.Modifiers.IsStatic() {
		recv = nil
	}
	return runMethod(method.Body, recv, args)
}

// checkArgs validates args against params and returns them in the canonical
// Go form of each parameter class, ready to hand to a body.
func checkArgs(params []*meta.Class, args []meta.Value) ([]meta.Value, error) {
	if len(params) != len(args) {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrArgumentMismatch, len(params), len(args))
	}
	normalized := make([]meta.Value, len(args))
	for i, p := range params {
		if !meta.Accepts(p, args[i]) {
			return nil, fmt.Errorf("%w: argument %d (%T) is not a %s", ErrArgumentMismatch, i, args[i], p.Name())
		}
		normalized[i] = meta.Canonical(args[i])
	}
	return normalized, nil
}

// Bodies may panic; that is contained here.
func runMethod(body meta.Body, recv *meta.Object, args []meta.Value) (result meta.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return body(recv, args)
}

func runConstructor(body meta.ConstructorBody, obj *meta.Object, args []meta.Value) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return body(obj, args)
}

func toInt(v meta.Value) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int8:
		return narrow(n)
	case int16:
		return narrow(n)
	case int32:
		return narrow(n)
	case int64:
		return narrow(n)
	case uint:
		return narrow(n)
	case uint8:
		return narrow(n)
	case uint16:
		return narrow(n)
	case uint32:
		return narrow(n)
	case uint64:
		return narrow(n)
	default:
		return 0, fmt.Errorf("%w: %v (%T)", ErrNotIntegral, v, v)
	}
}

func narrow[T constraints.Integer](n T) (int, error) {
	if n > 0 && uint64(n) > math.MaxInt {
		return 0, fmt.Errorf("%w: %d overflows int", ErrNotIntegral, n)
	}
	if n < 0 && int64(n) < math.MinInt {
		return 0, fmt.Errorf("%w: %d overflows int", ErrNotIntegral, n)
	}
	return int(n), nil
}

func visibility(m meta.Modifier) string {
	switch {
	case m.IsPrivate():
		return "private"
	case m.IsProtected():
		return "protected"
	default:
		return "package-private"
	}
}
