// Package samples holds built-in classes with executable bodies so every
// surface has something to investigate without a catalog.
package samples

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mabhi256/jprobe/internal/meta"
)

const Source = "samples"

const pkg = "jprobe.samples."

var ErrDivideByZero = errors.New("divide by zero")

var Named = meta.MustClass(pkg+"Named",
	meta.AsInterface(),
	meta.WithModifiers(meta.Public),
	meta.WithMethod(&meta.Method{Name: "name", Modifiers: meta.Public | meta.Abstract, Returns: meta.StringClass}),
)

var Calculator = meta.MustClass(pkg+"Calculator",
	meta.WithModifiers(meta.Public),
	meta.WithField(&meta.Field{Name: "PI", Type: meta.Double, Modifiers: meta.Public | meta.Static | meta.Final, Initial: 3.14159}),
	meta.WithField(&meta.Field{Name: "MAX", Type: meta.Int, Modifiers: meta.Public | meta.Static | meta.Final, Initial: 1 << 20}),
	meta.WithField(&meta.Field{Name: "memory", Type: meta.Int, Modifiers: meta.Private}),
	meta.WithMethod(&meta.Method{
		Name: "add", Modifiers: meta.Public, Params: ints(2), Returns: meta.Int,
		Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) {
			return args[0].(int) + args[1].(int), nil
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "subtract", Modifiers: meta.Public, Params: ints(2), Returns: meta.Int,
		Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) {
			return args[0].(int) - args[1].(int), nil
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "divide", Modifiers: meta.Public, Params: ints(2), Returns: meta.Int,
		Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) {
			if args[1].(int) == 0 {
				return nil, ErrDivideByZero
			}
			return args[0].(int) / args[1].(int), nil
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "square", Modifiers: meta.Public, Params: []*meta.Class{meta.Long}, Returns: meta.Long,
		Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) {
			n := args[0].(int64)
			return n * n, nil
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "store", Modifiers: meta.Public, Params: ints(1), Returns: meta.Int,
		Body: func(recv *meta.Object, args []meta.Value) (meta.Value, error) {
			return args[0], recv.Set("memory", args[0])
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "recall", Modifiers: meta.Private, Returns: meta.Int,
		Body: func(recv *meta.Object, _ []meta.Value) (meta.Value, error) {
			v, _ := recv.Get("memory")
			return v, nil
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "secret", Modifiers: meta.Private, Returns: meta.StringClass,
		Body: func(*meta.Object, []meta.Value) (meta.Value, error) {
			return "you found the secret", nil
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "version", Modifiers: meta.Public | meta.Static, Returns: meta.Int,
		Body: func(*meta.Object, []meta.Value) (meta.Value, error) { return 3, nil },
	}),
	meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public}),
	meta.WithConstructor(&meta.Constructor{
		Modifiers: meta.Public, Params: ints(1),
		Body: func(obj *meta.Object, args []meta.Value) error {
			return obj.Set("memory", args[0])
		},
	}),
)

var Animal = meta.MustClass(pkg+"Animal",
	meta.WithModifiers(meta.Public|meta.Abstract),
	meta.Implements(Named),
	meta.WithField(&meta.Field{Name: "name", Type: meta.StringClass, Modifiers: meta.Protected, Initial: "animal"}),
	meta.WithField(&meta.Field{Name: "legs", Type: meta.Int, Modifiers: meta.Protected, Initial: 4}),
	meta.WithMethod(&meta.Method{Name: "sound", Modifiers: meta.Public | meta.Abstract, Returns: meta.StringClass}),
	meta.WithMethod(&meta.Method{Name: "legs", Modifiers: meta.Public, Returns: meta.Int, Body: getter("legs")}),
	meta.WithMethod(&meta.Method{Name: "name", Modifiers: meta.Public, Returns: meta.StringClass, Body: getter("name")}),
	meta.WithConstructor(&meta.Constructor{Modifiers: meta.Protected}),
)

var Dog = meta.MustClass(pkg+"Dog",
	meta.WithModifiers(meta.Public),
	meta.Extends(Animal),
	// Redeclares name from Animal.
	meta.WithField(&meta.Field{Name: "name", Type: meta.StringClass, Modifiers: meta.Private, Initial: "dog"}),
	meta.WithField(&meta.Field{Name: "tricks", Type: meta.Int, Modifiers: meta.Private}),
	meta.WithMethod(&meta.Method{
		Name: "sound", Modifiers: meta.Public, Returns: meta.StringClass,
		Body: func(*meta.Object, []meta.Value) (meta.Value, error) { return "woof", nil },
	}),
	meta.WithMethod(&meta.Method{Name: "tricks", Modifiers: meta.Public, Returns: meta.Int, Body: getter("tricks")}),
	meta.WithMethod(&meta.Method{
		Name: "learn", Modifiers: meta.Public, Params: []*meta.Class{meta.StringClass}, Returns: meta.Int,
		Body: func(recv *meta.Object, args []meta.Value) (meta.Value, error) {
			trick, _ := args[0].(string)
			if strings.TrimSpace(trick) == "" {
				return nil, fmt.Errorf("empty trick")
			}
			n, _ := recv.Get("tricks")
			next := n.(int) + 1
			return next, recv.Set("tricks", next)
		},
	}),
	meta.WithMethod(&meta.Method{
		Name: "whisper", Modifiers: meta.Private, Returns: meta.StringClass,
		Body: func(*meta.Object, []meta.Value) (meta.Value, error) { return "good boy", nil },
	}),
	meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public}),
	meta.WithConstructor(&meta.Constructor{
		Modifiers: meta.Public, Params: []*meta.Class{meta.StringClass},
		Body: func(obj *meta.Object, args []meta.Value) error {
			return obj.Set("name", args[0])
		},
	}),
	// Same arity as Dog(String); construction by arity picks this one.
	meta.WithConstructor(&meta.Constructor{
		Modifiers: meta.Public, Params: ints(1),
		Body: func(obj *meta.Object, args []meta.Value) error {
			return obj.Set("tricks", args[0])
		},
	}),
)

var Puppy = meta.MustClass(pkg+"Puppy",
	meta.WithModifiers(meta.Public|meta.Final),
	meta.Extends(Dog),
	meta.WithField(&meta.Field{Name: "ageMonths", Type: meta.Int, Modifiers: meta.Private, Initial: 3}),
	meta.WithMethod(&meta.Method{Name: "ageMonths", Modifiers: meta.Public, Returns: meta.Int, Body: getter("ageMonths")}),
	meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public}),
)

// Classes returns the sample classes, supertypes first.
func Classes() []*meta.Class {
	return []*meta.Class{Named, Calculator, Animal, Dog, Puppy}
}

// Registry is the part of the class registry Register needs.
type Registry interface {
	RegisterAll(classes []*meta.Class, source string) error
}

func Register(reg Registry) error {
	return reg.RegisterAll(Classes(), Source)
}

func ints(n int) []*meta.Class {
	params := make([]*meta.Class, n)
	for i := range params {
		params[i] = meta.Int
	}
	return params
}

func getter(field string) meta.Body {
	return func(recv *meta.Object, _ []meta.Value) (meta.Value, error) {
		v, _ := recv.Get(field)
		return v, nil
	}
}
