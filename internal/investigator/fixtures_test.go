package investigator

import (
	"fmt"

	"github.com/mabhi256/jprobe/internal/meta"
)

var (
	comparableIface   = meta.MustClass("java.lang.Comparable", meta.AsInterface(), meta.WithModifiers(meta.Public))
	serializableIface = meta.MustClass("java.io.Serializable", meta.AsInterface(), meta.WithModifiers(meta.Public))
	// Same simple name as java.io.Serializable in another namespace.
	otherSerializableIface = meta.MustClass("com.other.Serializable", meta.AsInterface())

	vehicleClass = meta.MustClass("com.acme.fleet.Vehicle",
		meta.WithModifiers(meta.Public|meta.Abstract),
		meta.WithField(&meta.Field{Name: "wheels", Type: meta.Int, Modifiers: meta.Protected}),
		meta.WithField(&meta.Field{Name: "id", Type: meta.StringClass, Modifiers: meta.Private | meta.Final, Initial: "v-0"}),
		meta.WithMethod(&meta.Method{Name: "describe", Modifiers: meta.Public | meta.Abstract, Returns: meta.StringClass}),
		meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public}),
	)

	carClass = meta.MustClass("com.acme.fleet.Car",
		meta.WithModifiers(meta.Public),
		meta.Extends(vehicleClass),
		meta.Implements(comparableIface, serializableIface, otherSerializableIface),
		meta.WithField(&meta.Field{Name: "MAX_SPEED", Type: meta.Int, Modifiers: meta.Public | meta.Static | meta.Final, Initial: 240}),
		meta.WithField(&meta.Field{Name: "model", Type: meta.StringClass, Modifiers: meta.Private}),
		meta.WithField(&meta.Field{Name: "wheels", Type: meta.Int, Modifiers: meta.Private, Initial: 4}),
		meta.WithField(&meta.Field{Name: "doors", Type: meta.Int, Modifiers: meta.Final}),
		meta.WithMethod(&meta.Method{
			Name: "add", Modifiers: meta.Public, Params: []*meta.Class{meta.Int, meta.Int}, Returns: meta.Int,
			Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) {
				return args[0].(int) + args[1].(int), nil
			},
		}),
		meta.WithMethod(&meta.Method{
			Name: "secret", Modifiers: meta.Private, Returns: meta.StringClass,
			Body: func(*meta.Object, []meta.Value) (meta.Value, error) { return "s3cr3t", nil },
		}),
		meta.WithMethod(&meta.Method{
			Name: "twice", Modifiers: meta.Private, Params: []*meta.Class{meta.Int}, Returns: meta.Int,
			Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) { return 2 * args[0].(int), nil },
		}),
		meta.WithMethod(&meta.Method{
			Name: "count", Modifiers: meta.Public | meta.Static, Returns: meta.Int,
			Body: func(recv *meta.Object, _ []meta.Value) (meta.Value, error) {
				if recv != nil {
					return nil, fmt.Errorf("static method got a receiver")
				}
				return 42, nil
			},
		}),
		meta.WithMethod(&meta.Method{
			Name: "scale", Modifiers: meta.Public, Params: []*meta.Class{meta.Long}, Returns: meta.Long,
			Body: func(_ *meta.Object, args []meta.Value) (meta.Value, error) { return args[0].(int64) * 10, nil },
		}),
		meta.WithMethod(&meta.Method{
			Name: "wheelCount", Modifiers: meta.Public, Returns: meta.Int,
			Body: func(recv *meta.Object, _ []meta.Value) (meta.Value, error) {
				v, _ := recv.Get("wheels")
				return v, nil
			},
		}),
		meta.WithMethod(&meta.Method{
			Name: "describe", Modifiers: meta.Public, Returns: meta.StringClass,
			Body: func(recv *meta.Object, _ []meta.Value) (meta.Value, error) {
				model, _ := recv.Get("model")
				return fmt.Sprintf("car %v", model), nil
			},
		}),
		meta.WithMethod(&meta.Method{
			Name: "boom", Modifiers: meta.Public, Returns: meta.Int,
			Body: func(*meta.Object, []meta.Value) (meta.Value, error) { panic("engine failure") },
		}),
		meta.WithMethod(&meta.Method{Name: "unfinished", Modifiers: meta.Public, Returns: meta.Int}),
		meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public}),
		meta.WithConstructor(&meta.Constructor{
			Modifiers: meta.Public,
			Params:    []*meta.Class{meta.StringClass, meta.Int},
			Body: func(obj *meta.Object, args []meta.Value) error {
				if err := obj.Set("model", args[0]); err != nil {
					return err
				}
				return obj.Set("doors", args[1])
			},
		}),
		meta.WithConstructor(&meta.Constructor{
			Modifiers: meta.Private,
			Params:    []*meta.Class{meta.Int},
		}),
	)

	plainClass = meta.MustClass("com.acme.Plain", meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public}))
)

func newCar(model string, doors int) *meta.Object {
	obj := meta.NewObject(carClass)
	_ = obj.Set("model", model)
	_ = obj.Set("doors", doors)
	return obj
}
