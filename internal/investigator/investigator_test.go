package investigator

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(obj *meta.Object) *Investigator {
	inv := New()
	inv.Load(obj)
	return inv
}

func TestDeclaredMemberCounts(t *testing.T) {
	tests := []struct {
		name                          string
		class                         *meta.Class
		methods, constructors, fields int
		constantFields, staticMethods int
	}{
		{"no members", meta.MustClass("x.Empty"), 0, 0, 0, 0, 0},
		{"one member", meta.MustClass("x.One", meta.WithField(&meta.Field{Name: "f", Type: meta.Int})), 0, 0, 1, 0, 0},
		{"mixed visibility", carClass, 9, 3, 4, 2, 1},
		{"abstract parent", vehicleClass, 1, 1, 2, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := loaded(meta.NewObject(tt.class))
			assert.Equal(t, tt.methods, inv.MethodCount())
			assert.Equal(t, tt.constructors, inv.ConstructorCount())
			assert.Equal(t, tt.fields, inv.FieldCount())
			assert.Equal(t, tt.constantFields, inv.ConstantFieldCount())
			assert.Equal(t, tt.staticMethods, inv.StaticMethodCount())

			oracle := len(tt.class.DeclaredMethods()) + len(tt.class.DeclaredConstructors()) + len(tt.class.DeclaredFields())
			assert.Equal(t, oracle, inv.MethodCount()+inv.ConstructorCount()+inv.FieldCount())
		})
	}
}

func TestInterfaceNamesCollapseBySimpleName(t *testing.T) {
	inv := loaded(newCar("T", 4))
	names := inv.InterfaceNames()
	assert.Equal(t, []string{"Comparable", "Serializable"}, names.Sorted())

	// Interfaces of the superclass are not included.
	child := meta.MustClass("com.acme.fleet.SportsCar", meta.Extends(carClass))
	assert.Zero(t, loaded(meta.NewObject(child)).InterfaceNames().Len())
}

func TestParentQueries(t *testing.T) {
	car := loaded(newCar("T", 4))
	assert.True(t, car.IsExtending())
	parent, ok := car.ParentSimpleName()
	assert.True(t, ok)
	assert.Equal(t, "Vehicle", parent)
	assert.True(t, car.IsParentAbstract())

	// Only the root above: all three agree.
	plain := loaded(meta.NewObject(plainClass))
	assert.False(t, plain.IsExtending())
	_, ok = plain.ParentSimpleName()
	assert.False(t, ok)
	assert.False(t, plain.IsParentAbstract())

	concreteParent := meta.MustClass("com.acme.fleet.SportsCar", meta.Extends(carClass))
	sports := loaded(meta.NewObject(concreteParent))
	assert.True(t, sports.IsExtending())
	assert.False(t, sports.IsParentAbstract())
}

func TestInheritanceChain(t *testing.T) {
	sports := meta.MustClass("com.acme.fleet.SportsCar", meta.Extends(carClass))

	assert.Equal(t, "Object->Vehicle->Car", loaded(newCar("T", 4)).InheritanceChain("->"))
	assert.Equal(t, "Object/Vehicle/Car/SportsCar", loaded(meta.NewObject(sports)).InheritanceChain("/"))
	assert.Equal(t, "Object->Plain", loaded(meta.NewObject(plainClass)).InheritanceChain("->"))
	assert.Equal(t, "Object", loaded(meta.NewObject(meta.ObjectClass)).InheritanceChain("->"))
}

func TestFieldNamesAcrossChainDedupes(t *testing.T) {
	inv := loaded(newCar("T", 4))
	names := inv.FieldNamesAcrossChain()
	assert.Equal(t, []string{"MAX_SPEED", "doors", "id", "model", "wheels"}, names.Sorted())
}

func TestUnloadedInvestigator(t *testing.T) {
	inv := New()
	assert.False(t, inv.Loaded())
	assert.Zero(t, inv.MethodCount())
	assert.Zero(t, inv.FieldCount())
	assert.Zero(t, inv.InterfaceNames().Len())
	assert.False(t, inv.IsExtending())
	assert.Empty(t, inv.InheritanceChain("->"))

	_, err := inv.InvokeInt("add", 1, 2)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = inv.CreateInstance(0)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = inv.ElevateAndInvoke("secret", nil)
	assert.ErrorIs(t, err, ErrNotLoaded)
	_, err = inv.Summarize()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestLoadReplacesTarget(t *testing.T) {
	inv := loaded(newCar("T", 4))
	plain := meta.NewObject(plainClass)
	inv.Load(plain)

	assert.Same(t, plainClass, inv.Class())
	assert.Same(t, plain, inv.Instance())

	inv.Load(nil)
	assert.False(t, inv.Loaded())
	assert.Nil(t, inv.Class())
}

func TestInvokeInt(t *testing.T) {
	inv := loaded(newCar("T", 4))

	n, err := inv.InvokeInt("add", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = inv.InvokeInt("count")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = inv.InvokeInt("wheelCount")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// int64 infers long, and the long result narrows.
	n, err = inv.InvokeInt("scale", int64(7))
	require.NoError(t, err)
	assert.Equal(t, 70, n)
}

func TestInt32ArgumentsReachBodiesAsInt(t *testing.T) {
	inv := loaded(newCar("T", 4))

	n, err := inv.InvokeInt("add", int32(2), int32(3))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	v, err := inv.ElevateAndInvoke("twice", []*meta.Class{meta.Int}, int32(21))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	obj, err := inv.CreateInstance(2, "Model 3", int32(4))
	require.NoError(t, err)
	doors, _ := obj.Get("doors")
	assert.Equal(t, 4, doors)
}

func TestInvokeIntFailures(t *testing.T) {
	inv := loaded(newCar("T", 4))

	tests := []struct {
		name   string
		method string
		args   []meta.Value
		kind   error
		cause  error
	}{
		{"unknown name", "subtract", []meta.Value{2, 3}, ErrNoSuchMember, nil},
		{"inferred types differ", "add", []meta.Value{int64(2), 3}, ErrNoSuchMember, nil},
		{"uninferable argument", "add", []meta.Value{nil, 3}, ErrNoSuchMember, nil},
		{"private", "twice", []meta.Value{3}, ErrInaccessible, nil},
		{"panicking body", "boom", nil, ErrInvocation, nil},
		{"no body", "unfinished", nil, ErrInvocation, meta.ErrNoBody},
		{"non-integral result", "describe", nil, ErrInvocation, ErrNotIntegral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := inv.InvokeInt(tt.method, tt.args...)
			assert.Zero(t, n)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}

			var memberErr *MemberError
			require.ErrorAs(t, err, &memberErr)
			assert.Equal(t, "invoke", memberErr.Op)
		})
	}
}

func TestElevateAndInvoke(t *testing.T) {
	inv := loaded(newCar("T", 4))

	v, err := inv.ElevateAndInvoke("secret", nil)
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t", v)

	v, err = inv.ElevateAndInvoke("twice", []*meta.Class{meta.Int}, 21)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = inv.ElevateAndInvoke("twice", []*meta.Class{meta.Long}, int64(21))
	assert.ErrorIs(t, err, ErrNoSuchMember)

	_, err = inv.ElevateAndInvoke("twice", []*meta.Class{meta.Int}, "21")
	assert.ErrorIs(t, err, ErrInvocation)
	assert.ErrorIs(t, err, ErrArgumentMismatch)

	_, err = inv.ElevateAndInvoke("twice", []*meta.Class{meta.Int})
	assert.ErrorIs(t, err, ErrArgumentMismatch)
}

func TestCreateInstance(t *testing.T) {
	original := newCar("Original", 2)
	inv := loaded(original)
	before, err := inv.Summarize()
	require.NoError(t, err)

	obj, err := inv.CreateInstance(2, "Model S", 4)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.NotSame(t, original, obj)

	model, _ := obj.Get("model")
	assert.Equal(t, "Model S", model)
	doors, _ := obj.Get("doors")
	assert.Equal(t, 4, doors)

	// The loaded target is untouched.
	assert.Same(t, original, inv.Instance())
	model, _ = original.Get("model")
	assert.Equal(t, "Original", model)
	after, err := inv.Summarize()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	empty, err := inv.CreateInstance(0)
	require.NoError(t, err)
	wheels, _ := empty.Get("wheels")
	assert.Equal(t, 4, wheels)
}

func TestCreateInstanceFailures(t *testing.T) {
	inv := loaded(newCar("T", 4))

	// The only one-arg constructor is private.
	_, err := inv.CreateInstance(1, 5)
	assert.ErrorIs(t, err, ErrNoSuchMember)

	_, err = inv.CreateInstance(3, "a", 1, 2)
	assert.ErrorIs(t, err, ErrNoSuchMember)

	_, err = inv.CreateInstance(2, 4, "Model S")
	assert.ErrorIs(t, err, ErrInvocation)
	assert.ErrorIs(t, err, ErrArgumentMismatch)

	_, err = loaded(meta.NewObject(vehicleClass)).CreateInstance(0)
	assert.ErrorIs(t, err, ErrInvocation)

	failing := meta.MustClass("x.Failing", meta.WithConstructor(&meta.Constructor{
		Modifiers: meta.Public,
		Body:      func(*meta.Object, []meta.Value) error { panic("no") },
	}))
	_, err = loaded(meta.NewObject(failing)).CreateInstance(0)
	assert.ErrorIs(t, err, ErrInvocation)
}

func TestCreateInstancePicksLastDeclaredOnArityTie(t *testing.T) {
	tie := meta.MustClass("x.Tie",
		meta.WithField(&meta.Field{Name: "v", Type: meta.ObjectClass}),
		meta.WithConstructor(&meta.Constructor{Modifiers: meta.Public, Params: []*meta.Class{meta.Int}}),
		meta.WithConstructor(&meta.Constructor{
			Modifiers: meta.Public,
			Params:    []*meta.Class{meta.StringClass},
			Body: func(obj *meta.Object, args []meta.Value) error {
				return obj.Set("v", args[0])
			},
		}),
	)
	inv := loaded(meta.NewObject(tie))

	obj, err := inv.CreateInstance(1, "last")
	require.NoError(t, err)
	v, _ := obj.Get("v")
	assert.Equal(t, "last", v)

	_, err = inv.CreateInstance(1, 7)
	assert.ErrorIs(t, err, ErrArgumentMismatch)
}

func TestBestEffort(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	inv := New(WithLogger(logger))
	inv.Load(newCar("T", 4))
	lenient := inv.BestEffort()

	assert.Equal(t, 5, lenient.InvokeInt("add", 2, 3))
	assert.Zero(t, lenient.InvokeInt("missing"))
	assert.Nil(t, lenient.CreateInstance(9))
	assert.Nil(t, lenient.ElevateAndInvoke("missing", nil))
	assert.Equal(t, "s3cr3t", lenient.ElevateAndInvoke("secret", nil))
	assert.NotNil(t, lenient.CreateInstance(0))

	assert.Contains(t, buf.String(), "degraded")
	assert.Contains(t, buf.String(), "missing")
}

func TestSummarize(t *testing.T) {
	inv := loaded(newCar("T", 4))
	s, err := inv.Summarize()
	require.NoError(t, err)

	assert.Equal(t, "com.acme.fleet.Car", s.Class)
	assert.Equal(t, "Vehicle", s.Parent)
	assert.Equal(t, []string{"Object", "Vehicle", "Car"}, s.Chain)
	assert.Len(t, s.Methods, 9)
	assert.Contains(t, s.Methods, "public int add(int, int)")
	assert.Contains(t, s.Fields, "public static final int MAX_SPEED")
	assert.Contains(t, s.Constructors, "private Car(int)")

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"parentAbstract":true`)

	plain, err := loaded(meta.NewObject(plainClass)).Summarize()
	require.NoError(t, err)
	data, err = json.Marshal(plain)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"parent":`)
}

func TestProbe(t *testing.T) {
	inv, err := Probe(carClass, nil)
	require.NoError(t, err)
	require.True(t, inv.Loaded())
	wheels, _ := inv.Instance().Get("wheels")
	assert.Equal(t, 4, wheels)

	inv, err = Probe(carClass, []meta.Value{"Roadster", 2})
	require.NoError(t, err)
	model, _ := inv.Instance().Get("model")
	assert.Equal(t, "Roadster", model)

	// Abstract classes can be probed structurally but not constructed.
	inv, err = Probe(vehicleClass, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.FieldCount())

	_, err = Probe(vehicleClass, []meta.Value{})
	assert.ErrorIs(t, err, ErrInvocation)
}
