package samples

import (
	"testing"

	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/mabhi256/jprobe/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := registry.NewClassRegistry()
	require.NoError(t, Register(reg))
	require.NoError(t, Register(reg))

	assert.Len(t, reg.GetClassesBySource(Source), len(Classes()))
	c, err := reg.Lookup("Dog")
	require.NoError(t, err)
	assert.Same(t, Dog, c)
}

func TestCalculator(t *testing.T) {
	inv := investigator.New()
	inv.Load(meta.NewObject(Calculator))

	sum, err := inv.InvokeInt("add", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, sum)

	sq, err := inv.InvokeInt("square", int64(9))
	require.NoError(t, err)
	assert.Equal(t, 81, sq)

	_, err = inv.InvokeInt("divide", 1, 0)
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.ErrorIs(t, err, investigator.ErrInvocation)

	v, err := inv.InvokeInt("version")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = inv.InvokeInt("store", 11)
	require.NoError(t, err)
	_, err = inv.InvokeInt("recall")
	assert.ErrorIs(t, err, investigator.ErrInaccessible)
	recalled, err := inv.ElevateAndInvoke("recall", nil)
	require.NoError(t, err)
	assert.Equal(t, 11, recalled)

	secret, err := inv.ElevateAndInvoke("secret", nil)
	require.NoError(t, err)
	assert.Equal(t, "you found the secret", secret)

	assert.Equal(t, 2, inv.ConstantFieldCount())
	assert.Equal(t, 1, inv.StaticMethodCount())
	assert.False(t, inv.IsExtending())
	assert.Equal(t, "Object->Calculator", inv.InheritanceChain("->"))
}

func TestAnimalHierarchy(t *testing.T) {
	inv := investigator.New()
	inv.Load(meta.NewObject(Puppy))

	assert.Equal(t, "Object->Animal->Dog->Puppy", inv.InheritanceChain("->"))
	parent, ok := inv.ParentSimpleName()
	require.True(t, ok)
	assert.Equal(t, "Dog", parent)
	assert.False(t, inv.IsParentAbstract())
	assert.Equal(t, []string{"ageMonths", "legs", "name", "tricks"}, inv.FieldNamesAcrossChain().Sorted())
	assert.True(t, Named.IsAssignableFrom(Puppy))

	inv.Load(meta.NewObject(Dog))
	assert.True(t, inv.IsParentAbstract())
	assert.Empty(t, inv.InterfaceNames().Sorted())

	name, err := inv.ElevateAndInvoke("whisper", nil)
	require.NoError(t, err)
	assert.Equal(t, "good boy", name)

	n, err := inv.InvokeInt("learn", "sit")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = inv.InvokeInt("learn", " ")
	assert.ErrorIs(t, err, investigator.ErrInvocation)
}

func TestDogConstructorTieBreak(t *testing.T) {
	inv := investigator.New()
	inv.Load(meta.NewObject(Dog))

	obj, err := inv.CreateInstance(1, 5)
	require.NoError(t, err)
	tricks, _ := obj.Get("tricks")
	assert.Equal(t, 5, tricks)

	_, err = inv.CreateInstance(1, "rex")
	assert.ErrorIs(t, err, investigator.ErrInvocation)

	inv.Load(meta.NewObject(Animal))
	_, err = inv.CreateInstance(0)
	assert.ErrorIs(t, err, investigator.ErrNoSuchMember)
}
