package goimport

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/mabhi256/jprobe/internal/investigator"
	"github.com/mabhi256/jprobe/internal/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importZoo(t *testing.T) map[string]*meta.Class {
	t.Helper()
	if testing.Short() {
		t.Skip("runs the go command")
	}

	var buf bytes.Buffer
	im := New(WithLogger(log.New(&buf)))
	classes, err := im.Import(context.Background(), filepath.Join("testdata", "zoo"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "package=example.com/zoo")

	byName := make(map[string]*meta.Class, len(classes))
	for _, c := range classes {
		byName[c.SimpleName()] = c
	}
	return byName
}

func TestImportDeclaresEligibleTypes(t *testing.T) {
	classes := importZoo(t)

	var names []string
	for name := range classes {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{"Animal", "Dog", "Keeper", "Padded", "Speaker", "Walker"}, names)
	assert.Equal(t, "example.com/zoo.Dog", classes["Dog"].Name())
}

func TestImportStructs(t *testing.T) {
	classes := importZoo(t)
	animal, dog, keeper := classes["Animal"], classes["Dog"], classes["Keeper"]

	assert.Same(t, animal, dog.Superclass())
	assert.Same(t, meta.ObjectClass, animal.Superclass())
	assert.True(t, dog.Modifiers().IsPublic())

	legs, ok := animal.DeclaredField("legs")
	require.True(t, ok)
	assert.True(t, legs.Modifiers.IsPrivate())
	assert.Same(t, meta.Int, legs.Type)

	_, embedded := dog.DeclaredField("Animal")
	assert.False(t, embedded)
	owner, ok := dog.DeclaredField("owner")
	require.True(t, ok)
	assert.Same(t, keeper, owner.Type)
	tricks, ok := dog.DeclaredField("Tricks")
	require.True(t, ok)
	assert.Same(t, meta.ObjectClass, tricks.Type)

	fetch, ok := dog.DeclaredMethod("fetch", []*meta.Class{meta.Long})
	require.True(t, ok)
	assert.True(t, fetch.Modifiers.IsPrivate())
	assert.Same(t, meta.Boolean, fetch.Returns)
	assert.Nil(t, fetch.Body)

	ctors := dog.DeclaredConstructors()
	require.Len(t, ctors, 1)
	assert.Equal(t, "Dog(String, int)", ctors[0].Signature())
	assert.Len(t, keeper.DeclaredConstructors(), 1)
	assert.Empty(t, animal.DeclaredConstructors())
}

func TestImportSkipsBlankFields(t *testing.T) {
	padded := importZoo(t)["Padded"]
	require.NotNil(t, padded)

	fields := padded.DeclaredFields()
	require.Len(t, fields, 1)
	assert.Equal(t, "Count", fields[0].Name)
	assert.Same(t, meta.Int, fields[0].Type)
}

func TestImportInterfaces(t *testing.T) {
	classes := importZoo(t)
	speaker, walker, dog := classes["Speaker"], classes["Walker"], classes["Dog"]

	assert.True(t, walker.IsInterface())
	assert.Same(t, speaker, walker.Interfaces()[0])
	assert.Len(t, walker.DeclaredMethods(), 1)
	assert.True(t, speaker.IsAssignableFrom(dog))
	assert.True(t, walker.IsAssignableFrom(classes["Animal"]))
	assert.False(t, speaker.IsAssignableFrom(classes["Keeper"]))
}

func TestImportedClassesAreInvestigable(t *testing.T) {
	dog := importZoo(t)["Dog"]

	inv := investigator.New()
	inv.Load(meta.NewObject(dog))
	assert.Equal(t, "Object->Animal->Dog", inv.InheritanceChain("->"))
	assert.Equal(t, []string{"Name", "Tricks", "legs", "owner"}, inv.FieldNamesAcrossChain().Sorted())

	obj, err := inv.CreateInstance(2, "rex", 4)
	require.NoError(t, err)
	assert.Same(t, dog, obj.Class())

	_, err = inv.ElevateAndInvoke("fetch", []*meta.Class{meta.Long}, int64(1))
	assert.ErrorIs(t, err, meta.ErrNoBody)
}

func TestImportFailsOnBrokenPackage(t *testing.T) {
	if testing.Short() {
		t.Skip("runs the go command")
	}
	_, err := New().Import(context.Background(), filepath.Join("testdata", "missing"))
	assert.Error(t, err)
}
