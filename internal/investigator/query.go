package investigator

import (
	"strings"

	"github.com/mabhi256/jprobe/internal/meta"
)

// Structural queries return zero values when nothing is loaded.

// MethodCount counts methods declared on the loaded class, any visibility.
func (inv *Investigator) MethodCount() int {
	if !inv.Loaded() {
		return 0
	}
	return len(inv.target.class.DeclaredMethods())
}

// ConstructorCount counts declared constructors, any visibility.
func (inv *Investigator) ConstructorCount() int {
	if !inv.Loaded() {
		return 0
	}
	return len(inv.target.class.DeclaredConstructors())
}

// FieldCount counts declared fields, inherited ones excluded.
func (inv *Investigator) FieldCount() int {
	if !inv.Loaded() {
		return 0
	}
	return len(inv.target.class.DeclaredFields())
}

// InterfaceNames returns the simple names of directly implemented
// interfaces. Distinct interfaces sharing a simple name collapse to one entry.
func (inv *Investigator) InterfaceNames() meta.NameSet {
	names := make(meta.NameSet)
	if !inv.Loaded() {
		return names
	}
	for _, iface := range inv.target.class.Interfaces() {
		names.Add(iface.SimpleName())
	}
	return names
}

// ConstantFieldCount counts declared final fields.
func (inv *Investigator) ConstantFieldCount() int {
	if !inv.Loaded() {
		return 0
	}
	count := 0
	for _, f := range inv.target.class.DeclaredFields() {
		if f.Modifiers.IsFinal() {
			count++
		}
	}
	return count
}

// StaticMethodCount counts declared static methods.
func (inv *Investigator) StaticMethodCount() int {
	if !inv.Loaded() {
		return 0
	}
	count := 0
	for _, m := range inv.target.class.DeclaredMethods() {
		if m.Modifiers.IsStatic() {
			count++
		}
	}
	return count
}

// IsExtending reports whether the loaded class has a superclass other than
// the root.
func (inv *Investigator) IsExtending() bool {
	if !inv.Loaded() {
		return false
	}
	super := inv.target.class.Superclass()
	return super != nil && !meta.SameClass(super, meta.ObjectClass)
}

// ParentSimpleName returns the superclass simple name; ok is false when the
// class does not extend anything but the root.
func (inv *Investigator) ParentSimpleName() (name string, ok bool) {
	if !inv.IsExtending() {
		return "", false
	}
	return inv.target.class.Superclass().SimpleName(), true
}

func (inv *Investigator) IsParentAbstract() bool {
	if !inv.IsExtending() {
		return false
	}
	return inv.target.class.Superclass().IsAbstract()
}

// FieldNamesAcrossChain names every field declared anywhere from the loaded
// class up to the root.
func (inv *Investigator) FieldNamesAcrossChain() meta.NameSet {
	if !inv.Loaded() {
		return make(meta.NameSet)
	}
	return meta.FieldNamesAcrossChain(inv.target.class)
}

// InheritanceChain joins the simple names of the chain, root first and the
// loaded class last, e.g. "Object->Vehicle->Car".
func (inv *Investigator) InheritanceChain(delimiter string) string {
	if !inv.Loaded() {
		return ""
	}
	lineage := meta.Lineage(inv.target.class)
	names := make([]string, len(lineage))
	for i, c := range lineage {
		names[i] = c.SimpleName()
	}
	return strings.Join(names, delimiter)
}
