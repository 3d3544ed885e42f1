package meta

import (
	"fmt"
	"strings"
)

// Modifier is a bit set of access and behaviour flags on a class or member.
// A member with no access bit set is package-private.
type Modifier uint16

const (
	Public Modifier = 1 << iota
	Private
	Protected
	Static
	Final
	Abstract
	Interface
)

const accessMask = Public | Private | Protected

// Canonical rendering order, same as the JVM's Modifier.toString
var modifierOrder = []struct {
	flag Modifier
	name string
}{
	{Public, "public"},
	{Protected, "protected"},
	{Private, "private"},
	{Abstract, "abstract"},
	{Static, "static"},
	{Final, "final"},
	{Interface, "interface"},
}

func (m Modifier) Has(flag Modifier) bool {
	return m&flag == flag
}

func (m Modifier) IsPublic() bool    { return m.Has(Public) }
func (m Modifier) IsPrivate() bool   { return m.Has(Private) }
func (m Modifier) IsProtected() bool { return m.Has(Protected) }
func (m Modifier) IsStatic() bool    { return m.Has(Static) }
func (m Modifier) IsFinal() bool     { return m.Has(Final) }
func (m Modifier) IsAbstract() bool  { return m.Has(Abstract) }

func (m Modifier) String() string {
	var parts []string
	for _, mod := range modifierOrder {
		if m.Has(mod.flag) {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, " ")
}

// Validate rejects combinations no class or member can carry.
func (m Modifier) Validate() error {
	access := m & accessMask
	if access != 0 && access&(access-1) != 0 {
		return fmt.Errorf("conflicting access modifiers: %s", access)
	}
	if m.Has(Final) && m.Has(Abstract) {
		return fmt.Errorf("modifiers final and abstract are mutually exclusive")
	}
	return nil
}

// ParseModifier maps a lowercase keyword to its flag.
func ParseModifier(s string) (Modifier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, mod := range modifierOrder {
		if mod.name == name {
			return mod.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown modifier %q", s)
}

// ParseModifiers folds a list of keywords into one validated set.
func ParseModifiers(names []string) (Modifier, error) {
	var m Modifier
	for _, name := range names {
		flag, err := ParseModifier(name)
		if err != nil {
			return 0, err
		}
		m |= flag
	}
	if err := m.Validate(); err != nil {
		return 0, err
	}
	return m, nil
}
