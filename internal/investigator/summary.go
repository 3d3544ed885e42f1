package investigator

import (
	"slices"

	"github.com/mabhi256/jprobe/internal/meta"
)

// Summary gathers every structural query about the loaded class in one value.
type Summary struct {
	Class              string   `json:"class"`
	SimpleName         string   `json:"simpleName"`
	Modifiers          string   `json:"modifiers"`
	MethodCount        int      `json:"methodCount"`
	ConstructorCount   int      `json:"constructorCount"`
	FieldCount         int      `json:"fieldCount"`
	ConstantFieldCount int      `json:"constantFieldCount"`
	StaticMethodCount  int      `json:"staticMethodCount"`
	Interfaces         []string `json:"interfaces"`
	Extending          bool     `json:"extending"`
	Parent             string   `json:"parent,omitempty"`
	ParentAbstract     bool     `json:"parentAbstract"`
	ChainFields        []string `json:"chainFields"`
	Chain              []string `json:"chain"`
	Methods            []string `json:"methods"`
	Fields             []string `json:"fields"`
	Constructors       []string `json:"constructors"`
}

func (inv *Investigator) Summarize() (*Summary, error) {
	if !inv.Loaded() {
		return nil, ErrNotLoaded
	}

	class := inv.target.class
	parent, _ := inv.ParentSimpleName()

	lineage := meta.Lineage(class)
	chain := make([]string, len(lineage))
	for i, c := range lineage {
		chain[i] = c.SimpleName()
	}

	return &Summary{
		Class:              class.Name(),
		SimpleName:         class.SimpleName(),
		Modifiers:          class.Modifiers().String(),
		MethodCount:        inv.MethodCount(),
		ConstructorCount:   inv.ConstructorCount(),
		FieldCount:         inv.FieldCount(),
		ConstantFieldCount: inv.ConstantFieldCount(),
		StaticMethodCount:  inv.StaticMethodCount(),
		Interfaces:         inv.InterfaceNames().Sorted(),
		Extending:          inv.IsExtending(),
		Parent:             parent,
		ParentAbstract:     inv.IsParentAbstract(),
		ChainFields:        inv.FieldNamesAcrossChain().Sorted(),
		Chain:              chain,
		Methods:            sortedStrings(class.DeclaredMethods()),
		Fields:             sortedStrings(class.DeclaredFields()),
		Constructors:       sortedStrings(class.DeclaredConstructors()),
	}, nil
}

func sortedStrings[T interface{ String() string }](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	slices.Sort(out)
	return out
}
