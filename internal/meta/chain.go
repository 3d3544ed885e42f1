package meta

import "slices"

// Ancestors follows superclass links from c up to and including the root.
// The first element is c itself.
func Ancestors(c *Class) []*Class {
	var chain []*Class
	for k := c; k != nil; k = k.super {
		chain = append(chain, k)
	}
	return chain
}

// Lineage is Ancestors in display order: root first, c last.
func Lineage(c *Class) []*Class {
	chain := Ancestors(c)
	slices.Reverse(chain)
	return chain
}

// ChainFields collects the declared fields of every class in the chain,
// leaf first. Shadowed names appear once per declaring class.
func ChainFields(c *Class) []*Field {
	var fields []*Field
	for _, k := range Ancestors(c) {
		fields = append(fields, k.DeclaredFields()...)
	}
	return fields
}

// FieldNamesAcrossChain is the set of field names visible anywhere in the
// chain, deduplicated by name.
func FieldNamesAcrossChain(c *Class) NameSet {
	names := make(NameSet)
	for _, f := range ChainFields(c) {
		names.Add(f.Name)
	}
	return names
}
