package meta

// RootName is the qualified name of the universal root class.
const RootName = "java.lang.Object"

// ObjectClass is the universal root: every class chain ends here and it is
// the only class without a superclass.
var ObjectClass = newRoot()

var StringClass = MustClass("java.lang.String",
	WithModifiers(Public|Final),
	WithConstructor(&Constructor{Modifiers: Public}),
)

var (
	Int     = newPrimitive("int")
	Long    = newPrimitive("long")
	Short   = newPrimitive("short")
	Byte    = newPrimitive("byte")
	Float   = newPrimitive("float")
	Double  = newPrimitive("double")
	Boolean = newPrimitive("boolean")
	Void    = newPrimitive("void")
)

// Builtins lists the classes every registry starts with.
func Builtins() []*Class {
	return []*Class{ObjectClass, StringClass, Int, Long, Short, Byte, Float, Double, Boolean, Void}
}

// Primitive resolves a primitive keyword such as "int".
func Primitive(name string) (*Class, bool) {
	for _, c := range []*Class{Int, Long, Short, Byte, Float, Double, Boolean, Void} {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

func newRoot() *Class {
	root := &Class{
		name:      RootName,
		kind:      KindClass,
		modifiers: Public,
	}
	root.constructors = []*Constructor{{Modifiers: Public, owner: root}}
	return root
}

func newPrimitive(name string) *Class {
	return &Class{
		name:      name,
		kind:      KindPrimitive,
		modifiers: Public | Final | Abstract,
	}
}
