package gir

// Class is an instantiable (or abstract) GObject class: a parent chain,
// implemented interfaces, and the full callable/property/signal surface.
// Ancestors and Implements are populated by resolution, not by the parser.
type Class struct {
	Type
	SymbolPrefix string
	Parent       *Type
	Abstract     bool
	Fundamental  bool
	RefFunc      string
	UnrefFunc    string
	GType        *GType

	// Ancestors is the resolved parent chain, nearest first, ending at the
	// root. Guaranteed free of duplicates: a cyclic parent graph truncates
	// the walk with a warning.
	Ancestors []*Type

	Implements     []*Type
	Constructors   []*Function
	Methods        []*Method
	VirtualMethods []*VirtualMethod
	Functions      []*Function
	Properties     []*Property
	Signals        []*Signal
	Fields         []*Field
}

// TypeStruct returns the name of the companion class struct, if any.
func (c *Class) TypeStruct() string {
	if c.GType != nil {
		return c.GType.TypeStruct
	}
	return ""
}

// TypeFunc returns the get-type function registering the class.
func (c *Class) TypeFunc() string {
	if c.GType != nil {
		return c.GType.GetType
	}
	return c.CType
}

// Interface is a GObject interface: a single prerequisite type plus the
// callable/property/signal surface implementors must provide.
type Interface struct {
	Type
	SymbolPrefix string
	GType        *GType

	// Prerequisite is the type implementors must derive from. The parser
	// records the raw reference; resolution replaces it with a concrete
	// type carrying its real C type.
	Prerequisite *Type

	Methods        []*Method
	VirtualMethods []*VirtualMethod
	Functions      []*Function
	Properties     []*Property
	Signals        []*Signal
	Fields         []*Field
}

// TypeStruct returns the companion interface struct name, falling back to
// the interface's own C type.
func (i *Interface) TypeStruct() string {
	if i.GType != nil && i.GType.TypeStruct != "" {
		return i.GType.TypeStruct
	}
	return i.CType
}

// Record is a C struct. A record with StructFor set is the companion
// vtable struct of a class or interface and is excluded from effective
// record listings.
type Record struct {
	Type
	SymbolPrefix string
	GType        *GType
	StructFor    string
	Disguised    bool

	Constructors []*Function
	Methods      []*Method
	Functions    []*Function
	Fields       []*Field
}

// Union is a C union.
type Union struct {
	Type
	SymbolPrefix string
	GType        *GType

	Constructors []*Function
	Methods      []*Method
	Functions    []*Function
	Fields       []*Field
}
