package gir

import "strings"

// Type is a reference to a named entity: a class, interface, record, enum,
// alias, or fundamental type. The same logical type may be referenced many
// times across a document; the registry interns references so that patching
// one (backfilling a C type during resolution) is visible everywhere.
type Type struct {
	Info
	Name      string
	Namespace string
	CType     string
}

// NewType returns a type reference with the given logical name and optional
// C spelling.
func NewType(name, ctype string) *Type {
	t := &Type{Name: name, CType: ctype}
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		t.Namespace = name[:idx]
	}
	return t
}

// Resolved reports whether the reference carries a concrete C type.
func (t *Type) Resolved() bool { return t.CType != "" }

// BaseCType is the C spelling with trailing pointer markers stripped.
func (t *Type) BaseCType() string {
	return strings.ReplaceAll(t.CType, "*", "")
}

// FQTN is the fully-qualified type name: the name itself when already
// qualified, otherwise Namespace.Name. Empty when neither applies.
func (t *Type) FQTN() string {
	if strings.Contains(t.Name, ".") {
		return t.Name
	}
	if t.Namespace != "" {
		return t.Namespace + "." + t.Name
	}
	return ""
}

// Equal reports type identity: same namespace and name, or, when the
// namespace is absent, same name and C type.
func (t *Type) Equal(other *Type) bool {
	if other == nil {
		return false
	}
	if t.Namespace != "" {
		return t.Namespace == other.Namespace && t.Name == other.Name
	}
	if t.CType != "" {
		return t.Name == other.Name && t.CType == other.CType
	}
	return t.Name == other.Name
}

func (t *Type) String() string {
	if fqtn := t.FQTN(); fqtn != "" {
		return fqtn
	}
	return t.Name
}

// AnyType is the closed set of type shapes a parameter, return value, field,
// or alias target can reference: a named type, a container wrapping an
// element type, a callback signature, or one of the sentinel leaves.
type AnyType interface {
	anyType()
}

func (*Type) anyType()      {}
func (*ArrayType) anyType() {}
func (*ListType) anyType()  {}
func (*MapType) anyType()   {}
func (*VoidType) anyType()  {}
func (*VarArgs) anyType()   {}
func (*Callback) anyType()  {}

// ArrayType is a C array shape wrapping an element type.
type ArrayType struct {
	Info
	Name           string
	CType          string
	ZeroTerminated bool
	FixedSize      int
	Length         int
	ValueType      AnyType
}

// ListType is a GList/GSList shape wrapping an element type.
type ListType struct {
	Info
	Name      string
	CType     string
	ValueType AnyType
}

// MapType is a GHashTable shape wrapping key and value types.
type MapType struct {
	Info
	Name      string
	CType     string
	KeyType   AnyType
	ValueType AnyType
}

// VoidType is the sentinel for `<type name="none" c:type="void"/>`.
type VoidType struct {
	Info
}

func (*VoidType) String() string { return "void" }

// VarArgs is the sentinel for a C variadic tail.
type VarArgs struct {
	Info
}

func (*VarArgs) String() string { return "..." }

// GType is the GObject run-time type metadata attached to registered types.
type GType struct {
	TypeName   string
	GetType    string
	TypeStruct string
}

// Alias is a type that renames another type.
type Alias struct {
	Type
	Target AnyType
}

// Constant is a named literal value.
type Constant struct {
	Type
	Target AnyType
	Value  string
}

// Member is one value of an enumeration, bit field, or error domain.
type Member struct {
	Info
	Name       string
	Value      string
	Identifier string
	Nick       string
}

// Enumeration is an enumerated type with ordered members and associated
// type-level functions.
type Enumeration struct {
	Type
	GType     *GType
	Members   []*Member
	Functions []*Function
}

// BitField is an enumeration whose members are bit masks.
type BitField struct {
	Enumeration
}

// ErrorDomain is an enumeration registered as a GError domain.
type ErrorDomain struct {
	Enumeration
	Domain string
}

// Boxed is a plain boxed type registered with the GObject type system,
// carrying only type-level functions.
type Boxed struct {
	Type
	SymbolPrefix string
	GType        *GType
	Functions    []*Function
}
