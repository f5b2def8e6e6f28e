package gir

import "strconv"

// The closed set of element shapes a GIR document can contain. The parser
// decodes into these with encoding/xml, then builders in parser.go turn
// them into model nodes, so adding an element kind means extending a struct
// here and the builder that consumes it.
//
// GIR attributes and elements live in three XML namespaces: the core
// introspection namespace (the document default), the C namespace
// (c:type, c:identifier, <c:include>), and the GLib namespace
// (glib:type-name, <glib:signal>, <glib:boxed>). Boolean attributes are
// "0"/"1" strings with per-attribute defaults, so they decode as strings
// and convert through boolAttr.

type xmlDocument struct {
	Includes  []xmlInclude  `xml:"http://www.gtk.org/introspection/core/1.0 include"`
	CIncludes []xmlNamed    `xml:"http://www.gtk.org/introspection/c/1.0 include"`
	Packages  []xmlNamed    `xml:"http://www.gtk.org/introspection/core/1.0 package"`
	Namespace *xmlNamespace `xml:"http://www.gtk.org/introspection/core/1.0 namespace"`
}

type xmlInclude struct {
	Name    string `xml:"name,attr"`
	Version string `xml:"version,attr"`
}

type xmlNamed struct {
	Name string `xml:"name,attr"`
}

type xmlNamespace struct {
	Name               string `xml:"name,attr"`
	Version            string `xml:"version,attr"`
	SharedLibrary      string `xml:"shared-library,attr"`
	IdentifierPrefixes string `xml:"http://www.gtk.org/introspection/c/1.0 identifier-prefixes,attr"`
	SymbolPrefixes     string `xml:"http://www.gtk.org/introspection/c/1.0 symbol-prefixes,attr"`

	Aliases        []xmlAlias       `xml:"http://www.gtk.org/introspection/core/1.0 alias"`
	BitFields      []xmlEnum        `xml:"http://www.gtk.org/introspection/core/1.0 bitfield"`
	Boxeds         []xmlBoxed       `xml:"http://www.gtk.org/introspection/glib/1.0 boxed"`
	Callbacks      []xmlCallable    `xml:"http://www.gtk.org/introspection/core/1.0 callback"`
	Classes        []xmlClass       `xml:"http://www.gtk.org/introspection/core/1.0 class"`
	Constants      []xmlConstant    `xml:"http://www.gtk.org/introspection/core/1.0 constant"`
	Enumerations   []xmlEnum        `xml:"http://www.gtk.org/introspection/core/1.0 enumeration"`
	Functions      []xmlCallable    `xml:"http://www.gtk.org/introspection/core/1.0 function"`
	FunctionMacros []xmlCallable    `xml:"http://www.gtk.org/introspection/core/1.0 function-macro"`
	Interfaces     []xmlInterface   `xml:"http://www.gtk.org/introspection/core/1.0 interface"`
	Records        []xmlRecord      `xml:"http://www.gtk.org/introspection/core/1.0 record"`
	Unions         []xmlUnion       `xml:"http://www.gtk.org/introspection/core/1.0 union"`
}

// xmlInfo carries the metadata attributes and children shared by most
// declaration elements; it is embedded in every element struct below.
type xmlInfo struct {
	Introspectable    string        `xml:"introspectable,attr"`
	Version           string        `xml:"version,attr"`
	Stability         string        `xml:"stability,attr"`
	Deprecated        string        `xml:"deprecated,attr"`
	DeprecatedVersion string        `xml:"deprecated-version,attr"`
	Doc               *xmlDoc       `xml:"http://www.gtk.org/introspection/core/1.0 doc"`
	DocDeprecated     *xmlText      `xml:"http://www.gtk.org/introspection/core/1.0 doc-deprecated"`
	SourcePosition    *xmlPosition  `xml:"http://www.gtk.org/introspection/core/1.0 source-position"`
	Attributes        []xmlAttrPair `xml:"http://www.gtk.org/introspection/core/1.0 attribute"`
}

type xmlDoc struct {
	Filename string `xml:"filename,attr"`
	Line     string `xml:"line,attr"`
	Content  string `xml:",chardata"`
}

type xmlText struct {
	Content string `xml:",chardata"`
}

type xmlPosition struct {
	Filename string `xml:"filename,attr"`
	Line     string `xml:"line,attr"`
}

type xmlAttrPair struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// xmlTypeNode is the recursive `<type>` element; container element types
// nest inside it.
type xmlTypeNode struct {
	Name  string        `xml:"name,attr"`
	CType string        `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	Types []xmlTypeNode `xml:"http://www.gtk.org/introspection/core/1.0 type"`
}

type xmlArray struct {
	Name           string       `xml:"name,attr"`
	CType          string       `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	ZeroTerminated string       `xml:"zero-terminated,attr"`
	FixedSize      string       `xml:"fixed-size,attr"`
	Length         string       `xml:"length,attr"`
	Type           *xmlTypeNode `xml:"http://www.gtk.org/introspection/core/1.0 type"`
}

// xmlTyped is embedded wherever an element carries one type annotation:
// exactly one of Type, Array, or VarArgs is set.
type xmlTyped struct {
	Type    *xmlTypeNode `xml:"http://www.gtk.org/introspection/core/1.0 type"`
	Array   *xmlArray    `xml:"http://www.gtk.org/introspection/core/1.0 array"`
	VarArgs *xmlText     `xml:"http://www.gtk.org/introspection/core/1.0 varargs"`
}

type xmlParameter struct {
	xmlInfo
	xmlTyped
	Name            string       `xml:"name,attr"`
	Direction       string       `xml:"direction,attr"`
	Transfer        string       `xml:"transfer-ownership,attr"`
	Nullable        string       `xml:"nullable,attr"`
	Optional        string       `xml:"optional,attr"`
	CallerAllocates string       `xml:"caller-allocates,attr"`
	Closure         string       `xml:"closure,attr"`
	Destroy         string       `xml:"destroy,attr"`
	Scope           string       `xml:"scope,attr"`
	Callback        *xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 callback"`
}

type xmlParameters struct {
	InstanceParameter *xmlParameter  `xml:"http://www.gtk.org/introspection/core/1.0 instance-parameter"`
	Parameters        []xmlParameter `xml:"http://www.gtk.org/introspection/core/1.0 parameter"`
}

type xmlReturnValue struct {
	xmlInfo
	xmlTyped
	Transfer string `xml:"transfer-ownership,attr"`
	Nullable string `xml:"nullable,attr"`
	Closure  string `xml:"closure,attr"`
	Destroy  string `xml:"destroy,attr"`
	Scope    string `xml:"scope,attr"`
}

// xmlCallable covers functions, function macros, methods, virtual methods,
// constructors, and callbacks; the builders pick the fields each kind uses.
type xmlCallable struct {
	xmlInfo
	Name        string          `xml:"name,attr"`
	CIdentifier string          `xml:"http://www.gtk.org/introspection/c/1.0 identifier,attr"`
	CType       string          `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	Throws      string          `xml:"throws,attr"`
	Shadows     string          `xml:"shadows,attr"`
	ShadowedBy  string          `xml:"shadowed-by,attr"`
	MovedTo     string          `xml:"moved-to,attr"`
	Invoker     string          `xml:"invoker,attr"`
	Return      *xmlReturnValue `xml:"http://www.gtk.org/introspection/core/1.0 return-value"`
	Parameters  *xmlParameters  `xml:"http://www.gtk.org/introspection/core/1.0 parameters"`
}

type xmlAlias struct {
	xmlInfo
	Name  string       `xml:"name,attr"`
	CType string       `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	Type  *xmlTypeNode `xml:"http://www.gtk.org/introspection/core/1.0 type"`
}

type xmlConstant struct {
	xmlInfo
	Name  string       `xml:"name,attr"`
	CType string       `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	Value string       `xml:"value,attr"`
	Type  *xmlTypeNode `xml:"http://www.gtk.org/introspection/core/1.0 type"`
}

type xmlMember struct {
	xmlInfo
	Name        string `xml:"name,attr"`
	Value       string `xml:"value,attr"`
	CIdentifier string `xml:"http://www.gtk.org/introspection/c/1.0 identifier,attr"`
	Nick        string `xml:"http://www.gtk.org/introspection/glib/1.0 nick,attr"`
}

type xmlEnum struct {
	xmlInfo
	Name        string        `xml:"name,attr"`
	CType       string        `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	TypeName    string        `xml:"http://www.gtk.org/introspection/glib/1.0 type-name,attr"`
	GetType     string        `xml:"http://www.gtk.org/introspection/glib/1.0 get-type,attr"`
	ErrorDomain string        `xml:"http://www.gtk.org/introspection/glib/1.0 error-domain,attr"`
	Members     []xmlMember   `xml:"http://www.gtk.org/introspection/core/1.0 member"`
	Functions   []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 function"`
}

type xmlField struct {
	xmlInfo
	xmlTyped
	Name     string       `xml:"name,attr"`
	Readable string       `xml:"readable,attr"`
	Writable string       `xml:"writable,attr"`
	Private  string       `xml:"private,attr"`
	Bits     string       `xml:"bits,attr"`
	Callback *xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 callback"`
}

type xmlProperty struct {
	xmlInfo
	xmlTyped
	Name          string `xml:"name,attr"`
	Transfer      string `xml:"transfer-ownership,attr"`
	Readable      string `xml:"readable,attr"`
	Writable      string `xml:"writable,attr"`
	Construct     string `xml:"construct,attr"`
	ConstructOnly string `xml:"construct-only,attr"`
}

type xmlSignal struct {
	xmlInfo
	Name       string          `xml:"name,attr"`
	When       string          `xml:"when,attr"`
	Detailed   string          `xml:"detailed,attr"`
	Action     string          `xml:"action,attr"`
	NoHooks    string          `xml:"no-hooks,attr"`
	NoRecurse  string          `xml:"no-recurse,attr"`
	Return     *xmlReturnValue `xml:"http://www.gtk.org/introspection/core/1.0 return-value"`
	Parameters *xmlParameters  `xml:"http://www.gtk.org/introspection/core/1.0 parameters"`
}

type xmlClass struct {
	xmlInfo
	Name         string `xml:"name,attr"`
	CType        string `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	SymbolPrefix string `xml:"http://www.gtk.org/introspection/c/1.0 symbol-prefix,attr"`
	Parent       string `xml:"parent,attr"`
	Abstract     string `xml:"abstract,attr"`
	TypeName     string `xml:"http://www.gtk.org/introspection/glib/1.0 type-name,attr"`
	GetType      string `xml:"http://www.gtk.org/introspection/glib/1.0 get-type,attr"`
	TypeStruct   string `xml:"http://www.gtk.org/introspection/glib/1.0 type-struct,attr"`
	Fundamental  string `xml:"http://www.gtk.org/introspection/glib/1.0 fundamental,attr"`
	RefFunc      string `xml:"http://www.gtk.org/introspection/glib/1.0 ref-func,attr"`
	UnrefFunc    string `xml:"http://www.gtk.org/introspection/glib/1.0 unref-func,attr"`

	Fields         []xmlField    `xml:"http://www.gtk.org/introspection/core/1.0 field"`
	Implements     []xmlNamed    `xml:"http://www.gtk.org/introspection/core/1.0 implements"`
	Constructors   []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 constructor"`
	Methods        []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 method"`
	VirtualMethods []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 virtual-method"`
	Functions      []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 function"`
	Properties     []xmlProperty `xml:"http://www.gtk.org/introspection/core/1.0 property"`
	Signals        []xmlSignal   `xml:"http://www.gtk.org/introspection/glib/1.0 signal"`
}

type xmlInterface struct {
	xmlInfo
	Name         string `xml:"name,attr"`
	CType        string `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	SymbolPrefix string `xml:"http://www.gtk.org/introspection/c/1.0 symbol-prefix,attr"`
	TypeName     string `xml:"http://www.gtk.org/introspection/glib/1.0 type-name,attr"`
	GetType      string `xml:"http://www.gtk.org/introspection/glib/1.0 get-type,attr"`
	TypeStruct   string `xml:"http://www.gtk.org/introspection/glib/1.0 type-struct,attr"`

	Prerequisite   *xmlNamed     `xml:"http://www.gtk.org/introspection/core/1.0 prerequisite"`
	Fields         []xmlField    `xml:"http://www.gtk.org/introspection/core/1.0 field"`
	Methods        []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 method"`
	VirtualMethods []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 virtual-method"`
	Functions      []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 function"`
	Properties     []xmlProperty `xml:"http://www.gtk.org/introspection/core/1.0 property"`
	Signals        []xmlSignal   `xml:"http://www.gtk.org/introspection/glib/1.0 signal"`
}

type xmlRecord struct {
	xmlInfo
	Name         string `xml:"name,attr"`
	CType        string `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	SymbolPrefix string `xml:"http://www.gtk.org/introspection/c/1.0 symbol-prefix,attr"`
	TypeName     string `xml:"http://www.gtk.org/introspection/glib/1.0 type-name,attr"`
	GetType      string `xml:"http://www.gtk.org/introspection/glib/1.0 get-type,attr"`
	TypeStruct   string `xml:"http://www.gtk.org/introspection/glib/1.0 type-struct,attr"`
	StructFor    string `xml:"http://www.gtk.org/introspection/glib/1.0 is-gtype-struct-for,attr"`
	Disguised    string `xml:"disguised,attr"`

	Fields       []xmlField    `xml:"http://www.gtk.org/introspection/core/1.0 field"`
	Constructors []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 constructor"`
	Methods      []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 method"`
	Functions    []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 function"`
}

type xmlUnion struct {
	xmlInfo
	Name         string `xml:"name,attr"`
	CType        string `xml:"http://www.gtk.org/introspection/c/1.0 type,attr"`
	SymbolPrefix string `xml:"http://www.gtk.org/introspection/c/1.0 symbol-prefix,attr"`
	TypeName     string `xml:"http://www.gtk.org/introspection/glib/1.0 type-name,attr"`
	GetType      string `xml:"http://www.gtk.org/introspection/glib/1.0 get-type,attr"`
	TypeStruct   string `xml:"http://www.gtk.org/introspection/glib/1.0 type-struct,attr"`

	Fields       []xmlField    `xml:"http://www.gtk.org/introspection/core/1.0 field"`
	Constructors []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 constructor"`
	Methods      []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 method"`
	Functions    []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 function"`
}

type xmlBoxed struct {
	xmlInfo
	GLibName     string        `xml:"http://www.gtk.org/introspection/glib/1.0 name,attr"`
	SymbolPrefix string        `xml:"http://www.gtk.org/introspection/c/1.0 symbol-prefix,attr"`
	TypeName     string        `xml:"http://www.gtk.org/introspection/glib/1.0 type-name,attr"`
	GetType      string        `xml:"http://www.gtk.org/introspection/glib/1.0 get-type,attr"`
	Functions    []xmlCallable `xml:"http://www.gtk.org/introspection/core/1.0 function"`
}

// boolAttr converts a "0"/"1" GIR attribute, applying the element's
// documented default when the attribute is absent.
func boolAttr(v string, def bool) bool {
	switch v {
	case "":
		return def
	case "1":
		return true
	default:
		return false
	}
}

// intAttr converts a numeric attribute, returning def when absent or
// malformed.
func intAttr(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
