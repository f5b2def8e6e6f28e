// Package gir parses GObject-Introspection GIR XML documents into a typed,
// cross-referenced repository graph.
//
// Parsing and resolution are two temporally disjoint phases: the parser
// builds the graph while walking the document (recursively loading included
// namespaces), then the resolver runs a fixed sequence of whole-graph passes
// that backfill C types, resolve inheritance chains and interface lists, and
// build the symbol table. After resolution the graph is read-only and safe
// for concurrent readers.
package gir

// Doc is a documentation block attached to a declaration, pointing back at
// the source comment it was extracted from.
type Doc struct {
	Content  string
	Filename string
	Line     int
}

// SourcePosition is a location in the C source the declaration came from.
type SourcePosition struct {
	Filename string
	Line     int
}

// Include names a GIR document pulled in by a repository.
type Include struct {
	Name    string
	Version string
}

// String returns the Name-Version form used in dependency listings.
func (i Include) String() string {
	if i.Version == "" {
		return i.Name
	}
	return i.Name + "-" + i.Version
}

// GirFile returns the file name the include resolves to in a search path.
func (i Include) GirFile() string {
	return i.String() + ".gir"
}

// Info carries the metadata shared by every declaration: documentation,
// deprecation, annotations, introspectability, and source position.
// It is embedded in every entity type; the zero value means introspectable
// with no documentation.
type Info struct {
	Doc               *Doc
	SourcePosition    *SourcePosition
	Attributes        map[string]string
	Version           string
	Stability         string
	Deprecated        bool
	DeprecationNote   string
	DeprecatedVersion string

	// NotIntrospectable is inverted so that the zero value keeps the GIR
	// default of introspectable="1".
	NotIntrospectable bool
}

// Base returns the embedded Info, satisfying Annotated for every entity.
func (i *Info) Base() *Info { return i }

// Introspectable reports whether the declaration is visible to bindings.
func (i *Info) Introspectable() bool { return !i.NotIntrospectable }

// SetAttribute records a user-defined annotation.
func (i *Info) SetAttribute(name, value string) {
	if i.Attributes == nil {
		i.Attributes = map[string]string{}
	}
	i.Attributes[name] = value
}

// DeprecatedSince returns the deprecation version and message, or ok=false
// when the declaration is not deprecated. A missing message gets a stock one.
func (i *Info) DeprecatedSince() (version, message string, ok bool) {
	if !i.Deprecated {
		return "", "", false
	}
	message = i.DeprecationNote
	if message == "" {
		message = "Please do not use it in newly written code"
	}
	return i.DeprecatedVersion, message, true
}

// Annotated is satisfied by every node in the repository graph; it gives
// renderers and indexers uniform access to the shared metadata.
type Annotated interface {
	Base() *Info
}
