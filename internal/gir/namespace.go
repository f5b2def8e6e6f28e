package gir

import "strings"

// table is a name-keyed mapping that remembers insertion order. Re-adding
// a name replaces the value in place (last write wins), matching GIR's
// duplicate-declaration semantics.
type table[V any] struct {
	keys []string
	m    map[string]V
}

func (t *table[V]) set(name string, value V) {
	if t.m == nil {
		t.m = map[string]V{}
	}
	if _, ok := t.m[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.m[name] = value
}

func (t *table[V]) get(name string) (V, bool) {
	v, ok := t.m[name]
	return v, ok
}

func (t *table[V]) remove(name string) {
	if _, ok := t.m[name]; !ok {
		return
	}
	delete(t.m, name)
	for i, k := range t.keys {
		if k == name {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

func (t *table[V]) values() []V {
	out := make([]V, 0, len(t.keys))
	for _, k := range t.keys {
		out = append(out, t.m[k])
	}
	return out
}

func (t *table[V]) len() int { return len(t.keys) }

// Namespace is one versioned, named collection of declarations from a
// single library. Declarations are stored per category, keyed by name,
// in document order.
type Namespace struct {
	Name    string
	Version string

	// IdentifierPrefixes maps lightweight names to C identifiers; the
	// first entry seeds synthesized C types during resolution.
	IdentifierPrefixes []string
	SymbolPrefixes     []string

	SharedLibraries []string

	aliases        table[*Alias]
	bitfields      table[*BitField]
	boxeds         table[*Boxed]
	callbacks      table[*Callback]
	classes        table[*Class]
	constants      table[*Constant]
	enumerations   table[*Enumeration]
	errorDomains   table[*ErrorDomain]
	functions      table[*Function]
	functionMacros table[*FunctionMacro]
	interfaces     table[*Interface]
	records        table[*Record]
	unions         table[*Union]

	symbols map[string]Annotated

	// repository is a non-owning back-reference used for cross-namespace
	// lookups through the includes map.
	repository *Repository
}

// NewNamespace returns a namespace. Empty prefix lists default to the
// namespace name (identifier) and its lower-case form (symbol), matching
// how g-ir-scanner derives them.
func NewNamespace(name, version string, identifierPrefixes, symbolPrefixes []string) *Namespace {
	ns := &Namespace{Name: name, Version: version}
	ns.IdentifierPrefixes = identifierPrefixes
	if len(ns.IdentifierPrefixes) == 0 {
		ns.IdentifierPrefixes = []string{name}
	}
	ns.SymbolPrefixes = symbolPrefixes
	if len(ns.SymbolPrefixes) == 0 {
		ns.SymbolPrefixes = []string{strings.ToLower(name)}
	}
	return ns
}

func (ns *Namespace) String() string { return ns.Name + "-" + ns.Version }

// Repository returns the owning repository, or nil before registration.
func (ns *Namespace) Repository() *Repository { return ns.repository }

func (ns *Namespace) AddAlias(a *Alias)                { ns.aliases.set(a.Name, a) }
func (ns *Namespace) AddBitField(b *BitField)          { ns.bitfields.set(b.Name, b) }
func (ns *Namespace) AddBoxed(b *Boxed)                { ns.boxeds.set(b.Name, b) }
func (ns *Namespace) AddCallback(c *Callback)          { ns.callbacks.set(c.Name, c) }
func (ns *Namespace) AddClass(c *Class)                { ns.classes.set(c.Name, c) }
func (ns *Namespace) AddConstant(c *Constant)          { ns.constants.set(c.Name, c) }
func (ns *Namespace) AddEnumeration(e *Enumeration)    { ns.enumerations.set(e.Name, e) }
func (ns *Namespace) AddErrorDomain(e *ErrorDomain)    { ns.errorDomains.set(e.Name, e) }
func (ns *Namespace) AddFunction(f *Function)          { ns.functions.set(f.Name, f) }
func (ns *Namespace) AddFunctionMacro(f *FunctionMacro) { ns.functionMacros.set(f.Name, f) }
func (ns *Namespace) AddInterface(i *Interface)        { ns.interfaces.set(i.Name, i) }
func (ns *Namespace) AddRecord(r *Record)              { ns.records.set(r.Name, r) }
func (ns *Namespace) AddUnion(u *Union)                { ns.unions.set(u.Name, u) }

func (ns *Namespace) GetAliases() []*Alias              { return ns.aliases.values() }
func (ns *Namespace) GetBitFields() []*BitField         { return ns.bitfields.values() }
func (ns *Namespace) GetBoxeds() []*Boxed               { return ns.boxeds.values() }
func (ns *Namespace) GetCallbacks() []*Callback         { return ns.callbacks.values() }
func (ns *Namespace) GetClasses() []*Class              { return ns.classes.values() }
func (ns *Namespace) GetConstants() []*Constant         { return ns.constants.values() }
func (ns *Namespace) GetEnumerations() []*Enumeration   { return ns.enumerations.values() }
func (ns *Namespace) GetErrorDomains() []*ErrorDomain   { return ns.errorDomains.values() }
func (ns *Namespace) GetFunctions() []*Function         { return ns.functions.values() }
func (ns *Namespace) GetFunctionMacros() []*FunctionMacro { return ns.functionMacros.values() }
func (ns *Namespace) GetInterfaces() []*Interface       { return ns.interfaces.values() }
func (ns *Namespace) GetRecords() []*Record             { return ns.records.values() }
func (ns *Namespace) GetUnions() []*Union               { return ns.unions.values() }

// GetEffectiveRecords filters out records that only exist as implementation
// details: private disguised structs and the vtable companion structs of
// classes and interfaces, which would otherwise be listed twice.
func (ns *Namespace) GetEffectiveRecords() []*Record {
	var out []*Record
	for _, r := range ns.records.values() {
		if r.Disguised && strings.Contains(r.Name, "Private") {
			continue
		}
		if r.StructFor != "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

// GetEffectiveFunctionMacros filters out the type-check, accessor, and cast
// macros the GObject type system generates for every registered type.
func (ns *Namespace) GetEffectiveFunctionMacros() []*FunctionMacro {
	var out []*FunctionMacro
	for _, f := range ns.functionMacros.values() {
		if ns.isEffectiveMacro(f) {
			out = append(out, f)
		}
	}
	return out
}

func (ns *Namespace) isEffectiveMacro(f *FunctionMacro) bool {
	if f.Name == strings.ToLower(f.Name) {
		return true
	}
	tokens := strings.Split(f.Name, "_")
	for _, tok := range tokens {
		if tok == "IS" || tok == "GET" {
			return false
		}
	}
	// Re-assemble the tokens into the most likely type name and drop the
	// macro when a registered type of that name exists (cast macros).
	var b strings.Builder
	for _, tok := range tokens {
		if len(tok) > 2 {
			b.WriteString(strings.ToUpper(tok[:1]))
			b.WriteString(strings.ToLower(tok[1:]))
		} else {
			b.WriteString(tok)
		}
	}
	name := b.String()
	if ns.FindClass(name) != nil {
		return false
	}
	if ns.FindInterface(name) != nil {
		return false
	}
	if ns.FindRecord(name) != nil {
		return false
	}
	return true
}

func (ns *Namespace) FindAlias(name string) *Alias {
	a, _ := ns.aliases.get(name)
	return a
}

func (ns *Namespace) FindBitField(name string) *BitField {
	b, _ := ns.bitfields.get(name)
	return b
}

func (ns *Namespace) FindClass(name string) *Class {
	c, _ := ns.classes.get(name)
	return c
}

func (ns *Namespace) FindEnumeration(name string) *Enumeration {
	e, _ := ns.enumerations.get(name)
	return e
}

func (ns *Namespace) FindErrorDomain(name string) *ErrorDomain {
	e, _ := ns.errorDomains.get(name)
	return e
}

func (ns *Namespace) FindInterface(name string) *Interface {
	i, _ := ns.interfaces.get(name)
	return i
}

func (ns *Namespace) FindRecord(name string) *Record {
	r, _ := ns.records.get(name)
	return r
}

func (ns *Namespace) FindUnion(name string) *Union {
	u, _ := ns.unions.get(name)
	return u
}

// FindFunction looks up a free function by name.
func (ns *Namespace) FindFunction(name string) *Function {
	f, _ := ns.functions.get(name)
	return f
}

// FindFunctionMacro looks up a function macro by name.
func (ns *Namespace) FindFunctionMacro(name string) *FunctionMacro {
	m, _ := ns.functionMacros.get(name)
	return m
}

// RemoveFunction drops a free function, used when resolution relocates it
// under its moved-to target type.
func (ns *Namespace) RemoveFunction(name string) {
	ns.functions.remove(name)
}

// RealType is any concrete declared type a symbol can belong to.
type RealType interface {
	Annotated
	anyType()
}

// FindRealType looks a name up across every declared-type category.
func (ns *Namespace) FindRealType(name string) RealType {
	if a, ok := ns.aliases.get(name); ok {
		return a
	}
	if b, ok := ns.bitfields.get(name); ok {
		return b
	}
	if c, ok := ns.callbacks.get(name); ok {
		return c
	}
	if c, ok := ns.constants.get(name); ok {
		return c
	}
	if e, ok := ns.enumerations.get(name); ok {
		return e
	}
	if e, ok := ns.errorDomains.get(name); ok {
		return e
	}
	if c, ok := ns.classes.get(name); ok {
		return c
	}
	if i, ok := ns.interfaces.get(name); ok {
		return i
	}
	if r, ok := ns.records.get(name); ok {
		return r
	}
	if u, ok := ns.unions.get(name); ok {
		return u
	}
	if b, ok := ns.boxeds.get(name); ok {
		return b
	}
	return nil
}

// FindPrerequisiteType looks up a name among the types an interface
// prerequisite can legally reference: classes and interfaces.
func (ns *Namespace) FindPrerequisiteType(name string) *Type {
	if c, ok := ns.classes.get(name); ok {
		return &c.Type
	}
	if i, ok := ns.interfaces.get(name); ok {
		return &i.Type
	}
	return nil
}

// FindSymbol returns the node owning the given C identifier: the declaring
// type for constructors, methods, and type functions, or the function
// itself for free functions and macros. Populated by symbol resolution.
func (ns *Namespace) FindSymbol(identifier string) Annotated {
	return ns.symbols[identifier]
}

// Symbols returns the full C identifier to owning-node table.
func (ns *Namespace) Symbols() map[string]Annotated {
	return ns.symbols
}
