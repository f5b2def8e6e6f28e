package gir

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/girkit/girdoc/internal/diag"
)

// ParseError reports a document that is not a recognizable GIR repository.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parsing GIR document %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("parsing GIR document: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parser loads GIR documents and their transitive includes into a resolved
// repository graph. It is single-threaded: one Parse call runs to
// completion before the graph is handed out.
type Parser struct {
	searchPaths []string
	registry    *typeRegistry
	reporter    *diag.Reporter

	// dependencies memoizes loaded includes by namespace name so diamond
	// and cyclic include graphs never reparse a document.
	dependencies map[string]*Repository
	loading      map[string]bool

	nsStack []*Namespace
}

// NewParser returns a parser that resolves includes against the given
// ordered search paths.
func NewParser(searchPaths []string, reporter *diag.Reporter) *Parser {
	if reporter == nil {
		reporter = diag.New(nil)
	}
	return &Parser{
		searchPaths:  append([]string(nil), searchPaths...),
		registry:     newTypeRegistry(),
		reporter:     reporter,
		dependencies: map[string]*Repository{},
		loading:      map[string]bool{},
	}
}

// AppendSearchPath adds a directory to the end of the include search list.
func (p *Parser) AppendSearchPath(path string) {
	p.searchPaths = append(p.searchPaths, path)
}

// PrependSearchPath adds a directory to the front of the include search list.
func (p *Parser) PrependSearchPath(path string) {
	p.searchPaths = append([]string{path}, p.searchPaths...)
}

// Dependency returns a previously loaded include by namespace name.
func (p *Parser) Dependency(name string) *Repository {
	return p.dependencies[name]
}

// ParseFile parses the GIR document at path, recursively loading its
// includes, and runs the resolution passes over the result.
func (p *Parser) ParseFile(path string) (*Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening GIR document: %w", err)
	}
	defer f.Close()

	repo, err := p.Parse(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	repo.GirFile = path
	return repo, nil
}

// Parse parses a GIR document from r and runs the resolution passes.
func (p *Parser) Parse(r io.Reader) (*Repository, error) {
	repo, err := p.parseTree(r)
	if err != nil {
		return nil, err
	}

	// The fixed pass sequence; order matters, see resolve.go.
	repo.resolveEmptyCTypes(p.registry.candidates(), p.reporter)
	repo.resolveInterfaceRequires(p.reporter)
	repo.resolveClassCTypes(p.reporter)
	repo.resolveClassImplements(p.reporter)
	repo.resolveClassAncestors(p.reporter)
	repo.resolveMovedTo(p.reporter)
	repo.resolveSymbols()

	return repo, nil
}

// parseTree decodes and builds one document without resolving it;
// dependency documents stop here.
func (p *Parser) parseTree(r io.Reader) (*Repository, error) {
	var doc xmlDocument
	dec := xml.NewDecoder(r)
	if err := decodeRepository(dec, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Namespace == nil {
		return nil, &ParseError{Err: fmt.Errorf("document has no namespace element")}
	}

	repo := NewRepository()
	for _, ci := range doc.CIncludes {
		repo.CIncludes = append(repo.CIncludes, ci.Name)
	}
	for _, pkg := range doc.Packages {
		repo.Packages = append(repo.Packages, pkg.Name)
	}

	// Includes load before the namespace opens so cross-namespace
	// references can resolve against fully parsed dependencies.
	for _, inc := range doc.Includes {
		p.loadDependency(Include{Name: inc.Name, Version: inc.Version})
	}
	repo.Includes = p.dependencies

	xns := doc.Namespace
	ns := NewNamespace(xns.Name, xns.Version,
		splitList(xns.IdentifierPrefixes), splitList(xns.SymbolPrefixes))
	if xns.SharedLibrary != "" {
		ns.SharedLibraries = splitList(xns.SharedLibrary)
	}
	repo.AddNamespace(ns)

	p.pushNamespace(ns)
	defer p.popNamespace()
	p.buildNamespace(ns, xns)

	return repo, nil
}

// decodeRepository rejects any root element that is not a core repository.
func decodeRepository(dec *xml.Decoder, doc *xmlDocument) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space != "http://www.gtk.org/introspection/core/1.0" ||
			start.Name.Local != "repository" {
			return fmt.Errorf("unexpected root element <%s>", start.Name.Local)
		}
		return dec.DecodeElement(doc, &start)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func (p *Parser) pushNamespace(ns *Namespace) { p.nsStack = append(p.nsStack, ns) }
func (p *Parser) popNamespace()               { p.nsStack = p.nsStack[:len(p.nsStack)-1] }

func (p *Parser) currentNamespace() *Namespace {
	if len(p.nsStack) == 0 {
		return nil
	}
	return p.nsStack[len(p.nsStack)-1]
}

// lookupType interns a type reference against the currently-open namespace.
func (p *Parser) lookupType(name, ctype string) *Type {
	return p.registry.lookup(name, ctype, p.currentNamespace())
}

// loadDependency finds and parses an included document, memoizing by
// namespace name. A missing include is reported but does not abort the
// dependent parse; downstream references fail open during resolution.
func (p *Parser) loadDependency(inc Include) {
	if p.dependencies[inc.Name] != nil || p.loading[inc.Name] {
		p.reporter.Debugf("dependency already loaded", "include", inc.String())
		return
	}
	p.loading[inc.Name] = true
	defer delete(p.loading, inc.Name)

	for _, dir := range p.searchPaths {
		path := filepath.Join(dir, inc.GirFile())
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			p.reporter.Errorf("opening GIR dependency", "path", path, "error", err)
			return
		}
		repo, err := p.parseTree(f)
		f.Close()
		if err != nil {
			p.reporter.Errorf("parsing GIR dependency", "path", path, "error", err)
			return
		}
		repo.GirFile = path
		p.dependencies[repo.Namespace().Name] = repo
		p.reporter.Debugf("loaded GIR dependency", "include", inc.String(), "path", path)
		return
	}
	p.reporter.Errorf("could not find GIR dependency in the search paths", "include", inc.String())
}

// buildNamespace dispatches every declaration element to its builder.
// A builder error is scoped to that element: it is reported and the
// declaration skipped, never failing the document.
func (p *Parser) buildNamespace(ns *Namespace, xns *xmlNamespace) {
	for i := range xns.Aliases {
		if err := p.buildAlias(ns, &xns.Aliases[i]); err != nil {
			p.reporter.Errorf("skipping alias", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.BitFields {
		if err := p.buildEnum(ns, &xns.BitFields[i], true); err != nil {
			p.reporter.Errorf("skipping bitfield", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Boxeds {
		if err := p.buildBoxed(ns, &xns.Boxeds[i]); err != nil {
			p.reporter.Errorf("skipping boxed", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Callbacks {
		if err := p.buildCallback(ns, &xns.Callbacks[i]); err != nil {
			p.reporter.Errorf("skipping callback", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Classes {
		if err := p.buildClass(ns, &xns.Classes[i]); err != nil {
			p.reporter.Errorf("skipping class", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Constants {
		if err := p.buildConstant(ns, &xns.Constants[i]); err != nil {
			p.reporter.Errorf("skipping constant", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Enumerations {
		if err := p.buildEnum(ns, &xns.Enumerations[i], false); err != nil {
			p.reporter.Errorf("skipping enumeration", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Functions {
		fn, err := p.buildFunction(&xns.Functions[i], ns.Name)
		if err != nil {
			p.reporter.Errorf("skipping function", "namespace", ns.Name, "error", err)
			continue
		}
		ns.AddFunction(fn)
	}
	for i := range xns.FunctionMacros {
		if err := p.buildFunctionMacro(ns, &xns.FunctionMacros[i]); err != nil {
			p.reporter.Errorf("skipping function macro", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Interfaces {
		if err := p.buildInterface(ns, &xns.Interfaces[i]); err != nil {
			p.reporter.Errorf("skipping interface", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Records {
		if err := p.buildRecord(ns, &xns.Records[i]); err != nil {
			p.reporter.Errorf("skipping record", "namespace", ns.Name, "error", err)
		}
	}
	for i := range xns.Unions {
		if err := p.buildUnion(ns, &xns.Unions[i]); err != nil {
			p.reporter.Errorf("skipping union", "namespace", ns.Name, "error", err)
		}
	}
}

// applyInfo attaches the shared metadata block to a built entity.
func applyInfo(dst *Info, src *xmlInfo) {
	dst.NotIntrospectable = !boolAttr(src.Introspectable, true)
	dst.Version = src.Version
	dst.Stability = src.Stability
	if src.Doc != nil {
		dst.Doc = &Doc{
			Content:  src.Doc.Content,
			Filename: src.Doc.Filename,
			Line:     intAttr(src.Doc.Line, 0),
		}
	}
	if src.SourcePosition != nil {
		dst.SourcePosition = &SourcePosition{
			Filename: src.SourcePosition.Filename,
			Line:     intAttr(src.SourcePosition.Line, 0),
		}
	}
	for _, attr := range src.Attributes {
		if attr.Name != "" {
			dst.SetAttribute(attr.Name, attr.Value)
		}
	}
	if src.Deprecated != "" {
		dst.Deprecated = true
		dst.DeprecatedVersion = src.DeprecatedVersion
		if src.DocDeprecated != nil {
			dst.DeprecationNote = strings.TrimSpace(src.DocDeprecated.Content)
		}
	}
}

// buildTypeRef maps a type annotation to the AnyType variant it denotes.
// See the edge-case policies in the package documentation: `none`/`void`
// is the VoidType sentinel, GLib list shapes become ListType, hash tables
// become MapType, and a specific name spelled as a bare `gpointer` defers
// its C type to resolution.
func (p *Parser) buildTypeRef(t *xmlTyped) AnyType {
	if t.Array != nil {
		return p.buildArrayRef(t.Array)
	}
	if t.Type != nil {
		if ref := p.buildNamedRef(t.Type); ref != nil {
			return ref
		}
		return &VoidType{}
	}
	if t.VarArgs != nil {
		return &VarArgs{}
	}
	return &VoidType{}
}

func (p *Parser) buildArrayRef(arr *xmlArray) AnyType {
	var value AnyType = &VoidType{}
	if arr.Type != nil {
		if ref := p.buildNamedRef(arr.Type); ref != nil {
			value = ref
		}
	}
	return &ArrayType{
		Name:           arr.Name,
		CType:          arr.CType,
		ZeroTerminated: boolAttr(arr.ZeroTerminated, false),
		FixedSize:      intAttr(arr.FixedSize, -1),
		Length:         intAttr(arr.Length, -1),
		ValueType:      value,
	}
}

// buildNamedRef handles a single `<type>` element; nil means the void
// sentinel applies.
func (p *Parser) buildNamedRef(tn *xmlTypeNode) AnyType {
	name, ctype := tn.Name, tn.CType
	switch {
	case name == "" && ctype == "":
		p.reporter.Debugf("empty type annotation")
		return &VoidType{}
	case name == "" && ctype != "":
		// Unnamed type, only the C spelling is known.
		return NewType(strings.ReplaceAll(ctype, "*", ""), ctype)
	case name == "none" && ctype == "void":
		return nil
	case name == "GLib.List" || name == "GLib.SList":
		if len(tn.Types) > 0 {
			elem := tn.Types[0].Name
			if elem == "" {
				elem = "gpointer"
			}
			return &ListType{
				Name:      name,
				CType:     ctype,
				ValueType: p.lookupType(elem, ""),
			}
		}
		return p.lookupType(name, ctype)
	case name == "GLib.HashTable":
		if len(tn.Types) == 2 {
			key := tn.Types[0].Name
			if key == "" {
				key = "gpointer"
			}
			value := tn.Types[1].Name
			if value == "" {
				value = "gpointer"
			}
			return &MapType{
				Name:      name,
				CType:     ctype,
				KeyType:   NewType(key, ""),
				ValueType: NewType(value, ""),
			}
		}
		return p.lookupType(name, ctype)
	case name != "gpointer" && ctype == "gpointer":
		// API returning gpointer to avoid casting; keep the semantic name
		// and let resolution backfill the real C type.
		return p.lookupType(name, "")
	default:
		return p.lookupType(name, ctype)
	}
}

func (p *Parser) buildParameter(xp *xmlParameter) *Parameter {
	param := &Parameter{
		Name:            xp.Name,
		Direction:       defaultString(xp.Direction, "in"),
		Transfer:        defaultString(xp.Transfer, "none"),
		Nullable:        boolAttr(xp.Nullable, false),
		Optional:        boolAttr(xp.Optional, false),
		CallerAllocates: boolAttr(xp.CallerAllocates, true),
		Closure:         intAttr(xp.Closure, -1),
		Destroy:         intAttr(xp.Destroy, -1),
		Scope:           xp.Scope,
	}
	if xp.Callback != nil {
		if cb, err := p.buildInlineCallback(xp.Callback); err == nil {
			param.Target = cb
		} else {
			param.Target = &VoidType{}
		}
	} else {
		param.Target = p.buildTypeRef(&xp.xmlTyped)
	}
	applyInfo(&param.Info, &xp.xmlInfo)
	return param
}

func (p *Parser) buildReturnValue(xr *xmlReturnValue) *ReturnValue {
	if xr == nil {
		return &ReturnValue{Transfer: "none", Closure: -1, Destroy: -1, Target: &VoidType{}}
	}
	ret := &ReturnValue{
		Transfer: defaultString(xr.Transfer, "none"),
		Nullable: boolAttr(xr.Nullable, false),
		Closure:  intAttr(xr.Closure, -1),
		Destroy:  intAttr(xr.Destroy, -1),
		Scope:    xr.Scope,
		Target:   p.buildTypeRef(&xr.xmlTyped),
	}
	applyInfo(&ret.Info, &xr.xmlInfo)
	return ret
}

func (p *Parser) buildCallable(x *xmlCallable, namespace string) (Callable, error) {
	if x.Name == "" {
		return Callable{}, fmt.Errorf("callable element is missing the name attribute")
	}
	c := Callable{
		Name:       x.Name,
		Namespace:  namespace,
		Identifier: x.CIdentifier,
		Throws:     boolAttr(x.Throws, false),
		Shadows:    x.Shadows,
		ShadowedBy: x.ShadowedBy,
		MovedTo:    x.MovedTo,
	}
	c.Return = p.buildReturnValue(x.Return)
	if x.Parameters != nil {
		for i := range x.Parameters.Parameters {
			c.Parameters = append(c.Parameters, p.buildParameter(&x.Parameters.Parameters[i]))
		}
	}
	applyInfo(&c.Info, &x.xmlInfo)
	return c, nil
}

func (p *Parser) buildFunction(x *xmlCallable, namespace string) (*Function, error) {
	c, err := p.buildCallable(x, namespace)
	if err != nil {
		return nil, err
	}
	return &Function{Callable: c}, nil
}

func (p *Parser) buildFunctionMacro(ns *Namespace, x *xmlCallable) error {
	c, err := p.buildCallable(x, ns.Name)
	if err != nil {
		return err
	}
	// Macros have no return annotation in GIR.
	c.Return = &ReturnValue{Transfer: "none", Closure: -1, Destroy: -1, Target: &VoidType{}}
	ns.AddFunctionMacro(&FunctionMacro{Callable: c})
	return nil
}

func (p *Parser) buildMethod(x *xmlCallable) (*Method, error) {
	c, err := p.buildCallable(x, "")
	if err != nil {
		return nil, err
	}
	m := &Method{Callable: c}
	if x.Parameters != nil && x.Parameters.InstanceParameter != nil {
		m.InstanceParameter = p.buildParameter(x.Parameters.InstanceParameter)
	}
	return m, nil
}

func (p *Parser) buildVirtualMethod(x *xmlCallable) (*VirtualMethod, error) {
	c, err := p.buildCallable(x, "")
	if err != nil {
		return nil, err
	}
	vm := &VirtualMethod{Callable: c, Invoker: x.Invoker}
	if x.Parameters != nil && x.Parameters.InstanceParameter != nil {
		vm.InstanceParameter = p.buildParameter(x.Parameters.InstanceParameter)
	}
	return vm, nil
}

// buildInlineCallback builds a callback declared inline as a struct field
// or parameter type; it has no namespace of its own.
func (p *Parser) buildInlineCallback(x *xmlCallable) (*Callback, error) {
	c, err := p.buildCallable(x, "")
	if err != nil {
		return nil, err
	}
	return &Callback{Callable: c, CType: x.CType}, nil
}

func (p *Parser) buildCallback(ns *Namespace, x *xmlCallable) error {
	c, err := p.buildCallable(x, ns.Name)
	if err != nil {
		return err
	}
	ns.AddCallback(&Callback{Callable: c, CType: x.CType})
	return nil
}

func (p *Parser) buildAlias(ns *Namespace, x *xmlAlias) error {
	if x.Name == "" {
		return fmt.Errorf("alias element is missing the name attribute")
	}
	if x.Type == nil {
		return fmt.Errorf("alias %q has no target type", x.Name)
	}
	alias := &Alias{
		Type:   Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
		Target: NewType(x.Type.Name, x.Type.CType),
	}
	applyInfo(&alias.Info, &x.xmlInfo)
	ns.AddAlias(alias)
	return nil
}

func (p *Parser) buildConstant(ns *Namespace, x *xmlConstant) error {
	if x.Name == "" {
		return fmt.Errorf("constant element is missing the name attribute")
	}
	if x.Type == nil {
		return fmt.Errorf("constant %q has no type", x.Name)
	}
	constant := &Constant{
		Type:   Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
		Target: NewType(x.Type.Name, x.Type.CType),
		Value:  x.Value,
	}
	applyInfo(&constant.Info, &x.xmlInfo)
	ns.AddConstant(constant)
	return nil
}

func (p *Parser) buildMember(x *xmlMember) *Member {
	m := &Member{
		Name:       x.Name,
		Value:      x.Value,
		Identifier: x.CIdentifier,
		Nick:       x.Nick,
	}
	applyInfo(&m.Info, &x.xmlInfo)
	return m
}

// buildEnum covers enumerations, bit fields, and error domains; the three
// share one element shape.
func (p *Parser) buildEnum(ns *Namespace, x *xmlEnum, bitfield bool) error {
	if x.Name == "" {
		return fmt.Errorf("enumeration element is missing the name attribute")
	}
	if x.CType == "" {
		return fmt.Errorf("enumeration %q is missing the c:type attribute", x.Name)
	}
	if len(x.Members) == 0 {
		p.reporter.Debugf("enumeration has no members", "name", x.Name)
		return nil
	}

	enum := Enumeration{
		Type: Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
	}
	if x.TypeName != "" {
		enum.GType = &GType{TypeName: x.TypeName, GetType: x.GetType}
	}
	for i := range x.Members {
		enum.Members = append(enum.Members, p.buildMember(&x.Members[i]))
	}
	for i := range x.Functions {
		fn, err := p.buildFunction(&x.Functions[i], "")
		if err != nil {
			p.reporter.Errorf("skipping enumeration function", "enum", x.Name, "error", err)
			continue
		}
		enum.Functions = append(enum.Functions, fn)
	}
	applyInfo(&enum.Info, &x.xmlInfo)

	switch {
	case bitfield:
		ns.AddBitField(&BitField{Enumeration: enum})
	case x.ErrorDomain != "":
		ns.AddErrorDomain(&ErrorDomain{Enumeration: enum, Domain: x.ErrorDomain})
	default:
		ns.AddEnumeration(&enum)
	}
	return nil
}

func (p *Parser) buildProperty(x *xmlProperty) *Property {
	prop := &Property{
		Name:          x.Name,
		Transfer:      x.Transfer,
		Readable:      boolAttr(x.Readable, true),
		Writable:      boolAttr(x.Writable, false),
		Construct:     boolAttr(x.Construct, false),
		ConstructOnly: boolAttr(x.ConstructOnly, false),
		Target:        p.buildTypeRef(&x.xmlTyped),
	}
	applyInfo(&prop.Info, &x.xmlInfo)
	return prop
}

func (p *Parser) buildSignal(x *xmlSignal) *Signal {
	sig := &Signal{
		Name:      x.Name,
		When:      x.When,
		Detailed:  boolAttr(x.Detailed, false),
		Action:    boolAttr(x.Action, false),
		NoHooks:   boolAttr(x.NoHooks, false),
		NoRecurse: boolAttr(x.NoRecurse, false),
	}
	if x.Return != nil {
		sig.Return = p.buildReturnValue(x.Return)
	}
	if x.Parameters != nil {
		for i := range x.Parameters.Parameters {
			sig.Parameters = append(sig.Parameters, p.buildParameter(&x.Parameters.Parameters[i]))
		}
	}
	applyInfo(&sig.Info, &x.xmlInfo)
	return sig
}

func (p *Parser) buildField(x *xmlField) *Field {
	field := &Field{
		Name:     x.Name,
		Readable: boolAttr(x.Readable, false),
		Writable: boolAttr(x.Writable, false),
		Private:  boolAttr(x.Private, false),
		Bits:     intAttr(x.Bits, 0),
	}
	if x.Callback != nil {
		if cb, err := p.buildInlineCallback(x.Callback); err == nil {
			field.Target = cb
		} else {
			field.Target = &VoidType{}
		}
	} else {
		field.Target = p.buildTypeRef(&x.xmlTyped)
	}
	applyInfo(&field.Info, &x.xmlInfo)
	return field
}

func (p *Parser) buildClass(ns *Namespace, x *xmlClass) error {
	if x.Name == "" {
		return fmt.Errorf("class element is missing the name attribute")
	}

	cls := &Class{
		Type:         Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
		SymbolPrefix: x.SymbolPrefix,
		Abstract:     boolAttr(x.Abstract, false),
		Fundamental:  boolAttr(x.Fundamental, false),
		RefFunc:      x.RefFunc,
		UnrefFunc:    x.UnrefFunc,
	}
	if x.Parent != "" {
		cls.Parent = p.lookupType(x.Parent, "")
	}
	if x.TypeName != "" {
		cls.GType = &GType{TypeName: x.TypeName, GetType: x.GetType, TypeStruct: x.TypeStruct}
	}

	for i := range x.Fields {
		cls.Fields = append(cls.Fields, p.buildField(&x.Fields[i]))
	}
	for _, impl := range x.Implements {
		cls.Implements = append(cls.Implements, p.lookupType(impl.Name, ""))
	}
	for i := range x.Constructors {
		fn, err := p.buildFunction(&x.Constructors[i], "")
		if err != nil {
			p.reporter.Errorf("skipping constructor", "class", x.Name, "error", err)
			continue
		}
		cls.Constructors = append(cls.Constructors, fn)
	}
	for i := range x.Methods {
		m, err := p.buildMethod(&x.Methods[i])
		if err != nil {
			p.reporter.Errorf("skipping method", "class", x.Name, "error", err)
			continue
		}
		cls.Methods = append(cls.Methods, m)
	}
	for i := range x.VirtualMethods {
		vm, err := p.buildVirtualMethod(&x.VirtualMethods[i])
		if err != nil {
			p.reporter.Errorf("skipping virtual method", "class", x.Name, "error", err)
			continue
		}
		cls.VirtualMethods = append(cls.VirtualMethods, vm)
	}
	for i := range x.Functions {
		fn, err := p.buildFunction(&x.Functions[i], "")
		if err != nil {
			p.reporter.Errorf("skipping type function", "class", x.Name, "error", err)
			continue
		}
		cls.Functions = append(cls.Functions, fn)
	}
	for i := range x.Properties {
		cls.Properties = append(cls.Properties, p.buildProperty(&x.Properties[i]))
	}
	for i := range x.Signals {
		cls.Signals = append(cls.Signals, p.buildSignal(&x.Signals[i]))
	}

	applyInfo(&cls.Info, &x.xmlInfo)
	ns.AddClass(cls)
	return nil
}

func (p *Parser) buildInterface(ns *Namespace, x *xmlInterface) error {
	if x.Name == "" {
		return fmt.Errorf("interface element is missing the name attribute")
	}

	iface := &Interface{
		Type:         Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
		SymbolPrefix: x.SymbolPrefix,
	}
	if x.TypeName != "" {
		iface.GType = &GType{TypeName: x.TypeName, GetType: x.GetType, TypeStruct: x.TypeStruct}
	}
	if x.Prerequisite != nil {
		iface.Prerequisite = p.lookupType(x.Prerequisite.Name, "")
	}

	for i := range x.Fields {
		iface.Fields = append(iface.Fields, p.buildField(&x.Fields[i]))
	}
	for i := range x.Methods {
		m, err := p.buildMethod(&x.Methods[i])
		if err != nil {
			p.reporter.Errorf("skipping method", "interface", x.Name, "error", err)
			continue
		}
		iface.Methods = append(iface.Methods, m)
	}
	for i := range x.VirtualMethods {
		vm, err := p.buildVirtualMethod(&x.VirtualMethods[i])
		if err != nil {
			p.reporter.Errorf("skipping virtual method", "interface", x.Name, "error", err)
			continue
		}
		iface.VirtualMethods = append(iface.VirtualMethods, vm)
	}
	for i := range x.Functions {
		fn, err := p.buildFunction(&x.Functions[i], "")
		if err != nil {
			p.reporter.Errorf("skipping type function", "interface", x.Name, "error", err)
			continue
		}
		iface.Functions = append(iface.Functions, fn)
	}
	for i := range x.Properties {
		iface.Properties = append(iface.Properties, p.buildProperty(&x.Properties[i]))
	}
	for i := range x.Signals {
		iface.Signals = append(iface.Signals, p.buildSignal(&x.Signals[i]))
	}

	applyInfo(&iface.Info, &x.xmlInfo)
	ns.AddInterface(iface)
	return nil
}

func (p *Parser) buildRecord(ns *Namespace, x *xmlRecord) error {
	if x.Name == "" {
		return fmt.Errorf("record element is missing the name attribute")
	}
	if x.CType == "" {
		return fmt.Errorf("record %q is missing the c:type attribute", x.Name)
	}

	rec := &Record{
		Type:         Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
		SymbolPrefix: x.SymbolPrefix,
		StructFor:    x.StructFor,
		Disguised:    boolAttr(x.Disguised, false),
	}
	if x.TypeName != "" {
		rec.GType = &GType{TypeName: x.TypeName, GetType: x.GetType, TypeStruct: x.TypeStruct}
	}

	for i := range x.Fields {
		rec.Fields = append(rec.Fields, p.buildField(&x.Fields[i]))
	}
	for i := range x.Constructors {
		fn, err := p.buildFunction(&x.Constructors[i], "")
		if err != nil {
			p.reporter.Errorf("skipping constructor", "record", x.Name, "error", err)
			continue
		}
		rec.Constructors = append(rec.Constructors, fn)
	}
	for i := range x.Methods {
		m, err := p.buildMethod(&x.Methods[i])
		if err != nil {
			p.reporter.Errorf("skipping method", "record", x.Name, "error", err)
			continue
		}
		rec.Methods = append(rec.Methods, m)
	}
	for i := range x.Functions {
		fn, err := p.buildFunction(&x.Functions[i], "")
		if err != nil {
			p.reporter.Errorf("skipping type function", "record", x.Name, "error", err)
			continue
		}
		rec.Functions = append(rec.Functions, fn)
	}

	applyInfo(&rec.Info, &x.xmlInfo)
	ns.AddRecord(rec)
	return nil
}

func (p *Parser) buildUnion(ns *Namespace, x *xmlUnion) error {
	if x.Name == "" {
		return fmt.Errorf("union element is missing the name attribute")
	}

	u := &Union{
		Type:         Type{Name: x.Name, Namespace: ns.Name, CType: x.CType},
		SymbolPrefix: x.SymbolPrefix,
	}
	if x.TypeName != "" {
		u.GType = &GType{TypeName: x.TypeName, GetType: x.GetType, TypeStruct: x.TypeStruct}
	}

	for i := range x.Fields {
		u.Fields = append(u.Fields, p.buildField(&x.Fields[i]))
	}
	for i := range x.Constructors {
		fn, err := p.buildFunction(&x.Constructors[i], "")
		if err != nil {
			p.reporter.Errorf("skipping constructor", "union", x.Name, "error", err)
			continue
		}
		u.Constructors = append(u.Constructors, fn)
	}
	for i := range x.Methods {
		m, err := p.buildMethod(&x.Methods[i])
		if err != nil {
			p.reporter.Errorf("skipping method", "union", x.Name, "error", err)
			continue
		}
		u.Methods = append(u.Methods, m)
	}
	for i := range x.Functions {
		fn, err := p.buildFunction(&x.Functions[i], "")
		if err != nil {
			p.reporter.Errorf("skipping type function", "union", x.Name, "error", err)
			continue
		}
		u.Functions = append(u.Functions, fn)
	}

	applyInfo(&u.Info, &x.xmlInfo)
	ns.AddUnion(u)
	return nil
}

func (p *Parser) buildBoxed(ns *Namespace, x *xmlBoxed) error {
	if x.GLibName == "" {
		return fmt.Errorf("boxed element is missing the glib:name attribute")
	}

	boxed := &Boxed{
		Type:         Type{Name: x.GLibName, Namespace: ns.Name},
		SymbolPrefix: x.SymbolPrefix,
	}
	if x.TypeName != "" {
		boxed.GType = &GType{TypeName: x.TypeName, GetType: x.GetType}
	}
	for i := range x.Functions {
		fn, err := p.buildFunction(&x.Functions[i], "")
		if err != nil {
			p.reporter.Errorf("skipping boxed function", "boxed", x.GLibName, "error", err)
			continue
		}
		boxed.Functions = append(boxed.Functions, fn)
	}

	applyInfo(&boxed.Info, &x.xmlInfo)
	ns.AddBoxed(boxed)
	return nil
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
