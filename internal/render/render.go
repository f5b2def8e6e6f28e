// Package render produces the cross-linked HTML reference pages for a
// resolved repository graph: one page per declaration, aggregate pages for
// free functions and constants, and an index page with the class hierarchy.
package render

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/girkit/girdoc/internal/config"
	"github.com/girkit/girdoc/internal/gir"
)

type Renderer struct {
	repo   *gir.Repository
	cfg    *config.Config
	logger *slog.Logger
	tmpl   *template.Template
}

func New(repo *gir.Repository, cfg *config.Config, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.New("girdoc").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{repo: repo, cfg: cfg, logger: logger, tmpl: tmpl}, nil
}

// Run renders every page into outDir. The graph is frozen by the time the
// renderer sees it, so categories render in parallel.
func (r *Renderer) Run(ctx context.Context, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	ns := r.repo.Namespace()
	if ns == nil {
		return fmt.Errorf("repository has no namespace")
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, cls := range ns.GetClasses() {
			if err := r.writePage(outDir, r.classPage(cls)); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, iface := range ns.GetInterfaces() {
			if err := r.writePage(outDir, r.interfacePage(iface)); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, rec := range ns.GetEffectiveRecords() {
			if err := r.writePage(outDir, r.recordPage(rec)); err != nil {
				return err
			}
		}
		for _, u := range ns.GetUnions() {
			if err := r.writePage(outDir, r.unionPage(u)); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, e := range ns.GetEnumerations() {
			if err := r.writePage(outDir, r.enumPage("enum", &e.Type, e.Members, e.Functions)); err != nil {
				return err
			}
		}
		for _, b := range ns.GetBitFields() {
			if err := r.writePage(outDir, r.enumPage("flags", &b.Type, b.Members, b.Functions)); err != nil {
				return err
			}
		}
		for _, e := range ns.GetErrorDomains() {
			if err := r.writePage(outDir, r.enumPage("error", &e.Type, e.Members, e.Functions)); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, a := range ns.GetAliases() {
			if err := r.writePage(outDir, r.aliasPage(a)); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		return r.writePage(outDir, r.functionsPage())
	})
	g.Go(func() error {
		return r.writePage(outDir, r.constantsPage())
	})
	if err := g.Wait(); err != nil {
		return err
	}

	// The index links everything, so it renders last.
	return r.writeIndex(outDir)
}

// page is the data handed to the page template.
type page struct {
	Library     config.LibraryConfig
	Namespace   string
	Title       string
	Kind        string
	Filename    string
	CType       string
	Doc         template.HTML
	Deprecation string
	Ancestors   []link
	Implements  []link
	Members     []memberEntry
	Sections    []section
}

type link struct {
	Name string
	Href string
}

type memberEntry struct {
	Name       string
	Value      string
	Identifier string
	Doc        template.HTML
}

type section struct {
	Title  string
	Anchor string
	Items  []item
}

type item struct {
	Anchor      string
	Name        string
	Signature   string
	Doc         template.HTML
	Deprecation string
}

func (r *Renderer) newPage(kind, name, ctype string, info *gir.Info) page {
	p := page{
		Library:   r.cfg.Library,
		Namespace: r.repo.Namespace().Name,
		Title:     name,
		Kind:      kind,
		Filename:  PageName(kind, name),
		CType:     ctype,
		Doc:       r.docHTML(info.Doc),
	}
	if version, message, ok := info.DeprecatedSince(); ok {
		p.Deprecation = deprecationLine(version, message)
	}
	return p
}

func deprecationLine(version, message string) string {
	if version != "" {
		return fmt.Sprintf("Deprecated since %s. %s", version, message)
	}
	return "Deprecated. " + message
}

func (r *Renderer) classPage(cls *gir.Class) page {
	p := r.newPage("class", cls.Name, cls.CType, cls.Base())
	for _, anc := range cls.Ancestors {
		p.Ancestors = append(p.Ancestors, r.typeLink(anc))
	}
	for _, impl := range cls.Implements {
		p.Implements = append(p.Implements, r.typeLink(impl))
	}
	p.Sections = appendSection(p.Sections, "Constructors", "ctor", r.functionItems("ctor", cls.Constructors))
	p.Sections = appendSection(p.Sections, "Methods", "method", r.methodItems(cls.Methods))
	p.Sections = appendSection(p.Sections, "Functions", "func", r.functionItems("func", cls.Functions))
	p.Sections = appendSection(p.Sections, "Virtual methods", "vfunc", r.virtualItems(cls.VirtualMethods))
	p.Sections = appendSection(p.Sections, "Properties", "property", r.propertyItems(cls.Properties))
	p.Sections = appendSection(p.Sections, "Signals", "signal", r.signalItems(cls.Signals))
	return p
}

func (r *Renderer) interfacePage(iface *gir.Interface) page {
	p := r.newPage("iface", iface.Name, iface.CType, iface.Base())
	if iface.Prerequisite != nil {
		p.Ancestors = append(p.Ancestors, r.typeLink(iface.Prerequisite))
	}
	p.Sections = appendSection(p.Sections, "Methods", "method", r.methodItems(iface.Methods))
	p.Sections = appendSection(p.Sections, "Functions", "func", r.functionItems("func", iface.Functions))
	p.Sections = appendSection(p.Sections, "Virtual methods", "vfunc", r.virtualItems(iface.VirtualMethods))
	p.Sections = appendSection(p.Sections, "Properties", "property", r.propertyItems(iface.Properties))
	p.Sections = appendSection(p.Sections, "Signals", "signal", r.signalItems(iface.Signals))
	return p
}

func (r *Renderer) recordPage(rec *gir.Record) page {
	p := r.newPage("struct", rec.Name, rec.CType, rec.Base())
	p.Sections = appendSection(p.Sections, "Constructors", "ctor", r.functionItems("ctor", rec.Constructors))
	p.Sections = appendSection(p.Sections, "Methods", "method", r.methodItems(rec.Methods))
	p.Sections = appendSection(p.Sections, "Functions", "func", r.functionItems("func", rec.Functions))
	p.Sections = appendSection(p.Sections, "Fields", "field", r.fieldItems(rec.Fields))
	return p
}

func (r *Renderer) unionPage(u *gir.Union) page {
	p := r.newPage("union", u.Name, u.CType, u.Base())
	p.Sections = appendSection(p.Sections, "Constructors", "ctor", r.functionItems("ctor", u.Constructors))
	p.Sections = appendSection(p.Sections, "Methods", "method", r.methodItems(u.Methods))
	p.Sections = appendSection(p.Sections, "Functions", "func", r.functionItems("func", u.Functions))
	p.Sections = appendSection(p.Sections, "Fields", "field", r.fieldItems(u.Fields))
	return p
}

func (r *Renderer) enumPage(kind string, t *gir.Type, members []*gir.Member, functions []*gir.Function) page {
	p := r.newPage(kind, t.Name, t.CType, t.Base())
	for _, m := range members {
		p.Members = append(p.Members, memberEntry{
			Name:       m.Name,
			Value:      m.Value,
			Identifier: m.Identifier,
			Doc:        r.docHTML(m.Doc),
		})
	}
	p.Sections = appendSection(p.Sections, "Functions", "func", r.functionItems("func", functions))
	return p
}

func (r *Renderer) aliasPage(a *gir.Alias) page {
	p := r.newPage("alias", a.Name, a.CType, a.Base())
	p.Sections = appendSection(p.Sections, "Aliased type", "target", []item{{
		Anchor:    "target",
		Name:      a.Name,
		Signature: "typedef " + ctypeOf(a.Target) + " " + a.CType,
	}})
	return p
}

func (r *Renderer) functionsPage() page {
	ns := r.repo.Namespace()
	p := page{
		Library:   r.cfg.Library,
		Namespace: ns.Name,
		Title:     "Functions",
		Kind:      "functions",
		Filename:  "functions.html",
	}
	p.Sections = appendSection(p.Sections, "Functions", "func", r.functionItems("func", ns.GetFunctions()))

	var macros []item
	for _, m := range ns.GetEffectiveFunctionMacros() {
		macros = append(macros, r.callableItem("macro", &m.Callable, nil))
	}
	p.Sections = appendSection(p.Sections, "Function macros", "macro", macros)

	var callbacks []item
	for _, cb := range ns.GetCallbacks() {
		callbacks = append(callbacks, r.callableItem("callback", &cb.Callable, nil))
	}
	p.Sections = appendSection(p.Sections, "Callbacks", "callback", callbacks)
	return p
}

func (r *Renderer) constantsPage() page {
	ns := r.repo.Namespace()
	p := page{
		Library:   r.cfg.Library,
		Namespace: ns.Name,
		Title:     "Constants",
		Kind:      "constants",
		Filename:  "constants.html",
	}
	var items []item
	for _, c := range ns.GetConstants() {
		items = append(items, item{
			Anchor:    "const." + c.Name,
			Name:      c.Name,
			Signature: fmt.Sprintf("#define %s %s", c.CType, c.Value),
			Doc:       r.docHTML(c.Doc),
		})
	}
	p.Sections = appendSection(p.Sections, "Constants", "const", items)
	return p
}

func appendSection(sections []section, title, anchor string, items []item) []section {
	if len(items) == 0 {
		return sections
	}
	return append(sections, section{Title: title, Anchor: anchor, Items: items})
}

func (r *Renderer) typeLink(t *gir.Type) link {
	l := link{Name: t.String()}
	if t.Namespace == "" || t.Namespace == r.repo.Namespace().Name {
		l.Href = r.pageForName(t.Name)
	}
	return l
}

func (r *Renderer) callableItem(prefix string, c *gir.Callable, instance *gir.Parameter) item {
	it := item{
		Anchor:    prefix + "." + c.Name,
		Name:      c.Name,
		Signature: signature(c, instance),
		Doc:       r.docHTML(c.Doc),
	}
	if version, message, ok := c.DeprecatedSince(); ok {
		it.Deprecation = deprecationLine(version, message)
	}
	return it
}

func (r *Renderer) functionItems(prefix string, fns []*gir.Function) []item {
	var out []item
	for _, fn := range fns {
		out = append(out, r.callableItem(prefix, &fn.Callable, nil))
	}
	return out
}

func (r *Renderer) methodItems(methods []*gir.Method) []item {
	var out []item
	for _, m := range methods {
		out = append(out, r.callableItem("method", &m.Callable, m.InstanceParameter))
	}
	return out
}

func (r *Renderer) virtualItems(vms []*gir.VirtualMethod) []item {
	var out []item
	for _, vm := range vms {
		out = append(out, r.callableItem("vfunc", &vm.Callable, vm.InstanceParameter))
	}
	return out
}

func (r *Renderer) propertyItems(props []*gir.Property) []item {
	var out []item
	for _, prop := range props {
		access := make([]string, 0, 2)
		if prop.Readable {
			access = append(access, "read")
		}
		if prop.Writable {
			access = append(access, "write")
		}
		out = append(out, item{
			Anchor:    "property." + prop.Name,
			Name:      prop.Name,
			Signature: fmt.Sprintf("%s (%s)", ctypeOf(prop.Target), strings.Join(access, " / ")),
			Doc:       r.docHTML(prop.Doc),
		})
	}
	return out
}

func (r *Renderer) signalItems(signals []*gir.Signal) []item {
	var out []item
	for _, sig := range signals {
		ret := "void"
		if sig.Return != nil {
			ret = ctypeOf(sig.Return.Target)
		}
		out = append(out, item{
			Anchor:    "signal." + sig.Name,
			Name:      sig.Name,
			Signature: fmt.Sprintf("%s %s (...)", ret, sig.Name),
			Doc:       r.docHTML(sig.Doc),
		})
	}
	return out
}

func (r *Renderer) fieldItems(fields []*gir.Field) []item {
	var out []item
	for _, f := range fields {
		if f.Private {
			continue
		}
		out = append(out, item{
			Anchor:    "field." + f.Name,
			Name:      f.Name,
			Signature: ctypeOf(f.Target) + " " + f.Name,
			Doc:       r.docHTML(f.Doc),
		})
	}
	return out
}

// ctypeOf is the C spelling a type annotation renders as.
func ctypeOf(t gir.AnyType) string {
	switch v := t.(type) {
	case *gir.Type:
		if v.CType != "" {
			return v.CType
		}
		return v.Name
	case *gir.ArrayType:
		if v.CType != "" {
			return v.CType
		}
		return ctypeOf(v.ValueType) + "*"
	case *gir.ListType:
		if v.CType != "" {
			return v.CType
		}
		return v.Name
	case *gir.MapType:
		if v.CType != "" {
			return v.CType
		}
		return v.Name
	case *gir.VarArgs:
		return "..."
	case *gir.Callback:
		if v.CType != "" {
			return v.CType
		}
		return v.Name
	default:
		return "void"
	}
}

// signature renders a C-style declaration for a callable.
func signature(c *gir.Callable, instance *gir.Parameter) string {
	var params []string
	if instance != nil {
		params = append(params, ctypeOf(instance.Target)+" "+instance.Name)
	}
	for _, p := range c.Parameters {
		if _, ok := p.Target.(*gir.VarArgs); ok {
			params = append(params, "...")
			continue
		}
		params = append(params, ctypeOf(p.Target)+" "+p.Name)
	}
	if len(params) == 0 {
		params = append(params, "void")
	}

	name := c.Identifier
	if name == "" {
		name = c.Name
	}
	ret := "void"
	if c.Return != nil {
		ret = ctypeOf(c.Return.Target)
	}
	return fmt.Sprintf("%s %s (%s)", ret, name, strings.Join(params, ", "))
}

func (r *Renderer) writePage(outDir string, p page) error {
	f, err := os.Create(filepath.Join(outDir, p.Filename))
	if err != nil {
		return fmt.Errorf("creating page %s: %w", p.Filename, err)
	}
	defer f.Close()

	if err := r.tmpl.ExecuteTemplate(f, "page", p); err != nil {
		return fmt.Errorf("rendering page %s: %w", p.Filename, err)
	}
	r.logger.Debug("wrote page", "file", p.Filename)
	return nil
}

// hierNode is one node of the rendered class hierarchy tree.
type hierNode struct {
	Name     string
	Href     string
	Children []*hierNode
}

func (r *Renderer) hierarchyTree() []*hierNode {
	edges := r.repo.ClassHierarchy()

	var build func(parent string) []*hierNode
	build = func(parent string) []*hierNode {
		names := edges[parent]
		nodes := make([]*hierNode, 0, len(names))
		for _, name := range names {
			nodes = append(nodes, &hierNode{
				Name:     name,
				Href:     r.pageForName(name),
				Children: build(name),
			})
		}
		return nodes
	}
	return build("")
}

type indexData struct {
	Library      config.LibraryConfig
	Title        string
	Namespace    string
	Version      string
	Hierarchy    []*hierNode
	Categories   []indexCategory
	Dependencies []dependencyEntry
}

type indexCategory struct {
	Title string
	Items []indexItem
}

type indexItem struct {
	Name    string
	Href    string
	Summary string
}

type dependencyEntry struct {
	Include     string
	Name        string
	Description string
	DocsURL     string
}

func (r *Renderer) writeIndex(outDir string) error {
	ns := r.repo.Namespace()
	data := indexData{
		Library:   r.cfg.Library,
		Title:     "Index",
		Namespace: ns.Name,
		Version:   ns.Version,
		Hierarchy: r.hierarchyTree(),
	}

	addCategory := func(title string, items []indexItem) {
		if len(items) > 0 {
			data.Categories = append(data.Categories, indexCategory{Title: title, Items: items})
		}
	}

	var classes []indexItem
	for _, cls := range ns.GetClasses() {
		classes = append(classes, r.indexItem(cls.Name, PageName("class", cls.Name), cls.Doc))
	}
	addCategory("Classes", classes)

	var ifaces []indexItem
	for _, iface := range ns.GetInterfaces() {
		ifaces = append(ifaces, r.indexItem(iface.Name, PageName("iface", iface.Name), iface.Doc))
	}
	addCategory("Interfaces", ifaces)

	var records []indexItem
	for _, rec := range ns.GetEffectiveRecords() {
		records = append(records, r.indexItem(rec.Name, PageName("struct", rec.Name), rec.Doc))
	}
	addCategory("Structs", records)

	var unions []indexItem
	for _, u := range ns.GetUnions() {
		unions = append(unions, r.indexItem(u.Name, PageName("union", u.Name), u.Doc))
	}
	addCategory("Unions", unions)

	var enums []indexItem
	for _, e := range ns.GetEnumerations() {
		enums = append(enums, r.indexItem(e.Name, PageName("enum", e.Name), e.Doc))
	}
	for _, b := range ns.GetBitFields() {
		enums = append(enums, r.indexItem(b.Name, PageName("flags", b.Name), b.Doc))
	}
	for _, e := range ns.GetErrorDomains() {
		enums = append(enums, r.indexItem(e.Name, PageName("error", e.Name), e.Doc))
	}
	addCategory("Enumerations", enums)

	var aliases []indexItem
	for _, a := range ns.GetAliases() {
		aliases = append(aliases, r.indexItem(a.Name, PageName("alias", a.Name), a.Doc))
	}
	addCategory("Aliases", aliases)

	if len(ns.GetFunctions())+len(ns.GetEffectiveFunctionMacros())+len(ns.GetCallbacks()) > 0 {
		addCategory("Functions", []indexItem{{Name: "Functions", Href: "functions.html"}})
	}
	if len(ns.GetConstants()) > 0 {
		addCategory("Constants", []indexItem{{Name: "Constants", Href: "constants.html"}})
	}

	includes := make([]string, 0, len(r.repo.Includes))
	for name, dep := range r.repo.Includes {
		depNS := dep.Namespace()
		if depNS == nil {
			continue
		}
		includes = append(includes, name+"-"+depNS.Version)
	}
	sort.Strings(includes)
	for _, include := range includes {
		dep := r.cfg.Dependency(include)
		data.Dependencies = append(data.Dependencies, dependencyEntry{
			Include:     include,
			Name:        dep.Name,
			Description: dep.Description,
			DocsURL:     dep.DocsURL,
		})
	}

	f, err := os.Create(filepath.Join(outDir, "index.html"))
	if err != nil {
		return fmt.Errorf("creating index page: %w", err)
	}
	defer f.Close()

	if err := r.tmpl.ExecuteTemplate(f, "index", data); err != nil {
		return fmt.Errorf("rendering index page: %w", err)
	}
	r.logger.Info("rendered reference pages", "namespace", ns.String(), "dir", outDir)
	return nil
}

func (r *Renderer) indexItem(name, href string, doc *gir.Doc) indexItem {
	it := indexItem{Name: name, Href: href}
	if doc != nil {
		it.Summary = Summary(doc.Content)
	}
	return it
}
