package gir

// Repository is the root of a parsed GIR document: one primary namespace,
// the transitively included repositories, raw package and header metadata,
// and the table of every type reference interned while parsing.
type Repository struct {
	// Includes maps namespace name to the dependency repository it was
	// loaded from. Shared across a parse run, so diamond dependencies
	// resolve to the same repository object.
	Includes map[string]*Repository

	Packages  []string
	CIncludes []string

	// Types maps fully-qualified type name to the resolved reference
	// candidates for that name. Populated by resolution; after it runs,
	// every name has at least one candidate with a concrete C type.
	Types map[string][]*Type

	// GirFile is the path the document was loaded from, when known.
	GirFile string

	namespaces []*Namespace
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{
		Includes: map[string]*Repository{},
		Types:    map[string][]*Type{},
	}
}

// AddNamespace registers a namespace and sets its back-reference.
func (r *Repository) AddNamespace(ns *Namespace) {
	r.namespaces = append(r.namespaces, ns)
	ns.repository = r
}

// Namespace returns the primary namespace, or nil before parsing.
func (r *Repository) Namespace() *Namespace {
	if len(r.namespaces) == 0 {
		return nil
	}
	return r.namespaces[0]
}

// GetNamespace returns the held namespace with the given name.
func (r *Repository) GetNamespace(name string) *Namespace {
	for _, ns := range r.namespaces {
		if ns.Name == name {
			return ns
		}
	}
	return nil
}

// FindIncludedNamespace returns the named namespace from the transitively
// included repositories.
func (r *Repository) FindIncludedNamespace(name string) *Namespace {
	for _, dep := range r.Includes {
		if ns := dep.Namespace(); ns != nil && ns.Name == name {
			return ns
		}
	}
	return nil
}

// FindType returns a resolved reference for a fully-qualified type name,
// preferring candidates with a concrete C type.
func (r *Repository) FindType(fqtn string) *Type {
	candidates := r.Types[fqtn]
	if len(candidates) == 0 {
		return nil
	}
	for _, t := range candidates {
		if t.Resolved() {
			return t
		}
	}
	return candidates[0]
}

// ClassHierarchy returns the parent-to-children edges of the primary
// namespace's class tree. Roots (classes whose full ancestor chain lies
// outside the namespace, or with no parent) appear under the "" key.
// Children keep declaration order.
func (r *Repository) ClassHierarchy() map[string][]string {
	ns := r.Namespace()
	if ns == nil {
		return nil
	}

	edges := map[string][]string{}
	seen := map[string]bool{}
	add := func(parent, child string) {
		if seen[child] {
			return
		}
		seen[child] = true
		edges[parent] = append(edges[parent], child)
	}

	for _, cls := range ns.GetClasses() {
		if len(cls.Ancestors) == 0 {
			add("", cls.Name)
			continue
		}
		add(cls.Ancestors[0].Name, cls.Name)
		// Walk the resolved chain so ancestors from included namespaces
		// show up as intermediate nodes.
		for i := 0; i < len(cls.Ancestors); i++ {
			parent := ""
			if i+1 < len(cls.Ancestors) {
				parent = cls.Ancestors[i+1].Name
			}
			add(parent, cls.Ancestors[i].Name)
		}
	}
	return edges
}
