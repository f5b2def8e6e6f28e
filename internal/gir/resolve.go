package gir

import (
	"strings"

	"github.com/girkit/girdoc/internal/diag"
)

// The resolution passes below run exactly once, in a fixed order, after a
// document and its transitive includes have parsed. Each pass degrades on
// failure: an unresolvable reference is logged and skipped or substituted,
// never fatal, so generation proceeds over slightly malformed input.

// resolveEmptyCTypes guarantees that every interned type name has at least
// one candidate with a concrete C type, synthesizing one from the primary
// namespace's identifier prefix when no document supplied it. Candidates
// are patched in place, so every holder of the interned pointer sees the
// synthesized spelling.
func (r *Repository) resolveEmptyCTypes(seen map[string][]*Type, reporter *diag.Reporter) {
	ns := r.Namespace()
	for fqtn, candidates := range seen {
		resolved := make([]*Type, 0, len(candidates))
		for _, t := range candidates {
			if t.Resolved() {
				resolved = append(resolved, t)
			}
		}
		if len(resolved) == 0 {
			name := fqtn
			if idx := strings.IndexByte(fqtn, '.'); idx >= 0 {
				name = fqtn[idx+1:]
			}
			backstop := ns.IdentifierPrefixes[0] + name
			for _, t := range candidates {
				t.CType = backstop
			}
			resolved = append(resolved, candidates...)
			reporter.Debugf("synthesized C type", "type", fqtn, "ctype", backstop)
		}
		r.Types[fqtn] = resolved
	}
}

// splitQualified splits a possibly namespace-qualified name.
func splitQualified(name string) (ns, local string) {
	if idx := strings.IndexByte(name, '.'); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

// resolveInterfaceRequires replaces each interface's raw prerequisite
// reference with a concrete type carrying its real C type, searching the
// local namespace first and the includes by namespace match otherwise.
func (r *Repository) resolveInterfaceRequires(reporter *diag.Reporter) {
	ns := r.Namespace()
	for _, iface := range ns.GetInterfaces() {
		if iface.Prerequisite == nil {
			continue
		}
		refNS, name := splitQualified(iface.Prerequisite.Name)

		var prereq *Type
		if refNS == "" || refNS == ns.Name {
			prereq = ns.FindPrerequisiteType(name)
		} else {
			prereq = r.findIncludedPrerequisite(refNS, name)
		}
		if prereq == nil {
			reporter.Warnf("could not resolve interface prerequisite",
				"interface", iface.Name, "prerequisite", iface.Prerequisite.Name)
			continue
		}
		if prereq.CType == "" {
			if t := r.FindType(prereq.FQTN()); t != nil {
				prereq.CType = t.CType
			}
		}
		iface.Prerequisite = prereq
		reporter.Debugf("resolved interface prerequisite",
			"interface", iface.Name, "prerequisite", prereq.String())
	}
}

func (r *Repository) findIncludedPrerequisite(nsName, name string) *Type {
	for _, dep := range r.Includes {
		depNS := dep.Namespace()
		if depNS == nil || depNS.Name != nsName {
			continue
		}
		if prereq := depNS.FindPrerequisiteType(name); prereq != nil {
			return &Type{
				Name:      nsName + "." + prereq.Name,
				Namespace: nsName,
				CType:     prereq.CType,
			}
		}
	}
	return nil
}

// resolveClassCTypes derives a C type for classes parsed without one, by
// registry lookup first and identifier-prefix synthesis as the backstop.
// This inverts how g-ir-scanner derives class names from C identifiers.
func (r *Repository) resolveClassCTypes(reporter *diag.Reporter) {
	ns := r.Namespace()
	for _, cls := range ns.GetClasses() {
		if cls.CType != "" {
			continue
		}
		if t := r.FindType(cls.FQTN()); t != nil {
			cls.CType = t.BaseCType()
		} else {
			cls.CType = ns.IdentifierPrefixes[0] + cls.Name
		}
		reporter.Debugf("derived class C type", "class", cls.Name, "ctype", cls.CType)
	}
}

// resolveClassImplements replaces each class's raw interface-name references
// with concrete interface types; references that cannot be found locally or
// through the includes are dropped with a warning.
func (r *Repository) resolveClassImplements(reporter *diag.Reporter) {
	ns := r.Namespace()
	for _, cls := range ns.GetClasses() {
		if len(cls.Implements) == 0 {
			continue
		}
		raw := cls.Implements
		cls.Implements = nil
		for _, ref := range raw {
			refNS, name := splitQualified(ref.Name)

			var t *Type
			if refNS == "" || refNS == ns.Name {
				if iface := ns.FindInterface(name); iface != nil {
					t = &iface.Type
				}
			} else {
				t = r.findIncludedInterface(refNS, name)
			}
			if t == nil {
				reporter.Warnf("could not resolve implemented interface",
					"class", cls.Name, "interface", ref.Name)
				continue
			}
			if t.CType == "" {
				if found := r.FindType(t.FQTN()); found != nil {
					t.CType = found.CType
				}
			}
			cls.Implements = append(cls.Implements, t)
		}
	}
}

func (r *Repository) findIncludedInterface(nsName, name string) *Type {
	for _, dep := range r.Includes {
		depNS := dep.Namespace()
		if depNS == nil || depNS.Name != nsName {
			continue
		}
		if iface := depNS.FindInterface(name); iface != nil {
			return &Type{
				Name:      nsName + "." + iface.Name,
				Namespace: nsName,
				CType:     iface.CType,
			}
		}
	}
	return nil
}

// resolveClassAncestors walks each class's parent chain iteratively,
// accumulating the ordered ancestor list. The walk carries an explicit
// visited set: a parent pointer returning to an already-seen type means a
// cyclic declaration, which truncates the chain with a warning instead of
// looping. The class's parent is normalized to the first real ancestor.
func (r *Repository) resolveClassAncestors(reporter *diag.Reporter) {
	ns := r.Namespace()
	for _, cls := range ns.GetClasses() {
		if cls.Parent == nil {
			continue
		}

		visited := map[string]bool{cls.FQTN(): true}
		var ancestors []*Type

		parent := cls.Parent
		for parent != nil {
			refNS, name := splitQualified(parent.Name)
			if refNS == "" {
				refNS = parent.Namespace
			}

			var real *Class
			realNS := ns
			if refNS == "" || refNS == ns.Name {
				real = ns.FindClass(name)
			} else if dep := r.Includes[refNS]; dep != nil {
				if depNS := dep.Namespace(); depNS != nil {
					realNS = depNS
					real = depNS.FindClass(name)
				}
			}
			if real == nil {
				reporter.Warnf("could not resolve ancestor",
					"class", cls.Name, "parent", parent.String())
				break
			}

			fqtn := realNS.Name + "." + real.Name
			if visited[fqtn] {
				reporter.Warnf("cycle in ancestor chain",
					"class", cls.Name, "ancestor", fqtn)
				break
			}
			visited[fqtn] = true

			if real.CType == "" {
				if t := r.FindType(fqtn); t != nil {
					real.CType = t.CType
				}
			}
			ancestors = append(ancestors, &real.Type)
			parent = real.Parent
		}

		if len(ancestors) > 0 {
			cls.Ancestors = ancestors
			cls.Parent = ancestors[0]
		}
		reporter.Debugf("resolved ancestors", "class", cls.Name, "count", len(ancestors))
	}
}

// resolveMovedTo relocates free functions annotated as moved to another
// type: the function leaves the namespace's free-function listing and is
// reattached, under its new name, to the owning type's function list. A
// target that does not exist in the namespace leaves the function where
// it is.
func (r *Repository) resolveMovedTo(reporter *diag.Reporter) {
	ns := r.Namespace()
	for _, fn := range ns.GetFunctions() {
		if fn.MovedTo == "" {
			continue
		}
		target, newName, ok := strings.Cut(fn.MovedTo, ".")
		if !ok {
			continue
		}
		owner := ns.FindRealType(target)
		if owner == nil {
			reporter.Debugf("moved-to target not found",
				"function", fn.Name, "target", fn.MovedTo)
			continue
		}

		ns.RemoveFunction(fn.Name)

		moved := *fn
		moved.Name = newName
		moved.MovedTo = ""
		if attachFunction(owner, &moved) {
			reporter.Debugf("relocated function",
				"function", fn.Name, "target", fn.MovedTo)
		} else {
			reporter.Warnf("moved-to target cannot hold functions",
				"function", fn.Name, "target", fn.MovedTo)
		}
	}
}

// attachFunction appends a function to the owning type's function list.
// Aliases, constants, and callbacks have no such list.
func attachFunction(owner RealType, fn *Function) bool {
	switch t := owner.(type) {
	case *Class:
		t.Functions = append(t.Functions, fn)
	case *Interface:
		t.Functions = append(t.Functions, fn)
	case *Record:
		t.Functions = append(t.Functions, fn)
	case *Union:
		t.Functions = append(t.Functions, fn)
	case *Enumeration:
		t.Functions = append(t.Functions, fn)
	case *BitField:
		t.Functions = append(t.Functions, fn)
	case *ErrorDomain:
		t.Functions = append(t.Functions, fn)
	case *Boxed:
		t.Functions = append(t.Functions, fn)
	default:
		return false
	}
	return true
}

// resolveSymbols builds the global C identifier table: free functions and
// macros map to themselves, while constructors, methods, and type functions
// map to the declaring type.
func (r *Repository) resolveSymbols() {
	ns := r.Namespace()
	symbols := map[string]Annotated{}
	add := func(identifier string, owner Annotated) {
		if identifier != "" {
			symbols[identifier] = owner
		}
	}

	for _, fn := range ns.GetFunctions() {
		add(fn.Identifier, fn)
	}
	for _, m := range ns.GetFunctionMacros() {
		add(m.Identifier, m)
	}
	for _, cls := range ns.GetClasses() {
		for _, fn := range cls.Constructors {
			add(fn.Identifier, cls)
		}
		for _, m := range cls.Methods {
			add(m.Identifier, cls)
		}
		for _, fn := range cls.Functions {
			add(fn.Identifier, cls)
		}
	}
	for _, iface := range ns.GetInterfaces() {
		for _, m := range iface.Methods {
			add(m.Identifier, iface)
		}
		for _, fn := range iface.Functions {
			add(fn.Identifier, iface)
		}
	}
	for _, rec := range ns.GetRecords() {
		for _, fn := range rec.Constructors {
			add(fn.Identifier, rec)
		}
		for _, m := range rec.Methods {
			add(m.Identifier, rec)
		}
		for _, fn := range rec.Functions {
			add(fn.Identifier, rec)
		}
	}
	for _, u := range ns.GetUnions() {
		for _, fn := range u.Constructors {
			add(fn.Identifier, u)
		}
		for _, m := range u.Methods {
			add(m.Identifier, u)
		}
		for _, fn := range u.Functions {
			add(fn.Identifier, u)
		}
	}
	ns.symbols = symbols
}
