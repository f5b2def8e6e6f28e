package gir

import "strings"

// fundamentalTypes are the C primitive spellings that never resolve through
// a namespace; the logical name doubles as the C type.
var fundamentalTypes = map[string]bool{
	"gint8": true, "guint8": true, "int8_t": true, "uint8_t": true,
	"gint16": true, "guint16": true, "int16_t": true, "uint16_t": true,
	"gint32": true, "guint32": true, "int32_t": true, "uint32_t": true,
	"gint64": true, "guint64": true, "int64_t": true, "uint64_t": true,
	"gint": true, "guint": true, "int": true, "unsigned": true, "unsigned int": true,
	"gfloat": true, "float": true,
	"gdouble": true, "double": true, "long double": true,
	"gchar": true, "guchar": true, "char": true, "unsigned char": true,
	"gshort": true, "gushort": true, "short": true, "unsigned short": true,
	"glong": true, "gulong": true, "long": true, "unsigned long": true,
	"utf8": true, "filename": true,
	"gunichar": true,
	"gpointer": true, "gconstpointer": true,
	"gchar*": true, "char*": true, "guchar*": true,
	"gsize": true, "gssize": true, "size_t": true,
	"gboolean": true, "bool": true,
	"va_list": true,
}

// glibAliases collapse the GLib spellings of C primitives onto the plain
// C name so both spellings intern to one entry.
var glibAliases = map[string]string{
	"gchar":   "char",
	"gdouble": "double",
	"gfloat":  "float",
	"gint":    "int",
	"glong":   "long",
	"gshort":  "short",
}

// fundamentalCTypes supplies C spellings for well-known types whose GIR
// documents never state one.
var fundamentalCTypes = map[string]string{
	"GObject.Object":           "GObject*",
	"GObject.InitiallyUnowned": "GInitiallyUnowned*",
	"GObject.ParamSpec":        "GObject.ParamSpec*",
}

// typeRegistry interns Type references by fully-qualified name. GIR
// documents mention types by bare name before the declaring element is
// parsed, and mention the same type dozens of times; interning guarantees
// that a later backfill (setting a missing C type during resolution)
// patches every reference at once.
type typeRegistry struct {
	seen map[string][]*Type
}

func newTypeRegistry() *typeRegistry {
	return &typeRegistry{seen: map[string][]*Type{}}
}

// qualify maps a possibly-bare name to its fully-qualified form, using the
// fundamental tables first and the currently-open namespace otherwise.
func (reg *typeRegistry) qualify(name string, ns *Namespace) string {
	if fundamentalTypes[name] {
		if alias, ok := glibAliases[name]; ok {
			return alias
		}
		return name
	}
	// GType belongs to GObject but GLib registers it first.
	if name == "GType" {
		return "GObject.Type"
	}
	if strings.Contains(name, ".") {
		return name
	}
	if ns != nil {
		return ns.Name + "." + name
	}
	return name
}

// lookup interns a type reference. Repeated calls with the same
// (name, ctype) pair return the identical object; a different ctype for a
// known name registers a distinct candidate, since one logical type can
// carry several physical C spellings.
func (reg *typeRegistry) lookup(name, ctype string, ns *Namespace) *Type {
	fqtn := reg.qualify(name, ns)
	if ctype == "" && fundamentalTypes[fqtn] {
		ctype = fqtn
	}
	if ctype == "" {
		if ct, ok := fundamentalCTypes[fqtn]; ok {
			ctype = ct
		}
	}

	if candidates, ok := reg.seen[fqtn]; ok {
		if ctype != "" {
			for _, t := range candidates {
				if t.Resolved() && t.CType == ctype {
					return t
				}
			}
			t := NewType(fqtn, ctype)
			reg.seen[fqtn] = append(candidates, t)
			return t
		}
		return candidates[0]
	}

	t := NewType(fqtn, ctype)
	reg.seen[fqtn] = []*Type{t}
	return t
}

// candidates returns every interned reference list, keyed by
// fully-qualified name. The resolver's backfill pass consumes this.
func (reg *typeRegistry) candidates() map[string][]*Type {
	return reg.seen
}
