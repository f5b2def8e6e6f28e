package render

import (
	"fmt"
	"html/template"
	"regexp"
	"strings"

	gm "github.com/gomarkdown/markdown"
	gmast "github.com/gomarkdown/markdown/ast"
	gmhtml "github.com/gomarkdown/markdown/html"
	gmparser "github.com/gomarkdown/markdown/parser"

	"github.com/girkit/girdoc/internal/gir"
)

// xrefPattern matches gtk-doc cross-reference spans such as
// [class@Gtk.Window], [method@Gtk.Window.present], [func@Gtk.init],
// [property@Gtk.Window:title], [signal@Gtk.Window::close-request], and
// [id@gtk_window_new].
var xrefPattern = regexp.MustCompile(`\[(\w+)@([A-Za-z0-9_]+(?:[.:][A-Za-z0-9_:-]+)*)\]`)

// resolveXrefs rewrites cross-reference spans into markdown links against
// the generated pages. References into other namespaces, or to names the
// repository does not know, degrade to plain code spans.
func (r *Renderer) resolveXrefs(src string) string {
	return xrefPattern.ReplaceAllStringFunc(src, func(match string) string {
		groups := xrefPattern.FindStringSubmatch(match)
		kind, target := groups[1], groups[2]
		if href, label, ok := r.resolveXref(kind, target); ok {
			return fmt.Sprintf("[%s](%s)", label, href)
		}
		return "`" + target + "`"
	})
}

func (r *Renderer) resolveXref(kind, target string) (href, label string, ok bool) {
	ns := r.repo.Namespace()

	if kind == "id" {
		node := ns.FindSymbol(target)
		if node == nil {
			return "", "", false
		}
		if page := r.pageForNode(node); page != "" {
			return page, target, true
		}
		return "", "", false
	}

	nsName, rest := splitTarget(target)
	if nsName != "" && nsName != ns.Name {
		// Cross-namespace reference; out of scope for local pages.
		return "", "", false
	}

	switch kind {
	case "class", "iface", "struct", "union", "enum", "flags", "error",
		"alias", "callback", "const":
		if page := r.pageForName(rest); page != "" {
			return page, target, true
		}
	case "func":
		if ns.FindFunction(rest) != nil {
			return "functions.html#func." + rest, target, true
		}
		// Type-level function: Type.name.
		if typeName, fnName, found := strings.Cut(rest, "."); found {
			if page := r.pageForName(typeName); page != "" {
				return page + "#func." + fnName, target, true
			}
		}
	case "ctor", "method", "vfunc":
		typeName, member, found := strings.Cut(rest, ".")
		if !found {
			return "", "", false
		}
		if page := r.pageForName(typeName); page != "" {
			return page + "#" + kind + "." + member, target, true
		}
	case "property":
		typeName, prop, found := strings.Cut(rest, ":")
		if !found {
			return "", "", false
		}
		if page := r.pageForName(typeName); page != "" {
			return page + "#property." + strings.TrimPrefix(prop, ":"), target, true
		}
	case "signal":
		typeName, sig, found := strings.Cut(rest, "::")
		if !found {
			return "", "", false
		}
		if page := r.pageForName(typeName); page != "" {
			return page + "#signal." + sig, target, true
		}
	}
	return "", "", false
}

func splitTarget(target string) (ns, rest string) {
	// The namespace is the leading dot-separated component when the next
	// component starts a type or function name.
	if idx := strings.IndexByte(target, '.'); idx >= 0 {
		return target[:idx], target[idx+1:]
	}
	return "", target
}

// pageForName returns the generated page file for a declared type name.
func (r *Renderer) pageForName(name string) string {
	ns := r.repo.Namespace()
	switch {
	case ns.FindClass(name) != nil:
		return PageName("class", name)
	case ns.FindInterface(name) != nil:
		return PageName("iface", name)
	case ns.FindRecord(name) != nil:
		return PageName("struct", name)
	case ns.FindUnion(name) != nil:
		return PageName("union", name)
	case ns.FindEnumeration(name) != nil:
		return PageName("enum", name)
	case ns.FindBitField(name) != nil:
		return PageName("flags", name)
	case ns.FindErrorDomain(name) != nil:
		return PageName("error", name)
	case ns.FindAlias(name) != nil:
		return PageName("alias", name)
	}
	return ""
}

func (r *Renderer) pageForNode(node gir.Annotated) string {
	switch owner := node.(type) {
	case *gir.Class:
		return PageName("class", owner.Name)
	case *gir.Interface:
		return PageName("iface", owner.Name)
	case *gir.Record:
		return PageName("struct", owner.Name)
	case *gir.Union:
		return PageName("union", owner.Name)
	case *gir.Function:
		return "functions.html#func." + owner.Name
	case *gir.FunctionMacro:
		return "functions.html#macro." + owner.Name
	}
	return ""
}

// PageName returns the output file name for a declaration page.
func PageName(kind, name string) string {
	return kind + "." + name + ".html"
}

// docHTML converts a documentation block to HTML: cross-references are
// resolved first, then the text runs through the markdown pipeline.
func (r *Renderer) docHTML(doc *gir.Doc) template.HTML {
	if doc == nil || doc.Content == "" {
		return ""
	}
	src := r.resolveXrefs(doc.Content)
	parsed := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))
	renderer := gmhtml.NewRenderer(gmhtml.RendererOptions{
		Flags: gmhtml.CommonFlags,
	})
	return template.HTML(gm.Render(parsed, renderer))
}

// Summary extracts the first paragraph of a documentation block as plain
// text, for listings and the search index.
func Summary(content string) string {
	if content == "" {
		return ""
	}
	parsed := gm.Parse([]byte(content), gmparser.NewWithExtensions(
		gmparser.CommonExtensions,
	))

	var b strings.Builder
	done := false
	gmast.WalkFunc(parsed, func(node gmast.Node, entering bool) gmast.WalkStatus {
		if done {
			return gmast.Terminate
		}
		if _, ok := node.(*gmast.Paragraph); ok && !entering {
			done = true
			return gmast.Terminate
		}
		if !entering {
			return gmast.GoToNext
		}
		switch leaf := node.(type) {
		case *gmast.Text:
			b.Write(leaf.Literal)
		case *gmast.Code:
			b.Write(leaf.Literal)
		}
		return gmast.GoToNext
	})

	summary := strings.Join(strings.Fields(b.String()), " ")
	// Strip the raw cross-reference syntax from the plain text.
	summary = xrefPattern.ReplaceAllString(summary, "$2")
	return summary
}
