// Package index builds the search artifacts for a resolved repository:
// a JSON symbol index for web search frontends (optionally zstd-compressed)
// and a DuckDB symbol store backing `girdoc search` and the MCP server.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/girkit/girdoc/internal/gir"
	"github.com/girkit/girdoc/internal/render"
)

// Symbol is one search-index record.
type Symbol struct {
	Kind       string `json:"type"`
	Name       string `json:"name"`
	CType      string `json:"ctype,omitempty"`
	Identifier string `json:"c_identifier,omitempty"`
	Summary    string `json:"summary,omitempty"`
	Href       string `json:"href"`
	Deprecated bool   `json:"deprecated,omitempty"`
}

// Meta identifies the namespace an index was built from.
type Meta struct {
	Namespace string `json:"ns"`
	Version   string `json:"version"`
}

// Index is the index.json artifact: symbol records plus a lowercase term
// table mapping search terms to symbol positions. Terms are plain lowercase
// tokens; no linguistic stemming is applied.
type Index struct {
	Meta    Meta             `json:"meta"`
	Symbols []Symbol         `json:"symbols"`
	Terms   map[string][]int `json:"terms"`
}

// Build collects every documented declaration of the primary namespace.
func Build(repo *gir.Repository) *Index {
	ns := repo.Namespace()
	ix := &Index{
		Meta:  Meta{Namespace: ns.Name, Version: ns.Version},
		Terms: map[string][]int{},
	}

	typeSymbol := func(kind string, t *gir.Type, identifier string) {
		ix.add(Symbol{
			Kind:       kind,
			Name:       t.Name,
			CType:      t.CType,
			Identifier: identifier,
			Summary:    docSummary(t.Doc),
			Href:       render.PageName(kind, t.Name),
			Deprecated: t.Deprecated,
		})
	}
	memberSymbol := func(kind, page string, c *gir.Callable) {
		ix.add(Symbol{
			Kind:       kind,
			Name:       c.Name,
			Identifier: c.Identifier,
			Summary:    docSummary(c.Doc),
			Href:       page + "#" + kind + "." + c.Name,
			Deprecated: c.Deprecated,
		})
	}

	for _, cls := range ns.GetClasses() {
		page := render.PageName("class", cls.Name)
		typeSymbol("class", &cls.Type, "")
		for _, fn := range cls.Constructors {
			memberSymbol("ctor", page, &fn.Callable)
		}
		for _, m := range cls.Methods {
			memberSymbol("method", page, &m.Callable)
		}
		for _, fn := range cls.Functions {
			memberSymbol("func", page, &fn.Callable)
		}
	}
	for _, iface := range ns.GetInterfaces() {
		page := render.PageName("iface", iface.Name)
		typeSymbol("iface", &iface.Type, "")
		for _, m := range iface.Methods {
			memberSymbol("method", page, &m.Callable)
		}
		for _, fn := range iface.Functions {
			memberSymbol("func", page, &fn.Callable)
		}
	}
	for _, rec := range ns.GetEffectiveRecords() {
		page := render.PageName("struct", rec.Name)
		typeSymbol("struct", &rec.Type, "")
		for _, fn := range rec.Constructors {
			memberSymbol("ctor", page, &fn.Callable)
		}
		for _, m := range rec.Methods {
			memberSymbol("method", page, &m.Callable)
		}
		for _, fn := range rec.Functions {
			memberSymbol("func", page, &fn.Callable)
		}
	}
	for _, u := range ns.GetUnions() {
		typeSymbol("union", &u.Type, "")
	}
	for _, e := range ns.GetEnumerations() {
		typeSymbol("enum", &e.Type, "")
	}
	for _, b := range ns.GetBitFields() {
		typeSymbol("flags", &b.Type, "")
	}
	for _, e := range ns.GetErrorDomains() {
		typeSymbol("error", &e.Type, "")
	}
	for _, a := range ns.GetAliases() {
		typeSymbol("alias", &a.Type, "")
	}
	for _, fn := range ns.GetFunctions() {
		memberSymbol("func", "functions.html", &fn.Callable)
	}
	for _, m := range ns.GetEffectiveFunctionMacros() {
		memberSymbol("macro", "functions.html", &m.Callable)
	}
	for _, c := range ns.GetConstants() {
		ix.add(Symbol{
			Kind:       "const",
			Name:       c.Name,
			CType:      c.CType,
			Summary:    docSummary(c.Doc),
			Href:       "constants.html#const." + c.Name,
			Deprecated: c.Deprecated,
		})
	}

	return ix
}

func docSummary(doc *gir.Doc) string {
	if doc == nil {
		return ""
	}
	return render.Summary(doc.Content)
}

func (ix *Index) add(s Symbol) {
	pos := len(ix.Symbols)
	ix.Symbols = append(ix.Symbols, s)
	for _, term := range terms(s) {
		ix.Terms[term] = append(ix.Terms[term], pos)
	}
}

// terms tokenizes a symbol's name and C identifier into lowercase search
// terms. Single-character tokens carry no signal and are dropped.
func terms(s Symbol) []string {
	seen := map[string]bool{}
	var out []string
	collect := func(text string) {
		for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return r == '_' || r == '.' || r == '-'
		}) {
			if len(tok) < 2 || seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}
	collect(s.Name)
	collect(s.Identifier)
	return out
}

// Write serializes the index to path. With compress set, a sibling
// `<path>.zst` artifact is written as well.
func (ix *Index) Write(path string, compress bool) error {
	data, err := json.Marshal(ix)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	if !compress {
		return nil
	}

	f, err := os.Create(path + ".zst")
	if err != nil {
		return fmt.Errorf("creating compressed index: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return fmt.Errorf("compressing index: %w", err)
	}
	return enc.Close()
}
