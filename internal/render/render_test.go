package render

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/girkit/girdoc/internal/config"
	"github.com/girkit/girdoc/internal/diag"
	"github.com/girkit/girdoc/internal/gir"
)

const renderDoc = `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0"
            xmlns:glib="http://www.gtk.org/introspection/glib/1.0">
  <namespace name="App" version="1.0" c:identifier-prefixes="App" c:symbol-prefixes="app">
    <enumeration name="State" c:type="AppState">
      <member name="idle" value="0" c:identifier="APP_STATE_IDLE"/>
    </enumeration>
    <class name="Widget" c:type="AppWidget">
      <doc filename="widget.c" line="1">The base widget. See [class@App.Button] for a subclass.</doc>
      <method name="show" c:identifier="app_widget_show">
        <return-value transfer-ownership="none">
          <type name="none" c:type="void"/>
        </return-value>
        <parameters>
          <instance-parameter name="self" transfer-ownership="none">
            <type name="Widget" c:type="AppWidget*"/>
          </instance-parameter>
        </parameters>
      </method>
    </class>
    <class name="Button" c:type="AppButton" parent="Widget">
      <doc filename="button.c" line="1">A button. Call [method@App.Widget.show] to show it.</doc>
    </class>
    <function name="init" c:identifier="app_init">
      <doc filename="app.c" line="1">Initializes the library.

Further detail that should not appear in summaries.</doc>
      <return-value transfer-ownership="none">
        <type name="none" c:type="void"/>
      </return-value>
    </function>
    <constant name="MAJOR_VERSION" value="1" c:type="APP_MAJOR_VERSION">
      <type name="gint" c:type="gint"/>
    </constant>
  </namespace>
</repository>
`

func renderFixture(t *testing.T) (*Renderer, string) {
	t.Helper()
	p := gir.NewParser(nil, diag.New(nil))
	repo, err := p.Parse(strings.NewReader(renderDoc))
	if err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Library: config.LibraryConfig{Name: "App", Version: "1.0"},
	}
	r, err := New(repo, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	outDir := t.TempDir()
	if err := r.Run(context.Background(), outDir); err != nil {
		t.Fatal(err)
	}
	return r, outDir
}

func TestRun_WritesAllPages(t *testing.T) {
	_, outDir := renderFixture(t)

	for _, name := range []string{
		"index.html",
		"class.Widget.html",
		"class.Button.html",
		"enum.State.html",
		"functions.html",
		"constants.html",
	} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing page %s: %v", name, err)
		}
	}
}

func TestRun_CrossReferenceLinks(t *testing.T) {
	_, outDir := renderFixture(t)

	widget, err := os.ReadFile(filepath.Join(outDir, "class.Widget.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(widget), `href="class.Button.html"`) {
		t.Error("class reference not rewritten to a page link")
	}

	button, err := os.ReadFile(filepath.Join(outDir, "class.Button.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(button), `href="class.Widget.html#method.show"`) {
		t.Error("method reference not rewritten to an anchored link")
	}
	// The resolved ancestor chain links back to the parent page.
	if !strings.Contains(string(button), `href="class.Widget.html"`) {
		t.Error("ancestor link missing")
	}
}

func TestRun_IndexContents(t *testing.T) {
	_, outDir := renderFixture(t)

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	content := string(index)
	for _, want := range []string{
		`href="class.Widget.html"`,
		`href="class.Button.html"`,
		`href="enum.State.html"`,
		`href="functions.html"`,
		"Class hierarchy",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestResolveXrefs_UnknownDegradesToCode(t *testing.T) {
	r, _ := renderFixture(t)

	got := r.resolveXrefs("See [class@Gtk.Widget] and [class@App.Missing].")
	if !strings.Contains(got, "`Gtk.Widget`") {
		t.Errorf("cross-namespace reference should degrade to code, got %q", got)
	}
	if !strings.Contains(got, "`App.Missing`") {
		t.Errorf("unknown type should degrade to code, got %q", got)
	}
}

func TestSummary_FirstParagraphOnly(t *testing.T) {
	got := Summary("Initializes the library.\n\nFurther detail here.")
	if got != "Initializes the library." {
		t.Errorf("summary = %q", got)
	}
}

func TestSignature(t *testing.T) {
	p := gir.NewParser(nil, diag.New(nil))
	repo, err := p.Parse(strings.NewReader(renderDoc))
	if err != nil {
		t.Fatal(err)
	}

	widget := repo.Namespace().FindClass("Widget")
	m := widget.Methods[0]
	got := signature(&m.Callable, m.InstanceParameter)
	want := "void app_widget_show (AppWidget* self)"
	if got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
}
