package gir

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/girkit/girdoc/internal/diag"
)

func TestResolve_CTypeBackfill(t *testing.T) {
	// Mystery is referenced as a parameter type but never declared; after
	// resolution its interned reference must carry a synthesized C type.
	doc := `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0">
  <namespace name="App" version="1.0" c:identifier-prefixes="App" c:symbol-prefixes="app">
    <function name="touch" c:identifier="app_touch">
      <return-value transfer-ownership="none">
        <type name="none" c:type="void"/>
      </return-value>
      <parameters>
        <parameter name="obj" transfer-ownership="none">
          <type name="Mystery"/>
        </parameter>
      </parameters>
    </function>
  </namespace>
</repository>
`
	p := NewParser(nil, diag.New(nil))
	repo, err := p.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	for fqtn := range repo.Types {
		if repo.FindType(fqtn) == nil || !repo.FindType(fqtn).Resolved() {
			t.Errorf("type %s has no resolved candidate", fqtn)
		}
	}

	mystery := repo.FindType("App.Mystery")
	if mystery == nil {
		t.Fatal("App.Mystery not registered")
	}
	if mystery.CType != "AppMystery" {
		t.Errorf("synthesized ctype = %q, want AppMystery", mystery.CType)
	}

	// The parameter holds the same interned reference, so the backfill is
	// visible through it.
	fn := repo.Namespace().FindFunction("touch")
	param, ok := fn.Parameters[0].Target.(*Type)
	if !ok {
		t.Fatalf("parameter target = %T, want *Type", fn.Parameters[0].Target)
	}
	if param.CType != "AppMystery" {
		t.Errorf("parameter reference ctype = %q, want AppMystery", param.CType)
	}
}

func TestResolve_AncestorCycleTerminates(t *testing.T) {
	doc := `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0">
  <namespace name="Cyc" version="1.0" c:identifier-prefixes="Cyc" c:symbol-prefixes="cyc">
    <class name="A" c:type="CycA" parent="B"/>
    <class name="B" c:type="CycB" parent="A"/>
  </namespace>
</repository>
`
	reporter := diag.New(nil)
	p := NewParser(nil, reporter)
	repo, err := p.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	a := repo.Namespace().FindClass("A")
	seen := map[string]bool{}
	for _, anc := range a.Ancestors {
		if seen[anc.FQTN()] {
			t.Errorf("duplicate ancestor %s", anc.FQTN())
		}
		seen[anc.FQTN()] = true
	}
	if len(a.Ancestors) != 1 || a.Ancestors[0].Name != "B" {
		t.Errorf("ancestors = %+v, want [B]", a.Ancestors)
	}
	if reporter.Warnings() == 0 {
		t.Error("expected a warning for the ancestor cycle")
	}
}

func TestResolve_MovedToRelocatesFunction(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	if ns.FindFunction("helper_run") != nil {
		t.Error("moved function still listed as a free function")
	}

	helper := ns.FindRecord("Helper")
	var found *Function
	for _, fn := range helper.Functions {
		if fn.Name == "run_compat" {
			found = fn
		}
	}
	if found == nil {
		t.Fatal("moved function not reattached under Helper")
	}
	if found.Identifier != "app_helper_run_compat" {
		t.Errorf("relocated identifier = %q", found.Identifier)
	}
	if found.MovedTo != "" {
		t.Error("relocated function should drop its moved-to mark")
	}
}

func TestResolve_MovedToMissingTargetKeepsFunction(t *testing.T) {
	doc := `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0">
  <namespace name="App" version="1.0" c:identifier-prefixes="App" c:symbol-prefixes="app">
    <function name="orphan" c:identifier="app_orphan" moved-to="Nowhere.orphan">
      <return-value transfer-ownership="none">
        <type name="none" c:type="void"/>
      </return-value>
    </function>
  </namespace>
</repository>
`
	p := NewParser(nil, diag.New(nil))
	repo, err := p.Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if repo.Namespace().FindFunction("orphan") == nil {
		t.Error("function with an unresolvable moved-to target should stay put")
	}
}

func TestResolve_LocalPrerequisiteAndImplements(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	iface := ns.FindInterface("Activatable")
	if iface.Prerequisite == nil {
		t.Fatal("prerequisite not resolved")
	}
	if iface.Prerequisite.CType != "AppWidget" {
		t.Errorf("prerequisite ctype = %q, want AppWidget", iface.Prerequisite.CType)
	}

	button := ns.FindClass("Button")
	if len(button.Implements) != 1 {
		t.Fatalf("implements = %+v", button.Implements)
	}
	if button.Implements[0].CType != "AppActivatable" {
		t.Errorf("implemented interface ctype = %q, want AppActivatable", button.Implements[0].CType)
	}
}

func TestResolve_Symbols(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	tests := []struct {
		identifier string
		wantOwner  string
	}{
		{"app_init", "init"},
		{"app_button_new", "Button"},
		{"app_widget_set_name", "Widget"},
		{"app_activatable_activate", "Activatable"},
		{"app_helper_run", "Helper"},
	}
	for _, tc := range tests {
		node := ns.FindSymbol(tc.identifier)
		if node == nil {
			t.Errorf("symbol %s not found", tc.identifier)
			continue
		}
		var name string
		switch owner := node.(type) {
		case *Function:
			name = owner.Name
		case *Class:
			name = owner.Name
		case *Interface:
			name = owner.Name
		case *Record:
			name = owner.Name
		default:
			t.Errorf("symbol %s has unexpected owner %T", tc.identifier, node)
			continue
		}
		if name != tc.wantOwner {
			t.Errorf("symbol %s owner = %s, want %s", tc.identifier, name, tc.wantOwner)
		}
	}
}

func TestResolve_ClassHierarchy(t *testing.T) {
	repo := parseTestDoc(t)

	edges := repo.ClassHierarchy()
	roots := edges[""]
	if len(roots) != 1 || roots[0] != "Widget" {
		t.Errorf("roots = %v, want [Widget]", roots)
	}
	children := edges["Widget"]
	if len(children) != 1 || children[0] != "Button" {
		t.Errorf("children of Widget = %v, want [Button]", children)
	}
}

const baseGir = `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0"
            xmlns:glib="http://www.gtk.org/introspection/glib/1.0">
  <namespace name="Base" version="1.0" c:identifier-prefixes="Base" c:symbol-prefixes="base">
    <class name="Widget" c:type="BaseWidget"
           glib:type-name="BaseWidget" glib:get-type="base_widget_get_type"/>
    <interface name="Stylable" c:type="BaseStylable"
               glib:type-name="BaseStylable" glib:get-type="base_stylable_get_type"/>
  </namespace>
</repository>
`

const appGir = `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0"
            xmlns:glib="http://www.gtk.org/introspection/glib/1.0">
  <include name="Base" version="1.0"/>
  <namespace name="App" version="1.0" c:identifier-prefixes="App" c:symbol-prefixes="app">
    <class name="Button" c:type="AppButton" parent="Base.Widget"
           glib:type-name="AppButton" glib:get-type="app_button_get_type">
      <implements name="Base.Stylable"/>
    </class>
  </namespace>
</repository>
`

func TestResolve_CrossNamespace(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Base-1.0.gir"), []byte(baseGir), 0o644); err != nil {
		t.Fatal(err)
	}
	appPath := filepath.Join(dir, "App-1.0.gir")
	if err := os.WriteFile(appPath, []byte(appGir), 0o644); err != nil {
		t.Fatal(err)
	}

	reporter := diag.New(nil)
	p := NewParser([]string{dir}, reporter)
	repo, err := p.ParseFile(appPath)
	if err != nil {
		t.Fatal(err)
	}

	if repo.FindIncludedNamespace("Base") == nil {
		t.Fatal("Base namespace not loaded through the include")
	}

	button := repo.Namespace().FindClass("Button")
	if button == nil {
		t.Fatal("class Button not found")
	}

	if len(button.Ancestors) != 1 {
		t.Fatalf("ancestors = %+v, want [Base.Widget]", button.Ancestors)
	}
	if button.Ancestors[0].Name != "Widget" || button.Ancestors[0].Namespace != "Base" {
		t.Errorf("ancestor = %+v, want Base.Widget", button.Ancestors[0])
	}
	if button.Parent.Name != "Widget" {
		t.Errorf("parent name = %q, want Widget", button.Parent.Name)
	}

	if len(button.Implements) != 1 {
		t.Fatalf("implements = %+v, want [Base.Stylable]", button.Implements)
	}
	if button.Implements[0].CType != "BaseStylable" {
		t.Errorf("implements ctype = %q, want BaseStylable", button.Implements[0].CType)
	}

	if reporter.Errors() != 0 {
		t.Errorf("unexpected errors reported: %d", reporter.Errors())
	}
}

func TestParseFile_MissingDependencyDegrades(t *testing.T) {
	dir := t.TempDir()
	appPath := filepath.Join(dir, "App-1.0.gir")
	if err := os.WriteFile(appPath, []byte(appGir), 0o644); err != nil {
		t.Fatal(err)
	}

	reporter := diag.New(nil)
	p := NewParser([]string{dir}, reporter)
	repo, err := p.ParseFile(appPath)
	if err != nil {
		t.Fatal(err)
	}
	if reporter.Errors() == 0 {
		t.Error("expected an error report for the missing Base-1.0.gir")
	}

	// Button still parses; its cross-namespace links degrade.
	button := repo.Namespace().FindClass("Button")
	if button == nil {
		t.Fatal("class Button not found")
	}
	if len(button.Implements) != 0 {
		t.Errorf("implements should be dropped, got %+v", button.Implements)
	}
}
