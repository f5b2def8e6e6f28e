package gir

import (
	"errors"
	"strings"
	"testing"

	"github.com/girkit/girdoc/internal/diag"
)

const testDoc = `<?xml version="1.0"?>
<repository version="1.2"
            xmlns="http://www.gtk.org/introspection/core/1.0"
            xmlns:c="http://www.gtk.org/introspection/c/1.0"
            xmlns:glib="http://www.gtk.org/introspection/glib/1.0">
  <package name="app-1.0"/>
  <c:include name="app/app.h"/>
  <namespace name="App" version="1.0"
             shared-library="libapp.so.0"
             c:identifier-prefixes="App"
             c:symbol-prefixes="app">
    <alias name="Id" c:type="AppId">
      <doc filename="app.h" line="10">An opaque identifier.</doc>
      <type name="guint64" c:type="guint64"/>
    </alias>
    <constant name="MAJOR_VERSION" value="1" c:type="APP_MAJOR_VERSION">
      <type name="gint" c:type="gint"/>
    </constant>
    <enumeration name="State" c:type="AppState"
                 glib:type-name="AppState" glib:get-type="app_state_get_type">
      <member name="idle" value="0" c:identifier="APP_STATE_IDLE"/>
      <member name="busy" value="1" c:identifier="APP_STATE_BUSY"/>
    </enumeration>
    <bitfield name="Flags" c:type="AppFlags">
      <member name="none" value="0" c:identifier="APP_FLAGS_NONE"/>
      <member name="fast" value="1" c:identifier="APP_FLAGS_FAST"/>
    </bitfield>
    <callback name="Callback" c:type="AppCallback">
      <return-value transfer-ownership="none">
        <type name="none" c:type="void"/>
      </return-value>
      <parameters>
        <parameter name="data" transfer-ownership="none" closure="0">
          <type name="gpointer" c:type="gpointer"/>
        </parameter>
      </parameters>
    </callback>
    <record name="Helper" c:type="AppHelper">
      <method name="run" c:identifier="app_helper_run">
        <return-value transfer-ownership="none">
          <type name="none" c:type="void"/>
        </return-value>
        <parameters>
          <instance-parameter name="self" transfer-ownership="none">
            <type name="Helper" c:type="AppHelper*"/>
          </instance-parameter>
        </parameters>
      </method>
    </record>
    <record name="WidgetClass" c:type="AppWidgetClass" glib:is-gtype-struct-for="Widget"/>
    <record name="WidgetPrivate" c:type="AppWidgetPrivate" disguised="1"/>
    <class name="Widget" c:type="AppWidget" abstract="1"
           glib:type-name="AppWidget" glib:get-type="app_widget_get_type"
           glib:type-struct="WidgetClass">
      <doc filename="widget.c" line="30">The base widget.</doc>
      <property name="name" writable="1" transfer-ownership="none">
        <type name="utf8" c:type="gchar*"/>
      </property>
      <glib:signal name="changed" when="last">
        <return-value transfer-ownership="none">
          <type name="none" c:type="void"/>
        </return-value>
      </glib:signal>
      <method name="set_name" c:identifier="app_widget_set_name" deprecated="1" deprecated-version="0.9">
        <doc-deprecated>Use the name property instead.</doc-deprecated>
        <return-value transfer-ownership="none">
          <type name="none" c:type="void"/>
        </return-value>
        <parameters>
          <instance-parameter name="self" transfer-ownership="none">
            <type name="Widget" c:type="AppWidget*"/>
          </instance-parameter>
          <parameter name="name" transfer-ownership="none" nullable="1">
            <type name="utf8" c:type="const char*"/>
          </parameter>
        </parameters>
      </method>
    </class>
    <class name="Button" c:type="AppButton" parent="Widget"
           glib:type-name="AppButton" glib:get-type="app_button_get_type">
      <implements name="Activatable"/>
      <constructor name="new" c:identifier="app_button_new">
        <return-value transfer-ownership="full">
          <type name="Button" c:type="AppButton*"/>
        </return-value>
      </constructor>
    </class>
    <interface name="Activatable" c:type="AppActivatable"
               glib:type-name="AppActivatable" glib:get-type="app_activatable_get_type">
      <prerequisite name="Widget"/>
      <method name="activate" c:identifier="app_activatable_activate">
        <return-value transfer-ownership="none">
          <type name="gboolean" c:type="gboolean"/>
        </return-value>
        <parameters>
          <instance-parameter name="self" transfer-ownership="none">
            <type name="Activatable" c:type="AppActivatable*"/>
          </instance-parameter>
        </parameters>
      </method>
    </interface>
    <function name="init" c:identifier="app_init">
      <return-value transfer-ownership="none">
        <type name="none" c:type="void"/>
      </return-value>
      <parameters>
        <parameter name="argv" transfer-ownership="none">
          <array name="GLib.Array" c:type="char**" zero-terminated="1">
            <type name="utf8" c:type="char*"/>
          </array>
        </parameter>
        <parameter name="names" transfer-ownership="container">
          <type name="GLib.List" c:type="GList*">
            <type name="utf8"/>
          </type>
        </parameter>
        <parameter name="env" transfer-ownership="none">
          <type name="GLib.HashTable" c:type="GHashTable*">
            <type name="utf8"/>
            <type name="utf8"/>
          </type>
        </parameter>
      </parameters>
    </function>
    <function name="helper_run" c:identifier="app_helper_run_compat" moved-to="Helper.run_compat">
      <return-value transfer-ownership="none">
        <type name="none" c:type="void"/>
      </return-value>
    </function>
    <function name="printf" c:identifier="app_printf" introspectable="0">
      <return-value transfer-ownership="none">
        <type name="gint" c:type="int"/>
      </return-value>
      <parameters>
        <parameter name="format" transfer-ownership="none">
          <type name="utf8" c:type="const char*"/>
        </parameter>
        <parameter name="...">
          <varargs/>
        </parameter>
      </parameters>
    </function>
    <function-macro name="check_version" c:identifier="APP_CHECK_VERSION"/>
    <function-macro name="IS_WIDGET" c:identifier="APP_IS_WIDGET"/>
    <function-macro name="WIDGET" c:identifier="APP_WIDGET"/>
  </namespace>
</repository>
`

func parseTestDoc(t *testing.T) *Repository {
	t.Helper()
	p := NewParser(nil, diag.New(nil))
	repo, err := p.Parse(strings.NewReader(testDoc))
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestParse_BadRootElement(t *testing.T) {
	p := NewParser(nil, diag.New(nil))
	_, err := p.Parse(strings.NewReader(`<?xml version="1.0"?><not-gir/>`))
	if err == nil {
		t.Fatal("expected an error for a non-repository document")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}

func TestParse_NamespaceMetadata(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	if ns.Name != "App" || ns.Version != "1.0" {
		t.Errorf("namespace = %s, want App-1.0", ns)
	}
	if len(ns.IdentifierPrefixes) != 1 || ns.IdentifierPrefixes[0] != "App" {
		t.Errorf("identifier prefixes = %v", ns.IdentifierPrefixes)
	}
	if len(ns.SharedLibraries) != 1 || ns.SharedLibraries[0] != "libapp.so.0" {
		t.Errorf("shared libraries = %v", ns.SharedLibraries)
	}
	if len(repo.Packages) != 1 || repo.Packages[0] != "app-1.0" {
		t.Errorf("packages = %v", repo.Packages)
	}
	if len(repo.CIncludes) != 1 || repo.CIncludes[0] != "app/app.h" {
		t.Errorf("c includes = %v", repo.CIncludes)
	}
}

func TestParse_Declarations(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	alias := ns.FindAlias("Id")
	if alias == nil {
		t.Fatal("alias Id not found")
	}
	if alias.Doc == nil || alias.Doc.Content != "An opaque identifier." {
		t.Errorf("alias doc = %+v", alias.Doc)
	}
	if alias.Doc.Filename != "app.h" || alias.Doc.Line != 10 {
		t.Errorf("alias doc position = %s:%d", alias.Doc.Filename, alias.Doc.Line)
	}

	enum := ns.FindEnumeration("State")
	if enum == nil {
		t.Fatal("enumeration State not found")
	}
	if len(enum.Members) != 2 || enum.Members[1].Identifier != "APP_STATE_BUSY" {
		t.Errorf("enum members = %+v", enum.Members)
	}
	if enum.GType == nil || enum.GType.GetType != "app_state_get_type" {
		t.Errorf("enum gtype = %+v", enum.GType)
	}

	if ns.FindBitField("Flags") == nil {
		t.Error("bitfield Flags not found")
	}
	if len(ns.GetConstants()) != 1 {
		t.Errorf("constants = %d, want 1", len(ns.GetConstants()))
	}
	if len(ns.GetCallbacks()) != 1 {
		t.Errorf("callbacks = %d, want 1", len(ns.GetCallbacks()))
	}
}

func TestParse_ClassSurface(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	widget := ns.FindClass("Widget")
	if widget == nil {
		t.Fatal("class Widget not found")
	}
	if !widget.Abstract {
		t.Error("Widget should be abstract")
	}
	if widget.TypeStruct() != "WidgetClass" {
		t.Errorf("type struct = %q", widget.TypeStruct())
	}
	if len(widget.Properties) != 1 || widget.Properties[0].Name != "name" {
		t.Errorf("properties = %+v", widget.Properties)
	}
	if len(widget.Signals) != 1 || widget.Signals[0].When != "last" {
		t.Errorf("signals = %+v", widget.Signals)
	}

	if len(widget.Methods) != 1 {
		t.Fatalf("methods = %d, want 1", len(widget.Methods))
	}
	m := widget.Methods[0]
	if m.InstanceParameter == nil || m.InstanceParameter.Name != "self" {
		t.Errorf("instance parameter = %+v", m.InstanceParameter)
	}
	version, message, ok := m.DeprecatedSince()
	if !ok || version != "0.9" || message != "Use the name property instead." {
		t.Errorf("deprecation = %q %q %v", version, message, ok)
	}
	if len(m.Parameters) != 1 || !m.Parameters[0].Nullable {
		t.Errorf("parameters = %+v", m.Parameters)
	}
}

func TestParse_TypeShapes(t *testing.T) {
	repo := parseTestDoc(t)
	fn := repo.Namespace().FindFunction("init")
	if fn == nil {
		t.Fatal("function init not found")
	}
	if len(fn.Parameters) != 3 {
		t.Fatalf("parameters = %d, want 3", len(fn.Parameters))
	}

	arr, ok := fn.Parameters[0].Target.(*ArrayType)
	if !ok {
		t.Fatalf("argv target = %T, want *ArrayType", fn.Parameters[0].Target)
	}
	if !arr.ZeroTerminated || arr.CType != "char**" {
		t.Errorf("array = %+v", arr)
	}

	list, ok := fn.Parameters[1].Target.(*ListType)
	if !ok {
		t.Fatalf("names target = %T, want *ListType", fn.Parameters[1].Target)
	}
	if elem, ok := list.ValueType.(*Type); !ok || elem.Name != "utf8" {
		t.Errorf("list element = %+v", list.ValueType)
	}

	m, ok := fn.Parameters[2].Target.(*MapType)
	if !ok {
		t.Fatalf("env target = %T, want *MapType", fn.Parameters[2].Target)
	}
	if key, ok := m.KeyType.(*Type); !ok || key.Name != "utf8" {
		t.Errorf("map key = %+v", m.KeyType)
	}

	if _, ok := fn.Return.Target.(*VoidType); !ok {
		t.Errorf("return target = %T, want *VoidType", fn.Return.Target)
	}
}

func TestParse_VarArgsAndIntrospectable(t *testing.T) {
	repo := parseTestDoc(t)
	fn := repo.Namespace().FindFunction("printf")
	if fn == nil {
		t.Fatal("function printf not found")
	}
	if fn.Introspectable() {
		t.Error("printf is marked introspectable=0")
	}
	if _, ok := fn.Parameters[1].Target.(*VarArgs); !ok {
		t.Errorf("trailing parameter = %T, want *VarArgs", fn.Parameters[1].Target)
	}
}

func TestParse_ClosureIndex(t *testing.T) {
	repo := parseTestDoc(t)
	cb := repo.Namespace().GetCallbacks()[0]
	if cb.Parameters[0].Closure != 0 {
		t.Errorf("closure index = %d, want 0", cb.Parameters[0].Closure)
	}
	if cb.BaseCType() != "AppCallback" {
		t.Errorf("base ctype = %q", cb.BaseCType())
	}
}

func TestEffectiveRecords_FiltersCompanions(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	if len(ns.GetRecords()) != 3 {
		t.Fatalf("records = %d, want 3", len(ns.GetRecords()))
	}
	effective := ns.GetEffectiveRecords()
	if len(effective) != 1 || effective[0].Name != "Helper" {
		names := make([]string, len(effective))
		for i, r := range effective {
			names[i] = r.Name
		}
		t.Errorf("effective records = %v, want [Helper]", names)
	}
}

func TestEffectiveFunctionMacros_FiltersGenerated(t *testing.T) {
	repo := parseTestDoc(t)
	ns := repo.Namespace()

	effective := ns.GetEffectiveFunctionMacros()
	if len(effective) != 1 || effective[0].Name != "check_version" {
		names := make([]string, len(effective))
		for i, m := range effective {
			names[i] = m.Name
		}
		t.Errorf("effective macros = %v, want [check_version]", names)
	}
}
