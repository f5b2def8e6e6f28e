package gir

// Parameter is a single argument of a callable.
type Parameter struct {
	Info
	Name            string
	Direction       string // in, out, inout
	Transfer        string // none, container, full, floating
	Nullable        bool
	Optional        bool
	CallerAllocates bool
	Closure         int // parameter index of the user-data argument, -1 if none
	Destroy         int // parameter index of the destroy-notify argument, -1 if none
	Scope           string
	Target          AnyType
}

// ReturnValue is the result of a callable.
type ReturnValue struct {
	Info
	Transfer string
	Nullable bool
	Closure  int
	Destroy  int
	Scope    string
	Target   AnyType
}

// Callable is the shared shape of functions, methods, virtual methods,
// function macros, and callbacks: an ordered parameter list, one return
// value, and the cross-links that mark alternate entry points.
type Callable struct {
	Info
	Name       string
	Namespace  string
	Identifier string
	Parameters []*Parameter
	Return     *ReturnValue
	Throws     bool

	// Shadows/ShadowedBy name a sibling callable this one replaces or is
	// replaced by in bindings; MovedTo relocates the canonical
	// documentation location to another type.
	Shadows    string
	ShadowedBy string
	MovedTo    string
}

// Function is a free or type-level function.
type Function struct {
	Callable
}

// FunctionMacro is a C pre-processor macro documented as a callable.
type FunctionMacro struct {
	Callable
}

// Method is an instance method.
type Method struct {
	Callable
	InstanceParameter *Parameter
}

// VirtualMethod is an overridable class or interface method.
type VirtualMethod struct {
	Callable
	Invoker           string
	InstanceParameter *Parameter
}

// Callback is a function-pointer type. It doubles as a field shape when a
// struct member is declared inline as a callback.
type Callback struct {
	Callable
	CType string
}

// BaseCType is the callback's C spelling without pointer markers.
func (c *Callback) BaseCType() string {
	base := c.CType
	for len(base) > 0 && base[len(base)-1] == '*' {
		base = base[:len(base)-1]
	}
	return base
}

// Property is a GObject property on a class or interface.
type Property struct {
	Info
	Name          string
	Transfer      string
	Readable      bool
	Writable      bool
	Construct     bool
	ConstructOnly bool
	Target        AnyType
}

// Signal is a GObject signal on a class or interface.
type Signal struct {
	Info
	Name       string
	When       string
	Detailed   bool
	Action     bool
	NoHooks    bool
	NoRecurse  bool
	Parameters []*Parameter
	Return     *ReturnValue
}

// Field is a struct or union member.
type Field struct {
	Info
	Name     string
	Readable bool
	Writable bool
	Private  bool
	Bits     int
	Target   AnyType
}
