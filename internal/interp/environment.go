package interp

import "github.com/cwbudde/cfpl/internal/token"

// Binding is one declared variable: its static type tag and current value.
type Binding struct {
	Type  token.Type // INT, FLOAT, CHAR, or BOOL
	Value Value
}

// Environment is CFPL's variable store: a single flat scope, since the
// language has no functions or blocks that introduce new scopes
// (spec.md §3 — every VAR declaration lives at program scope).
type Environment struct {
	vars  map[string]*Binding
	order []string // declaration order, for Names
}

// NewEnvironment creates an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]*Binding)}
}

// Declare registers a new binding. Redeclaring an existing name replaces
// its binding and keeps its original place in declaration order.
func (e *Environment) Declare(name string, typ token.Type, value Value) {
	if _, exists := e.vars[name]; !exists {
		e.order = append(e.order, name)
	}
	e.vars[name] = &Binding{Type: typ, Value: value}
}

// Get returns the binding for name, or (nil, false) if undeclared.
func (e *Environment) Get(name string) (*Binding, bool) {
	b, ok := e.vars[name]
	return b, ok
}

// Set stores a new value into an existing binding. The caller must ensure
// the binding already exists via Get.
func (e *Environment) Set(name string, value Value) {
	if b, ok := e.vars[name]; ok {
		b.Value = value
	}
}

// Names returns declared variable names in declaration order.
func (e *Environment) Names() []string {
	return e.order
}
