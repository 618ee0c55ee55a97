package interpreter

// Environment is one frame of the lexical scope chain: a mapping from
// name to value, plus a non-owning pointer to the enclosing frame. The
// chain forms a tree; each closure captures the frame in force at its
// point of definition.
type Environment struct {
	values map[string]interface{}
	parent *Environment
}

// NewEnvironment creates a frame whose parent is enclosing (nil for the
// global frame).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{values: make(map[string]interface{}), parent: enclosing}
}

// Contains reports whether name is bound in this frame only (not its
// ancestors).
func (e *Environment) Contains(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Define binds name to value in this frame, shadowing any outer
// binding of the same name.
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

// Bind assigns to the nearest enclosing frame that already contains
// name. It returns false if no frame in the chain contains name —
// callers (the Assign expression) treat that as a RuntimeError rather
// than falling back to defining it, per the chosen resolution of the
// `bind`-semantics open question.
func (e *Environment) Bind(name string, value interface{}) bool {
	for frame := e; frame != nil; frame = frame.parent {
		if frame.Contains(name) {
			frame.values[name] = value
			return true
		}
	}
	return false
}

// Get walks the chain outward looking for name.
func (e *Environment) Get(name string) (interface{}, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns every name visible from this frame, innermost first,
// for use by "did you mean" suggestions. Duplicate shadowed names are
// only reported once.
func (e *Environment) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for frame := e; frame != nil; frame = frame.parent {
		for name := range frame.values {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
