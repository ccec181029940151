package interp

import (
	"github.com/umpteen-lang/umpteen/internal/errors"
	"github.com/umpteen-lang/umpteen/internal/object"
	"github.com/umpteen-lang/umpteen/internal/token"
)

// GlobalsID is the fixed scope id of the globals scope (spec.md §4.4: "the
// environment knows a fixed globals id").
const GlobalsID = 0

// binding is a Memory cell: a name may be declared but not yet assigned, in
// which case Value is the zero Value and set is false (spec.md's
// `Optional<Value>`).
type binding struct {
	value object.Value
	set   bool
}

// scope is spec.md §3's Memory: a map of names to bindings, plus the id of
// its parent scope (the root globals scope has no parent).
type scope struct {
	vars      map[string]*binding
	parent    int
	hasParent bool
}

// Environment is the scope-id-to-Memory forest described in spec.md §3/§4.4:
// a dictionary from scope id to Memory rather than a chain of environment
// objects each holding a pointer to its parent. This indirection is what
// lets new_enclosed() hand out a scope id before deciding whether to switch
// to it, and lets a loop body reuse the very same scope id across
// iterations instead of allocating a fresh frame each time.
type Environment struct {
	scopes  map[int]*scope
	nextID  int
	current int
}

// NewEnvironment creates an Environment with only the globals scope,
// current initially pointing at it.
func NewEnvironment() *Environment {
	e := &Environment{scopes: make(map[int]*scope), nextID: 1}
	e.scopes[GlobalsID] = &scope{vars: make(map[string]*binding)}
	e.current = GlobalsID
	return e
}

// Current returns the active scope id.
func (e *Environment) Current() int {
	return e.current
}

// NewEnclosed creates a child scope whose parent is the current scope and
// returns its id, without switching to it (spec.md §4.4).
func (e *Environment) NewEnclosed() int {
	id := e.nextID
	e.nextID++
	e.scopes[id] = &scope{vars: make(map[string]*binding), parent: e.current, hasParent: true}
	return id
}

// SetCurrent sets the current scope id and returns the previous one, for
// the save/restore pattern block/loop/function execution uses on every
// exit path (spec.md §4.3, invariant I3/P3).
func (e *Environment) SetCurrent(id int) int {
	previous := e.current
	e.current = id
	return previous
}

// Declare adds name, initially unset, to the current scope. It fails with
// VariableAlreadyDeclared if name already exists in that exact scope
// (spec.md I1/§4.4).
func (e *Environment) Declare(pos token.Position, name string) error {
	s := e.scopes[e.current]
	if _, exists := s.vars[name]; exists {
		return errors.New(errors.VariableAlreadyDeclared, pos,
			"variable already declared: "+name, "", "")
	}
	s.vars[name] = &binding{}
	return nil
}

// Assign walks from current toward globals looking for the scope that
// declares name and overwrites its value there. It fails with
// NoSuchVariable if no scope in the chain declares name (spec.md I3/§4.4).
func (e *Environment) Assign(pos token.Position, name string, value object.Value) error {
	for id, hasNext := e.current, true; hasNext; {
		s := e.scopes[id]
		if b, ok := s.vars[name]; ok {
			b.value = value
			b.set = true
			return nil
		}
		id, hasNext = s.parent, s.hasParent
	}
	return errors.New(errors.NoSuchVariable, pos, "no such variable: "+name, "", "")
}

// Get walks from current toward globals looking for name. It fails with
// UninitializedAccess if name is declared but never assigned, or
// NoSuchVariable if no scope in the chain declares it (spec.md I2/§4.4).
func (e *Environment) Get(pos token.Position, name string) (object.Value, error) {
	for id, hasNext := e.current, true; hasNext; {
		s := e.scopes[id]
		if b, ok := s.vars[name]; ok {
			if !b.set {
				return nil, errors.New(errors.UninitializedAccess, pos,
					"uninitialized access: "+name, "", "")
			}
			return b.value, nil
		}
		id, hasNext = s.parent, s.hasParent
	}
	return nil, errors.New(errors.NoSuchVariable, pos, "no such variable: "+name, "", "")
}

// DeclareGlobal declares name in the globals scope and assigns it value
// directly, bypassing the current-scope restriction Declare imposes. It is
// used once, at interpreter construction, to seed native builtins.
func (e *Environment) DeclareGlobal(name string, value object.Value) {
	e.scopes[GlobalsID].vars[name] = &binding{value: value, set: true}
}
