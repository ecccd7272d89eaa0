package symtab

import (
	"errors"
	"fmt"
)

// ErrAlreadyDeclared is returned by Insert when the name already exists in
// the same scope.
var ErrAlreadyDeclared = errors.New("already declared in this scope")

// Scope is one node of the symbol table tree. A scope owns its symbols and
// its child scopes; the parent pointer is only used for lookup.
type Scope struct {
	name     string
	parent   *Scope
	symbols  []Symbol
	index    map[string]Symbol
	children []*Scope
}

// NewRoot creates an empty root scope.
func NewRoot() *Scope {
	return &Scope{name: "global", index: make(map[string]Symbol)}
}

// NewRootWithBuiltins creates a root scope holding the built-in functions.
func NewRootWithBuiltins() *Scope {
	root := NewRoot()
	for _, b := range Builtins() {
		// builtin names are unique, Insert cannot fail here
		_ = root.Insert(b)
	}
	return root
}

// CreateChild registers and returns a new child scope. An empty name
// inherits the parent's name.
func (s *Scope) CreateChild(name string) *Scope {
	if name == "" {
		name = s.name
	}
	child := &Scope{name: name, parent: s, index: make(map[string]Symbol)}
	s.children = append(s.children, child)
	return child
}

// Insert adds sym to this scope. Shadowing a name from an enclosing scope
// is allowed; redeclaring one in the same scope is not.
func (s *Scope) Insert(sym Symbol) error {
	name := sym.SymbolName()
	if _, exists := s.index[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrAlreadyDeclared)
	}
	s.index[name] = sym
	s.symbols = append(s.symbols, sym)
	return nil
}

// Lookup searches this scope and then its ancestors. The nearest
// declaration wins.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.index[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal checks only this scope.
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	sym, ok := s.index[name]
	return sym, ok
}

// Name returns the scope's display name.
func (s *Scope) Name() string { return s.name }

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Symbols returns the symbols in insertion order.
func (s *Scope) Symbols() []Symbol { return s.symbols }

// Children returns the child scopes in creation order.
func (s *Scope) Children() []*Scope { return s.children }

// Depth is 0 for the root.
func (s *Scope) Depth() int {
	d := 0
	for cur := s.parent; cur != nil; cur = cur.parent {
		d++
	}
	return d
}

// Find returns the first scope in depth-first order, starting with s
// itself, whose name is name.
func (s *Scope) Find(name string) (*Scope, bool) {
	if s.name == name {
		return s, true
	}
	for _, c := range s.children {
		if found, ok := c.Find(name); ok {
			return found, true
		}
	}
	return nil, false
}
