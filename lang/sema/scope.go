package sema

import (
	"github.com/dolthub/swiss"

	"github.com/syncali/melodyscript/lang/types"
)

// scope is a single block's bindings: a hash map from identifier name to
// declared type. The analyzer keeps a stack of these, innermost last, as a
// plain slice stack since MelodyScript has no closures to chase across
// function boundaries.
//
// swiss.Map is used instead of a builtin map since every identifier
// reference in a program does a scope lookup, making this the hottest map
// in the analyzer.
type scope struct {
	bindings *swiss.Map[string, types.Type]
}

func newScope() *scope {
	return &scope{bindings: swiss.NewMap[string, types.Type](8)}
}

// symbolTable is a stack of scopes; the stack length is always >= 1 and the
// outermost scope (index 0) is never popped.
type symbolTable struct {
	scopes []*scope
}

func newSymbolTable() *symbolTable {
	return &symbolTable{scopes: []*scope{newScope()}}
}

func (st *symbolTable) push() {
	st.scopes = append(st.scopes, newScope())
}

func (st *symbolTable) pop() {
	if len(st.scopes) > 1 {
		st.scopes = st.scopes[:len(st.scopes)-1]
	}
}

func (st *symbolTable) top() *scope {
	return st.scopes[len(st.scopes)-1]
}

// declare adds name : typ to the innermost scope and reports whether it did
// so: false means the name was already declared in that same scope (a
// Redeclaration error) and nothing was added.
func (st *symbolTable) declare(name string, typ types.Type) bool {
	s := st.top()
	if _, ok := s.bindings.Get(name); ok {
		return false
	}
	s.bindings.Put(name, typ)
	return true
}

// lookup walks the scope stack inside-out and returns the declared type of
// name, or (Invalid, false) if it's not declared anywhere visible.
func (st *symbolTable) lookup(name string) (types.Type, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if t, ok := st.scopes[i].bindings.Get(name); ok {
			return t, true
		}
	}
	return types.Invalid, false
}
