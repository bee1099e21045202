package ast

import "github.com/syncali/melodyscript/lang/token"

// VarDecl declares a new variable of Type (INT_KW, NOTE_KW or STRING_KW) and
// initializes it with Value. A STRING_KW declaration always fails semantic
// analysis: the grammar accepts the keyword, but the type system never
// produces a "string" type.
type VarDecl struct {
	TypePos token.Pos
	Type    token.Kind
	Name    string
	Value   Expr
}

func (n *VarDecl) Pos() token.Pos { return n.TypePos }
func (n *VarDecl) Walk(v Visitor) { Walk(v, n.Value) }
func (*VarDecl) stmtNode()        {}

// AssignStmt assigns Value to the already-declared variable Name.
type AssignStmt struct {
	NamePos token.Pos
	Name    string
	Value   Expr
}

func (n *AssignStmt) Pos() token.Pos { return n.NamePos }
func (n *AssignStmt) Walk(v Visitor) { Walk(v, n.Value) }
func (*AssignStmt) stmtNode()        {}

// CallStmt is a call to one of the two built-in effectful primitives, play
// or rest. Args is ordered and its arity is fixed by Name (2 for play, 1
// for rest); arity is checked in the semantic analyzer, not the parser.
type CallStmt struct {
	NamePos token.Pos
	Name    string
	Args    []Expr
}

func (n *CallStmt) Pos() token.Pos { return n.NamePos }
func (n *CallStmt) Walk(v Visitor) {
	for _, a := range n.Args {
		Walk(v, a)
	}
}
func (*CallStmt) stmtNode() {}

// RepeatStmt runs Body Times times, Times evaluated once before the loop.
type RepeatStmt struct {
	KeyPos token.Pos
	Times  Expr
	Body   *Block
}

func (n *RepeatStmt) Pos() token.Pos { return n.KeyPos }
func (n *RepeatStmt) Walk(v Visitor) {
	Walk(v, n.Times)
	Walk(v, n.Body)
}
func (*RepeatStmt) stmtNode() {}

// IfStmt runs Then when Cond is non-zero, else Else (if present).
type IfStmt struct {
	KeyPos token.Pos
	Cond   *CompareExpr
	Then   *Block
	Else   *Block // nil when there is no else branch
}

func (n *IfStmt) Pos() token.Pos { return n.KeyPos }
func (n *IfStmt) Walk(v Visitor) {
	Walk(v, n.Cond)
	Walk(v, n.Then)
	if n.Else != nil {
		Walk(v, n.Else)
	}
}
func (*IfStmt) stmtNode() {}
