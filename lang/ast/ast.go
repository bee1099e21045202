// Package ast defines the MelodyScript abstract syntax tree: a closed set
// of tagged node types with exhaustive pattern matching in every consumer,
// a Node/Expr/Stmt interface split, and a Visitor-based Walk.
package ast

import "github.com/syncali/melodyscript/lang/token"

// Node is any node in the tree.
type Node interface {
	// Pos returns the position of the token that introduces this node.
	Pos() token.Pos
	// Walk visits this node's direct children with v.
	Walk(v Visitor)
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of the tree: the ordered top-level statements of a
// compilation unit.
type Program struct {
	Stmts []Stmt
}

func (n *Program) Pos() token.Pos {
	if len(n.Stmts) == 0 {
		return 0
	}
	return n.Stmts[0].Pos()
}

func (n *Program) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// Block is a brace-delimited sequence of statements, used for repeat
// bodies and if/else branches.
type Block struct {
	LBrace token.Pos
	Stmts  []Stmt
}

func (n *Block) Pos() token.Pos { return n.LBrace }
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}
