package ast

import "github.com/syncali/melodyscript/lang/token"

// NumberExpr is a 32-bit signed integer literal.
type NumberExpr struct {
	ValuePos token.Pos
	Value    int32
}

func (n *NumberExpr) Pos() token.Pos { return n.ValuePos }
func (n *NumberExpr) Walk(Visitor)   {}
func (*NumberExpr) exprNode()        {}

// IdentExpr is a reference to a declared variable.
type IdentExpr struct {
	NamePos token.Pos
	Name    string
}

func (n *IdentExpr) Pos() token.Pos { return n.NamePos }
func (n *IdentExpr) Walk(Visitor)   {}
func (*IdentExpr) exprNode()        {}

// NoteExpr is a note literal such as A4 or C#3.
type NoteExpr struct {
	NamePos token.Pos
	Name    string
}

func (n *NoteExpr) Pos() token.Pos { return n.NamePos }
func (n *NoteExpr) Walk(Visitor)   {}
func (*NoteExpr) exprNode()        {}

// BinOpExpr is a binary arithmetic expression: left Op right, where Op is
// one of token.PLUS, MINUS, STAR, SLASH.
type BinOpExpr struct {
	Left  Expr
	Op    token.Kind
	OpPos token.Pos
	Right Expr
}

func (n *BinOpExpr) Pos() token.Pos { return n.Left.Pos() }
func (n *BinOpExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (*BinOpExpr) exprNode() {}

// CompareExpr is a comparison expression: left Op right, where Op is one of
// token.GT, LT, EQ. It only ever appears at the top of a parenthesized if
// condition, never nested inside an arbitrary expr.
type CompareExpr struct {
	Left  Expr
	Op    token.Kind
	OpPos token.Pos
	Right Expr
}

func (n *CompareExpr) Pos() token.Pos { return n.Left.Pos() }
func (n *CompareExpr) Walk(v Visitor) {
	Walk(v, n.Left)
	Walk(v, n.Right)
}
func (*CompareExpr) exprNode() {}
