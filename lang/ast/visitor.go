package ast

// VisitDirection tells a Visitor whether Walk is entering or exiting a node.
type VisitDirection int

const (
	VisitEnter VisitDirection = iota
	VisitExit
)

// Visitor is called for every node reached by Walk. Returning a nil Visitor
// from Visit skips that node's children.
type Visitor interface {
	Visit(n Node, dir VisitDirection) (w Visitor)
}

// VisitorFunc adapts a function to the Visitor interface.
type VisitorFunc func(n Node, dir VisitDirection) Visitor

func (f VisitorFunc) Visit(n Node, dir VisitDirection) Visitor { return f(n, dir) }

// Walk visits node and its descendants with v, calling Visit on enter and,
// if the enter call returned a non-nil Visitor, again on exit.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node, VisitEnter); v == nil {
		return
	}
	node.Walk(v)
	v.Visit(node, VisitExit)
}
