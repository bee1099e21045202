package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented textual dump of n to w, one line per node, built
// on Walk the same way any visitor-based debug printer is.
func Print(w io.Writer, n Node) {
	depth := 0
	var pv VisitorFunc
	pv = func(node Node, dir VisitDirection) Visitor {
		if dir == VisitExit {
			depth--
			return nil
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(node))
		depth++
		return pv
	}
	Walk(pv, n)
}

func describe(n Node) string {
	switch n := n.(type) {
	case *Program:
		return fmt.Sprintf("Program (%d stmts)", len(n.Stmts))
	case *Block:
		return fmt.Sprintf("Block (%d stmts)", len(n.Stmts))
	case *VarDecl:
		return fmt.Sprintf("VarDecl %s %s", n.Type, n.Name)
	case *AssignStmt:
		return fmt.Sprintf("Assign %s", n.Name)
	case *CallStmt:
		return fmt.Sprintf("Call %s (%d args)", n.Name, len(n.Args))
	case *RepeatStmt:
		return "Repeat"
	case *IfStmt:
		hasElse := n.Else != nil
		return fmt.Sprintf("If (else=%t)", hasElse)
	case *NumberExpr:
		return fmt.Sprintf("Number %d", n.Value)
	case *IdentExpr:
		return fmt.Sprintf("Ident %s", n.Name)
	case *NoteExpr:
		return fmt.Sprintf("Note %s", n.Name)
	case *BinOpExpr:
		return fmt.Sprintf("BinOp %s", n.Op)
	case *CompareExpr:
		return fmt.Sprintf("Compare %s", n.Op)
	default:
		return fmt.Sprintf("%T", n)
	}
}
