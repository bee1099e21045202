// Package ir implements MelodyScript's intermediate-code generator: it lowers
// a type-checked *ast.Program into a flat list of Quadruples, with fixed
// label/jump sequences for repeat and if/else control flow and monotonic
// temp/label allocators tied to a left-to-right, depth-first traversal.
package ir

import (
	"fmt"

	"github.com/syncali/melodyscript/lang/ast"
	"github.com/syncali/melodyscript/lang/diag"
	"github.com/syncali/melodyscript/lang/token"
)

// Generate lowers prog to a quadruple sequence, or returns the first
// diag.Error (Kind == diag.GeneratorError) it hits — currently only
// triggered by a note literal absent from the frequency table. The lexer's
// note syntax admits such literals (octave 9, or the spellings E#, Fb, B#
// and Cb), so a program that passed the lexer can still reach this error.
func Generate(prog *ast.Program) (code []Quadruple, err error) {
	g := &generator{}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*diag.Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()
	g.block(prog.Stmts)
	return g.code, nil
}

type generator struct {
	code         []Quadruple
	tempCounter  int
	labelCounter int
}

func (g *generator) newTemp() Operand {
	g.tempCounter++
	return NameOp(fmt.Sprintf("t%d", g.tempCounter))
}

func (g *generator) newLabel() string {
	g.labelCounter++
	return fmt.Sprintf("L%d", g.labelCounter)
}

func (g *generator) emit(op Op, arg1, arg2, result Operand) {
	g.code = append(g.code, Quadruple{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
}

func (g *generator) errorf(pos token.Pos, format string, args ...any) {
	panic(diag.New(diag.GeneratorError, pos.Line(), format, args...))
}

func (g *generator) block(stmts []ast.Stmt) {
	for _, s := range stmts {
		g.stmt(s)
	}
}

func (g *generator) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.VarDecl:
		value := g.expr(s.Value)
		g.emit(OpAssign, value, None, NameOp(s.Name))

	case *ast.AssignStmt:
		value := g.expr(s.Value)
		g.emit(OpAssign, value, None, NameOp(s.Name))

	case *ast.CallStmt:
		g.call(s)

	case *ast.RepeatStmt:
		g.repeat(s)

	case *ast.IfStmt:
		g.ifStmt(s)

	default:
		panic("ir: unhandled stmt type")
	}
}

func (g *generator) call(s *ast.CallStmt) {
	switch s.Name {
	case "play":
		note := g.expr(s.Args[0])
		duration := g.expr(s.Args[1])
		g.emit(OpParam, note, None, None)
		g.emit(OpParam, duration, None, None)
		g.emit(OpCall, NameOp("play"), IntLit(2), None)

	case "rest":
		duration := g.expr(s.Args[0])
		g.emit(OpParam, duration, None, None)
		g.emit(OpCall, NameOp("rest"), IntLit(1), None)
	}
}

// repeat lowers to a counted while-loop: a counter initialized to 0, a
// condition test at loop_start jumping to the body or out to loop_end, the
// body, an increment, and a jump back. The trip count is lowered once,
// outside the loop.
func (g *generator) repeat(s *ast.RepeatStmt) {
	times := g.expr(s.Times)

	loopCounter := g.newTemp()
	g.emit(OpAssign, IntLit(0), None, loopCounter)

	loopStart := g.newLabel()
	loopBody := g.newLabel()
	loopEnd := g.newLabel()

	g.emit(OpLabel, LabelOp(loopStart), None, None)

	condition := g.newTemp()
	g.emit(OpLT, loopCounter, times, condition)
	g.emit(OpJumpT, condition, LabelOp(loopBody), None)
	g.emit(OpJump, LabelOp(loopEnd), None, None)

	g.emit(OpLabel, LabelOp(loopBody), None, None)
	g.block(s.Body.Stmts)

	nextVal := g.newTemp()
	g.emit(OpAdd, loopCounter, IntLit(1), nextVal)
	g.emit(OpAssign, nextVal, None, loopCounter)

	g.emit(OpJump, LabelOp(loopStart), None, None)
	g.emit(OpLabel, LabelOp(loopEnd), None, None)
}

// ifStmt lowers to a jumpt/jump dispatch to a then label and, when present,
// an else label, both converging on a shared end label.
func (g *generator) ifStmt(s *ast.IfStmt) {
	condition := g.compare(s.Cond)

	thenLabel := g.newLabel()
	var elseLabel string
	if s.Else != nil {
		elseLabel = g.newLabel()
	}
	endLabel := g.newLabel()

	g.emit(OpJumpT, condition, LabelOp(thenLabel), None)
	if s.Else != nil {
		g.emit(OpJump, LabelOp(elseLabel), None, None)
	} else {
		g.emit(OpJump, LabelOp(endLabel), None, None)
	}

	g.emit(OpLabel, LabelOp(thenLabel), None, None)
	g.block(s.Then.Stmts)
	g.emit(OpJump, LabelOp(endLabel), None, None)

	if s.Else != nil {
		g.emit(OpLabel, LabelOp(elseLabel), None, None)
		g.block(s.Else.Stmts)
		g.emit(OpJump, LabelOp(endLabel), None, None)
	}

	g.emit(OpLabel, LabelOp(endLabel), None, None)
}

func (g *generator) compare(c *ast.CompareExpr) Operand {
	left := g.expr(c.Left)
	right := g.expr(c.Right)
	result := g.newTemp()

	var op Op
	switch c.Op {
	case token.GT:
		op = OpGT
	case token.LT:
		op = OpLT
	case token.EQ:
		op = OpEQ
	default:
		panic("ir: unsupported compare operator")
	}
	g.emit(op, left, right, result)
	return result
}

func (g *generator) expr(e ast.Expr) Operand {
	switch e := e.(type) {
	case *ast.NumberExpr:
		return IntLit(int64(e.Value))

	case *ast.NoteExpr:
		freq, ok := NoteFrequency(e.Name)
		if !ok {
			g.errorf(e.NamePos, "Unknown note: %s", e.Name)
		}
		return IntLit(int64(freq))

	case *ast.IdentExpr:
		return NameOp(e.Name)

	case *ast.BinOpExpr:
		left := g.expr(e.Left)
		right := g.expr(e.Right)
		result := g.newTemp()

		var op Op
		switch e.Op {
		case token.PLUS:
			op = OpAdd
		case token.MINUS:
			op = OpSub
		case token.STAR:
			op = OpMul
		case token.SLASH:
			op = OpDiv
		default:
			panic("ir: unsupported binary operator")
		}
		g.emit(op, left, right, result)
		return result

	case *ast.CompareExpr:
		return g.compare(e)

	default:
		panic("ir: unhandled expr type")
	}
}
