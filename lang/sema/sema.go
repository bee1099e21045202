// Package sema implements MelodyScript's semantic analyzer: scoped variable
// declaration/lookup and the int/note static type system. It walks the
// *ast.Program produced by the parser and either returns it unchanged
// (valid programs are never rewritten by this stage) or the first semantic
// diag.Error encountered, using a stack of pushed/popped block scopes and a
// switch-per-node-type visit function, failing fast on the first error
// rather than collecting every one.
package sema

import (
	"github.com/syncali/melodyscript/lang/ast"
	"github.com/syncali/melodyscript/lang/diag"
	"github.com/syncali/melodyscript/lang/token"
	"github.com/syncali/melodyscript/lang/types"
)

// Analyze validates prog in place and returns it on success, or the first
// diag.Error (Kind == diag.SemanticError) it encounters. It applies no
// Limits: every repeat() trip count is accepted regardless of magnitude.
func Analyze(prog *ast.Program) (*ast.Program, error) {
	return AnalyzeWithLimits(prog, Limits{})
}

// Limits bounds compile-time-checkable program constructs beyond pure
// typing, configured by the driver from internal/config.
type Limits struct {
	// MaxRepeat caps a repeat(n) whose trip count is a literal constant. Zero
	// means unbounded. A trip count given as an identifier or expression
	// isn't checked here, since sema does no constant folding of its own.
	MaxRepeat int
}

// AnalyzeWithLimits is Analyze with additional driver-configured bounds
// enforced alongside typing.
func AnalyzeWithLimits(prog *ast.Program, limits Limits) (*ast.Program, error) {
	a := &analyzer{st: newSymbolTable(), limits: limits}
	if err := a.block(prog.Stmts); err != nil {
		return nil, err
	}
	return prog, nil
}

type analyzer struct {
	st     *symbolTable
	limits Limits
}

func (a *analyzer) errorf(pos token.Pos, format string, args ...any) error {
	return diag.New(diag.SemanticError, pos.Line(), format, args...)
}

func (a *analyzer) block(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := a.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

// scopedBlock pushes a new scope, runs block, and pops it regardless of
// outcome — entry/exit on every repeat body and if/else branch.
func (a *analyzer) scopedBlock(stmts []ast.Stmt) error {
	a.st.push()
	defer a.st.pop()
	return a.block(stmts)
}

func declTypeName(k token.Kind) string {
	switch k {
	case token.INT_KW:
		return "int"
	case token.NOTE_KW:
		return "note"
	case token.STRING_KW:
		return "string"
	default:
		return k.String()
	}
}

func (a *analyzer) stmt(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.VarDecl:
		exprType, err := a.expr(s.Value)
		if err != nil {
			return err
		}
		wantName := declTypeName(s.Type)
		// "string" is accepted by the grammar but is never a valid expression
		// type, so any string declaration is a type mismatch.
		if wantName != exprType.String() {
			return a.errorf(s.TypePos, "TypeMismatch: expected %s, got %s", wantName, exprType)
		}
		if !a.st.declare(s.Name, exprType) {
			return a.errorf(s.TypePos, "Redeclaration: '%s' already declared in this scope", s.Name)
		}
		return nil

	case *ast.AssignStmt:
		varType, ok := a.st.lookup(s.Name)
		if !ok {
			return a.errorf(s.NamePos, "Variable '%s' not declared", s.Name)
		}
		exprType, err := a.expr(s.Value)
		if err != nil {
			return err
		}
		if varType != exprType {
			return a.errorf(s.NamePos, "TypeMismatch in assignment to '%s': expected %s, got %s", s.Name, varType, exprType)
		}
		return nil

	case *ast.CallStmt:
		return a.call(s)

	case *ast.RepeatStmt:
		timesType, err := a.expr(s.Times)
		if err != nil {
			return err
		}
		if timesType != types.Int {
			return a.errorf(s.KeyPos, "repeat() expects int, got %s", timesType)
		}
		if a.limits.MaxRepeat > 0 {
			if n, ok := s.Times.(*ast.NumberExpr); ok && int(n.Value) > a.limits.MaxRepeat {
				return a.errorf(s.KeyPos, "repeat() count %d exceeds configured maximum %d", n.Value, a.limits.MaxRepeat)
			}
		}
		return a.scopedBlock(s.Body.Stmts)

	case *ast.IfStmt:
		if _, err := a.compare(s.Cond); err != nil {
			return err
		}
		if err := a.scopedBlock(s.Then.Stmts); err != nil {
			return err
		}
		if s.Else != nil {
			return a.scopedBlock(s.Else.Stmts)
		}
		return nil

	default:
		panic("sema: unhandled stmt type")
	}
}

func (a *analyzer) call(s *ast.CallStmt) error {
	switch s.Name {
	case "play":
		if len(s.Args) != 2 {
			return a.errorf(s.NamePos, "play() expects 2 arguments, got %d", len(s.Args))
		}
		noteType, err := a.expr(s.Args[0])
		if err != nil {
			return err
		}
		durType, err := a.expr(s.Args[1])
		if err != nil {
			return err
		}
		if noteType != types.Note {
			return a.errorf(s.NamePos, "play() first argument must be note, got %s", noteType)
		}
		if durType != types.Int {
			return a.errorf(s.NamePos, "play() second argument must be int, got %s", durType)
		}
		return nil

	case "rest":
		if len(s.Args) != 1 {
			return a.errorf(s.NamePos, "rest() expects 1 argument, got %d", len(s.Args))
		}
		durType, err := a.expr(s.Args[0])
		if err != nil {
			return err
		}
		if durType != types.Int {
			return a.errorf(s.NamePos, "rest() argument must be int, got %s", durType)
		}
		return nil

	default:
		return a.errorf(s.NamePos, "Unknown function: %s", s.Name)
	}
}

// compare walks both sides of a comparison for declaredness but does not
// require its operands to share a type: mixed-type comparisons (note ==
// int) are allowed — Compare always yields int regardless of operand types.
func (a *analyzer) compare(c *ast.CompareExpr) (types.Type, error) {
	if _, err := a.expr(c.Left); err != nil {
		return types.Invalid, err
	}
	if _, err := a.expr(c.Right); err != nil {
		return types.Invalid, err
	}
	return types.Int, nil
}

func (a *analyzer) expr(e ast.Expr) (types.Type, error) {
	switch e := e.(type) {
	case *ast.NumberExpr:
		return types.Int, nil

	case *ast.NoteExpr:
		return types.Note, nil

	case *ast.IdentExpr:
		t, ok := a.st.lookup(e.Name)
		if !ok {
			return types.Invalid, a.errorf(e.NamePos, "Variable '%s' not declared", e.Name)
		}
		return t, nil

	case *ast.BinOpExpr:
		left, err := a.expr(e.Left)
		if err != nil {
			return types.Invalid, err
		}
		right, err := a.expr(e.Right)
		if err != nil {
			return types.Invalid, err
		}

		switch e.Op {
		case token.PLUS, token.MINUS:
			switch {
			case left == types.Int && right == types.Int:
				return types.Int, nil
			case left == types.Note && right == types.Int:
				return types.Note, nil
			default:
				return types.Invalid, a.errorf(e.OpPos, "TypeMismatch in operation: %s %s %s", left, e.Op, right)
			}
		default: // STAR, SLASH
			if left == types.Int && right == types.Int {
				return types.Int, nil
			}
			return types.Invalid, a.errorf(e.OpPos, "TypeMismatch in operation: %s %s %s", left, e.Op, right)
		}

	case *ast.CompareExpr:
		return a.compare(e)

	default:
		panic("sema: unhandled expr type")
	}
}
