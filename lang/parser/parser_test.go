package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syncali/melodyscript/lang/ast"
	"github.com/syncali/melodyscript/lang/lexer"
	"github.com/syncali/melodyscript/lang/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	return prog
}

func TestParseDeclarationAndPlay(t *testing.T) {
	prog := parse(t, `note n = A4; int d = 500; play(n, d);`)
	require.Len(t, prog.Stmts, 3)

	decl, ok := prog.Stmts[0].(*ast.VarDecl)
	require.True(t, ok)
	require.Equal(t, "n", decl.Name)

	call, ok := prog.Stmts[2].(*ast.CallStmt)
	require.True(t, ok)
	require.Equal(t, "play", call.Name)
	require.Len(t, call.Args, 2)
}

func TestParseRepeat(t *testing.T) {
	prog := parse(t, `repeat (3) { play(C4, 200); }`)
	require.Len(t, prog.Stmts, 1)

	rep, ok := prog.Stmts[0].(*ast.RepeatStmt)
	require.True(t, ok)
	require.IsType(t, &ast.NumberExpr{}, rep.Times)
	require.Len(t, rep.Body.Stmts, 1)
}

func TestParseIfElse(t *testing.T) {
	prog := parse(t, `int x = 5; if (x > 3) { play(A4, 100); } else { rest(100); }`)
	require.Len(t, prog.Stmts, 2)

	ifs, ok := prog.Stmts[1].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifs.Else)
	require.Len(t, ifs.Then.Stmts, 1)
	require.Len(t, ifs.Else.Stmts, 1)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := parse(t, `int x = 2 + 3 * 4;`)
	decl := prog.Stmts[0].(*ast.VarDecl)

	top, ok := decl.Value.(*ast.BinOpExpr)
	require.True(t, ok)
	require.Equal(t, "+", top.Op.String())

	right, ok := top.Right.(*ast.BinOpExpr)
	require.True(t, ok)
	require.Equal(t, "*", right.Op.String())
}

func TestParseMissingSemicolonIsFatal(t *testing.T) {
	toks, err := lexer.Lex([]byte(`int x = 1`))
	require.NoError(t, err)

	_, err = parser.Parse(toks)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Error on line 1")
}
