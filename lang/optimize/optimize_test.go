package optimize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syncali/melodyscript/lang/ir"
	"github.com/syncali/melodyscript/lang/lexer"
	"github.com/syncali/melodyscript/lang/optimize"
	"github.com/syncali/melodyscript/lang/parser"
	"github.com/syncali/melodyscript/lang/sema"
)

func generateAndOptimize(t *testing.T, src string) []ir.Quadruple {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	prog, err = sema.Analyze(prog)
	require.NoError(t, err)
	code, err := ir.Generate(prog)
	require.NoError(t, err)
	opt, err := optimize.Optimize(code)
	require.NoError(t, err)
	return opt
}

func TestOptimizeConstantFolding(t *testing.T) {
	code := generateAndOptimize(t, `int x = 2 + 3 * 4;`)
	require.Len(t, code, 1)
	require.Equal(t, ir.OpAssign, code[0].Op)
	require.Equal(t, ir.IntLit(14), code[0].Arg1)
	require.Equal(t, ir.NameOp("x"), code[0].Result)
}

func TestOptimizeFoldsThroughUserVariables(t *testing.T) {
	// "a" is a plain variable, not a compiler temp: its statically-known
	// value must still feed the fold of "a + 1".
	code := generateAndOptimize(t, `int a = 5; int b = a + 1;`)
	require.Len(t, code, 2)
	require.Equal(t, ir.OpAssign, code[0].Op)
	require.Equal(t, ir.IntLit(5), code[0].Arg1)
	require.Equal(t, ir.NameOp("a"), code[0].Result)
	require.Equal(t, ir.OpAssign, code[1].Op)
	require.Equal(t, ir.IntLit(6), code[1].Arg1)
	require.Equal(t, ir.NameOp("b"), code[1].Result)
}

func TestOptimizeKeepsCallArgumentsSymbolic(t *testing.T) {
	// Known-constant variables still appear by name in PARAM quads: only
	// assignment, arithmetic, compare and jumpt reads are resolved.
	code := generateAndOptimize(t, `note n = A4; int d = 500; play(n, d);`)
	require.Len(t, code, 5)
	require.Equal(t, ir.NameOp("n"), code[2].Arg1)
	require.Equal(t, ir.NameOp("d"), code[3].Arg1)
}

func TestOptimizeDivisionByZero(t *testing.T) {
	toks, err := lexer.Lex([]byte(`int x = 1 / 0;`))
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	prog, err = sema.Analyze(prog)
	require.NoError(t, err)
	code, err := ir.Generate(prog)
	require.NoError(t, err)

	_, err = optimize.Optimize(code)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Division by zero")
}

func TestOptimizeTruncatingDivision(t *testing.T) {
	code := generateAndOptimize(t, `int x = 7 / 2;`)
	require.Equal(t, ir.IntLit(3), code[0].Arg1)
}

func TestOptimizeDeadJumpElimination(t *testing.T) {
	// An always-true condition: "1 > 0" folds to a literal 1, so the jumpt
	// that tests it collapses to an unconditional jump to the same target,
	// and no jumpt survives.
	code := generateAndOptimize(t, `
		if (1 > 0) { play(A4, 1); } else { play(B4, 1); }
	`)
	for _, q := range code {
		require.NotEqual(t, ir.OpJumpT, q.Op)
	}
}

func TestOptimizeIsIdempotent(t *testing.T) {
	code := generateAndOptimize(t, `int x = 2 + 3 * 4; repeat (2 + 1) { play(C4, 1); }`)
	twice, err := optimize.Optimize(code)
	require.NoError(t, err)
	require.Equal(t, code, twice)
}

func TestOptimizePreservesRelativeOrderOfUnfolded(t *testing.T) {
	code := generateAndOptimize(t, `note n = A4; play(n, 100);`)
	require.Equal(t, ir.OpAssign, code[0].Op)
	require.Equal(t, ir.OpParam, code[1].Op)
	require.Equal(t, ir.OpParam, code[2].Op)
	require.Equal(t, ir.OpCall, code[3].Op)
}
