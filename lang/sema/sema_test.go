package sema_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syncali/melodyscript/lang/lexer"
	"github.com/syncali/melodyscript/lang/parser"
	"github.com/syncali/melodyscript/lang/sema"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	_, err = sema.Analyze(prog)
	return err
}

func TestAnalyzeValidProgram(t *testing.T) {
	err := analyze(t, `note n = A4; int d = 500; play(n, d);`)
	require.NoError(t, err)
}

func TestAnalyzeTypeMismatchOnDecl(t *testing.T) {
	err := analyze(t, `int n = A4;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "TypeMismatch: expected int, got note")
}

func TestAnalyzePlayFirstArgMustBeNote(t *testing.T) {
	err := analyze(t, `play(440, 500);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "play() first argument must be note, got int")
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	err := analyze(t, `x = 1;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Variable 'x' not declared")
}

func TestAnalyzeRedeclarationInSameScope(t *testing.T) {
	err := analyze(t, `int x = 1; int x = 2;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Redeclaration: 'x' already declared in this scope")
}

func TestAnalyzeStringDeclarationAlwaysFails(t *testing.T) {
	err := analyze(t, `string s = 1;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "TypeMismatch: expected string, got int")
}

func TestAnalyzeShadowingDoesNotLeak(t *testing.T) {
	err := analyze(t, `
		int x = 1;
		if (x > 0) {
			int x = 2;
			int y = x;
		}
		int z = x;
	`)
	require.NoError(t, err)
}

func TestAnalyzeRepeatRequiresInt(t *testing.T) {
	err := analyze(t, `repeat (A4) { rest(1); }`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "repeat() expects int, got note")
}

func TestAnalyzeNoteArithmeticYieldsNote(t *testing.T) {
	err := analyze(t, `note n = A4 + 2; play(n, 100);`)
	require.NoError(t, err)
}

func TestAnalyzePlayWrongArity(t *testing.T) {
	err := analyze(t, `play(A4);`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "play() expects 2 arguments, got 1")
}

func analyzeWithLimits(t *testing.T, src string, limits sema.Limits) error {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	_, err = sema.AnalyzeWithLimits(prog, limits)
	return err
}

func TestAnalyzeWithLimitsRejectsRepeatCountOverMax(t *testing.T) {
	err := analyzeWithLimits(t, `repeat (100) { rest(1); }`, sema.Limits{MaxRepeat: 10})
	require.Error(t, err)
	require.Contains(t, err.Error(), "repeat() count 100 exceeds configured maximum 10")
}

func TestAnalyzeWithLimitsAllowsRepeatCountAtMax(t *testing.T) {
	err := analyzeWithLimits(t, `repeat (10) { rest(1); }`, sema.Limits{MaxRepeat: 10})
	require.NoError(t, err)
}

func TestAnalyzeWithLimitsZeroMeansUnbounded(t *testing.T) {
	err := analyzeWithLimits(t, `repeat (100000) { rest(1); }`, sema.Limits{})
	require.NoError(t, err)
}

func TestAnalyzeWithLimitsDoesNotCheckNonLiteralTripCount(t *testing.T) {
	err := analyzeWithLimits(t, `int n = 100; repeat (n) { rest(1); }`, sema.Limits{MaxRepeat: 10})
	require.NoError(t, err)
}
