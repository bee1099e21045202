package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syncali/melodyscript/lang/ir"
	"github.com/syncali/melodyscript/lang/lexer"
	"github.com/syncali/melodyscript/lang/parser"
	"github.com/syncali/melodyscript/lang/sema"
)

func generate(t *testing.T, src string) []ir.Quadruple {
	t.Helper()
	toks, err := lexer.Lex([]byte(src))
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)
	prog, err = sema.Analyze(prog)
	require.NoError(t, err)
	code, err := ir.Generate(prog)
	require.NoError(t, err)
	return code
}

func TestGenerateDeclarationAndPlay(t *testing.T) {
	code := generate(t, `note n = A4; int d = 500; play(n, d);`)

	require.Len(t, code, 5)
	require.Equal(t, ir.OpAssign, code[0].Op)
	require.Equal(t, ir.IntLit(440), code[0].Arg1)
	require.Equal(t, ir.NameOp("n"), code[0].Result)

	require.Equal(t, ir.OpAssign, code[1].Op)
	require.Equal(t, ir.IntLit(500), code[1].Arg1)
	require.Equal(t, ir.NameOp("d"), code[1].Result)

	require.Equal(t, ir.OpParam, code[2].Op)
	require.Equal(t, ir.NameOp("n"), code[2].Arg1)
	require.Equal(t, ir.OpParam, code[3].Op)
	require.Equal(t, ir.NameOp("d"), code[3].Arg1)

	require.Equal(t, ir.OpCall, code[4].Op)
	require.Equal(t, ir.NameOp("play"), code[4].Arg1)
	require.Equal(t, ir.IntLit(2), code[4].Arg2)
}

func TestGenerateEnharmonicEquivalents(t *testing.T) {
	sharp := generate(t, `note n = C#4; play(n, 100);`)
	flat := generate(t, `note n = Db4; play(n, 100);`)
	require.Equal(t, sharp[0].Arg1, flat[0].Arg1)
}

func TestGenerateRepeatStructure(t *testing.T) {
	code := generate(t, `repeat (3) { play(C4, 200); }`)

	var labels, compares, calls int
	for _, q := range code {
		switch q.Op {
		case ir.OpLabel:
			labels++
		case ir.OpLT:
			compares++
			require.Equal(t, ir.IntLit(3), q.Arg2)
		case ir.OpCall:
			calls++
		}
	}
	require.Equal(t, 3, labels) // loop_start, loop_body, loop_end
	require.Equal(t, 1, compares)
	require.Equal(t, 1, calls)
}

func TestGenerateIfElseStructure(t *testing.T) {
	code := generate(t, `int x = 5; if (x > 3) { play(A4, 100); } else { rest(100); }`)

	var jumptCount, labelCount int
	for _, q := range code {
		switch q.Op {
		case ir.OpJumpT:
			jumptCount++
		case ir.OpLabel:
			labelCount++
		}
	}
	require.Equal(t, 1, jumptCount)
	require.Equal(t, 3, labelCount) // then, else, end
}

func TestGenerateTempAndLabelNamesAreUnique(t *testing.T) {
	code := generate(t, `
		int x = 1 + 2;
		int y = 3 + 4;
		if (x > y) { play(A4, 1); } else { play(B4, 1); }
	`)

	// Each label is defined by exactly one label instruction (jump/jumpt
	// operands only reference it), and each arithmetic/compare result is a
	// freshly allocated temp.
	seen := map[string]bool{}
	for _, q := range code {
		if q.Op == ir.OpLabel {
			require.False(t, seen["label:"+q.Arg1.Name], "label %s defined twice", q.Arg1.Name)
			seen["label:"+q.Arg1.Name] = true
		}
		if q.Op != ir.OpAssign && q.Result.Kind == ir.OperandName {
			require.False(t, seen["temp:"+q.Result.Name], "temp %s reused", q.Result.Name)
			seen["temp:"+q.Result.Name] = true
		}
	}
}

func TestGenerateBoundaryOctaveNoteFrequency(t *testing.T) {
	// The highest note in the frequency table (B8) lowers to its integer Hz
	// value. Spellings the lexer accepts but the table lacks (octave 9, or
	// E#/Fb/B#/Cb) are a GeneratorError instead.
	code := generate(t, `note n = B8; play(n, 1);`)
	require.Equal(t, ir.IntLit(7902), code[0].Arg1)
}
