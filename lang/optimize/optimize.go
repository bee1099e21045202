// Package optimize implements MelodyScript's peephole optimizer: constant
// propagation and folding of assignment/arithmetic/compare quadruples over
// an environment of statically-known values (user variables and compiler
// temps alike), a dead-temp cleanup, and dead-jump elimination.
package optimize

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/syncali/melodyscript/lang/diag"
	"github.com/syncali/melodyscript/lang/ir"
)

// Optimize runs the optimizer's passes over code in sequence and returns
// the rewritten quadruple sequence. The only failure mode is a
// constant-folded division by zero, reported as a diag.OptimizerError;
// individual quadruples carry no source line, so the error reports line 0.
func Optimize(code []ir.Quadruple) ([]ir.Quadruple, error) {
	folded, err := foldAndPropagate(code)
	if err != nil {
		return nil, err
	}
	cleaned := eliminateDeadTemps(folded)
	return deadJumpEliminate(cleaned), nil
}

// foldAndPropagate makes one forward pass over code, maintaining an
// environment mapping names (user variables and compiler temps alike) to
// their values when statically known. Reads in assignment, arithmetic,
// compare and jumpt quadruples are resolved against the environment; an
// arithmetic or compare quadruple whose operands are both literal after
// resolution is folded to a plain assignment of the computed value.
// PARAM/CALL/jump/label operands are kept verbatim, so a known-constant
// variable still appears by name in a call's argument setup.
//
// Bindings are cleared at every label, since a label is a jump target that
// may be reached from program points this linear scan hasn't visited yet;
// propagating a pre-label binding across it would not be sound.
var emptyEnv = map[string]int64{}

func foldAndPropagate(code []ir.Quadruple) ([]ir.Quadruple, error) {
	env := maps.Clone(emptyEnv)
	out := make([]ir.Quadruple, 0, len(code))

	for _, q := range code {
		if q.Op == ir.OpLabel {
			// A label is a jump target possibly reached from program points
			// this forward scan hasn't visited yet, so every binding
			// gathered so far is invalidated rather than carried across it.
			env = maps.Clone(emptyEnv)
		}

		nq := q
		switch q.Op {
		case ir.OpAssign, ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv,
			ir.OpGT, ir.OpLT, ir.OpEQ, ir.OpJumpT:
			nq.Arg1 = substitute(q.Arg1, env)
			nq.Arg2 = substitute(q.Arg2, env)
		}
		a1, a2 := nq.Arg1, nq.Arg2

		switch q.Op {
		case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
			if a1.Kind == ir.OperandInt && a2.Kind == ir.OperandInt {
				val, err := foldArith(q.Op, a1.Int, a2.Int)
				if err != nil {
					return nil, err
				}
				nq = ir.Quadruple{Op: ir.OpAssign, Arg1: ir.IntLit(val), Arg2: ir.None, Result: q.Result}
			}
		case ir.OpGT, ir.OpLT, ir.OpEQ:
			if a1.Kind == ir.OperandInt && a2.Kind == ir.OperandInt {
				val := foldCompare(q.Op, a1.Int, a2.Int)
				nq = ir.Quadruple{Op: ir.OpAssign, Arg1: ir.IntLit(val), Arg2: ir.None, Result: q.Result}
			}
		}

		if nq.Result.Kind == ir.OperandName {
			if nq.Op == ir.OpAssign && nq.Arg1.Kind == ir.OperandInt {
				env[nq.Result.Name] = nq.Arg1.Int
			} else {
				delete(env, nq.Result.Name)
			}
		}

		out = append(out, nq)
	}
	return out, nil
}

func substitute(o ir.Operand, env map[string]int64) ir.Operand {
	if o.Kind == ir.OperandName {
		if v, ok := env[o.Name]; ok {
			return ir.IntLit(v)
		}
	}
	return o
}

func foldArith(op ir.Op, v1, v2 int64) (int64, error) {
	switch op {
	case ir.OpAdd:
		return v1 + v2, nil
	case ir.OpSub:
		return v1 - v2, nil
	case ir.OpMul:
		return v1 * v2, nil
	default: // OpDiv
		if v2 == 0 {
			return 0, diag.New(diag.OptimizerError, 0, "Division by zero")
		}
		// Truncates toward zero, like Go's native "/".
		return v1 / v2, nil
	}
}

func foldCompare(op ir.Op, v1, v2 int64) int64 {
	var ok bool
	switch op {
	case ir.OpGT:
		ok = v1 > v2
	case ir.OpLT:
		ok = v1 < v2
	default: // OpEQ
		ok = v1 == v2
	}
	return boolInt(ok)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// isCompilerTemp reports whether name matches the IC generator's temp
// naming scheme ("t" followed by one or more digits), the only names whose
// assignments eliminateDeadTemps drops. Substitution in foldAndPropagate
// applies to user variables as well. A user variable whose name has this
// form is indistinguishable from a temp here.
func isCompilerTemp(name string) bool {
	if len(name) < 2 || name[0] != 't' {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// eliminateDeadTemps drops any literal assignment to a compiler temp that
// foldAndPropagate already resolved away every read of: once every use of a
// temp has been replaced by the literal it held, the assignment that
// produced it is dead weight.
func eliminateDeadTemps(code []ir.Quadruple) []ir.Quadruple {
	read := make(map[string]bool)
	for _, q := range code {
		for _, o := range [2]ir.Operand{q.Arg1, q.Arg2} {
			if o.Kind == ir.OperandName {
				read[o.Name] = true
			}
		}
	}

	out := make([]ir.Quadruple, 0, len(code))
	for _, q := range code {
		if q.Op == ir.OpAssign && q.Result.Kind == ir.OperandName &&
			isCompilerTemp(q.Result.Name) && !read[q.Result.Name] {
			continue
		}
		out = append(out, q)
	}
	return out
}

// deadJumpEliminate resolves any jumpt whose condition is a literal: a
// false (0) condition drops the instruction entirely (control falls
// through to the next quadruple, which is always the unconditional "else"
// jump the IC generator already emits after every jumpt), a true (nonzero)
// condition collapses it to an unconditional jump to the same target.
func deadJumpEliminate(code []ir.Quadruple) []ir.Quadruple {
	out := make([]ir.Quadruple, 0, len(code))
	for _, q := range code {
		if q.Op == ir.OpJumpT && q.Arg1.Kind == ir.OperandInt {
			if q.Arg1.Int == 0 {
				continue
			}
			out = append(out, ir.Quadruple{Op: ir.OpJump, Arg1: q.Arg2, Arg2: ir.None, Result: ir.None})
			continue
		}
		out = append(out, q)
	}
	return slices.Clip(out)
}
