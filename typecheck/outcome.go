package typecheck

import (
	"tycho/types"
)

// Outcome is the result of a solve: exactly one of Solution, Ambiguous,
// Unsolvable, or Exhausted.
type Outcome interface {
	isOutcome()
}

// Score ranks candidate solutions. Lower is better.
type Score struct {
	// Conversions counts the implicit, potentially lossy conversions a
	// branch needed.
	Conversions int
}

// Solution is a complete binding map plus the overload choices committed
// while producing it.
type Solution struct {
	Bindings map[*types.Var]types.Type
	Choices  []CommittedChoice
	Score    Score
}

func (*Solution) isOutcome() {}

// TypeOf returns the fully resolved type bound to v, or nil if the solution
// does not determine it.
func (s *Solution) TypeOf(v *types.Var) types.Type {
	ty, ok := s.Bindings[v]
	if !ok {
		return nil
	}

	return ty
}

// ChoiceAt returns the committed choice for a locator, if any.
func (s *Solution) ChoiceAt(locator *Locator) (OverloadChoice, bool) {
	for _, committed := range s.Choices {
		if committed.Locator == locator {
			return committed.Choice, true
		}
	}

	return OverloadChoice{}, false
}

// Ambiguous reports that two or more candidate solutions tied under the
// scoring comparator. Candidates are listed deterministically, in the order
// of their overload choices.
type Ambiguous struct {
	Candidates []*Solution
}

func (*Ambiguous) isOutcome() {}

// Unsolvable reports that every branch failed; Failed is the first
// irreconcilable constraint, whose locator points at the offending source.
type Unsolvable struct {
	Failed *Constraint
}

func (*Unsolvable) isOutcome() {}

// Exhausted reports that the step budget ran out before the search finished.
// Best is the best-scored candidate found so far, for diagnostic hinting
// only; it may be nil and must not be used to rewrite the program.
type Exhausted struct {
	Best *Solution
}

func (*Exhausted) isOutcome() {}

// compareSolutions is the fixed comparator over candidate solutions:
// fewer implicit conversions first, then more specific overload choices.
// Declaration order deliberately does not participate; a zero result means
// the candidates tie and the solve is ambiguous.
func compareSolutions(a *Solution, b *Solution) int {
	if d := a.Score.Conversions - b.Score.Conversions; d != 0 {
		return d
	}

	net := 0
	for _, committed := range a.Choices {
		other, ok := b.ChoiceAt(committed.Locator)
		if !ok || other.Index == committed.Choice.Index {
			continue
		}

		if moreSpecific(committed.Choice.Type, other.Type) {
			net--
		} else if moreSpecific(other.Type, committed.Choice.Type) {
			net++
		}
	}

	return net
}

// moreSpecific reports whether a is a strict specialization of b: a value of
// a's shape is usable where b is expected, but not the reverse.
func moreSpecific(a types.Type, b types.Type) bool {
	return !types.Equal(a, b) && usableAs(a, b) && !usableAs(b, a)
}

func usableAs(a types.Type, b types.Type) bool {
	if types.Equal(a, b) {
		return true
	}

	switch a := a.(type) {
	case *types.Nominal:
		b, ok := b.(*types.Nominal)
		if !ok {
			return false
		}

		return types.Subclass(a.Decl, b.Decl) ||
			(b.Decl.Protocol && types.Conforms(a.Decl, b.Decl)) ||
			types.ImplicitlyConvertible(a.Decl, b.Decl)
	case *types.Function:
		b, ok := b.(*types.Function)
		if !ok || len(a.Params) != len(b.Params) {
			return false
		}

		for i := range a.Params {
			if !usableAs(b.Params[i], a.Params[i]) {
				return false
			}
		}

		return usableAs(a.Result, b.Result)
	default:
		return false
	}
}

// solutionOrder orders candidate solutions deterministically for reporting,
// by the declaration indexes of their committed choices.
func solutionOrder(a *Solution, b *Solution) int {
	for i := 0; i < len(a.Choices) && i < len(b.Choices); i++ {
		if d := a.Choices[i].Choice.Index - b.Choices[i].Choice.Index; d != 0 {
			return d
		}
	}

	return len(a.Choices) - len(b.Choices)
}
