package typecheck

import (
	"slices"

	"tycho/types"
)

type simplifyResult int

const (
	simplified simplifyResult = iota
	deferredConstraint
	failedConstraint
	outOfBudget
)

// Solve drives the system through simplification and disjunction exploration
// to an outcome. On a unique best solution, the solution's bindings are
// committed into the system so callers can read them back directly.
func (s *System) Solve() Outcome {
	candidates, failed, exhausted := s.solveBranch()

	slices.SortStableFunc(candidates, solutionOrder)

	if exhausted {
		return &Exhausted{Best: bestCandidate(candidates)}
	}

	if len(candidates) == 0 {
		return &Unsolvable{Failed: failed}
	}

	best := bestCandidate(candidates)

	var tied []*Solution
	for _, candidate := range candidates {
		if compareSolutions(candidate, best) == 0 {
			tied = append(tied, candidate)
		}
	}

	if len(tied) > 1 {
		log.Debugf("solve is ambiguous between %d candidates", len(tied))
		return &Ambiguous{Candidates: tied}
	}

	for v, ty := range best.Bindings {
		if _, ok := s.bindings.Lookup(v); !ok {
			s.bindings.Bind(v, ty)
		}
	}
	s.choices = slices.Clone(best.Choices)

	return best
}

func bestCandidate(candidates []*Solution) *Solution {
	var best *Solution
	for _, candidate := range candidates {
		if best == nil || compareSolutions(candidate, best) < 0 {
			best = candidate
		}
	}

	return best
}

// solveBranch simplifies this branch to a fixed point, then forks on the
// disjunction with the fewest alternatives, recursing into each child in
// declaration order. It returns every candidate solution the subtree
// produced, or the first irreconcilable constraint when none survived.
func (s *System) solveBranch() (candidates []*Solution, failed *Constraint, exhausted bool) {
	failed, exhausted = s.simplifyFixpoint()
	if exhausted {
		return nil, nil, true
	}
	if failed != nil {
		log.Debugf("branch failed at %s", failed)
		return nil, failed, false
	}

	disjunction := s.takeDisjunction()
	if disjunction == nil {
		if len(s.work) > 0 {
			if s.bindBlocked() {
				return s.solveBranch()
			}

			// Blocked atomic constraints with nothing left to fork on.
			return nil, s.work[0], false
		}

		return []*Solution{s.snapshot()}, nil, false
	}

	log.Debugf("exploring %s (%d alternatives)", disjunction.kind, len(disjunction.nested))

	var firstFailed *Constraint
	for _, child := range disjunction.NestedConstraints() {
		if !s.spend() {
			return candidates, nil, true
		}

		overlay := s.Fork()
		overlay.Add(child)

		sols, childFailed, childExhausted := overlay.solveBranch()
		candidates = append(candidates, sols...)
		if childExhausted {
			return candidates, nil, true
		}
		if len(sols) == 0 && firstFailed == nil {
			firstFailed = childFailed
		}

		s.Discard(overlay)
	}

	if len(candidates) == 0 {
		if firstFailed == nil {
			firstFailed = disjunction
		}

		return nil, firstFailed, false
	}

	return candidates, nil, false
}

// bindBlocked applies last-resort defaulting to a blocked branch: a deferred
// convertible constraint whose one unresolved side is a type variable binds
// that variable to the other side exactly, and an applicable-function
// constraint with an unknown callee binds the callee to the synthesized
// function type. One variable is bound per call; the caller re-runs
// simplification before defaulting again.
func (s *System) bindBlocked() bool {
	for _, c := range s.work {
		if c.Classification() != RelationalConstraint {
			continue
		}

		switch c.kind {
		case TrivialSubtype, Subtype, Conversion, Construction:
			from := s.bindings.Apply(c.first)
			if lv, ok := from.(*types.LValue); ok {
				from = lv.Ref
			}
			to := s.bindings.Apply(c.second)

			if v, ok := from.(*types.Var); ok && !unresolved(to) {
				if !types.ReferencesVar(s.bindings, to, v) {
					log.Debugf("defaulting %s to %s", types.Display(v), types.Display(to))
					s.bindings.Bind(v, to)
					return true
				}
			}

			if v, ok := to.(*types.Var); ok && !unresolved(from) {
				if !types.ReferencesVar(s.bindings, from, v) {
					log.Debugf("defaulting %s to %s", types.Display(v), types.Display(from))
					s.bindings.Bind(v, from)
					return true
				}
			}
		case ApplicableFunction:
			applied := s.bindings.Apply(c.first)
			callee := s.bindings.Apply(c.second)
			if lv, ok := callee.(*types.LValue); ok {
				callee = lv.Ref
			}

			if v, ok := callee.(*types.Var); ok {
				if _, ok := applied.(*types.Function); ok && !types.ReferencesVar(s.bindings, applied, v) {
					s.bindings.Bind(v, applied)
					return true
				}
			}
		}
	}

	return false
}

// takeDisjunction removes and returns the pending disjunction with the
// fewest alternatives, ties broken by declaration order, or nil if none is
// pending.
func (s *System) takeDisjunction() *Constraint {
	best := -1
	for i, c := range s.work {
		if c.kind != Disjunction {
			continue
		}

		if best == -1 ||
			len(c.nested) < len(s.work[best].nested) ||
			(len(c.nested) == len(s.work[best].nested) && c.seq < s.work[best].seq) {
			best = i
		}
	}

	if best == -1 {
		return nil
	}

	disjunction := s.work[best]
	s.work = slices.Delete(slices.Clone(s.work), best, best+1)
	return disjunction
}

// snapshot captures this branch's bindings and committed choices as a
// candidate solution.
func (s *System) snapshot() *Solution {
	return &Solution{
		Bindings: s.bindings.Flatten(),
		Choices:  slices.Clone(s.choices),
		Score:    Score{Conversions: s.conversions},
	}
}

// Simplify runs simplification passes until no pass makes progress.
// Re-simplifying an already-simplified, fully-bound system is a no-op.
func (s *System) Simplify() (failed *Constraint, exhausted bool) {
	return s.simplifyFixpoint()
}

func (s *System) simplifyFixpoint() (*Constraint, bool) {
	for {
		sizeBefore := s.bindings.Size()

		solvedAny, failed, exhausted := s.simplifyPass()
		if failed != nil || exhausted {
			return failed, exhausted
		}

		if !solvedAny && s.bindings.Size() == sizeBefore {
			return nil, false
		}
	}
}

// simplifyPass attempts each constraint currently on the worklist once, in
// FIFO order. Deferred constraints are re-queued behind any sub-constraints
// produced by decomposition.
func (s *System) simplifyPass() (solvedAny bool, failed *Constraint, exhausted bool) {
	count := len(s.work)
	var requeued []*Constraint

	for i := 0; i < count; i++ {
		c, ok := s.pop()
		if !ok {
			break
		}

		if c.kind == Disjunction {
			// Disjunctions fork the search; they are never simplified in
			// place.
			requeued = append(requeued, c)
			continue
		}

		switch result, blame := s.simplifyOne(c); result {
		case simplified:
			solvedAny = true
		case deferredConstraint:
			requeued = append(requeued, c)
		case failedConstraint:
			return solvedAny, blame, false
		case outOfBudget:
			return solvedAny, nil, true
		}
	}

	s.work = append(s.work, requeued...)
	return solvedAny, nil, false
}

// simplifyOne attempts one constraint against the current bindings. The
// returned blame constraint is the one to report when the result is a
// failure; for groups it may be a nested child rather than c itself.
func (s *System) simplifyOne(c *Constraint) (simplifyResult, *Constraint) {
	if s.shared.config.OnSimplify != nil {
		s.shared.config.OnSimplify(c)
	}

	if !s.spend() {
		return outOfBudget, nil
	}

	switch c.Classification() {
	case RelationalConstraint:
		return s.simplifyRelational(c)
	case MemberConstraint:
		return s.simplifyMember(c)
	case TypePropertyConstraint:
		return s.simplifyProperty(c)
	case ConjunctionConstraint:
		return s.simplifyConjunction(c)
	default:
		panic("disjunctions are handled by solveBranch")
	}
}

func (s *System) simplifyRelational(c *Constraint) (simplifyResult, *Constraint) {
	switch c.kind {
	case Bind:
		return s.unify(c, types.UnifyOptions{})
	case Equal:
		return s.unify(c, types.UnifyOptions{IgnoreLValue: true})
	case BindOverload:
		if err := types.Unify(s.bindings, c.first, c.choice.Type, types.UnifyOptions{}); err != nil {
			return failedConstraint, c
		}

		s.commitChoice(c.locator, c.choice)
		return simplified, nil
	case TrivialSubtype, Subtype, Conversion, Construction:
		return s.simplifyConvertible(c)
	case ConformsTo:
		return s.simplifyConformsTo(c)
	case ApplicableFunction:
		return s.simplifyApplicableFunction(c)
	default:
		panic("unreachable")
	}
}

func (s *System) unify(c *Constraint, opts types.UnifyOptions) (simplifyResult, *Constraint) {
	if err := types.Unify(s.bindings, c.first, c.second, opts); err != nil {
		return failedConstraint, c
	}

	return simplified, nil
}

// simplifyConvertible handles the subtyping and conversion relations. Both
// sides must resolve before the relation can be judged; an unresolved type
// variable defers the constraint rather than failing it.
func (s *System) simplifyConvertible(c *Constraint) (simplifyResult, *Constraint) {
	from := s.bindings.Apply(c.first)
	to := s.bindings.Apply(c.second)

	// Conversions operate on values, not storage.
	if lv, ok := from.(*types.LValue); ok {
		from = lv.Ref
	}

	if types.Equal(from, to) {
		return simplified, nil
	}

	if unresolved(from) || unresolved(to) {
		return deferredConstraint, nil
	}

	switch from := from.(type) {
	case *types.Function:
		to, ok := to.(*types.Function)
		if !ok || len(from.Params) != len(to.Params) {
			return failedConstraint, c
		}

		// Decompose: parameters are contravariant, results covariant.
		for i := range from.Params {
			s.Add(s.NewRelational(c.kind, to.Params[i], from.Params[i], c.locator))
		}
		s.Add(s.NewRelational(c.kind, from.Result, to.Result, c.locator))

		return simplified, nil
	case *types.Nominal:
		to, ok := to.(*types.Nominal)
		if !ok {
			return failedConstraint, c
		}

		if from.Decl == to.Decl {
			if err := types.Unify(s.bindings, from, to, types.UnifyOptions{}); err != nil {
				return failedConstraint, c
			}

			return simplified, nil
		}

		if types.Subclass(from.Decl, to.Decl) {
			return simplified, nil
		}

		if to.Decl.Protocol && types.Conforms(from.Decl, to.Decl) {
			return simplified, nil
		}

		if c.kind == Conversion || c.kind == Construction {
			if types.ImplicitlyConvertible(from.Decl, to.Decl) {
				s.conversions++
				return simplified, nil
			}
		}

		if c.kind == Construction {
			return s.simplifyConstruction(c, from, to)
		}

		return failedConstraint, c
	default:
		return failedConstraint, c
	}
}

// simplifyConstruction checks whether from is usable as an argument to one
// of to's constructors.
func (s *System) simplifyConstruction(c *Constraint, from *types.Nominal, to *types.Nominal) (simplifyResult, *Constraint) {
	for _, init := range types.LookupMembers(to, "init", false) {
		fn, ok := init.Type.(*types.Function)
		if !ok || len(fn.Params) != 1 {
			continue
		}

		param, ok := fn.Params[0].(*types.Nominal)
		if !ok {
			continue
		}

		if param.Decl == from.Decl || types.Subclass(from.Decl, param.Decl) {
			return simplified, nil
		}

		if types.ImplicitlyConvertible(from.Decl, param.Decl) {
			s.conversions++
			return simplified, nil
		}
	}

	return failedConstraint, c
}

func (s *System) simplifyConformsTo(c *Constraint) (simplifyResult, *Constraint) {
	to := s.bindings.Apply(c.second)
	if unresolved(to) {
		return deferredConstraint, nil
	}

	proto, ok := to.(*types.Nominal)
	if !ok || !proto.Decl.Protocol {
		panic("ConformsTo requires a protocol as its second type")
	}

	from := s.bindings.Apply(c.first)
	if lv, ok := from.(*types.LValue); ok {
		from = lv.Ref
	}
	if unresolved(from) {
		return deferredConstraint, nil
	}

	nominal, ok := from.(*types.Nominal)
	if !ok || !types.Conforms(nominal.Decl, proto.Decl) {
		return failedConstraint, c
	}

	return simplified, nil
}

// simplifyApplicableFunction matches the synthesized function type built
// from a call's arguments and result against the callee's type, decomposing
// into one conversion per argument and a bind for the result.
func (s *System) simplifyApplicableFunction(c *Constraint) (simplifyResult, *Constraint) {
	applied := s.bindings.Apply(c.first)
	callee := s.bindings.Apply(c.second)

	if lv, ok := callee.(*types.LValue); ok {
		callee = lv.Ref
	}

	fn, ok := applied.(*types.Function)
	if !ok {
		if unresolved(applied) {
			return deferredConstraint, nil
		}

		return failedConstraint, c
	}

	switch callee := callee.(type) {
	case *types.Var:
		return deferredConstraint, nil
	case *types.Function:
		if len(fn.Params) != len(callee.Params) {
			return failedConstraint, c
		}

		anchor := c.locator.Anchor()
		for i := range fn.Params {
			locator := s.Locator(anchor, append(slices.Clone(c.locator.Path()), PathElement{Kind: PathApplyArgument, Index: i})...)
			s.Add(s.NewRelational(Conversion, fn.Params[i], callee.Params[i], locator))
		}

		resultLocator := s.Locator(anchor, append(slices.Clone(c.locator.Path()), PathElement{Kind: PathApplyResult})...)
		s.Add(s.NewRelational(Bind, fn.Result, callee.Result, resultLocator))

		return simplified, nil
	default:
		return failedConstraint, c
	}
}

// simplifyMember performs member lookup on the first type. A unique
// candidate binds the second type directly; several candidates synthesize a
// disjunction for the exploration phase; none fails the branch.
func (s *System) simplifyMember(c *Constraint) (simplifyResult, *Constraint) {
	base := s.bindings.Apply(c.first)
	if lv, ok := base.(*types.LValue); ok {
		base = lv.Ref
	}
	if unresolved(base) {
		return deferredConstraint, nil
	}

	members := types.LookupMembers(base, c.member, c.kind == TypeMember)
	switch len(members) {
	case 0:
		return failedConstraint, c
	case 1:
		if err := types.Unify(s.bindings, c.second, members[0].Type, types.UnifyOptions{}); err != nil {
			return failedConstraint, c
		}

		return simplified, nil
	default:
		second := s.bindings.Shallow(c.second)
		v, ok := second.(*types.Var)
		if !ok {
			// The member's type is already known; keep only alternatives
			// with matching types.
			children := make([]*Constraint, 0, len(members))
			for _, member := range members {
				children = append(children, s.NewRelational(Bind, c.second, member.Type, c.locator))
			}

			s.Add(s.NewDisjunction(children, c.locator))
			return simplified, nil
		}

		kind := ChoiceDecl
		if nominal, ok := base.(*types.Nominal); ok && nominal.Decl.DynamicLookup {
			kind = ChoiceDeclViaDynamic
		}

		children := make([]*Constraint, len(members))
		for i, member := range members {
			children[i] = s.NewOverloadBinding(v, OverloadChoice{
				Kind:  kind,
				Name:  member.Name,
				Type:  member.Type,
				Index: member.Index,
			}, c.locator)
		}

		s.Add(s.NewDisjunction(children, c.locator))
		return simplified, nil
	}
}

func (s *System) simplifyProperty(c *Constraint) (simplifyResult, *Constraint) {
	ty := s.bindings.Apply(c.first)
	if lv, ok := ty.(*types.LValue); ok {
		ty = lv.Ref
	}
	if unresolved(ty) {
		return deferredConstraint, nil
	}

	nominal, ok := ty.(*types.Nominal)
	if !ok {
		return failedConstraint, c
	}

	switch c.kind {
	case Archetype:
		if nominal.Decl.Archetype {
			return simplified, nil
		}
	case Class:
		if types.ClassBound(nominal.Decl) {
			return simplified, nil
		}
	case DynamicLookupValue:
		if nominal.Decl.DynamicLookup {
			return simplified, nil
		}
	}

	return failedConstraint, c
}

// simplifyConjunction attempts each child in order and short-circuits on the
// first failure; later children are never attempted. Disjunction and deferred
// children continue as their own worklist items, so the conjunction itself is
// consumed after one attempt and each nested disjunction reaches exploration
// exactly once.
func (s *System) simplifyConjunction(c *Constraint) (simplifyResult, *Constraint) {
	for _, child := range c.NestedConstraints() {
		if child.kind == Disjunction {
			s.Add(child)
			continue
		}

		result, blame := s.simplifyOne(child)
		if result == deferredConstraint {
			s.Add(child)
			continue
		}

		if result != simplified {
			return result, blame
		}
	}

	return simplified, nil
}

func (s *System) commitChoice(locator *Locator, choice OverloadChoice) {
	for i, existing := range s.choices {
		if existing.Locator == locator {
			s.choices[i] = CommittedChoice{Locator: locator, Choice: choice}
			return
		}
	}

	s.choices = append(s.choices, CommittedChoice{Locator: locator, Choice: choice})
}

// spend consumes one unit of the step budget; false means the solve is
// exhausted.
func (s *System) spend() bool {
	s.shared.steps++
	return s.shared.steps <= s.shared.config.Budget
}

func unresolved(ty types.Type) bool {
	_, ok := ty.(*types.Var)
	return ok
}
