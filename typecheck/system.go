package typecheck

import (
	"fmt"
	"slices"

	"tycho/database"
	"tycho/types"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("tycho.typecheck")

// Config tunes one solve.
type Config struct {
	// Budget bounds the number of simplification attempts plus forks across
	// the entire solve, including every branch. Exceeding it aborts the
	// solve with Exhausted. Zero means DefaultBudget.
	Budget int

	// OnSimplify is called before each simplification attempt. Used by
	// instrumentation and tests; may be nil.
	OnSimplify func(*Constraint)
}

const DefaultBudget = 10000

// shared is the state common to a system and every overlay forked from it:
// the append-only constraint arena, the locator intern table, the type
// variable counter, and the solve budget.
type shared struct {
	arena    *arena
	locators map[string]*Locator
	nextVar  int
	config   Config
	steps    int
}

// System owns a set of outstanding constraints, the arena that allocates
// them, and the binding state the solver mutates. A System is scoped to one
// type-checking unit; dropping it releases every constraint it allocated.
type System struct {
	shared *shared
	parent *System

	bindings    *types.Bindings
	work        []*Constraint
	choices     []CommittedChoice
	conversions int
}

func NewSystem(config Config) *System {
	if config.Budget == 0 {
		config.Budget = DefaultBudget
	}

	return &System{
		shared: &shared{
			arena:    newArena(),
			locators: map[string]*Locator{},
			config:   config,
		},
		bindings: types.NewBindings(),
	}
}

// NewTypeVariable creates a fresh type variable anchored at node (which may
// be nil for variables with no source counterpart).
func (s *System) NewTypeVariable(anchor database.Node) *types.Var {
	s.shared.nextVar++
	return &types.Var{ID: s.shared.nextVar, Anchor: anchor}
}

// Locator interns the provenance token for (anchor, path). The same pair
// always yields the same *Locator.
func (s *System) Locator(anchor database.Node, path ...PathElement) *Locator {
	if anchor == nil {
		panic("constraint locator requires an anchor")
	}

	key := locatorKey(anchor, path)
	if locator, ok := s.shared.locators[key]; ok {
		return locator
	}

	locator := &Locator{anchor: anchor, path: slices.Clone(path)}
	s.shared.locators[key] = locator
	return locator
}

// NewRelational allocates a relational or type-property constraint without
// enqueueing it. second must be nil exactly for the unary type-property
// kinds.
func (s *System) NewRelational(kind Kind, first types.Type, second types.Type, locator *Locator) *Constraint {
	switch kind.Classify() {
	case RelationalConstraint:
		if kind == BindOverload {
			panic("overload bindings must be created with NewOverloadBinding")
		}
		if second == nil {
			panic(fmt.Sprintf("%s constraints require a second type", kind))
		}
	case TypePropertyConstraint:
		if second != nil {
			panic(fmt.Sprintf("%s constraints have no second type", kind))
		}
	default:
		panic(fmt.Sprintf("%s is not a relational or type-property kind", kind))
	}

	c := s.alloc(kind, locator)
	c.first = required(first, "first type")
	c.second = second
	return c
}

// NewMember allocates a member constraint without enqueueing it.
func (s *System) NewMember(kind Kind, first types.Type, member string, second types.Type, locator *Locator) *Constraint {
	if !kind.HasMember() {
		panic(fmt.Sprintf("%s is not a member kind", kind))
	}
	if member == "" {
		panic("member constraints require a member name")
	}

	c := s.alloc(kind, locator)
	c.first = required(first, "first type")
	c.second = required(second, "second type")
	c.member = member
	return c
}

// NewOverloadBinding allocates a BindOverload constraint binding v to the
// type contributed by choice, without enqueueing it.
func (s *System) NewOverloadBinding(v *types.Var, choice OverloadChoice, locator *Locator) *Constraint {
	if v == nil {
		panic("overload bindings require a type variable")
	}
	if choice.Type == nil {
		panic("overload bindings require a valid choice")
	}

	c := s.alloc(BindOverload, locator)
	c.first = v
	c.choice = choice
	return c
}

// NewConjunction allocates a conjunction over children, which must be
// non-empty and already allocated in this system's arena.
func (s *System) NewConjunction(children []*Constraint, locator *Locator) *Constraint {
	return s.newGroup(Conjunction, children, locator)
}

// NewDisjunction allocates a disjunction over children, which must be
// non-empty and already allocated in this system's arena.
func (s *System) NewDisjunction(children []*Constraint, locator *Locator) *Constraint {
	return s.newGroup(Disjunction, children, locator)
}

func (s *System) newGroup(kind Kind, children []*Constraint, locator *Locator) *Constraint {
	if len(children) == 0 {
		panic(fmt.Sprintf("%s constraints require at least one nested constraint", kind))
	}

	c := s.alloc(kind, locator)
	c.nested = slices.Clone(children)
	return c
}

func (s *System) alloc(kind Kind, locator *Locator) *Constraint {
	if locator == nil {
		panic("constraints require a locator")
	}

	c := s.shared.arena.alloc()
	c.kind = kind
	c.locator = locator
	return c
}

// Add enqueues constraints onto this branch's worklist in order.
func (s *System) Add(constraints ...*Constraint) {
	s.work = append(s.work, constraints...)
}

// AddConstraint allocates and enqueues an atomic constraint.
func (s *System) AddConstraint(kind Kind, first types.Type, second types.Type, locator *Locator) *Constraint {
	c := s.NewRelational(kind, first, second, locator)
	s.Add(c)
	return c
}

// AddMemberConstraint allocates and enqueues a member constraint.
func (s *System) AddMemberConstraint(kind Kind, first types.Type, member string, second types.Type, locator *Locator) *Constraint {
	c := s.NewMember(kind, first, member, second, locator)
	s.Add(c)
	return c
}

// AddOverloadSet lowers a name reference with several candidates into a
// disjunction of overload bindings for v, one per choice in declaration
// order, and enqueues it. A single candidate is enqueued directly.
func (s *System) AddOverloadSet(v *types.Var, choices []OverloadChoice, locator *Locator) *Constraint {
	if len(choices) == 0 {
		panic("overload sets require at least one choice")
	}

	children := make([]*Constraint, len(choices))
	for i, choice := range choices {
		choice.Index = i
		children[i] = s.NewOverloadBinding(v, choice, locator)
	}

	if len(children) == 1 {
		s.Add(children[0])
		return children[0]
	}

	disjunction := s.NewDisjunction(children, locator)
	s.Add(disjunction)
	return disjunction
}

// Fork produces an isolated overlay sharing the immutable constraint arena
// but with private binding state and worklist, used to explore one
// disjunction branch without mutating s.
func (s *System) Fork() *System {
	return &System{
		shared:      s.shared,
		parent:      s,
		bindings:    s.bindings.Fork(),
		work:        slices.Clone(s.work),
		choices:     slices.Clone(s.choices),
		conversions: s.conversions,
	}
}

// Commit merges an overlay's binding-state delta, worklist, and committed
// choices back into s.
func (s *System) Commit(overlay *System) {
	if overlay.parent != s {
		panic("overlay was not forked from this system")
	}

	overlay.bindings.Commit()
	s.work = overlay.work
	s.choices = overlay.choices
	s.conversions = overlay.conversions
}

// Discard drops an overlay. The overlay's constraint allocations stay in the
// shared arena (constraints are append-only); its binding delta and worklist
// are simply abandoned.
func (s *System) Discard(overlay *System) {
	if overlay.parent != s {
		panic("overlay was not forked from this system")
	}
}

// Bindings exposes the branch's current binding state.
func (s *System) Bindings() *types.Bindings {
	return s.bindings
}

// Pending returns the constraints still on this branch's worklist, in order.
func (s *System) Pending() []*Constraint {
	return slices.Clone(s.work)
}

func (s *System) pop() (*Constraint, bool) {
	if len(s.work) == 0 {
		return nil, false
	}

	c := s.work[0]
	s.work = s.work[1:]
	return c, true
}

func required(ty types.Type, what string) types.Type {
	if ty == nil {
		panic(fmt.Sprintf("constraint requires a %s", what))
	}

	return ty
}
