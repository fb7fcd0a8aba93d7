package typecheck_test

import (
	"testing"

	"tycho/typecheck"
	"tycho/types"
)

func TestLocatorInterning(t *testing.T) {
	sys := typecheck.NewSystem(typecheck.Config{})
	a := anchor()
	b := anchor()

	member := typecheck.PathElement{Kind: typecheck.PathMember}
	if sys.Locator(a, member) != sys.Locator(a, member) {
		t.Error("the same anchor and path should intern to the same locator")
	}

	if sys.Locator(a) == sys.Locator(a, member) {
		t.Error("different paths must not share a locator")
	}

	first := typecheck.PathElement{Kind: typecheck.PathApplyArgument, Index: 0}
	second := typecheck.PathElement{Kind: typecheck.PathApplyArgument, Index: 1}
	if sys.Locator(a, first) == sys.Locator(a, second) {
		t.Error("different argument positions must not share a locator")
	}

	if sys.Locator(a) == sys.Locator(b) {
		t.Error("different anchors must not share a locator")
	}

	expectPanic(t, "a nil anchor", func() { sys.Locator(nil) })
}

func TestAccessorContracts(t *testing.T) {
	f := newFixture()
	sys := typecheck.NewSystem(typecheck.Config{})
	locator := sys.Locator(anchor())

	v := sys.NewTypeVariable(nil)
	bind := sys.NewRelational(typecheck.Bind, v, f.intDecl.Type(), locator)
	archetype := sys.NewRelational(typecheck.Archetype, f.intDecl.Type(), nil, locator)
	member := sys.NewMember(typecheck.ValueMember, f.stringDecl.Type(), "count", v, locator)
	overload := sys.NewOverloadBinding(v, typecheck.OverloadChoice{Name: "abs", Type: f.intDecl.Type()}, locator)
	group := sys.NewConjunction([]*typecheck.Constraint{bind}, locator)

	if bind.FirstType() == nil || bind.SecondType() == nil {
		t.Error("relational constraints carry both types")
	}

	if archetype.SecondType() != nil {
		t.Error("type-property constraints have a nil second type")
	}

	if member.Member() != "count" {
		t.Error("member constraints carry their member name")
	}

	if overload.FirstType() != v {
		t.Error("overload bindings carry the bound variable as their first type")
	}

	if overload.OverloadChoice().Name != "abs" {
		t.Error("overload bindings carry their choice")
	}

	if len(group.NestedConstraints()) != 1 {
		t.Error("groups carry their children")
	}

	expectPanic(t, "FirstType on a group", func() { group.FirstType() })
	expectPanic(t, "SecondType on a group", func() { group.SecondType() })
	expectPanic(t, "SecondType on an overload binding", func() { overload.SecondType() })
	expectPanic(t, "Member on a non-member constraint", func() { bind.Member() })
	expectPanic(t, "OverloadChoice on a non-overload constraint", func() { bind.OverloadChoice() })
	expectPanic(t, "NestedConstraints on an atomic constraint", func() { bind.NestedConstraints() })
}

func TestConstructionValidation(t *testing.T) {
	f := newFixture()
	sys := typecheck.NewSystem(typecheck.Config{})
	locator := sys.Locator(anchor())
	v := sys.NewTypeVariable(nil)

	expectPanic(t, "a relational constraint without a second type", func() {
		sys.NewRelational(typecheck.Bind, v, nil, locator)
	})

	expectPanic(t, "a type-property constraint with a second type", func() {
		sys.NewRelational(typecheck.Class, v, f.intDecl.Type(), locator)
	})

	expectPanic(t, "BindOverload through NewRelational", func() {
		sys.NewRelational(typecheck.BindOverload, v, f.intDecl.Type(), locator)
	})

	expectPanic(t, "a group kind through NewRelational", func() {
		sys.NewRelational(typecheck.Disjunction, v, f.intDecl.Type(), locator)
	})

	expectPanic(t, "a member constraint without a name", func() {
		sys.NewMember(typecheck.ValueMember, f.stringDecl.Type(), "", v, locator)
	})

	expectPanic(t, "an overload binding without a choice", func() {
		sys.NewOverloadBinding(v, typecheck.OverloadChoice{}, locator)
	})

	expectPanic(t, "an empty conjunction", func() {
		sys.NewConjunction(nil, locator)
	})

	expectPanic(t, "an empty disjunction", func() {
		sys.NewDisjunction(nil, locator)
	})

	expectPanic(t, "a constraint without a locator", func() {
		sys.NewRelational(typecheck.Bind, v, f.intDecl.Type(), nil)
	})
}

func TestOverloadSetLowering(t *testing.T) {
	f := newFixture()
	sys := typecheck.NewSystem(typecheck.Config{})
	locator := sys.Locator(anchor())
	v := sys.NewTypeVariable(nil)

	choices := []typecheck.OverloadChoice{
		{Name: "abs", Type: types.NewFunction([]types.Type{f.intDecl.Type()}, f.intDecl.Type())},
		{Name: "abs", Type: types.NewFunction([]types.Type{f.floatDecl.Type()}, f.floatDecl.Type())},
	}

	disjunction := sys.AddOverloadSet(v, choices, locator)
	if disjunction.Kind() != typecheck.Disjunction {
		t.Fatalf("expected a disjunction, found %s", disjunction.Kind())
	}

	for i, child := range disjunction.NestedConstraints() {
		if child.Kind() != typecheck.BindOverload {
			t.Errorf("child %d is a %s", i, child.Kind())
		}

		if child.OverloadChoice().Index != i {
			t.Errorf("child %d has index %d", i, child.OverloadChoice().Index)
		}
	}

	single := sys.AddOverloadSet(sys.NewTypeVariable(nil), choices[:1], locator)
	if single.Kind() != typecheck.BindOverload {
		t.Errorf("a single choice should lower to a plain overload binding, found %s", single.Kind())
	}

	expectPanic(t, "an empty overload set", func() { sys.AddOverloadSet(v, nil, locator) })
}

func TestForkCommitDiscard(t *testing.T) {
	f := newFixture()
	sys := typecheck.NewSystem(typecheck.Config{})
	v := sys.NewTypeVariable(nil)

	overlay := sys.Fork()
	overlay.Bindings().Bind(v, f.intDecl.Type())

	if _, ok := sys.Bindings().Lookup(v); ok {
		t.Error("an overlay's bindings must stay invisible until committed")
	}

	sys.Discard(overlay)

	overlay = sys.Fork()
	overlay.Bindings().Bind(v, f.intDecl.Type())
	sys.Commit(overlay)

	if ty, ok := sys.Bindings().Lookup(v); !ok || !types.Equal(ty, f.intDecl.Type()) {
		t.Error("commit should adopt the overlay's bindings")
	}

	foreign := typecheck.NewSystem(typecheck.Config{})
	expectPanic(t, "committing a foreign overlay", func() { sys.Commit(foreign.Fork()) })
	expectPanic(t, "discarding a foreign overlay", func() { sys.Discard(foreign.Fork()) })
}
