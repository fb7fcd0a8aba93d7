package typecheck_test

import (
	"testing"

	"tycho/typecheck"
)

func TestClassificationTable(t *testing.T) {
	expected := map[typecheck.Kind]typecheck.Classification{
		typecheck.Bind:               typecheck.RelationalConstraint,
		typecheck.Equal:              typecheck.RelationalConstraint,
		typecheck.TrivialSubtype:     typecheck.RelationalConstraint,
		typecheck.Subtype:            typecheck.RelationalConstraint,
		typecheck.Conversion:         typecheck.RelationalConstraint,
		typecheck.Construction:       typecheck.RelationalConstraint,
		typecheck.ConformsTo:         typecheck.RelationalConstraint,
		typecheck.ApplicableFunction: typecheck.RelationalConstraint,
		typecheck.BindOverload:       typecheck.RelationalConstraint,
		typecheck.ValueMember:        typecheck.MemberConstraint,
		typecheck.TypeMember:         typecheck.MemberConstraint,
		typecheck.Archetype:          typecheck.TypePropertyConstraint,
		typecheck.Class:              typecheck.TypePropertyConstraint,
		typecheck.DynamicLookupValue: typecheck.TypePropertyConstraint,
		typecheck.Conjunction:        typecheck.ConjunctionConstraint,
		typecheck.Disjunction:        typecheck.DisjunctionConstraint,
	}

	for kind, classification := range expected {
		if kind.Classify() != classification {
			t.Errorf("%s classified as %s, expected %s", kind, kind.Classify(), classification)
		}
	}
}

func TestKindNames(t *testing.T) {
	seen := map[string]typecheck.Kind{}
	for kind := typecheck.Bind; kind <= typecheck.Disjunction; kind++ {
		name := kind.String()
		if name == "" {
			t.Errorf("kind %d has no name", kind)
		}

		if existing, ok := seen[name]; ok {
			t.Errorf("kinds %d and %d share the name %s", existing, kind, name)
		}

		seen[name] = kind
	}
}

func TestInvalidKindPanics(t *testing.T) {
	expectPanic(t, "String", func() { _ = typecheck.Kind(99).String() })
	expectPanic(t, "Classify", func() { _ = typecheck.Kind(99).Classify() })
}

func TestHasMember(t *testing.T) {
	for kind := typecheck.Bind; kind <= typecheck.Disjunction; kind++ {
		expected := kind == typecheck.ValueMember || kind == typecheck.TypeMember
		if kind.HasMember() != expected {
			t.Errorf("%s.HasMember() = %v", kind, kind.HasMember())
		}
	}
}
