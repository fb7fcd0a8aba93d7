package types_test

import (
	"testing"

	"tycho/types"
)

func TestMemberOverloads(t *testing.T) {
	intDecl, _, _ := prelude()
	stringDecl := &types.Decl{Name: "String"}

	stringDecl.Members = types.NewMembersBuilder().
		Add("count", intDecl.Type(), false).
		Add("slice", types.NewFunction([]types.Type{intDecl.Type()}, stringDecl.Type()), false).
		Add("slice", types.NewFunction([]types.Type{intDecl.Type(), intDecl.Type()}, stringDecl.Type()), false).
		Build()

	members := types.LookupMembers(stringDecl.Type(), "slice", false)
	if len(members) != 2 {
		t.Fatalf("expected 2 overloads, found %d", len(members))
	}

	for i, member := range members {
		if member.Index != i {
			t.Errorf("overload %d has index %d", i, member.Index)
		}
	}

	if len(types.LookupMembers(stringDecl.Type(), "missing", false)) != 0 {
		t.Error("unknown members should not resolve")
	}
}

func TestMemberLookupWalksSuperclasses(t *testing.T) {
	_, floatDecl, _ := prelude()
	stringDecl := &types.Decl{Name: "String"}

	shapeDecl := &types.Decl{Name: "Shape", Class: true}
	shapeDecl.Members = types.NewMembersBuilder().
		Add("name", stringDecl.Type(), false).
		Build()

	circleDecl := &types.Decl{Name: "Circle", Class: true, Super: shapeDecl}
	circleDecl.Members = types.NewMembersBuilder().
		Add("radius", floatDecl.Type(), false).
		Build()

	if len(types.LookupMembers(circleDecl.Type(), "name", false)) != 1 {
		t.Error("subclass lookup should find inherited members")
	}

	if len(types.LookupMembers(shapeDecl.Type(), "radius", false)) != 0 {
		t.Error("superclass lookup must not find subclass members")
	}
}

func TestMemberLookupSeparatesTypeMembers(t *testing.T) {
	intDecl, _, _ := prelude()

	decl := &types.Decl{Name: "Outer"}
	decl.Members = types.NewMembersBuilder().
		Add("Inner", intDecl.Type(), true).
		Build()

	if len(types.LookupMembers(decl.Type(), "Inner", false)) != 0 {
		t.Error("value lookup must not find type members")
	}

	if len(types.LookupMembers(decl.Type(), "Inner", true)) != 1 {
		t.Error("type lookup should find type members")
	}
}

func TestMemberLookupSeesThroughLValues(t *testing.T) {
	intDecl, _, _ := prelude()

	decl := &types.Decl{Name: "Box"}
	decl.Members = types.NewMembersBuilder().
		Add("value", intDecl.Type(), false).
		Build()

	lv := &types.LValue{Ref: decl.Type()}
	if len(types.LookupMembers(lv, "value", false)) != 1 {
		t.Error("lookup should see through lvalues")
	}
}

func TestConformances(t *testing.T) {
	equatable := &types.Decl{Name: "Equatable", Protocol: true}
	comparable := &types.Decl{Name: "Comparable", Protocol: true, Conformances: []*types.Decl{equatable}}
	intDecl := &types.Decl{Name: "Int", Conformances: []*types.Decl{comparable}}

	if !types.Conforms(intDecl, comparable) || !types.Conforms(intDecl, equatable) {
		t.Error("conformance should include inherited protocols")
	}

	if types.Conforms(equatable, comparable) {
		t.Error("conformance must not run backwards")
	}

	shapeDecl := &types.Decl{Name: "Shape", Class: true, Conformances: []*types.Decl{equatable}}
	circleDecl := &types.Decl{Name: "Circle", Class: true, Super: shapeDecl}

	if !types.Conforms(circleDecl, equatable) {
		t.Error("subclasses inherit their superclass's conformances")
	}

	if !types.Subclass(circleDecl, shapeDecl) || types.Subclass(shapeDecl, circleDecl) {
		t.Error("subclassing is directional")
	}
}
