package typecheck_test

import (
	"testing"

	"tycho/database"
	"tycho/types"
)

// fixture is a small nominal-type environment shared by the solver tests.
type fixture struct {
	equatable  *types.Decl
	comparable *types.Decl
	intDecl    *types.Decl
	floatDecl  *types.Decl
	boolDecl   *types.Decl
	stringDecl *types.Decl
	shapeDecl  *types.Decl
	circleDecl *types.Decl
	objectDecl *types.Decl
}

func newFixture() *fixture {
	f := &fixture{}

	f.equatable = &types.Decl{Name: "Equatable", Protocol: true}
	f.comparable = &types.Decl{Name: "Comparable", Protocol: true, Conformances: []*types.Decl{f.equatable}}

	f.intDecl = &types.Decl{Name: "Int", Conformances: []*types.Decl{f.comparable}}
	f.floatDecl = &types.Decl{Name: "Float", Conformances: []*types.Decl{f.comparable}}
	f.boolDecl = &types.Decl{Name: "Bool", Conformances: []*types.Decl{f.equatable}}
	f.stringDecl = &types.Decl{Name: "String", Conformances: []*types.Decl{f.comparable}}

	f.intDecl.ConvertibleTo = []*types.Decl{f.floatDecl}

	f.stringDecl.Members = types.NewMembersBuilder().
		Add("count", f.intDecl.Type(), false).
		Add("slice", types.NewFunction([]types.Type{f.intDecl.Type()}, f.stringDecl.Type()), false).
		Add("slice", types.NewFunction([]types.Type{f.intDecl.Type(), f.intDecl.Type()}, f.stringDecl.Type()), false).
		Add("init", types.NewFunction([]types.Type{f.intDecl.Type()}, f.stringDecl.Type()), false).
		Build()

	f.shapeDecl = &types.Decl{Name: "Shape", Class: true, Conformances: []*types.Decl{f.equatable}}
	f.shapeDecl.Members = types.NewMembersBuilder().
		Add("name", f.stringDecl.Type(), false).
		Build()

	f.circleDecl = &types.Decl{Name: "Circle", Class: true, Super: f.shapeDecl}
	f.circleDecl.Members = types.NewMembersBuilder().
		Add("radius", f.floatDecl.Type(), false).
		Build()

	f.objectDecl = &types.Decl{Name: "Object", Class: true, DynamicLookup: true}
	f.objectDecl.Members = types.NewMembersBuilder().
		Add("description", f.stringDecl.Type(), false).
		Build()

	return f
}

func anchor() database.Node {
	return &database.HiddenNode{Facts: database.EmptyFacts()}
}

func expectPanic(t *testing.T, what string, f func()) {
	t.Helper()

	defer func() {
		if recover() == nil {
			t.Errorf("%s should panic", what)
		}
	}()

	f()
}
