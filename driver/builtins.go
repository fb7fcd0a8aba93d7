package driver

import "tycho/types"

// Prelude builds the builtin scope: the nominal types, protocols, and
// overloaded operators/functions available to every file.
func Prelude() *Scope {
	equatable := &types.Decl{Name: "Equatable", Protocol: true}
	comparable := &types.Decl{Name: "Comparable", Protocol: true, Conformances: []*types.Decl{equatable}}

	// AnyObject is the class-bound protocol: ascribing to it requires the
	// value to have a reference type.
	anyObject := &types.Decl{Name: "AnyObject", Protocol: true, Class: true}

	intDecl := &types.Decl{Name: "Int", Conformances: []*types.Decl{comparable}}
	floatDecl := &types.Decl{Name: "Float", Conformances: []*types.Decl{comparable}}
	boolDecl := &types.Decl{Name: "Bool", Conformances: []*types.Decl{equatable}}
	stringDecl := &types.Decl{Name: "String", Conformances: []*types.Decl{comparable}}
	indexDecl := &types.Decl{Name: "Index", Conformances: []*types.Decl{comparable}}

	// Integer literals convert to Float implicitly; the conversion counts
	// against a solution's score.
	intDecl.ConvertibleTo = []*types.Decl{floatDecl}

	intTy := intDecl.Type()
	floatTy := floatDecl.Type()
	boolTy := boolDecl.Type()
	stringTy := stringDecl.Type()

	stringDecl.Members = types.NewMembersBuilder().
		Add("count", intTy, false).
		Add("reversed", stringTy, false).
		Add("slice", types.NewFunction([]types.Type{intTy}, stringTy), false).
		Add("slice", types.NewFunction([]types.Type{intTy, intTy}, stringTy), false).
		Add("init", types.NewFunction([]types.Type{intTy}, stringTy), false).
		Add("Index", indexDecl.Type(), true).
		Build()

	shapeDecl := &types.Decl{Name: "Shape", Class: true, Conformances: []*types.Decl{equatable}}
	shapeDecl.Members = types.NewMembersBuilder().
		Add("name", stringTy, false).
		Build()

	circleDecl := &types.Decl{Name: "Circle", Class: true, Super: shapeDecl}
	circleDecl.Members = types.NewMembersBuilder().
		Add("radius", floatTy, false).
		Build()

	objectDecl := &types.Decl{Name: "Object", Class: true, DynamicLookup: true}
	objectDecl.Members = types.NewMembersBuilder().
		Add("description", stringTy, false).
		Build()

	shapeTy := shapeDecl.Type()
	circleTy := circleDecl.Type()
	objectTy := objectDecl.Type()

	scope := NewScope(nil)
	for _, decl := range []*types.Decl{equatable, comparable, anyObject, intDecl, floatDecl, boolDecl, stringDecl, shapeDecl, circleDecl, objectDecl} {
		scope.DefineType(decl)
	}

	binary := func(name string, operands types.Type, result types.Type) {
		scope.Define(ValueDecl{
			Name: name,
			Type: types.NewFunction([]types.Type{operands, operands}, result),
		})
	}

	for _, operand := range []types.Type{intTy, floatTy, stringTy} {
		binary("+", operand, operand)
	}

	for _, operand := range []types.Type{intTy, floatTy} {
		binary("-", operand, operand)
		binary("*", operand, operand)
		binary("/", operand, operand)
	}

	for _, operand := range []types.Type{intTy, floatTy, stringTy, boolTy} {
		binary("==", operand, boolTy)
		binary("/=", operand, boolTy)
	}

	for _, operand := range []types.Type{intTy, floatTy, stringTy} {
		binary("<", operand, boolTy)
		binary(">", operand, boolTy)
		binary("<=", operand, boolTy)
		binary(">=", operand, boolTy)
	}

	unary := func(name string, operand types.Type, result types.Type) {
		scope.Define(ValueDecl{
			Name: name,
			Type: types.NewFunction([]types.Type{operand}, result),
		})
	}

	unary("show", intTy, stringTy)
	unary("show", floatTy, stringTy)
	unary("show", boolTy, stringTy)
	unary("abs", intTy, intTy)
	unary("abs", floatTy, floatTy)

	scope.Define(ValueDecl{Name: "pi", Type: floatTy})
	scope.Define(ValueDecl{Name: "circle", Type: circleTy})
	scope.Define(ValueDecl{Name: "square", Type: shapeTy})
	scope.Define(ValueDecl{Name: "mystery", Type: objectTy})

	return scope
}
