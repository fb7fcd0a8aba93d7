package driver

import (
	"fmt"

	"tycho/colors"
	"tycho/database"
	"tycho/feedback"
	"tycho/syntax"
	"tycho/typecheck"
	"tycho/types"
)

// generator discovers constraints from expressions. Every expression node
// gets a fresh type variable anchored at it; the constraints relate those
// variables until the solver can assign concrete types.
type generator struct {
	sys   *typecheck.System
	scope *Scope
	items []feedback.Item
}

func (g *generator) errorf(id string, node database.Node, format string, args ...any) {
	g.items = append(g.items, feedback.Item{
		Id:      id,
		Node:    node,
		Message: fmt.Sprintf(format, args...),
	})
}

func (g *generator) expr(e syntax.Expr) *types.Var {
	v := g.sys.NewTypeVariable(e)

	switch e := e.(type) {
	case *syntax.NumberExpr:
		name := "Int"
		if e.IsFloat {
			name = "Float"
		}

		g.sys.AddConstraint(typecheck.Bind, v, g.builtinType(name), g.sys.Locator(e))
	case *syntax.StringExpr:
		g.sys.AddConstraint(typecheck.Bind, v, g.builtinType("String"), g.sys.Locator(e))
	case *syntax.BoolExpr:
		g.sys.AddConstraint(typecheck.Bind, v, g.builtinType("Bool"), g.sys.Locator(e))
	case *syntax.NameExpr:
		g.name(e, v)
	case *syntax.CallExpr:
		callee := g.expr(e.Callee)

		params := make([]types.Type, len(e.Args))
		for i, arg := range e.Args {
			params[i] = g.expr(arg)
		}

		applied := types.NewFunction(params, v)
		locator := g.sys.Locator(e, typecheck.PathElement{Kind: typecheck.PathApplyFunction})
		g.sys.AddConstraint(typecheck.ApplicableFunction, applied, callee, locator)
	case *syntax.MemberExpr:
		base := g.expr(e.Base)

		// Capitalized members reference a nested type, like String.Index.
		kind := typecheck.ValueMember
		if e.Name[0] >= 'A' && e.Name[0] <= 'Z' {
			kind = typecheck.TypeMember
		}

		locator := g.sys.Locator(e, typecheck.PathElement{Kind: typecheck.PathMember})
		g.sys.AddMemberConstraint(kind, base, e.Name, v, locator)
	case *syntax.LambdaExpr:
		param := g.sys.NewTypeVariable(e.Param)

		inner := &generator{sys: g.sys, scope: NewScope(g.scope)}
		inner.scope.Define(ValueDecl{Name: e.Param.Name, Type: param, Node: e.Param})

		body := inner.expr(e.Body)
		g.items = append(g.items, inner.items...)

		locator := g.sys.Locator(e, typecheck.PathElement{Kind: typecheck.PathLambdaBody})
		g.sys.AddConstraint(typecheck.Bind, v, types.NewFunction([]types.Type{param}, body), locator)
	case *syntax.AscribeExpr:
		inner := g.expr(e.Value)
		result := types.Type(inner)

		if ty, ok := g.typeExpr(e.Type); ok {
			locator := g.sys.Locator(e, typecheck.PathElement{Kind: typecheck.PathAnnotation})

			// What an ascription demands depends on what the written type
			// declares: dynamic lookup and class-bound protocols constrain a
			// property of the value's type, protocols demand conformance, and
			// classes allow upcasting.
			switch decl := nominalDecl(ty); {
			case decl == nil:
				g.sys.AddConstraint(typecheck.Equal, inner, ty, locator)
			case decl.DynamicLookup:
				g.sys.AddConstraint(typecheck.DynamicLookupValue, inner, nil, locator)
			case decl.Protocol && decl.Class:
				g.sys.AddConstraint(typecheck.Class, inner, nil, locator)
			case decl.Protocol:
				g.sys.AddConstraint(typecheck.ConformsTo, inner, ty, locator)
			case decl.Class:
				g.sys.AddConstraint(typecheck.Subtype, inner, ty, locator)
				result = ty
			default:
				g.sys.AddConstraint(typecheck.Equal, inner, ty, locator)
			}
		}

		g.sys.AddConstraint(typecheck.Bind, v, result, g.sys.Locator(e))
	case *syntax.ConvertExpr:
		inner := g.expr(e.Value)

		if ty, ok := g.typeExpr(e.Type); ok {
			locator := g.sys.Locator(e, typecheck.PathElement{Kind: typecheck.PathConversion})
			g.sys.AddConstraint(typecheck.Conversion, inner, ty, locator)
			g.sys.AddConstraint(typecheck.Bind, v, ty, g.sys.Locator(e))
		}
	default:
		panic(fmt.Sprintf("invalid expression: %T", e))
	}

	return v
}

// name lowers a name reference into an overload set over every declaration
// the name resolves to. A type name used as a value resolves to the type's
// constructors.
func (g *generator) name(e *syntax.NameExpr, v *types.Var) {
	locator := g.sys.Locator(e)

	if decls := g.scope.Lookup(e.Name); len(decls) > 0 {
		choices := make([]typecheck.OverloadChoice, len(decls))
		for i, decl := range decls {
			choices[i] = typecheck.OverloadChoice{
				Kind: typecheck.ChoiceDecl,
				Name: decl.Name,
				Decl: decl.Node,
				Type: decl.Type,
			}
		}

		g.sys.AddOverloadSet(v, choices, locator)
		return
	}

	if decl, ok := g.scope.LookupType(e.Name); ok {
		var choices []typecheck.OverloadChoice
		for _, init := range decl.Members.Get("init") {
			choices = append(choices, typecheck.OverloadChoice{
				Kind: typecheck.ChoiceBaseType,
				Name: decl.Name,
				Type: init.Type,
			})
		}

		if len(choices) == 0 {
			g.errorf("names", e, "cannot use the type %s as a value", colors.Code(e.Name))
			return
		}

		g.sys.AddOverloadSet(v, choices, locator)
		return
	}

	g.errorf("names", e, "cannot find %s", colors.Code(e.Name))
}

// builtinType resolves a type the prelude is required to declare. A scope
// without it is a programming error, not user feedback.
func (g *generator) builtinType(name string) types.Type {
	decl, ok := g.scope.LookupType(name)
	if !ok {
		panic(fmt.Sprintf("the prelude does not declare %s", name))
	}

	return decl.Type()
}

func nominalDecl(ty types.Type) *types.Decl {
	if nominal, ok := ty.(*types.Nominal); ok {
		return nominal.Decl
	}

	return nil
}

func (g *generator) typeExpr(e syntax.TypeExpr) (types.Type, bool) {
	switch e := e.(type) {
	case *syntax.TypeNameExpr:
		decl, ok := g.scope.LookupType(e.Name)
		if !ok {
			g.errorf("names", e, "cannot find a type named %s", colors.Code(e.Name))
			return nil, false
		}

		return decl.Type(), true
	case *syntax.FunctionTypeExpr:
		params := make([]types.Type, len(e.Params))
		for i, param := range e.Params {
			ty, ok := g.typeExpr(param)
			if !ok {
				return nil, false
			}

			params[i] = ty
		}

		result, ok := g.typeExpr(e.Result)
		if !ok {
			return nil, false
		}

		return types.NewFunction(params, result), true
	default:
		panic(fmt.Sprintf("invalid type expression: %T", e))
	}
}
