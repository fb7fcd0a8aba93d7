package types

import (
	"fmt"
	"strings"

	"tycho/database"
)

// Type is one of *Var, *Nominal, *Function, or *LValue.
type Type interface {
	isType()
}

// Var is a type variable: a placeholder for a not-yet-determined type,
// resolved by binding during solving. Vars compare by identity.
type Var struct {
	ID     int
	Anchor database.Node // the expression this variable stands for; may be nil
}

func (*Var) isType() {}

// Nominal is a named type applied to zero or more type arguments.
type Nominal struct {
	Decl *Decl
	Args []Type
}

func (*Nominal) isType() {}

type Function struct {
	Params []Type
	Result Type
}

func (*Function) isType() {}

// LValue marks a type as referring to mutable storage. Some relations drop
// lvalue-ness when comparing a type variable against a concrete type.
type LValue struct {
	Ref Type
}

func (*LValue) isType() {}

// Decl describes a nominal type declaration: its conformances, its place in
// a class hierarchy, the implicit conversions it participates in, and its
// member table.
type Decl struct {
	Name          string
	Class         bool
	Protocol      bool
	Archetype     bool
	DynamicLookup bool
	Super         *Decl
	Conformances  []*Decl
	ConvertibleTo []*Decl
	Members       Members
}

func (decl *Decl) Type(args ...Type) *Nominal {
	return &Nominal{Decl: decl, Args: args}
}

func NewFunction(params []Type, result Type) *Function {
	return &Function{Params: params, Result: result}
}

// Conforms reports whether decl satisfies proto, checking the declaration
// itself, its conformance list, and the superclass chain.
func Conforms(decl *Decl, proto *Decl) bool {
	for current := decl; current != nil; current = current.Super {
		if current == proto {
			return true
		}

		for _, conformance := range current.Conformances {
			if conformance == proto || Conforms(conformance, proto) {
				return true
			}
		}

		if !current.Class {
			break
		}
	}

	return false
}

// Subclass reports whether decl is b or a (transitive) subclass of b.
func Subclass(decl *Decl, b *Decl) bool {
	for current := decl; current != nil; current = current.Super {
		if current == b {
			return true
		}
	}

	return false
}

// ImplicitlyConvertible reports whether values of from convert to to without
// an explicit cast, e.g. Int to Float.
func ImplicitlyConvertible(from *Decl, to *Decl) bool {
	for _, decl := range from.ConvertibleTo {
		if decl == to {
			return true
		}
	}

	return false
}

// ClassBound reports whether a type property that requires a reference type
// accepts decl: a class, or an archetype constrained to one.
func ClassBound(decl *Decl) bool {
	if decl.Class {
		return true
	}

	if decl.Archetype {
		if decl.Super != nil {
			return true
		}

		for _, conformance := range decl.Conformances {
			if conformance.Class {
				return true
			}
		}
	}

	return false
}

func Display(ty Type) string {
	switch ty := ty.(type) {
	case *Var:
		return "_"
	case *Nominal:
		if len(ty.Args) == 0 {
			return ty.Decl.Name
		}

		args := make([]string, len(ty.Args))
		for i, arg := range ty.Args {
			args[i] = Display(arg)
		}

		return fmt.Sprintf("%s %s", ty.Decl.Name, strings.Join(args, " "))
	case *Function:
		params := make([]string, len(ty.Params))
		for i, param := range ty.Params {
			params[i] = Display(param)
		}

		return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), Display(ty.Result))
	case *LValue:
		return "&" + Display(ty.Ref)
	default:
		panic(fmt.Sprintf("invalid type: %T", ty))
	}
}

func Equal(left Type, right Type) bool {
	if left == right {
		return true
	}

	switch left := left.(type) {
	case *Nominal:
		right, ok := right.(*Nominal)
		if !ok || left.Decl != right.Decl || len(left.Args) != len(right.Args) {
			return false
		}

		for i := range left.Args {
			if !Equal(left.Args[i], right.Args[i]) {
				return false
			}
		}

		return true
	case *Function:
		right, ok := right.(*Function)
		if !ok || len(left.Params) != len(right.Params) {
			return false
		}

		for i := range left.Params {
			if !Equal(left.Params[i], right.Params[i]) {
				return false
			}
		}

		return Equal(left.Result, right.Result)
	case *LValue:
		right, ok := right.(*LValue)
		return ok && Equal(left.Ref, right.Ref)
	default:
		return false
	}
}
