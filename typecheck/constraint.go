package typecheck

import (
	"fmt"
	"strings"

	"tycho/types"
)

// Constraint is one relation, member fact, type property, or group of
// constraints to be satisfied by a type assignment. Constraints are immutable
// once constructed and owned by the System that allocated them; search
// branches clone binding state, never constraints.
//
// The payload depends on the classification: relational and type-property
// constraints carry one or two types (plus a member name for member kinds),
// overload bindings carry a type and an overload choice, and groups carry an
// ordered list of child constraints.
type Constraint struct {
	kind    Kind
	locator *Locator
	seq     int // insertion order within the owning system

	first  types.Type
	second types.Type
	member string
	choice OverloadChoice
	nested []*Constraint
}

func (c *Constraint) Kind() Kind {
	return c.kind
}

func (c *Constraint) Classification() Classification {
	return c.kind.Classify()
}

// Locator is never nil.
func (c *Constraint) Locator() *Locator {
	return c.locator
}

// FirstType returns the first type in the constraint. It panics for groups,
// which relate constraints rather than types.
func (c *Constraint) FirstType() types.Type {
	switch c.kind {
	case Conjunction, Disjunction:
		panic("group constraints have no first type")
	}

	return c.first
}

// SecondType returns the second type in the constraint. It panics for groups
// and for overload bindings, whose counterpart is a choice rather than a
// type.
func (c *Constraint) SecondType() types.Type {
	switch c.kind {
	case Conjunction, Disjunction:
		panic("group constraints have no second type")
	case BindOverload:
		panic("overload-binding constraints have no second type")
	}

	return c.second
}

// Member returns the member name of a ValueMember or TypeMember constraint
// and panics for every other kind.
func (c *Constraint) Member() string {
	if !c.kind.HasMember() {
		panic(fmt.Sprintf("%s constraints have no member name", c.kind))
	}

	return c.member
}

// OverloadChoice returns the choice of a BindOverload constraint and panics
// for every other kind.
func (c *Constraint) OverloadChoice() OverloadChoice {
	if c.kind != BindOverload {
		panic(fmt.Sprintf("%s constraints have no overload choice", c.kind))
	}

	return c.choice
}

// NestedConstraints returns the children of a Conjunction or Disjunction, in
// declaration order, and panics for every other kind.
func (c *Constraint) NestedConstraints() []*Constraint {
	switch c.kind {
	case Conjunction, Disjunction:
		return c.nested
	}

	panic(fmt.Sprintf("%s constraints have no nested constraints", c.kind))
}

func (c *Constraint) String() string {
	switch c.kind {
	case Conjunction, Disjunction:
		children := make([]string, len(c.nested))
		for i, child := range c.nested {
			children[i] = child.String()
		}

		return fmt.Sprintf("%s(%s)", c.kind, strings.Join(children, ", "))
	case BindOverload:
		return fmt.Sprintf("%s(%s := %s)", c.kind, types.Display(c.first), c.choice)
	case ValueMember, TypeMember:
		return fmt.Sprintf("%s(%s.%s == %s)", c.kind, types.Display(c.first), c.member, types.Display(c.second))
	default:
		if c.second == nil {
			return fmt.Sprintf("%s(%s)", c.kind, types.Display(c.first))
		}

		return fmt.Sprintf("%s(%s, %s)", c.kind, types.Display(c.first), types.Display(c.second))
	}
}
