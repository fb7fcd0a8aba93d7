package typecheck

import "fmt"

// Kind describes the relation a constraint places on one or more types.
type Kind int

const (
	// Bind requires the two types to be bound to the same type. This is
	// the only truly symmetric relation.
	Bind Kind = iota
	// Equal requires the two types to be bound to the same type, dropping
	// lvalue-ness when comparing a type variable to a concrete type.
	Equal
	// TrivialSubtype requires the first type to be a subtype of the second
	// with the same in-memory representation.
	TrivialSubtype
	// Subtype requires the first type to be usable wherever the second is
	// expected.
	Subtype
	// Conversion requires the first type to be convertible to the second.
	Conversion
	// Construction requires the first type to be convertible to the second
	// or usable as an argument to one of the second type's constructors.
	Construction
	// ConformsTo requires the first type to conform to the second, which
	// must be a protocol type.
	ConformsTo
	// ApplicableFunction requires both types to be function types with
	// matching parameter and result types.
	ApplicableFunction
	// BindOverload binds the first type to a particular overload choice.
	BindOverload
	// ValueMember requires the first type to have a member with the given
	// name whose type, referenced as a value, is the second type.
	ValueMember
	// TypeMember requires the first type to have a type member with the
	// given name whose type, referenced as a type, is the second type.
	TypeMember
	// Archetype requires the first type to be an archetype.
	Archetype
	// Class requires the first type to be a class or an archetype bound to
	// one.
	Class
	// DynamicLookupValue requires the first type to be a dynamic-lookup
	// type or an lvalue of one.
	DynamicLookupValue
	// Conjunction requires all of the nested constraints to hold.
	Conjunction
	// Disjunction requires at least one of the nested constraints to hold.
	Disjunction
)

var kindNames = map[Kind]string{
	Bind:               "Bind",
	Equal:              "Equal",
	TrivialSubtype:     "TrivialSubtype",
	Subtype:            "Subtype",
	Conversion:         "Conversion",
	Construction:       "Construction",
	ConformsTo:         "ConformsTo",
	ApplicableFunction: "ApplicableFunction",
	BindOverload:       "BindOverload",
	ValueMember:        "ValueMember",
	TypeMember:         "TypeMember",
	Archetype:          "Archetype",
	Class:              "Class",
	DynamicLookupValue: "DynamicLookupValue",
	Conjunction:        "Conjunction",
	Disjunction:        "Disjunction",
}

func (kind Kind) String() string {
	name, ok := kindNames[kind]
	if !ok {
		panic(fmt.Sprintf("invalid constraint kind: %d", kind))
	}

	return name
}

// Classification partitions constraint kinds into the five groups the solver
// dispatches on.
type Classification int

const (
	RelationalConstraint Classification = iota
	MemberConstraint
	TypePropertyConstraint
	ConjunctionConstraint
	DisjunctionConstraint
)

func (c Classification) String() string {
	switch c {
	case RelationalConstraint:
		return "Relational"
	case MemberConstraint:
		return "Member"
	case TypePropertyConstraint:
		return "TypeProperty"
	case ConjunctionConstraint:
		return "Conjunction"
	case DisjunctionConstraint:
		return "Disjunction"
	default:
		panic(fmt.Sprintf("invalid classification: %d", c))
	}
}

// Classify maps a kind to its coarser classification. It is total over the
// kinds above.
func (kind Kind) Classify() Classification {
	switch kind {
	case Bind, Equal, TrivialSubtype, Subtype, Conversion, Construction,
		ConformsTo, ApplicableFunction, BindOverload:
		return RelationalConstraint
	case ValueMember, TypeMember:
		return MemberConstraint
	case Archetype, Class, DynamicLookupValue:
		return TypePropertyConstraint
	case Conjunction:
		return ConjunctionConstraint
	case Disjunction:
		return DisjunctionConstraint
	default:
		panic(fmt.Sprintf("invalid constraint kind: %d", kind))
	}
}

// HasMember reports whether constraints of this kind carry a member name.
func (kind Kind) HasMember() bool {
	return kind == ValueMember || kind == TypeMember
}
