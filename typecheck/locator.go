package typecheck

import (
	"fmt"
	"strings"

	"tycho/database"
)

// PathKind identifies one step from a locator's anchor expression down to
// the sub-expression a constraint applies to.
type PathKind int

const (
	// PathApplyArgument identifies an argument of a call, by position.
	PathApplyArgument PathKind = iota
	// PathApplyFunction identifies the function being applied.
	PathApplyFunction
	// PathApplyResult identifies the result of a call.
	PathApplyResult
	// PathMember identifies a member reference on a base expression.
	PathMember
	// PathAnnotation identifies the type written in an ascription.
	PathAnnotation
	// PathConversion identifies the target type of an `as` conversion.
	PathConversion
	// PathLambdaBody identifies the body of a lambda.
	PathLambdaBody
)

func (kind PathKind) String() string {
	switch kind {
	case PathApplyArgument:
		return "apply argument"
	case PathApplyFunction:
		return "apply function"
	case PathApplyResult:
		return "apply result"
	case PathMember:
		return "member"
	case PathAnnotation:
		return "annotation"
	case PathConversion:
		return "conversion"
	case PathLambdaBody:
		return "lambda body"
	default:
		panic(fmt.Sprintf("invalid path kind: %d", kind))
	}
}

type PathElement struct {
	Kind  PathKind
	Index int // meaningful for PathApplyArgument
}

func (element PathElement) String() string {
	if element.Kind == PathApplyArgument {
		return fmt.Sprintf("%s %d", element.Kind, element.Index)
	}

	return element.Kind.String()
}

// Locator is an interned provenance token identifying where in the original
// program a constraint originates: an anchor expression plus a path of steps
// into it. Locators are created only through System.Locator, which interns
// them per distinct (anchor, path) pair, so two constraints with the same
// provenance share the same *Locator.
type Locator struct {
	anchor database.Node
	path   []PathElement
}

func (locator *Locator) Anchor() database.Node {
	return locator.anchor
}

func (locator *Locator) Path() []PathElement {
	return locator.path
}

func (locator *Locator) Span() database.Span {
	return database.GetSpanFact(locator.anchor)
}

func (locator *Locator) String() string {
	var s strings.Builder
	s.WriteString(database.DisplayNode(locator.anchor))
	for _, element := range locator.path {
		s.WriteString(" → ")
		s.WriteString(element.String())
	}

	return s.String()
}

func locatorKey(anchor database.Node, path []PathElement) string {
	var key strings.Builder
	fmt.Fprintf(&key, "%p", anchor)
	for _, element := range path {
		fmt.Fprintf(&key, "|%d:%d", element.Kind, element.Index)
	}

	return key.String()
}
