package typecheck

import (
	"fmt"

	"tycho/database"
	"tycho/types"
)

// ChoiceKind describes how an overload candidate was found.
type ChoiceKind int

const (
	// ChoiceDecl is a reference to a declaration found by name lookup.
	ChoiceDecl ChoiceKind = iota
	// ChoiceDeclViaDynamic is a declaration found through dynamic lookup.
	ChoiceDeclViaDynamic
	// ChoiceBaseType uses a type itself, e.g. when a type name is applied
	// as a constructor.
	ChoiceBaseType
)

// OverloadChoice is one candidate among the declarations that could satisfy
// a name reference. Choices are immutable values, copied into the
// overload-binding constraints that mention them.
type OverloadChoice struct {
	Kind ChoiceKind
	Name string
	Decl database.Node // the candidate's declaration; may be nil for builtins
	Type types.Type    // the type this choice contributes when selected
	// Index is the candidate's position in declaration order; it orders
	// reporting but never breaks score ties.
	Index int
}

func (choice OverloadChoice) String() string {
	return fmt.Sprintf("%s#%d: %s", choice.Name, choice.Index, types.Display(choice.Type))
}

// CommittedChoice records that a branch selected an overload choice for the
// reference identified by Locator.
type CommittedChoice struct {
	Locator *Locator
	Choice  OverloadChoice
}
