package feedback_test

import (
	"strings"
	"testing"

	"tycho/colors"
	"tycho/database"
	"tycho/feedback"
	"tycho/typecheck"
	"tycho/types"
)

type note struct {
	facts *database.Facts
}

func (n *note) GetFacts() *database.Facts { return n.facts }

func newNote(line int) *note {
	return &note{facts: database.NewFacts(database.Span{
		Path:   "test.tycho",
		Start:  database.Location{Line: line, Column: 1, Index: (line - 1) * 10},
		End:    database.Location{Line: line, Column: 6, Index: (line-1)*10 + 5},
		Source: "x = 1",
	})}
}

func TestWriteCollapsesRepeats(t *testing.T) {
	node := newNote(1)
	other := newNote(2)

	var out strings.Builder
	var count int
	colors.WithoutColor(func() {
		count = feedback.Write(&out, []feedback.Item{
			{Id: "types", Node: node, Message: "expected Int, found Bool"},
			{Id: "types", Node: node, Message: "expected Int, found Bool"},
			{Id: "types", Node: other, Message: "expected Int, found Bool"},
		})
	})

	if count != 2 {
		t.Errorf("expected the repeated item to collapse, wrote %d items", count)
	}
}

func TestUnsolvableStylesConflictingTypes(t *testing.T) {
	intTy := (&types.Decl{Name: "Int"}).Type()
	stringTy := (&types.Decl{Name: "String"}).Type()

	sys := typecheck.NewSystem(typecheck.Config{})
	failed := sys.NewRelational(typecheck.Conversion, stringTy, intTy, sys.Locator(newNote(1)))

	var item feedback.Item
	colors.WithoutColor(func() {
		item = feedback.Unsolvable(types.NewBindings(), failed)
	})

	// Conflicting types render in the conflict style, which carries no
	// backticks when colors are off.
	if item.Message != "cannot convert String to Int" {
		t.Errorf("unexpected message: %s", item.Message)
	}
}
