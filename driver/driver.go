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

// TypeFact records the type inferred for a statement.
type TypeFact struct {
	Type types.Type
}

func (fact TypeFact) String() string {
	return fmt.Sprintf("has type %s", colors.Code(types.Display(fact.Type)))
}

type Options struct {
	// Budget bounds each statement's solve; zero uses the solver default.
	Budget int
}

// Check type-checks every statement in file against the prelude, each with
// its own constraint system, and returns feedback for the statements that
// failed. Assigned names carry their inferred types into later statements.
func Check(db *database.Db, file *syntax.File, options Options) []feedback.Item {
	scope := NewScope(Prelude())

	var items []feedback.Item
	for _, statement := range file.Statements {
		sys := typecheck.NewSystem(typecheck.Config{Budget: options.Budget})
		gen := &generator{sys: sys, scope: scope}

		var name string
		var v *types.Var
		switch statement := statement.(type) {
		case *syntax.AssignStatement:
			name = statement.Name
			v = gen.expr(statement.Value)
		case *syntax.ExprStatement:
			v = gen.expr(statement.Expr)
		default:
			panic(fmt.Sprintf("invalid statement: %T", statement))
		}

		if len(gen.items) > 0 {
			// Name resolution failed; solving would only blame the variables
			// the missing names left unconstrained.
			items = append(items, gen.items...)
			continue
		}

		switch outcome := sys.Solve().(type) {
		case *typecheck.Solution:
			ty := outcome.TypeOf(v)
			if ty == nil {
				ty = v
			}

			database.SetFact(statement, TypeFact{Type: ty})

			if name != "" {
				scope.Assign(ValueDecl{Name: name, Type: ty, Node: statement})
			}
		case *typecheck.Ambiguous:
			items = append(items, feedback.Ambiguous(statement, outcome.Candidates))
		case *typecheck.Unsolvable:
			items = append(items, feedback.Unsolvable(sys.Bindings(), outcome.Failed))
		case *typecheck.Exhausted:
			items = append(items, feedback.Exhausted(statement))
		}
	}

	return feedback.Sort(items)
}
