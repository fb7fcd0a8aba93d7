package feedback

import (
	"fmt"
	"slices"
	"strings"

	"tycho/colors"
	"tycho/database"
	"tycho/typecheck"
	"tycho/types"
)

// Unsolvable describes the first constraint no branch could satisfy, with the
// solver's bindings applied so the message shows concrete types wherever they
// were inferred.
func Unsolvable(bindings *types.Bindings, failed *typecheck.Constraint) Item {
	item := Item{Id: "types", Node: failed.Locator().Anchor()}

	// Types in conflict render in the conflict style, not as plain code.
	display := func(ty types.Type) string {
		return colors.Conflict(types.Display(bindings.Apply(ty)))
	}

	switch failed.Kind() {
	case typecheck.Bind, typecheck.Equal, typecheck.TrivialSubtype, typecheck.Subtype:
		item.Message = fmt.Sprintf("expected %s, found %s",
			display(failed.SecondType()), display(failed.FirstType()))
	case typecheck.Conversion:
		item.Message = fmt.Sprintf("cannot convert %s to %s",
			display(failed.FirstType()), display(failed.SecondType()))
	case typecheck.Construction:
		item.Message = fmt.Sprintf("cannot construct %s from %s",
			display(failed.SecondType()), display(failed.FirstType()))
	case typecheck.ConformsTo:
		item.Message = fmt.Sprintf("%s does not conform to %s",
			display(failed.FirstType()), display(failed.SecondType()))
	case typecheck.ApplicableFunction:
		item.Message = describeApplication(bindings, failed, display)
	case typecheck.BindOverload:
		item.Message = fmt.Sprintf("cannot use %s here",
			colors.Code(failed.OverloadChoice().String()))
	case typecheck.ValueMember, typecheck.TypeMember:
		item.Message = fmt.Sprintf("%s has no member %s",
			display(failed.FirstType()), colors.Code(failed.Member()))
	case typecheck.Archetype:
		item.Message = fmt.Sprintf("%s is not an archetype", display(failed.FirstType()))
	case typecheck.Class:
		item.Message = fmt.Sprintf("%s is not a class", display(failed.FirstType()))
	case typecheck.DynamicLookupValue:
		item.Message = fmt.Sprintf("%s does not support dynamic member lookup",
			display(failed.FirstType()))
	case typecheck.Disjunction:
		item.Message = "none of the possible interpretations of this code fit its surroundings"
	default:
		item.Message = fmt.Sprintf("could not satisfy %s", failed)
	}

	return item
}

func describeApplication(bindings *types.Bindings, failed *typecheck.Constraint, display func(types.Type) string) string {
	applied, appliedOk := bindings.Apply(failed.FirstType()).(*types.Function)
	callee := bindings.Apply(failed.SecondType())

	if fn, ok := callee.(*types.Function); ok && appliedOk && len(fn.Params) != len(applied.Params) {
		return fmt.Sprintf("this function expects %s, but %s provided",
			count(len(fn.Params), "input"), count(len(applied.Params), "was", "were"))
	}

	return fmt.Sprintf("cannot call a value of type %s", display(callee))
}

func count(n int, singular string, plural ...string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}

	if len(plural) > 0 {
		return fmt.Sprintf("%d %s", n, plural[0])
	}

	return fmt.Sprintf("%d %ss", n, singular)
}

// Ambiguous describes a tie between candidate solutions, listing the overload
// choices that differ between them.
func Ambiguous(node database.Node, candidates []*typecheck.Solution) Item {
	item := Item{
		Id:      "ambiguous",
		Node:    node,
		Message: "this code is ambiguous",
	}

	if len(candidates) == 0 {
		return item
	}

	for _, committed := range candidates[0].Choices {
		var options []string
		for _, candidate := range candidates {
			choice, ok := candidate.ChoiceAt(committed.Locator)
			if !ok {
				continue
			}

			rendered := colors.Code(choice.String())
			if !slices.Contains(options, rendered) {
				options = append(options, rendered)
			}
		}

		if len(options) > 1 {
			item.Notes = append(item.Notes, fmt.Sprintf("%s could be %s",
				database.RenderNode(committed.Locator.Anchor()), strings.Join(options, " or ")))
		}
	}

	return item
}

// Exhausted describes a solve that ran out of budget before finishing.
func Exhausted(node database.Node) Item {
	return Item{
		Id:      "exhausted",
		Node:    node,
		Message: "could not finish inferring the types in this code",
		Notes:   []string{"adding type annotations here may help"},
	}
}
