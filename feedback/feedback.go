package feedback

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"tycho/colors"
	"tycho/database"

	"github.com/charmbracelet/x/ansi"
)

// Item is one piece of feedback attached to a source node.
type Item struct {
	Id      string
	Node    database.Node
	Message string
	Notes   []string
}

// Sort orders items by source position so feedback reads top to bottom.
func Sort(items []Item) []Item {
	slices.SortStableFunc(items, func(a, b Item) int {
		return database.CompareSpans(database.GetSpanFact(a.Node), database.GetSpanFact(b.Node))
	})

	return items
}

// Write renders items to w and returns how many were written. Repeats of the
// same message at the same span collapse into one.
func Write(w io.Writer, items []Item) int {
	count := 0
	var last Item
	for _, item := range Sort(items) {
		if database.IsHiddenNode(item.Node) {
			continue
		}

		if count > 0 && item.Message == last.Message &&
			database.SpansAreEqual(database.GetSpanFact(item.Node), database.GetSpanFact(last.Node)) {
			continue
		}
		last = item

		if count == 0 {
			fmt.Fprintf(w, "\n%s\n\n", colors.Title("Feedback:"))
		}

		message := item.Message
		for _, note := range item.Notes {
			message += "\n" + note
		}

		indent := "  "
		rendered := ansi.Wordwrap(message, 100-len(indent), " ")

		var out strings.Builder
		for _, line := range strings.Split(rendered, "\n") {
			out.WriteString(indent)
			out.WriteString(line)
			out.WriteString("\n")
		}

		fmt.Fprintf(w, "%s (%s):\n\n%s\n", database.RenderNode(item.Node), item.Id, out.String())
		count++
	}

	return count
}
