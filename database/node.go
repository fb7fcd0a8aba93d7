package database

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"tycho/colors"
)

type Node interface {
	GetFacts() *Facts
}

// HiddenNode anchors values that have no corresponding source text, such as
// type variables synthesized during solving.
type HiddenNode struct {
	Facts *Facts
}

func (node *HiddenNode) GetFacts() *Facts {
	return node.Facts
}

var hiddenNodes = map[reflect.Type]struct{}{
	reflect.TypeOf((**HiddenNode)(nil)).Elem(): {},
}

func HideNode[T Node]() {
	hiddenNodes[reflect.TypeOf((*T)(nil)).Elem()] = struct{}{}
}

func IsHiddenNode(node Node) bool {
	_, ok := hiddenNodes[reflect.TypeOf(node)]
	return ok
}

func DisplayNode(node Node) string {
	return fmt.Sprintf("%s %s", reflect.TypeOf(node).Elem().Name(), RenderNode(node))
}

func NodeSource(source string) string {
	source = regexp.MustCompile(`--.*`).ReplaceAllString(source, "")
	source = regexp.MustCompile(`(?s)\n.*`).ReplaceAllString(source, "⋯") // collapse multiple lines
	return strings.TrimSpace(source)
}

func RenderNode(node Node) string {
	return RenderSource(node, NodeSource(GetSpanFact(node).Source))
}

func RenderSource(node Node, source string) string {
	if node != nil {
		span := GetSpanFact(node)
		return fmt.Sprintf("%s %s", colors.Code(source), colors.Extra(span.String()))
	}

	return colors.Code(source)
}

type FilterFunc func(node Node) bool

func PathFilter(path string) FilterFunc {
	return func(node Node) bool {
		span := GetSpanFact(node)
		return span.Path == path
	}
}

func LineFilter(path string, line int) FilterFunc {
	return func(node Node) bool {
		span := GetSpanFact(node)
		return span.Path == path && span.Start.Line == line
	}
}
