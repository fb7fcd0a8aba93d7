package database

import (
	"fmt"
	"io"
	"slices"
)

// Db registers every node produced while checking one batch of files, in
// creation order, so facts can be dumped deterministically.
type Db struct {
	nodes []Node
}

func NewDb() *Db {
	return &Db{
		nodes: []Node{},
	}
}

func (db *Db) Register(node Node) {
	db.nodes = append(db.nodes, node)
}

func (db *Db) Write(w io.Writer, filter FilterFunc) {
	nodes := make([]Node, len(db.nodes))
	copy(nodes, db.nodes)
	slices.SortStableFunc(nodes, func(left Node, right Node) int {
		return CompareSpans(GetSpanFact(left), GetSpanFact(right))
	})

	for _, node := range nodes {
		if IsHiddenNode(node) || (filter != nil && !filter(node)) {
			continue
		}

		_, err := fmt.Fprintf(w, "%v\n%v", DisplayNode(node), node.GetFacts())
		if err != nil {
			panic(err)
		}
	}
}
