package typecheck

const arenaChunkSize = 64

// arena allocates constraints in fixed-size chunks so pointers stay stable
// as it grows. It is append-only and shared by every overlay forked from a
// system; constraints are released all at once when the arena is dropped,
// never individually.
type arena struct {
	chunks [][]Constraint
	next   int // sequence number of the next allocation
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc() *Constraint {
	if len(a.chunks) == 0 || len(a.chunks[len(a.chunks)-1]) == arenaChunkSize {
		a.chunks = append(a.chunks, make([]Constraint, 0, arenaChunkSize))
	}

	chunk := &a.chunks[len(a.chunks)-1]
	*chunk = append(*chunk, Constraint{seq: a.next})
	a.next++

	return &(*chunk)[len(*chunk)-1]
}

func (a *arena) len() int {
	return a.next
}
