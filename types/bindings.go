package types

// Bindings maps type variables to the types currently assigned to them.
// Forked bindings record their assignments in a private overlay and consult
// the parent chain for everything else, so exploring one search branch never
// mutates a sibling's state.
type Bindings struct {
	parent  *Bindings
	entries map[*Var]Type
}

func NewBindings() *Bindings {
	return &Bindings{
		entries: map[*Var]Type{},
	}
}

// Fork returns an overlay whose new assignments are invisible to b until
// Commit is called.
func (b *Bindings) Fork() *Bindings {
	return &Bindings{
		parent:  b,
		entries: map[*Var]Type{},
	}
}

// Commit folds this overlay's assignments into its parent.
func (b *Bindings) Commit() {
	if b.parent == nil {
		panic("cannot commit root bindings")
	}

	for v, ty := range b.entries {
		b.parent.entries[v] = ty
	}
}

func (b *Bindings) Lookup(v *Var) (Type, bool) {
	for current := b; current != nil; current = current.parent {
		if ty, ok := current.entries[v]; ok {
			return ty, true
		}
	}

	return nil, false
}

func (b *Bindings) Bind(v *Var, ty Type) {
	b.entries[v] = ty
}

// Size counts assignments visible through the whole parent chain. The solver
// compares sizes across a worklist pass to detect progress.
func (b *Bindings) Size() int {
	size := 0
	seen := map[*Var]struct{}{}
	for current := b; current != nil; current = current.parent {
		for v := range current.entries {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				size++
			}
		}
	}

	return size
}

// Flatten resolves every visible assignment fully and returns a plain map,
// used to snapshot a candidate solution.
func (b *Bindings) Flatten() map[*Var]Type {
	flattened := map[*Var]Type{}
	for current := b; current != nil; current = current.parent {
		for v := range current.entries {
			if _, ok := flattened[v]; !ok {
				flattened[v] = b.Apply(v)
			}
		}
	}

	return flattened
}

// Shallow resolves a chain of variable bindings without touching children.
func (b *Bindings) Shallow(ty Type) Type {
	for {
		v, ok := ty.(*Var)
		if !ok {
			return ty
		}

		bound, ok := b.Lookup(v)
		if !ok {
			return ty
		}

		ty = bound
	}
}

// Apply substitutes every bound variable in ty, recursively.
func (b *Bindings) Apply(ty Type) Type {
	return Traverse(ty, func(ty Type) (Type, bool) {
		return b.Shallow(ty), false
	})
}
