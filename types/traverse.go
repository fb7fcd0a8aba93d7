package types

import "slices"

// Traverse rewrites a type bottom-up. f is called on every type before its
// children; returning true stops descent into that type. Recursive types are
// left in place rather than looping.
func Traverse(ty Type, f func(Type) (Type, bool)) Type {
	var traverse func(ty Type, stack *[]Type) Type
	traverse = func(ty Type, stack *[]Type) Type {
		ty, done := f(ty)
		if done {
			return ty
		}

		if slices.Contains(*stack, ty) {
			return ty // recursive type
		}

		*stack = append(*stack, ty)

		result := ty
		switch ty := ty.(type) {
		case *Nominal:
			args := make([]Type, len(ty.Args))
			for i, arg := range ty.Args {
				args[i] = traverse(arg, stack)
			}

			result = &Nominal{Decl: ty.Decl, Args: args}
		case *Function:
			params := make([]Type, len(ty.Params))
			for i, param := range ty.Params {
				params[i] = traverse(param, stack)
			}

			result = &Function{Params: params, Result: traverse(ty.Result, stack)}
		case *LValue:
			result = &LValue{Ref: traverse(ty.Ref, stack)}
		}

		*stack = (*stack)[:len(*stack)-1]

		return result
	}

	var stack []Type
	return traverse(ty, &stack)
}

// ReferencesVar reports whether ty mentions v anywhere, following bindings.
func ReferencesVar(b *Bindings, ty Type, v *Var) bool {
	found := false
	Traverse(ty, func(ty Type) (Type, bool) {
		current, ok := ty.(*Var)
		if !ok {
			return ty, false
		}

		if current == v {
			found = true
			return ty, true
		}

		if bound, ok := b.Lookup(current); ok {
			if ReferencesVar(b, bound, v) {
				found = true
				return ty, true
			}
		}

		return ty, false
	})

	return found
}
