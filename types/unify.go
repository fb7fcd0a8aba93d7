package types

import "fmt"

// UnifyError reports the two types that could not be made identical.
type UnifyError struct {
	Left  Type
	Right Type
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", Display(e.Left), Display(e.Right))
}

type UnifyOptions struct {
	// IgnoreLValue drops lvalue-ness when a type variable is compared
	// against a concrete type.
	IgnoreLValue bool
}

// Unify makes left and right identical by binding type variables in b,
// decomposing structure as needed. On mismatch it returns a *UnifyError and
// leaves any partial bindings in place; callers exploring alternatives must
// work in a forked overlay.
func Unify(b *Bindings, left Type, right Type, opts UnifyOptions) error {
	left = b.Shallow(left)
	right = b.Shallow(right)

	if left == right {
		return nil
	}

	if opts.IgnoreLValue {
		if lv, ok := left.(*LValue); ok {
			if _, ok := right.(*LValue); !ok {
				left = b.Shallow(lv.Ref)
			}
		}
		if lv, ok := right.(*LValue); ok {
			if _, ok := left.(*LValue); !ok {
				right = b.Shallow(lv.Ref)
			}
		}

		if left == right {
			return nil
		}
	}

	if v, ok := left.(*Var); ok {
		return bindVar(b, v, right)
	}
	if v, ok := right.(*Var); ok {
		return bindVar(b, v, left)
	}

	switch l := left.(type) {
	case *Nominal:
		r, ok := right.(*Nominal)
		if !ok || l.Decl != r.Decl || len(l.Args) != len(r.Args) {
			return &UnifyError{left, right}
		}

		for i := range l.Args {
			if err := Unify(b, l.Args[i], r.Args[i], opts); err != nil {
				return err
			}
		}

		return nil
	case *Function:
		r, ok := right.(*Function)
		if !ok || len(l.Params) != len(r.Params) {
			return &UnifyError{left, right}
		}

		for i := range l.Params {
			if err := Unify(b, l.Params[i], r.Params[i], opts); err != nil {
				return err
			}
		}

		return Unify(b, l.Result, r.Result, opts)
	case *LValue:
		r, ok := right.(*LValue)
		if !ok {
			return &UnifyError{left, right}
		}

		return Unify(b, l.Ref, r.Ref, opts)
	default:
		return &UnifyError{left, right}
	}
}

func bindVar(b *Bindings, v *Var, ty Type) error {
	if ReferencesVar(b, ty, v) {
		return &UnifyError{v, ty}
	}

	b.Bind(v, ty)
	return nil
}
