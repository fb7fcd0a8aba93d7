package driver

import (
	"tycho/database"
	"tycho/types"
)

// ValueDecl is one declaration a name can refer to. A name with several
// ValueDecls is overloaded.
type ValueDecl struct {
	Name string
	Type types.Type
	Node database.Node // may be nil for builtins
}

// Scope resolves value and type names, chaining to an enclosing scope.
type Scope struct {
	parent *Scope
	values map[string][]ValueDecl
	types  map[string]*types.Decl
}

func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		values: map[string][]ValueDecl{},
		types:  map[string]*types.Decl{},
	}
}

// Define adds a declaration for name, overloading any existing declarations
// in this scope.
func (scope *Scope) Define(decl ValueDecl) {
	scope.values[decl.Name] = append(scope.values[decl.Name], decl)
}

// Assign replaces the declarations for name in this scope, used when a
// statement rebinds a name.
func (scope *Scope) Assign(decl ValueDecl) {
	scope.values[decl.Name] = []ValueDecl{decl}
}

func (scope *Scope) DefineType(decl *types.Decl) {
	scope.types[decl.Name] = decl
}

// Lookup finds the overload set for a value name in the nearest scope that
// declares it.
func (scope *Scope) Lookup(name string) []ValueDecl {
	for current := scope; current != nil; current = current.parent {
		if decls, ok := current.values[name]; ok {
			return decls
		}
	}

	return nil
}

func (scope *Scope) LookupType(name string) (*types.Decl, bool) {
	for current := scope; current != nil; current = current.parent {
		if decl, ok := current.types[name]; ok {
			return decl, true
		}
	}

	return nil, false
}
