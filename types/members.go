package types

import "github.com/benbjohnson/immutable"

var emptyMembers = immutable.NewSortedMap(nil)
var emptyOverloads = immutable.NewList()

// Member is one declaration in a type's member table. A name may map to
// several members when the member is overloaded.
type Member struct {
	Name       string
	Type       Type
	TypeMember bool // referenced as a type rather than a value
	Index      int  // declaration order within the overload set
}

// Members is an immutable table from member names to overload sets. Tables
// are shared freely across solver branches because they never change after
// construction.
type Members struct {
	m *immutable.SortedMap
}

func NewMembers() Members {
	return Members{emptyMembers}
}

func (m Members) Len() int {
	if m.m == nil {
		return 0
	}

	return m.m.Len()
}

func (m Members) Get(name string) []Member {
	if m.m == nil {
		return nil
	}

	list, ok := m.m.Get(name)
	if !ok {
		return nil
	}

	overloads := list.(*immutable.List)
	members := make([]Member, 0, overloads.Len())
	for i := 0; i < overloads.Len(); i++ {
		members = append(members, overloads.Get(i).(Member))
	}

	return members
}

func (m Members) Range(f func(name string, members []Member) bool) {
	if m.m == nil {
		return
	}

	iter := m.m.Iterator()
	for !iter.Done() {
		name, _ := iter.Next()
		if !f(name.(string), m.Get(name.(string))) {
			return
		}
	}
}

type MembersBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewMembersBuilder() MembersBuilder {
	return MembersBuilder{immutable.NewSortedMapBuilder(emptyMembers)}
}

func (b MembersBuilder) Add(name string, ty Type, typeMember bool) MembersBuilder {
	overloads := emptyOverloads
	if existing, ok := b.b.Get(name); ok {
		overloads = existing.(*immutable.List)
	}

	b.b.Set(name, overloads.Append(Member{
		Name:       name,
		Type:       ty,
		TypeMember: typeMember,
		Index:      overloads.Len(),
	}))

	return b
}

func (b MembersBuilder) Build() Members {
	return Members{b.b.Map()}
}

// LookupMembers finds the members of ty with the given name. Lookup sees
// through lvalues and walks the superclass chain; variables and functions
// have no members.
func LookupMembers(ty Type, name string, typeMember bool) []Member {
	switch ty := ty.(type) {
	case *LValue:
		return LookupMembers(ty.Ref, name, typeMember)
	case *Nominal:
		var members []Member
		for decl := ty.Decl; decl != nil; decl = decl.Super {
			for _, member := range decl.Members.Get(name) {
				if member.TypeMember == typeMember {
					members = append(members, member)
				}
			}

			if !decl.Class {
				break
			}
		}

		return members
	default:
		return nil
	}
}
