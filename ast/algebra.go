package ast

// Dealias resolves a single level of TypeRef indirection, returning the
// type it names. If t is not a TypeRef, or names an undefined type, t is
// returned unchanged — callers that need a guarantee of a concrete type
// should check the result's dynamic type themselves.
func Dealias(t Type) Type {
	ref, ok := t.(*TypeRef)
	if !ok {
		return t
	}
	named := ref.In.Lookup(ref.Name)
	if named == nil {
		return t
	}
	return named
}

// ListOf wraps t in a List modifier.
func ListOf(t Type) Type { return &List{OfType: t} }

// NullableOf wraps t in a Nullable modifier, unless t is already Nullable,
// in which case t is returned unchanged — Nullable never nests (invariant
// 4).
func NullableOf(t Type) Type {
	if n, ok := t.(*Nullable); ok {
		return n
	}
	return &Nullable{OfType: t}
}

// NonNullOf strips one leading Nullable modifier from t, if present. A
// type with no leading Nullable is already non-null and is returned
// unchanged.
func NonNullOf(t Type) Type {
	if n, ok := t.(*Nullable); ok {
		return n.OfType
	}
	return t
}

// IsNullable reports whether t's outermost modifier is Nullable.
func IsNullable(t Type) bool {
	_, ok := t.(*Nullable)
	return ok
}

// IsList reports whether t, after stripping one optional leading Nullable,
// is a List.
func IsList(t Type) bool {
	_, ok := NonNullOf(t).(*List)
	return ok
}

// ItemType returns the element type of a List, after stripping one
// optional leading Nullable from t. It panics if t is not (nullable-)List;
// callers should check IsList first.
func ItemType(t Type) Type {
	l, ok := NonNullOf(t).(*List)
	if !ok {
		panic("ast: ItemType called on non-list type")
	}
	return l.OfType
}

// NamedOf strips every List and Nullable modifier from t, following
// through TypeRef indirection, returning the underlying NamedType. It
// panics if t's modifier chain does not terminate in a NamedType — this
// should never happen for a type produced by the schema builder.
func NamedOf(t Type) NamedType {
	for {
		switch v := Dealias(t).(type) {
		case *List:
			t = v.OfType
		case *Nullable:
			t = v.OfType
		case NamedType:
			return v
		default:
			panic("ast: NamedOf: type chain does not terminate in a named type")
		}
	}
}

// Equivalent is structural type equivalence (=:=): two types are
// equivalent when they have the same modifier chain (same nesting of List
// and Nullable, in the same order) wrapping named types of the same name.
// TypeRef indirection is transparent to this comparison.
func Equivalent(a, b Type) bool {
	a, b = Dealias(a), Dealias(b)
	switch av := a.(type) {
	case *List:
		bv, ok := b.(*List)
		return ok && Equivalent(av.OfType, bv.OfType)
	case *Nullable:
		bv, ok := b.(*Nullable)
		return ok && Equivalent(av.OfType, bv.OfType)
	case NamedType:
		bv, ok := b.(NamedType)
		return ok && NominalEquivalent(av, bv)
	default:
		return false
	}
}

// NominalEquivalent is equivalence of two named types by name and kind
// alone: same Go dynamic type and same TypeName(). The schema builder's
// one-definition-per-name invariant (invariant 1) means two NamedTypes
// with the same name are always the same object, but this comparison does
// not rely on that — it compares by name, not by pointer identity, so it
// stays correct across builder snapshots taken at different times.
func NominalEquivalent(a, b NamedType) bool {
	if a.TypeName() != b.TypeName() {
		return false
	}
	switch a.(type) {
	case *ScalarType:
		_, ok := b.(*ScalarType)
		return ok
	case *EnumType:
		_, ok := b.(*EnumType)
		return ok
	case *ObjectType:
		_, ok := b.(*ObjectType)
		return ok
	case *InterfaceType:
		_, ok := b.(*InterfaceType)
		return ok
	case *UnionType:
		_, ok := b.(*UnionType)
		return ok
	case *InputObjectType:
		_, ok := b.(*InputObjectType)
		return ok
	default:
		return false
	}
}

// IsSubtype is the subtyping relation <:< : IsSubtype(sub, super) reports
// whether a value of type sub may be used wherever super is expected. It
// implements the seven clauses:
//
//  1. Reflexivity: every type is a subtype of itself (by equivalence).
//  2. Non-null is a subtype of the corresponding nullable type: T <: T?
//     but not the reverse.
//  3. Covariant lists: [A] <: [B] when A <: B, at every nesting depth,
//     with nullability composing per clause 2 at each level.
//  4. An Object type is a subtype of every Interface it implements
//     (directly or transitively through an implemented Interface's own
//     `implements` list).
//  5. An Object type is a subtype of every Union it is a member of.
//  6. Interface-to-interface subtyping: an Interface is a subtype of
//     every Interface it (transitively) implements.
//  7. Anything else is unrelated: in particular Scalar, Enum and
//     InputObject types are subtypes only of themselves.
func IsSubtype(sub, super Type) bool {
	sub, super = Dealias(sub), Dealias(super)

	if superN, ok := super.(*Nullable); ok {
		if subN, ok := sub.(*Nullable); ok {
			return IsSubtype(subN.OfType, superN.OfType)
		}
		return IsSubtype(sub, superN.OfType)
	}

	// super is non-null here; a nullable sub can never stand in for it.
	if _, ok := sub.(*Nullable); ok {
		return false
	}

	if subList, ok := sub.(*List); ok {
		superList, ok := super.(*List)
		return ok && IsSubtype(subList.OfType, superList.OfType)
	}
	if _, ok := super.(*List); ok {
		return false
	}

	subNamed, ok := sub.(NamedType)
	if !ok {
		return false
	}
	superNamed, ok := super.(NamedType)
	if !ok {
		return false
	}

	if NominalEquivalent(subNamed, superNamed) {
		return true
	}

	switch subT := subNamed.(type) {
	case *ObjectType:
		switch superT := superNamed.(type) {
		case *InterfaceType:
			return objectImplements(subT, superT)
		case *UnionType:
			return unionHasMember(superT, subT)
		default:
			return false
		}
	case *InterfaceType:
		superIface, ok := superNamed.(*InterfaceType)
		if !ok {
			return false
		}
		return interfaceImplements(subT, superIface)
	default:
		return false
	}
}

func objectImplements(o *ObjectType, iface *InterfaceType) bool {
	for _, direct := range o.Interfaces {
		if NominalEquivalent(direct, iface) {
			return true
		}
		if interfaceImplements(direct, iface) {
			return true
		}
	}
	return false
}

func interfaceImplements(i, target *InterfaceType) bool {
	for _, parent := range i.Interfaces {
		if NominalEquivalent(parent, target) {
			return true
		}
		if interfaceImplements(parent, target) {
			return true
		}
	}
	return false
}

func unionHasMember(u *UnionType, o *ObjectType) bool {
	for _, m := range u.Members {
		if NominalEquivalent(m, o) {
			return true
		}
	}
	return false
}

// Path walks t through a sequence of named modifiers (each either the
// literal "list" to strip a List, or a field name to descend through an
// Object/Interface field's type), returning the Type reached. It returns
// nil if the path does not apply — e.g. "list" against a non-list, or a
// field name not present on the underlying named type.
func Path(t Type, steps ...string) Type {
	for _, step := range steps {
		t = Dealias(t)
		if nl, ok := t.(*Nullable); ok {
			t = Dealias(nl.OfType)
		}
		if step == "list" {
			l, ok := t.(*List)
			if !ok {
				return nil
			}
			t = l.OfType
			continue
		}
		named, ok := t.(NamedType)
		if !ok {
			return nil
		}
		field := UnderlyingField(named, step)
		if field == nil {
			return nil
		}
		t = field.Type
	}
	return t
}

// PathIsList reports whether the type at the end of path (see Path) is a
// list type, after stripping one optional leading Nullable.
func PathIsList(t Type, steps ...string) bool {
	reached := Path(t, steps...)
	return reached != nil && IsList(reached)
}

// PathIsNullable reports whether the type at the end of path (see Path) is
// itself nullable.
func PathIsNullable(t Type, steps ...string) bool {
	reached := Path(t, steps...)
	return reached != nil && IsNullable(reached)
}

// UnderlyingObject strips modifiers and TypeRef indirection from t and
// returns it as an *ObjectType, or nil if the underlying named type is not
// an Object.
func UnderlyingObject(t Type) *ObjectType {
	o, _ := NamedOf(t).(*ObjectType)
	return o
}

// typenameField is the implicit meta-field every composite type carries
// without declaring it: __typename always resolves to non-null String.
var typenameField = &FieldDefinition{Name: "__typename", Type: &ScalarType{Name: "String"}}

// UnderlyingField looks up name among the fields of named, if named is an
// Object or Interface type; it returns nil for every other NamedType kind
// or if no field by that name exists. __typename is special-cased ahead
// of the field list lookup, matching the teacher's validator treatment of
// the meta-field as always selectable, never declared.
func UnderlyingField(named NamedType, name string) *FieldDefinition {
	if name == "__typename" {
		switch named.(type) {
		case *ObjectType, *InterfaceType, *UnionType:
			return typenameField
		default:
			return nil
		}
	}
	switch t := named.(type) {
	case *ObjectType:
		return t.Fields.Get(name)
	case *InterfaceType:
		return t.Fields.Get(name)
	default:
		return nil
	}
}

// IsLeaf reports whether named is a Scalar or Enum —
// the two GraphQL kinds whose values have no further field structure.
func IsLeaf(named NamedType) bool {
	switch named.(type) {
	case *ScalarType, *EnumType:
		return true
	default:
		return false
	}
}

// AsLeaf returns named as a NamedType if IsLeaf(named), and nil otherwise;
// a thin convenience alongside UnderlyingObject.
func AsLeaf(named NamedType) NamedType {
	if IsLeaf(named) {
		return named
	}
	return nil
}

// IsUnderlyingLeaf strips modifiers from t and reports whether what
// remains is a leaf type.
func IsUnderlyingLeaf(t Type) bool {
	return IsLeaf(NamedOf(t))
}

// UnderlyingLeaf strips modifiers from t and returns the leaf NamedType
// underneath, or nil if t does not terminate in a leaf type.
func UnderlyingLeaf(t Type) NamedType {
	return AsLeaf(NamedOf(t))
}

// WithModifiersOf rebuilds base's named type with inner's modifier chain
// (List/Nullable nesting) applied around it. It is used when coercion
// needs to report a problem against the originally declared type shape
// rather than a type it unwrapped along the way.
func WithModifiersOf(inner Type, base NamedType) Type {
	switch v := Dealias(inner).(type) {
	case *List:
		return &List{OfType: WithModifiersOf(v.OfType, base)}
	case *Nullable:
		return &Nullable{OfType: WithModifiersOf(v.OfType, base)}
	default:
		return base
	}
}

// VariantField reports whether field is "variant" on obj: present on obj
// itself, but absent from at least one interface obj implements. A
// variant field can't be resolved purely against the interface's static
// shape — query planning needs obj's own concrete field, not a shared one
// inherited unchanged from every implemented interface.
func VariantField(obj *ObjectType, field string) bool {
	if obj.Fields.Get(field) == nil {
		return false
	}
	for _, iface := range obj.Interfaces {
		if iface.Fields.Get(field) == nil {
			return true
		}
	}
	return false
}

// Exhaustive reports whether selected covers every possible runtime type
// of named: for an Object, selected must include named; for an
// Interface or Union, selected must cover every entry of its possible
// types. It is used to decide whether a set of type conditions exhausts
// an abstract type without needing a catch-all default.
func Exhaustive(named NamedType, selected []*ObjectType) bool {
	var possible []*ObjectType
	switch t := named.(type) {
	case *ObjectType:
		possible = []*ObjectType{t}
	case *InterfaceType:
		possible = t.PossibleTypes
	case *UnionType:
		possible = t.Members
	default:
		return false
	}

	covered := make(map[string]bool, len(selected))
	for _, s := range selected {
		covered[s.Name] = true
	}
	for _, p := range possible {
		if !covered[p.Name] {
			return false
		}
	}
	return true
}
