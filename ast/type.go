package ast

import "github.com/gqlcore/schemacore/errors"

// Type is any node in the GraphQL type algebra: a named type, or a List or
// Nullable modifier wrapping another Type, or a TypeRef indirection closing
// a cycle during schema construction.
//
// Internally, types are non-null by default: a bare Type node (not wrapped
// in Nullable) denotes a non-null type. This is the reverse of SDL syntax,
// where a bare type name is nullable and `!` makes it non-null — see
// parseType in the sdl package for where that inversion happens.
type Type interface {
	isType()
}

// List is the `[T]` modifier.
type List struct{ OfType Type }

func (*List) isType() {}

// Nullable is the modifier making an otherwise non-null Type nullable.
// Nullable(Nullable(t)) never occurs (invariant 4) — Nullable is
// idempotent, enforced by the NullableOf constructor in algebra.go, not by
// this struct alone.
type Nullable struct{ OfType Type }

func (*Nullable) isType() {}

// Resolver looks up a named type by name. A built Schema satisfies this
// interface; TypeRef holds one rather than a concrete *schema.Schema so
// that this package never has to import its own consumer.
type Resolver interface {
	Lookup(name string) NamedType
}

// TypeRef is a by-name indirection into whatever Resolver constructed it,
// used to close mutually recursive type references during construction.
// Dealias replaces it with the type it names, or returns itself unchanged
// if the name is undefined.
type TypeRef struct {
	In   Resolver
	Name string
}

func (*TypeRef) isType() {}

// NamedType is any of the six named GraphQL type kinds: Scalar, Enum,
// Object, Interface, Union or InputObject.
type NamedType interface {
	Type
	TypeName() string
	Description() string
	Directives() DirectiveList
	Loc() errors.Location
}

// ScalarType is a leaf type whose values are opaque to the core; the five
// built-in scalars (Int, Float, String, Boolean, ID) and any custom scalar
// declared with `scalar Name` share this representation.
type ScalarType struct {
	Name string
	Desc string
	Dirs DirectiveList
	Pos  errors.Location
}

func (*ScalarType) isType()                      {}
func (t *ScalarType) TypeName() string            { return t.Name }
func (t *ScalarType) Description() string         { return t.Desc }
func (t *ScalarType) Directives() DirectiveList   { return t.Dirs }
func (t *ScalarType) Loc() errors.Location        { return t.Pos }

// IsBuiltinScalar reports whether name is one of the five scalars every
// schema resolves implicitly, declared or not.
func IsBuiltinScalar(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	default:
		return false
	}
}

// EnumValueDefinition is one member of an EnumType.
type EnumValueDefinition struct {
	Name string
	Desc string
	Dirs DirectiveList
	Pos  errors.Location
}

// EnumType is a leaf type whose values are drawn from a fixed, named set.
type EnumType struct {
	Name   string
	Desc   string
	Values []*EnumValueDefinition
	Dirs   DirectiveList
	Pos    errors.Location
}

func (*EnumType) isType()                    {}
func (t *EnumType) TypeName() string          { return t.Name }
func (t *EnumType) Description() string       { return t.Desc }
func (t *EnumType) Directives() DirectiveList { return t.Dirs }
func (t *EnumType) Loc() errors.Location      { return t.Pos }

// HasValue reports whether name names one of the enum's values.
func (t *EnumType) HasValue(name string) bool {
	for _, v := range t.Values {
		if v.Name == name {
			return true
		}
	}
	return false
}

// InputValueDefinition is the declaration of one argument or input-object
// field: a name, a type, an optional default literal and directives.
type InputValueDefinition struct {
	Name         string
	Desc         string
	Type         Type
	DefaultValue Value // nil if none was declared
	Dirs         DirectiveList
	Pos          errors.Location
}

// InputValueList is an ordered, name-indexable list of input value
// declarations — used for both field argument lists and input-object
// field lists.
type InputValueList []*InputValueDefinition

func (l InputValueList) Get(name string) *InputValueDefinition {
	for _, v := range l {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func (l InputValueList) Names() []string {
	names := make([]string, len(l))
	for i, v := range l {
		names[i] = v.Name
	}
	return names
}

// FieldDefinition is one field of an Object or Interface type.
type FieldDefinition struct {
	Name string
	Desc string
	Args InputValueList
	Type Type
	Dirs DirectiveList
	Pos  errors.Location
}

// FieldList is an ordered, name-indexable list of field declarations.
type FieldList []*FieldDefinition

func (l FieldList) Get(name string) *FieldDefinition {
	for _, f := range l {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (l FieldList) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

// ObjectType is a concrete, selectable type with fields, optionally
// implementing one or more interfaces.
type ObjectType struct {
	Name       string
	Desc       string
	Fields     FieldList
	Interfaces []*InterfaceType
	Dirs       DirectiveList
	Pos        errors.Location
}

func (*ObjectType) isType()                    {}
func (t *ObjectType) TypeName() string          { return t.Name }
func (t *ObjectType) Description() string       { return t.Desc }
func (t *ObjectType) Directives() DirectiveList { return t.Dirs }
func (t *ObjectType) Loc() errors.Location      { return t.Pos }

// InterfaceType declares a field set that implementing Object (or other
// Interface) types must provide.
type InterfaceType struct {
	Name       string
	Desc       string
	Fields     FieldList
	Interfaces []*InterfaceType
	Dirs       DirectiveList
	Pos        errors.Location

	// PossibleTypes is populated by the SDL parser (sdl.ParseText) when it
	// resolves `implements` clauses: every ObjectType that declares this
	// interface in its `implements` list. schema.Builder does not set it.
	PossibleTypes []*ObjectType
}

func (*InterfaceType) isType()                    {}
func (t *InterfaceType) TypeName() string          { return t.Name }
func (t *InterfaceType) Description() string       { return t.Desc }
func (t *InterfaceType) Directives() DirectiveList { return t.Dirs }
func (t *InterfaceType) Loc() errors.Location      { return t.Pos }

// UnionType is a named type whose values are always exactly one of its
// member Object types.
type UnionType struct {
	Name    string
	Desc    string
	Members []*ObjectType
	Dirs    DirectiveList
	Pos     errors.Location
}

func (*UnionType) isType()                    {}
func (t *UnionType) TypeName() string          { return t.Name }
func (t *UnionType) Description() string       { return t.Desc }
func (t *UnionType) Directives() DirectiveList { return t.Dirs }
func (t *UnionType) Loc() errors.Location      { return t.Pos }

// InputObjectType is a named type usable only in input positions (variable
// values, argument values); unlike ObjectType it cannot be selected into.
type InputObjectType struct {
	Name        string
	Desc        string
	InputFields InputValueList
	Dirs        DirectiveList
	Pos         errors.Location
}

func (*InputObjectType) isType()                    {}
func (t *InputObjectType) TypeName() string          { return t.Name }
func (t *InputObjectType) Description() string       { return t.Desc }
func (t *InputObjectType) Directives() DirectiveList { return t.Dirs }
func (t *InputObjectType) Loc() errors.Location      { return t.Pos }

// DirectiveLocation enumerates the sites at which a directive application
// may legally appear (§4.E).
type DirectiveLocation string

const (
	LocQuery              DirectiveLocation = "QUERY"
	LocMutation           DirectiveLocation = "MUTATION"
	LocSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocField              DirectiveLocation = "FIELD"
	LocFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocVariableDefinition DirectiveLocation = "VARIABLE_DEFINITION"

	LocSchema              DirectiveLocation = "SCHEMA"
	LocScalar              DirectiveLocation = "SCALAR"
	LocObject              DirectiveLocation = "OBJECT"
	LocFieldDefinition     DirectiveLocation = "FIELD_DEFINITION"
	LocArgumentDefinition  DirectiveLocation = "ARGUMENT_DEFINITION"
	LocInterface           DirectiveLocation = "INTERFACE"
	LocUnion               DirectiveLocation = "UNION"
	LocEnum                DirectiveLocation = "ENUM"
	LocEnumValue           DirectiveLocation = "ENUM_VALUE"
	LocInputObject         DirectiveLocation = "INPUT_OBJECT"
	LocInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// DirectiveDef is a `directive @name(...) on LOC | LOC` declaration.
type DirectiveDef struct {
	Name         string
	Desc         string
	Args         InputValueList
	IsRepeatable bool
	Locations    map[DirectiveLocation]bool
	Pos          errors.Location
}

// AllowedAt reports whether the directive may legally appear at loc.
func (d *DirectiveDef) AllowedAt(loc DirectiveLocation) bool {
	return d.Locations[loc]
}

// Binding is one fully-elaborated (name, value) pair produced by
// directive.Elaborate, after variable substitution and coercion.
type Binding struct {
	Name  string
	Value Value
}

// Directive is a directive as applied at some site: `@name(arg: val, ...)`.
// Before elaboration, Args holds the literal expressions as written; after
// elaboration the same slice (or a copy) holds resolved Bindings.
type Directive struct {
	Name string
	Args []Binding
	Pos  errors.Location
}

// DirectiveList is an ordered list of applied directives.
type DirectiveList []*Directive

func (l DirectiveList) Get(name string) *Directive {
	for _, d := range l {
		if d.Name == name {
			return d
		}
	}
	return nil
}

func (b Binding) valueOr(def Value) Value {
	if b.Value == nil {
		return def
	}
	return b.Value
}

// Arg returns the bound value of the named argument, or Absent if it was
// not supplied.
func (d *Directive) Arg(name string) Value {
	for _, b := range d.Args {
		if b.Name == name {
			return b.valueOr(Absent)
		}
	}
	return Absent
}
