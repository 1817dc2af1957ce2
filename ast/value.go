package ast

import (
	"strconv"
	"strings"

	"github.com/gqlcore/schemacore/errors"
)

// Value is a GraphQL input value: either a literal parsed from SDL/query
// text, or a value produced by coercing an external JSON variable. It is a
// closed sum — ValueKind identifies which variant a Value actually holds.
//
// Null and Absent are kept as distinct variants: Null is an explicitly
// supplied null, Absent means nothing was supplied at all. Coercion treats
// them differently (§4.D).
type Value interface {
	// Kind identifies which Value variant this is.
	Kind() ValueKind
	// String renders the value the way it would appear in SDL/query text.
	String() string
}

// ValueKind enumerates the Value variants.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
	KindBoolean
	KindID
	KindEnum
	KindList
	KindObject
	KindVariableRef
	KindNull
	KindAbsent
)

// IntValue is a GraphQL Int literal.
type IntValue struct{ Value int32 }

func (IntValue) Kind() ValueKind   { return KindInt }
func (v IntValue) String() string  { return strconv.FormatInt(int64(v.Value), 10) }

// FloatValue is a GraphQL Float literal.
type FloatValue struct{ Value float64 }

func (FloatValue) Kind() ValueKind  { return KindFloat }
func (v FloatValue) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

// StringValue is a GraphQL String literal.
type StringValue struct{ Value string }

func (StringValue) Kind() ValueKind  { return KindString }
func (v StringValue) String() string { return strconv.Quote(v.Value) }

// BooleanValue is a GraphQL Boolean literal.
type BooleanValue struct{ Value bool }

func (BooleanValue) Kind() ValueKind  { return KindBoolean }
func (v BooleanValue) String() string { return strconv.FormatBool(v.Value) }

// IDValue is a GraphQL ID, serialized as text regardless of whether it was
// read from an integer or string literal.
type IDValue struct{ Value string }

func (IDValue) Kind() ValueKind  { return KindID }
func (v IDValue) String() string { return strconv.Quote(v.Value) }

// EnumValue names a member of some GraphQL enum type; which enum it
// belongs to is determined by the InputValue it's coerced against, not by
// the literal itself.
type EnumValue struct{ Name string }

func (EnumValue) Kind() ValueKind  { return KindEnum }
func (v EnumValue) String() string { return v.Name }

// ListValue is an ordered sequence of values.
type ListValue struct{ Values []Value }

func (ListValue) Kind() ValueKind { return KindList }
func (v ListValue) String() string {
	parts := make([]string, len(v.Values))
	for i, e := range v.Values {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectField is one name/value pair of an ObjectValue, in source order.
type ObjectField struct {
	Name  string
	Value Value
}

// ObjectValue is an ordered sequence of (name, Value) pairs; field order is
// preserved for rendering (§3).
type ObjectValue struct{ Fields []ObjectField }

func (ObjectValue) Kind() ValueKind { return KindObject }
func (v ObjectValue) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.Name + ": " + f.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// VariableRef is an unresolved `$name` reference, valid only in literal
// positions that accept variables (query arguments, not SDL defaults).
type VariableRef struct{ Name string }

func (VariableRef) Kind() ValueKind  { return KindVariableRef }
func (v VariableRef) String() string { return "$" + v.Name }

// NullValue is an explicitly supplied `null`.
type NullValue struct{}

func (NullValue) Kind() ValueKind { return KindNull }
func (NullValue) String() string  { return "null" }

// AbsentValue means no value was supplied at all, as opposed to an
// explicit null. It is never written to SDL/query text.
type AbsentValue struct{}

func (AbsentValue) Kind() ValueKind { return KindAbsent }
func (AbsentValue) String() string  { return "<absent>" }

// Null and Absent are the two singleton Values used throughout the
// coercion engine; they carry no data of their own.
var (
	Null   Value = NullValue{}
	Absent Value = AbsentValue{}
)

// AsStringList attempts to view v as a ListValue whose elements are all
// StringValue, returning the plain strings and true on success.
func AsStringList(v Value) ([]string, bool) {
	lv, ok := v.(ListValue)
	if !ok {
		return nil, false
	}
	out := make([]string, len(lv.Values))
	for i, e := range lv.Values {
		sv, ok := e.(StringValue)
		if !ok {
			return nil, false
		}
		out[i] = sv.Value
	}
	return out, true
}

// StringListValue builds a ListValue out of plain strings, the inverse of
// AsStringList.
func StringListValue(ss []string) Value {
	values := make([]Value, len(ss))
	for i, s := range ss {
		values[i] = StringValue{Value: s}
	}
	return ListValue{Values: values}
}

// ElaborateValue recursively substitutes every VariableRef in v with its
// bound value from vars, failing if a referenced variable is absent.
// Non-VariableRef scalars pass through unchanged; List and Object elements
// are elaborated recursively, preserving shape and field order.
func ElaborateValue(v Value, vars map[string]Value) (Value, *errors.Problem) {
	switch v := v.(type) {
	case VariableRef:
		bound, ok := vars[v.Name]
		if !ok {
			return nil, errors.Errorf("Undefined variable '%s'", v.Name)
		}
		return bound, nil
	case ListValue:
		out := make([]Value, len(v.Values))
		for i, e := range v.Values {
			elaborated, err := ElaborateValue(e, vars)
			if err != nil {
				return nil, err
			}
			out[i] = elaborated
		}
		return ListValue{Values: out}, nil
	case ObjectValue:
		out := make([]ObjectField, len(v.Fields))
		for i, f := range v.Fields {
			elaborated, err := ElaborateValue(f.Value, vars)
			if err != nil {
				return nil, err
			}
			out[i] = ObjectField{Name: f.Name, Value: elaborated}
		}
		return ObjectValue{Fields: out}, nil
	default:
		return v, nil
	}
}
