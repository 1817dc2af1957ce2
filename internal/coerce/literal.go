// Package coerce implements the two input-value coercion algorithms: one
// over AST literal values (parsed from SDL defaults or query argument
// text), the other over already-decoded JSON variable values. Both
// follow the same nine-step resolution order against an
// ast.InputValueDefinition; see Literal and JSON.
//
// Grounded on the structure of internal/validation/validation.go's
// validateValueType, generalized from a yes/no validity check into a
// value-producing coercion.
package coerce

import (
	"strconv"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
)

// Literal coerces v (an AST literal, already elaborated against query
// variables — see ast.ElaborateValue) against iv, in the context named by
// location (used only for error messages, e.g. `"argument \"limit\""`).
// present reports whether the caller actually supplied a value at all,
// as opposed to supplying an explicit `null` or `Absent` value — it
// distinguishes "the field was omitted from the literal" from "the field
// was written as null", which clause 1/2 need to tell apart.
func Literal(iv *ast.InputValueDefinition, v ast.Value, present bool, location string) (ast.Value, *errors.Problem) {
	return literal(iv.Name, iv.Type, iv.DefaultValue, v, present, location)
}

func literal(name string, t ast.Type, def ast.Value, v ast.Value, present bool, location string) (ast.Value, *errors.Problem) {
	// Clause 1: a missing value defers to the declared default, even for
	// a non-nullable type — the default is assumed well-formed.
	if !present && def != nil {
		return def, nil
	}

	if nullable, ok := ast.Dealias(t).(*ast.Nullable); ok {
		// Clause 2: nothing supplied, or an explicit null, on a nullable
		// type resolves immediately without recursing into the inner type.
		if !present {
			return ast.Absent, nil
		}
		if v == nil || v.Kind() == ast.KindNull || v.Kind() == ast.KindAbsent {
			return ast.Null, nil
		}
		// Clause 3: a real value against Nullable(inner) recurses with the
		// default cleared — defaults belong to the outer position only.
		return literal(name, nullable.OfType, nil, v, present, location)
	}

	// Past this point t is non-nullable. A missing or null value against a
	// non-nullable type with no default is always an error (clause 9).
	if !present || v == nil || v.Kind() == ast.KindNull || v.Kind() == ast.KindAbsent {
		return nil, errors.Errorf("Value of type %s required for %q in %s", typeName(t), name, location)
	}

	if vr, ok := v.(ast.VariableRef); ok {
		// An unresolved VariableRef reaching the coercer means the caller
		// skipped elaboration; there is nothing sound to coerce.
		return nil, errors.Errorf("Undefined variable %q used for %q in %s", vr.Name, name, location)
	}

	named, isNamed := ast.Dealias(t).(ast.NamedType)

	// Clause 4: built-in scalar match by variant.
	if isNamed {
		if scalar, ok := named.(*ast.ScalarType); ok && ast.IsBuiltinScalar(scalar.Name) {
			coerced, ok := coerceBuiltinScalar(scalar.Name, v)
			if !ok {
				return nil, badValue(t, v, name, location)
			}
			return coerced, nil
		}

		// Clause 5: custom scalars accept any primitive shape unchanged.
		if scalar, ok := named.(*ast.ScalarType); ok {
			_ = scalar
			if isPrimitive(v) {
				return v, nil
			}
			return nil, badValue(t, v, name, location)
		}

		// Clause 6: enum membership.
		if enum, ok := named.(*ast.EnumType); ok {
			ev, ok := v.(ast.EnumValue)
			if !ok || !enum.HasValue(ev.Name) {
				return nil, badValue(t, v, name, location)
			}
			return ev, nil
		}
	}

	// Clause 7: list recursion, clearing the element default.
	if list, ok := ast.Dealias(t).(*ast.List); ok {
		lv, ok := v.(ast.ListValue)
		if !ok {
			return nil, badValue(t, v, name, location)
		}
		out := make([]ast.Value, len(lv.Values))
		for i, elem := range lv.Values {
			coerced, err := literal(name, list.OfType, nil, elem, true, location)
			if err != nil {
				return nil, errors.Errorf("In element #%d: %s", i, err)
			}
			out[i] = coerced
		}
		return ast.ListValue{Values: out}, nil
	}

	// Clause 8: input-object recursion.
	if isNamed {
		if obj, ok := named.(*ast.InputObjectType); ok {
			return coerceInputObjectLiteral(obj, v, name, location)
		}
	}

	return nil, badValue(t, v, name, location)
}

func coerceInputObjectLiteral(obj *ast.InputObjectType, v ast.Value, name, location string) (ast.Value, *errors.Problem) {
	ov, ok := v.(ast.ObjectValue)
	if !ok {
		return nil, errors.Errorf("Expected %s found %q for %q in %s", obj.Name, v.String(), name, location)
	}

	for _, f := range ov.Fields {
		if obj.InputFields.Get(f.Name) == nil {
			return nil, errors.Errorf("Unknown field %q for input object %q in %s", f.Name, obj.Name, location)
		}
	}

	fields := make([]ast.ObjectField, 0, len(obj.InputFields))
	for _, fieldDef := range obj.InputFields {
		var (
			fieldVal ast.Value
			present  bool
		)
		for _, f := range ov.Fields {
			if f.Name == fieldDef.Name {
				fieldVal, present = f.Value, true
				break
			}
		}
		coerced, err := literal(fieldDef.Name, fieldDef.Type, fieldDef.DefaultValue, fieldVal, present, location)
		if err != nil {
			return nil, err
		}
		if coerced.Kind() == ast.KindAbsent {
			continue
		}
		fields = append(fields, ast.ObjectField{Name: fieldDef.Name, Value: coerced})
	}
	return ast.ObjectValue{Fields: fields}, nil
}

func coerceBuiltinScalar(name string, v ast.Value) (ast.Value, bool) {
	switch name {
	case "Int":
		iv, ok := v.(ast.IntValue)
		return iv, ok
	case "Float":
		switch fv := v.(type) {
		case ast.FloatValue:
			return fv, true
		case ast.IntValue:
			return ast.FloatValue{Value: float64(fv.Value)}, true
		}
		return nil, false
	case "String":
		sv, ok := v.(ast.StringValue)
		return sv, ok
	case "Boolean":
		bv, ok := v.(ast.BooleanValue)
		return bv, ok
	case "ID":
		switch idv := v.(type) {
		case ast.IDValue:
			return idv, true
		case ast.StringValue:
			return ast.IDValue{Value: idv.Value}, true
		case ast.IntValue:
			return ast.IDValue{Value: strconv.FormatInt(int64(idv.Value), 10)}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func isPrimitive(v ast.Value) bool {
	switch v.Kind() {
	case ast.KindInt, ast.KindFloat, ast.KindString, ast.KindBoolean:
		return true
	default:
		return false
	}
}

func badValue(t ast.Type, v ast.Value, name, location string) *errors.Problem {
	return errors.Errorf("Expected type %s, found %s for %q in %s", typeName(t), v.String(), name, location)
}

// typeName renders t's internal modifier chain in §6 output grammar,
// mirroring sdl.renderTypeRef: a bare named/list node is non-null and gets
// a trailing "!", dropped only when wrapped in *ast.Nullable.
func typeName(t ast.Type) string {
	nullable := false
	if n, ok := ast.Dealias(t).(*ast.Nullable); ok {
		nullable = true
		t = n.OfType
	}
	base := baseTypeName(t)
	if nullable {
		return base
	}
	return base + "!"
}

func baseTypeName(t ast.Type) string {
	switch v := ast.Dealias(t).(type) {
	case *ast.List:
		return "[" + typeName(v.OfType) + "]"
	case ast.NamedType:
		return v.TypeName()
	default:
		return "<unknown>"
	}
}
