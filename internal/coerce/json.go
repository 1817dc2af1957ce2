package coerce

import (
	"fmt"
	"strconv"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/errors"
)

// JSON coerces an already-decoded JSON value (as produced by
// encoding/json.Unmarshal into interface{} — nil, bool, float64, string,
// []interface{} or map[string]interface{}) against iv, the way a
// variables map from a query request is coerced. It mirrors Literal's
// nine clauses exactly, differing only in how source values are
// recognised and in which fresh ast.Value each clause produces.
func JSON(iv *ast.InputValueDefinition, v interface{}, present bool, location string) (ast.Value, *errors.Problem) {
	return fromJSON(iv.Name, iv.Type, iv.DefaultValue, v, present, location)
}

func fromJSON(name string, t ast.Type, def ast.Value, v interface{}, present bool, location string) (ast.Value, *errors.Problem) {
	if !present && def != nil {
		return def, nil
	}

	if nullable, ok := ast.Dealias(t).(*ast.Nullable); ok {
		if !present {
			return ast.Absent, nil
		}
		if v == nil {
			return ast.Null, nil
		}
		return fromJSON(name, nullable.OfType, nil, v, present, location)
	}

	if !present || v == nil {
		return nil, errors.Errorf("Value of type %s required for %q in %s", typeName(t), name, location)
	}

	named, isNamed := ast.Dealias(t).(ast.NamedType)

	if isNamed {
		if scalar, ok := named.(*ast.ScalarType); ok && ast.IsBuiltinScalar(scalar.Name) {
			coerced, ok := coerceBuiltinScalarJSON(scalar.Name, v)
			if !ok {
				return nil, badValueJSON(t, v, name, location)
			}
			return coerced, nil
		}

		if _, ok := named.(*ast.ScalarType); ok {
			if isPrimitiveJSON(v) {
				return toValue(v), nil
			}
			return nil, badValueJSON(t, v, name, location)
		}

		if enum, ok := named.(*ast.EnumType); ok {
			s, ok := v.(string)
			if !ok || !enum.HasValue(s) {
				return nil, badValueJSON(t, v, name, location)
			}
			return ast.EnumValue{Name: s}, nil
		}
	}

	if list, ok := ast.Dealias(t).(*ast.List); ok {
		arr, ok := v.([]interface{})
		if !ok {
			return nil, badValueJSON(t, v, name, location)
		}
		out := make([]ast.Value, len(arr))
		for i, elem := range arr {
			coerced, err := fromJSON(name, list.OfType, nil, elem, true, location)
			if err != nil {
				return nil, errors.Errorf("In element #%d: %s", i, err)
			}
			out[i] = coerced
		}
		return ast.ListValue{Values: out}, nil
	}

	if isNamed {
		if obj, ok := named.(*ast.InputObjectType); ok {
			return coerceInputObjectJSON(obj, v, name, location)
		}
	}

	return nil, badValueJSON(t, v, name, location)
}

func coerceInputObjectJSON(obj *ast.InputObjectType, v interface{}, name, location string) (ast.Value, *errors.Problem) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("Expected %s found not an object for %q in %s", obj.Name, name, location)
	}

	for fieldName := range m {
		if obj.InputFields.Get(fieldName) == nil {
			return nil, errors.Errorf("Unknown field %q for input object %q in %s", fieldName, obj.Name, location)
		}
	}

	fields := make([]ast.ObjectField, 0, len(obj.InputFields))
	for _, fieldDef := range obj.InputFields {
		fieldVal, present := m[fieldDef.Name]
		coerced, err := fromJSON(fieldDef.Name, fieldDef.Type, fieldDef.DefaultValue, fieldVal, present, location)
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

func coerceBuiltinScalarJSON(name string, v interface{}) (ast.Value, bool) {
	switch name {
	case "Int":
		f, ok := v.(float64)
		if !ok || f != float64(int32(f)) {
			return nil, false
		}
		return ast.IntValue{Value: int32(f)}, true
	case "Float":
		f, ok := v.(float64)
		return ast.FloatValue{Value: f}, ok
	case "String":
		s, ok := v.(string)
		return ast.StringValue{Value: s}, ok
	case "Boolean":
		b, ok := v.(bool)
		return ast.BooleanValue{Value: b}, ok
	case "ID":
		switch idv := v.(type) {
		case string:
			return ast.IDValue{Value: idv}, true
		case float64:
			return ast.IDValue{Value: strconv.FormatFloat(idv, 'f', -1, 64)}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func isPrimitiveJSON(v interface{}) bool {
	switch v.(type) {
	case float64, string, bool:
		return true
	default:
		return false
	}
}

func toValue(v interface{}) ast.Value {
	switch t := v.(type) {
	case float64:
		if t == float64(int32(t)) {
			return ast.IntValue{Value: int32(t)}
		}
		return ast.FloatValue{Value: t}
	case string:
		return ast.StringValue{Value: t}
	case bool:
		return ast.BooleanValue{Value: t}
	default:
		return ast.Null
	}
}

func badValueJSON(t ast.Type, v interface{}, name, location string) *errors.Problem {
	return errors.Errorf("Expected type %s, found %s for %q in %s", typeName(t), fmt.Sprintf("%v", v), name, location)
}
