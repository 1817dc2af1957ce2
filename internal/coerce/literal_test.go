package coerce_test

import (
	"testing"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/internal/coerce"
)

func iv(name string, t ast.Type, def ast.Value) *ast.InputValueDefinition {
	return &ast.InputValueDefinition{Name: name, Type: t, DefaultValue: def}
}

func TestLiteral_Defaulting(t *testing.T) {
	def := iv("limit", &ast.Nullable{OfType: &ast.ScalarType{Name: "Int"}}, ast.IntValue{Value: 10})

	got, err := coerce.Literal(def, nil, false, "argument \"limit\"")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (ast.IntValue{Value: 10}) {
		t.Errorf("got %#v, want default 10", got)
	}
}

func TestLiteral_NullableAbsentAndNull(t *testing.T) {
	nullableStr := iv("bio", &ast.Nullable{OfType: &ast.ScalarType{Name: "String"}}, nil)

	t.Run("absent yields Absent", func(t *testing.T) {
		got, err := coerce.Literal(nullableStr, nil, false, "x")
		if err != nil || got.Kind() != ast.KindAbsent {
			t.Errorf("got %#v, err %v", got, err)
		}
	})

	t.Run("explicit null yields Null", func(t *testing.T) {
		got, err := coerce.Literal(nullableStr, ast.Null, true, "x")
		if err != nil || got.Kind() != ast.KindNull {
			t.Errorf("got %#v, err %v", got, err)
		}
	})
}

func TestLiteral_NonNullMissingIsAnError(t *testing.T) {
	required := iv("name", &ast.ScalarType{Name: "String"}, nil)
	_, err := coerce.Literal(required, nil, false, "argument \"name\"")
	if err == nil {
		t.Fatalf("expected an error for a missing required argument")
	}
}

func TestLiteral_BuiltinScalars(t *testing.T) {
	cases := map[string]struct {
		typeName string
		in       ast.Value
		want     ast.Value
		wantErr  bool
	}{
		"int matches Int":          {"Int", ast.IntValue{Value: 3}, ast.IntValue{Value: 3}, false},
		"int widens to Float":      {"Float", ast.IntValue{Value: 3}, ast.FloatValue{Value: 3}, false},
		"string matches ID":        {"ID", ast.StringValue{Value: "abc"}, ast.IDValue{Value: "abc"}, false},
		"int coerces to ID string": {"ID", ast.IntValue{Value: 7}, ast.IDValue{Value: "7"}, false},
		"bool rejected for Int":    {"Int", ast.BooleanValue{Value: true}, nil, true},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			def := iv("v", &ast.ScalarType{Name: c.typeName}, nil)
			got, err := coerce.Literal(def, c.in, true, "x")
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("got %#v, want %#v", got, c.want)
			}
		})
	}
}

func TestLiteral_CustomScalarPassesThroughPrimitives(t *testing.T) {
	def := iv("v", &ast.ScalarType{Name: "DateTime"}, nil)
	got, err := coerce.Literal(def, ast.StringValue{Value: "2024-01-01"}, true, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (ast.StringValue{Value: "2024-01-01"}) {
		t.Errorf("got %#v", got)
	}
}

func TestLiteral_Enum(t *testing.T) {
	color := &ast.EnumType{Name: "Color", Values: []*ast.EnumValueDefinition{{Name: "RED"}, {Name: "BLUE"}}}
	def := iv("c", color, nil)

	t.Run("known value", func(t *testing.T) {
		got, err := coerce.Literal(def, ast.EnumValue{Name: "RED"}, true, "x")
		if err != nil || got != (ast.EnumValue{Name: "RED"}) {
			t.Errorf("got %#v, err %v", got, err)
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		_, err := coerce.Literal(def, ast.EnumValue{Name: "GREEN"}, true, "x")
		if err == nil {
			t.Fatalf("expected an error for an undeclared enum value")
		}
	})
}

func TestLiteral_ListCoercesEachElement(t *testing.T) {
	elemType := &ast.ScalarType{Name: "Int"}
	listType := &ast.List{OfType: elemType}
	def := iv("nums", listType, nil)

	in := ast.ListValue{Values: []ast.Value{ast.IntValue{Value: 1}, ast.IntValue{Value: 2}}}
	got, err := coerce.Literal(def, in, true, "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := got.(ast.ListValue)
	if len(list.Values) != 2 || list.Values[1] != (ast.IntValue{Value: 2}) {
		t.Errorf("got %#v", list)
	}
}

func TestLiteral_InputObject(t *testing.T) {
	obj := &ast.InputObjectType{
		Name: "PointInput",
		InputFields: ast.InputValueList{
			{Name: "x", Type: &ast.ScalarType{Name: "Int"}},
			{Name: "y", Type: &ast.ScalarType{Name: "Int"}, DefaultValue: ast.IntValue{Value: 0}},
		},
	}
	def := iv("p", obj, nil)

	t.Run("supplies declared default for an omitted field", func(t *testing.T) {
		in := ast.ObjectValue{Fields: []ast.ObjectField{{Name: "x", Value: ast.IntValue{Value: 5}}}}
		got, err := coerce.Literal(def, in, true, "x")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := got.(ast.ObjectValue)
		if len(out.Fields) != 2 || out.Fields[0].Name != "x" || out.Fields[1].Name != "y" {
			t.Errorf("got %#v", out)
		}
		if out.Fields[1].Value != (ast.IntValue{Value: 0}) {
			t.Errorf("expected default 0 for y, got %#v", out.Fields[1].Value)
		}
	})

	t.Run("rejects an undeclared field", func(t *testing.T) {
		in := ast.ObjectValue{Fields: []ast.ObjectField{{Name: "z", Value: ast.IntValue{Value: 1}}}}
		_, err := coerce.Literal(def, in, true, "x")
		if err == nil {
			t.Fatalf("expected an error for an unknown field")
		}
	})

	t.Run("missing required field with no default is an error", func(t *testing.T) {
		in := ast.ObjectValue{}
		_, err := coerce.Literal(def, in, true, "x")
		if err == nil {
			t.Fatalf("expected an error for the missing required field x")
		}
	})
}
