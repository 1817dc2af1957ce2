package directive_test

import (
	"testing"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/directive"
)

func TestValidateForSchema_SchemaDefinitionDirectives(t *testing.T) {
	defs := map[string]*ast.DirectiveDef{
		"fieldOnly": boolArgDef("fieldOnly", ast.LocField),
	}
	schemaDirs := ast.DirectiveList{{Name: "fieldOnly", Args: []ast.Binding{{Name: "if", Value: ast.BooleanValue{Value: true}}}}}

	problems := directive.ValidateForSchema(nil, defs, schemaDirs)
	if len(problems) != 1 {
		t.Fatalf("expected one illegal-location problem for the schema definition, got %v", problems)
	}
}

func TestValidateForSchema_WalksFieldsAndArguments(t *testing.T) {
	defs := map[string]*ast.DirectiveDef{
		"deprecated": {
			Name:      "deprecated",
			Locations: map[ast.DirectiveLocation]bool{ast.LocFieldDefinition: true},
		},
	}
	types := []ast.NamedType{
		&ast.ObjectType{
			Name: "User",
			Fields: ast.FieldList{
				{
					Name: "email",
					Type: &ast.ScalarType{Name: "String"},
					Args: ast.InputValueList{
						{Name: "masked", Type: &ast.ScalarType{Name: "Boolean"},
							Dirs: ast.DirectiveList{{Name: "deprecated"}}},
					},
				},
			},
		},
	}

	problems := directive.ValidateForSchema(types, defs, nil)
	if len(problems) != 1 {
		t.Fatalf("expected one illegal-location problem from the argument site, got %v", problems)
	}
}

func TestValidateForSchema_NoDirectivesIsClean(t *testing.T) {
	types := []ast.NamedType{
		&ast.ScalarType{Name: "Money"},
		&ast.EnumType{Name: "Currency", Values: []*ast.EnumValueDefinition{{Name: "USD"}}},
	}
	problems := directive.ValidateForSchema(types, map[string]*ast.DirectiveDef{}, nil)
	if len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}
