package schema_test

import (
	"testing"

	"github.com/gqlcore/schemacore/ast"
	"github.com/gqlcore/schemacore/schema"
)

func strType() ast.Type { return &ast.ScalarType{Name: "String"} }

func queryType(b *schema.Builder) *ast.ObjectType {
	return &ast.ObjectType{
		Name: "Query",
		Fields: ast.FieldList{
			{Name: "hello", Type: strType()},
		},
	}
}

func TestComplete_DefaultRootTypeFromNamedQuery(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(queryType(b))

	sealed, problems := b.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	if sealed.QueryType() == nil || sealed.QueryType().Name != "Query" {
		t.Fatalf("expected Query root, got %v", sealed.QueryType())
	}
}

func TestComplete_BuiltinDirectivesAlwaysPresent(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(queryType(b))

	sealed, problems := b.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	for _, name := range []string{"skip", "include", "deprecated"} {
		if sealed.Directive(name) == nil {
			t.Errorf("expected built-in directive %q to be present", name)
		}
	}
}

func TestComplete_PanicsOnSecondCall(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(queryType(b))
	if _, problems := b.Complete(); len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic calling Complete twice")
		}
	}()
	b.Complete()
}

func TestComplete_UndefinedFieldTypeIsAProblem(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(&ast.ObjectType{
		Name: "Query",
		Fields: ast.FieldList{
			{Name: "thing", Type: &ast.TypeRef{In: b, Name: "Missing"}},
		},
	})

	_, problems := b.Complete()
	if len(problems) == 0 {
		t.Fatal("expected a problem for an undefined field type")
	}
}

func TestComplete_DuplicateEnumValueIsAProblem(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(queryType(b))
	b.AddType(&ast.EnumType{
		Name: "Color",
		Values: []*ast.EnumValueDefinition{
			{Name: "RED"},
			{Name: "RED"},
		},
	})

	_, problems := b.Complete()
	if len(problems) == 0 {
		t.Fatal("expected a problem for a duplicate enum value")
	}
}

func TestComplete_ObjectMissingInterfaceFieldIsAProblem(t *testing.T) {
	b := schema.NewBuilder()
	named := &ast.InterfaceType{
		Name:   "Named",
		Fields: ast.FieldList{{Name: "name", Type: strType()}},
	}
	b.AddType(queryType(b))
	b.AddType(named)
	b.AddType(&ast.ObjectType{
		Name:       "Dog",
		Interfaces: []*ast.InterfaceType{named},
		// missing the "name" field named requires
	})

	_, problems := b.Complete()
	if len(problems) == 0 {
		t.Fatal("expected a problem for a missing interface field")
	}
}

func TestComplete_ObjectSatisfyingInterfaceIsClean(t *testing.T) {
	b := schema.NewBuilder()
	named := &ast.InterfaceType{
		Name:   "Named",
		Fields: ast.FieldList{{Name: "name", Type: strType()}},
	}
	b.AddType(queryType(b))
	b.AddType(named)
	b.AddType(&ast.ObjectType{
		Name:       "Dog",
		Interfaces: []*ast.InterfaceType{named},
		Fields:     ast.FieldList{{Name: "name", Type: strType()}},
	})

	_, problems := b.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestComplete_ImplementsNonInterfaceIsAProblem(t *testing.T) {
	b := schema.NewBuilder()
	notAnInterface := &ast.InterfaceType{Name: "NotReallyAnInterface"}
	b.AddType(queryType(b))
	// Register a type under the same name as an ObjectType instead, so
	// Lookup resolves "NotReallyAnInterface" to a non-interface.
	b.AddType(&ast.ObjectType{Name: "NotReallyAnInterface"})
	b.AddType(&ast.ObjectType{
		Name:       "Dog",
		Interfaces: []*ast.InterfaceType{notAnInterface},
	})

	_, problems := b.Complete()
	if len(problems) == 0 {
		t.Fatal("expected a problem for implementing a non-interface")
	}
}

func TestOrderedTypes_MatchesInsertionOrder(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(queryType(b))
	b.AddType(&ast.ScalarType{Name: "Second"})
	b.AddType(&ast.ScalarType{Name: "Third"})

	sealed, problems := b.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	ordered := sealed.OrderedTypes()
	var names []string
	for _, n := range ordered {
		names = append(names, n.TypeName())
	}
	want := []string{"Query", "Second", "Third"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestRevision_DistinctAcrossSeals(t *testing.T) {
	b1 := schema.NewBuilder()
	b1.AddType(queryType(b1))
	s1, problems := b1.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	b2 := schema.NewBuilder()
	b2.AddType(queryType(b2))
	s2, problems := b2.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	if s1.Revision() == s2.Revision() {
		t.Fatal("expected distinct revisions for two separately sealed schemas")
	}
}

func TestLookup_FallsBackToBuiltinScalars(t *testing.T) {
	b := schema.NewBuilder()
	b.AddType(queryType(b))
	sealed, problems := b.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	if sealed.Lookup("Int") == nil {
		t.Fatal("expected Lookup to fall back to the built-in Int scalar")
	}
}

func TestIsRootType(t *testing.T) {
	b := schema.NewBuilder()
	q := queryType(b)
	b.AddType(q)
	sealed, problems := b.Complete()
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}

	if !sealed.IsRootType(sealed.QueryType()) {
		t.Fatal("expected the query type to report as a root type")
	}
	other := &ast.ObjectType{Name: "NotARoot"}
	if sealed.IsRootType(other) {
		t.Fatal("expected an unrelated object type to not report as a root type")
	}
}
