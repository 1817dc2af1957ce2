package ast_test

import (
	"testing"

	"github.com/gqlcore/schemacore/ast"
)

func strType() ast.Type  { return &ast.ScalarType{Name: "String"} }
func nullable(t ast.Type) ast.Type { return &ast.Nullable{OfType: t} }
func list(t ast.Type) ast.Type     { return &ast.List{OfType: t} }

func TestEquivalent(t *testing.T) {
	a := &ast.ScalarType{Name: "Int"}
	b := &ast.ScalarType{Name: "Int"}
	c := &ast.ScalarType{Name: "String"}

	cases := map[string]struct {
		a, b ast.Type
		want bool
	}{
		"same name and kind":     {a, b, true},
		"different name":         {a, c, false},
		"nullable wrapping same": {nullable(a), nullable(b), true},
		"nullable vs non-null":   {nullable(a), a, false},
		"list of same":           {list(a), list(b), true},
		"list vs non-list":       {list(a), a, false},
		"nested list+nullable":   {list(nullable(a)), list(nullable(b)), true},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := ast.Equivalent(c.a, c.b); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestIsSubtype_Reflexivity(t *testing.T) {
	s := strType()
	if !ast.IsSubtype(s, s) {
		t.Errorf("a type must be a subtype of itself")
	}
}

func TestIsSubtype_NonNullIsSubtypeOfNullable(t *testing.T) {
	s := strType()
	if !ast.IsSubtype(s, nullable(s)) {
		t.Errorf("String! should be a subtype of String")
	}
	if ast.IsSubtype(nullable(s), s) {
		t.Errorf("String should not be a subtype of String!")
	}
}

func TestIsSubtype_CovariantLists(t *testing.T) {
	obj := &ast.ObjectType{Name: "Dog"}
	iface := &ast.InterfaceType{Name: "Animal"}
	obj.Interfaces = []*ast.InterfaceType{iface}

	if !ast.IsSubtype(list(obj), list(iface)) {
		t.Errorf("[Dog] should be a subtype of [Animal]")
	}
	if ast.IsSubtype(list(iface), list(obj)) {
		t.Errorf("[Animal] should not be a subtype of [Dog]")
	}
	if !ast.IsSubtype(list(list(obj)), list(list(iface))) {
		t.Errorf("covariance should hold at nested depth")
	}
}

func TestIsSubtype_ObjectImplementsInterface(t *testing.T) {
	named := &ast.InterfaceType{Name: "Named"}
	animal := &ast.InterfaceType{Name: "Animal", Interfaces: []*ast.InterfaceType{named}}
	dog := &ast.ObjectType{Name: "Dog", Interfaces: []*ast.InterfaceType{animal}}

	if !ast.IsSubtype(dog, animal) {
		t.Errorf("Dog should be a subtype of its directly implemented interface Animal")
	}
	if !ast.IsSubtype(dog, named) {
		t.Errorf("Dog should be a subtype of Named transitively through Animal")
	}

	other := &ast.InterfaceType{Name: "Vehicle"}
	if ast.IsSubtype(dog, other) {
		t.Errorf("Dog should not be a subtype of an unrelated interface")
	}
}

func TestIsSubtype_ObjectIsMemberOfUnion(t *testing.T) {
	cat := &ast.ObjectType{Name: "Cat"}
	dog := &ast.ObjectType{Name: "Dog"}
	pet := &ast.UnionType{Name: "Pet", Members: []*ast.ObjectType{cat, dog}}

	if !ast.IsSubtype(cat, pet) {
		t.Errorf("Cat should be a subtype of the union Pet")
	}
	other := &ast.ObjectType{Name: "Car"}
	if ast.IsSubtype(other, pet) {
		t.Errorf("Car should not be a subtype of the union Pet")
	}
}

func TestIsSubtype_InterfaceToInterface(t *testing.T) {
	named := &ast.InterfaceType{Name: "Named"}
	animal := &ast.InterfaceType{Name: "Animal", Interfaces: []*ast.InterfaceType{named}}

	if !ast.IsSubtype(animal, named) {
		t.Errorf("Animal should be a subtype of Named")
	}
	if ast.IsSubtype(named, animal) {
		t.Errorf("Named should not be a subtype of Animal")
	}
}

func TestIsSubtype_LeafTypesOnlySubtypeThemselves(t *testing.T) {
	color := &ast.EnumType{Name: "Color"}
	otherColor := &ast.EnumType{Name: "Color"}
	size := &ast.EnumType{Name: "Size"}

	if !ast.IsSubtype(color, otherColor) {
		t.Errorf("two enums with the same name should be equivalent subtypes")
	}
	if ast.IsSubtype(color, size) {
		t.Errorf("unrelated enums should not be subtypes of one another")
	}
}

func TestDealias(t *testing.T) {
	hello := &ast.ObjectType{Name: "Hello"}
	resolver := fakeResolver{"Hello": hello}
	ref := &ast.TypeRef{In: resolver, Name: "Hello"}

	if got := ast.Dealias(ref); got != hello {
		t.Errorf("got %#v, want %#v", got, hello)
	}

	unresolved := &ast.TypeRef{In: resolver, Name: "Missing"}
	if got := ast.Dealias(unresolved); got != unresolved {
		t.Errorf("dealiasing an undefined name should return the TypeRef unchanged")
	}
}

type fakeResolver map[string]ast.NamedType

func (f fakeResolver) Lookup(name string) ast.NamedType { return f[name] }

func TestPath(t *testing.T) {
	address := &ast.ObjectType{Name: "Address", Fields: ast.FieldList{
		{Name: "city", Type: strType()},
	}}
	person := &ast.ObjectType{Name: "Person", Fields: ast.FieldList{
		{Name: "homes", Type: list(address)},
	}}

	got := ast.Path(person, "homes", "list", "city")
	if !ast.Equivalent(got, strType()) {
		t.Errorf("got %#v", got)
	}

	if ast.Path(person, "nonexistent") != nil {
		t.Errorf("expected nil for a nonexistent field")
	}
}

func TestUnderlyingField_TypenameIsAlwaysSelectable(t *testing.T) {
	person := &ast.ObjectType{Name: "Person"}
	named := &ast.InterfaceType{Name: "Named"}
	pet := &ast.UnionType{Name: "Pet", Members: []*ast.ObjectType{person}}

	for _, named := range []ast.NamedType{person, named, pet} {
		field := ast.UnderlyingField(named, "__typename")
		if field == nil {
			t.Fatalf("expected __typename to resolve on %#v", named)
		}
		if !ast.Equivalent(field.Type, strType()) {
			t.Errorf("expected __typename to resolve to String, got %#v", field.Type)
		}
	}

	scalar := &ast.ScalarType{Name: "Int"}
	if ast.UnderlyingField(scalar, "__typename") != nil {
		t.Errorf("expected __typename to be nil on a non-composite type")
	}

	if got := ast.Path(person, "__typename"); !ast.Equivalent(got, strType()) {
		t.Errorf("Path should resolve __typename the same way, got %#v", got)
	}
}

func TestPathIsListAndNullable(t *testing.T) {
	person := &ast.ObjectType{Name: "Person", Fields: ast.FieldList{
		{Name: "nicknames", Type: list(strType())},
		{Name: "bio", Type: nullable(strType())},
	}}

	if !ast.PathIsList(person, "nicknames") {
		t.Errorf("expected nicknames to be a list type")
	}
	if ast.PathIsList(person, "bio") {
		t.Errorf("expected bio to not be a list type")
	}
	if !ast.PathIsNullable(person, "bio") {
		t.Errorf("expected bio to be nullable")
	}
}

func TestUnderlyingLeaf(t *testing.T) {
	color := &ast.EnumType{Name: "Color"}
	if got := ast.UnderlyingLeaf(list(nullable(color))); got != color {
		t.Errorf("got %#v, want %#v", got, color)
	}

	person := &ast.ObjectType{Name: "Person"}
	if got := ast.UnderlyingLeaf(person); got != nil {
		t.Errorf("expected nil leaf for an Object type, got %#v", got)
	}
}

func TestVariantField(t *testing.T) {
	named := &ast.InterfaceType{Name: "Named", Fields: ast.FieldList{
		{Name: "name", Type: strType()},
	}}
	dog := &ast.ObjectType{
		Name:       "Dog",
		Interfaces: []*ast.InterfaceType{named},
		Fields: ast.FieldList{
			{Name: "name", Type: strType()},
			{Name: "bark", Type: strType()},
		},
	}

	if ast.VariantField(dog, "name") {
		t.Errorf("name is declared on every implemented interface, should not be variant")
	}
	if !ast.VariantField(dog, "bark") {
		t.Errorf("bark is absent from Named, should be variant")
	}
	if ast.VariantField(dog, "nonexistent") {
		t.Errorf("a field Dog does not have should not be variant")
	}
}

func TestExhaustive(t *testing.T) {
	cat := &ast.ObjectType{Name: "Cat"}
	dog := &ast.ObjectType{Name: "Dog"}
	pet := &ast.UnionType{Name: "Pet", Members: []*ast.ObjectType{cat, dog}}

	if ast.Exhaustive(pet, []*ast.ObjectType{cat}) {
		t.Errorf("selecting only Cat should not exhaust Pet")
	}
	if !ast.Exhaustive(pet, []*ast.ObjectType{cat, dog}) {
		t.Errorf("selecting Cat and Dog should exhaust Pet")
	}
}

func TestWithModifiersOf(t *testing.T) {
	original := list(nullable(strType()))
	replacement := &ast.ScalarType{Name: "ID"}

	got := ast.WithModifiersOf(original, replacement)
	gotList, ok := got.(*ast.List)
	if !ok {
		t.Fatalf("expected a List, got %#v", got)
	}
	gotNullable, ok := gotList.OfType.(*ast.Nullable)
	if !ok {
		t.Fatalf("expected a Nullable, got %#v", gotList.OfType)
	}
	if gotNullable.OfType != replacement {
		t.Errorf("got %#v, want %#v", gotNullable.OfType, replacement)
	}
}
