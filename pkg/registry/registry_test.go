package registry

import (
	"errors"
	"testing"

	"github.com/parametriclab/nodeflow/pkg/graph"
)

func testReg(typeName, display, category string) Registration {
	return Registration{
		TypeName:    typeName,
		DisplayName: display,
		Category:    category,
		New: func() *graph.Node {
			return graph.NewNode(typeName, nil, nil, nil)
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	for _, reg := range []Registration{
		testReg("math/add", "Add", "Math"),
		testReg("math/number", "Number", "Math"),
		testReg("geometry/point", "Point", "Geometry"),
		testReg("lists/range", "Range", "Lists"),
	} {
		if err := r.Register(reg); err != nil {
			t.Fatalf("Register(%s): %v", reg.TypeName, err)
		}
	}
	return r
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		reg     Registration
		wantErr error
	}{
		{
			name: "Valid",
			reg:  testReg("math/add", "Add", "Math"),
		},
		{
			name:    "MissingTypeName",
			reg:     Registration{New: func() *graph.Node { return nil }},
			wantErr: ErrInvalidRegistration,
		},
		{
			name:    "MissingConstructor",
			reg:     Registration{TypeName: "math/add"},
			wantErr: ErrInvalidRegistration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			err := r.Register(tt.reg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Register: err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := New()
	if err := r.Register(testReg("math/add", "Add", "Math")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	err := r.Register(testReg("math/add", "Add Again", "Math"))
	if !errors.Is(err, ErrDuplicateType) {
		t.Fatalf("Register duplicate: err = %v, want ErrDuplicateType", err)
	}
	if len(r.Types()) != 1 {
		t.Errorf("Types = %d entries, want 1", len(r.Types()))
	}
}

func TestCreate(t *testing.T) {
	r := testRegistry(t)

	a, err := r.Create("math/add")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.TypeName() != "math/add" {
		t.Errorf("TypeName = %q, want math/add", a.TypeName())
	}
	if a.ID() == "" {
		t.Error("Create left the node without an id")
	}

	b, err := r.Create("math/add")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID() == b.ID() {
		t.Errorf("two creations share id %q", a.ID())
	}

	if _, err := r.Create("nope/missing"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Create unknown: err = %v, want ErrUnknownType", err)
	}
}

func TestSearch(t *testing.T) {
	r := testRegistry(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "ByTypeName",
			query: "add",
			want:  []string{"math/add"},
		},
		{
			name:  "CaseInsensitiveDisplayName",
			query: "NUM",
			want:  []string{"math/number"},
		},
		{
			name:  "ByCategoryText",
			query: "geo",
			want:  []string{"geometry/point"},
		},
		{
			name:  "EmptyMatchesAll",
			query: "",
			want:  []string{"math/add", "math/number", "geometry/point", "lists/range"},
		},
		{
			name:  "NoMatch",
			query: "extrude",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Search(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %d results, want %d", tt.query, len(got), len(tt.want))
			}
			for i, reg := range got {
				if reg.TypeName != tt.want[i] {
					t.Errorf("result %d = %s, want %s", i, reg.TypeName, tt.want[i])
				}
			}
		})
	}
}

func TestByCategory(t *testing.T) {
	r := testRegistry(t)

	math := r.ByCategory("Math")
	if len(math) != 2 || math[0].TypeName != "math/add" || math[1].TypeName != "math/number" {
		t.Errorf("ByCategory(Math) = %v", math)
	}
	if got := r.ByCategory("Plumbing"); got != nil {
		t.Errorf("ByCategory(Plumbing) = %v, want nil", got)
	}
}

func TestCategories(t *testing.T) {
	r := testRegistry(t)

	want := []string{"Geometry", "Lists", "Math"}
	got := r.Categories()
	if len(got) != len(want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", got, want)
		}
	}
}
