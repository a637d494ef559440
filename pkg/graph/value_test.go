package graph

import (
	"errors"
	"testing"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b DataType
		want bool
	}{
		{name: "ExactMatch", a: TypeNumber, b: TypeNumber, want: true},
		{name: "Mismatch", a: TypeNumber, b: TypePoint3D, want: false},
		{name: "AnySource", a: TypeAny, b: TypeGeometry, want: true},
		{name: "AnyTarget", a: TypeFace, b: TypeAny, want: true},
		{name: "AnyBoth", a: TypeAny, b: TypeAny, want: true},
		{name: "ReferenceMismatch", a: TypeFace, b: TypeEdge, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.a, tt.b); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDataTypeIsReference(t *testing.T) {
	refs := []DataType{TypeGeometry, TypeFace, TypeEdge, TypeSketchRef, TypeWorkPlane, TypeProfile}
	for _, dt := range refs {
		if !dt.IsReference() {
			t.Errorf("%s.IsReference() = false, want true", dt)
		}
	}
	for _, dt := range []DataType{TypeAny, TypeNumber, TypePoint3D, TypeList} {
		if dt.IsReference() {
			t.Errorf("%s.IsReference() = true, want false", dt)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	if got := TypePoint3D.String(); got != "Point3D" {
		t.Errorf("String = %q, want Point3D", got)
	}
	if got := DataType(99).String(); got != "DataType(99)" {
		t.Errorf("String = %q, want DataType(99)", got)
	}
}

func TestValueFailSoftAccessors(t *testing.T) {
	n := Number(2.5)
	p := Point(1, 2, 3)
	l := List(Number(1), Number(2))
	r := Ref(TypeGeometry, "handle")

	if got := n.AsNumber(); got != 2.5 {
		t.Errorf("AsNumber = %g, want 2.5", got)
	}
	if got := p.AsNumber(); got != 0 {
		t.Errorf("AsNumber on a point = %g, want 0", got)
	}
	if got := n.AsPoint(); got != (Point3D{}) {
		t.Errorf("AsPoint on a number = %v, want origin", got)
	}
	if got := p.AsPoint(); got != (Point3D{X: 1, Y: 2, Z: 3}) {
		t.Errorf("AsPoint = %v", got)
	}
	if got := l.AsList(); len(got) != 2 {
		t.Errorf("AsList = %v, want 2 items", got)
	}
	if got := n.AsList(); got != nil {
		t.Errorf("AsList on a number = %v, want nil", got)
	}
	if got := r.AsRef(); got != "handle" {
		t.Errorf("AsRef = %v, want handle", got)
	}
	if got := n.AsRef(); got != nil {
		t.Errorf("AsRef on a number = %v, want nil", got)
	}
	if got := Nil.AsNumber(); got != 0 {
		t.Errorf("AsNumber on Nil = %g, want 0", got)
	}
}

func TestValueStrictAccessors(t *testing.T) {
	if got, err := Number(4).Number(); err != nil || got != 4 {
		t.Errorf("Number() = %g, %v", got, err)
	}
	if _, err := Point(1, 2, 3).Number(); !errors.Is(err, ErrValueKind) {
		t.Errorf("Number on a point: err = %v, want ErrValueKind", err)
	}
	if _, err := Nil.Number(); !errors.Is(err, ErrValueKind) {
		t.Errorf("Number on Nil: err = %v, want ErrValueKind", err)
	}
	if got, err := Point(1, 2, 3).Point(); err != nil || got.Z != 3 {
		t.Errorf("Point() = %v, %v", got, err)
	}
	if _, err := Number(1).List(); !errors.Is(err, ErrValueKind) {
		t.Errorf("List on a number: err = %v, want ErrValueKind", err)
	}
	if got, err := Ref(TypeFace, 7).Handle(TypeFace); err != nil || got != 7 {
		t.Errorf("Handle(Face) = %v, %v", got, err)
	}
	if _, err := Ref(TypeFace, 7).Handle(TypeEdge); !errors.Is(err, ErrValueKind) {
		t.Errorf("Handle with wrong kind: err = %v, want ErrValueKind", err)
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{v: Nil, want: "nil"},
		{v: Number(2.5), want: "2.5"},
		{v: Point(1, 0, -1), want: "(1, 0, -1)"},
		{v: List(Number(1), Number(2), Number(3)), want: "[3 items]"},
		{v: Ref(TypeGeometry, struct{}{}), want: "<Geometry>"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestValueInterface(t *testing.T) {
	if got := Number(4).Interface(); got != 4.0 {
		t.Errorf("Interface on a number = %v, want 4", got)
	}
	pt, ok := Point(1, 2, 3).Interface().([]float64)
	if !ok || len(pt) != 3 || pt[2] != 3 {
		t.Errorf("Interface on a point = %v, want [1 2 3]", pt)
	}
	items, ok := List(Number(1), Point(0, 0, 1)).Interface().([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("Interface on a list = %v", items)
	}
	if items[0] != 1.0 {
		t.Errorf("list element 0 = %v, want 1", items[0])
	}
	if got := Ref(TypeGeometry, struct{}{}).Interface(); got != nil {
		t.Errorf("Interface on a reference = %v, want nil", got)
	}
	if got := Nil.Interface(); got != nil {
		t.Errorf("Interface on Nil = %v, want nil", got)
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		typ  DataType
		raw  any
		want func(t *testing.T, v Value)
	}{
		{
			name: "NumberFromFloat",
			typ:  TypeNumber,
			raw:  float64(2.5),
			want: wantNumber(2.5),
		},
		{
			name: "NumberFromInt",
			typ:  TypeNumber,
			raw:  int(7),
			want: wantNumber(7),
		},
		{
			name: "NumberFromString",
			typ:  TypeNumber,
			raw:  "3.25",
			want: wantNumber(3.25),
		},
		{
			name: "NumberFromGarbage",
			typ:  TypeNumber,
			raw:  "wide",
			want: wantNil,
		},
		{
			name: "PointFromAnySlice",
			typ:  TypePoint3D,
			raw:  []any{float64(1), float64(2), float64(3)},
			want: wantPoint(Point3D{X: 1, Y: 2, Z: 3}),
		},
		{
			name: "PointFromFloatSlice",
			typ:  TypePoint3D,
			raw:  []float64{4, 5, 6},
			want: wantPoint(Point3D{X: 4, Y: 5, Z: 6}),
		},
		{
			name: "PointWrongLength",
			typ:  TypePoint3D,
			raw:  []any{float64(1), float64(2)},
			want: wantNil,
		},
		{
			name: "ListElementWise",
			typ:  TypeList,
			raw:  []any{float64(1), "2", []any{float64(0), float64(0), float64(1)}},
			want: func(t *testing.T, v Value) {
				items := v.AsList()
				if len(items) != 3 {
					t.Fatalf("list = %v, want 3 items", items)
				}
				if items[0].AsNumber() != 1 || items[1].AsNumber() != 2 {
					t.Errorf("numeric elements = %v, %v", items[0], items[1])
				}
				if items[2].Kind() != TypePoint3D {
					t.Errorf("element 2 kind = %s, want Point3D", items[2].Kind())
				}
			},
		},
		{
			name: "AnyInfersPointBeforeList",
			typ:  TypeAny,
			raw:  []any{float64(1), float64(2), float64(3)},
			want: wantPoint(Point3D{X: 1, Y: 2, Z: 3}),
		},
		{
			name: "AnyInfersNumber",
			typ:  TypeAny,
			raw:  int64(12),
			want: wantNumber(12),
		},
		{
			name: "AnyInfersList",
			typ:  TypeAny,
			raw:  []any{float64(1), float64(2)},
			want: func(t *testing.T, v Value) {
				if v.Kind() != TypeList || len(v.AsList()) != 2 {
					t.Errorf("value = %v, want a 2-item list", v)
				}
			},
		},
		{
			name: "NilRaw",
			typ:  TypeNumber,
			raw:  nil,
			want: wantNil,
		},
		{
			name: "ReferenceKindNeverCoerces",
			typ:  TypeGeometry,
			raw:  "handle-id",
			want: wantNil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, Coerce(tt.typ, tt.raw))
		})
	}
}

func wantNumber(n float64) func(*testing.T, Value) {
	return func(t *testing.T, v Value) {
		t.Helper()
		if v.Kind() != TypeNumber || v.AsNumber() != n {
			t.Errorf("value = %v, want Number %g", v, n)
		}
	}
}

func wantPoint(p Point3D) func(*testing.T, Value) {
	return func(t *testing.T, v Value) {
		t.Helper()
		if v.Kind() != TypePoint3D || v.AsPoint() != p {
			t.Errorf("value = %v, want Point %v", v, p)
		}
	}
}

func wantNil(t *testing.T, v Value) {
	t.Helper()
	if !v.IsNil() {
		t.Errorf("value = %v, want Nil", v)
	}
}
