package graph

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrValueKind is returned by the strict [Value] accessors ([Value.Number],
// [Value.Point], [Value.List], [Value.Handle]) when the value's kind does not
// match the requested type. Node kinds should surface it as a node-local
// error rather than silently substituting a fallback.
var ErrValueKind = errors.New("value kind mismatch")

// DataType tags the kind of value a port carries. [Graph.Connect] requires an
// exact match between the source and target port types unless either side is
// [TypeAny], the wildcard.
type DataType int

const (
	// TypeAny is the wildcard type, compatible with every other type on
	// either side of a connection.
	TypeAny DataType = iota
	// TypeNumber is a scalar floating-point value.
	TypeNumber
	// TypePoint3D is a 3D coordinate triple.
	TypePoint3D
	// TypeList is an ordered sequence of values.
	TypeList
	// TypeGeometry is an opaque handle to a solid or surface body.
	TypeGeometry
	// TypeFace is an opaque handle to a single face of a body.
	TypeFace
	// TypeEdge is an opaque handle to a single edge of a body.
	TypeEdge
	// TypeSketchRef is an opaque handle to a sketch.
	TypeSketchRef
	// TypeWorkPlane is an opaque handle to a construction plane.
	TypeWorkPlane
	// TypeProfile is an opaque handle to a closed sketch profile.
	TypeProfile
)

var dataTypeNames = map[DataType]string{
	TypeAny:       "Any",
	TypeNumber:    "Number",
	TypePoint3D:   "Point3D",
	TypeList:      "List",
	TypeGeometry:  "Geometry",
	TypeFace:      "Face",
	TypeEdge:      "Edge",
	TypeSketchRef: "SketchRef",
	TypeWorkPlane: "WorkPlane",
	TypeProfile:   "Profile",
}

// String returns the display name of the type ("Number", "Point3D", ...).
func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// IsReference reports whether the type is one of the opaque modeling
// reference kinds (Geometry, Face, Edge, SketchRef, WorkPlane, Profile).
// Reference values carry handles owned by the execution environment and are
// never serialized.
func (t DataType) IsReference() bool {
	switch t {
	case TypeGeometry, TypeFace, TypeEdge, TypeSketchRef, TypeWorkPlane, TypeProfile:
		return true
	}
	return false
}

// Compatible reports whether a value of type a may flow into a port of type
// b. Types are compatible when they match exactly or when either side is
// [TypeAny].
func Compatible(a, b DataType) bool {
	return a == b || a == TypeAny || b == TypeAny
}

// Point3D is a coordinate triple. The zero value is the origin.
type Point3D struct {
	X, Y, Z float64
}

// String formats the point as "(x, y, z)".
func (p Point3D) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

// Value is a tagged union over the port data types. The zero value is Nil,
// the absent value: a port holding Nil falls back to its default.
//
// Values are immutable once constructed. Use the constructors ([Number],
// [Point], [List], [Ref]) to build them, the fail-soft As* accessors for
// display and loosely-typed consumers, and the strict accessors inside node
// computations where a kind mismatch should become a node-local error.
type Value struct {
	kind DataType
	set  bool
	num  float64
	pt   Point3D
	list []Value
	ref  any
}

// Nil is the absent value. It has no kind and no payload; ports holding Nil
// report their default as the effective value.
var Nil = Value{}

// Number returns a TypeNumber value.
func Number(n float64) Value {
	return Value{kind: TypeNumber, set: true, num: n}
}

// Point returns a TypePoint3D value.
func Point(x, y, z float64) Value {
	return Value{kind: TypePoint3D, set: true, pt: Point3D{X: x, Y: y, Z: z}}
}

// PointOf returns a TypePoint3D value wrapping an existing [Point3D].
func PointOf(p Point3D) Value {
	return Value{kind: TypePoint3D, set: true, pt: p}
}

// List returns a TypeList value holding the given items in order.
func List(items ...Value) Value {
	return Value{kind: TypeList, set: true, list: items}
}

// Ref returns a value of one of the opaque reference kinds wrapping a handle
// owned by the execution environment. The engine never inspects the handle.
func Ref(kind DataType, handle any) Value {
	return Value{kind: kind, set: true, ref: handle}
}

// Kind returns the value's data type tag. Nil reports [TypeAny].
func (v Value) Kind() DataType { return v.kind }

// IsNil reports whether the value is absent.
func (v Value) IsNil() bool { return !v.set }

// AsNumber returns the scalar payload, or 0 if the value is not a Number.
// This accessor is fail-soft so loosely-typed upstream data never halts an
// unrelated computation; use [Value.Number] where a mismatch must surface.
func (v Value) AsNumber() float64 {
	if v.kind == TypeNumber && v.set {
		return v.num
	}
	return 0
}

// AsPoint returns the point payload, or the origin if the value is not a
// Point3D. Fail-soft counterpart of [Value.Point].
func (v Value) AsPoint() Point3D {
	if v.kind == TypePoint3D && v.set {
		return v.pt
	}
	return Point3D{}
}

// AsList returns the list payload, or nil if the value is not a List.
// Fail-soft counterpart of [Value.List].
func (v Value) AsList() []Value {
	if v.kind == TypeList && v.set {
		return v.list
	}
	return nil
}

// AsRef returns the opaque handle, or nil if the value is not one of the
// reference kinds. Fail-soft counterpart of [Value.Handle].
func (v Value) AsRef() any {
	if v.kind.IsReference() && v.set {
		return v.ref
	}
	return nil
}

// Number returns the scalar payload, or [ErrValueKind] if the value is not a
// Number.
func (v Value) Number() (float64, error) {
	if v.kind != TypeNumber || !v.set {
		return 0, v.kindError(TypeNumber)
	}
	return v.num, nil
}

// Point returns the point payload, or [ErrValueKind] if the value is not a
// Point3D.
func (v Value) Point() (Point3D, error) {
	if v.kind != TypePoint3D || !v.set {
		return Point3D{}, v.kindError(TypePoint3D)
	}
	return v.pt, nil
}

// List returns the list payload, or [ErrValueKind] if the value is not a
// List.
func (v Value) List() ([]Value, error) {
	if v.kind != TypeList || !v.set {
		return nil, v.kindError(TypeList)
	}
	return v.list, nil
}

// Handle returns the opaque handle of a reference value, or [ErrValueKind]
// if the value is not of the requested reference kind.
func (v Value) Handle(kind DataType) (any, error) {
	if v.kind != kind || !v.set {
		return nil, v.kindError(kind)
	}
	return v.ref, nil
}

func (v Value) kindError(want DataType) error {
	if !v.set {
		return fmt.Errorf("%w: have no value, want %s", ErrValueKind, want)
	}
	return fmt.Errorf("%w: have %s, want %s", ErrValueKind, v.kind, want)
}

// String formats the value for display and log messages.
func (v Value) String() string {
	if !v.set {
		return "nil"
	}
	switch v.kind {
	case TypeNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case TypePoint3D:
		return v.pt.String()
	case TypeList:
		return fmt.Sprintf("[%d items]", len(v.list))
	default:
		return fmt.Sprintf("<%s>", v.kind)
	}
}

// Interface converts the value into a JSON-friendly representation for the
// node parameter contract: Numbers become float64, Point3D becomes a
// [x, y, z] slice, Lists convert element-wise. Nil and the reference kinds
// (whose handles are owned by the execution environment) convert to nil and
// are omitted from parameter maps.
func (v Value) Interface() any {
	if !v.set {
		return nil
	}
	switch v.kind {
	case TypeNumber:
		return v.num
	case TypePoint3D:
		return []float64{v.pt.X, v.pt.Y, v.pt.Z}
	case TypeList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.Interface()
		}
		return items
	default:
		return nil
	}
}

// Coerce converts a raw serialized value into a [Value] of the declared port
// type, best-effort. Numeric values promote across int and float widths and
// parse from strings; points accept [x, y, z] slices; lists convert
// element-wise with inferred element kinds. Anything that cannot be
// converted, including every reference kind, coerces to Nil rather than
// failing, so a loaded parameter never aborts the surrounding load.
func Coerce(t DataType, raw any) Value {
	if raw == nil {
		return Nil
	}
	switch t {
	case TypeNumber:
		if n, ok := toFloat(raw); ok {
			return Number(n)
		}
	case TypePoint3D:
		if p, ok := toPoint(raw); ok {
			return PointOf(p)
		}
	case TypeList:
		if items, ok := toSlice(raw); ok {
			list := make([]Value, 0, len(items))
			for _, item := range items {
				list = append(list, infer(item))
			}
			return List(list...)
		}
	case TypeAny:
		return infer(raw)
	}
	return Nil
}

// infer builds a Value from a raw serialized value by sniffing its shape:
// numerics become Numbers, three-element numeric slices become Points, other
// slices become Lists.
func infer(raw any) Value {
	if p, ok := toPoint(raw); ok {
		return PointOf(p)
	}
	if n, ok := toFloat(raw); ok {
		return Number(n)
	}
	if items, ok := toSlice(raw); ok {
		list := make([]Value, 0, len(items))
		for _, item := range items {
			list = append(list, infer(item))
		}
		return List(list...)
	}
	return Nil
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func toPoint(raw any) (Point3D, bool) {
	items, ok := toSlice(raw)
	if !ok || len(items) != 3 {
		return Point3D{}, false
	}
	coords := make([]float64, 3)
	for i, item := range items {
		n, ok := toFloat(item)
		if !ok {
			return Point3D{}, false
		}
		coords[i] = n
	}
	return Point3D{X: coords[0], Y: coords[1], Z: coords[2]}, true
}

func toSlice(raw any) ([]any, bool) {
	switch s := raw.(type) {
	case []any:
		return s, true
	case []float64:
		items := make([]any, len(s))
		for i, n := range s {
			items[i] = n
		}
		return items, true
	}
	return nil, false
}
