// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Kind enumerates the seven WKT geometry kinds.
type Kind int

const (
	KindPoint Kind = iota + 1
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "POINT"
	case KindLineString:
		return "LINESTRING"
	case KindPolygon:
		return "POLYGON"
	case KindMultiPoint:
		return "MULTIPOINT"
	case KindMultiLineString:
		return "MULTILINESTRING"
	case KindMultiPolygon:
		return "MULTIPOLYGON"
	case KindGeometryCollection:
		return "GEOMETRYCOLLECTION"
	default:
		panic(fmt.Sprintf("unknown Kind %d", int(k)))
	}
}

// Coord is a single parsed coordinate. Its length equals the stride of the
// owning geometry's Dim: x, y, then z and/or m in that order.
type Coord[T constraints.Float] []T

// Geometry is the parsed representation of a WKT geometry. It is a closed
// union over the seven kinds; no other type can implement it.
//
// A Geometry is built once by a parse call and not mutated afterwards.
type Geometry[T constraints.Float] interface {
	// Kind reports which of the seven kinds this geometry is.
	Kind() Kind
	// Dimension reports the coordinate dimensionality of this geometry.
	Dimension() Dim
	// Empty reports whether the geometry has no coordinate data, i.e.
	// whether it would be written using the EMPTY keyword.
	Empty() bool

	isGeometry()
}

// Point wraps at most one coordinate. A nil Coord is POINT EMPTY.
type Point[T constraints.Float] struct {
	Dim   Dim
	Coord Coord[T]
}

// LineString wraps an ordered coordinate sequence.
type LineString[T constraints.Float] struct {
	Dim    Dim
	Coords []Coord[T]
}

// Polygon wraps an ordered sequence of rings. Ring 0 is the exterior and the
// remainder are holes. Ring closure is not verified.
type Polygon[T constraints.Float] struct {
	Dim   Dim
	Rings []LineString[T]
}

// MultiPoint wraps an ordered sequence of points.
type MultiPoint[T constraints.Float] struct {
	Dim    Dim
	Points []Point[T]
}

// MultiLineString wraps an ordered sequence of line strings.
type MultiLineString[T constraints.Float] struct {
	Dim         Dim
	LineStrings []LineString[T]
}

// MultiPolygon wraps an ordered sequence of polygons.
type MultiPolygon[T constraints.Float] struct {
	Dim      Dim
	Polygons []Polygon[T]
}

// GeometryCollection wraps an ordered sequence of geometries of any kind,
// including nested collections.
//
// Members resolve their own dimensionality from their own headers; a
// collection header's Z/M/ZM marker is not forced onto members, and the tree
// stores heterogeneous member dimensionalities as parsed.
type GeometryCollection[T constraints.Float] struct {
	Dim   Dim
	Geoms []Geometry[T]
}

func (g Point[T]) Kind() Kind              { return KindPoint }
func (g LineString[T]) Kind() Kind         { return KindLineString }
func (g Polygon[T]) Kind() Kind            { return KindPolygon }
func (g MultiPoint[T]) Kind() Kind         { return KindMultiPoint }
func (g MultiLineString[T]) Kind() Kind    { return KindMultiLineString }
func (g MultiPolygon[T]) Kind() Kind       { return KindMultiPolygon }
func (g GeometryCollection[T]) Kind() Kind { return KindGeometryCollection }

func (g Point[T]) Dimension() Dim              { return g.Dim }
func (g LineString[T]) Dimension() Dim         { return g.Dim }
func (g Polygon[T]) Dimension() Dim            { return g.Dim }
func (g MultiPoint[T]) Dimension() Dim         { return g.Dim }
func (g MultiLineString[T]) Dimension() Dim    { return g.Dim }
func (g MultiPolygon[T]) Dimension() Dim       { return g.Dim }
func (g GeometryCollection[T]) Dimension() Dim { return g.Dim }

func (g Point[T]) Empty() bool              { return g.Coord == nil }
func (g LineString[T]) Empty() bool         { return len(g.Coords) == 0 }
func (g Polygon[T]) Empty() bool            { return len(g.Rings) == 0 }
func (g MultiPoint[T]) Empty() bool         { return len(g.Points) == 0 }
func (g MultiLineString[T]) Empty() bool    { return len(g.LineStrings) == 0 }
func (g MultiPolygon[T]) Empty() bool       { return len(g.Polygons) == 0 }
func (g GeometryCollection[T]) Empty() bool { return len(g.Geoms) == 0 }

func (Point[T]) isGeometry()              {}
func (LineString[T]) isGeometry()         {}
func (Polygon[T]) isGeometry()            {}
func (MultiPoint[T]) isGeometry()         {}
func (MultiLineString[T]) isGeometry()    {}
func (MultiPolygon[T]) isGeometry()       {}
func (GeometryCollection[T]) isGeometry() {}

func (g Point[T]) String() string              { return geometryString[T](g) }
func (g LineString[T]) String() string         { return geometryString[T](g) }
func (g Polygon[T]) String() string            { return geometryString[T](g) }
func (g MultiPoint[T]) String() string         { return geometryString[T](g) }
func (g MultiLineString[T]) String() string    { return geometryString[T](g) }
func (g MultiPolygon[T]) String() string       { return geometryString[T](g) }
func (g GeometryCollection[T]) String() string { return geometryString[T](g) }

func geometryString[T constraints.Float](g Geometry[T]) string {
	s, err := MarshalNum[T](g)
	if err != nil {
		return fmt.Sprintf("<invalid geometry: %v>", err)
	}
	return s
}
