// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// ErrDimension is returned when the writer is handed a geometry whose
// physical dimensionality it cannot express: a Dim outside the four
// enumerated values, or a coordinate whose component count does not match
// its geometry's stride.
var ErrDimension = errors.New("unsupported coordinate dimensionality")

// Marshal writes g as canonical WKT. Keywords are upper case with a Z/M/ZM
// suffix where applicable, EMPTY bodies use the EMPTY keyword rather than
// empty parens, and no whitespace follows commas. Numeric components use the
// element type's shortest exact decimal form.
func Marshal(g Geometry[float64]) (string, error) {
	return MarshalNum[float64](g)
}

// MarshalNum is Marshal for an arbitrary numeric element type. The type
// parameter cannot be inferred from the interface argument, so callers
// instantiate it explicitly.
func MarshalNum[T constraints.Float](g Geometry[T]) (string, error) {
	dst, err := appendGeometry[T](nil, g, 0)
	if err != nil {
		return "", err
	}
	return string(dst), nil
}

func appendGeometry[T constraints.Float](dst []byte, g Geometry[T], depth int) ([]byte, error) {
	if depth > MaxDepth {
		return nil, errors.Newf("geometry nesting exceeds the maximum of %d levels", MaxDepth)
	}
	switch g := g.(type) {
	case Point[T]:
		return appendPoint(dst, g)
	case LineString[T]:
		return appendLineString(dst, g)
	case Polygon[T]:
		return appendPolygon(dst, g)
	case MultiPoint[T]:
		return appendMultiPoint(dst, g)
	case MultiLineString[T]:
		return appendMultiLineString(dst, g)
	case MultiPolygon[T]:
		return appendMultiPolygon(dst, g)
	case GeometryCollection[T]:
		return appendGeometryCollection(dst, g, depth)
	default:
		return nil, errors.AssertionFailedf("unknown geometry type %T", g)
	}
}

// appendHeader writes the keyword and dimensionality suffix, or the full
// keyword+EMPTY form when the body is empty. The returned bool reports
// whether a body still needs to be written.
func appendHeader(dst []byte, kind Kind, dim Dim, empty bool) ([]byte, bool, error) {
	if !dim.valid() {
		return nil, false, errors.Wrapf(ErrDimension, "Dim(%d)", int(dim))
	}
	dst = append(dst, kind.String()...)
	dst = append(dst, dim.suffix()...)
	if empty {
		return append(dst, " EMPTY"...), false, nil
	}
	return dst, true, nil
}

func appendPoint[T constraints.Float](dst []byte, g Point[T]) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindPoint, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	dst = append(dst, '(')
	dst, err = appendCoord(dst, g.Coord, g.Dim)
	if err != nil {
		return nil, err
	}
	return append(dst, ')'), nil
}

func appendLineString[T constraints.Float](dst []byte, g LineString[T]) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindLineString, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	return appendCoordSeq(dst, g.Coords, g.Dim)
}

func appendPolygon[T constraints.Float](dst []byte, g Polygon[T]) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindPolygon, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	return appendRings(dst, g.Rings, g.Dim)
}

func appendMultiPoint[T constraints.Float](dst []byte, g MultiPoint[T]) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindMultiPoint, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	dst = append(dst, '(')
	for i, pt := range g.Points {
		if i > 0 {
			dst = append(dst, ',')
		}
		// Points get parens only inside a containing geometry; empty
		// members are written as a bare EMPTY.
		if pt.Empty() {
			dst = append(dst, "EMPTY"...)
			continue
		}
		dst = append(dst, '(')
		dst, err = appendCoord(dst, pt.Coord, g.Dim)
		if err != nil {
			return nil, err
		}
		dst = append(dst, ')')
	}
	return append(dst, ')'), nil
}

func appendMultiLineString[T constraints.Float](dst []byte, g MultiLineString[T]) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindMultiLineString, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	dst = append(dst, '(')
	for i, ls := range g.LineStrings {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = appendRingBody(dst, ls, g.Dim)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ')'), nil
}

func appendMultiPolygon[T constraints.Float](dst []byte, g MultiPolygon[T]) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindMultiPolygon, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	dst = append(dst, '(')
	for i, poly := range g.Polygons {
		if i > 0 {
			dst = append(dst, ',')
		}
		if poly.Empty() {
			dst = append(dst, "EMPTY"...)
			continue
		}
		dst, err = appendRings(dst, poly.Rings, g.Dim)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ')'), nil
}

func appendGeometryCollection[T constraints.Float](
	dst []byte, g GeometryCollection[T], depth int,
) ([]byte, error) {
	dst, more, err := appendHeader(dst, KindGeometryCollection, g.Dim, g.Empty())
	if err != nil || !more {
		return dst, err
	}
	dst = append(dst, '(')
	for i, member := range g.Geoms {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = appendGeometry[T](dst, member, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ')'), nil
}

// appendRings writes a parenthesized list of ring bodies.
func appendRings[T constraints.Float](dst []byte, rings []LineString[T], dim Dim) ([]byte, error) {
	var err error
	dst = append(dst, '(')
	for i, ring := range rings {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = appendRingBody(dst, ring, dim)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ')'), nil
}

// appendRingBody writes one coordinate sequence in its own parens, or EMPTY
// when it has no coordinates.
func appendRingBody[T constraints.Float](dst []byte, ls LineString[T], dim Dim) ([]byte, error) {
	if ls.Empty() {
		return append(dst, "EMPTY"...), nil
	}
	return appendCoordSeq(dst, ls.Coords, dim)
}

func appendCoordSeq[T constraints.Float](dst []byte, coords []Coord[T], dim Dim) ([]byte, error) {
	var err error
	dst = append(dst, '(')
	for i, c := range coords {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst, err = appendCoord(dst, c, dim)
		if err != nil {
			return nil, err
		}
	}
	return append(dst, ')'), nil
}

func appendCoord[T constraints.Float](dst []byte, c Coord[T], dim Dim) ([]byte, error) {
	if len(c) != dim.Stride() {
		return nil, errors.Wrapf(ErrDimension,
			"coordinate has %d components but %s expects %d", len(c), dim, dim.Stride())
	}
	for i, v := range c {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = appendNum(dst, v)
	}
	return dst, nil
}

func appendNum[T constraints.Float](dst []byte, v T) []byte {
	return strconv.AppendFloat(dst, float64(v), 'f', -1, floatBitSize[T]())
}
