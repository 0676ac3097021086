// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// The shapes in this file are write-only conveniences. WKT has no keyword for
// them, so they are emitted as the equivalent POLYGON or LINESTRING; parsing
// never produces them and they are not part of the Geometry union.

// Rect is an axis-aligned rectangle given by its minimum and maximum corners.
// It is written as a POLYGON with a single closed 5-point ring. Only XY
// rectangles can be written; any other corner arity is an error.
type Rect[T constraints.Float] struct {
	Min, Max Coord[T]
}

// MarshalWKT writes the rectangle as a closed POLYGON ring, winding from the
// minimum corner counterclockwise.
func (r Rect[T]) MarshalWKT() (string, error) {
	if len(r.Min) != 2 || len(r.Max) != 2 {
		return "", errors.Wrapf(ErrDimension, "only XY rectangles can be written")
	}
	ring := []Coord[T]{
		{r.Min[0], r.Min[1]},
		{r.Max[0], r.Min[1]},
		{r.Max[0], r.Max[1]},
		{r.Min[0], r.Max[1]},
		{r.Min[0], r.Min[1]},
	}
	dst := append([]byte(nil), "POLYGON("...)
	dst, err := appendCoordSeq(dst, ring, XY)
	if err != nil {
		return "", err
	}
	return string(append(dst, ')')), nil
}

// Triangle is a three-corner shape written as a POLYGON whose single ring
// repeats the first corner to close.
type Triangle[T constraints.Float] struct {
	Dim     Dim
	A, B, C Coord[T]
}

func (t Triangle[T]) MarshalWKT() (string, error) {
	dst, _, err := appendHeader(nil, KindPolygon, t.Dim, false)
	if err != nil {
		return "", err
	}
	dst = append(dst, '(')
	dst, err = appendCoordSeq(dst, []Coord[T]{t.A, t.B, t.C, t.A}, t.Dim)
	if err != nil {
		return "", err
	}
	return string(append(dst, ')')), nil
}

// Line is a two-point segment written as a LINESTRING.
type Line[T constraints.Float] struct {
	Dim        Dim
	Start, End Coord[T]
}

func (l Line[T]) MarshalWKT() (string, error) {
	dst, _, err := appendHeader(nil, KindLineString, l.Dim, false)
	if err != nil {
		return "", err
	}
	dst, err = appendCoordSeq(dst, []Coord[T]{l.Start, l.End}, l.Dim)
	if err != nil {
		return "", err
	}
	return string(dst), nil
}
