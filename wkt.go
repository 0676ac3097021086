// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

// Package wkt reads and writes the Well-Known Text (WKT) geometry
// interchange format.
//
// Parse turns WKT text into a Geometry tree; Marshal turns a tree back into
// canonical text. The tree is generic over the numeric element type, with
// float64 as the common case. Keywords are matched case-insensitively, the
// Z/M/ZM markers may be separate words or fused into the keyword (POINT Z or
// POINTZ), and EMPTY is accepted at every nesting level. Ring closure and
// other topological validity is not checked, and no coordinate reference
// system handling is performed.
package wkt

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/constraints"
)

// Parse parses a WKT string into a float64 geometry tree. The whole input
// must be a single geometry; trailing text after it is an error.
func Parse(s string) (Geometry[float64], error) {
	return ParseNum[float64](s)
}

// ParseNum is Parse for an arbitrary numeric element type. Numeric literals
// are parsed at the element type's precision.
func ParseNum[T constraints.Float](s string) (Geometry[T], error) {
	p := &parser[T]{lx: newLexer[T](s)}
	g, err := p.parseGeometry()
	if err != nil {
		return nil, err
	}
	tok, err := p.lx.next()
	if err != nil {
		return nil, err
	}
	if tok.typ != tokEOF {
		return nil, p.syntaxError("unexpected text after complete geometry", tok.pos)
	}
	return g, nil
}

// GeometryType constrains a conversion target to one of the seven concrete
// geometry types.
type GeometryType[T constraints.Float] interface {
	Point[T] | LineString[T] | Polygon[T] | MultiPoint[T] |
		MultiLineString[T] | MultiPolygon[T] | GeometryCollection[T]
}

// ParseInto parses s and requires the result to be the concrete type G. A
// GEOMETRYCOLLECTION with exactly one member of the requested type converts
// to that member; any other member count is an error.
func ParseInto[G GeometryType[T], T constraints.Float](s string) (G, error) {
	var zero G
	g, err := ParseNum[T](s)
	if err != nil {
		return zero, err
	}
	if out, ok := any(g).(G); ok {
		return out, nil
	}
	if gc, ok := g.(GeometryCollection[T]); ok {
		if len(gc.Geoms) != 1 {
			return zero, errors.Newf(
				"cannot convert GEOMETRYCOLLECTION with %d members to %s",
				len(gc.Geoms), kindOf[T, G]())
		}
		if out, ok := any(gc.Geoms[0]).(G); ok {
			return out, nil
		}
		g = gc.Geoms[0]
	}
	return zero, errors.Newf("mismatched geometry: expected %s, found %s", kindOf[T, G](), g.Kind())
}

func kindOf[T constraints.Float, G GeometryType[T]]() Kind {
	var zero G
	return any(zero).(Geometry[T]).Kind()
}

// InferType reads only the header of a WKT string: the geometry keyword and
// its optional dimensionality marker. It does not touch the body, so it is
// cheap on large inputs and reports XY for headers whose body would be
// needed to know better (an unmarked EMPTY, for instance).
func InferType(s string) (Kind, Dim, error) {
	p := &parser[float64]{lx: newLexer[float64](s)}
	tok, err := p.lx.next()
	if err != nil {
		return 0, 0, err
	}
	if tok.typ != tokWord {
		return 0, 0, p.syntaxError("expected a geometry keyword", tok.pos)
	}
	ki, ok := keywords[strings.ToUpper(tok.word)]
	if !ok {
		return 0, 0, p.syntaxError(fmt.Sprintf("unrecognized geometry keyword %q", tok.word), tok.pos)
	}
	dim, err := p.headerDim(ki)
	if err != nil {
		return 0, 0, err
	}
	return ki.kind, dim, nil
}
