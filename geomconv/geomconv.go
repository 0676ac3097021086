// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

// Package geomconv converts between the wkt geometry tree and the
// github.com/twpayne/go-geom representation, and encodes go-geom values as
// WKT directly without building the intermediate tree.
package geomconv

import (
	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"

	"github.com/TimTheBig/wkt"
)

// Unmarshal parses a WKT string into a go-geom geometry.
func Unmarshal(s string) (geom.T, error) {
	g, err := wkt.Parse(s)
	if err != nil {
		return nil, err
	}
	return ToGeom(g)
}

// ToGeom converts a parsed geometry tree into its go-geom equivalent.
//
// go-geom stores one coordinate layout per geometry, so a
// GEOMETRYCOLLECTION whose members diverge in dimensionality may fail to
// convert even though the tree represents it fine.
func ToGeom(g wkt.Geometry[float64]) (geom.T, error) {
	switch g := g.(type) {
	case wkt.Point[float64]:
		l := layoutForDim(g.Dim)
		if g.Empty() {
			return geom.NewPointEmpty(l), nil
		}
		return geom.NewPointFlat(l, []float64(g.Coord)), nil
	case wkt.LineString[float64]:
		return geom.NewLineStringFlat(layoutForDim(g.Dim), flatCoords(nil, g.Coords)), nil
	case wkt.Polygon[float64]:
		flat, ends := flatRings(g.Rings)
		return geom.NewPolygonFlat(layoutForDim(g.Dim), flat, ends), nil
	case wkt.MultiPoint[float64]:
		var flat []float64
		ends := make([]int, 0, len(g.Points))
		for _, pt := range g.Points {
			flat = append(flat, pt.Coord...)
			ends = append(ends, len(flat))
		}
		return geom.NewMultiPointFlat(
			layoutForDim(g.Dim), flat, geom.NewMultiPointFlatOptionWithEnds(ends)), nil
	case wkt.MultiLineString[float64]:
		flat, ends := flatRings(g.LineStrings)
		return geom.NewMultiLineStringFlat(layoutForDim(g.Dim), flat, ends), nil
	case wkt.MultiPolygon[float64]:
		var flat []float64
		endss := make([][]int, 0, len(g.Polygons))
		for _, poly := range g.Polygons {
			ends := make([]int, 0, len(poly.Rings))
			for _, ring := range poly.Rings {
				flat = flatCoords(flat, ring.Coords)
				ends = append(ends, len(flat))
			}
			endss = append(endss, ends)
		}
		return geom.NewMultiPolygonFlat(layoutForDim(g.Dim), flat, endss), nil
	case wkt.GeometryCollection[float64]:
		gc := geom.NewGeometryCollection()
		for _, member := range g.Geoms {
			t, err := ToGeom(member)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(t); err != nil {
				return nil, errors.Wrap(err, "assembling geometry collection")
			}
		}
		return gc, nil
	default:
		return nil, errors.AssertionFailedf("unknown geometry type %T", g)
	}
}

// FromGeom converts a go-geom geometry into the parsed-tree representation.
func FromGeom(t geom.T) (wkt.Geometry[float64], error) {
	switch g := t.(type) {
	case *geom.Point:
		dim, err := dimForLayout(g.Layout())
		if err != nil {
			return nil, err
		}
		if len(g.FlatCoords()) == 0 {
			return wkt.Point[float64]{Dim: dim}, nil
		}
		return wkt.Point[float64]{Dim: dim, Coord: coordAt(g.FlatCoords(), 0, g.Stride())}, nil
	case *geom.LineString:
		dim, err := dimForLayout(g.Layout())
		if err != nil {
			return nil, err
		}
		return wkt.LineString[float64]{Dim: dim, Coords: unflat(g.FlatCoords(), g.Stride())}, nil
	case *geom.Polygon:
		dim, err := dimForLayout(g.Layout())
		if err != nil {
			return nil, err
		}
		return wkt.Polygon[float64]{Dim: dim, Rings: ringsFromEnds(g.FlatCoords(), g.Ends(), g.Stride(), dim)}, nil
	case *geom.MultiPoint:
		dim, err := dimForLayout(g.Layout())
		if err != nil {
			return nil, err
		}
		mp := wkt.MultiPoint[float64]{Dim: dim}
		for i := 0; i < g.NumPoints(); i++ {
			pt := g.Point(i)
			member := wkt.Point[float64]{Dim: dim}
			if len(pt.FlatCoords()) != 0 {
				member.Coord = coordAt(pt.FlatCoords(), 0, pt.Stride())
			}
			mp.Points = append(mp.Points, member)
		}
		return mp, nil
	case *geom.MultiLineString:
		dim, err := dimForLayout(g.Layout())
		if err != nil {
			return nil, err
		}
		return wkt.MultiLineString[float64]{
			Dim:         dim,
			LineStrings: ringsFromEnds(g.FlatCoords(), g.Ends(), g.Stride(), dim),
		}, nil
	case *geom.MultiPolygon:
		dim, err := dimForLayout(g.Layout())
		if err != nil {
			return nil, err
		}
		mp := wkt.MultiPolygon[float64]{Dim: dim}
		for i := 0; i < g.NumPolygons(); i++ {
			poly := g.Polygon(i)
			mp.Polygons = append(mp.Polygons, wkt.Polygon[float64]{
				Dim:   dim,
				Rings: ringsFromEnds(poly.FlatCoords(), poly.Ends(), poly.Stride(), dim),
			})
		}
		return mp, nil
	case *geom.GeometryCollection:
		gc := wkt.GeometryCollection[float64]{Dim: wkt.XY}
		if dim, err := dimForLayout(g.Layout()); err == nil {
			gc.Dim = dim
		}
		for i := 0; i < g.NumGeoms(); i++ {
			member, err := FromGeom(g.Geom(i))
			if err != nil {
				return nil, err
			}
			gc.Geoms = append(gc.Geoms, member)
		}
		return gc, nil
	default:
		return nil, errors.Newf("unsupported go-geom type %T", t)
	}
}

// Coord extracts the bare coordinate of a point. The tree can represent
// POINT EMPTY but a bare coordinate cannot, so an empty point is an error.
func Coord(p wkt.Point[float64]) (geom.Coord, error) {
	if p.Empty() {
		return nil, errors.New("POINT EMPTY cannot be represented as a bare coordinate")
	}
	return geom.Coord(p.Coord), nil
}

func layoutForDim(d wkt.Dim) geom.Layout {
	switch d {
	case wkt.XY:
		return geom.XY
	case wkt.XYZ:
		return geom.XYZ
	case wkt.XYM:
		return geom.XYM
	case wkt.XYZM:
		return geom.XYZM
	default:
		return geom.NoLayout
	}
}

func dimForLayout(l geom.Layout) (wkt.Dim, error) {
	switch l {
	case geom.XY:
		return wkt.XY, nil
	case geom.XYZ:
		return wkt.XYZ, nil
	case geom.XYM:
		return wkt.XYM, nil
	case geom.XYZM:
		return wkt.XYZM, nil
	default:
		return 0, errors.Newf("unsupported go-geom layout %v", l)
	}
}

func flatCoords(dst []float64, coords []wkt.Coord[float64]) []float64 {
	for _, c := range coords {
		dst = append(dst, c...)
	}
	return dst
}

func flatRings(rings []wkt.LineString[float64]) ([]float64, []int) {
	var flat []float64
	ends := make([]int, 0, len(rings))
	for _, ring := range rings {
		flat = flatCoords(flat, ring.Coords)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

func coordAt(flat []float64, start, stride int) wkt.Coord[float64] {
	c := make(wkt.Coord[float64], stride)
	copy(c, flat[start:start+stride])
	return c
}

func unflat(flat []float64, stride int) []wkt.Coord[float64] {
	if len(flat) == 0 {
		return nil
	}
	coords := make([]wkt.Coord[float64], 0, len(flat)/stride)
	for i := 0; i < len(flat); i += stride {
		coords = append(coords, coordAt(flat, i, stride))
	}
	return coords
}

func ringsFromEnds(flat []float64, ends []int, stride int, dim wkt.Dim) []wkt.LineString[float64] {
	if len(ends) == 0 {
		return nil
	}
	rings := make([]wkt.LineString[float64], 0, len(ends))
	prev := 0
	for _, end := range ends {
		rings = append(rings, wkt.LineString[float64]{
			Dim:    dim,
			Coords: unflat(flat[prev:end], stride),
		})
		prev = end
	}
	return rings
}
