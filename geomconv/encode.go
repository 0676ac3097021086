// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package geomconv

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/twpayne/go-geom"

	"github.com/TimTheBig/wkt"
)

// Marshal encodes a go-geom geometry as canonical WKT, reading it through
// the go-geom accessor surface without building an intermediate tree. The
// output format matches wkt.Marshal.
func Marshal(g geom.T) (string, error) {
	dst, err := appendGeom(nil, g, 0)
	if err != nil {
		return "", err
	}
	return string(dst), nil
}

// MarshalBounds encodes a bounding box as a POLYGON with one closed 5-point
// ring, winding counterclockwise from the minimum corner. Only XY bounds can
// be written; higher-dimensional bounds are an error rather than being
// truncated.
func MarshalBounds(b *geom.Bounds) (string, error) {
	if b.Layout() != geom.XY {
		return "", errors.Wrapf(wkt.ErrDimension, "only XY bounds can be written")
	}
	minX, minY := b.Min(0), b.Min(1)
	maxX, maxY := b.Max(0), b.Max(1)
	flat := []float64{
		minX, minY,
		maxX, minY,
		maxX, maxY,
		minX, maxY,
		minX, minY,
	}
	dst := append([]byte(nil), "POLYGON("...)
	dst = appendFlatSeq(dst, flat, 2)
	return string(append(dst, ')')), nil
}

func appendGeom(dst []byte, g geom.T, depth int) ([]byte, error) {
	if depth > wkt.MaxDepth {
		return nil, errors.Newf("geometry nesting exceeds the maximum of %d levels", wkt.MaxDepth)
	}
	switch g := g.(type) {
	case *geom.Point:
		dst, err := appendKeyword(dst, "POINT", g.Layout())
		if err != nil {
			return nil, err
		}
		if len(g.FlatCoords()) == 0 {
			return append(dst, " EMPTY"...), nil
		}
		dst = append(dst, '(')
		dst = appendFlatCoord(dst, g.FlatCoords(), 0, g.Stride())
		return append(dst, ')'), nil
	case *geom.LineString:
		dst, err := appendKeyword(dst, "LINESTRING", g.Layout())
		if err != nil {
			return nil, err
		}
		if len(g.FlatCoords()) == 0 {
			return append(dst, " EMPTY"...), nil
		}
		return appendFlatSeq(dst, g.FlatCoords(), g.Stride()), nil
	case *geom.Polygon:
		dst, err := appendKeyword(dst, "POLYGON", g.Layout())
		if err != nil {
			return nil, err
		}
		if g.NumLinearRings() == 0 {
			return append(dst, " EMPTY"...), nil
		}
		return appendRingSeq(dst, g.FlatCoords(), g.Ends(), g.Stride()), nil
	case *geom.MultiPoint:
		dst, err := appendKeyword(dst, "MULTIPOINT", g.Layout())
		if err != nil {
			return nil, err
		}
		if g.NumPoints() == 0 {
			return append(dst, " EMPTY"...), nil
		}
		dst = append(dst, '(')
		for i := 0; i < g.NumPoints(); i++ {
			if i > 0 {
				dst = append(dst, ',')
			}
			pt := g.Point(i)
			if len(pt.FlatCoords()) == 0 {
				dst = append(dst, "EMPTY"...)
				continue
			}
			dst = append(dst, '(')
			dst = appendFlatCoord(dst, pt.FlatCoords(), 0, pt.Stride())
			dst = append(dst, ')')
		}
		return append(dst, ')'), nil
	case *geom.MultiLineString:
		dst, err := appendKeyword(dst, "MULTILINESTRING", g.Layout())
		if err != nil {
			return nil, err
		}
		if g.NumLineStrings() == 0 {
			return append(dst, " EMPTY"...), nil
		}
		return appendRingSeq(dst, g.FlatCoords(), g.Ends(), g.Stride()), nil
	case *geom.MultiPolygon:
		dst, err := appendKeyword(dst, "MULTIPOLYGON", g.Layout())
		if err != nil {
			return nil, err
		}
		if g.NumPolygons() == 0 {
			return append(dst, " EMPTY"...), nil
		}
		dst = append(dst, '(')
		for i := 0; i < g.NumPolygons(); i++ {
			if i > 0 {
				dst = append(dst, ',')
			}
			poly := g.Polygon(i)
			if poly.NumLinearRings() == 0 {
				dst = append(dst, "EMPTY"...)
				continue
			}
			dst = appendRingSeq(dst, poly.FlatCoords(), poly.Ends(), poly.Stride())
		}
		return append(dst, ')'), nil
	case *geom.GeometryCollection:
		dst = append(dst, "GEOMETRYCOLLECTION"...)
		if suffix, err := layoutSuffix(g.Layout()); err == nil {
			dst = append(dst, suffix...)
		}
		if g.NumGeoms() == 0 {
			return append(dst, " EMPTY"...), nil
		}
		dst = append(dst, '(')
		for i := 0; i < g.NumGeoms(); i++ {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendGeom(dst, g.Geom(i), depth+1)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ')'), nil
	default:
		return nil, errors.Newf("unsupported go-geom type %T", g)
	}
}

func layoutSuffix(l geom.Layout) (string, error) {
	switch l {
	case geom.XY:
		return "", nil
	case geom.XYZ:
		return " Z", nil
	case geom.XYM:
		return " M", nil
	case geom.XYZM:
		return " ZM", nil
	default:
		return "", errors.Wrapf(wkt.ErrDimension, "go-geom layout %v", l)
	}
}

func appendKeyword(dst []byte, keyword string, l geom.Layout) ([]byte, error) {
	suffix, err := layoutSuffix(l)
	if err != nil {
		return nil, err
	}
	dst = append(dst, keyword...)
	return append(dst, suffix...), nil
}

func appendFlatCoord(dst []byte, flat []float64, start, stride int) []byte {
	for i := 0; i < stride; i++ {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendFloat(dst, flat[start+i], 'f', -1, 64)
	}
	return dst
}

func appendFlatSeq(dst []byte, flat []float64, stride int) []byte {
	dst = append(dst, '(')
	for i := 0; i < len(flat); i += stride {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendFlatCoord(dst, flat, i, stride)
	}
	return append(dst, ')')
}

func appendRingSeq(dst []byte, flat []float64, ends []int, stride int) []byte {
	dst = append(dst, '(')
	prev := 0
	for i, end := range ends {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendFlatSeq(dst, flat[prev:end], stride)
		prev = end
	}
	return append(dst, ')')
}
