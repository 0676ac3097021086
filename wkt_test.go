// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

// TestRoundTrip parses canonical WKT and requires the writer to reproduce it
// byte for byte.
func TestRoundTrip(t *testing.T) {
	testCases := []string{
		"POINT(1 2)",
		"POINT Z(1 2 3)",
		"POINT M(1 2 3)",
		"POINT ZM(1 2 3 4)",
		"POINT EMPTY",
		"POINT Z EMPTY",
		"POINT ZM EMPTY",
		"LINESTRING(0 0,2 3)",
		"LINESTRING Z(10 20 30,40 50 60)",
		"LINESTRING EMPTY",
		"POLYGON((0 0,4 0,4 4,0 0))",
		"POLYGON((0 0,4 0,4 4,0 0),(1 1,2 1,2 2,1 1))",
		"POLYGON(EMPTY)",
		"POLYGON EMPTY",
		"MULTIPOINT((1 2),(3 4))",
		"MULTIPOINT((1 2),EMPTY,(3 4))",
		"MULTIPOINT EMPTY",
		"MULTILINESTRING((1 2,3 4),EMPTY)",
		"MULTILINESTRING M EMPTY",
		"MULTIPOLYGON(((0 0,1 0,1 1,0 0)),EMPTY)",
		"MULTIPOLYGON EMPTY",
		"GEOMETRYCOLLECTION Z(POINT Z(8 4 9))",
		"GEOMETRYCOLLECTION(POINT(1 2),GEOMETRYCOLLECTION EMPTY)",
		"GEOMETRYCOLLECTION(POINT Z(1 2 3),POINT(1 2))",
		"GEOMETRYCOLLECTION(GEOMETRYCOLLECTION(LINESTRING(0 0,1 1)))",
		"GEOMETRYCOLLECTION EMPTY",
	}

	for _, wkt := range testCases {
		t.Run(wkt, func(t *testing.T) {
			g, err := Parse(wkt)
			require.NoError(t, err)
			out, err := Marshal(g)
			require.NoError(t, err)
			require.Equal(t, wkt, out)
		})
	}
}

// TestCanonicalize checks that non-canonical but valid inputs come back out
// in canonical form.
func TestCanonicalize(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"point( 1   2 )", "POINT(1 2)"},
		{"POINT (1 2)", "POINT(1 2)"},
		{"POINTZ(1 2 3)", "POINT Z(1 2 3)"},
		{"linearring(0 0, 1 1)", "LINESTRING(0 0,1 1)"},
		{"MULTIPOINT(1 2, 3 4)", "MULTIPOINT((1 2),(3 4))"},
		{"LINESTRING(1.50 2.0,0.250 -0.0)", "LINESTRING(1.5 2,0.25 -0)"},
		{"\tGEOMETRYCOLLECTION ( POINT ( 1 2 ) )\n", "GEOMETRYCOLLECTION(POINT(1 2))"},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			g, err := Parse(tc.in)
			require.NoError(t, err)
			out, err := Marshal(g)
			require.NoError(t, err)
			require.Equal(t, tc.expected, out)
		})
	}
}

func TestParseInto(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		pt, err := ParseInto[Point[float64], float64]("POINT(1 2)")
		require.NoError(t, err)
		require.Equal(t, Point[float64]{Dim: XY, Coord: Coord[float64]{1, 2}}, pt)
	})
	t.Run("single-member collection flattens", func(t *testing.T) {
		ls, err := ParseInto[LineString[float64], float64]("GEOMETRYCOLLECTION(LINESTRING(0 0,1 1))")
		require.NoError(t, err)
		require.Equal(t,
			LineString[float64]{Dim: XY, Coords: []Coord[float64]{{0, 0}, {1, 1}}}, ls)
	})
	t.Run("collection target takes collections", func(t *testing.T) {
		gc, err := ParseInto[GeometryCollection[float64], float64]("GEOMETRYCOLLECTION(POINT(1 2),POINT(3 4))")
		require.NoError(t, err)
		require.Len(t, gc.Geoms, 2)
	})
	t.Run("kind mismatch", func(t *testing.T) {
		_, err := ParseInto[Polygon[float64], float64]("POINT(1 2)")
		require.EqualError(t, err, "mismatched geometry: expected POLYGON, found POINT")
	})
	t.Run("member kind mismatch", func(t *testing.T) {
		_, err := ParseInto[Polygon[float64], float64]("GEOMETRYCOLLECTION(POINT(1 2))")
		require.EqualError(t, err, "mismatched geometry: expected POLYGON, found POINT")
	})
	t.Run("member count mismatch", func(t *testing.T) {
		_, err := ParseInto[Point[float64], float64]("GEOMETRYCOLLECTION(POINT(1 2),POINT(3 4))")
		require.EqualError(t, err, "cannot convert GEOMETRYCOLLECTION with 2 members to POINT")
	})
	t.Run("parse error propagates", func(t *testing.T) {
		_, err := ParseInto[Point[float64], float64]("POINT(1)")
		require.Error(t, err)
	})
}

func TestInferType(t *testing.T) {
	testCases := []struct {
		wkt  string
		kind Kind
		dim  Dim
	}{
		{"POINT(1 2)", KindPoint, XY},
		{"POINT Z(this does not need to parse", KindPoint, XYZ},
		{"MULTIPOLYGONZM EMPTY", KindMultiPolygon, XYZM},
		{"linestring m(1 2 3,4 5 6)", KindLineString, XYM},
		// The header alone cannot see the EMPTY body, so XY is reported.
		{"GEOMETRYCOLLECTION EMPTY", KindGeometryCollection, XY},
	}

	for _, tc := range testCases {
		t.Run(tc.wkt, func(t *testing.T) {
			kind, dim, err := InferType(tc.wkt)
			require.NoError(t, err)
			require.Equal(t, tc.kind, kind)
			require.Equal(t, tc.dim, dim)
		})
	}

	t.Run("errors", func(t *testing.T) {
		_, _, err := InferType("NONSENSE(1 2)")
		require.Error(t, err)
		_, _, err = InferType("")
		require.Error(t, err)
		_, _, err = InferType("POINT")
		require.Error(t, err)
	})
}

func TestScanner(t *testing.T) {
	t.Run("UnmarshalText", func(t *testing.T) {
		var s Scanner
		require.NoError(t, s.UnmarshalText([]byte("POINT(1 2)")))
		require.Equal(t, Point[float64]{Dim: XY, Coord: Coord[float64]{1, 2}}, s.Geometry)

		err := s.UnmarshalText([]byte("POINT(1)"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "decoding WKT")
	})

	t.Run("Scan", func(t *testing.T) {
		var s Scanner
		require.NoError(t, s.Scan("LINESTRING(0 0,1 1)"))
		require.Equal(t, KindLineString, s.Geometry.Kind())

		require.NoError(t, s.Scan([]byte("POINT EMPTY")))
		require.True(t, s.Geometry.Empty())

		require.NoError(t, s.Scan(nil))
		require.Nil(t, s.Geometry)

		err := s.Scan(7)
		require.EqualError(t, err, "unsupported source type int for WKT")
	})

	t.Run("json", func(t *testing.T) {
		var row struct {
			Name string  `json:"name"`
			Geom Scanner `json:"geom"`
		}
		require.NoError(t, json.Unmarshal(
			[]byte(`{"name": "hq", "geom": "POINT Z(1 2 3)"}`), &row))
		require.Equal(t,
			Point[float64]{Dim: XYZ, Coord: Coord[float64]{1, 2, 3}}, row.Geom.Geometry)

		err := json.Unmarshal([]byte(`{"geom": "POINT(oops)"}`), &row)
		require.Error(t, err)
	})
}

func TestDataDriven(t *testing.T) {
	datadriven.RunTest(t, "testdata/parse", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "parse":
			g, err := Parse(d.Input)
			if err != nil {
				return err.Error()
			}
			out, err := Marshal(g)
			if err != nil {
				return err.Error()
			}
			return out
		case "infer":
			kind, dim, err := InferType(d.Input)
			if err != nil {
				return err.Error()
			}
			return fmt.Sprintf("%s %s", kind, dim)
		default:
			d.Fatalf(t, "unknown command %q", d.Cmd)
			return ""
		}
	})
}
