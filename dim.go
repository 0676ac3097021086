// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import "fmt"

// Dim is the coordinate dimensionality of a geometry.
type Dim int

// The four dimensionalities WKT can express. XYZ and XYM share a stride of
// three; the M marker is what tells them apart.
const (
	XY Dim = iota
	XYZ
	XYM
	XYZM
)

// Stride returns the number of numeric components per coordinate.
func (d Dim) Stride() int {
	switch d {
	case XY:
		return 2
	case XYZ, XYM:
		return 3
	case XYZM:
		return 4
	default:
		panic(fmt.Sprintf("unknown Dim %d", int(d)))
	}
}

func (d Dim) String() string {
	switch d {
	case XY:
		return "XY"
	case XYZ:
		return "XYZ"
	case XYM:
		return "XYM"
	case XYZM:
		return "XYZM"
	default:
		panic(fmt.Sprintf("unknown Dim %d", int(d)))
	}
}

// suffix is the keyword suffix the writer emits for this dimensionality,
// including the leading space. XY has none.
func (d Dim) suffix() string {
	switch d {
	case XY:
		return ""
	case XYZ:
		return " Z"
	case XYM:
		return " M"
	case XYZM:
		return " ZM"
	default:
		panic(fmt.Sprintf("unknown Dim %d", int(d)))
	}
}

// hasZ reports whether the third component is a Z value.
func (d Dim) hasZ() bool {
	return d == XYZ || d == XYZM
}

// hasM reports whether the trailing component is an M value.
func (d Dim) hasM() bool {
	return d == XYM || d == XYZM
}

// valid reports whether d is one of the four enumerated dimensionalities.
// The writer checks this so that a hand-built geometry carrying a bogus Dim
// fails with an error rather than a panic.
func (d Dim) valid() bool {
	return d >= XY && d <= XYZM
}

// componentName names the coordinate component at index i for error
// messages: X, Y, then Z and/or M depending on the dimensionality.
func (d Dim) componentName(i int) string {
	switch i {
	case 0:
		return "X"
	case 1:
		return "Y"
	case 2:
		if d.hasM() && !d.hasZ() {
			return "M"
		}
		return "Z"
	case 3:
		return "M"
	default:
		panic(fmt.Sprintf("component index %d out of range", i))
	}
}
