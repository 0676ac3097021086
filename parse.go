// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// MaxDepth bounds geometry nesting in both the parser and the writer. A
// collection may contain collections without limit in the grammar, so an
// adversarial input could otherwise grow the call stack without bound;
// exceeding the limit is reported as a ParseError instead.
const MaxDepth = 64

type keywordInfo struct {
	kind  Kind
	dim   Dim
	fused bool
}

// keywords maps every accepted uppercase geometry keyword, including the
// Z/M/ZM-fused one-word forms and the JTS LINEARRING synonym, to its kind and
// (for fused forms) its fixed dimensionality.
var keywords = func() map[string]keywordInfo {
	base := map[string]Kind{
		"POINT":              KindPoint,
		"LINESTRING":         KindLineString,
		"LINEARRING":         KindLineString,
		"POLYGON":            KindPolygon,
		"MULTIPOINT":         KindMultiPoint,
		"MULTILINESTRING":    KindMultiLineString,
		"MULTIPOLYGON":       KindMultiPolygon,
		"GEOMETRYCOLLECTION": KindGeometryCollection,
	}
	m := make(map[string]keywordInfo, 4*len(base))
	for word, kind := range base {
		m[word] = keywordInfo{kind: kind}
		m[word+"Z"] = keywordInfo{kind: kind, dim: XYZ, fused: true}
		m[word+"M"] = keywordInfo{kind: kind, dim: XYM, fused: true}
		m[word+"ZM"] = keywordInfo{kind: kind, dim: XYZM, fused: true}
	}
	return m
}()

type parser[T constraints.Float] struct {
	lx    *lexer[T]
	depth int
}

func (p *parser[T]) syntaxError(problem string, pos int) error {
	return &ParseError{
		problem: "syntax error: " + problem,
		pos:     pos,
		str:     p.lx.line,
	}
}

// parseGeometry parses one full geometry introduced by its keyword. It is the
// entry point for the top level and for members of a GEOMETRYCOLLECTION.
func (p *parser[T]) parseGeometry() (Geometry[T], error) {
	tok, err := p.lx.next()
	if err != nil {
		return nil, err
	}
	if tok.typ != tokWord {
		return nil, p.syntaxError("expected a geometry keyword", tok.pos)
	}
	ki, ok := keywords[strings.ToUpper(tok.word)]
	if !ok {
		return nil, p.syntaxError(fmt.Sprintf("unrecognized geometry keyword %q", tok.word), tok.pos)
	}

	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, p.syntaxError(
			fmt.Sprintf("geometry nesting exceeds the maximum of %d levels", MaxDepth), tok.pos)
	}

	dim, err := p.headerDim(ki)
	if err != nil {
		return nil, err
	}

	switch ki.kind {
	case KindPoint:
		return p.parsePoint(dim)
	case KindLineString:
		return p.parseLineString(dim)
	case KindPolygon:
		return p.parsePolygon(dim)
	case KindMultiPoint:
		return p.parseMultiPoint(dim)
	case KindMultiLineString:
		return p.parseMultiLineString(dim)
	case KindMultiPolygon:
		return p.parseMultiPolygon(dim)
	case KindGeometryCollection:
		return p.parseGeometryCollection(dim)
	default:
		panic(fmt.Sprintf("unknown Kind %d", int(ki.kind)))
	}
}

// headerDim resolves the dimensionality for a geometry header: fused keywords
// fix it outright, otherwise an optional Z/M/ZM marker word is read.
func (p *parser[T]) headerDim(ki keywordInfo) (Dim, error) {
	if ki.fused {
		return ki.dim, nil
	}
	return p.inferDim()
}

// inferDim inspects the token after a geometry keyword. A Z/M/ZM marker word
// is consumed; EMPTY is left for the body parser and implies XY; any non-word
// token (an open paren) also implies XY.
func (p *parser[T]) inferDim() (Dim, error) {
	tok, err := p.lx.peek()
	if err != nil {
		return 0, err
	}
	switch tok.typ {
	case tokEOF:
		return 0, p.syntaxError("unexpected end of input after geometry keyword", tok.pos)
	case tokWord:
		switch {
		case strings.EqualFold(tok.word, "Z"):
			p.lx.next()
			return XYZ, nil
		case strings.EqualFold(tok.word, "M"):
			p.lx.next()
			return XYM, nil
		case strings.EqualFold(tok.word, "ZM"):
			p.lx.next()
			return XYZM, nil
		case strings.EqualFold(tok.word, "EMPTY"):
			return XY, nil
		default:
			return 0, p.syntaxError(
				fmt.Sprintf("unexpected word %q after geometry keyword", tok.word), tok.pos)
		}
	default:
		return XY, nil
	}
}

// parseBody runs the shared body protocol for one geometry or ring: either
// the single word EMPTY, or an opening paren, the kind-specific body, and a
// closing paren. An empty member list is reachable only through EMPTY, never
// through ().
func parseBody[T constraints.Float, G any](
	p *parser[T], name string, empty G, body func() (G, error),
) (G, error) {
	var zero G
	tok, err := p.lx.next()
	if err != nil {
		return zero, err
	}
	switch {
	case tok.typ == tokWord && strings.EqualFold(tok.word, "EMPTY"):
		return empty, nil
	case tok.typ == tokLParen:
	default:
		return zero, p.syntaxError(fmt.Sprintf("missing '(' or EMPTY for %s body", name), tok.pos)
	}

	if t, peekErr := p.lx.peek(); peekErr == nil && t.typ == tokRParen {
		return zero, &ParseError{
			problem: "syntax error: empty parens are not a valid geometry body",
			pos:     t.pos,
			str:     p.lx.line,
			hint:    "use the EMPTY keyword to denote an empty geometry",
		}
	}

	out, err := body()
	if err != nil {
		return zero, err
	}

	tok, err = p.lx.next()
	if err != nil {
		return zero, err
	}
	if tok.typ != tokRParen {
		return zero, p.syntaxError(fmt.Sprintf("missing ')' after %s body", name), tok.pos)
	}
	return out, nil
}

// commaSep parses one item, then further items for as long as a comma
// follows.
func commaSep[T constraints.Float, E any](p *parser[T], item func() (E, error)) ([]E, error) {
	first, err := item()
	if err != nil {
		return nil, err
	}
	items := []E{first}
	for {
		tok, err := p.lx.peek()
		if err != nil {
			return nil, err
		}
		if tok.typ != tokComma {
			return items, nil
		}
		p.lx.next()
		next, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, next)
	}
}

// parseCoord reads exactly the number of numeric components the
// dimensionality implies, in x, y, z, m order.
func (p *parser[T]) parseCoord(dim Dim) (Coord[T], error) {
	stride := dim.Stride()
	c := make(Coord[T], stride)
	for i := 0; i < stride; i++ {
		tok, err := p.lx.next()
		if err != nil {
			return nil, err
		}
		if tok.typ != tokNum {
			return nil, p.syntaxError(
				fmt.Sprintf("expected a number for the %s coordinate", dim.componentName(i)), tok.pos)
		}
		c[i] = tok.num
	}
	return c, nil
}

func (p *parser[T]) parsePoint(dim Dim) (Point[T], error) {
	return parseBody(p, "POINT", Point[T]{Dim: dim}, func() (Point[T], error) {
		c, err := p.parseCoord(dim)
		if err != nil {
			return Point[T]{}, err
		}
		return Point[T]{Dim: dim, Coord: c}, nil
	})
}

func (p *parser[T]) parseLineString(dim Dim) (LineString[T], error) {
	return parseBody(p, "LINESTRING", LineString[T]{Dim: dim}, func() (LineString[T], error) {
		coords, err := commaSep(p, func() (Coord[T], error) { return p.parseCoord(dim) })
		if err != nil {
			return LineString[T]{}, err
		}
		return LineString[T]{Dim: dim, Coords: coords}, nil
	})
}

// parseRing parses one parenthesized coordinate sequence: a polygon ring or a
// MULTILINESTRING member.
func (p *parser[T]) parseRing(dim Dim) (LineString[T], error) {
	return parseBody(p, "ring", LineString[T]{Dim: dim}, func() (LineString[T], error) {
		coords, err := commaSep(p, func() (Coord[T], error) { return p.parseCoord(dim) })
		if err != nil {
			return LineString[T]{}, err
		}
		return LineString[T]{Dim: dim, Coords: coords}, nil
	})
}

func (p *parser[T]) parsePolygon(dim Dim) (Polygon[T], error) {
	return parseBody(p, "POLYGON", Polygon[T]{Dim: dim}, func() (Polygon[T], error) {
		rings, err := commaSep(p, func() (LineString[T], error) { return p.parseRing(dim) })
		if err != nil {
			return Polygon[T]{}, err
		}
		return Polygon[T]{Dim: dim, Rings: rings}, nil
	})
}

func (p *parser[T]) parseMultiPoint(dim Dim) (MultiPoint[T], error) {
	return parseBody(p, "MULTIPOINT", MultiPoint[T]{Dim: dim}, func() (MultiPoint[T], error) {
		points, err := commaSep(p, func() (Point[T], error) { return p.parseMultiPointMember(dim) })
		if err != nil {
			return MultiPoint[T]{}, err
		}
		return MultiPoint[T]{Dim: dim, Points: points}, nil
	})
}

// parseMultiPointMember accepts the standard parenthesized point form, the
// bare coordinate form PostGIS emits, and EMPTY members.
func (p *parser[T]) parseMultiPointMember(dim Dim) (Point[T], error) {
	tok, err := p.lx.peek()
	if err != nil {
		return Point[T]{}, err
	}
	if tok.typ == tokLParen || (tok.typ == tokWord && strings.EqualFold(tok.word, "EMPTY")) {
		return parseBody(p, "POINT", Point[T]{Dim: dim}, func() (Point[T], error) {
			c, err := p.parseCoord(dim)
			if err != nil {
				return Point[T]{}, err
			}
			return Point[T]{Dim: dim, Coord: c}, nil
		})
	}
	c, err := p.parseCoord(dim)
	if err != nil {
		return Point[T]{}, err
	}
	return Point[T]{Dim: dim, Coord: c}, nil
}

func (p *parser[T]) parseMultiLineString(dim Dim) (MultiLineString[T], error) {
	return parseBody(p, "MULTILINESTRING", MultiLineString[T]{Dim: dim},
		func() (MultiLineString[T], error) {
			lss, err := commaSep(p, func() (LineString[T], error) { return p.parseRing(dim) })
			if err != nil {
				return MultiLineString[T]{}, err
			}
			return MultiLineString[T]{Dim: dim, LineStrings: lss}, nil
		})
}

func (p *parser[T]) parseMultiPolygon(dim Dim) (MultiPolygon[T], error) {
	return parseBody(p, "MULTIPOLYGON", MultiPolygon[T]{Dim: dim},
		func() (MultiPolygon[T], error) {
			polys, err := commaSep(p, func() (Polygon[T], error) {
				return parseBody(p, "POLYGON", Polygon[T]{Dim: dim}, func() (Polygon[T], error) {
					rings, err := commaSep(p, func() (LineString[T], error) { return p.parseRing(dim) })
					if err != nil {
						return Polygon[T]{}, err
					}
					return Polygon[T]{Dim: dim, Rings: rings}, nil
				})
			})
			if err != nil {
				return MultiPolygon[T]{}, err
			}
			return MultiPolygon[T]{Dim: dim, Polygons: polys}, nil
		})
}

// parseGeometryCollection parses members as full self-describing geometries,
// each introduced by its own keyword and dispatched through the same table as
// the top level. Members keep whatever dimensionality their own headers
// resolve to.
func (p *parser[T]) parseGeometryCollection(dim Dim) (GeometryCollection[T], error) {
	return parseBody(p, "GEOMETRYCOLLECTION", GeometryCollection[T]{Dim: dim},
		func() (GeometryCollection[T], error) {
			geoms, err := commaSep(p, func() (Geometry[T], error) { return p.parseGeometry() })
			if err != nil {
				return GeometryCollection[T]{}, err
			}
			return GeometryCollection[T]{Dim: dim, Geoms: geoms}, nil
		})
}
