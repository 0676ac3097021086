// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import "github.com/cockroachdb/errors"

// Scanner decodes WKT text arriving through decoding frameworks. It
// implements encoding.TextUnmarshaler, which encoding/json dispatches to for
// string-valued fields, and database/sql's Scanner for string or []byte
// column values. Decoding only: there is no matching marshal hook, callers
// serialize with Marshal explicitly.
type Scanner struct {
	Geometry Geometry[float64]
}

// UnmarshalText parses data as WKT.
func (s *Scanner) UnmarshalText(data []byte) error {
	g, err := Parse(string(data))
	if err != nil {
		return errors.Wrap(err, "decoding WKT")
	}
	s.Geometry = g
	return nil
}

// Scan implements sql.Scanner. A NULL source clears the geometry.
func (s *Scanner) Scan(src any) error {
	switch src := src.(type) {
	case nil:
		s.Geometry = nil
		return nil
	case string:
		return s.UnmarshalText([]byte(src))
	case []byte:
		return s.UnmarshalText(src)
	default:
		return errors.Newf("unsupported source type %T for WKT", src)
	}
}
