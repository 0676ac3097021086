// Copyright 2024 The wkt Authors.
//
// Use of this software is governed by the MIT License
// included in the LICENSE file.

package wkt

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// LexError is an error that occurs during lexing.
type LexError struct {
	expectedTokType string
	pos             int
	str             string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error: invalid %s at pos %d\n%s\n%s^",
		e.expectedTokType, e.pos, e.str, strings.Repeat(" ", e.pos))
}

// ParseError is an error that occurs during parsing, which happens after
// lexing.
type ParseError struct {
	problem string
	pos     int
	str     string
	hint    string
}

func (e *ParseError) Error() string {
	err := fmt.Sprintf("%s at pos %d\n%s\n%s^", e.problem, e.pos, e.str, strings.Repeat(" ", e.pos))
	if e.hint != "" {
		err += fmt.Sprintf("\nHINT: %s", e.hint)
	}
	return err
}

// Rune value returned by peekRune at end of input.
const eof = 0

type tokType int

const (
	tokEOF tokType = iota
	tokWord
	tokNum
	tokLParen
	tokRParen
	tokComma
)

func (t tokType) String() string {
	switch t {
	case tokEOF:
		return "end of input"
	case tokWord:
		return "word"
	case tokNum:
		return "number"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		panic(fmt.Sprintf("unknown tokType %d", int(t)))
	}
}

// token is one lexical unit of a WKT input. Words keep their original casing;
// keyword matching downstream is case-insensitive. Numbers are parsed eagerly
// into the element type.
type token[T constraints.Float] struct {
	typ  tokType
	word string
	num  T
	pos  int
}

// lexer scans a WKT input strictly forward, one token at a time, with a
// single token of lookahead.
type lexer[T constraints.Float] struct {
	line    string
	pos     int
	lastPos int

	hasPeek bool
	peekTok token[T]
	peekErr error
}

func newLexer[T constraints.Float](line string) *lexer[T] {
	return &lexer[T]{line: line}
}

// peek returns the next token without consuming it.
func (l *lexer[T]) peek() (token[T], error) {
	if !l.hasPeek {
		l.peekTok, l.peekErr = l.lex()
		l.hasPeek = true
	}
	return l.peekTok, l.peekErr
}

// next consumes and returns the next token.
func (l *lexer[T]) next() (token[T], error) {
	if l.hasPeek {
		l.hasPeek = false
		return l.peekTok, l.peekErr
	}
	return l.lex()
}

func (l *lexer[T]) lex() (token[T], error) {
	l.trimLeft()
	l.lastPos = l.pos

	switch c := l.peekRune(); {
	case c == eof:
		return token[T]{typ: tokEOF, pos: l.lastPos}, nil
	case c == '(':
		l.nextRune()
		return token[T]{typ: tokLParen, pos: l.lastPos}, nil
	case c == ')':
		l.nextRune()
		return token[T]{typ: tokRParen, pos: l.lastPos}, nil
	case c == ',':
		l.nextRune()
		return token[T]{typ: tokComma, pos: l.lastPos}, nil
	case isLetter(c):
		return l.word(), nil
	case isNumStart(c):
		return l.num()
	default:
		l.nextRune()
		return token[T]{}, l.lexError("character")
	}
}

// word lexes a maximal run of ASCII letters.
func (l *lexer[T]) word() token[T] {
	var b strings.Builder
	for isLetter(l.peekRune()) {
		b.WriteRune(l.nextRune())
	}
	return token[T]{typ: tokWord, word: b.String(), pos: l.lastPos}
}

// num lexes a numeric literal. The run extends to the next delimiter
// (whitespace, parenthesis, comma or end of input) so that a malformed
// numeral like 20.1A fails as a number rather than splitting into a number
// and a stray word.
func (l *lexer[T]) num() (token[T], error) {
	var b strings.Builder
	for {
		c := l.peekRune()
		if c == eof || c == '(' || c == ')' || c == ',' || isSpace(c) {
			break
		}
		b.WriteRune(l.nextRune())
	}

	f, err := strconv.ParseFloat(b.String(), floatBitSize[T]())
	if err != nil {
		return token[T]{}, l.lexError("number")
	}
	return token[T]{typ: tokNum, num: T(f), pos: l.lastPos}, nil
}

func (l *lexer[T]) peekRune() rune {
	if l.pos == len(l.line) {
		return eof
	}
	return rune(l.line[l.pos])
}

func (l *lexer[T]) nextRune() rune {
	c := l.peekRune()
	if c != eof {
		l.pos++
	}
	return c
}

func (l *lexer[T]) trimLeft() {
	for isSpace(l.peekRune()) {
		l.nextRune()
	}
}

func (l *lexer[T]) lexError(expectedTokType string) error {
	return &LexError{expectedTokType: expectedTokType, pos: l.lastPos, str: l.line}
}

func isLetter(c rune) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNumStart(c rune) bool {
	switch c {
	case '-', '+', '.':
		return true
	default:
		return '0' <= c && c <= '9'
	}
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	default:
		return false
	}
}

// floatBitSize reports the precision numeric literals are parsed at for the
// element type.
func floatBitSize[T constraints.Float]() int {
	var z T
	if _, ok := any(z).(float32); ok {
		return 32
	}
	return 64
}
