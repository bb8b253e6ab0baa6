/*
Package scanner defines tokenizer interfaces for feeding the parser from
text input.

Two default implementations are provided: (1) a thin wrapper over stdlib's
text/scanner, and (2) an adapter for lexmachine.

The parser core itself consumes an abstract token stream and does not depend
on this package; see parser.ScanTokens for the bridge.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"errors"
	"io"
	"strconv"
	"text/scanner"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.scanner")
}

// Symbol classes produced by the default tokenizer for multi-character
// token kinds. Single-character punctuation tokens use their lexeme as
// symbol.
const (
	Ident  = "ident"
	Int    = "int"
	Float  = "float"
	String = "string"
)

// Token is the value type handed from tokenizers to the parser. Symbol is
// the grammar symbol the token represents; Value its semantic value,
// defaulting to the lexeme.
type Token struct {
	Symbol lalr.Symbol
	Lexeme string
	Value  interface{}
	Pos    int // offset in the input stream
}

// Tokenizer is a scanner interface. ok is false when the input is
// exhausted.
type Tokenizer interface {
	NextToken() (token Token, ok bool)
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners.
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// DefaultTokenizer is a default Tokenizer implementation, backed by
// text/scanner. Create one with GoTokenizer.
type DefaultTokenizer struct {
	scan  scanner.Scanner
	Error func(error)
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// GoTokenizer creates a tokenizer accepting tokens similar to the Go
// language. Identifiers scan to symbol class "ident", numbers to "int" and
// "float", quoted strings to "string"; any other character is a token whose
// symbol is its own lexeme.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.scan.Init(input)
	t.scan.Filename = sourceID
	t.scan.Error = func(_ *scanner.Scanner, msg string) {
		t.Error(errors.New(msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() (Token, bool) {
	r := t.scan.Scan()
	if r == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
		return Token{}, false
	}
	lexeme := t.scan.TokenText()
	token := Token{Lexeme: lexeme, Value: lexeme, Pos: t.scan.Position.Offset}
	switch r {
	case scanner.Ident:
		token.Symbol = Ident
	case scanner.Int:
		token.Symbol = Int
		if n, err := strconv.Atoi(lexeme); err == nil {
			token.Value = n
		}
	case scanner.Float:
		token.Symbol = Float
		if f, err := strconv.ParseFloat(lexeme, 64); err == nil {
			token.Value = f
		}
	case scanner.String, scanner.RawString, scanner.Char:
		token.Symbol = String
	default:
		token.Symbol = lexeme
	}
	return token, true
}

// Option configures a default tokenizer.
type Option func(t *DefaultTokenizer)

// SkipComments configures the tokenizer to not pass comments on.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.scan.Mode |= scanner.SkipComments
		} else {
			t.scan.Mode &^= scanner.SkipComments
		}
	}
}
