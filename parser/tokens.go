package parser

import (
	"fmt"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/lalr/scanner"
)

// TokenStream is the lazy token sequence a parse run consumes. ok is false
// when the input is exhausted; the parser then synthesizes the EOF
// sentinel.
type TokenStream interface {
	Next() (token interface{}, ok bool)
}

// Tokens creates a token stream over a fixed sequence of tokens. With the
// default token callbacks, the tokens are used as grammar symbols directly:
//
//    parser.Tokens("x", "=", "*", "x")
//
func Tokens(tokens ...interface{}) TokenStream {
	return &sliceStream{tokens: tokens}
}

type sliceStream struct {
	tokens []interface{}
	cursor int
}

func (s *sliceStream) Next() (interface{}, bool) {
	if s.cursor >= len(s.tokens) {
		return nil, false
	}
	token := s.tokens[s.cursor]
	s.cursor++
	return token, true
}

// ScanTokens adapts a scanner.Tokenizer to a token stream. Combine with the
// ScannerSymbol and ScannerValue callbacks:
//
//    parser.Parse(pt, parser.ScanTokens(tokenizer), action,
//        parser.TokenSymbol(parser.ScannerSymbol),
//        parser.TokenValue(parser.ScannerValue))
//
func ScanTokens(tokenizer scanner.Tokenizer) TokenStream {
	return &scanStream{tokenizer: tokenizer}
}

type scanStream struct {
	tokenizer scanner.Tokenizer
}

func (s *scanStream) Next() (interface{}, bool) {
	token, ok := s.tokenizer.NextToken()
	if !ok {
		return nil, false
	}
	return token, true
}

// ScannerSymbol maps a scanner.Token to its grammar symbol; use with the
// TokenSymbol option when parsing from a ScanTokens stream.
func ScannerSymbol(token interface{}) (lalr.Symbol, error) {
	t, ok := token.(scanner.Token)
	if !ok {
		return nil, fmt.Errorf("expected scanner.Token, got %T", token)
	}
	return t.Symbol, nil
}

// ScannerValue maps a scanner.Token to its semantic value; use with the
// TokenValue option when parsing from a ScanTokens stream.
func ScannerValue(token interface{}) (interface{}, error) {
	t, ok := token.(scanner.Token)
	if !ok {
		return nil, fmt.Errorf("expected scanner.Token, got %T", token)
	}
	return t.Value, nil
}
