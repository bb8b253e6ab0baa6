package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/lalr"
)

// A grammar for Lisp-like lists:
//
//    list      ::= lparen rparen | lparen list_body rparen
//    list_body ::= expression | list_body expression
//    expression ::= list | string | number | symbol
//
func lispTable(t *testing.T) *lalr.ParseTable {
	g, err := lalr.NewGrammar([]*lalr.Production{
		lalr.NewProduction("list", "lparen", "rparen"),
		lalr.NewProduction("list", "lparen", "list_body", "rparen"),
		lalr.NewProduction("list_body", "expression"),
		lalr.NewProduction("list_body", "list_body", "expression"),
		lalr.NewProduction("expression", "list"),
		lalr.NewProduction("expression", "string"),
		lalr.NewProduction("expression", "number"),
		lalr.NewProduction("expression", "symbol"),
	}, lalr.WithName("Lisp"))
	require.NoError(t, err)
	pt, err := lalr.NewParseTable(g, "expression")
	require.NoError(t, err)
	return pt
}

func TestLispTwoElementList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	pt := lispTable(t)
	var reductions []*lalr.Production
	_, err := Parse(pt, Tokens("lparen", "string", "string", "rparen"),
		func(prod *lalr.Production, values ...interface{}) (interface{}, error) {
			reductions = append(reductions, prod)
			return prod.Name(), nil
		})
	require.NoError(t, err)
	expected := []*lalr.Production{
		lalr.NewProduction("expression", "string"),
		lalr.NewProduction("list_body", "expression"),
		lalr.NewProduction("expression", "string"),
		lalr.NewProduction("list_body", "list_body", "expression"),
		lalr.NewProduction("list", "lparen", "list_body", "rparen"),
		lalr.NewProduction("expression", "list"),
	}
	require.Len(t, reductions, len(expected))
	for i, prod := range expected {
		assert.True(t, reductions[i].Equals(prod),
			"reduction %d: expected %v, got %v", i, prod, reductions[i])
	}
}

func TestLispMissingClosingParen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	pt := lispTable(t)
	_, err := Parse(pt, Tokens("lparen", "string"), nop)
	require.Error(t, err)
	var perr *lalr.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Nil(t, perr.LookaheadToken)
	assert.Equal(t, []lalr.Symbol{"expression", "rparen"}, perr.ExpectedSymbols)
	assert.Equal(t, "expected expression or rparen before EOF", perr.Error())
}

func TestLispExtraClosingParen(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	pt := lispTable(t)
	_, err := Parse(pt, Tokens("lparen", "rparen", "rparen"), nop)
	require.Error(t, err)
	var perr *lalr.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "rparen", perr.LookaheadToken)
	assert.Empty(t, perr.ExpectedSymbols)
	assert.Equal(t, "expected EOF instead of rparen", perr.Error())
}

// Ambiguous expression grammar, disambiguated by precedence classes:
// + and - bind weaker than * and /, all left-associative.
func TestPrecedenceParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	g, err := lalr.NewGrammar([]*lalr.Production{
		lalr.NewProduction("E", "x"),
		lalr.NewProduction("E", "E", "*", "E"),
		lalr.NewProduction("E", "E", "/", "E"),
		lalr.NewProduction("E", "E", "+", "E"),
		lalr.NewProduction("E", "E", "-", "E"),
	}, lalr.WithPrecedence(lalr.Left("+", "-"), lalr.Left("*", "/")))
	require.NoError(t, err)
	pt, err := lalr.NewParseTable(g, "E")
	require.NoError(t, err)
	result, err := Parse(pt,
		Tokens("x", "-", "x", "-", "x", "*", "x", "+", "x"),
		func(prod *lalr.Production, values ...interface{}) (interface{}, error) {
			if len(values) == 1 {
				return values[0], nil
			}
			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = fmt.Sprint(v)
			}
			return "(" + strings.Join(parts, "") + ")", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "(((x-x)-(x*x))+x)", result)
}

// Right associativity prefers shifting at equal precedence.
func TestRightAssociativity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	g, err := lalr.NewGrammar([]*lalr.Production{
		lalr.NewProduction("E", "x"),
		lalr.NewProduction("E", "E", "^", "E"),
	}, lalr.WithPrecedence(lalr.Right("^")))
	require.NoError(t, err)
	pt, err := lalr.NewParseTable(g, "E")
	require.NoError(t, err)
	result, err := Parse(pt, Tokens("x", "^", "x", "^", "x"),
		func(prod *lalr.Production, values ...interface{}) (interface{}, error) {
			if len(values) == 1 {
				return values[0], nil
			}
			return fmt.Sprintf("(%v%v%v)", values[0], values[1], values[2]), nil
		})
	require.NoError(t, err)
	assert.Equal(t, "(x^(x^x))", result)
}

// Mutually recursive non-terminals terminate and parse.
func TestMutualRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr.parser")
	defer teardown()
	//
	g, err := lalr.NewGrammar([]*lalr.Production{
		lalr.NewProduction("A", "a", "B"),
		lalr.NewProduction("A", "a"),
		lalr.NewProduction("B", "b", "A"),
	})
	require.NoError(t, err)
	pt, err := lalr.NewParseTable(g, "A")
	require.NoError(t, err)
	result, err := Parse(pt, Tokens("a", "b", "a", "b", "a"), nop)
	require.NoError(t, err)
	assert.Equal(t, "A", result)
}
