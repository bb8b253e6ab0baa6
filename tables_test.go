package lalr

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTableExample(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g := exampleGrammar(t)
	pt, err := NewParseTable(g, "N")
	require.NoError(t, err)
	assert.Equal(t, State(0), pt.StartState())
	assert.NotEmpty(t, pt.States())
	// the start state shifts the terminals FIRST(N) = {x, *}
	shifts := pt.Shifts(pt.StartState())
	assert.Contains(t, shifts, Symbol("x"))
	assert.Contains(t, shifts, Symbol("*"))
	// and has goto entries for N, E and V
	gotos := pt.Gotos(pt.StartState())
	assert.Contains(t, gotos, Symbol("N"))
	assert.Contains(t, gotos, Symbol("E"))
	assert.Contains(t, gotos, Symbol("V"))
}

// ACCEPT is true in exactly one state; SHIFT and REDUCE are disjoint per
// state; every SHIFT and GOTO target exists.
func TestParseTableInvariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g := exampleGrammar(t)
	pt, err := NewParseTable(g, "N")
	require.NoError(t, err)
	statecnt := len(pt.States())
	accepting := 0
	for _, s := range pt.States() {
		if pt.Accepts(s) {
			accepting++
		}
		reductions := pt.Reductions(s)
		for terminal, to := range pt.Shifts(s) {
			assert.NotContains(t, reductions, terminal,
				"state %d: %v in SHIFT and REDUCE", s, terminal)
			assert.Less(t, int(to), statecnt)
		}
		for _, to := range pt.Gotos(s) {
			assert.Less(t, int(to), statecnt)
		}
	}
	assert.Equal(t, 1, accepting)
}

func TestParseTableTargetMustBeNonterminal(t *testing.T) {
	g := exampleGrammar(t)
	_, err := NewParseTable(g, "x")
	require.Error(t, err)
	var gerr *GrammarError
	assert.True(t, errors.As(err, &gerr))
}

// The classic LALR-only reduce/reduce situation: the LR(1) states for
// "e" after 'a' and after 'b' have equal cores but swapped lookaheads;
// merging them makes both E and F claim 'c' (and 'd').
func TestParseTableLALRReduceReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g, err := NewGrammar([]*Production{
		NewProduction("S", "a", "E", "c"),
		NewProduction("S", "a", "F", "d"),
		NewProduction("S", "b", "F", "c"),
		NewProduction("S", "b", "E", "d"),
		NewProduction("E", "e"),
		NewProduction("F", "e"),
	})
	require.NoError(t, err)
	_, err = NewParseTable(g, "S")
	require.Error(t, err)
	var rr *ReduceReduceConflictError
	require.True(t, errors.As(err, &rr), "expected reduce/reduce conflict, got %v", err)
	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, ErrCompilation))
	assert.NotEqual(t, rr.Productions[0], rr.Productions[1])
}

func ambiguousExprGrammar(t *testing.T, classes ...PrecedenceClass) *Grammar {
	g, err := NewGrammar([]*Production{
		NewProduction("E", "x"),
		NewProduction("E", "E", "*", "E"),
		NewProduction("E", "E", "/", "E"),
		NewProduction("E", "E", "+", "E"),
		NewProduction("E", "E", "-", "E"),
	}, WithPrecedence(classes...))
	require.NoError(t, err)
	return g
}

func TestParseTableShiftReduceWithoutPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g := ambiguousExprGrammar(t)
	_, err := NewParseTable(g, "E")
	require.Error(t, err)
	var sr *ShiftReduceConflictError
	require.True(t, errors.As(err, &sr), "expected shift/reduce conflict, got %v", err)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestParseTablePrecedenceResolvesShiftReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g := ambiguousExprGrammar(t, Left("+", "-"), Left("*", "/"))
	pt, err := NewParseTable(g, "E")
	require.NoError(t, err)
	// no state carries a terminal in both SHIFT and REDUCE
	for _, s := range pt.States() {
		reductions := pt.Reductions(s)
		for terminal := range pt.Shifts(s) {
			assert.NotContains(t, reductions, terminal)
		}
	}
}

// Grammars whose LR(1) states merge without conflict: equal cores with
// differing lookaheads union cleanly.
func TestParseTableLALRMerge(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g, err := NewGrammar([]*Production{
		NewProduction("S", "a", "E", "c"),
		NewProduction("S", "b", "E", "d"),
		NewProduction("E", "e"),
	})
	require.NoError(t, err)
	pt, err := NewParseTable(g, "S")
	require.NoError(t, err)
	// exactly one state holds the completed item E ::= e •, reducing on
	// both 'c' and 'd' after the merge
	merged := 0
	for _, s := range pt.States() {
		reductions := pt.Reductions(s)
		if p, ok := reductions["c"]; ok && p.Name() == "E" {
			assert.Contains(t, reductions, Symbol("d"))
			merged++
		}
	}
	assert.Equal(t, 1, merged)
}

func TestParseTableSelfRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lalr")
	defer teardown()
	//
	g, err := NewGrammar([]*Production{
		NewProduction("A", "A", "x"),
		NewProduction("A", "x"),
	})
	require.NoError(t, err)
	pt, err := NewParseTable(g, "A")
	require.NoError(t, err)
	assert.NotEmpty(t, pt.States())
}

func TestParseTableSingleProduction(t *testing.T) {
	g, err := NewGrammar([]*Production{
		NewProduction("S", "a"),
	})
	require.NoError(t, err)
	pt, err := NewParseTable(g, "S")
	require.NoError(t, err)
	// some state reduces S ::= a on end-of-input
	reduced := false
	for _, s := range pt.States() {
		if prod, ok := pt.Reduce(s, EOF); ok && prod.Equals(NewProduction("S", "a")) {
			reduced = true
		}
	}
	assert.True(t, reduced)
	accepting := 0
	for _, s := range pt.States() {
		if pt.Accepts(s) {
			accepting++
		}
	}
	assert.Equal(t, 1, accepting)
}

// State numbering must be reproducible across builds.
func TestParseTableDeterminism(t *testing.T) {
	build := func() *ParseTable {
		g := exampleGrammar(t)
		pt, err := NewParseTable(g, "N")
		require.NoError(t, err)
		return pt
	}
	a, b := build(), build()
	require.Equal(t, len(a.States()), len(b.States()))
	for _, s := range a.States() {
		assert.Equal(t, a.Shifts(s), b.Shifts(s), "state %d shifts differ", s)
		assert.Equal(t, a.Gotos(s), b.Gotos(s), "state %d gotos differ", s)
		assert.Equal(t, a.Accepts(s), b.Accepts(s), "state %d accept differs", s)
	}
}

func TestParseTableExportDOT(t *testing.T) {
	g := exampleGrammar(t)
	pt, err := NewParseTable(g, "N")
	require.NoError(t, err)
	var buf bytes.Buffer
	pt.ExportDOT(&buf)
	dot := buf.String()
	assert.True(t, strings.HasPrefix(dot, "digraph {"))
	assert.Contains(t, dot, "s000")
	assert.Contains(t, dot, "->")
}
