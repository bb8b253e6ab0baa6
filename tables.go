package lalr

import (
	"github.com/emirpasic/gods/lists/arraylist"

	"github.com/npillmayer/lalr/iteratable"
)

// State is an index into a parse table's state array. State 0 is the start
// state.
type State int

// ParseTable is the result of LALR(1) table construction: per state the
// SHIFT, GOTO and REDUCE mappings, the accept flag, and the expected-symbol
// information used for error reporting. A ParseTable is immutable and may be
// shared read-only between concurrent parse runs.
type ParseTable struct {
	grammar    *Grammar
	target     Symbol
	shifts     []map[Symbol]State
	gotos      []map[Symbol]State
	reductions []map[Symbol]*Production
	accepts    []bool
	expected   [][]Symbol      // cursor symbols of kernel items, per state
	edges      *arraylist.List // transition edges, for dumps and DOT export
}

// tableEdge is a directed transition between two states, labelled with the
// symbol consumed.
type tableEdge struct {
	from  State
	label Symbol
	to    State
}

// NewParseTable builds the LALR(1) parse table for a grammar and a target
// symbol. The target must appear as the name of at least one production.
//
// Construction fails with a *ReduceReduceConflictError or a
// *ShiftReduceConflictError if the grammar is not LALR(1). Shift/reduce
// conflicts are resolved silently where the grammar's precedence classes
// decide them.
func NewParseTable(g *Grammar, target Symbol) (*ParseTable, error) {
	if g == nil {
		return nil, grammarError("nil grammar")
	}
	if !g.IsNonterminal(target) {
		return nil, grammarError("target %s has no production", SymbolString(target))
	}
	b := &tableBuilder{g: g, target: target}
	b.buildTransitionTable()
	transitions := b.resolveTransitions()
	pt := &ParseTable{grammar: g, target: target}
	if err := pt.buildActionTables(b, transitions); err != nil {
		return nil, err
	}
	pt.recordEdges(transitions)
	return pt, nil
}

func (pt *ParseTable) recordEdges(transitions []map[Symbol]State) {
	pt.edges = arraylist.New()
	for s, trans := range transitions {
		keys := symbolSet{}
		for sym := range trans {
			keys.add(sym)
		}
		for _, sym := range pt.grammar.sortSyms(keys) {
			pt.edges.Add(tableEdge{from: State(s), label: sym, to: trans[sym]})
		}
	}
}

// --- Transition table construction ------------------------------------------

// tableBuilder holds the intermediate state of the canonical construction:
// the item sets (identified by index), their successor-kernel maps, and the
// LALR merge index from kernel-core fingerprints to state indexes.
type tableBuilder struct {
	g           *Grammar
	target      Symbol
	startProd   *Production
	itemSets    []*itemSet
	transitions []map[Symbol]kernel
	byCore      map[string]State
}

// buildTransitionTable runs the canonical LR(1) construction with LALR
// merging. Kernels are processed from an insertion-ordered queue keyed by
// their full fingerprint: a kernel whose lookaheads grew through merging
// re-enters the queue and its state is recomputed. The queue drains once
// every successor kernel has a matching core whose lookaheads subsume it.
func (b *tableBuilder) buildTransitionTable() {
	b.startProd = &Production{
		name:    Start,
		symbols: []Symbol{b.target},
		serial:  len(b.g.productions),
	}
	startKernel := kernel{
		itemCore{prod: b.startProd, cursor: 0}: newSymbolSet(EOF),
	}
	b.byCore = make(map[string]State)
	queue := iteratable.NewQueueWith(func(v interface{}) interface{} {
		return kernelFingerprint(b.g, v.(kernel))
	}, startKernel)

	for queue.Next() {
		kern := queue.Item().(kernel)
		ckey := coreFingerprint(kern)
		var index State
		if idx, ok := b.byCore[ckey]; ok {
			index = idx
			kern = mergeKernels(b.itemSets[idx].kernel, kern)
			iset := buildItemSet(b.g, kern)
			b.itemSets[idx] = iset
			b.transitions[idx] = transitionsOf(iset)
		} else {
			index = State(len(b.itemSets))
			iset := buildItemSet(b.g, kern)
			b.byCore[ckey] = index
			b.itemSets = append(b.itemSets, iset)
			b.transitions = append(b.transitions, transitionsOf(iset))
		}
		// Successor kernels are enqueued in the grammar's stable symbol
		// order, keeping state numbering deterministic.
		trans := b.transitions[index]
		for _, sym := range b.sortedTransitionSymbols(trans) {
			queue.Add(trans[sym])
		}
	}
	tracer().Debugf("transition table: %d states", len(b.itemSets))
}

func (b *tableBuilder) sortedTransitionSymbols(trans map[Symbol]kernel) []Symbol {
	keys := symbolSet{}
	for sym := range trans {
		keys.add(sym)
	}
	return b.g.sortSyms(keys)
}

// resolveTransitions maps every successor kernel to its final state index.
func (b *tableBuilder) resolveTransitions() []map[Symbol]State {
	resolved := make([]map[Symbol]State, len(b.transitions))
	for i, trans := range b.transitions {
		resolved[i] = make(map[Symbol]State, len(trans))
		for sym, kern := range trans {
			resolved[i][sym] = b.byCore[coreFingerprint(kern)]
		}
	}
	return resolved
}

// --- Action tables ----------------------------------------------------------

func (pt *ParseTable) buildActionTables(b *tableBuilder, transitions []map[Symbol]State) error {
	g := pt.grammar
	statecnt := len(b.itemSets)
	pt.shifts = make([]map[Symbol]State, statecnt)
	pt.gotos = make([]map[Symbol]State, statecnt)
	pt.reductions = make([]map[Symbol]*Production, statecnt)
	pt.accepts = make([]bool, statecnt)
	pt.expected = make([][]Symbol, statecnt)

	for s := 0; s < statecnt; s++ {
		pt.shifts[s] = make(map[Symbol]State)
		pt.gotos[s] = make(map[Symbol]State)
		for sym, to := range transitions[s] {
			if g.IsNonterminal(sym) {
				pt.gotos[s][sym] = to
			} else {
				pt.shifts[s][sym] = to
			}
		}
		if err := pt.buildReductions(b, State(s)); err != nil {
			return err
		}
		if err := pt.resolveConflicts(State(s)); err != nil {
			return err
		}
	}
	return nil
}

// buildReductions fills REDUCE and ACCEPT for state s from the completed
// kernel items. Two productions claiming the same lookahead terminal are a
// reduce/reduce conflict, which is never resolved automatically.
func (pt *ParseTable) buildReductions(b *tableBuilder, s State) error {
	g := pt.grammar
	iset := b.itemSets[s]
	reductions := make(map[Symbol]*Production)
	cursorSyms := symbolSet{}
	for _, core := range sortedCores(iset.kernel) {
		if sym := core.peek(); sym != nil {
			cursorSyms.add(sym)
			continue
		}
		if core.prod.name == Start {
			pt.accepts[s] = true
		}
		for _, terminal := range g.sortSyms(iset.kernel[core]) {
			if previous, ok := reductions[terminal]; ok {
				return &ReduceReduceConflictError{
					State:       s,
					Terminal:    terminal,
					Productions: [2]*Production{previous, core.prod},
				}
			}
			reductions[terminal] = core.prod
		}
	}
	pt.reductions[s] = reductions
	pt.expected[s] = g.sortSyms(cursorSyms)
	return nil
}

// resolveConflicts inspects every terminal present in both SHIFT and REDUCE
// of state s. Where both the shifting terminal and the reducing production
// carry precedence, the conflict is decided: the higher precedence wins, and
// at equal precedence left-associativity prefers the reduction. Without
// precedence on both sides the conflict is an error.
func (pt *ParseTable) resolveConflicts(s State) error {
	g := pt.grammar
	shifts, reductions := pt.shifts[s], pt.reductions[s]
	keys := symbolSet{}
	for terminal := range shifts {
		keys.add(terminal)
	}
	for _, terminal := range g.sortSyms(keys) {
		prod, ok := reductions[terminal]
		if !ok {
			continue
		}
		shiftPrec, shiftOK := g.Precedence(terminal)
		redPrec, redOK := g.productionPrecedence(prod)
		if !shiftOK || !redOK {
			return &ShiftReduceConflictError{State: s, Terminal: terminal, Production: prod}
		}
		switch {
		case redPrec > shiftPrec:
			delete(shifts, terminal)
		case redPrec < shiftPrec:
			delete(reductions, terminal)
		case g.Associativity(terminal) == AssocLeft:
			delete(shifts, terminal)
		default:
			delete(reductions, terminal)
		}
		tracer().Debugf("state %d: shift/reduce on %s resolved by precedence",
			s, SymbolString(terminal))
	}
	return nil
}

// sortedCores orders kernel cores by production serial, then cursor.
func sortedCores(k kernel) []itemCore {
	cores := make([]itemCore, 0, len(k))
	for core := range k {
		cores = append(cores, core)
	}
	for i := 1; i < len(cores); i++ { // insertion sort, kernels are small
		for j := i; j > 0 && coreLess(cores[j], cores[j-1]); j-- {
			cores[j], cores[j-1] = cores[j-1], cores[j]
		}
	}
	return cores
}

func coreLess(a, b itemCore) bool {
	if a.prod.serial != b.prod.serial {
		return a.prod.serial < b.prod.serial
	}
	return a.cursor < b.cursor
}

// --- Observable operations --------------------------------------------------

// Grammar returns the grammar this table was built for.
func (pt *ParseTable) Grammar() *Grammar {
	return pt.grammar
}

// Target returns the target symbol this table accepts.
func (pt *ParseTable) Target() Symbol {
	return pt.target
}

// States returns all state handles of the table.
func (pt *ParseTable) States() []State {
	states := make([]State, len(pt.shifts))
	for i := range states {
		states[i] = State(i)
	}
	return states
}

// StartState returns the automaton's initial state.
func (pt *ParseTable) StartState() State {
	return 0
}

// Shift returns the successor state for shifting terminal t in state s.
func (pt *ParseTable) Shift(s State, t Symbol) (State, bool) {
	to, ok := pt.shifts[s][t]
	return to, ok
}

// Goto returns the successor state after reducing to non-terminal nt in
// state s.
func (pt *ParseTable) Goto(s State, nt Symbol) (State, bool) {
	to, ok := pt.gotos[s][nt]
	return to, ok
}

// Reduce returns the production to reduce on lookahead terminal t in
// state s.
func (pt *ParseTable) Reduce(s State, t Symbol) (*Production, bool) {
	prod, ok := pt.reductions[s][t]
	return prod, ok
}

// Accepts reports whether end-of-input in state s accepts the parse.
func (pt *ParseTable) Accepts(s State) bool {
	return pt.accepts[s]
}

// Shifts returns a snapshot of the SHIFT mapping of state s.
func (pt *ParseTable) Shifts(s State) map[Symbol]State {
	return copyStateMap(pt.shifts[s])
}

// Gotos returns a snapshot of the GOTO mapping of state s.
func (pt *ParseTable) Gotos(s State) map[Symbol]State {
	return copyStateMap(pt.gotos[s])
}

// Reductions returns a snapshot of the REDUCE mapping of state s.
func (pt *ParseTable) Reductions(s State) map[Symbol]*Production {
	m := make(map[Symbol]*Production, len(pt.reductions[s]))
	for sym, prod := range pt.reductions[s] {
		m[sym] = prod
	}
	return m
}

// ExpectedAt returns the symbols at the cursor of the kernel items of
// state s, in the grammar's stable symbol order. The parser uses this for
// expected-symbol diagnostics.
func (pt *ParseTable) ExpectedAt(s State) []Symbol {
	syms := make([]Symbol, len(pt.expected[s]))
	copy(syms, pt.expected[s])
	return syms
}

func copyStateMap(m map[Symbol]State) map[Symbol]State {
	c := make(map[Symbol]State, len(m))
	for sym, to := range m {
		c[sym] = to
	}
	return c
}
