package lalr

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/npillmayer/lalr/iteratable"
)

// --- Productions ------------------------------------------------------------

// Production is a rewrite rule A → X₁ … Xₙ. The name A must end up a
// non-terminal of the grammar, the Xᵢ may be terminals or non-terminals.
// Productions are immutable; equality is structural over (name, symbols).
//
// The right-hand side is never empty: grammars are epsilon-free.
type Production struct {
	name    Symbol
	symbols []Symbol
	serial  int // position within the owning grammar, -1 if unattached
}

// NewProduction creates a production name → symbols.
func NewProduction(name Symbol, symbols ...Symbol) *Production {
	rhs := make([]Symbol, len(symbols))
	copy(rhs, symbols)
	return &Production{name: name, symbols: rhs, serial: -1}
}

// Name returns the non-terminal this production is an expansion of.
func (p *Production) Name() Symbol {
	return p.name
}

// Symbols returns a copy of the right-hand side.
func (p *Production) Symbols() []Symbol {
	rhs := make([]Symbol, len(p.symbols))
	copy(rhs, p.symbols)
	return rhs
}

// Len returns the number of right-hand side symbols.
func (p *Production) Len() int {
	return len(p.symbols)
}

// Symbol returns the right-hand side symbol at position i.
func (p *Production) Symbol(i int) Symbol {
	return p.symbols[i]
}

// Equals compares two productions structurally.
func (p *Production) Equals(other *Production) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.name != other.name || len(p.symbols) != len(other.symbols) {
		return false
	}
	for i, sym := range p.symbols {
		if other.symbols[i] != sym {
			return false
		}
	}
	return true
}

func (p *Production) String() string {
	rhs := make([]string, len(p.symbols))
	for i, sym := range p.symbols {
		rhs[i] = SymbolString(sym)
	}
	return fmt.Sprintf("%s ::= %s", SymbolString(p.name), strings.Join(rhs, " "))
}

// --- Precedence classes -----------------------------------------------------

// Associativity of a precedence class.
type Associativity uint8

const (
	AssocNone Associativity = iota
	AssocLeft
	AssocRight
)

func (a Associativity) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	}
	return "none"
}

// PrecedenceClass groups terminals of equal precedence, together with their
// associativity. Classes are handed to NewGrammar in order of increasing
// precedence level.
type PrecedenceClass struct {
	assoc     Associativity
	terminals []Symbol
}

// Left creates a class of left-associative terminals.
func Left(terminals ...Symbol) PrecedenceClass {
	return PrecedenceClass{assoc: AssocLeft, terminals: terminals}
}

// Right creates a class of right-associative terminals.
func Right(terminals ...Symbol) PrecedenceClass {
	return PrecedenceClass{assoc: AssocRight, terminals: terminals}
}

// --- Grammar ----------------------------------------------------------------

// Grammar is an immutable collection of productions together with derived
// attributes: the terminal/non-terminal partition, FIRST sets for every
// symbol, and the precedence/associativity assignment from the grammar's
// precedence classes.
//
// Construct with NewGrammar or through a GrammarBuilder. After construction
// a grammar is read-only and safe for concurrent use.
type Grammar struct {
	Name         string
	productions  []*Production // interned: serial == index
	byName       map[Symbol][]*Production
	terminals    symbolSet
	nonterminals symbolSet
	first        map[Symbol]symbolSet
	prec         map[Symbol]int
	assoc        map[Symbol]Associativity
	ordinal      map[Symbol]int // first-appearance order, for stable traversals
}

// GrammarOption configures a grammar during construction.
type GrammarOption func(*grammarConfig)

type grammarConfig struct {
	name    string
	classes []PrecedenceClass
}

// WithName sets a display name for the grammar.
func WithName(name string) GrammarOption {
	return func(cfg *grammarConfig) {
		cfg.name = name
	}
}

// WithPrecedence declares precedence classes, in order of increasing
// precedence level.
func WithPrecedence(classes ...PrecedenceClass) GrammarOption {
	return func(cfg *grammarConfig) {
		cfg.classes = append(cfg.classes, classes...)
	}
}

// NewGrammar creates a grammar from a list of productions. Duplicate
// productions are collapsed. It returns a *GrammarError if a production is
// malformed, if a reserved symbol is used, or if a precedence class names a
// symbol that is not a terminal of the grammar.
func NewGrammar(productions []*Production, opts ...GrammarOption) (*Grammar, error) {
	cfg := grammarConfig{name: "G"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if len(productions) == 0 {
		return nil, grammarError("grammar without productions")
	}
	g := &Grammar{
		Name:    cfg.name,
		byName:  make(map[Symbol][]*Production),
		first:   make(map[Symbol]symbolSet),
		prec:    make(map[Symbol]int),
		assoc:   make(map[Symbol]Associativity),
		ordinal: make(map[Symbol]int),
	}
	g.terminals = symbolSet{}
	g.nonterminals = symbolSet{}
	for _, p := range productions {
		if err := g.intern(p); err != nil {
			return nil, err
		}
	}
	// Partition: a symbol is a non-terminal iff some production carries its name.
	allsyms := symbolSet{}
	for _, p := range g.productions {
		allsyms.add(p.name)
		g.nonterminals.add(p.name)
		for _, sym := range p.symbols {
			allsyms.add(sym)
		}
	}
	for sym := range allsyms {
		if !g.nonterminals.contains(sym) {
			g.terminals.add(sym)
		}
	}
	g.ordinal[EOF] = len(g.ordinal)
	g.ordinal[Start] = len(g.ordinal)
	g.buildFirstSets()
	if err := g.assignPrecedences(cfg.classes); err != nil {
		return nil, err
	}
	return g, nil
}

// intern stores a canonical copy of p, assigning its serial number.
// Duplicates of already-interned productions are dropped silently.
func (g *Grammar) intern(p *Production) error {
	if p == nil {
		return grammarError("nil production")
	}
	if len(p.symbols) == 0 {
		return grammarError("empty right-hand side in production for %s", SymbolString(p.name))
	}
	if p.name == Start || p.name == EOF {
		return grammarError("reserved symbol %s used as production name", SymbolString(p.name))
	}
	for _, sym := range p.symbols {
		if sym == Start || sym == EOF {
			return grammarError("reserved symbol %s used in production %v", SymbolString(sym), p)
		}
	}
	for _, q := range g.byName[p.name] {
		if q.Equals(p) {
			return nil // duplicate
		}
	}
	canonical := &Production{
		name:    p.name,
		symbols: p.Symbols(),
		serial:  len(g.productions),
	}
	g.productions = append(g.productions, canonical)
	g.byName[p.name] = append(g.byName[p.name], canonical)
	g.noteSymbol(canonical.name)
	for _, sym := range canonical.symbols {
		g.noteSymbol(sym)
	}
	return nil
}

func (g *Grammar) noteSymbol(sym Symbol) {
	if _, ok := g.ordinal[sym]; !ok {
		g.ordinal[sym] = len(g.ordinal)
	}
}

// buildFirstSets computes FIRST(X) for every grammar symbol. FIRST(t) = {t}
// for terminals. For non-terminals we walk the inverse has-first relation:
// starting from each terminal t, every non-terminal reachable over
// productions whose RHS begins with an already-reached symbol receives t.
// The grammar being epsilon-free, no symbol ever contributes emptiness.
func (g *Grammar) buildFirstSets() {
	hasFirst := make(map[Symbol]symbolSet) // RHS-head symbol → production names
	for _, p := range g.productions {
		head := p.symbols[0]
		hasFirst[head] = hasFirst[head].add(p.name)
	}
	for _, t := range g.sortSyms(g.terminals) {
		g.first[t] = newSymbolSet(t)
		starts, ok := hasFirst[t]
		if !ok {
			continue
		}
		queue := iteratable.NewQueue()
		for _, nt := range g.sortSyms(starts) {
			queue.Add(nt)
		}
		for queue.Next() {
			nt := queue.Item()
			if g.first[nt] == nil {
				g.first[nt] = symbolSet{}
			}
			g.first[nt].add(t)
			for _, dep := range g.sortSyms(hasFirst[nt]) {
				queue.Add(dep)
			}
		}
	}
}

func (g *Grammar) assignPrecedences(classes []PrecedenceClass) error {
	for level, class := range classes {
		for _, t := range class.terminals {
			if g.nonterminals.contains(t) {
				return grammarError("non-terminal %s in precedence class", SymbolString(t))
			}
			if !g.terminals.contains(t) {
				return grammarError("precedence class names unknown symbol %s", SymbolString(t))
			}
			if _, seen := g.prec[t]; seen {
				return grammarError("terminal %s in more than one precedence class", SymbolString(t))
			}
			g.prec[t] = level
			g.assoc[t] = class.assoc
		}
	}
	return nil
}

// --- Derived attributes -----------------------------------------------------

// Terminals returns the terminal symbols, in order of first appearance.
func (g *Grammar) Terminals() []Symbol {
	return g.sortSyms(g.terminals)
}

// Nonterminals returns the non-terminal symbols, in order of first appearance.
func (g *Grammar) Nonterminals() []Symbol {
	return g.sortSyms(g.nonterminals)
}

// Symbols returns all grammar symbols, in order of first appearance.
func (g *Grammar) Symbols() []Symbol {
	all := g.terminals.copy()
	all.union(g.nonterminals)
	return g.sortSyms(all)
}

// IsTerminal reports whether sym has no production of its own.
func (g *Grammar) IsTerminal(sym Symbol) bool {
	return g.terminals.contains(sym)
}

// IsNonterminal reports whether sym names at least one production.
func (g *Grammar) IsNonterminal(sym Symbol) bool {
	return g.nonterminals.contains(sym)
}

// IsSymbol reports whether sym occurs in the grammar at all.
func (g *Grammar) IsSymbol(sym Symbol) bool {
	return g.terminals.contains(sym) || g.nonterminals.contains(sym)
}

// Productions returns all productions of the grammar.
func (g *Grammar) Productions() []*Production {
	prods := make([]*Production, len(g.productions))
	copy(prods, g.productions)
	return prods
}

// ProductionsFor returns the productions named by the non-terminal sym, in
// declaration order.
func (g *Grammar) ProductionsFor(sym Symbol) []*Production {
	prods := make([]*Production, len(g.byName[sym]))
	copy(prods, g.byName[sym])
	return prods
}

// FirstSet returns FIRST(sym): the terminals that can begin a derivation
// from sym. For a terminal t this is {t}.
func (g *Grammar) FirstSet(sym Symbol) []Symbol {
	return g.sortSyms(g.first[sym])
}

func (g *Grammar) firstSet(sym Symbol) symbolSet {
	return g.first[sym]
}

// Precedence returns the precedence level of a terminal, if it is a member
// of a precedence class.
func (g *Grammar) Precedence(sym Symbol) (int, bool) {
	level, ok := g.prec[sym]
	return level, ok
}

// Associativity returns the associativity of a terminal, AssocNone if the
// terminal carries no precedence.
func (g *Grammar) Associativity(sym Symbol) Associativity {
	return g.assoc[sym]
}

// productionPrecedence derives the precedence of a production: that of the
// rightmost terminal in its RHS which has precedence assigned.
func (g *Grammar) productionPrecedence(p *Production) (int, bool) {
	for i := len(p.symbols) - 1; i >= 0; i-- {
		if level, ok := g.prec[p.symbols[i]]; ok {
			return level, ok
		}
	}
	return 0, false
}

// ordinalOf positions sym within the grammar's stable symbol order.
func (g *Grammar) ordinalOf(sym Symbol) int {
	if ord, ok := g.ordinal[sym]; ok {
		return ord
	}
	return len(g.ordinal)
}

// symbolComparator orders symbols by the grammar's stable symbol order.
func (g *Grammar) symbolComparator(a, b interface{}) int {
	oa, ob := g.ordinalOf(a), g.ordinalOf(b)
	if oa != ob {
		return oa - ob
	}
	return strings.Compare(SymbolString(a), SymbolString(b))
}

// sortSyms orders a symbol set by the grammar's stable symbol order.
func (g *Grammar) sortSyms(set symbolSet) []Symbol {
	sorted := treeset.NewWith(g.symbolComparator)
	for sym := range set {
		sorted.Add(sym)
	}
	syms := make([]Symbol, 0, sorted.Size())
	for _, sym := range sorted.Values() {
		syms = append(syms, sym)
	}
	return syms
}

// Dump is a debugging helper, tracing all productions of the grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ----------", g.Name)
	for _, p := range g.productions {
		tracer().Debugf("%3d: %v", p.serial, p)
	}
	tracer().Debugf("-------------------------")
}
