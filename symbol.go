package lalr

import "fmt"

// Symbol is a grammar symbol. Any comparable Go value may serve as a symbol;
// strings are the common case, but integers or application-defined token
// types work just as well. Identity is value identity: two symbols are the
// same symbol iff they compare equal with ==.
//
// Terminals and non-terminals share the symbol space. The partition is
// derived by the grammar: a symbol is a non-terminal iff it appears as the
// name of at least one production.
type Symbol interface{}

// reservedSymbol is the type of the sentinel symbols. Being unexported, no
// client-supplied symbol can ever compare equal to a sentinel.
type reservedSymbol string

func (r reservedSymbol) String() string {
	return string(r)
}

// Reserved sentinel symbols, distinguishable from every client symbol.
var (
	// Start is the augmented start symbol S'. The table builder adds a
	// synthetic production S' → target; clients never use Start directly.
	Start Symbol = reservedSymbol("S'")

	// EOF is the end-of-input marker. It appears in lookahead sets and is
	// synthesized by the parser when the token stream is exhausted.
	EOF Symbol = reservedSymbol("EOF")
)

// SymbolString returns a printable representation of a symbol.
func SymbolString(sym Symbol) string {
	if sym == nil {
		return "<nil>"
	}
	return fmt.Sprint(sym)
}

// --- Symbol sets ------------------------------------------------------------

// symbolSet is a set of symbols, keyed by value identity.
type symbolSet map[Symbol]struct{}

var exists = struct{}{}

func newSymbolSet(syms ...Symbol) symbolSet {
	set := make(symbolSet, len(syms))
	for _, sym := range syms {
		set[sym] = exists
	}
	return set
}

func (set symbolSet) add(sym Symbol) symbolSet {
	if set == nil {
		set = symbolSet{}
	}
	set[sym] = exists
	return set
}

func (set symbolSet) contains(sym Symbol) bool {
	if set == nil {
		return false
	}
	_, ok := set[sym]
	return ok
}

// union adds all members of other, reporting whether set grew.
func (set symbolSet) union(other symbolSet) bool {
	grew := false
	for sym := range other {
		if !set.contains(sym) {
			set[sym] = exists
			grew = true
		}
	}
	return grew
}

func (set symbolSet) copy() symbolSet {
	c := make(symbolSet, len(set))
	for sym := range set {
		c[sym] = exists
	}
	return c
}

func (set symbolSet) equals(other symbolSet) bool {
	if len(set) != len(other) {
		return false
	}
	for sym := range set {
		if !other.contains(sym) {
			return false
		}
	}
	return true
}
