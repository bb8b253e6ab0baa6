package lalr

// Closure and goto-set operations.
//
// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc,
// Jr., section 6.5.1 on LALR(1) lookahead propagation.

import (
	"github.com/npillmayer/lalr/iteratable"
)

// derivedItems expands the non-terminals expected by kernel items into the
// set of derived items, propagating lookaheads.
//
// A follow set is maintained per reached non-terminal: the lookahead set to
// attach to items generated for it. For an item N ::= … • B β with
// non-empty β, B's follow set grows by FIRST(β); with empty β it grows by
// the item's own lookaheads, and any future growth of follow(N) must then
// propagate to follow(B). These direct-propagation edges are tracked in
// dependants and replayed transitively, which keeps self-left-recursive
// non-terminals from looping.
func derivedItems(g *Grammar, kern kernel) map[*Production]symbolSet {
	followSets := make(map[Symbol]symbolSet)
	symQueue := iteratable.NewQueue()

	for core, lookahead := range kern {
		sym := core.peek()
		if sym == nil || g.IsTerminal(sym) {
			continue
		}
		if followSets[sym] == nil {
			followSets[sym] = symbolSet{}
		}
		if rest := core.rest(); len(rest) > 0 {
			followSets[sym].union(g.firstSet(rest[0]))
		} else {
			followSets[sym].union(lookahead)
		}
		symQueue.Add(sym)
	}

	reached := make(map[*Production]struct{})
	dependants := make(map[Symbol]symbolSet) // direct propagation edges

	for symQueue.Next() {
		sym := symQueue.Item()
		for _, prod := range g.byName[sym] {
			reached[prod] = struct{}{}

			// The grammar is epsilon-free and the cursor sits at position 0,
			// so there is always a first RHS symbol.
			first := prod.symbols[0]
			if g.IsTerminal(first) {
				continue
			}
			symQueue.Add(first)

			var newItems symbolSet
			if len(prod.symbols) > 1 {
				newItems = g.firstSet(prod.symbols[1])
			} else {
				newItems = followSets[prod.name]
				// follow(first) must track follow(prod.name) from now on
				dependants[prod.name] = dependants[prod.name].add(first)
			}
			if followSets[first] == nil {
				followSets[first] = symbolSet{}
			}
			followSets[first].union(newItems)

			// Propagate newItems through the transitive closure of the
			// dependant relation, each symbol visited once.
			depQueue := iteratable.NewQueue(first)
			for depQueue.Next() {
				dep := depQueue.Item()
				for transitive := range dependants[dep] {
					depQueue.Add(transitive)
					if followSets[transitive] == nil {
						followSets[transitive] = symbolSet{}
					}
					followSets[transitive].union(newItems)
				}
			}
		}
	}

	derived := make(map[*Production]symbolSet, len(reached))
	for prod := range reached {
		derived[prod] = followSets[prod.name].copy()
	}
	return derived
}

// buildItemSet extends a kernel by its closure.
func buildItemSet(g *Grammar, kern kernel) *itemSet {
	return &itemSet{
		kernel:  kern,
		derived: derivedItems(g, kern),
	}
}

// transitionsOf computes, per expected symbol X, the successor kernel
// GOTO(S, X): every item of S expecting X, advanced over it, lookaheads
// preserved.
func transitionsOf(s *itemSet) map[Symbol]kernel {
	kernels := make(map[Symbol]kernel)
	s.each(func(core itemCore, lookahead symbolSet) {
		sym := core.peek()
		if sym == nil {
			return
		}
		successor, ok := kernels[sym]
		if !ok {
			successor = kernel{}
			kernels[sym] = successor
		}
		successor.add(core.advance(), lookahead)
	})
	return kernels
}
