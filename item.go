package lalr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
)

// itemCore is the (production, cursor) projection of an LR(1) item,
// ignoring lookaheads. Productions are interned by their grammar, so cores
// are comparable values and serve as the identity of an LALR state's items.
type itemCore struct {
	prod   *Production
	cursor int
}

// peek returns the symbol right after the cursor, nil if the cursor is at
// the end of the production.
func (c itemCore) peek() Symbol {
	if c.cursor >= len(c.prod.symbols) {
		return nil
	}
	return c.prod.symbols[c.cursor]
}

// rest returns the symbols after the expected one.
func (c itemCore) rest() []Symbol {
	if c.cursor+1 >= len(c.prod.symbols) {
		return nil
	}
	return c.prod.symbols[c.cursor+1:]
}

// advance moves the cursor over the expected symbol.
func (c itemCore) advance() itemCore {
	return itemCore{prod: c.prod, cursor: c.cursor + 1}
}

// atEnd reports whether the whole RHS has been matched.
func (c itemCore) atEnd() bool {
	return c.cursor == len(c.prod.symbols)
}

func (c itemCore) String() string {
	rhs := make([]string, 0, len(c.prod.symbols)+1)
	for i, sym := range c.prod.symbols {
		if i == c.cursor {
			rhs = append(rhs, "•")
		}
		rhs = append(rhs, SymbolString(sym))
	}
	if c.atEnd() {
		rhs = append(rhs, "•")
	}
	return fmt.Sprintf("%s ::= %s", SymbolString(c.prod.name), strings.Join(rhs, " "))
}

// kernel is the set of items carried into a state from its predecessor,
// represented as a mapping from item cores to lookahead sets. The start
// state's kernel holds the single augmented start item.
type kernel map[itemCore]symbolSet

// add unions lookaheads into the item for core, creating it if necessary.
func (k kernel) add(core itemCore, lookahead symbolSet) {
	if la, ok := k[core]; ok {
		la.union(lookahead)
		return
	}
	k[core] = lookahead.copy()
}

// mergeKernels unions the lookahead sets of two kernels sharing the same
// core set. This is the LALR merge step.
func mergeKernels(a, b kernel) kernel {
	merged := make(kernel, len(a))
	for core, la := range a {
		merged[core] = la.copy()
	}
	for core, la := range b {
		merged.add(core, la)
	}
	return merged
}

// itemSet is a state's full item set: the kernel plus the items derived
// from it by closure. Derived items always have their cursor at position 0,
// so they are represented by production and lookahead set alone.
type itemSet struct {
	kernel  kernel
	derived map[*Production]symbolSet
}

// each visits every item of the set, kernel items first.
func (s *itemSet) each(visit func(core itemCore, lookahead symbolSet)) {
	for core, la := range s.kernel {
		visit(core, la)
	}
	for prod, la := range s.derived {
		visit(itemCore{prod: prod, cursor: 0}, la)
	}
}

// --- Fingerprints -----------------------------------------------------------

// Kernels are maps and cannot serve as map keys themselves; the table
// builder identifies them by content hashes instead. coreFingerprint strips
// lookaheads and is the LALR state identity; kernelFingerprint includes
// lookaheads and is the work-queue identity (a kernel whose lookaheads grew
// through merging must be processed again).

func coreFingerprint(k kernel) string {
	descriptors := make([]string, 0, len(k))
	for core := range k {
		descriptors = append(descriptors, fmt.Sprintf("%d.%d", core.prod.serial, core.cursor))
	}
	sort.Strings(descriptors)
	return hashDescriptors(descriptors)
}

func kernelFingerprint(g *Grammar, k kernel) string {
	descriptors := make([]string, 0, len(k))
	for core, la := range k {
		ordinals := make([]int, 0, len(la))
		for sym := range la {
			ordinals = append(ordinals, g.ordinalOf(sym))
		}
		sort.Ints(ordinals)
		descriptors = append(descriptors,
			fmt.Sprintf("%d.%d:%v", core.prod.serial, core.cursor, ordinals))
	}
	sort.Strings(descriptors)
	return hashDescriptors(descriptors)
}

func hashDescriptors(descriptors []string) string {
	hash, err := structhash.Hash(struct {
		Items []string
	}{
		Items: descriptors,
	}, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	return hash
}
