package lalr

import (
	"fmt"
	"io"
)

// ExportDOT exports the table's state graph to the Graphviz Dot format.
// This is a debugging aid; accepting states are shaded.
func (pt *ParseTable) ExportDOT(w io.Writer) {
	io.WriteString(w, `digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range pt.States() {
		fmt.Fprintf(w, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s, nodecolor(pt, s), s, stateLabel(pt, s))
	}
	it := pt.edges.Iterator()
	for it.Next() {
		edge := it.Value().(tableEdge)
		fmt.Fprintf(w, "s%03d -> s%03d [label=\"%s\"]\n",
			edge.from, edge.to, SymbolString(edge.label))
	}
	io.WriteString(w, "}\n")
}

func nodecolor(pt *ParseTable, s State) string {
	if pt.Accepts(s) {
		return "lightgray"
	}
	return "white"
}

func stateLabel(pt *ParseTable, s State) string {
	label := fmt.Sprintf("%d shifts, %d reductions", len(pt.shifts[s]), len(pt.reductions[s]))
	if len(pt.expected[s]) > 0 {
		label += fmt.Sprintf("\\nexpecting %v", pt.expected[s])
	}
	return label
}

// Dump traces all states of the table, including their actions. Only
// visible at debug level.
func (pt *ParseTable) Dump() {
	tracer().Debugf("--- parse table for %s: %d states ---", SymbolString(pt.target),
		len(pt.shifts))
	for _, s := range pt.States() {
		accept := ""
		if pt.Accepts(s) {
			accept = " (accept)"
		}
		tracer().Debugf("state %03d%s", s, accept)
		for _, t := range pt.grammar.sortSyms(keysOfStates(pt.shifts[s])) {
			tracer().Debugf("   shift %s -> %d", SymbolString(t), pt.shifts[s][t])
		}
		for _, t := range pt.grammar.sortSyms(keysOfProds(pt.reductions[s])) {
			tracer().Debugf("   reduce %s by %v", SymbolString(t), pt.reductions[s][t])
		}
		for _, nt := range pt.grammar.sortSyms(keysOfStates(pt.gotos[s])) {
			tracer().Debugf("   goto %s -> %d", SymbolString(nt), pt.gotos[s][nt])
		}
	}
	tracer().Debugf("-------------------------------------")
}

func keysOfStates(m map[Symbol]State) symbolSet {
	keys := symbolSet{}
	for sym := range m {
		keys.add(sym)
	}
	return keys
}

func keysOfProds(m map[Symbol]*Production) symbolSet {
	keys := symbolSet{}
	for sym := range m {
		keys.add(sym)
	}
	return keys
}
