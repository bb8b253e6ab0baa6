/*
Package lalr is an LALR(1) parser generator and table-driven parser runtime.

Given a context-free grammar, expressed as a set of productions together with
a designated target symbol, lalr constructs a deterministic bottom-up parse
table. Table construction follows the canonical LR(1) item-set construction,
merging states with identical kernel cores in the LALR(1) fashion. Conflicts
(shift/reduce and reduce/reduce) are detected at construction time;
shift/reduce conflicts may be resolved by operator precedence, if the grammar
declares precedence classes.

Package structure is as follows:

■ lalr: The base package holds grammars, LR(1) items, the table construction
pipeline and the resulting parse tables.

■ parser: Package parser implements the shift-reduce automaton which drives
the tables against a stream of input tokens, emitting reductions to a
client-provided semantic action.

■ scanner: Package scanner provides tokenizer interfaces and two default
implementations, one backed by stdlib's text/scanner and one by lexmachine.

■ iteratable: Package iteratable implements the insertion-ordered visit-once
queue which the grammar analysis and table construction are built on.

Usage

Clients create a grammar from a list of productions, then build a parse table
for a target symbol:

    g, err := lalr.NewGrammar([]*lalr.Production{
        lalr.NewProduction("Sum", "Sum", "+", "number"),
        lalr.NewProduction("Sum", "number"),
    })
    pt, err := lalr.NewParseTable(g, "Sum")

The table is immutable and may be shared between concurrent parse runs:

    result, err := parser.Parse(pt, parser.Tokens("number", "+", "number"), action)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lalr

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'lalr'.
func tracer() tracing.Trace {
	return tracing.Select("lalr")
}
