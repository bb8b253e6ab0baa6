package lalr

// GrammarBuilder is a convenience object for assembling grammars rule by
// rule. Clients add productions with LHS(…).Sym(…)….End() and finally call
// Grammar().
//
//    b := lalr.NewGrammarBuilder("Expressions")
//    b.LHS("E").Sym("E").Sym("+").Sym("E").End()
//    b.LHS("E").Sym("x").End()
//    b.Precedence(lalr.Left("+"))
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	name    string
	prods   []*Production
	classes []PrecedenceClass
	err     error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// RuleBuilder is a builder type for a single production.
type RuleBuilder struct {
	gb   *GrammarBuilder
	lhs  Symbol
	syms []Symbol
}

// LHS starts a new production for the non-terminal lhs.
func (gb *GrammarBuilder) LHS(lhs Symbol) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: lhs}
}

// Sym appends symbols to the right-hand side of the production under
// construction.
func (rb *RuleBuilder) Sym(symbols ...Symbol) *RuleBuilder {
	rb.syms = append(rb.syms, symbols...)
	return rb
}

// End closes the production under construction and hands it to the grammar
// builder.
func (rb *RuleBuilder) End() *GrammarBuilder {
	if len(rb.syms) == 0 && rb.gb.err == nil {
		rb.gb.err = grammarError("empty right-hand side in production for %s",
			SymbolString(rb.lhs))
		return rb.gb
	}
	rb.gb.prods = append(rb.gb.prods, NewProduction(rb.lhs, rb.syms...))
	return rb.gb
}

// Precedence appends precedence classes, in order of increasing precedence
// level.
func (gb *GrammarBuilder) Precedence(classes ...PrecedenceClass) *GrammarBuilder {
	gb.classes = append(gb.classes, classes...)
	return gb
}

// Grammar returns the built grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	return NewGrammar(gb.prods, WithName(gb.name), WithPrecedence(gb.classes...))
}
