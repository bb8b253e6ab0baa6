/*
Package parser implements the shift-reduce automaton driving LALR(1) parse
tables.

The parser consumes a lazy token stream and emits every reduction to a
client-provided semantic action, bottom-up and left to right. The value
returned by the action replaces the matched values on the result stack; the
value reduced for the target symbol is the parse result.

    result, err := parser.Parse(pt, parser.Tokens("x", "=", "*", "x"),
        func(prod *lalr.Production, values ...interface{}) (interface{}, error) {
            return prod.Name(), nil
        })

Tokens need not be symbols themselves: the TokenSymbol and TokenValue
options install callbacks mapping tokens to their grammar symbol and their
semantic value. Both default to the identity.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parser

import (
	"fmt"

	"github.com/npillmayer/lalr"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lalr.parser'.
func tracer() tracing.Trace {
	return tracing.Select("lalr.parser")
}

// Action is the semantic action invoked for every reduction. The values are
// the semantic values of the production's RHS symbols, in the order they
// were shifted. The returned value is pushed in their place. A non-nil error
// aborts the parse.
type Action func(prod *lalr.Production, values ...interface{}) (interface{}, error)

// Option configures a parse run.
type Option func(*config)

type config struct {
	tokenSymbol func(interface{}) (lalr.Symbol, error)
	tokenValue  func(interface{}) (interface{}, error)
}

// TokenSymbol installs the callback mapping a token to its grammar symbol.
// The default treats the token itself as its symbol.
func TokenSymbol(fn func(token interface{}) (lalr.Symbol, error)) Option {
	return func(cfg *config) {
		cfg.tokenSymbol = fn
	}
}

// TokenValue installs the callback mapping a token to its semantic value.
// The default treats the token itself as its value.
func TokenValue(fn func(token interface{}) (interface{}, error)) Option {
	return func(cfg *config) {
		cfg.tokenValue = fn
	}
}

// lookahead is the parser's single lookahead slot.
type lookahead struct {
	token  interface{} // the raw input token, nil at EOF
	symbol lalr.Symbol
	value  interface{}
}

// Parse runs the automaton over a token stream and returns the value of the
// final reduction.
//
// Syntax errors are reported as *lalr.ParseError, carrying the offending
// token (nil if the input was exhausted) and the set of expected symbols.
// Errors from the token callbacks and from the action propagate unchanged.
func Parse(pt *lalr.ParseTable, tokens TokenStream, action Action, opts ...Option) (interface{}, error) {
	if pt == nil {
		return nil, fmt.Errorf("parser needs a parse table, is nil")
	}
	if action == nil {
		return nil, fmt.Errorf("parser needs a semantic action, is nil")
	}
	cfg := config{
		tokenSymbol: func(token interface{}) (lalr.Symbol, error) { return token, nil },
		tokenValue:  func(token interface{}) (interface{}, error) { return token, nil },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &parse{
		table:      pt,
		tokens:     tokens,
		action:     action,
		cfg:        cfg,
		stateStack: append(make([]lalr.State, 0, 64), pt.StartState()),
	}
	return p.run()
}

// parse holds the per-invocation state: two stacks and the lookahead slot.
// No state is shared between invocations; a table may drive any number of
// concurrent parses.
type parse struct {
	table       *lalr.ParseTable
	tokens      TokenStream
	action      Action
	cfg         config
	stateStack  []lalr.State
	resultStack []interface{}
	la          lookahead
}

func (p *parse) run() (interface{}, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	for {
		state := p.stateStack[len(p.stateStack)-1]

		// Accept
		if p.la.symbol == lalr.EOF && p.table.Accepts(state) {
			if len(p.resultStack) != 1 {
				return nil, fmt.Errorf("corrupt result stack: %d values at accept",
					len(p.resultStack))
			}
			return p.resultStack[0], nil
		}

		// Shift
		if next, ok := p.table.Shift(state, p.la.symbol); ok {
			tracer().Debugf("shift %s, state %d -> %d", lalr.SymbolString(p.la.symbol),
				state, next)
			p.stateStack = append(p.stateStack, next)
			p.resultStack = append(p.resultStack, p.la.value)
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}

		// Reduce
		if prod, ok := p.table.Reduce(state, p.la.symbol); ok {
			if err := p.reduce(prod); err != nil {
				return nil, err
			}
			continue
		}

		return nil, p.parseError(state)
	}
}

// advance pulls the next token and fills the lookahead slot. Exhaustion of
// the stream turns into the EOF sentinel. Errors from the token callbacks
// surface unchanged and leave the lookahead slot untouched.
func (p *parse) advance() error {
	token, ok := p.tokens.Next()
	if !ok {
		p.la = lookahead{token: nil, symbol: lalr.EOF, value: nil}
		return nil
	}
	symbol, err := p.cfg.tokenSymbol(token)
	if err != nil {
		return err
	}
	value, err := p.cfg.tokenValue(token)
	if err != nil {
		return err
	}
	p.la = lookahead{token: token, symbol: symbol, value: value}
	return nil
}

// reduce pops the production's values and states, invokes the action, and
// pushes the resulting value together with the GOTO successor state.
func (p *parse) reduce(prod *lalr.Production) error {
	tracer().Debugf("reduce %v", prod)
	n := prod.Len()
	values := make([]interface{}, n)
	copy(values, p.resultStack[len(p.resultStack)-n:])
	p.resultStack = p.resultStack[:len(p.resultStack)-n]
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
	value, err := p.action(prod, values...)
	if err != nil {
		return err
	}
	top := p.stateStack[len(p.stateStack)-1]
	next, ok := p.table.Goto(top, prod.Name())
	if !ok {
		return fmt.Errorf("corrupt parse table: no goto for %s in state %d",
			lalr.SymbolString(prod.Name()), top)
	}
	p.resultStack = append(p.resultStack, value)
	p.stateStack = append(p.stateStack, next)
	return nil
}

// parseError reports a syntax error at the failing state, with the set of
// symbols that would have allowed the parse to proceed.
func (p *parse) parseError(state lalr.State) error {
	return &lalr.ParseError{
		LookaheadToken:  p.la.token,
		LookaheadSymbol: p.la.symbol,
		ExpectedSymbols: p.expectedSymbols(state),
	}
}

// expectedSymbols collects, per candidate terminal of the failing state,
// the cursor symbols of the kernel items of the state reached by replaying
// all reductions the candidate would trigger on a copy of the state stack.
// If acceptance of EOF is the only possible action, the set is empty.
func (p *parse) expectedSymbols(state lalr.State) []lalr.Symbol {
	candidates := make(map[lalr.Symbol]struct{})
	for terminal := range p.table.Shifts(state) {
		candidates[terminal] = struct{}{}
	}
	for terminal := range p.table.Reductions(state) {
		candidates[terminal] = struct{}{}
	}
	// Replayed reductions cannot outnumber this without revisiting a
	// (state, production) pair, which only a unit-production cycle in the
	// grammar can produce.
	limit := len(p.table.States()) * len(p.table.Grammar().Productions())

	expected := make(map[lalr.Symbol]struct{})
	for terminal := range candidates {
		if terminal == lalr.EOF {
			continue
		}
		sim := make([]lalr.State, len(p.stateStack))
		copy(sim, p.stateStack)
		for steps := 0; steps < limit; steps++ {
			top := sim[len(sim)-1]
			prod, ok := p.table.Reduce(top, terminal)
			if !ok || prod.Len() >= len(sim) {
				break
			}
			sim = sim[:len(sim)-prod.Len()]
			next, ok := p.table.Goto(sim[len(sim)-1], prod.Name())
			if !ok {
				break
			}
			sim = append(sim, next)
		}
		for _, sym := range p.table.ExpectedAt(sim[len(sim)-1]) {
			expected[sym] = struct{}{}
		}
	}
	syms := make([]lalr.Symbol, 0, len(expected))
	for sym := range expected {
		syms = append(syms, sym)
	}
	return lalr.SortSymbols(syms)
}
