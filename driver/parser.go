package driver

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/nihei9/slrkit/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrkit.driver'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.driver")
}

// TraceEntry is one action the parser performed. Stack is the state stack,
// bottom first, and Cursor the index of the lookahead token, both as they
// were before the action.
type TraceEntry struct {
	Action *grammar.Action
	Stack  []int
	Cursor int
}

// Trace is the ordered list of SHIFT, REDUCE, and ACCEPT actions of a parse.
// The GOTO lookups following reductions are not part of it.
type Trace struct {
	Entries []*TraceEntry
}

func (t *Trace) Actions() []*grammar.Action {
	acts := make([]*grammar.Action, len(t.Entries))
	for i, e := range t.Entries {
		acts[i] = e.Action
	}
	return acts
}

// Accepted reports whether the trace ends with ACCEPT.
func (t *Trace) Accepted() bool {
	if len(t.Entries) == 0 {
		return false
	}
	return t.Entries[len(t.Entries)-1].Action.Type == grammar.ActionTypeAccept
}

// Derivation returns the productions of the REDUCE actions, last one first.
// For an accepted trace, this is a rightmost derivation of the input.
func (t *Trace) Derivation() []*grammar.Production {
	var prods []*grammar.Production
	for i := len(t.Entries) - 1; i >= 0; i-- {
		act := t.Entries[i].Action
		if act.Type != grammar.ActionTypeReduce {
			continue
		}
		prods = append(prods, act.Production)
	}
	return prods
}

// ParseError reports an input the grammar doesn't accept. Offset is the
// 1-based position of the token the parser failed at; it is one past the
// last token when the input ended too early. Trace holds the actions
// performed before the failure.
type ParseError struct {
	Offset   int
	Token    *Token
	State    int
	Expected []grammar.Symbol
	Trace    *Trace
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error at input offset %v: ", e.Offset)
	if e.Token == nil {
		fmt.Fprintf(&b, "unexpected end of input")
	} else {
		fmt.Fprintf(&b, "unexpected token %#v", e.Token.Text)
	}
	if len(e.Expected) > 0 {
		syms := make([]string, len(e.Expected))
		for i, sym := range e.Expected {
			syms[i] = sym.String()
		}
		fmt.Fprintf(&b, "; expected: %v", strings.Join(syms, ", "))
	}
	return b.String()
}

// InternalError means the parsing table is inconsistent: after a reduction,
// the state on top of the stack has no GOTO action for the head of the
// production. A table built by the grammar package never causes it.
type InternalError struct {
	State      int
	Symbol     grammar.Symbol
	Found      *grammar.Action
	Production *grammar.Production
	Trace      *Trace
}

func (e *InternalError) Error() string {
	found := "nothing"
	if e.Found != nil {
		found = e.Found.String()
	}
	return fmt.Sprintf("internal error: after reducing by %v, state %v has %v instead of a GOTO on %v", e.Production, e.State, found, e.Symbol)
}

// Parser runs the SLR stack machine over a token sequence. A Parser owns its
// stack, cursor, and trace, so it must not be used from several goroutines at
// once; the compiled grammar may be shared among any number of parsers.
type Parser struct {
	gram   *grammar.Compiled
	tokens []*Token
	stack  *arraystack.Stack
	cursor int
	trace  *Trace
}

func NewParser(gram *grammar.Compiled, tokens []*Token) *Parser {
	return &Parser{
		gram:   gram,
		tokens: tokens,
		stack:  arraystack.New(),
	}
}

// Parse returns the trace of an accepted input. On failure it returns the
// partial trace together with a *ParseError or an *InternalError. Every call
// starts from the beginning of the input with an empty stack and a new
// trace.
func (p *Parser) Parse() (*Trace, error) {
	ptab := p.gram.Table
	p.stack.Clear()
	p.cursor = 0
	p.trace = &Trace{}
	p.push(ptab.InitialState)

	for {
		state := p.top()
		sym, tok := p.lookahead()
		act, ok := p.lookupTerminal(state, sym)
		if !ok {
			return p.trace, p.newParseError(state, tok)
		}

		p.record(act)
		tracer().Debugf("state %v, lookahead %v: %v", state, sym, act)

		switch act.Type {
		case grammar.ActionTypeShift:
			p.push(act.State)
			p.cursor++
		case grammar.ActionTypeReduce:
			prod := act.Production
			if p.stack.Size() <= len(prod.Body) {
				return p.trace, &InternalError{
					State:      state,
					Symbol:     prod.Head,
					Production: prod,
					Trace:      p.trace,
				}
			}
			for i := 0; i < len(prod.Body); i++ {
				p.pop()
			}
			top := p.top()
			goTo, ok := ptab.Action(top, prod.Head)
			if !ok || goTo.Type != grammar.ActionTypeGoTo {
				e := &InternalError{
					State:      top,
					Symbol:     prod.Head,
					Production: prod,
					Trace:      p.trace,
				}
				if ok {
					e.Found = goTo
				}
				return p.trace, e
			}
			p.push(goTo.State)
		case grammar.ActionTypeAccept:
			return p.trace, nil
		}
	}
}

// lookupTerminal finds the action for a lookahead. Only shift, reduce, and
// accept actions count; a token spelled like a non-terminal has none. An
// explicit `$` is the end of input only as the very last token.
func (p *Parser) lookupTerminal(state int, sym grammar.Symbol) (*grammar.Action, bool) {
	if sym == grammar.SymbolEOF && p.cursor < len(p.tokens)-1 {
		return nil, false
	}
	act, ok := p.gram.Table.Action(state, sym)
	if !ok || act.Type == grammar.ActionTypeGoTo {
		return nil, false
	}
	return act, true
}

func (p *Parser) lookahead() (grammar.Symbol, *Token) {
	if p.cursor >= len(p.tokens) {
		return grammar.SymbolEOF, nil
	}
	tok := p.tokens[p.cursor]
	return grammar.Symbol(tok.Text), tok
}

func (p *Parser) newParseError(state int, tok *Token) *ParseError {
	return &ParseError{
		Offset:   p.cursor + 1,
		Token:    tok,
		State:    state,
		Expected: p.searchLookahead(state),
		Trace:    p.trace,
	}
}

// searchLookahead lists the terminals a state has an action for, in grammar
// order with EOF last.
func (p *Parser) searchLookahead(state int) []grammar.Symbol {
	var syms []grammar.Symbol
	for _, sym := range append(p.gram.Grammar.Terminals(), grammar.SymbolEOF) {
		act, ok := p.gram.Table.Action(state, sym)
		if !ok || act.Type == grammar.ActionTypeGoTo {
			continue
		}
		syms = append(syms, sym)
	}
	return syms
}

func (p *Parser) record(act *grammar.Action) {
	p.trace.Entries = append(p.trace.Entries, &TraceEntry{
		Action: act,
		Stack:  p.snapshot(),
		Cursor: p.cursor,
	})
}

func (p *Parser) top() int {
	v, ok := p.stack.Peek()
	if !ok {
		return p.gram.Table.InitialState
	}
	return v.(int)
}

func (p *Parser) push(state int) {
	p.stack.Push(state)
}

func (p *Parser) pop() {
	p.stack.Pop()
}

// snapshot returns the stack bottom first.
func (p *Parser) snapshot() []int {
	vals := p.stack.Values()
	states := make([]int, len(vals))
	for i, v := range vals {
		states[len(vals)-1-i] = v.(int)
	}
	return states
}
