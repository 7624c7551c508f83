package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nihei9/slrkit/driver"
	"github.com/nihei9/slrkit/grammar"
)

// WriteActions writes the actions of a trace one per line, e.g. `SHIFT 2`
// and `REDUCE F :: id`.
func WriteActions(w io.Writer, trace *driver.Trace) error {
	for _, act := range trace.Actions() {
		_, err := fmt.Fprintln(w, act)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteTrace lays out a trace step by step with the state stack and the
// remaining input before each action.
func WriteTrace(w io.Writer, trace *driver.Trace, tokens []*driver.Token) error {
	data := [][]string{
		{"Step", "Stack", "Input", "Action"},
	}
	for i, e := range trace.Entries {
		stack := make([]string, len(e.Stack))
		for j, state := range e.Stack {
			stack[j] = fmt.Sprintf("%v", state)
		}

		var input []string
		if e.Cursor < len(tokens) {
			for _, tok := range tokens[e.Cursor:] {
				input = append(input, tok.Text)
			}
		}
		if len(input) == 0 || input[len(input)-1] != grammar.SymbolEOF.String() {
			input = append(input, grammar.SymbolEOF.String())
		}

		data = append(data, []string{
			fmt.Sprintf("%v", i+1),
			strings.Join(stack, " "),
			strings.Join(input, " "),
			e.Action.String(),
		})
	}

	return writeTable(w, data)
}

// WriteDerivation writes the productions of the REDUCE actions, last one
// first, which is the rightmost derivation of an accepted input.
func WriteDerivation(w io.Writer, trace *driver.Trace) error {
	for _, prod := range trace.Derivation() {
		_, err := fmt.Fprintln(w, prod)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteSententialForms writes each step of the rightmost derivation, e.g.
//
//	E
//	=> E + T
//	=> E + F
func WriteSententialForms(w io.Writer, g *grammar.Grammar, trace *driver.Trace) error {
	forms, err := driver.SententialForms(g, trace.Derivation())
	if err != nil {
		return err
	}
	for i, form := range forms {
		syms := make([]string, len(form))
		for j, sym := range form {
			syms[j] = sym.String()
		}
		line := strings.Join(syms, " ")
		if i > 0 {
			line = "=> " + line
		}
		_, err := fmt.Fprintln(w, line)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteTree(w io.Writer, root *driver.Node) error {
	driver.PrintTree(w, root)
	return nil
}
