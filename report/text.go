package report

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/dekarrin/rosed"
)

func WriteTerminals(w io.Writer, r *Report) error {
	for _, sym := range r.Terminals {
		_, err := fmt.Fprintln(w, sym)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteNonTerminals(w io.Writer, r *Report) error {
	for _, sym := range r.NonTerminals {
		_, err := fmt.Fprintln(w, sym)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteFirstSets writes one line per non-terminal, e.g. `First (E): ( id`.
// A nullable non-terminal has ε in its set.
func WriteFirstSets(w io.Writer, r *Report) error {
	for _, sets := range r.Sets {
		_, err := fmt.Fprintf(w, "First (%v): %v\n", sets.Symbol, strings.Join(sets.First, " "))
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteFollowSets(w io.Writer, r *Report) error {
	for _, sets := range r.Sets {
		_, err := fmt.Fprintf(w, "Follow (%v): %v\n", sets.Symbol, strings.Join(sets.Follow, " "))
		if err != nil {
			return err
		}
	}
	return nil
}

const statesTemplate = `# Conflicts

{{ printConflictSummary . }}

# Productions

{{ range .Productions -}}
{{ printProduction . }}
{{ end }}
# States
{{ range .States }}
## State {{ .Number }}

{{ range .Kernel -}}
{{ printItem . }}
{{ end -}}
{{ range .Closure -}}
{{ printClosureItem . }}
{{ end }}
{{ range .Shift -}}
{{ printShift . }}
{{ end -}}
{{ range .Reduce -}}
{{ printReduce . }}
{{ end -}}
{{ if .Accept -}}
accept      on $
{{ end -}}
{{ range .GoTo -}}
{{ printGoTo . }}
{{ end -}}
{{ range .Conflicts -}}
{{ printConflict . }}
{{ end -}}
{{ end }}`

// WriteStates writes the productions and, for each state, its kernel items,
// the items the closure added (indented), and its row of the parsing table.
func WriteStates(w io.Writer, r *Report) error {
	fns := template.FuncMap{
		"printConflictSummary": func(r *Report) string {
			switch n := r.ConflictCount(); n {
			case 0:
				return "No conflict"
			case 1:
				return "1 conflict occurred and was resolved by the last write."
			default:
				return fmt.Sprintf("%v conflicts occurred and were resolved by the last write.", n)
			}
		},
		"printProduction": func(prod *Production) string {
			return fmt.Sprintf("%4v %v", prod.Number, formatProduction(prod))
		},
		"printItem": func(item *Item) string {
			return fmt.Sprintf("%4v %v", item.Production, r.formatItem(item))
		},
		"printClosureItem": func(item *Item) string {
			return fmt.Sprintf("%4v   %v", item.Production, r.formatItem(item))
		},
		"printShift": func(tran *Transition) string {
			return fmt.Sprintf("shift  %4v on %v", tran.State, tran.Symbol)
		},
		"printReduce": func(red *Reduce) string {
			return fmt.Sprintf("reduce %4v on %v", red.Production, strings.Join(red.LookAhead, ", "))
		},
		"printGoTo": func(tran *Transition) string {
			return fmt.Sprintf("goto   %4v on %v", tran.State, tran.Symbol)
		},
		"printConflict": func(c *Conflict) string {
			return fmt.Sprintf("%v conflict on %v: %v replaced by %v", c.Kind, c.Symbol, c.Replaced, c.Adopted)
		},
	}

	tmpl, err := template.New("").Funcs(fns).Parse(statesTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

// WriteConflicts writes one line per overwritten table cell in the order the
// cells were written.
func WriteConflicts(w io.Writer, r *Report) error {
	for _, s := range r.States {
		for _, c := range s.Conflicts {
			_, err := fmt.Fprintf(w, "%v conflict in state %v on %v: %v replaced by %v\n", c.Kind, s.Number, c.Symbol, c.Replaced, c.Adopted)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteTable lays out the parsing table with one row per state: shift,
// reduce, and accept actions under the terminals and goto targets under the
// non-terminals.
func WriteTable(w io.Writer, r *Report) error {
	lookAheads := append(append([]string{}, r.Terminals...), eofSymbol)

	headers := []string{"State", columnSeparator}
	headers = append(headers, lookAheads...)
	headers = append(headers, columnSeparator)
	headers = append(headers, r.NonTerminals...)
	data := [][]string{headers}

	for _, s := range r.States {
		cells := map[string]string{}
		for _, tran := range s.Shift {
			cells[tran.Symbol] = fmt.Sprintf("s%v", tran.State)
		}
		for _, red := range s.Reduce {
			for _, sym := range red.LookAhead {
				cells[sym] = fmt.Sprintf("r%v", red.Production)
			}
		}
		if s.Accept {
			cells[eofSymbol] = "acc"
		}
		gotos := map[string]string{}
		for _, tran := range s.GoTo {
			gotos[tran.Symbol] = fmt.Sprintf("%v", tran.State)
		}

		row := []string{fmt.Sprintf("%v", s.Number), columnSeparator}
		for _, sym := range lookAheads {
			row = append(row, cells[sym])
		}
		row = append(row, columnSeparator)
		for _, sym := range r.NonTerminals {
			row = append(row, gotos[sym])
		}
		data = append(data, row)
	}

	return writeTable(w, data)
}

// writeTable lays out data with rosed, taking the first row as the header.
// The header keeps symbol names as written, so the rule under it is an
// ordinary row rather than rosed's header mode, which upper-cases it.
func writeTable(w io.Writer, data [][]string) error {
	if len(data) == 0 {
		return nil
	}
	widths := make([]int, len(data[0]))
	for _, row := range data {
		for col, cell := range row {
			if col < len(widths) && utf8.RuneCountInString(cell) > widths[col] {
				widths[col] = utf8.RuneCountInString(cell)
			}
		}
	}
	rule := make([]string, len(widths))
	for col, width := range widths {
		if data[0][col] == columnSeparator {
			rule[col] = columnSeparator
			continue
		}
		rule[col] = strings.Repeat("-", width)
	}
	rows := make([][]string, 0, len(data)+1)
	rows = append(rows, data[0], rule)
	rows = append(rows, data[1:]...)

	_, err := io.WriteString(w, rosed.
		Edit("").
		InsertTableOpts(0, rows, 10, rosed.Options{
			NoTrailingLineSeparators: true,
		}).
		String())
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

const (
	eofSymbol       = "$"
	columnSeparator = "|"
)

func formatProduction(prod *Production) string {
	if len(prod.Body) == 0 {
		return fmt.Sprintf("%v :: empty", prod.Head)
	}
	return fmt.Sprintf("%v :: %v", prod.Head, strings.Join(prod.Body, " "))
}

func (r *Report) formatItem(item *Item) string {
	prod := r.production(item.Production)
	if prod == nil {
		return fmt.Sprintf("<unknown production %v>", item.Production)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v ::", prod.Head)
	for i, sym := range prod.Body {
		if i == item.Dot {
			fmt.Fprintf(&b, " ・%v", sym)
			continue
		}
		fmt.Fprintf(&b, " %v", sym)
	}
	if item.Dot >= len(prod.Body) {
		fmt.Fprintf(&b, " ・")
	}
	return b.String()
}
