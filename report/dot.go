package report

import (
	"fmt"
	"io"
	"strings"
)

// WriteDot exports the LR(0) automaton in the Graphviz DOT format. Each node
// lists the kernel items of a state and each edge is labeled with the symbol
// of the transition. The state holding the accept action is filled gray.
func WriteDot(w io.Writer, r *Report) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range r.States {
		items := make([]string, len(s.Kernel))
		for i, item := range s.Kernel {
			items[i] = escapeRecordLabel(r.formatItem(item))
		}
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s\\l}\"]\n", s.Number, nodeColor(s), s.Number, strings.Join(items, "\\l"))
	}
	for _, s := range r.States {
		for _, tran := range s.Next {
			fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", s.Number, tran.State, escapeEdgeLabel(tran.Symbol))
		}
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func nodeColor(s *State) string {
	if s.Accept {
		return "lightgray"
	}
	return "white"
}

var recordLabelReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
)

func escapeRecordLabel(s string) string {
	return recordLabelReplacer.Replace(s)
}

var edgeLabelReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
)

func escapeEdgeLabel(s string) string {
	return edgeLabelReplacer.Replace(s)
}
