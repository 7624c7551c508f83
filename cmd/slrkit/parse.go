package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nihei9/slrkit/driver"
	"github.com/nihei9/slrkit/grammar"
	"github.com/nihei9/slrkit/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	quiet *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path> <token file path>",
		Short:   "Parse a token sequence and write the actions the parser performed",
		Example: `  slrkit parse expr.grammar input.txt -o out`,
		Args:    cobra.ExactArgs(2),
		RunE:    runParse,
	}
	parseFlags.quiet = cmd.Flags().BoolP("quiet", "q", false, "don't print the parse tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	cgram, err := compileGrammarFile(args[0], conf.DedupMode())
	if err != nil {
		return err
	}

	toks, err := readTokenFile(args[1])
	if err != nil {
		return err
	}

	trace, err := driver.NewParser(cgram, toks).Parse()
	if err != nil {
		var parseErr *driver.ParseError
		if errors.As(err, &parseErr) {
			wErr := writeArtifacts(conf.Output, deadParseArtifacts(trace))
			if wErr != nil {
				return fmt.Errorf("Cannot write output files: %w", wErr)
			}
		}
		return err
	}

	root, err := driver.BuildTree(cgram.Grammar, trace, toks)
	if err != nil {
		return err
	}

	err = writeArtifacts(conf.Output, parseArtifacts(cgram.Grammar, trace, toks, root))
	if err != nil {
		return fmt.Errorf("Cannot write output files: %w", err)
	}

	if !*parseFlags.quiet {
		err = renderTree(root)
		if err != nil {
			return err
		}
	}

	return nil
}

func readTokenFile(path string) ([]*driver.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the token file %s: %w", path, err)
	}
	defer f.Close()

	toks, err := driver.ReadTokens(f)
	if err != nil {
		return nil, fmt.Errorf("Cannot read the token file %s: %w", path, err)
	}
	return toks, nil
}

func parseArtifacts(g *grammar.Grammar, trace *driver.Trace, toks []*driver.Token, root *driver.Node) []*artifact {
	return []*artifact{
		{
			fileName: "parse-actions.txt",
			write: func(w io.Writer) error {
				return report.WriteActions(w, trace)
			},
		},
		{
			fileName: "parse-trace.txt",
			write: func(w io.Writer) error {
				return report.WriteTrace(w, trace, toks)
			},
		},
		{
			fileName: "parse-tree.txt",
			write: func(w io.Writer) error {
				return report.WriteDerivation(w, trace)
			},
		},
		{
			fileName: "sentential-forms.txt",
			write: func(w io.Writer) error {
				return report.WriteSententialForms(w, g, trace)
			},
		},
		{
			fileName: "syntax-tree.txt",
			write: func(w io.Writer) error {
				return report.WriteTree(w, root)
			},
		},
	}
}

func deadParseArtifacts(trace *driver.Trace) []*artifact {
	return []*artifact{
		{
			fileName: "dead-parse-actions.txt",
			write: func(w io.Writer) error {
				return report.WriteActions(w, trace)
			},
		},
	}
}

// renderTree prints a parse tree with pterm. Each level of the tree is one
// level of indentation.
func renderTree(root *driver.Node) error {
	ll := leveledNode(root, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
}

func leveledNode(node *driver.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := node.Symbol.String()
	if node.Text != "" {
		text = fmt.Sprintf("%v %#v", node.Symbol, node.Text)
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  text,
	})
	for _, child := range node.Children {
		ll = leveledNode(child, ll, level+1)
	}
	return ll
}
