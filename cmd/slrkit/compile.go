package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	verr "github.com/nihei9/slrkit/error"
	"github.com/nihei9/slrkit/grammar"
	"github.com/nihei9/slrkit/report"
	"github.com/nihei9/slrkit/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "compile <grammar file path>",
		Short:   "Compute the sets, the automaton, and the parsing table of a grammar",
		Example: `  slrkit compile expr.grammar -o out`,
		Args:    cobra.ExactArgs(1),
		RunE:    runCompile,
	}
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	cgram, err := compileGrammarFile(args[0], conf.DedupMode())
	if err != nil {
		return err
	}
	rep := report.NewReport(cgram)

	err = writeGrammarArtifacts(rep, conf.Output)
	if err != nil {
		return fmt.Errorf("Cannot write output files: %w", err)
	}

	if n := rep.ConflictCount(); n > 0 {
		fmt.Fprintf(os.Stdout, "%v conflicts\n", n)
	}

	return nil
}

// recoverPanic turns a panic into the error a command returns.
func recoverPanic(retErr *error) {
	v := recover()
	if v == nil {
		return
	}
	err, ok := v.(error)
	if !ok {
		err = fmt.Errorf("an unexpected error occurred: %v", v)
	}
	fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
	*retErr = err
}

func compileGrammarFile(path string, mode grammar.DedupMode) (*grammar.Compiled, error) {
	g, err := readGrammar(path)
	if err != nil {
		return nil, err
	}
	return grammar.Compile(g, grammar.WithDedupMode(mode))
}

func readGrammar(path string) (grm *grammar.Grammar, retErr error) {
	defer func() {
		if retErr == nil {
			return
		}
		specErrs, ok := retErr.(verr.SpecErrors)
		if !ok {
			return
		}
		for _, err := range specErrs {
			err.FilePath = path
			err.SourceName = path
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
	}
	defer f.Close()

	ast, err := spec.Parse(f)
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	return b.Build()
}

type artifact struct {
	fileName string
	write    func(w io.Writer) error
}

func grammarArtifacts(rep *report.Report) []*artifact {
	return []*artifact{
		{
			fileName: "terminals.txt",
			write: func(w io.Writer) error {
				return report.WriteTerminals(w, rep)
			},
		},
		{
			fileName: "non-terminals.txt",
			write: func(w io.Writer) error {
				return report.WriteNonTerminals(w, rep)
			},
		},
		{
			fileName: "first-sets.txt",
			write: func(w io.Writer) error {
				return report.WriteFirstSets(w, rep)
			},
		},
		{
			fileName: "follow-sets.txt",
			write: func(w io.Writer) error {
				return report.WriteFollowSets(w, rep)
			},
		},
		{
			fileName: "states.txt",
			write: func(w io.Writer) error {
				return report.WriteStates(w, rep)
			},
		},
		{
			fileName: "fsm.dot",
			write: func(w io.Writer) error {
				return report.WriteDot(w, rep)
			},
		},
		{
			fileName: "slr-table.txt",
			write: func(w io.Writer) error {
				return report.WriteTable(w, rep)
			},
		},
		{
			fileName: "report.json",
			write: func(w io.Writer) error {
				return report.WriteJSON(w, rep)
			},
		},
	}
}

func writeGrammarArtifacts(rep *report.Report, dir string) error {
	return writeArtifacts(dir, grammarArtifacts(rep))
}

func writeArtifacts(dir string, artifacts []*artifact) error {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	for _, a := range artifacts {
		err := writeArtifact(filepath.Join(dir, a.fileName), a.write)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, write func(w io.Writer) error) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	err = write(f)
	if err != nil {
		return err
	}
	tracer().Infof("wrote %v", path)
	return nil
}
