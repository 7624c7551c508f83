package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/slrkit/driver"
	"github.com/nihei9/slrkit/grammar"
	"github.com/nihei9/slrkit/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Parse token sequences typed in line by line",
		Long: `repl compiles a grammar and reads token sequences interactively. Each line
is parsed on its own and its parse tree is printed. Lines starting with ':'
are commands:
  :actions  print the actions of the last parse
  :first    print the FIRST sets
  :follow   print the FOLLOW sets
  :table    print the parsing table
  :quit     leave the REPL`,
		Example: `  slrkit repl expr.grammar`,
		Args:    cobra.ExactArgs(1),
		RunE:    runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	cgram, err := compileGrammarFile(args[0], conf.DedupMode())
	if err != nil {
		return err
	}

	rl, err := readline.New("slrkit> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	intp := &interpreter{
		gram: cgram,
		rep:  report.NewReport(cgram),
		out:  os.Stdout,
	}
	pterm.Info.Printf("%v states, %v conflicts\n", len(intp.rep.States), intp.rep.ConflictCount())
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			break
		}
		quit, err := intp.eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(os.Stdout, "Good bye!")

	return nil
}

type interpreter struct {
	gram      *grammar.Compiled
	rep       *report.Report
	out       io.Writer
	lastTrace *driver.Trace
}

var errUnknownCommand = errors.New("unknown command")

// eval runs a command or parses a token sequence. It reports whether the
// REPL should stop.
func (intp *interpreter) eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}

	if strings.HasPrefix(line, ":") {
		switch line {
		case ":quit":
			return true, nil
		case ":actions":
			if intp.lastTrace == nil {
				return false, fmt.Errorf("nothing has been parsed yet")
			}
			return false, report.WriteActions(intp.out, intp.lastTrace)
		case ":first":
			return false, report.WriteFirstSets(intp.out, intp.rep)
		case ":follow":
			return false, report.WriteFollowSets(intp.out, intp.rep)
		case ":table":
			return false, report.WriteTable(intp.out, intp.rep)
		}
		return false, fmt.Errorf("%w: %v", errUnknownCommand, line)
	}

	toks, err := driver.ReadTokens(strings.NewReader(line))
	if err != nil {
		return false, err
	}
	trace, err := driver.NewParser(intp.gram, toks).Parse()
	intp.lastTrace = trace
	if err != nil {
		return false, err
	}
	root, err := driver.BuildTree(intp.gram.Grammar, trace, toks)
	if err != nil {
		return false, err
	}
	return false, renderTree(root)
}
