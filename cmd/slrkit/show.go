package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nihei9/slrkit/config"
	"github.com/nihei9/slrkit/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <grammar file path or report>",
		Short: "Print the sets, the states, and the parsing table in a readable format",
		Example: `  slrkit show expr.grammar
  slrkit show out/report.json`,
		Args: cobra.ExactArgs(1),
		RunE: runShow,
	}
	rootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) (retErr error) {
	defer recoverPanic(&retErr)

	conf, err := loadConfig()
	if err != nil {
		return err
	}

	var rep *report.Report
	if filepath.Ext(args[0]) == ".json" {
		rep, err = readReport(args[0])
	} else {
		rep, err = compileReport(args[0], conf)
	}
	if err != nil {
		return err
	}

	return writeShow(os.Stdout, rep)
}

func readReport(path string) (*report.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Cannot open the report %s: %w", path, err)
	}
	defer f.Close()

	return report.ReadJSON(f)
}

func compileReport(path string, conf *config.Config) (*report.Report, error) {
	cgram, err := compileGrammarFile(path, conf.DedupMode())
	if err != nil {
		return nil, err
	}
	return report.NewReport(cgram), nil
}

func writeShow(w io.Writer, rep *report.Report) error {
	sections := []struct {
		title string
		write func(w io.Writer, r *report.Report) error
	}{
		{title: "# FIRST", write: report.WriteFirstSets},
		{title: "# FOLLOW", write: report.WriteFollowSets},
		{title: "# Parsing Table", write: report.WriteTable},
	}
	for _, s := range sections {
		_, err := fmt.Fprintf(w, "%v\n\n", s.title)
		if err != nil {
			return err
		}
		err = s.write(w, rep)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w)
		if err != nil {
			return err
		}
	}
	return report.WriteStates(w, rep)
}
