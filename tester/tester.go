package tester

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/slrkit/driver"
	"github.com/nihei9/slrkit/grammar"
)

// LineDiff is the first line where the expected and the actual derivation
// differ. A missing line is an empty string.
type LineDiff struct {
	Line     int
	Expected string
	Actual   string
}

type TestResult struct {
	TestCasePath string
	Error        error
	Diff         *LineDiff
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if r.Diff == nil {
			return msg
		}
		diffLines := []string{
			fmt.Sprintf("derivation step %v", r.Diff.Line),
			fmt.Sprintf("%vexpected: %v", indent1, orNothing(r.Diff.Expected)),
			fmt.Sprintf("%vactual:   %v", indent1, orNothing(r.Diff.Actual)),
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(diffLines, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

func orNothing(s string) string {
	if s == "" {
		return "<nothing>"
	}
	return s
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

// Tester runs test cases against a compiled grammar. The cases share the
// grammar and each gets a parser of its own.
type Tester struct {
	Grammar *grammar.Compiled
	Cases   []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(t.Grammar, c))
	}
	return rs
}

func runTest(g *grammar.Compiled, c *TestCaseWithMetadata) *TestResult {
	toks, err := driver.ReadTokens(strings.NewReader(c.TestCase.Source))
	if err != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        err,
		}
	}

	trace, err := driver.NewParser(g, toks).Parse()
	if err != nil {
		var parseErr *driver.ParseError
		if !errors.As(err, &parseErr) {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        err,
			}
		}
		if c.TestCase.Outcome != OutcomeReject {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("unexpected rejection: %w", err),
			}
		}
		if parseErr.Offset != c.TestCase.Offset {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("rejected at input offset %v instead of %v", parseErr.Offset, c.TestCase.Offset),
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	if c.TestCase.Outcome == OutcomeReject {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("the input was accepted but a syntax error at input offset %v was expected", c.TestCase.Offset),
		}
	}
	if len(c.TestCase.Derivation) == 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	var actual []string
	for _, prod := range trace.Derivation() {
		actual = append(actual, prod.String())
	}
	if diff := diffLines(c.TestCase.Derivation, actual); diff != nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("derivation mismatch"),
			Diff:         diff,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func diffLines(expected, actual []string) *LineDiff {
	n := len(expected)
	if len(actual) > n {
		n = len(actual)
	}
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(expected) {
			e = expected[i]
		}
		if i < len(actual) {
			a = actual[i]
		}
		if e != a {
			return &LineDiff{
				Line:     i + 1,
				Expected: e,
				Actual:   a,
			}
		}
	}
	return nil
}
