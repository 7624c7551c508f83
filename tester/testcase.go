package tester

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const caseSeparator = "---"

// Outcome is what a test case expects of a parse.
type Outcome int

const (
	// OutcomeAccept expects the input to be accepted. When a TestCase lists
	// a derivation, the parse must produce exactly those reductions.
	OutcomeAccept Outcome = iota

	// OutcomeReject expects a syntax error at a given offset.
	OutcomeReject
)

// TestCase is a token sequence together with the expected result of parsing
// it. A test case file has three parts separated by `---` lines:
//
//	Description
//	---
//	id + id * id
//	---
//	E :: E + T
//	T :: T * F
//	...
//
// The last part is either the rightmost derivation, one production per line
// as in a parse-tree.txt artifact, the single word `accept`, or
// `reject <offset>`.
type TestCase struct {
	Description string
	Source      string
	Outcome     Outcome
	Derivation  []string
	Offset      int
}

var (
	errTooFewParts          = errors.New("a test case needs a description, a token sequence, and an expected result separated by `---`")
	errTooManyParts         = errors.New("a test case has too many parts")
	errEmptyExpectation     = errors.New("the expected result is empty")
	errInvalidRejectOffset  = errors.New("`reject` needs a 1-based input offset")
	errMixedRejectAndOutput = errors.New("`reject` cannot be followed by a derivation")
)

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) < 3 {
		return nil, errTooFewParts
	}
	if len(parts) > 3 {
		return nil, errTooManyParts
	}

	c := &TestCase{
		Description: strings.TrimSpace(strings.Join(parts[0], "\n")),
		Source:      strings.Join(parts[1], "\n"),
	}

	var expected []string
	for _, line := range parts[2] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		expected = append(expected, line)
	}
	if len(expected) == 0 {
		return nil, errEmptyExpectation
	}

	fields := strings.Fields(expected[0])
	switch {
	case len(fields) == 1 && fields[0] == "accept":
		if len(expected) > 1 {
			c.Derivation = normalizeProductions(expected[1:])
		}
	case fields[0] == "reject":
		if len(fields) != 2 {
			return nil, errInvalidRejectOffset
		}
		offset, err := strconv.Atoi(fields[1])
		if err != nil || offset < 1 {
			return nil, errInvalidRejectOffset
		}
		if len(expected) > 1 {
			return nil, errMixedRejectAndOutput
		}
		c.Outcome = OutcomeReject
		c.Offset = offset
	default:
		c.Derivation = normalizeProductions(expected)
	}

	return c, nil
}

func splitParts(r io.Reader) ([][]string, error) {
	parts := [][]string{nil}
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == caseSeparator {
			parts = append(parts, nil)
			continue
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], line)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return parts, nil
}

// normalizeProductions collapses runs of whitespace so that `E::E + T` style
// spacing differences don't count as mismatches.
func normalizeProductions(lines []string) []string {
	prods := make([]string, len(lines))
	for i, line := range lines {
		prods[i] = normalizeProduction(line)
	}
	return prods
}

func normalizeProduction(line string) string {
	head, body, ok := strings.Cut(line, "::")
	if !ok {
		return strings.Join(strings.Fields(line), " ")
	}
	return fmt.Sprintf("%v :: %v", strings.TrimSpace(head), strings.Join(strings.Fields(body), " "))
}
