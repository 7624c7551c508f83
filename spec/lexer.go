package spec

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

type tokenKind string

const (
	tokenKindSymbol    = tokenKind("symbol")
	tokenKindSeparator = tokenKind("::")
	tokenKindNewline   = tokenKind("newline")
	tokenKindEOF       = tokenKind("eof")
	tokenKindInvalid   = tokenKind("invalid")
)

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

const (
	lexKindWhiteSpace  = "white_space"
	lexKindNewline     = "newline"
	lexKindLineComment = "line_comment"
	lexKindSeparator   = "separator"
	lexKindColon       = "colon"
	lexKindSymbol      = "symbol"
)

// A symbol is a run of characters other than whitespace and `:` that doesn't
// begin with `#`. A lone `:` is a symbol too. `#` starts a comment running to
// the end of the line.
var grammarLexSpec = &mlspec.LexSpec{
	Name: "grammar",
	Entries: []*mlspec.LexEntry{
		{
			Kind:    mlspec.LexKindName(lexKindWhiteSpace),
			Pattern: mlspec.LexPattern(`[\u{0009}\u{000B}\u{000C}\u{0020}]+`),
		},
		{
			Kind:    mlspec.LexKindName(lexKindNewline),
			Pattern: mlspec.LexPattern(`\u{000A}|\u{000D}\u{000A}|\u{000D}`),
		},
		{
			Kind:    mlspec.LexKindName(lexKindLineComment),
			Pattern: mlspec.LexPattern(`\u{0023}[^\u{000A}\u{000D}]*`),
		},
		{
			Kind:    mlspec.LexKindName(lexKindSeparator),
			Pattern: mlspec.LexPattern(`\u{003A}\u{003A}`),
		},
		{
			Kind:    mlspec.LexKindName(lexKindColon),
			Pattern: mlspec.LexPattern(`\u{003A}`),
		},
		{
			Kind:    mlspec.LexKindName(lexKindSymbol),
			Pattern: mlspec.LexPattern(`[^\u{0009}\u{000A}\u{000B}\u{000C}\u{000D}\u{0020}\u{0023}\u{003A}][^\u{0009}\u{000A}\u{000B}\u{000C}\u{000D}\u{0020}\u{003A}]*`),
		},
	},
}

var (
	compiledGrammarLexSpec *mlspec.CompiledLexSpec
	compileGrammarLexOnce  sync.Once
	compileGrammarLexErr   error
)

func compileGrammarLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileGrammarLexOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(grammarLexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
				}
				compileGrammarLexErr = errors.New(b.String())
				return
			}
			compileGrammarLexErr = err
			return
		}
		compiledGrammarLexSpec = clspec
	})
	return compiledGrammarLexSpec, compileGrammarLexErr
}

type lexer struct {
	d     *mldriver.Lexer
	names []mlspec.LexKindName
}

func newLexer(src io.Reader) (*lexer, error) {
	clspec, err := compileGrammarLexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(clspec), src)
	if err != nil {
		return nil, err
	}
	return &lexer{
		d:     d,
		names: clspec.KindNames,
	}, nil
}

// next returns the next token skipping whitespace and comments. Rows and
// columns are 1-based.
func (l *lexer) next() (*token, error) {
	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return &token{
				kind: tokenKindEOF,
			}, nil
		}
		pos := newPosition(tok.Row+1, tok.Col+1)
		if tok.Invalid {
			return &token{
				kind: tokenKindInvalid,
				text: string(tok.Lexeme),
				pos:  pos,
			}, nil
		}

		switch l.kindName(tok.KindID) {
		case lexKindWhiteSpace, lexKindLineComment:
			continue
		case lexKindNewline:
			return &token{
				kind: tokenKindNewline,
				pos:  pos,
			}, nil
		case lexKindSeparator:
			return &token{
				kind: tokenKindSeparator,
				text: string(tok.Lexeme),
				pos:  pos,
			}, nil
		default:
			return &token{
				kind: tokenKindSymbol,
				text: string(tok.Lexeme),
				pos:  pos,
			}, nil
		}
	}
}

func (l *lexer) kindName(id mldriver.KindID) string {
	if id.Int() < 0 || id.Int() >= len(l.names) {
		return ""
	}
	return string(l.names[id.Int()])
}
