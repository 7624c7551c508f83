package driver

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/nihei9/slrkit/grammar"
)

// Token is a terminal read from an input. Row and Col are 1-based.
type Token struct {
	Text string
	Row  int
	Col  int
}

func (t *Token) String() string {
	return fmt.Sprintf("%#v (%v:%v)", t.Text, t.Row, t.Col)
}

// TokenError reports an input that cannot be split into tokens.
type TokenError struct {
	Row    int
	Col    int
	Lexeme string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("%v:%v: invalid input: %#v", e.Row, e.Col, e.Lexeme)
}

const (
	lexKindWhiteSpace = "white_space"
	lexKindNewline    = "newline"
	lexKindToken      = "token"
)

// A token is any run of characters other than whitespace. It names
// a terminal of the grammar.
var tokenLexSpec = &mlspec.LexSpec{
	Name: "tokens",
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
			Kind:    mlspec.LexKindName(lexKindToken),
			Pattern: mlspec.LexPattern(`[^\u{0009}\u{000A}\u{000B}\u{000C}\u{000D}\u{0020}]+`),
		},
	},
}

var (
	compiledTokenLexSpec *mlspec.CompiledLexSpec
	tokenKindIDs         map[string]int
	compileTokenLexOnce  sync.Once
	compileTokenLexErr   error
)

func compileTokenLexSpec() (*mlspec.CompiledLexSpec, map[string]int, error) {
	compileTokenLexOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(tokenLexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				fmt.Fprintf(&b, "%v: %v", cErrs[0].Kind, cErrs[0].Cause)
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n%v: %v", cerr.Kind, cerr.Cause)
				}
				compileTokenLexErr = errors.New(b.String())
				return
			}
			compileTokenLexErr = err
			return
		}

		ids := map[string]int{}
		for id, name := range clspec.KindNames {
			ids[string(name)] = id
		}
		compiledTokenLexSpec = clspec
		tokenKindIDs = ids
	})
	return compiledTokenLexSpec, tokenKindIDs, compileTokenLexErr
}

// TokenStream splits an input into whitespace-separated tokens.
type TokenStream struct {
	lex     *mldriver.Lexer
	kindIDs map[string]int
}

func NewTokenStream(src io.Reader) (*TokenStream, error) {
	clspec, kindIDs, err := compileTokenLexSpec()
	if err != nil {
		return nil, err
	}
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(clspec), src)
	if err != nil {
		return nil, err
	}
	return &TokenStream{
		lex:     lex,
		kindIDs: kindIDs,
	}, nil
}

// Next returns the next token, or nil at the end of the input.
func (s *TokenStream) Next() (*Token, error) {
	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return nil, nil
		}
		if tok.Invalid {
			return nil, &TokenError{
				Row:    tok.Row + 1,
				Col:    tok.Col + 1,
				Lexeme: string(tok.Lexeme),
			}
		}
		if tok.KindID.Int() != s.kindIDs[lexKindToken] {
			continue
		}
		return &Token{
			Text: string(tok.Lexeme),
			Row:  tok.Row + 1,
			Col:  tok.Col + 1,
		}, nil
	}
}

// ReadTokens reads all tokens of an input. An input may end with an explicit
// `$`; it is dropped because the parser supplies the end of input itself.
func ReadTokens(src io.Reader) ([]*Token, error) {
	s, err := NewTokenStream(src)
	if err != nil {
		return nil, err
	}
	var toks []*Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		toks = append(toks, tok)
	}
	if len(toks) > 0 && toks[len(toks)-1].Text == grammar.SymbolEOF.String() {
		toks = toks[:len(toks)-1]
	}
	return toks, nil
}

// NewTokens makes tokens from texts, numbering columns from 1 in a single row.
func NewTokens(texts ...string) []*Token {
	toks := make([]*Token, len(texts))
	for i, text := range texts {
		toks[i] = &Token{
			Text: text,
			Row:  1,
			Col:  i + 1,
		}
	}
	return toks
}
