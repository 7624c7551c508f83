package spec

import (
	"io"

	verr "github.com/nihei9/slrkit/error"
)

const (
	// Separator divides the head of a production from its body.
	Separator = "::"

	// KeywordEmpty written as the only body symbol denotes an empty body.
	KeywordEmpty = "empty"
)

type RootNode struct {
	Productions []*ProductionNode
}

// ProductionNode is a single line `Head :: sym1 sym2 ...`. An empty Body
// means the line was `Head :: empty`.
type ProductionNode struct {
	Head string
	Body []string
	Row  int
}

func (n *ProductionNode) IsEmpty() bool {
	return len(n.Body) == 0
}

// Parse reads a grammar source. Each non-blank line is one production and the
// head of the first one is the start symbol. `#` starts a comment running to
// the end of the line. When some lines are malformed, Parse reports all of
// them as verr.SpecErrors.
func Parse(src io.Reader) (*RootNode, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	p := &parser{
		lex: lex,
	}
	return p.parse()
}

type parser struct {
	lex  *lexer
	errs verr.SpecErrors
}

func (p *parser) parse() (*RootNode, error) {
	root := &RootNode{}
	for {
		line, eof, err := p.readLine()
		if err != nil {
			return nil, err
		}
		if len(line) > 0 {
			prod, synErr, at := parseLine(line)
			if synErr != nil {
				specErr := &verr.SpecError{
					Cause: synErr,
					Row:   at.pos.Row,
					Col:   at.pos.Col,
				}
				if synErr == synErrInvalidToken {
					specErr.Detail = at.text
				}
				p.errs = append(p.errs, specErr)
			} else {
				root.Productions = append(root.Productions, prod)
			}
		}
		if eof {
			break
		}
	}
	if len(p.errs) > 0 {
		return nil, p.errs
	}
	if len(root.Productions) == 0 {
		return nil, verr.SpecErrors{
			&verr.SpecError{
				Cause: synErrNoProduction,
			},
		}
	}
	return root, nil
}

// readLine collects the tokens up to the next newline. The newline itself is
// not part of the result.
func (p *parser) readLine() ([]*token, bool, error) {
	var line []*token
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, false, err
		}
		switch tok.kind {
		case tokenKindEOF:
			return line, true, nil
		case tokenKindNewline:
			return line, false, nil
		}
		line = append(line, tok)
	}
}

// parseLine checks the shape `Head :: sym1 sym2 ...` of a non-blank line. On
// failure it returns the offending token.
func parseLine(line []*token) (*ProductionNode, *SyntaxError, *token) {
	sep := -1
	for i, tok := range line {
		switch tok.kind {
		case tokenKindInvalid:
			return nil, synErrInvalidToken, tok
		case tokenKindSeparator:
			if sep >= 0 {
				return nil, synErrExtraSeparator, tok
			}
			sep = i
		}
	}
	if sep < 0 {
		return nil, synErrNoSeparator, line[0]
	}

	head := line[:sep]
	switch {
	case len(head) == 0:
		return nil, synErrNoProductionName, line[sep]
	case len(head) > 1:
		return nil, synErrInvalidHead, head[1]
	}

	bodyToks := line[sep+1:]
	if len(bodyToks) == 0 {
		return nil, synErrNoBody, line[sep]
	}
	var body []string
	for _, tok := range bodyToks {
		if tok.text == KeywordEmpty && len(bodyToks) > 1 {
			return nil, synErrEmptyWithSymbols, tok
		}
		body = append(body, tok.text)
	}
	if len(body) == 1 && body[0] == KeywordEmpty {
		body = nil
	}

	return &ProductionNode{
		Head: head[0].text,
		Body: body,
		Row:  head[0].pos.Row,
	}, nil, nil
}
