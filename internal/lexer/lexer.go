// Package lexer tokenizes GraphQL SDL and value literals on top of
// text/scanner.Scanner, tracking description comments, locations and the
// insignificant commas the GraphQL spec allows between tokens.
package lexer

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/gqlcore/schemacore/errors"
)

type syntaxError string

// Lexer wraps a text/scanner.Scanner with GraphQL-specific whitespace,
// comment and description handling.
type Lexer struct {
	sc                    *scanner.Scanner
	next                  rune
	descComment           string
	useStringDescriptions bool
}

// Ident is an identifier token together with the location it was read from.
type Ident struct {
	Name string
	Loc  errors.Location
}

// BasicLit is a scalar literal token: its raw scanner type (scanner.Int,
// scanner.Float, scanner.String or scanner.Ident for true/false/null) and
// its unprocessed text, e.g. `"42"` keeps its surrounding quotes.
type BasicLit struct {
	Type rune
	Text string
	Loc  errors.Location
}

// New wraps an already-initialized scanner.Scanner. Description comments
// are taken from `#` line comments; call UseStringDescriptions to prefer
// quoted-string descriptions instead.
func New(sc *scanner.Scanner) *Lexer {
	l := &Lexer{sc: sc}
	l.ConsumeWhitespace()
	return l
}

// NewFromString scans s directly, configuring the scanner the way SDL
// parsing needs (identifiers, ints, floats and strings). Unlike New, it
// does not prime the first token — the caller's first ConsumeWhitespace
// call does, which is what lets ParseText capture a leading comment as the
// description of the document's very first definition.
func NewFromString(s string, useStringDescriptions bool) *Lexer {
	sc := &scanner.Scanner{
		Mode: scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats | scanner.ScanStrings,
	}
	sc.Init(strings.NewReader(s))
	return &Lexer{sc: sc, useStringDescriptions: useStringDescriptions}
}

// CatchSyntaxError runs f, converting any lexer-raised syntax error panic
// into a returned *errors.Problem. Panics of any other kind propagate.
func (l *Lexer) CatchSyntaxError(f func()) (errRes *errors.Problem) {
	defer func() {
		if err := recover(); err != nil {
			if err, ok := err.(syntaxError); ok {
				errRes = errors.Errorf("syntax error: %s", err)
				errRes.Locations = []errors.Location{l.Location()}
				return
			}
			panic(err)
		}
	}()

	f()
	return
}

// Peek returns the current (already-scanned) token without advancing.
func (l *Lexer) Peek() rune {
	return l.next
}

// ConsumeWhitespace advances past whitespace, insignificant commas and
// comments, leaving l.next positioned at the following significant token.
//
// Consumed `#` comments build the pending description, available from
// DescComment, reset on every call unless UseStringDescriptions is set.
func (l *Lexer) ConsumeWhitespace() {
	if !l.useStringDescriptions {
		l.descComment = ""
	}
	for {
		l.next = l.sc.Scan()

		if l.next == ',' {
			// Commas are insignificant whitespace in GraphQL documents.
			continue
		}

		if l.next == '#' {
			l.consumeComment()
			continue
		}

		break
	}
}

// consumeDescription consumes a leading quoted-string description per the
// June 2018 spec, if the current token is a string.
func (l *Lexer) consumeDescription() bool {
	if l.next == scanner.String {
		l.descComment = ""
		tokenText := l.sc.TokenText()
		if l.sc.Peek() == '"' {
			l.next = l.sc.Next()
			l.consumeTripleQuoteComment()
		} else {
			l.consumeStringComment(tokenText)
		}
		return true
	}
	return false
}

// UseStringDescriptions switches description capture from `#` comments to
// quoted-string descriptions, matching the BuildOption of the same name.
func (l *Lexer) UseStringDescriptions(use bool) {
	l.useStringDescriptions = use
}

func (l *Lexer) ConsumeIdent() string {
	name := l.sc.TokenText()
	l.ConsumeToken(scanner.Ident)
	return name
}

func (l *Lexer) ConsumeIdentWithLoc() Ident {
	loc := l.Location()
	name := l.sc.TokenText()
	l.ConsumeToken(scanner.Ident)
	return Ident{name, loc}
}

// PeekIdent returns the current identifier's text without consuming it; it
// does not check that the current token is actually an identifier.
func (l *Lexer) PeekIdent() string {
	return l.sc.TokenText()
}

func (l *Lexer) ConsumeKeyword(keyword string) {
	if l.next != scanner.Ident || l.sc.TokenText() != keyword {
		l.SyntaxError(`unexpected "` + l.sc.TokenText() + `", expecting "` + keyword + `"`)
	}
	l.ConsumeWhitespace()
}

// ConsumeLiteral consumes the current scalar token and returns it as a
// BasicLit without interpreting it further.
func (l *Lexer) ConsumeLiteral() *BasicLit {
	lit := &BasicLit{Type: l.next, Text: l.sc.TokenText(), Loc: l.Location()}
	l.ConsumeWhitespace()
	return lit
}

// ConsumeFloat consumes the current Int or Float token and returns it
// parsed as a float64.
func (l *Lexer) ConsumeFloat() float64 {
	lit := l.ConsumeLiteral()
	f, err := strconv.ParseFloat(lit.Text, 64)
	if err != nil {
		l.SyntaxError("invalid number literal: " + lit.Text)
	}
	return f
}

// ConsumeInt consumes the current Int token and returns it parsed as an
// int32, the GraphQL Int scalar's native width.
func (l *Lexer) ConsumeInt() int32 {
	lit := l.ConsumeLiteral()
	n, err := strconv.ParseInt(lit.Text, 10, 32)
	if err != nil {
		l.SyntaxError("invalid int literal: " + lit.Text)
	}
	return int32(n)
}

// ConsumeString consumes the current String token and returns its
// unquoted, unescaped contents.
func (l *Lexer) ConsumeString() string {
	lit := l.ConsumeLiteral()
	s, err := strconv.Unquote(lit.Text)
	if err != nil {
		l.SyntaxError("invalid string literal: " + lit.Text)
	}
	return s
}

// ConsumeBoolean consumes the current `true`/`false` identifier token.
func (l *Lexer) ConsumeBoolean() bool {
	lit := l.ConsumeLiteral()
	switch lit.Text {
	case "true":
		return true
	case "false":
		return false
	default:
		l.SyntaxError(`expected "true" or "false", got "` + lit.Text + `"`)
		panic("unreachable")
	}
}

func (l *Lexer) ConsumeToken(expected rune) {
	if l.next != expected {
		l.SyntaxError(`unexpected "` + l.sc.TokenText() + `", expecting ` + scanner.TokenString(expected))
	}
	l.ConsumeWhitespace()
}

// DescComment returns the pending description built from the most recently
// consumed `#` comments (or quoted string, if UseStringDescriptions is set).
func (l *Lexer) DescComment() string {
	if l.useStringDescriptions {
		if l.consumeDescription() {
			l.ConsumeWhitespace()
		}
	}
	return l.descComment
}

func (l *Lexer) SyntaxError(message string) {
	panic(syntaxError(message))
}

func (l *Lexer) Location() errors.Location {
	return errors.Location{
		Line:   l.sc.Line,
		Column: l.sc.Column,
	}
}

func (l *Lexer) consumeTripleQuoteComment() {
	if l.next != '"' {
		panic("consumeTripleQuoteComment used in wrong context: no third quote?")
	}

	if l.descComment != "" {
		l.descComment += "\n"
	}

	comment := ""
	numQuotes := 0
	for {
		l.next = l.sc.Next()
		if l.next == '"' {
			numQuotes++
		} else {
			numQuotes = 0
		}
		comment += string(l.next)
		if numQuotes == 3 || l.next == scanner.EOF {
			break
		}
	}
	l.descComment += strings.TrimSpace(comment[:len(comment)-numQuotes])
}

func (l *Lexer) consumeStringComment(str string) {
	if l.descComment != "" {
		l.descComment += "\n"
	}

	value, err := strconv.Unquote(str)
	if err != nil {
		panic(err)
	}
	l.descComment += value
}

// consumeComment consumes from `#` to the line terminator, appending to
// l.descComment unless UseStringDescriptions is set.
func (l *Lexer) consumeComment() {
	if l.next != '#' {
		panic("consumeComment used in wrong context")
	}

	if l.sc.Peek() == ' ' {
		l.sc.Next()
	}

	if l.descComment != "" && !l.useStringDescriptions {
		l.descComment += "\n"
	}

	for {
		next := l.sc.Next()
		if next == '\r' || next == '\n' || next == scanner.EOF {
			break
		}

		if !l.useStringDescriptions {
			l.descComment += string(next)
		}
	}
}
