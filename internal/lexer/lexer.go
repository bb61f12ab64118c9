// Package lexer provides the minimal tokenizer cmd/lumenc uses to
// implement --lex-only (§6). The driver core never depends on it: the
// real Lumen lexer is a collaborator, out of scope per §1, and this is
// a small concrete stand-in sufficient to make --lex-only observable
// end to end.
package lexer

import (
	"fmt"
	"unicode"
)

// Type names a token's lexical class. Values match the spec's
// scenario #2 exactly: keywords and punctuation print as their own
// upper-case name.
type Type string

const (
	FN      Type = "FN"
	RETURN  Type = "RETURN"
	IDENT   Type = "IDENT"
	INTEGER Type = "INTEGER"
	LPAREN  Type = "LPAREN"
	RPAREN  Type = "RPAREN"
	LBRACE  Type = "LBRACE"
	RBRACE  Type = "RBRACE"
	SEMI    Type = "SEMI"
	EOF     Type = "EOF"
)

// keywords maps a bare identifier to its keyword token type. A word
// listed here, including the type name "int" (which lexes as INT),
// lexes as its keyword; any other identifier-shaped word lexes as
// IDENT.
var keywords = map[string]Type{
	"fn":     FN,
	"return": RETURN,
	// primitive type names lex as their own keyword, named after the
	// word itself so the type list can grow without touching the
	// scanner.
	"int": "INT",
}

// Token is one lexical unit: its type and the exact source text it
// came from.
type Token struct {
	Type Type
	Text string
}

// Lex scans src into a token stream terminated by a single EOF token.
// It recognizes identifiers/keywords, decimal integer literals, and
// the punctuation `(` `)` `{` `}` `;`. Any other byte is a fatal
// lexical error, reported as a Go error rather than a driver
// Diagnostic since the lexer itself sits outside the front end the
// spec models (§1).
func Lex(src string) ([]Token, error) {
	var toks []Token
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case r == '(':
			toks = append(toks, Token{LPAREN, "("})
			i++
		case r == ')':
			toks = append(toks, Token{RPAREN, ")"})
			i++
		case r == '{':
			toks = append(toks, Token{LBRACE, "{"})
			i++
		case r == '}':
			toks = append(toks, Token{RBRACE, "}"})
			i++
		case r == ';':
			toks = append(toks, Token{SEMI, ";"})
			i++

		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			toks = append(toks, Token{INTEGER, string(runes[start:i])})

		case isIdentStart(r):
			start := i
			for i < len(runes) && isIdentCont(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			if t, ok := keywords[word]; ok {
				toks = append(toks, Token{t, word})
			} else {
				toks = append(toks, Token{IDENT, word})
			}

		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}
	toks = append(toks, Token{EOF, ""})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
