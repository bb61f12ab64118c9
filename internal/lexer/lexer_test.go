package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexMainFunction(t *testing.T) {
	toks, err := Lex("fn int main() { return 0; }")
	require.NoError(t, err)

	var types []Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	require.Equal(t, []Type{
		FN, "INT", IDENT, LPAREN, RPAREN, LBRACE, RETURN, INTEGER, SEMI, RBRACE, EOF,
	}, types)
}

func TestLexEmptyInputIsJustEOF(t *testing.T) {
	toks, err := Lex("")
	require.NoError(t, err)
	require.Equal(t, []Token{{EOF, ""}}, toks)
}

func TestLexRejectsUnknownCharacter(t *testing.T) {
	_, err := Lex("fn main() { # }")
	require.Error(t, err)
}

func TestLexIdentifierWithUnderscoreAndDigits(t *testing.T) {
	toks, err := Lex("x_1")
	require.NoError(t, err)
	require.Equal(t, []Token{{IDENT, "x_1"}, {EOF, ""}}, toks)
}
