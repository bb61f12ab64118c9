package srcpos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineIndexLocationAt(t *testing.T) {
	input := []byte("fn main() {\n  return 0;\n}\n")
	li := NewLineIndex(input)

	loc := li.LocationAt(0)
	require.Equal(t, int32(1), loc.Line)
	require.Equal(t, int32(1), loc.Column)

	// "return" starts at line 2, column 3.
	idx := 12 + 2 // skip "fn main() {\n" (12 bytes) and two spaces
	loc = li.LocationAt(idx)
	require.Equal(t, int32(2), loc.Line)
	require.Equal(t, int32(3), loc.Column)
}

func TestLineIndexClampsOutOfRange(t *testing.T) {
	li := NewLineIndex([]byte("abc"))
	require.Equal(t, li.LocationAt(100), li.LocationAt(3))
	require.Equal(t, li.LocationAt(-5), li.LocationAt(0))
}

func TestSpanStringSameLine(t *testing.T) {
	s := Span{Start: Location{Line: 1, Column: 1}, End: Location{Line: 1, Column: 5}}
	require.Equal(t, "1:1..5", s.String())
}

func TestSpanStringMultiLine(t *testing.T) {
	s := Span{Start: Location{Line: 1, Column: 1}, End: Location{Line: 2, Column: 3}}
	require.Equal(t, "1:1..2:3", s.String())
}
