package driver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScratchBufferRoundTrip(t *testing.T) {
	b := NewScratchBuffer(64)

	b.Clear()
	require.NoError(t, b.AppendString("hello"))
	require.NoError(t, b.AppendString(", "))
	require.NoError(t, b.AppendString("world"))
	require.Equal(t, "hello, world", b.ToCString())

	// Repeating clear; append(S); to_cstring yields S every time.
	b.Clear()
	require.NoError(t, b.AppendString("hello, world"))
	require.Equal(t, "hello, world", b.ToCString())
}

func TestScratchBufferBoundary(t *testing.T) {
	const max = 8
	b := NewScratchBuffer(max)

	// Exactly max-1 bytes succeeds.
	require.NoError(t, b.AppendString("1234567"))
	require.Equal(t, max-1, b.Len())

	// One more character overflows.
	err := b.AppendChar('x')
	require.Error(t, err)
}

func TestScratchBufferAppendLen(t *testing.T) {
	b := NewScratchBuffer(32)
	require.NoError(t, b.AppendLen("abcdef", 3))
	require.Equal(t, "abc", b.ToCString())
}
