package driver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testRecord struct {
	X int
	S string
}

func TestArenaAllocIsZeroed(t *testing.T) {
	a := NewArena[testRecord](4)
	h := a.AllocZeroed()
	rec := a.Deref(h)
	require.Equal(t, 0, rec.X)
	require.Equal(t, "", rec.S)
}

func TestArenaHandlesStableAcrossGrowth(t *testing.T) {
	a := NewArena[testRecord](1)
	var handles []Handle
	for i := 0; i < 100; i++ {
		h := a.AllocZeroed()
		a.Deref(h).X = i
		handles = append(handles, h)
	}
	for i, h := range handles {
		require.Equal(t, i, a.Deref(h).X)
	}
}

func TestArenaDiscardSentinel(t *testing.T) {
	a := NewArena[testRecord](4)
	a.DiscardSentinel()
	h := a.AllocZeroed()
	require.NotEqual(t, NoHandle, h)
	require.Equal(t, Handle(1), h)
}

func TestArenaFreeAllInvalidatesHandles(t *testing.T) {
	a := NewArena[testRecord](4)
	h := a.AllocZeroed()
	a.FreeAll()
	require.Panics(t, func() { a.Deref(h) })
	require.Panics(t, func() { a.AllocZeroed() })
}

func TestArenaDerefOutOfRangePanics(t *testing.T) {
	a := NewArena[testRecord](4)
	require.Panics(t, func() { a.Deref(Handle(42)) })
}
