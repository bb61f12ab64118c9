package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigTypedRoundTrip(t *testing.T) {
	c := make(Config)
	c.SetInt("a", 1)
	c.SetString("b", "hi")
	c.SetBool("c", true)

	require.Equal(t, 1, c.GetInt("a"))
	require.Equal(t, "hi", c.GetString("b"))
	require.Equal(t, true, c.GetBool("c"))
}

func TestConfigWrongTypePanics(t *testing.T) {
	c := make(Config)
	c.SetInt("a", 1)
	require.Panics(t, func() { c.GetString("a") })
}

func TestConfigMissingKeyPanics(t *testing.T) {
	c := make(Config)
	require.Panics(t, func() { c.GetInt("missing") })
}

func TestConfigSetOverwritesTypeAtSamePath(t *testing.T) {
	// Set* always installs a fresh value, so reassigning a different
	// type under the same path is allowed; only Get with a mismatched
	// type panics.
	c := make(Config)
	c.SetInt("a", 1)
	c.SetString("a", "x")
	require.Equal(t, "x", c.GetString("a"))
	require.Panics(t, func() { c.GetInt("a") })
}

func TestNewDefaultHasExpectedKeys(t *testing.T) {
	c := NewDefault()
	require.True(t, c.Has("arena.decl_capacity"))
	require.True(t, c.Has("compiler.optimize"))
	require.Equal(t, 1, c.GetInt("compiler.optimize"))
}
