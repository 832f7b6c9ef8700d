package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestL_DiscardsByDefault(t *testing.T) {
	require.NotNil(t, L)
	// Calling through the discard handler must not panic even with no
	// Init call — packages may log during tests without configuring
	// anything.
	Debug("probe", "k", "v")
	Info("probe")
}

func TestInit_VerboseEnablesDebugLevel(t *testing.T) {
	Init(Options{Verbose: true})
	require.True(t, L.Enabled(context.Background(), slog.LevelDebug))
}

func TestInit_NonVerboseDefaultsToInfo(t *testing.T) {
	Init(Options{})
	require.False(t, L.Enabled(context.Background(), slog.LevelDebug))
	require.True(t, L.Enabled(context.Background(), slog.LevelInfo))
}

func TestInit_ExplicitLevelOverridesVerbose(t *testing.T) {
	Init(Options{Verbose: true, Level: slog.LevelWarn})
	require.False(t, L.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, L.Enabled(context.Background(), slog.LevelWarn))
}
