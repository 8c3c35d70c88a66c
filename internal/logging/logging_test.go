package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateLogsKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%d.log", i))
		require.NoError(t, os.WriteFile(path, nil, 0644))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0644))

	require.NoError(t, rotateLogs(dir, 3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"3.log", "4.log", "keep.txt"}, names)
}

func TestInitializeWritesToDebugFile(t *testing.T) {
	t.Setenv("GITLINK_DEBUG", "")
	t.Setenv("GITLINK_DEBUG_FILE", "")
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	require.NoError(t, Initialize(Options{DebugFile: path, Level: "info"}))
	t.Cleanup(func() { require.NoError(t, Initialize(Options{})) })

	Logger.Debug("hidden")
	Logger.Info("visible", "key", "value")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"visible"`)
	assert.NotContains(t, string(content), "hidden")
}

func TestInitializeDiscardsWithoutDebug(t *testing.T) {
	t.Setenv("GITLINK_DEBUG", "")
	t.Setenv("GITLINK_DEBUG_FILE", "")
	require.NoError(t, Initialize(Options{MaxLogFiles: DefaultMaxLogFiles}))
	assert.False(t, Logger.Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
}
