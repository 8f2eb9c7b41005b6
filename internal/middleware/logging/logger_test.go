package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestPrefixAndFields(t *testing.T) {
	l := NewLogger(&Config{Enabled: true, Level: "DEBUG"}, "App")
	hook := test.NewLocal(l.Logrus())

	l.WithPrefix("HTTP").Info("Request completed", "status", 200, "dangling")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, "App [HTTP]", entry.Data["component"])
	require.Equal(t, 200, entry.Data["status"])
	require.Equal(t, "?", entry.Data["dangling"])
}

func TestLevelFiltering(t *testing.T) {
	l := NewLogger(&Config{Enabled: true, Level: "warn"}, "")
	hook := test.NewLocal(l.Logrus())

	l.Info("hidden")
	l.Warn("shown")

	require.Len(t, hook.AllEntries(), 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	require.True(t, l.ShouldLog("ERROR"))
	require.False(t, l.ShouldLog("DEBUG"))
}

func TestDisabledLogger(t *testing.T) {
	l := NewLogger(&Config{Enabled: false, Level: "DEBUG"}, "")
	require.False(t, l.ShouldLog("ERROR"))
	require.NoError(t, l.Close())
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	l := NewLogger(&Config{Enabled: true, Level: "INFO", LogsDir: dir}, "App")
	l.Info("written to file", "key", "value")
	require.NoError(t, l.Close())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	require.Contains(t, string(data), "written to file")
	require.Contains(t, string(data), "key=value")
}
