package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetOutput_FormatsEntry(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Warn(CatHierarchy, "cycle broken", "group", "g1", "promoted", 2)

	out := buf.String()
	require.Contains(t, out, "[WARN] [hierarchy] cycle broken group=g1 promoted=2")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_OddFieldCount(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Info(CatLoad, "loaded", "records")

	require.Contains(t, buf.String(), "loaded records=<missing>")
}

func TestErrorErr(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	ErrorErr(CatDB, "query failed", errors.New("boom"), "table", "groups")
	ErrorErr(CatDB, "query failed", nil)

	out := buf.String()
	require.Contains(t, out, "[ERROR] [db] query failed table=groups error=boom")
	require.Contains(t, out, "error=<nil>")
}

func TestSetMinLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	SetMinLevel(LevelWarn)
	Debug(CatCLI, "hidden")
	Info(CatCLI, "hidden")
	Error(CatCLI, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestSetEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	SetEnabled(false)
	Error(CatCLI, "dropped")
	SetEnabled(true)
	Error(CatCLI, "kept")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "kept")
}

func TestNoLogger_IsSilent(t *testing.T) {
	SetOutput(nil)
	require.NotPanics(t, func() {
		Info(CatCLI, "nobody listens")
		SetEnabled(true)
		SetMinLevel(LevelDebug)
	})
}

func TestInit_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	t.Cleanup(func() { SetOutput(nil) })

	Info(CatConfig, "first")
	Info(CatConfig, "second")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] first")
	require.Contains(t, string(data), "[INFO] [config] second")
}

func TestInit_BadPath(t *testing.T) {
	_, err := Init(filepath.Join(t.TempDir(), "missing", "dir", "debug.log"))
	require.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ParseLevel(tt.in))
			require.NotEqual(t, "UNKNOWN", tt.want.String())
		})
	}
}
