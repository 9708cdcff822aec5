package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name   string
		fields []any
		want   string
	}{
		{
			name: "no fields",
			want: "2026-01-02T15:04:05 [INFO] [registry] created\n",
		},
		{
			name:   "key value pairs",
			fields: []any{"count", 2, "title", "AI Agent"},
			want:   "2026-01-02T15:04:05 [INFO] [registry] created count=2 title=\"AI Agent\"\n",
		},
		{
			name:   "orphan key",
			fields: []any{"count", 2, "orphan"},
			want:   "2026-01-02T15:04:05 [INFO] [registry] created count=2 orphan=<missing>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, format(ts, LevelInfo, CatRegistry, "created", tt.fields))
		})
	}
}

func TestDisabledLoggerIsNoop(t *testing.T) {
	SetOutput(nil)
	require.False(t, Enabled())
	require.NotPanics(t, func() {
		Debug(CatChips, "ignored")
		ErrorErr(CatConfig, "ignored", errors.New("boom"))
	})
}

func TestSetOutputAndMinLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	SetMinLevel(LevelWarn)
	Info(CatUI, "dropped")
	Warn(CatUI, "kept")
	ErrorErr(CatUI, "failed", errors.New("boom"))

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.Contains(t, out, "[WARN] [ui] kept")
	require.Contains(t, out, "[ERROR] [ui] failed error=boom")
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	cleanup, err := Init(path)
	require.NoError(t, err)
	Info(CatConfig, "loaded", "path", "/tmp/x")
	cleanup()

	require.False(t, Enabled())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[INFO] [config] loaded path=/tmp/x")
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "DEBUG", LevelDebug.String())
	require.Equal(t, "ERROR", LevelError.String())
	require.Equal(t, "UNKNOWN", Level(42).String())
}
