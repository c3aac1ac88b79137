package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_WritesComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info("bank", "filter finished", map[string]interface{}{"filter": "posterized", "score": 0.7})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "bank", entry["component"])
	require.Equal(t, "posterized", entry["filter"])
	require.Equal(t, 0.7, entry["score"])
	require.Equal(t, "filter finished", entry["message"])
}

func TestLogger_ErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "debug").Error("train", errors.New("disk full"), nil)

	require.Contains(t, buf.String(), `"error":"disk full"`)
	require.Contains(t, buf.String(), `"component":"train"`)
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug("bank", "hidden", nil)
	log.Info("bank", "hidden", nil)
	log.Warning("bank", "shown", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "shown")
}

func TestLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "loud")

	log.Debug("x", "hidden", nil)
	require.Zero(t, buf.Len())
	log.Info("x", "shown", nil)
	require.NotZero(t, buf.Len())
}

func TestNop(t *testing.T) {
	Nop().Info("x", "nothing", nil)
}
