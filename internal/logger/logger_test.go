package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text")

	Info("server started", KeyOp, "serve", KeyAllocator, "pool")

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "server started")
	assert.Contains(t, out, "op=serve")
	assert.Contains(t, out, "allocator=pool")
	assert.NotContains(t, out, "\x1b[", "no ANSI codes on a plain writer")
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json")

	Info("allocation failed", KeySize, 4096)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "allocation failed", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(4096), entry[KeySize])
}

func TestLevelFiltering(t *testing.T) {
	t.Run("DebugSuppressedAtInfo", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "INFO", "text")

		Debug("hidden")
		Info("visible")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
	})

	t.Run("ErrorAlwaysLogged", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "ERROR", "text")

		Warn("hidden")
		Error("boom")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "boom")
	})

	t.Run("SetLevelTakesEffect", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "INFO", "text")

		Debug("before")
		SetLevel("DEBUG")
		Debug("after")

		assert.NotContains(t, buf.String(), "before")
		assert.Contains(t, buf.String(), "after")
	})

	t.Run("InvalidLevelIsIgnored", func(t *testing.T) {
		var buf bytes.Buffer
		InitWithWriter(&buf, "WARN", "text")

		SetLevel("TRACE")
		Info("hidden")

		assert.NotContains(t, buf.String(), "hidden")
	})
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text")

	log := With(KeyAllocator, "arena")
	log.Info("budget exceeded")

	assert.Contains(t, buf.String(), "allocator=arena")
	assert.Contains(t, buf.String(), "budget exceeded")
}

func TestFieldConstructors(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json")

	Info("copy", Op("copy"), Size(5), AllocatorKind("heap"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "copy", entry[KeyOp])
	assert.Equal(t, float64(5), entry[KeySize])
	assert.Equal(t, "heap", entry[KeyAllocator])
}

func TestDuration(t *testing.T) {
	start := time.Now().Add(-10 * time.Millisecond)

	ms := Duration(start)
	assert.GreaterOrEqual(t, ms, 10.0)
	assert.Less(t, ms, 1000.0)
}
