package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	return &buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &out), line)
	return out
}

func TestInfo(t *testing.T) {
	buf := capture(t)
	Info("match finished", Fields{"winner": "p1", "turns": 12})

	out := decode(t, buf)
	assert.Equal(t, "info", out["level"])
	assert.Equal(t, "match finished", out["msg"])
	assert.Equal(t, "p1", out["winner"])
	assert.EqualValues(t, 12, out["turns"])
	assert.NotEmpty(t, out["ts"])
}

func TestErrorIncludesCause(t *testing.T) {
	buf := capture(t)
	Error("battle setup failed", errors.New("too heavy"), nil)

	out := decode(t, buf)
	assert.Equal(t, "error", out["level"])
	assert.Equal(t, "too heavy", out["error"])
}

func TestUnencodableFieldsFallBack(t *testing.T) {
	buf := capture(t)
	Warn("odd", Fields{"ch": make(chan int)})

	assert.True(t, strings.HasPrefix(buf.String(), "warn: odd"))
}
