package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_TextFormatIsOrdered(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "test", Out: &buf})

	l.Info("dog saved", Fields{"dog_id": "d-1", "name": "Lucky Star"})

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(line, "ts="), line)
	assert.Contains(t, line, "level=info msg=\"dog saved\" app=test dog_id=d-1 name=\"Lucky Star\"")
}

func TestLogger_JSONFormatAndWith(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Out: &buf}).With(Fields{"request_id": "r-1"})

	l.Error("push failed", Fields{"err": errors.New("boom")})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "boom", entry["err"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Out: &buf})

	l.Debug("hidden", nil)
	l.Info("hidden", nil)
	l.Warn("shown", nil)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestParseLevelAndFormat(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, FormatJSON, ParseFormat(" json "))
	assert.Equal(t, FormatText, ParseFormat(""))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Out: &buf})

	ctx := IntoContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx, Nop()))
	assert.Equal(t, Nop(), FromContext(context.Background(), nil))
}
