package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel(" DEBUG "))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestJSONLogger_IncludesAppAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "pet-adoption", Out: &buf})

	l.With(map[string]any{"request_id": "r-1"}).Info("visit scheduled", map[string]any{"pet_id": "p-1", "": "ignored"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visit scheduled", entry["msg"])
	assert.Equal(t, "pet-adoption", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "p-1", entry["pet_id"])
	assert.NotContains(t, entry, "")
}

func TestTextLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Out: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}
