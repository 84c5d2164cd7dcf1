package audit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	l.now = func() time.Time { return fixed }

	require.NoError(t, l.Log(Event{
		Action:   "view",
		Resource: "....//app/flag.txt",
		Result:   "served",
		Metadata: map[string]string{"source": "bypass"},
	}))
	require.NoError(t, l.Log(Event{Action: "view", Result: "denied"}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &ev))
	assert.Equal(t, "view", ev.Action)
	assert.Equal(t, "served", ev.Result)
	assert.Equal(t, "bypass", ev.Metadata["source"])
	assert.True(t, ev.Time.Equal(fixed))
	assert.Contains(t, lines[0], `"time":"2024-03-01T11:00:00Z"`)
	assert.NotContains(t, lines[1], "resource")
}

func TestNilLoggerDiscards(t *testing.T) {
	var l *Logger
	assert.NoError(t, l.Log(Event{Action: "view"}))
}
