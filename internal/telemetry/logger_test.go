package telemetry

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf)

	l.Info("http server starting", "addr", ":5000")
	l.Warn("waf disabled")
	l.Error("read failed", "err", "permission denied", "dangling")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if assert.Len(t, lines, 3) {
		assert.Contains(t, lines[0], "[INFO] http server starting addr=:5000")
		assert.Contains(t, lines[1], "[WARN] waf disabled")
		assert.Contains(t, lines[2], `[ERROR] read failed err="permission denied" !BADKEY=dangling`)
	}
}

func TestFingerprint(t *testing.T) {
	fp := Fingerprint([]byte("picoCTF{x}"))
	assert.True(t, strings.HasPrefix(fp, "sha256:"))
	assert.Len(t, fp, len("sha256:")+12)
	assert.NotContains(t, fp, "picoCTF")
	assert.Equal(t, fp, Fingerprint([]byte("picoCTF{x}")))
}
