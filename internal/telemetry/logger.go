package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger wraps the stdlib logger with leveled key-value output.
type Logger struct {
	*log.Logger
}

// NewLogger returns a Logger that writes to stdout with timestamps.
func NewLogger() Logger {
	return NewLoggerTo(os.Stdout)
}

// NewLoggerTo returns a Logger writing to w.
func NewLoggerTo(w io.Writer) Logger {
	return Logger{Logger: log.New(w, "", log.LstdFlags|log.LUTC|log.Lmicroseconds)}
}

// Info logs informational messages with key-value style.
func (l Logger) Info(msg string, kv ...any) {
	l.emit("INFO", msg, kv)
}

// Warn logs recoverable problems.
func (l Logger) Warn(msg string, kv ...any) {
	l.emit("WARN", msg, kv)
}

// Error logs errors without leaking sensitive payloads.
func (l Logger) Error(msg string, kv ...any) {
	l.emit("ERROR", msg, kv)
}

func (l Logger) emit(level, msg string, kv []any) {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(level)
	b.WriteString("] ")
	b.WriteString(msg)
	for i := 0; i < len(kv); i += 2 {
		b.WriteByte(' ')
		if i+1 == len(kv) {
			fmt.Fprintf(&b, "!BADKEY=%v", kv[i])
			break
		}
		fmt.Fprintf(&b, "%v=%s", kv[i], quote(fmt.Sprint(kv[i+1])))
	}
	l.Print(b.String())
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Fingerprint identifies a secret in logs without revealing it.
func Fingerprint(secret []byte) string {
	sum := sha256.Sum256(secret)
	return "sha256:" + hex.EncodeToString(sum[:6])
}
