package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Event represents a security-relevant action for audit logging.
type Event struct {
	Time          time.Time         `json:"time"`
	Action        string            `json:"action"`
	Resource      string            `json:"resource,omitempty"`
	Result        string            `json:"result"`
	IP            string            `json:"ip,omitempty"`
	UserAgent     string            `json:"user_agent,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CorrelationID string            `json:"correlation_id,omitempty"`
}

// Logger writes audit events in JSON lines. A nil *Logger discards events.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger initializes an audit logger writing to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes an audit event, stamping it when Time is unset.
func (l *Logger) Log(ev Event) error {
	if l == nil {
		return nil
	}
	if ev.Time.IsZero() {
		ev.Time = l.now()
	}
	ev.Time = ev.Time.UTC()
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal audit: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.w.Write(append(b, '\n'))
	return err
}
