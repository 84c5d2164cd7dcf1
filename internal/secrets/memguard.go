package secrets

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
)

// SecureBuffer wraps memguard LockedBuffer for sensitive material such as the flag.
type SecureBuffer struct {
	buf *memguard.LockedBuffer
}

// NewSecureBuffer moves data into protected memory. The source slice is wiped.
func NewSecureBuffer(data []byte) (*SecureBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty secret")
	}
	b := memguard.NewBufferFromBytes(data)
	return &SecureBuffer{buf: b}, nil
}

// Bytes returns a copy of the secret to avoid leaking the guarded region.
func (s *SecureBuffer) Bytes() []byte {
	if s == nil || s.buf == nil || !s.buf.IsAlive() {
		return nil
	}
	out := make([]byte, s.buf.Size())
	copy(out, s.buf.Bytes())
	return out
}

// WriteFile writes the secret straight from guarded memory to path, replacing
// any existing file.
func (s *SecureBuffer) WriteFile(path string, perm os.FileMode) error {
	if s == nil || s.buf == nil || !s.buf.IsAlive() {
		return fmt.Errorf("secret destroyed")
	}
	if err := os.WriteFile(path, s.buf.Bytes(), perm); err != nil {
		return fmt.Errorf("write secret: %w", err)
	}
	return nil
}

// Destroy wipes the buffer.
func (s *SecureBuffer) Destroy() {
	if s != nil && s.buf != nil {
		s.buf.Destroy()
	}
}
