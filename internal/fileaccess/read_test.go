package fileaccess

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "plain", in: "hello", limit: 10, want: "hello"},
		{name: "truncated", in: "abcdef", limit: 3, want: "abc"},
		{name: "crlf", in: "a\r\nb\rc\n", limit: 10, want: "a\nb\nc\n"},
		{name: "invalid bytes dropped", in: "a\xffb\xfe", limit: 10, want: "ab"},
		{name: "limit counts characters", in: "héllo", limit: 2, want: "hé"},
		{name: "default limit", in: strings.Repeat("x", DefaultLimit+5), limit: 0, want: strings.Repeat("x", DefaultLimit)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(strings.NewReader(tt.in), tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(p, []byte("line1\r\nline2"), 0o600))

	got, err := ReadText(p, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2", got)

	_, err = ReadText(filepath.Join(dir, "missing.txt"), DefaultLimit)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsRegularFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(p, nil, 0o600))

	assert.True(t, IsRegularFile(p))
	assert.False(t, IsRegularFile(dir))
	assert.False(t, IsRegularFile(filepath.Join(dir, "nope")))
	assert.False(t, IsRegularFile("bad\x00name"))
}
