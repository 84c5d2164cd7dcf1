// Package fileaccess reads small text files the way the viewer returns them:
// a bounded number of characters, undecodable bytes dropped, newlines unified.
package fileaccess

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the number of characters returned when no limit is given.
const DefaultLimit = 10000

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// ReadText opens path and returns at most limit characters of it.
func ReadText(path string, limit int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return DecodeText(f, limit)
}

// DecodeText reads up to limit characters from r. Invalid UTF-8 bytes are
// skipped and "\r\n" or a lone "\r" become "\n".
func DecodeText(r io.Reader, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	br := bufio.NewReader(r)
	var sb strings.Builder
	for n := 0; n < limit; {
		ch, size, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", fmt.Errorf("decode text: %w", err)
		}
		if ch == utf8.RuneError && size == 1 {
			continue
		}
		if ch == '\r' {
			if next, _, err := br.ReadRune(); err == nil && next != '\n' {
				_ = br.UnreadRune()
			}
			ch = '\n'
		}
		sb.WriteRune(ch)
		n++
	}
	return sb.String(), nil
}
