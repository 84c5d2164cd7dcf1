// Package bootstrap performs the one-time setup that must finish before the
// challenge accepts requests.
package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"flagviewer/internal/secrets"
	"flagviewer/internal/telemetry"
)

// WriteFlag writes value to path, overwriting any previous flag. The value is
// held in guarded memory only for the duration of the write.
func WriteFlag(path, value string) (fingerprint string, err error) {
	raw := []byte(value)
	fingerprint = telemetry.Fingerprint(raw)
	secret, err := secrets.NewSecureBuffer(raw)
	if err != nil {
		return "", fmt.Errorf("guard flag: %w", err)
	}
	defer secret.Destroy()

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return "", fmt.Errorf("mkdir flag dir: %w", err)
	}
	if err := secret.WriteFile(path, 0o600); err != nil {
		return "", err
	}
	return fingerprint, nil
}
