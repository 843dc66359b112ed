package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
)

// sessionSecretBytes is the number of random bytes backing the session
// signing secret. 45 bytes encode to a 60-character base64 string.
const sessionSecretBytes = 45

// LoadOrCreateSessionSecret returns the session signing secret persisted at
// path. On first startup no file exists: a new secret is generated from
// crypto/rand, written with owner-only permissions, and returned. Every
// later startup reads the same secret back, so session cookies survive
// restarts. Must be called before the session store is built; it is the
// only writer of the file.
func LoadOrCreateSessionSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		secret, decErr := base64.StdEncoding.DecodeString(string(data))
		if decErr != nil {
			return nil, fmt.Errorf("failed to decode session secret %s: %w", path, decErr)
		}
		if len(secret) < 32 {
			return nil, fmt.Errorf("session secret %s is too short (%d bytes)", path, len(secret))
		}
		return secret, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read session secret %s: %w", path, err)
	}

	secret := make([]byte, sessionSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate session secret: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(secret)
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist session secret %s: %w", path, err)
	}

	return secret, nil
}
