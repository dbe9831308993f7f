// Package secret generates the random signing secret written into a new
// project's configuration.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Size is the number of random bytes behind every secret.
const Size = 32

// ErrRandomness is returned when the random source cannot supply Size bytes.
var ErrRandomness = errors.New("random source unavailable")

// Generate returns Size bytes from crypto/rand encoded as unpadded URL-safe
// base64 (43 characters).
func Generate() (string, error) {
	return GenerateFrom(rand.Reader)
}

// GenerateFrom is Generate with an explicit random source.
// A short read is an error; no fallback value is ever produced.
func GenerateFrom(r io.Reader) (string, error) {
	buf := make([]byte, Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomness, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
