package links

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// CodeLength is the number of characters in an access code.
const CodeLength = 6

// GenerateCode returns a random URL-safe access code of CodeLength characters.
func GenerateCode() (string, error) {
	return generateCode(rand.Reader)
}

func generateCode(src io.Reader) (string, error) {
	// 6 bytes encode to 8 base64 characters; the first 6 carry 36 random bits.
	buf := make([]byte, 6)
	if _, err := io.ReadFull(src, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)[:CodeLength], nil
}
