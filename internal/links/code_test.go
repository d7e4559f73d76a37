package links

import (
	"bytes"
	"errors"
	"regexp"
	"testing"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6}$`)

func TestGenerateCode(t *testing.T) {
	t.Parallel()
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode() error = %v", err)
		}
		if !codePattern.MatchString(code) {
			t.Fatalf("GenerateCode() = %q, not a 6-char URL-safe token", code)
		}
		seen[code] = struct{}{}
	}
	// 36 random bits: collisions among 200 draws are practically impossible.
	if len(seen) < 199 {
		t.Errorf("too many duplicate codes: %d unique of 200", len(seen))
	}
}

func TestGenerateCodeDeterministicSource(t *testing.T) {
	t.Parallel()
	code, err := generateCode(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0x00, 0x00, 0x00}))
	if err != nil {
		t.Fatalf("generateCode() error = %v", err)
	}
	if code != "____AA" {
		t.Errorf("generateCode() = %q, want %q", code, "____AA")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestGenerateCodeSourceFailure(t *testing.T) {
	t.Parallel()
	if _, err := generateCode(failingReader{}); err == nil {
		t.Fatal("expected error when the random source fails")
	}
	if _, err := generateCode(bytes.NewReader([]byte{1, 2})); err == nil {
		t.Fatal("expected error on short read")
	}
}
