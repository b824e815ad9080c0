// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Params holds Argon2id tuning knobs.
type Params struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultParams is sized for server-side hashing: memory-hard enough to
// resist GPU/ASIC brute force at interactive login latency.
var DefaultParams = Params{
	Time:    3,
	Memory:  64 * 1024, // 64 MB
	Threads: 1,
	KeyLen:  32,
}

// SaltLen is the per-user salt size in bytes.
const SaltLen = 16

// NewSalt returns a fresh cryptographically secure salt.
func NewSalt() ([]byte, error) {
	s := make([]byte, SaltLen)
	_, err := rand.Read(s)
	return s, err
}

// Hash derives the Argon2id key for password under salt with DefaultParams.
// The salt is not embedded in the result; callers persist it alongside.
func Hash(password, salt []byte) []byte {
	p := DefaultParams
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// Verify reports whether password hashes to expected under salt.
func Verify(password, salt, expected []byte) bool {
	got := Hash(password, salt)
	return subtle.ConstantTimeCompare(got, expected) == 1
}
