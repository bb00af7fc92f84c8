package security

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Derivation parameters. Stored hashes embed their salt, so these can
// be raised later without breaking existing records only by re-hashing
// on next login; until then keep them stable.
const (
	pbkdf2Iterations = 10_000
	pbkdf2KeyLen     = 64 // bytes
	pbkdf2SaltLen    = 16 // bytes
)

var errHashMismatch = errors.New("password hash mismatch")

// PBKDF2Hasher implements auth.PasswordHasher with PBKDF2-SHA512.
// Encoded form is "saltHex:derivedKeyHex".
type PBKDF2Hasher struct{}

func NewPBKDF2Hasher() *PBKDF2Hasher { return &PBKDF2Hasher{} }

func (h *PBKDF2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, pbkdf2SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// Compare returns nil when the password matches the encoded hash.
// Malformed encodings count as a mismatch, never a server error: the
// caller maps any non-nil result to invalid credentials.
func (h *PBKDF2Hasher) Compare(encoded string, password string) error {
	saltHex, keyHex, ok := strings.Cut(encoded, ":")
	if !ok {
		return errHashMismatch
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil || len(salt) == 0 {
		return errHashMismatch
	}
	want, err := hex.DecodeString(keyHex)
	if err != nil || len(want) == 0 {
		return errHashMismatch
	}

	got := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, len(want), sha512.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return errHashMismatch
	}
	return nil
}
