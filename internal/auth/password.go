package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 round count of newly hashed passwords
	DefaultIterations = 100_000

	saltLength      = 16
	defaultKeyLen   = 32
	algorithmSHA256 = "pbkdf2-sha256"
	algorithmSHA512 = "pbkdf2-sha512"
)

var (
	// ErrInvalidCredentials is returned when a password does not match its hash
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedHash is returned when a stored hash is not a PBKDF2 PHC string
	ErrMalformedHash = errors.New("malformed password hash")
)

// phc is the B64 alphabet of the PHC string format: standard, unpadded
var phc = base64.RawStdEncoding

// HashPassword derives a PHC string ($pbkdf2-sha256$i=...,l=32$salt$hash) from password
func HashPassword(password string) (string, error) {
	return hashPassword(password, DefaultIterations)
}

func hashPassword(password string, iterations int) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, defaultKeyLen, sha256.New)
	return fmt.Sprintf("$%s$i=%d,l=%d$%s$%s",
		algorithmSHA256, iterations, defaultKeyLen, phc.EncodeToString(salt), phc.EncodeToString(key)), nil
}

// VerifyPassword checks password against a PHC string produced by HashPassword
// or by any PBKDF2 implementation emitting the same format.
func VerifyPassword(password, encoded string) error {
	params, err := parsePHC(encoded)
	if err != nil {
		return err
	}
	key := pbkdf2.Key([]byte(password), params.salt, params.iterations, len(params.hash), params.hashFunc)
	if subtle.ConstantTimeCompare(key, params.hash) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

type phcParams struct {
	hashFunc   func() hash.Hash
	iterations int
	salt       []byte
	hash       []byte
}

func parsePHC(encoded string) (*phcParams, error) {
	// "", algorithm, params, salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, ErrMalformedHash
	}

	p := &phcParams{}
	switch parts[1] {
	case algorithmSHA256:
		p.hashFunc = sha256.New
	case algorithmSHA512:
		p.hashFunc = sha512.New
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	for _, kv := range strings.Split(parts[2], ",") {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, ErrMalformedHash
		}
		if name != "i" {
			// l is implied by the hash length
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: bad iteration count", ErrMalformedHash)
		}
		p.iterations = n
	}
	if p.iterations == 0 {
		return nil, fmt.Errorf("%w: missing iteration count", ErrMalformedHash)
	}

	var err error
	if p.salt, err = phc.DecodeString(parts[3]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	if p.hash, err = phc.DecodeString(parts[4]); err != nil || len(p.hash) == 0 {
		return nil, fmt.Errorf("%w: bad hash", ErrMalformedHash)
	}
	return p, nil
}
