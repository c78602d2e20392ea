// Package cryptox turns plaintext passwords into stored secrets and checks
// login attempts against them. Every Hash call draws a fresh salt, so the
// same password never produces the same stored value twice.
package cryptox

import (
	"errors"
	"fmt"
)

// Supported algorithm names, as used in configuration.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// ErrMalformedSecret reports a stored secret the hasher cannot parse.
var ErrMalformedSecret = errors.New("malformed stored secret")

// Hasher is a one-way, salted, deliberately slow password transform.
type Hasher interface {
	// Hash returns the stored representation of plaintext.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext reproduces stored. A mismatch is
	// (false, nil); an error means stored could not be interpreted.
	Verify(plaintext, stored string) (bool, error)
}

// NewHasher returns the hasher configured by algorithm. bcryptCost is only
// used by the bcrypt hasher.
func NewHasher(algorithm string, bcryptCost int) (Hasher, error) {
	switch algorithm {
	case AlgorithmBcrypt, "":
		return NewBcryptHasher(bcryptCost)
	case AlgorithmArgon2id:
		return NewArgon2Hasher(DefaultArgon2Params), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}
