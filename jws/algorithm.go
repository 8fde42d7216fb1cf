package jws

import (
	"crypto"
	"crypto/hmac"

	// register hash functions
	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/cockroachdb/errors"
)

// Algorithm specifies the JWS signing algorithm, the value of `alg` header
type Algorithm string

// Supported algorithms
const (
	// HS256 is HMAC using SHA-256
	HS256 Algorithm = "HS256"
	// HS384 is HMAC using SHA-384
	HS384 Algorithm = "HS384"
	// HS512 is HMAC using SHA-512
	HS512 Algorithm = "HS512"
	// None is the unsecured algorithm: the signature is the signing input itself.
	// It is supported for decoding, and must be accepted explicitly by Verifier.
	None Algorithm = "none"
)

// algorithms is the registry of supported algorithms, it is never modified
var algorithms = map[Algorithm]crypto.Hash{
	HS256: crypto.SHA256,
	HS384: crypto.SHA384,
	HS512: crypto.SHA512,
	None:  0,
}

// ParseAlgorithm returns Algorithm by its name
func ParseAlgorithm(name string) (Algorithm, error) {
	alg := Algorithm(name)
	if _, ok := algorithms[alg]; !ok {
		return "", errors.Wrapf(ErrInvalidHeader, "unsupported algorithm %q", name)
	}
	return alg, nil
}

// String returns the name of the algorithm used in the header
func (a Algorithm) String() string {
	return string(a)
}

// Hash returns the digest used by HMAC, or 0 for None
func (a Algorithm) Hash() crypto.Hash {
	return algorithms[a]
}

// Size returns the size of the signature in bytes, or 0 for None
func (a Algorithm) Size() int {
	if h := a.Hash(); h != 0 {
		return h.Size()
	}
	return 0
}

// IsValid returns true if the algorithm is registered
func (a Algorithm) IsValid() bool {
	_, ok := algorithms[a]
	return ok
}

// Sign returns signature of the message with the key
func (a Algorithm) Sign(message, key []byte) ([]byte, error) {
	hash, ok := algorithms[a]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "algorithm %q", string(a))
	}
	if a == None {
		return append([]byte{}, message...), nil
	}
	if !hash.Available() {
		return nil, errors.Wrapf(ErrUnsupported, "hash for %s is not available", a)
	}

	h := hmac.New(hash.New, key)
	h.Write(message)
	return h.Sum(nil), nil
}
