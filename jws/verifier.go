package jws

import (
	"bytes"
	"crypto/subtle"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xjws/metricskey"
	"github.com/effective-security/xlog"
)

// KeyFunc is a callback function to supply the secret for verification.
// The function receives the validated, but unverified header.
// This allows to use `kid` to identify which secret to use.
type KeyFunc func(*Header) ([]byte, error)

// Verifier specifies which tokens are accepted
type Verifier struct {
	// ValidAlgorithms, if populated, restricts the accepted HMAC algorithms
	ValidAlgorithms []Algorithm
	// AcceptUnsigned allows tokens with `none` algorithm.
	// Such tokens carry no integrity protection.
	AcceptUnsigned bool
}

// Parse parses and verifies the compact serialization with the secret,
// and returns the Token with the verified payload.
// Unsigned tokens are rejected.
func Parse(compact, secret []byte) (*Token, error) {
	return new(Verifier).Parse(compact, secret)
}

// ParseString parses and verifies the compact serialization with the secret
func ParseString(compact string, secret []byte) (*Token, error) {
	return Parse([]byte(compact), secret)
}

// Parse parses and verifies the compact serialization with the secret
func (v *Verifier) Parse(compact, secret []byte) (*Token, error) {
	return v.ParseWithKeyFunc(compact, func(*Header) ([]byte, error) {
		return secret, nil
	})
}

// ParseWithKeyFunc parses and verifies the compact serialization,
// the secret is provided by keyFunc.
//
// The signature is verified by signing the parsed header and payload again,
// and comparing the result with the whole input in constant time,
// so a token is accepted only if it is in canonical form.
func (v *Verifier) ParseWithKeyFunc(compact []byte, keyFunc KeyFunc) (*Token, error) {
	if keyFunc == nil {
		return nil, errors.Wrap(ErrUnsupported, "key func not provided")
	}

	alg := "unknown"
	defer func(start time.Time) {
		metricskey.PerfJWSVerify.MeasureSince(start, alg)
	}(time.Now())

	parts := bytes.Split(compact, []byte{separator})
	if len(parts) != 3 {
		return nil, errors.Wrapf(ErrInvalidJWS, "expected 3 segments, got %d", len(parts))
	}

	rawHeader, err := DecodeSegment(string(parts[0]))
	if err != nil {
		return nil, errors.WithMessage(err, "invalid header")
	}
	rawPayload, err := DecodeSegment(string(parts[1]))
	if err != nil {
		return nil, errors.WithMessage(err, "invalid payload")
	}

	headerObj, err := ParseObject(rawHeader)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid header")
	}
	payload, err := ParseObject(rawPayload)
	if err != nil {
		return nil, errors.WithMessage(err, "invalid payload")
	}

	header, err := ParseHeader(headerObj)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "invalid_header", "err", err.Error())
		return nil, err
	}
	alg = header.Algorithm.String()

	if err = v.checkAlgorithm(header.Algorithm); err != nil {
		logger.KV(xlog.DEBUG, "reason", "rejected_alg", "alg", alg)
		return nil, err
	}

	secret, err := keyFunc(header)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to get key")
	}

	t := &Token{
		payload: payload,
		secret:  bytes.Clone(secret),
	}

	expected, err := t.sign(header)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(expected, compact) != 1 {
		logger.KV(xlog.DEBUG, "reason", "invalid_signature", "alg", alg, "kid", header.KeyID)
		return nil, errors.WithStack(ErrInvalidSignature)
	}

	return t, nil
}

func (v *Verifier) checkAlgorithm(alg Algorithm) error {
	if alg == None {
		if !v.AcceptUnsigned {
			return errors.Wrap(ErrInvalidHeader, "unsigned token is not accepted")
		}
		return nil
	}
	if len(v.ValidAlgorithms) > 0 && !slices.Contains(v.ValidAlgorithms, alg) {
		return errors.Wrapf(ErrInvalidHeader, "algorithm %s is not accepted", alg)
	}
	return nil
}
