package jws

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidJWS is returned when a compact token does not consist of
	// exactly three period separated segments
	ErrInvalidJWS = errors.New("invalid JWS")
	// ErrInvalidHeader is returned when the JOSE header is malformed,
	// declares an unknown algorithm or an unrecognized critical field,
	// or declares an algorithm the Verifier does not accept
	ErrInvalidHeader = errors.New("invalid JOSE header")
	// ErrInvalidSignature is returned when the recomputed token does not
	// match the input
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrUnsupported is returned for operations that can not be served,
	// such as signing without a header
	ErrUnsupported = errors.New("unsupported")
	// ErrDecode is returned when a segment is not valid Base64URL
	ErrDecode = errors.New("invalid base64url")
	// ErrParse is returned when a segment is not a valid JSON object
	ErrParse = errors.New("invalid JSON")
)
