package jws

import (
	"encoding/base64"
	"strings"

	"github.com/cockroachdb/errors"
)

// EncodeSegment returns JWS specific base64url encoding with padding stripped
func EncodeSegment(seg []byte) string {
	return base64.RawURLEncoding.EncodeToString(seg)
}

// DecodeSegment decodes JWS specific base64url encoding.
// Unpadded input is expected, padded input is accepted when the padding is complete.
func DecodeSegment(seg string) ([]byte, error) {
	enc := base64.RawURLEncoding
	if strings.HasSuffix(seg, "=") {
		enc = base64.URLEncoding
	}
	raw, err := enc.DecodeString(seg)
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "failed to decode segment: %s", err.Error())
	}
	return raw, nil
}
