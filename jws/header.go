package jws

import (
	"github.com/cockroachdb/errors"
	"github.com/jinzhu/copier"
)

// Header parameter names
const (
	HeaderAlgorithm   = "alg"
	HeaderType        = "typ"
	HeaderContentType = "cty"
	HeaderJWKSetURL   = "jku"
	HeaderJWK         = "jwk"
	HeaderKeyID       = "kid"
	HeaderCritical    = "crit"
)

// recognizedFields is the set of header parameters that may be declared critical
var recognizedFields = map[string]struct{}{
	HeaderType:        {},
	HeaderContentType: {},
	HeaderAlgorithm:   {},
	HeaderJWKSetURL:   {},
	HeaderJWK:         {},
	HeaderKeyID:       {},
}

// Header is the protected JOSE header of a JWS
type Header struct {
	// Algorithm used to sign, required
	Algorithm Algorithm
	// Type of the complete JWS, `typ`
	Type string
	// ContentType of the payload, `cty`
	ContentType string
	// JWKSetURL is `jku`, it is not interpreted
	JWKSetURL string
	// KeyID is `kid`, it is not interpreted
	KeyID string
	// Critical lists header parameters the recipient must understand, `crit`
	Critical []string
	// Additional holds any other header parameters
	Additional Object
}

// NewHeader returns a header that signs with the provided algorithm
func NewHeader(alg Algorithm) *Header {
	return &Header{
		Algorithm:  alg,
		Additional: Object{},
	}
}

// HS256Header returns a header for HS256
func HS256Header() *Header { return NewHeader(HS256) }

// HS384Header returns a header for HS384
func HS384Header() *Header { return NewHeader(HS384) }

// HS512Header returns a header for HS512
func HS512Header() *Header { return NewHeader(HS512) }

// UnsignedHeader returns a header with `none` algorithm.
// Tokens produced with this header carry no integrity protection,
// and are rejected by Verifier unless AcceptUnsigned is set.
func UnsignedHeader() *Header { return NewHeader(None) }

// ParseHeader validates the JOSE header and returns Header.
// The provided object is not modified.
//
// Empty `typ`, `cty`, `jku`, `kid` values and an empty `crit` array are accepted,
// but Protected omits them, so a token carrying them does not verify.
func ParseHeader(obj Object) (*Header, error) {
	obj = obj.Clone()

	name, ok := obj[HeaderAlgorithm].(string)
	if !ok {
		return nil, errors.Wrap(ErrInvalidHeader, "missing alg")
	}
	alg, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}

	h := &Header{
		Algorithm: alg,
	}

	for _, f := range []struct {
		name string
		val  *string
	}{
		{HeaderType, &h.Type},
		{HeaderContentType, &h.ContentType},
		{HeaderJWKSetURL, &h.JWKSetURL},
		{HeaderKeyID, &h.KeyID},
	} {
		v, present := obj[f.name]
		if !present {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidHeader, "%s must be a string", f.name)
		}
		*f.val = s
	}

	if v, present := obj[HeaderCritical]; present {
		list, ok := v.([]any)
		if !ok {
			return nil, errors.Wrap(ErrInvalidHeader, "crit must be an array")
		}
		for _, item := range list {
			field, ok := item.(string)
			if !ok {
				return nil, errors.Wrap(ErrInvalidHeader, "crit must contain strings")
			}
			if _, known := recognizedFields[field]; !known {
				return nil, errors.Wrapf(ErrInvalidHeader, "unsupported critical field %q", field)
			}
			h.Critical = append(h.Critical, field)
		}
	}

	delete(obj, HeaderAlgorithm)
	delete(obj, HeaderType)
	delete(obj, HeaderContentType)
	delete(obj, HeaderJWKSetURL)
	delete(obj, HeaderKeyID)
	delete(obj, HeaderCritical)
	h.Additional = obj

	return h, nil
}

// Protected returns the header as JSON object.
// Additional parameters are included, the known parameters take precedence.
func (h *Header) Protected() Object {
	obj := Object{}
	for k, v := range h.Additional {
		obj[k] = v
	}

	obj[HeaderAlgorithm] = h.Algorithm.String()
	for name, val := range map[string]string{
		HeaderType:        h.Type,
		HeaderContentType: h.ContentType,
		HeaderJWKSetURL:   h.JWKSetURL,
		HeaderKeyID:       h.KeyID,
	} {
		if val != "" {
			obj[name] = val
		} else {
			delete(obj, name)
		}
	}
	if len(h.Critical) > 0 {
		obj[HeaderCritical] = append([]string{}, h.Critical...)
	} else {
		delete(obj, HeaderCritical)
	}
	return obj
}

// Marshal returns JSON encoding of the protected header
func (h *Header) Marshal() ([]byte, error) {
	return h.Protected().Marshal()
}

// Clone returns a deep copy of the header
func (h *Header) Clone() *Header {
	c := new(Header)
	if err := copier.CopyWithOption(c, h, copier.Option{DeepCopy: true}); err != nil {
		logger.Panicf("unable to copy header: %+v", err)
	}
	return c
}
