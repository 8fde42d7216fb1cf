package jws

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// ToObject converts a value to Object through its JSON encoding.
// The value must encode as JSON object.
func ToObject(value any) (Object, error) {
	if obj, ok := value.(Object); ok {
		return obj.Clone(), nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to encode value")
	}
	obj, err := ParseObject(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupported, "value of %T type is not a JSON object", value)
	}
	return obj, nil
}

// To converts the object to the value pointed to by v
func (o Object) To(v any) error {
	raw, err := o.Marshal()
	if err != nil {
		return err
	}
	if err = json.Unmarshal(raw, v); err != nil {
		return errors.WithMessagef(err, "failed to decode payload to %T", v)
	}
	return nil
}

// Encode returns a Token with the value as payload, to be signed with the header
func Encode(value any, secret []byte, header *Header) (*Token, error) {
	if header == nil {
		return nil, errors.Wrap(ErrUnsupported, "no header to sign with")
	}
	payload, err := ToObject(value)
	if err != nil {
		return nil, err
	}
	return New([]*Header{header}, payload, secret), nil
}

// EncodeAndSign returns the compact serialization of the value signed with the secret
func EncodeAndSign(value any, secret []byte, header *Header) ([]byte, error) {
	t, err := Encode(value, secret, header)
	if err != nil {
		return nil, err
	}
	return t.Sign(nil)
}

// EncodeAndSignString returns the compact serialization of the value signed with the secret
func EncodeAndSignString(value any, secret []byte, header *Header) (string, error) {
	t, err := Encode(value, secret, header)
	if err != nil {
		return "", err
	}
	return t.SignString(nil)
}

// DecodePayload decodes the payload of the verified token to the value pointed to by v
func DecodePayload(t *Token, v any) error {
	return t.payload.To(v)
}

// DecodeAndVerify verifies the compact serialization with the secret,
// and decodes its payload to the value pointed to by v
func DecodeAndVerify(compact, secret []byte, v any) error {
	t, err := Parse(compact, secret)
	if err != nil {
		return err
	}
	return DecodePayload(t, v)
}

// Decode verifies the compact serialization with the secret,
// and returns its payload decoded as T
func Decode[T any](compact, secret []byte) (T, error) {
	var v T
	if err := DecodeAndVerify(compact, secret, &v); err != nil {
		return v, err
	}
	return v, nil
}
