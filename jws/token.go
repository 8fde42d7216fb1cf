package jws

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xjws/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xjws", "jws")

// separator of the compact serialization segments
const separator = '.'

// Token is a JSON Web Signature: a payload and the secret to sign it with,
// and the headers to produce signatures for.
//
// A Token is not modified after construction and can be used concurrently.
type Token struct {
	headers []*Header
	payload Object
	secret  []byte
}

// New returns a Token to sign the payload with the secret,
// one signature per header.
// The secret is copied and owned by the Token.
func New(headers []*Header, payload Object, secret []byte) *Token {
	t := &Token{
		payload: payload.Clone(),
		secret:  bytes.Clone(secret),
	}
	for _, h := range headers {
		if h != nil {
			t.headers = append(t.headers, h.Clone())
		}
	}
	return t
}

// Headers returns a copy of the headers.
// A Token returned by Parse has no headers.
func (t *Token) Headers() []*Header {
	list := make([]*Header, 0, len(t.headers))
	for _, h := range t.headers {
		list = append(list, h.Clone())
	}
	return list
}

// Payload returns a copy of the payload
func (t *Token) Payload() Object {
	return t.payload.Clone()
}

// String does not expose the secret
func (t *Token) String() string {
	return fmt.Sprintf("jws.Token{headers:%d, payload:%d claims, secret:[REDACTED]}", len(t.headers), len(t.payload))
}

// GoString does not expose the secret
func (t *Token) GoString() string {
	return t.String()
}

// Sign returns the compact serialization signed with the header,
// or with the first header of the Token if header is nil.
func (t *Token) Sign(header *Header) ([]byte, error) {
	if header == nil {
		if len(t.headers) == 0 {
			return nil, errors.Wrap(ErrUnsupported, "no header to sign with")
		}
		header = t.headers[0]
	}

	defer metricskey.PerfJWSSign.MeasureSince(time.Now(), header.Algorithm.String())

	if header.Algorithm == None {
		logger.KV(xlog.WARNING, "reason", "unsigned", "alg", header.Algorithm)
	}
	return t.sign(header)
}

func (t *Token) sign(header *Header) ([]byte, error) {
	hdr, err := header.Marshal()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to serialize header")
	}
	payload, err := t.payload.Marshal()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to serialize payload")
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, EncodeSegment(hdr)...)
	buf = append(buf, separator)
	buf = append(buf, EncodeSegment(payload)...)

	sig, err := header.Algorithm.Sign(buf, t.secret)
	if err != nil {
		return nil, err
	}

	buf = append(buf, separator)
	buf = append(buf, EncodeSegment(sig)...)
	return buf, nil
}

// SignString returns the compact serialization as string
func (t *Token) SignString(header *Header) (string, error) {
	raw, err := t.Sign(header)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", errors.Wrap(ErrUnsupported, "token is not valid UTF-8")
	}
	return string(raw), nil
}

// SignAll returns the compact serialization for each header
func (t *Token) SignAll() ([][]byte, error) {
	if len(t.headers) == 0 {
		return nil, errors.Wrap(ErrUnsupported, "no headers to sign with")
	}

	list := make([][]byte, 0, len(t.headers))
	for _, h := range t.headers {
		raw, err := t.Sign(h)
		if err != nil {
			return nil, err
		}
		list = append(list, raw)
	}
	return list, nil
}
