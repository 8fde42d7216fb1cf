package cli

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xjws/jws"
	"github.com/google/uuid"
)

// SignCmd signs JSON payload
type SignCmd struct {
	In     string `arg:"" help:"file with JSON payload, or - to read from stdin"`
	Secret string `required:"" help:"shared secret, literal value or env:// and file:// reference"`
	Alg    string `default:"HS256" enum:"HS256,HS384,HS512" help:"signing algorithm"`
	Typ    string `help:"typ header"`
	Cty    string `help:"cty header"`
	Kid    string `help:"kid header"`
	Jti    bool   `help:"add unique jti claim to the payload"`
}

// Run the command
func (a *SignCmd) Run(ctx *Cli) error {
	raw, err := ctx.ReadFile(a.In)
	if err != nil {
		return errors.WithMessage(err, "unable to read payload")
	}
	payload, err := jws.ParseObject(raw)
	if err != nil {
		return errors.WithMessage(err, "unable to parse payload")
	}
	if a.Jti {
		payload["jti"] = uuid.NewString()
	}

	secret, err := ctx.LoadSecret(a.Secret)
	if err != nil {
		return err
	}
	alg, err := jws.ParseAlgorithm(a.Alg)
	if err != nil {
		return err
	}
	if alg == jws.None {
		return errors.New("unsigned tokens are not supported")
	}

	h := jws.NewHeader(alg)
	h.Type = a.Typ
	h.ContentType = a.Cty
	h.KeyID = a.Kid

	token, err := jws.New([]*jws.Header{h}, payload, secret).SignString(nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Writer(), token)
	return nil
}

// VerifyCmd verifies token and prints its payload
type VerifyCmd struct {
	Token          string   `arg:"" help:"compact token, or - to read from stdin"`
	Secret         string   `help:"shared secret, literal value or env:// and file:// reference"`
	Alg            []string `help:"accepted algorithms, all HMAC algorithms if not set"`
	AcceptUnsigned bool     `help:"accept tokens with none algorithm"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	token, err := ctx.ReadToken(a.Token)
	if err != nil {
		return err
	}

	v := &jws.Verifier{
		AcceptUnsigned: a.AcceptUnsigned,
	}
	for _, name := range a.Alg {
		alg, err := jws.ParseAlgorithm(strings.TrimSpace(name))
		if err != nil {
			return err
		}
		v.ValidAlgorithms = append(v.ValidAlgorithms, alg)
	}

	var secret []byte
	if !a.AcceptUnsigned || a.Secret != "" {
		if secret, err = ctx.LoadSecret(a.Secret); err != nil {
			return err
		}
	}

	t, err := v.Parse(token, secret)
	if err != nil {
		return err
	}
	payload, err := plain(t.Payload())
	if err != nil {
		return err
	}
	return ctx.WriteJSON(payload)
}

// InspectCmd prints header and payload of a token, without verification
type InspectCmd struct {
	Token string `arg:"" help:"compact token, or - to read from stdin"`
}

// Run the command
func (a *InspectCmd) Run(ctx *Cli) error {
	token, err := ctx.ReadToken(a.Token)
	if err != nil {
		return err
	}

	parts := strings.Split(string(token), ".")
	if len(parts) != 3 {
		return errors.Wrapf(jws.ErrInvalidJWS, "expected 3 segments, got %d", len(parts))
	}

	res := map[string]any{}
	for i, name := range []string{"header", "payload"} {
		raw, err := jws.DecodeSegment(parts[i])
		if err != nil {
			return errors.WithMessage(err, name)
		}
		obj, err := jws.ParseObject(raw)
		if err != nil {
			return errors.WithMessage(err, name)
		}
		if res[name], err = plain(obj); err != nil {
			return err
		}
	}
	res["verified"] = false

	return ctx.WriteJSON(res)
}

// plain converts json.Number values of the object to float64 for printing
func plain(obj jws.Object) (map[string]any, error) {
	var m map[string]any
	if err := obj.To(&m); err != nil {
		return nil, err
	}
	return m, nil
}
