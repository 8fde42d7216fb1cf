package provider

import (
	"crypto/sha256"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/fileutil"
	"github.com/effective-security/xjws/jws"
	"github.com/effective-security/xlog"
	"golang.org/x/crypto/hkdf"
	"gopkg.in/yaml.v3"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xjws", "provider")

// KeySize is the size of derived HMAC keys, the digest size of SHA-512
const KeySize = 64

// Signer specifies JWS signer interface
type Signer interface {
	// Sign returns the value signed with the current key
	Sign(value any) (string, error)
	// CurrentKeyID returns the ID of the key used to sign
	CurrentKeyID() string
}

// Parser specifies JWS parser interface
type Parser interface {
	// Parse verifies the token and decodes its payload to the value pointed to by v
	Parse(token string, v any) error
}

// Provider specifies JWS provider interface
type Provider interface {
	Signer
	Parser
}

// Key for JWS signature
type Key struct {
	// ID of the key
	ID   string `json:"id" yaml:"id"`
	Seed string `json:"seed" yaml:"seed"`
}

// Config provides JWS provider configuration
type Config struct {
	// KeyID specifies ID of the current key, the last key is used if not set
	KeyID string `json:"kid" yaml:"kid"`
	// Algorithm specifies HMAC algorithm, HS256 by default
	Algorithm string `json:"alg" yaml:"alg"`
	// Type specifies `typ` header
	Type string `json:"typ" yaml:"typ"`
	// ValidAlgorithms specifies accepted algorithms, all HMAC algorithms if not set
	ValidAlgorithms []string `json:"valid_algs" yaml:"valid_algs"`
	// Keys specifies list of keys
	Keys []*Key `json:"keys" yaml:"keys"`
}

type provider struct {
	kid      string
	alg      jws.Algorithm
	typ      string
	keys     map[string][]byte
	verifier *jws.Verifier
}

// LoadConfig returns configuration loaded from a file
func LoadConfig(file string) (*Config, error) {
	if file == "" {
		return &Config{}, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to read file")
	}

	var config Config
	if strings.HasSuffix(file, ".json") {
		err = json.Unmarshal(raw, &config)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable parse JSON: %s", file)
		}
	} else {
		err = yaml.Unmarshal(raw, &config)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable parse YAML: %s", file)
		}
	}

	if config.KeyID == "" {
		return nil, errors.Errorf("missing kid: %q", file)
	}
	if len(config.Keys) == 0 {
		return nil, errors.Errorf("missing keys: %q", file)
	}
	return &config, nil
}

// Load returns new provider
func Load(cfgfile string) (Provider, error) {
	cfg, err := LoadConfig(cfgfile)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// MustNew returns new provider
func MustNew(cfg *Config) Provider {
	p, err := New(cfg)
	if err != nil {
		logger.Panicf("unable to create provider: %+v", err)
	}
	return p
}

// New returns new provider
func New(cfg *Config) (Provider, error) {
	if len(cfg.Keys) == 0 {
		return nil, errors.Errorf("keys not provided")
	}

	p := &provider{
		kid:      cfg.KeyID,
		alg:      jws.HS256,
		typ:      cfg.Type,
		keys:     map[string][]byte{},
		verifier: &jws.Verifier{},
	}

	if cfg.Algorithm != "" {
		alg, err := parseHMAC(cfg.Algorithm)
		if err != nil {
			return nil, err
		}
		p.alg = alg
	}
	for _, name := range cfg.ValidAlgorithms {
		alg, err := parseHMAC(name)
		if err != nil {
			return nil, err
		}
		p.verifier.ValidAlgorithms = append(p.verifier.ValidAlgorithms, alg)
	}

	for _, key := range cfg.Keys {
		if key.ID == "" {
			return nil, errors.Errorf("key ID not provided")
		}
		if key.Seed == "" {
			return nil, errors.Errorf("empty seed for key %q", key.ID)
		}
		seed, err := fileutil.LoadConfigWithSchema(key.Seed)
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to load seed for key %q", key.ID)
		}
		if seed == "" {
			return nil, errors.Errorf("empty seed for key %q", key.ID)
		}
		p.keys[key.ID], err = DeriveKey([]byte(seed), key.ID, KeySize)
		if err != nil {
			return nil, err
		}
	}

	if p.kid == "" {
		p.kid = cfg.Keys[len(cfg.Keys)-1].ID
	}
	if _, ok := p.keys[p.kid]; !ok {
		return nil, errors.Errorf("key not found: %s", p.kid)
	}

	logger.KV(xlog.DEBUG, "kid", p.kid, "alg", p.alg, "keys", len(p.keys))
	return p, nil
}

// DeriveKey returns HMAC key of the size derived from the seed for the key ID
func DeriveKey(seed []byte, kid string, size int) ([]byte, error) {
	key := make([]byte, size)
	if _, err := io.ReadFull(hkdf.New(sha256.New, seed, nil, []byte(kid)), key); err != nil {
		return nil, errors.WithStack(err)
	}
	return key, nil
}

func parseHMAC(name string) (jws.Algorithm, error) {
	alg, err := jws.ParseAlgorithm(name)
	if err != nil {
		return "", err
	}
	if alg == jws.None {
		return "", errors.Errorf("unsigned tokens are not supported")
	}
	return alg, nil
}

// CurrentKeyID returns the ID of the key used to sign
func (p *provider) CurrentKeyID() string {
	return p.kid
}

// Sign returns the value signed with the current key
func (p *provider) Sign(value any) (string, error) {
	h := jws.NewHeader(p.alg)
	h.KeyID = p.kid
	h.Type = p.typ

	token, err := jws.EncodeAndSignString(value, p.keys[p.kid], h)
	if err != nil {
		return "", errors.WithMessage(err, "failed to sign")
	}
	return token, nil
}

// Parse verifies the token and decodes its payload to the value pointed to by v
func (p *provider) Parse(token string, v any) error {
	t, err := p.verifier.ParseWithKeyFunc([]byte(token), func(h *jws.Header) ([]byte, error) {
		if h.KeyID == "" {
			return nil, errors.Errorf("missing kid")
		}
		if key, ok := p.keys[h.KeyID]; ok {
			return key, nil
		}
		return nil, errors.Errorf("unexpected kid: %s", h.KeyID)
	})
	if err != nil {
		return errors.WithMessage(err, "failed to verify token")
	}
	return jws.DecodePayload(t, v)
}
