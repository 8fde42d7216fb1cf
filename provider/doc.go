// Package provider signs and verifies typed values as JWS with a set of
// shared HMAC keys identified by `kid`.
//
// The keys are derived from seeds listed in the configuration file,
// a seed can be a literal value, or reference an environment variable
// with `env://` or a file with `file://`.
//
//	kid: "2"
//	alg: HS256
//	keys:
//	  - id: "1"
//	    seed: env://JWS_SEED_1
//	  - id: "2"
//	    seed: file:///etc/jws/seed2
package provider
