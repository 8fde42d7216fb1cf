// Package jws provides JSON Web Signature (RFC 7515) compact serialization
// with HMAC algorithms.
//
// This package supports:
//   - HS256, HS384 and HS512 signing of JSON object payloads
//   - strict parsing of the protected JOSE header, including `crit` validation
//   - verification by recomputing the whole compact token and comparing it
//     in constant time with the input
//   - the unsecured `none` algorithm, accepted only when the Verifier
//     explicitly opts in with AcceptUnsigned
//   - encoding typed values into signed tokens and decoding verified
//     payloads back into typed values
//
// A Token is immutable once constructed: Parse returns a Token only after
// the header is validated and the signature is verified.
package jws
