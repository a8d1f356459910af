// Package signer authenticates and optionally encrypts session payloads.
//
// Signer computes HMAC-SHA256 tags over payloads and verifies them in constant
// time. Sealer encrypts payloads with XChaCha20-Poly1305. Both accept several
// secrets for key rotation: the first secret is used for new tokens, every
// secret is accepted when verifying or opening. Dropping a secret from the list
// invalidates everything produced with it.
//
// Secrets are never used directly. Each one goes through HKDF-SHA256 with a
// purpose label, so the signing and encryption keys derived from the same
// secret are independent.
//
//	s, err := signer.New([]string{os.Getenv("SESSION_SECRET")})
//	if err != nil {
//		log.Fatal(err) // ErrNoSecret or ErrSecretTooShort
//	}
//
//	sig := s.Sign(payload)
//	if !s.Verify(payload, sig) {
//		// forged or corrupted
//	}
//
// Verify fails closed: malformed input simply returns false.
package signer
