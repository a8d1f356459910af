package cookie

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// TokenSeparator joins the encoded payload and signature. The standard base64
// alphabet has no '-', so the split is unambiguous.
const TokenSeparator = "--"

var tokenEncoding = base64.RawStdEncoding

// Token is a signed cookie value: an opaque payload and its signature.
type Token struct {
	Payload   []byte
	Signature []byte
}

// String renders the token as base64(payload) + "--" + base64(signature).
func (t Token) String() string {
	return tokenEncoding.EncodeToString(t.Payload) + TokenSeparator + tokenEncoding.EncodeToString(t.Signature)
}

// ParseToken splits and decodes a cookie value. Both parts must be present and
// non-empty, otherwise ErrInvalidFormat is returned.
func ParseToken(s string) (Token, error) {
	encodedPayload, encodedSig, ok := strings.Cut(s, TokenSeparator)
	if !ok || encodedPayload == "" || encodedSig == "" {
		return Token{}, ErrInvalidFormat
	}

	payload, err := tokenEncoding.DecodeString(encodedPayload)
	if err != nil {
		return Token{}, ErrInvalidFormat
	}

	sig, err := tokenEncoding.DecodeString(encodedSig)
	if err != nil {
		return Token{}, ErrInvalidFormat
	}

	return Token{Payload: payload, Signature: sig}, nil
}

// ReadToken extracts and parses the named cookie.
// Returns ErrCookieNotFound when absent and ErrInvalidFormat when malformed.
func (m *Manager) ReadToken(r *http.Request, name string) (Token, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return Token{}, err
	}
	return ParseToken(raw)
}

// WriteToken writes the token as the named cookie, subject to the size limit.
func (m *Manager) WriteToken(w http.ResponseWriter, name string, t Token, opts ...Option) error {
	return m.Set(w, name, t.String(), opts...)
}
