// Package cookiestore keeps HTTP sessions entirely in a signed cookie.
// There is no server-side session record: the session mapping is encoded,
// optionally sealed, signed with a server secret and sent to the client,
// which returns it on every request.
//
// # Package Organization
//
// Session data and encoding:
//
//   - github.com/dmitrymomot/cookiestore/core/value: tagged session values (null, string, int, float, bool, list, map)
//   - github.com/dmitrymomot/cookiestore/core/codec: deterministic JSON encoding with optional S2 compression
//
// Integrity and transport:
//
//   - github.com/dmitrymomot/cookiestore/core/signer: HMAC-SHA256 signing with key rotation, optional XChaCha20-Poly1305 sealing
//   - github.com/dmitrymomot/cookiestore/core/cookie: cookie attributes, size limit and the payload--signature token format
//
// Sessions:
//
//   - github.com/dmitrymomot/cookiestore/core/session: the Store (Load/Save) and the per-request Session
//
// HTTP integration:
//
//   - github.com/dmitrymomot/cookiestore/core/handler: handler, context and middleware contract
//   - github.com/dmitrymomot/cookiestore/core/response: text, JSON and error responses
//   - github.com/dmitrymomot/cookiestore/middleware: session and access log middleware
//
// Ambient:
//
//   - github.com/dmitrymomot/cookiestore/core/config: cached environment loading
//   - github.com/dmitrymomot/cookiestore/core/logger: slog construction and attribute helpers
//
// # Request Flow
//
// The cookie is read and its signature verified, the payload is decoded into
// the session mapping, the application reads and mutates it, and when the
// mapping changed it is re-encoded, re-signed and written back before the
// response headers are sent.
//
// A missing, malformed or forged cookie yields an empty session and never an
// error page. A session too large for a cookie fails the save instead of being
// truncated.
package cookiestore
