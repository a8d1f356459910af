// Package cookie reads and writes HTTP cookies with secure default attributes,
// a size limit, and the signed token wire format used by cookie sessions.
//
// # Features
//
//   - Secure defaults (Path "/", HttpOnly, SameSite=Lax)
//   - Per-cookie attribute overrides via functional options
//   - 4KB size limit enforcement on the serialized Set-Cookie value
//   - Token encoding: base64(payload) + "--" + base64(signature)
//   - Environment-based configuration
//
// # Basic Usage
//
//	manager := cookie.New(cookie.WithSecure(true))
//
//	err := manager.Set(w, "theme", "dark", cookie.WithMaxAge(3600))
//
//	value, err := manager.Get(r, "theme")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// Cookie doesn't exist
//	}
//
//	manager.Delete(w, "theme")
//
// # Tokens
//
// Signed values travel as a Token. The manager only splits and joins them,
// signature checks belong to the caller:
//
//	tok, err := manager.ReadToken(r, "_app_session")
//	switch {
//	case errors.Is(err, cookie.ErrCookieNotFound):
//		// no cookie
//	case errors.Is(err, cookie.ErrInvalidFormat):
//		// garbage in the cookie
//	}
//
//	err = manager.WriteToken(w, "_app_session", cookie.Token{Payload: p, Signature: sig})
//
// # Size Limits
//
//	err := manager.Set(w, "large", strings.Repeat("x", 5000))
//	var tooLarge cookie.ErrCookieTooLarge
//	if errors.As(err, &tooLarge) {
//		fmt.Printf("cookie %s exceeds limit: %d > %d\n", tooLarge.Name, tooLarge.Size, tooLarge.Max)
//	}
//
// Nothing is written to the response when the limit is exceeded.
//
// # Configuration
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg) // COOKIE_PATH, COOKIE_SECURE, COOKIE_MAX_SIZE, ...
//	manager := cookie.NewFromConfig(cfg)
package cookie
