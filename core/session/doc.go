// Package session implements a cookie-backed session store. The whole session
// mapping travels in one signed cookie, so no server-side record exists and
// loading a session needs no I/O beyond reading the request header.
//
// A request moves through Load, application reads and writes, and Save:
//
//	store, err := session.NewStore([]string{secret}, session.WithCookieName("_app_session"))
//	if err != nil {
//		return err
//	}
//
//	sess := store.Load(r)           // never fails
//	sess.Set("user_id", value.Int(42))
//	if err := store.Save(r.Context(), w, sess); err != nil {
//		// ErrSessionTooLarge or an encode error; the cookie was not written
//	}
//
// Load yields an empty session when the cookie is missing, malformed or forged.
// Outcome distinguishes the three, and rejected cookies are logged at warn level
// with different messages for malformed input and signature mismatches.
//
// Save writes only when the mapping changed. Destroy removes the cookie on the
// next save. Saving the same mapping twice with a signing-only store produces
// identical cookie values. With WithEncryption the payload is sealed with a
// random nonce before signing, so values differ on every write.
//
// # Key Rotation
//
// The first secret signs new cookies. Every configured secret is accepted
// during verification, so a new secret can be prepended while the old one
// remains valid. Removing a secret invalidates every cookie signed with it.
//
// # Configuration
//
// Config loads from SESSION_* and COOKIE_* environment variables:
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//	store := session.MustNewFromConfig(cfg, session.WithLogger(log))
package session
