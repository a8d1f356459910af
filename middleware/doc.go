// Package middleware provides the cookie session middleware and an access
// log middleware for handler.Context based handlers, plus a net/http form of
// the session middleware.
//
// The generic middleware follow one pattern: a default constructor, a
// WithConfig constructor with a Skip hook, and context helpers.
//
//	store := session.MustNewFromConfig(cfg, session.WithLogger(log))
//
//	h := handler.Handle(show,
//		middleware.LoggingWithLogger[*handler.BaseContext](log),
//		middleware.Session[*handler.BaseContext](store),
//	)
//
// Inside handlers the session is available through GetSession or
// MustGetSession:
//
//	sess := middleware.MustGetSession(ctx)
//	sess.Set("user_id", value.Int(42))
//
// For plain net/http code use SessionHandler:
//
//	mux.Handle("/", middleware.SessionHandler(store, log)(next))
//
// The session is saved once per request. Unchanged sessions leave the cookie
// alone. A session that no longer fits in a cookie fails the request rather
// than losing data silently.
package middleware
