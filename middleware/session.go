package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiestore/core/handler"
	"github.com/dmitrymomot/cookiestore/core/logger"
	"github.com/dmitrymomot/cookiestore/core/response"
	"github.com/dmitrymomot/cookiestore/core/session"
)

type sessionKey struct{}

// SessionStore loads and saves cookie sessions. *session.Store implements it.
type SessionStore interface {
	Load(r *http.Request) *session.Session
	Save(ctx context.Context, w http.ResponseWriter, sess *session.Session) error
}

// SessionConfig configures the session middleware.
type SessionConfig[C handler.Context] struct {
	// Store loads and saves sessions (required)
	Store SessionStore
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx C) bool
	// Logger for save failures (default: discard)
	Logger *slog.Logger
	// ErrorHandler builds the response when saving fails.
	// Default: response.Error(response.ErrInternalServerError)
	ErrorHandler func(ctx C, err error) handler.Response
}

// Session creates middleware that loads the session cookie before the handler
// and saves it after the handler returns, before the response renders.
//
//	mw := middleware.Session[*handler.BaseContext](store)
//
//	func login(ctx *handler.BaseContext) handler.Response {
//		sess := middleware.MustGetSession(ctx)
//		sess.Set("user_id", value.Int(42))
//		return response.NoContent()
//	}
//
// Missing, malformed and forged cookies never fail the request; the handler
// sees an empty session. A failed save (for example a session too large for
// a cookie) replaces the handler's response with the ErrorHandler's.
func Session[C handler.Context](store SessionStore) handler.Middleware[C] {
	return SessionWithConfig(SessionConfig[C]{Store: store})
}

// SessionWithConfig creates a session middleware with custom configuration.
func SessionWithConfig[C handler.Context](cfg SessionConfig[C]) handler.Middleware[C] {
	if cfg.Store == nil {
		panic("session middleware: store is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(ctx C, err error) handler.Response {
			return response.Error(response.ErrInternalServerError)
		}
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess := cfg.Store.Load(ctx.Request())
			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			if err := cfg.Store.Save(ctx, ctx.ResponseWriter(), sess); err != nil {
				cfg.Logger.ErrorContext(ctx, "session save failed",
					logger.Component("session"),
					logger.Path(ctx.Request().URL.Path),
					logger.Error(err),
				)
				return cfg.ErrorHandler(ctx, err)
			}

			return resp
		}
	}
}

// GetSession retrieves the session stored by the middleware.
func GetSession(ctx context.Context) (*session.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	sess, ok := ctx.Value(sessionKey{}).(*session.Session)
	return sess, ok && sess != nil
}

// MustGetSession retrieves the session or panics if the middleware did not run.
func MustGetSession(ctx context.Context) *session.Session {
	sess, ok := GetSession(ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}
