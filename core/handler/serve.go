package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse is reported when a handler returns a nil Response.
var ErrNilResponse = errors.New("nil response")

// ServeConfig configures Serve.
type ServeConfig[C Context] struct {
	// NewContext builds the per-request context (required).
	NewContext func(w http.ResponseWriter, r *http.Request) C
	// ErrorHandler renders errors returned by responses. Defaults to a plain
	// text handler honoring StatusCode() int.
	ErrorHandler ErrorHandler[C]
	// Middleware wraps the handler, first entry outermost.
	Middleware []Middleware[C]
}

// Serve adapts h to http.Handler.
func Serve[C Context](h HandlerFunc[C], cfg ServeConfig[C]) http.Handler {
	if cfg.NewContext == nil {
		panic("handler: NewContext is required")
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler[C]
	}

	h = Chain(h, cfg.Middleware...)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newResponseWriter(w)
		ctx := cfg.NewContext(ww, r)

		resp := h(ctx)
		if resp == nil {
			cfg.ErrorHandler(ctx, ErrNilResponse)
			return
		}

		if err := resp(ww, ctx.Request()); err != nil {
			cfg.ErrorHandler(ctx, err)
		}
	})
}

// Handle adapts h using BaseContext.
func Handle(h HandlerFunc[*BaseContext], mws ...Middleware[*BaseContext]) http.Handler {
	return Serve(h, ServeConfig[*BaseContext]{
		NewContext: NewContext,
		Middleware: mws,
	})
}

type statusCode interface {
	StatusCode() int
}

func defaultErrorHandler[C Context](ctx C, err error) {
	w := ctx.ResponseWriter()

	if ww, ok := w.(*responseWriter); ok && ww.Written() {
		return
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	http.Error(w, err.Error(), status)
}
