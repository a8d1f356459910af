package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiestore/core/logger"
)

// SessionHandler is the net/http form of Session. The session is saved just
// before the response headers are sent, or after the handler returns if it
// wrote nothing.
//
// Headers are already committed by the time the handler writes, so a save
// failure at that point is logged and the response goes out without the
// cookie. If the handler wrote nothing, a failed save produces a 500.
func SessionHandler(store SessionStore, log *slog.Logger) func(http.Handler) http.Handler {
	if store == nil {
		panic("session middleware: store is required")
	}
	if log == nil {
		log = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := store.Load(r)
			r = r.WithContext(WithSession(r.Context(), sess))

			sw := &sessionWriter{ResponseWriter: w}
			sw.commit = func() error {
				err := store.Save(r.Context(), w, sess)
				if err != nil {
					log.ErrorContext(r.Context(), "session save failed",
						logger.Component("session"),
						logger.Path(r.URL.Path),
						logger.Error(err),
					)
				}
				return err
			}

			next.ServeHTTP(sw, r)

			if !sw.wroteHeader {
				if err := sw.saveOnce(); err != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				w.WriteHeader(http.StatusOK)
			}
		})
	}
}

// sessionWriter saves the session right before the first header write.
type sessionWriter struct {
	http.ResponseWriter
	commit      func() error
	saved       bool
	wroteHeader bool
}

func (w *sessionWriter) saveOnce() error {
	if w.saved {
		return nil
	}
	w.saved = true
	return w.commit()
}

func (w *sessionWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	_ = w.saveOnce()
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *sessionWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *sessionWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
