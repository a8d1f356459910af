package main

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiestore/core/handler"
	"github.com/dmitrymomot/cookiestore/core/response"
	"github.com/dmitrymomot/cookiestore/middleware"
)

func routes(store middleware.SessionStore, log *slog.Logger) *http.ServeMux {
	mws := []handler.Middleware[*handler.BaseContext]{
		middleware.LoggingWithLogger[*handler.BaseContext](log),
		middleware.SessionWithConfig(middleware.SessionConfig[*handler.BaseContext]{
			Store:  store,
			Logger: log,
		}),
	}

	serve := func(h handler.HandlerFunc[*handler.BaseContext]) http.Handler {
		return handler.Serve(h, handler.ServeConfig[*handler.BaseContext]{
			NewContext:   handler.NewContext,
			ErrorHandler: response.JSONErrorHandler[*handler.BaseContext],
			Middleware:   mws,
		})
	}

	mux := http.NewServeMux()
	mux.Handle("GET /me", serve(me))
	mux.Handle("POST /login", serve(login))
	mux.Handle("POST /logout", serve(logout))
	mux.Handle("POST /flash", serve(addFlash))
	mux.HandleFunc("GET /live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}
