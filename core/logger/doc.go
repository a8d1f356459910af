// Package logger provides slog construction and attribute helpers shared by
// the session store, middleware and demo server.
//
// Loggers are built from an env-tagged Config so they can be loaded with
// the config package:
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//	log := logger.New(cfg)
//
//	log.Warn("session cookie rejected",
//		logger.Component("session"),
//		logger.Cookie("_app_session"),
//		logger.Reason("signature mismatch"),
//	)
//
// Attribute helpers return an empty slog.Attr for zero inputs, which slog
// handlers skip. Passing a nil error is therefore safe:
//
//	log.Info("saved", logger.Error(err))
//
// Cookie values are never logged. Only cookie names are recorded.
package logger
