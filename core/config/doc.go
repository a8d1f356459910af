// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (github.com/joho/godotenv) and
// uses github.com/caarlos0/env to parse environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/cookiestore/core/config"
//
//	type SessionConfig struct {
//		Key     string   `env:"SESSION_KEY" envDefault:"_app_session"`
//		Secrets []string `env:"SESSION_SECRETS,required" envSeparator:","`
//	}
//
//	func main() {
//		var cfg SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime.
// Different types are cached independently. Tests that change the
// environment call Reset between cases.
package config
