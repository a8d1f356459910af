package session

import (
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/cookiestore/core/cookie"
)

// DefaultCookieName is used when no cookie name is configured.
const DefaultCookieName = "_app_session"

// Config provides environment-based configuration for the cookie store.
// Cookie attributes come from the embedded cookie.Config (COOKIE_* variables).
type Config struct {
	Key         string   `env:"SESSION_KEY" envDefault:"_app_session"`
	Secrets     []string `env:"SESSION_SECRETS" envSeparator:","`
	Encrypt     bool     `env:"SESSION_ENCRYPT" envDefault:"false"`
	Compress    bool     `env:"SESSION_COMPRESS" envDefault:"false"`
	CompressMin int      `env:"SESSION_COMPRESS_MIN" envDefault:"256"`

	Cookie cookie.Config
}

// Option configures a Store.
type Option func(*options)

type options struct {
	name        string
	cookieOpts  []cookie.Option
	maxSize     int
	encrypt     bool
	compressMin int
	logger      *slog.Logger
	registerer  prometheus.Registerer
}

func defaultOptions() *options {
	return &options{
		name:    DefaultCookieName,
		maxSize: cookie.MaxCookieSize,
	}
}

// WithCookieName sets the name of the session cookie. Empty names are ignored.
func WithCookieName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithCookieOptions sets attributes applied to the session cookie.
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(o *options) {
		o.cookieOpts = append(o.cookieOpts, opts...)
	}
}

// WithMaxSize overrides the Set-Cookie size limit. Non-positive values are ignored.
func WithMaxSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxSize = size
		}
	}
}

// WithEncryption seals the payload before signing so the client cannot read it.
func WithEncryption() Option {
	return func(o *options) {
		o.encrypt = true
	}
}

// WithCompression compresses encoded sessions of at least minSize bytes.
func WithCompression(minSize int) Option {
	return func(o *options) {
		if minSize < 1 {
			minSize = 1
		}
		o.compressMin = minSize
	}
}

// WithLogger sets the logger used to report rejected cookies.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics registers load and save counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// secrets returns the configured secrets with surrounding whitespace trimmed
// and empty entries dropped.
func (c Config) secrets() []string {
	secrets := make([]string, 0, len(c.Secrets))
	for _, s := range c.Secrets {
		s = strings.TrimSpace(s)
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	return secrets
}

// Options converts the config into store options.
func (c Config) Options() []Option {
	opts := []Option{
		WithCookieName(c.Key),
		WithCookieOptions(c.Cookie.Options()...),
		WithMaxSize(c.Cookie.MaxSize),
	}
	if c.Encrypt {
		opts = append(opts, WithEncryption())
	}
	if c.Compress {
		opts = append(opts, WithCompression(c.CompressMin))
	}
	return opts
}
