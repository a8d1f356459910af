package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// MaxCookieSize is the maximum size of a serialized Set-Cookie value (4KB).
const MaxCookieSize = 4096

// Manager reads and writes HTTP cookies with shared default attributes and a size limit.
// It is immutable after construction and safe for concurrent use.
type Manager struct {
	defaults Options
	maxSize  int
}

// ManagerOption configures the Manager itself (not individual cookies).
//
// Example:
//
//	manager := cookie.NewWithOptions(cookieOpts, cookie.WithMaxSize(8192))
type ManagerOption func(*Manager)

// WithMaxSize sets the maximum cookie size. Non-positive values are ignored.
func WithMaxSize(size int) ManagerOption {
	return func(m *Manager) {
		if size > 0 {
			m.maxSize = size
		}
	}
}

// New creates a cookie manager with secure defaults (Path "/", HttpOnly, SameSite=Lax)
// overridden by opts.
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		defaults: applyOptions(defaults, opts),
		maxSize:  MaxCookieSize,
	}
}

// NewWithOptions creates a cookie manager with additional manager options.
func NewWithOptions(cookieOpts []Option, managerOpts ...ManagerOption) *Manager {
	m := New(cookieOpts...)
	for _, opt := range managerOpts {
		opt(m)
	}
	return m
}

// MaxSize returns the configured size limit.
func (m *Manager) MaxSize() int {
	return m.maxSize
}

// Defaults returns a copy of the default cookie attributes.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// ValidateName reports whether name can be used as a cookie name.
func ValidateName(name string) error {
	if err := (&http.Cookie{Name: name, Value: "x"}).Valid(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}
	return nil
}

// Set writes a cookie. Nothing is written when the serialized cookie exceeds
// the size limit; ErrCookieTooLarge is returned instead. A cookie that cannot
// be serialized at all yields ErrInvalidCookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	header := cookie.String()
	if header == "" {
		return fmt.Errorf("%w: name %q", ErrInvalidCookie, name)
	}
	if len(header) > m.maxSize {
		return ErrCookieTooLarge{
			Name: name,
			Size: len(header),
			Max:  m.maxSize,
		}
	}

	http.SetCookie(w, cookie)
	return nil
}

// Get retrieves a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete instructs the client to remove a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	}
	http.SetCookie(w, cookie)
}
