package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/cookiestore/core/codec"
	"github.com/dmitrymomot/cookiestore/core/cookie"
	"github.com/dmitrymomot/cookiestore/core/logger"
	"github.com/dmitrymomot/cookiestore/core/signer"
)

// Store keeps sessions entirely in a signed cookie. It is immutable after
// construction and safe for concurrent use.
type Store struct {
	name    string
	cookies *cookie.Manager
	codec   *codec.Codec
	signer  *signer.Signer
	sealer  *signer.Sealer
	logger  *slog.Logger
	metrics *metrics
}

// NewStore creates a cookie store signing with secrets. The first secret signs
// new cookies and every secret is accepted when verifying, which allows rotation.
func NewStore(secrets []string, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := cookie.ValidateName(o.name); err != nil {
		return nil, err
	}

	sig, err := signer.New(secrets)
	if err != nil {
		return nil, err
	}

	s := &Store{
		name:    o.name,
		cookies: cookie.NewWithOptions(o.cookieOpts, cookie.WithMaxSize(o.maxSize)),
		signer:  sig,
		logger:  o.logger,
	}

	if o.encrypt {
		if s.sealer, err = signer.NewSealer(secrets); err != nil {
			return nil, err
		}
	}

	var codecOpts []codec.Option
	if o.compressMin > 0 {
		codecOpts = append(codecOpts, codec.WithCompression(o.compressMin))
	}
	s.codec = codec.New(codecOpts...)

	if s.logger == nil {
		s.logger = logger.Discard()
	}
	s.logger = s.logger.With(logger.Component("session"))

	if o.registerer != nil {
		if s.metrics, err = newMetrics(o.registerer); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// NewFromConfig creates a Store from configuration. Options are applied after
// the config values.
func NewFromConfig(cfg Config, opts ...Option) (*Store, error) {
	return NewStore(cfg.secrets(), append(cfg.Options(), opts...)...)
}

// MustNewFromConfig is like NewFromConfig but panics on error.
// A store without a usable secret cannot serve any request.
func MustNewFromConfig(cfg Config, opts ...Option) *Store {
	s, err := NewFromConfig(cfg, opts...)
	if err != nil {
		panic("session: " + err.Error())
	}
	return s
}

// Name returns the session cookie name.
func (s *Store) Name() string { return s.name }

// Load reads the session cookie from r. It never fails: a missing, malformed
// or forged cookie yields an empty session whose Outcome tells them apart.
func (s *Store) Load(r *http.Request) *Session {
	sess := s.load(r)
	s.metrics.load(sess.outcome)
	return sess
}

func (s *Store) load(r *http.Request) *Session {
	token, err := s.cookies.ReadToken(r, s.name)
	if errors.Is(err, cookie.ErrCookieNotFound) {
		s.logger.DebugContext(r.Context(), "no session cookie", logger.Cookie(s.name))
		return newSession(nil, OutcomeMissing)
	}
	if err != nil {
		return s.reject(r, OutcomeMalformed, "invalid token format", err)
	}

	if !s.signer.Verify(token.Payload, token.Signature) {
		s.logger.WarnContext(r.Context(), "session cookie signature mismatch",
			logger.Cookie(s.name),
			logger.Reason("possible tampering"),
		)
		return newSession(nil, OutcomeTampered)
	}

	payload := token.Payload
	if s.sealer != nil {
		if payload, err = s.sealer.Open(payload); err != nil {
			return s.reject(r, OutcomeMalformed, "decryption failed", err)
		}
	}

	values, err := s.codec.Decode(payload)
	if err != nil {
		return s.reject(r, OutcomeMalformed, "decode failed", err)
	}

	return newSession(values, OutcomeValid)
}

func (s *Store) reject(r *http.Request, outcome Outcome, reason string, err error) *Session {
	s.logger.WarnContext(r.Context(), "session cookie malformed",
		logger.Cookie(s.name),
		logger.Reason(reason),
		logger.Error(err),
	)
	return newSession(nil, outcome)
}

// Save writes sess to w if it changed. A destroyed session removes the cookie
// and an unchanged one leaves it alone. Nothing is written when ctx is done
// or when the signed cookie would exceed the size limit.
func (s *Store) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return ErrNilSession
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if sess.destroyed {
		s.cookies.Delete(w, s.name)
		sess.markSaved()
		s.metrics.save(resultCleared)
		return nil
	}

	if !sess.dirty {
		s.metrics.save(resultUnchanged)
		return nil
	}

	token, err := s.Encode(sess)
	if err != nil {
		s.metrics.save(resultError)
		return err
	}

	if err := s.cookies.WriteToken(w, s.name, token); err != nil {
		var tooLarge cookie.ErrCookieTooLarge
		if errors.As(err, &tooLarge) {
			s.metrics.save(resultTooLarge)
			s.logger.ErrorContext(ctx, "session cookie too large",
				logger.Cookie(s.name),
				logger.Size(tooLarge.Size),
				logger.Count("max", tooLarge.Max),
			)
			return errors.Join(ErrSessionTooLarge, err)
		}
		s.metrics.save(resultError)
		return err
	}

	sess.markSaved()
	s.metrics.save(resultWritten)
	return nil
}

// Encode produces the signed token for sess without writing it.
func (s *Store) Encode(sess *Session) (cookie.Token, error) {
	payload, err := s.codec.Encode(sess.values)
	if err != nil {
		return cookie.Token{}, err
	}

	if s.sealer != nil {
		if payload, err = s.sealer.Seal(payload); err != nil {
			return cookie.Token{}, err
		}
	}

	return cookie.Token{Payload: payload, Signature: s.signer.Sign(payload)}, nil
}
