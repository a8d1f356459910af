package session

import "errors"

var (
	// ErrSessionTooLarge is returned by Save when the signed cookie would exceed
	// the configured size limit. The error also matches cookie.ErrCookieTooLarge.
	ErrSessionTooLarge = errors.New("session exceeds cookie size limit")

	// ErrNilSession is returned by Save when called without a session.
	ErrNilSession = errors.New("session is nil")
)
