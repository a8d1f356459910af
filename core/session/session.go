package session

import (
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/dmitrymomot/cookiestore/core/value"
)

// Reserved keys kept inside the session mapping.
const (
	KeySessionID = "session_id"
	KeyFlash     = "_flash"
)

// Outcome records what Load found in the request.
type Outcome int

const (
	// OutcomeMissing means the request carried no session cookie.
	OutcomeMissing Outcome = iota
	// OutcomeMalformed means the cookie could not be parsed, decrypted or decoded.
	OutcomeMalformed
	// OutcomeTampered means the cookie signature did not verify.
	OutcomeTampered
	// OutcomeValid means the cookie verified and decoded.
	OutcomeValid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMissing:
		return "missing"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeTampered:
		return "tampered"
	case OutcomeValid:
		return "valid"
	default:
		return "unknown"
	}
}

// Session is the mapping carried by one client's cookie during one request.
// It is not safe for concurrent use.
type Session struct {
	values    map[string]value.Value
	outcome   Outcome
	dirty     bool
	destroyed bool
}

// New returns an empty, unsaved session.
func New() *Session {
	return newSession(nil, OutcomeMissing)
}

func newSession(values map[string]value.Value, outcome Outcome) *Session {
	if values == nil {
		values = map[string]value.Value{}
	}
	return &Session{values: values, outcome: outcome}
}

// Outcome reports what Load found in the request.
func (s *Session) Outcome() Outcome { return s.outcome }

// IsNew reports whether the session did not come from a valid cookie.
func (s *Session) IsNew() bool { return s.outcome != OutcomeValid }

// IsDirty reports whether the mapping changed since it was loaded or last saved.
func (s *Session) IsDirty() bool { return s.dirty }

// IsDestroyed reports whether Destroy was called and not followed by a write.
func (s *Session) IsDestroyed() bool { return s.destroyed }

// Get returns the value stored under key.
func (s *Session) Get(key string) (value.Value, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetString returns the string stored under key.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.values[key]
	if !ok {
		return "", false
	}
	return v.AsString()
}

// GetInt returns the integer stored under key.
func (s *Session) GetInt(key string) (int64, bool) {
	v, ok := s.values[key]
	if !ok {
		return 0, false
	}
	return v.AsInt()
}

// GetBool returns the boolean stored under key.
func (s *Session) GetBool(key string) (bool, bool) {
	v, ok := s.values[key]
	if !ok {
		return false, false
	}
	return v.AsBool()
}

// Has reports whether key is present.
func (s *Session) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Keys returns the keys in sorted order.
func (s *Session) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Len returns the number of keys.
func (s *Session) Len() int { return len(s.values) }

// Values returns a copy of the mapping.
func (s *Session) Values() map[string]value.Value {
	return maps.Clone(s.values)
}

// Set stores v under key. Storing a value equal to the current one does not
// mark the session dirty.
func (s *Session) Set(key string, v value.Value) {
	if cur, ok := s.values[key]; ok && value.Equal(cur, v) {
		return
	}
	s.values[key] = v
	s.touch()
}

// SetAny converts v with value.From and stores it under key.
func (s *Session) SetAny(key string, v any) error {
	converted, err := value.From(v)
	if err != nil {
		return err
	}
	s.Set(key, converted)
	return nil
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.touch()
}

// Clear removes every key. The next save writes an empty session.
func (s *Session) Clear() {
	clear(s.values)
	s.touch()
}

// Reset clears the mapping and assigns a fresh session ID.
func (s *Session) Reset() string {
	s.Clear()
	id := uuid.NewString()
	s.values[KeySessionID] = value.String(id)
	return id
}

// Destroy clears the mapping and marks the cookie for removal.
// A later write to the session revives it.
func (s *Session) Destroy() {
	clear(s.values)
	s.destroyed = true
	s.dirty = false
}

// ID returns the session identifier, generating and storing one on first use.
func (s *Session) ID() string {
	if id, ok := s.GetString(KeySessionID); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	s.Set(KeySessionID, value.String(id))
	return id
}

// AddFlash appends a message that survives until the next Flashes call.
func (s *Session) AddFlash(v value.Value) {
	var list []value.Value
	if cur, ok := s.values[KeyFlash]; ok {
		list, _ = cur.AsList()
	}
	s.Set(KeyFlash, value.List(append(list, v)...))
}

// Flashes returns pending flash messages and removes them from the session.
func (s *Session) Flashes() []value.Value {
	cur, ok := s.values[KeyFlash]
	if !ok {
		return nil
	}
	s.Delete(KeyFlash)
	list, _ := cur.AsList()
	return list
}

func (s *Session) touch() {
	s.dirty = true
	s.destroyed = false
}

// markSaved records a successful write or removal.
func (s *Session) markSaved() {
	s.dirty = false
	s.destroyed = false
}
