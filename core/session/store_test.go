package session_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cookiestore/core/codec"
	"github.com/dmitrymomot/cookiestore/core/cookie"
	"github.com/dmitrymomot/cookiestore/core/session"
	"github.com/dmitrymomot/cookiestore/core/signer"
	"github.com/dmitrymomot/cookiestore/core/value"
)

const (
	testSecret  = "test-secret-key-32-characters!!!"
	testSecret2 = "another-secret-key-32-chars!!!!!"
	cookieName  = "_mongodb-rails3-tutorial_session"
)

func newStore(t *testing.T, secrets []string, opts ...session.Option) *session.Store {
	t.Helper()
	store, err := session.NewStore(secrets, append([]session.Option{session.WithCookieName(cookieName)}, opts...)...)
	require.NoError(t, err)
	return store
}

// nextRequest replays the cookies set on rec, as a browser would.
func nextRequest(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func requestWithCookie(val string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: val})
	return req
}

func save(t *testing.T, store *session.Store, sess *session.Session) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(context.Background(), rec, sess))
	return rec
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("requires a secret", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewStore(nil)
		assert.ErrorIs(t, err, signer.ErrNoSecret)
	})

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewStore([]string{"short"}, session.WithEncryption())
		assert.ErrorIs(t, err, signer.ErrSecretTooShort)
	})

	t.Run("default cookie name", func(t *testing.T) {
		t.Parallel()

		store, err := session.NewStore([]string{testSecret}, session.WithCookieName(""))
		require.NoError(t, err)
		assert.Equal(t, session.DefaultCookieName, store.Name())
	})

	t.Run("rejects invalid cookie name", func(t *testing.T) {
		t.Parallel()

		_, err := session.NewStore([]string{testSecret}, session.WithCookieName("my session"))
		assert.ErrorIs(t, err, cookie.ErrInvalidCookie)

		_, err = session.NewFromConfig(session.Config{Key: "a;b", Secrets: []string{testSecret}})
		assert.ErrorIs(t, err, cookie.ErrInvalidCookie)
	})

	t.Run("must new panics without secret", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			session.MustNewFromConfig(session.Config{Key: cookieName})
		})
	})
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	// First request carries no cookie.
	first := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, session.OutcomeMissing, first.Outcome())
	assert.Equal(t, 0, first.Len())

	first.Set("user_id", value.Int(42))
	rec := save(t, store, first)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, "/", cookies[0].Path)

	// Follow-up request presents the cookie.
	second := store.Load(nextRequest(rec))
	assert.Equal(t, session.OutcomeValid, second.Outcome())
	assert.False(t, second.IsNew())
	assert.False(t, second.IsDirty())
	assert.True(t, value.EqualMaps(map[string]value.Value{"user_id": value.Int(42)}, second.Values()))
}

func TestStore_NestedValues(t *testing.T) {
	t.Parallel()

	for name, opts := range map[string][]session.Option{
		"signed":     nil,
		"encrypted":  {session.WithEncryption()},
		"compressed": {session.WithCompression(1)},
		"both":       {session.WithEncryption(), session.WithCompression(1)},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := newStore(t, []string{testSecret}, opts...)

			sess := session.New()
			require.NoError(t, sess.SetAny("prefs", map[string]any{
				"theme": "dark",
				"langs": []any{"en", "uk"},
				"ratio": 0.5,
				"none":  nil,
			}))
			sess.Set("user_id", value.Int(42))

			loaded := store.Load(nextRequest(save(t, store, sess)))
			require.Equal(t, session.OutcomeValid, loaded.Outcome())
			assert.True(t, value.EqualMaps(sess.Values(), loaded.Values()))
		})
	}
}

func TestStore_UnchangedSessionIsNotRewritten(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	t.Run("empty new session", func(t *testing.T) {
		t.Parallel()

		sess := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		rec := save(t, store, sess)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("loaded session with equal write", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("theme", value.String("dark"))
		loaded := store.Load(nextRequest(save(t, store, sess)))

		loaded.Set("theme", value.String("dark"))
		assert.False(t, loaded.IsDirty())

		rec := save(t, store, loaded)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("second save after write", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("a", value.Int(1))
		save(t, store, sess)

		rec := save(t, store, sess)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
	})
}

func TestStore_Idempotent(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	build := func() *session.Session {
		sess := session.New()
		sess.Set("user_id", value.Int(42))
		sess.Set("roles", value.List(value.String("admin"), value.String("editor")))
		sess.Set("prefs", value.Map(map[string]value.Value{"a": value.Int(1), "b": value.Int(2)}))
		return sess
	}

	a := save(t, store, build()).Result().Cookies()
	b := save(t, store, build()).Result().Cookies()
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].Value, b[0].Value)
}

func TestStore_TamperDetection(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	sess := session.New()
	sess.Set("user_id", value.Int(42))
	token, err := store.Encode(sess)
	require.NoError(t, err)

	// Sanity check: the untouched token loads.
	require.Equal(t, session.OutcomeValid, store.Load(requestWithCookie(token.String())).Outcome())

	flip := func(b []byte, bit int) []byte {
		out := append([]byte(nil), b...)
		out[bit/8] ^= 1 << (bit % 8)
		return out
	}

	t.Run("payload bits", func(t *testing.T) {
		t.Parallel()

		for bit := range len(token.Payload) * 8 {
			forged := cookie.Token{Payload: flip(token.Payload, bit), Signature: token.Signature}
			loaded := store.Load(requestWithCookie(forged.String()))
			assert.Equal(t, session.OutcomeTampered, loaded.Outcome(), "bit %d", bit)
			assert.Equal(t, 0, loaded.Len())
		}
	})

	t.Run("signature bits", func(t *testing.T) {
		t.Parallel()

		for bit := range len(token.Signature) * 8 {
			forged := cookie.Token{Payload: token.Payload, Signature: flip(token.Signature, bit)}
			loaded := store.Load(requestWithCookie(forged.String()))
			assert.Equal(t, session.OutcomeTampered, loaded.Outcome(), "bit %d", bit)
			assert.Equal(t, 0, loaded.Len())
		}
	})

	t.Run("forged payload with foreign key", func(t *testing.T) {
		t.Parallel()

		other := newStore(t, []string{testSecret2})
		forged, err := other.Encode(sess)
		require.NoError(t, err)

		loaded := store.Load(requestWithCookie(forged.String()))
		assert.Equal(t, session.OutcomeTampered, loaded.Outcome())
	})
}

func TestStore_Malformed(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	for name, raw := range map[string]string{
		"no separator":    "garbage",
		"empty signature": "eyJhIjoxfQ--",
		"empty payload":   "--c2ln",
		"invalid base64":  "***--***",
		"only separator":  "--",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			loaded := store.Load(requestWithCookie(raw))
			assert.Equal(t, session.OutcomeMalformed, loaded.Outcome())
			assert.Equal(t, 0, loaded.Len())
		})
	}

	t.Run("signed but undecodable payload", func(t *testing.T) {
		t.Parallel()

		s, err := signer.New([]string{testSecret})
		require.NoError(t, err)

		payload := []byte(`j{"a":`)
		token := cookie.Token{Payload: payload, Signature: s.Sign(payload)}

		loaded := store.Load(requestWithCookie(token.String()))
		assert.Equal(t, session.OutcomeMalformed, loaded.Outcome())
	})

	t.Run("encrypted cookie read by signing-only store", func(t *testing.T) {
		t.Parallel()

		encrypted := newStore(t, []string{testSecret}, session.WithEncryption())
		sess := session.New()
		sess.Set("a", value.Int(1))

		loaded := store.Load(nextRequest(save(t, encrypted, sess)))
		assert.Equal(t, session.OutcomeMalformed, loaded.Outcome())
	})

	t.Run("unrelated cookie only", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "other", Value: "x"})
		assert.Equal(t, session.OutcomeMissing, store.Load(req).Outcome())
	})
}

// logRecords decodes JSON log lines written to buf.
func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var rec map[string]any
		require.NoError(t, dec.Decode(&rec))
		records = append(records, rec)
	}
	return records
}

func TestStore_LoadLogging(t *testing.T) {
	t.Parallel()

	foreign, err := signer.New([]string{testSecret2})
	require.NoError(t, err)
	payload := []byte(`j{"user_id":1}`)
	forged := cookie.Token{Payload: payload, Signature: foreign.Sign(payload)}.String()

	tests := []struct {
		name    string
		req     *http.Request
		level   string
		message string
		reason  string
	}{
		{
			name:    "missing",
			req:     httptest.NewRequest(http.MethodGet, "/", nil),
			level:   "DEBUG",
			message: "no session cookie",
		},
		{
			name:    "malformed",
			req:     requestWithCookie("garbage"),
			level:   "WARN",
			message: "session cookie malformed",
			reason:  "invalid token format",
		},
		{
			name:    "tampered",
			req:     requestWithCookie(forged),
			level:   "WARN",
			message: "session cookie signature mismatch",
			reason:  "possible tampering",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
			store := newStore(t, []string{testSecret}, session.WithLogger(log))

			store.Load(tt.req)

			records := logRecords(t, &buf)
			require.Len(t, records, 1)
			assert.Equal(t, tt.level, records[0]["level"])
			assert.Equal(t, tt.message, records[0]["msg"])
			assert.Equal(t, "session", records[0]["component"])
			assert.Equal(t, cookieName, records[0]["cookie"])
			if tt.reason != "" {
				assert.Equal(t, tt.reason, records[0]["reason"])
			}
		})
	}

	t.Run("valid cookie logs nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		store := newStore(t, []string{testSecret}, session.WithLogger(log))

		sess := session.New()
		sess.Set("user_id", value.Int(42))
		loaded := store.Load(nextRequest(save(t, store, sess)))

		assert.Equal(t, session.OutcomeValid, loaded.Outcome())
		assert.Empty(t, logRecords(t, &buf))
	})
}

func TestStore_KeyRotation(t *testing.T) {
	t.Parallel()

	oldStore := newStore(t, []string{testSecret})
	rotated := newStore(t, []string{testSecret2, testSecret})
	newOnly := newStore(t, []string{testSecret2})

	sess := session.New()
	sess.Set("user_id", value.Int(42))
	rec := save(t, oldStore, sess)

	loaded := rotated.Load(nextRequest(rec))
	assert.Equal(t, session.OutcomeValid, loaded.Outcome())

	dropped := newOnly.Load(nextRequest(rec))
	assert.Equal(t, session.OutcomeTampered, dropped.Outcome())
	assert.Equal(t, 0, dropped.Len())
}

func TestStore_Encryption(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret}, session.WithEncryption())

	sess := session.New()
	sess.Set("card", value.String("4242-4242"))

	first := save(t, store, sess).Result().Cookies()
	require.Len(t, first, 1)

	token, err := cookie.ParseToken(first[0].Value)
	require.NoError(t, err)
	assert.NotContains(t, string(token.Payload), "4242")

	sess.Set("card", value.String("5555"))
	sess.Set("card", value.String("4242-4242"))
	second := save(t, store, sess).Result().Cookies()
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].Value, second[0].Value, "random nonce per write")
}

func TestStore_SizeLimit(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	t.Run("oversized session is rejected", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("blob", value.String(strings.Repeat("a", cookie.MaxCookieSize)))

		rec := httptest.NewRecorder()
		err := store.Save(context.Background(), rec, sess)
		require.Error(t, err)
		assert.ErrorIs(t, err, session.ErrSessionTooLarge)

		var tooLarge cookie.ErrCookieTooLarge
		require.ErrorAs(t, err, &tooLarge)
		assert.Equal(t, cookieName, tooLarge.Name)
		assert.Equal(t, cookie.MaxCookieSize, tooLarge.Max)
		assert.Greater(t, tooLarge.Size, tooLarge.Max)

		assert.Empty(t, rec.Header().Values("Set-Cookie"))
		assert.True(t, sess.IsDirty(), "session keeps pending changes")
	})

	t.Run("boundary", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("blob", value.String("x"))

		rec := save(t, store, sess)
		header := rec.Header().Get("Set-Cookie")
		size := len(header)

		exact := newStore(t, []string{testSecret}, session.WithMaxSize(size))
		sess.Set("blob", value.String("y"))
		require.NoError(t, exact.Save(context.Background(), httptest.NewRecorder(), sess))

		tight := newStore(t, []string{testSecret}, session.WithMaxSize(size-1))
		sess.Set("blob", value.String("z"))
		err := tight.Save(context.Background(), httptest.NewRecorder(), sess)
		assert.ErrorIs(t, err, session.ErrSessionTooLarge)
	})

	t.Run("compression fits more data", func(t *testing.T) {
		t.Parallel()

		compressed := newStore(t, []string{testSecret}, session.WithCompression(64))

		sess := session.New()
		sess.Set("blob", value.String(strings.Repeat("abc", 2000)))

		rec := httptest.NewRecorder()
		require.NoError(t, compressed.Save(context.Background(), rec, sess))

		loaded := compressed.Load(nextRequest(rec))
		s, ok := loaded.GetString("blob")
		require.True(t, ok)
		assert.Len(t, s, 6000)
	})
}

func TestStore_SaveErrors(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	t.Run("encode failure", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("ratio", value.Float(math.NaN()))

		rec := httptest.NewRecorder()
		err := store.Save(context.Background(), rec, sess)
		assert.ErrorIs(t, err, codec.ErrEncode)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sess := session.New()
		sess.Set("a", value.Int(1))

		rec := httptest.NewRecorder()
		err := store.Save(ctx, rec, sess)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
		assert.True(t, sess.IsDirty())
	})

	t.Run("invalid UTF-8 is rejected before writing", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("name", value.String("caf\xe9"))

		rec := httptest.NewRecorder()
		err := store.Save(context.Background(), rec, sess)
		assert.ErrorIs(t, err, codec.ErrEncode)
		assert.ErrorIs(t, err, value.ErrInvalidUTF8)
		assert.Empty(t, rec.Header().Values("Set-Cookie"))
		assert.True(t, sess.IsDirty())

		keyed := session.New()
		keyed.Set("caf\xe9", value.Int(1))
		err = store.Save(context.Background(), httptest.NewRecorder(), keyed)
		assert.ErrorIs(t, err, value.ErrInvalidUTF8)
	})

	t.Run("valid UTF-8 survives a round trip", func(t *testing.T) {
		t.Parallel()

		sess := session.New()
		sess.Set("name", value.String("café 🍪"))

		loaded := store.Load(nextRequest(save(t, store, sess)))
		require.Equal(t, session.OutcomeValid, loaded.Outcome())
		got, ok := loaded.GetString("name")
		require.True(t, ok)
		assert.Equal(t, "café 🍪", got)
	})

	t.Run("nil session", func(t *testing.T) {
		t.Parallel()

		err := store.Save(context.Background(), httptest.NewRecorder(), nil)
		assert.ErrorIs(t, err, session.ErrNilSession)
	})
}

func TestStore_Destroy(t *testing.T) {
	t.Parallel()

	store := newStore(t, []string{testSecret})

	sess := session.New()
	sess.Set("user_id", value.Int(42))
	loaded := store.Load(nextRequest(save(t, store, sess)))

	loaded.Destroy()
	rec := save(t, store, loaded)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
	assert.False(t, loaded.IsDestroyed())
}

func TestStore_Metrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	store := newStore(t, []string{testSecret}, session.WithMetrics(reg))

	// A second store on the same registry shares the collectors.
	_ = newStore(t, []string{testSecret}, session.WithMetrics(reg))

	sess := store.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	sess.Set("user_id", value.Int(42))
	rec := save(t, store, sess)

	loaded := store.Load(nextRequest(rec))
	save(t, store, loaded)

	store.Load(requestWithCookie("garbage"))

	expected := `
# HELP cookiestore_session_loads_total Session cookies read, partitioned by outcome.
# TYPE cookiestore_session_loads_total counter
cookiestore_session_loads_total{outcome="malformed"} 1
cookiestore_session_loads_total{outcome="missing"} 1
cookiestore_session_loads_total{outcome="valid"} 1
# HELP cookiestore_session_saves_total Session save attempts, partitioned by result.
# TYPE cookiestore_session_saves_total counter
cookiestore_session_saves_total{result="unchanged"} 1
cookiestore_session_saves_total{result="written"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"cookiestore_session_loads_total", "cookiestore_session_saves_total")
	assert.NoError(t, err)
}

func TestConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		var cfg session.Config
		require.NoError(t, env.ParseWithOptions(&cfg, env.Options{
			Environment: map[string]string{"SESSION_SECRETS": testSecret},
		}))

		assert.Equal(t, session.DefaultCookieName, cfg.Key)
		assert.Equal(t, []string{testSecret}, cfg.Secrets)
		assert.False(t, cfg.Encrypt)
		assert.Equal(t, cookie.MaxCookieSize, cfg.Cookie.MaxSize)
		assert.True(t, cfg.Cookie.HttpOnly)
		assert.Equal(t, http.SameSiteLaxMode, cfg.Cookie.SameSite)
	})

	t.Run("secrets are trimmed", func(t *testing.T) {
		t.Parallel()

		var cfg session.Config
		require.NoError(t, env.ParseWithOptions(&cfg, env.Options{
			Environment: map[string]string{
				"SESSION_KEY":     cookieName,
				"SESSION_SECRETS": " " + testSecret + " , " + testSecret2 + ",",
			},
		}))

		store, err := session.NewFromConfig(cfg)
		require.NoError(t, err)

		for _, secret := range []string{testSecret, testSecret2} {
			sess := session.New()
			sess.Set("user_id", value.Int(42))
			rec := save(t, newStore(t, []string{secret}), sess)

			loaded := store.Load(nextRequest(rec))
			assert.Equal(t, session.OutcomeValid, loaded.Outcome(), "secret %q", secret)
		}

		// The first trimmed secret signs.
		sess := session.New()
		sess.Set("user_id", value.Int(42))
		rec := save(t, store, sess)
		loaded := newStore(t, []string{testSecret}).Load(nextRequest(rec))
		assert.Equal(t, session.OutcomeValid, loaded.Outcome())
	})

	t.Run("store from config", func(t *testing.T) {
		t.Parallel()

		var cfg session.Config
		require.NoError(t, env.ParseWithOptions(&cfg, env.Options{
			Environment: map[string]string{
				"SESSION_KEY":      cookieName,
				"SESSION_SECRETS":  testSecret2 + "," + testSecret,
				"SESSION_ENCRYPT":  "true",
				"SESSION_COMPRESS": "true",
				"COOKIE_SECURE":    "true",
				"COOKIE_PATH":      "/app",
			},
		}))
		assert.Equal(t, []string{testSecret2, testSecret}, cfg.Secrets)

		store, err := session.NewFromConfig(cfg)
		require.NoError(t, err)
		assert.Equal(t, cookieName, store.Name())

		sess := session.New()
		sess.Set("user_id", value.Int(42))
		rec := save(t, store, sess)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, "/app", cookies[0].Path)

		loaded := store.Load(nextRequest(rec))
		id, ok := loaded.GetInt("user_id")
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})
}
