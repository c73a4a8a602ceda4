package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"salonbook/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
}

func TestRequestLogging_SetsRequestID(t *testing.T) {
	var seen string
	h := RequestLogging(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Internal server error"}`, rec.Body.String())
}

func TestContentTypeValidation(t *testing.T) {
	h := ContentTypeValidation(logger.NewNop())(okHandler())

	tests := []struct {
		method      string
		contentType string
		want        int
	}{
		{http.MethodPost, "application/json", http.StatusOK},
		{http.MethodPost, "application/json; charset=utf-8", http.StatusOK},
		{http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{http.MethodPost, "", http.StatusUnsupportedMediaType},
		{http.MethodGet, "", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/api/bookings", strings.NewReader(`{}`))
		if tt.contentType != "" {
			req.Header.Set("Content-Type", tt.contentType)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "%s %q", tt.method, tt.contentType)
	}
}

func TestRequestTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	h := RequestTimeout(20 * time.Millisecond)(slow)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Request timeout"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RequestTimeout(time.Second)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestTimeout_StaleHandlerKeepsOwnHeaders(t *testing.T) {
	finished := make(chan struct{})
	var lateWriteErr error
	stale := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(finished)
		<-r.Context().Done()
		for i := 0; i < 1000; i++ {
			w.Header().Set("X-Stale", "yes")
		}
		w.WriteHeader(http.StatusOK)
		_, lateWriteErr = w.Write([]byte(`{"ok":true}`))
	})

	rec := httptest.NewRecorder()
	RequestTimeout(10*time.Millisecond)(stale).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	<-finished

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"ok":false,"message":"Request timeout"}`, rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Stale"))
	assert.ErrorIs(t, lateWriteErr, http.ErrHandlerTimeout)
}

func TestRequestTimeout_CopiesHandlerHeaders(t *testing.T) {
	h := RequestTimeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "{}", rec.Body.String())
}

func TestMaxRequestSize(t *testing.T) {
	var readErr error
	h := MaxRequestSize(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	assert.NoError(t, readErr)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"too long"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPhoneRateLimit(t *testing.T) {
	limiter := NewPhoneRateLimiter(2, time.Minute, nil, logger.NewNop())
	defer limiter.Stop()

	var bodies []string
	h := PhoneRateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
	}))

	body := `{"name":"Ann","phone":"555"}`
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	require.Len(t, bodies, 2)
	assert.Equal(t, body, bodies[0], "body must be restored for the handler")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body)))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// other phones and bodies without a phone pass
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{"phone":"777"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/availability", strings.NewReader(`{"staff":"Bo"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPhoneRateLimiter_WindowExpires(t *testing.T) {
	limiter := NewPhoneRateLimiter(1, time.Minute, nil, logger.NewNop())
	defer limiter.Stop()

	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("555"))
	assert.False(t, limiter.Allow("555"))

	now = now.Add(61 * time.Second)
	assert.True(t, limiter.Allow("555"))
}

func TestIdempotency_InMemory(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Minute)
	defer store.Stop()

	var calls atomic.Int32
	h := Idempotency(store, "", logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n > 1 {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"ok":false}`))
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))

	send := func(key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(`{}`))
		if key != "" {
			req.Header.Set(DefaultIdempotencyHeader, key)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	first := send("k1")
	assert.Equal(t, http.StatusOK, first.Code)

	replay := send("k1")
	assert.Equal(t, http.StatusOK, replay.Code)
	assert.JSONEq(t, `{"ok":true}`, replay.Body.String())
	assert.Equal(t, "true", replay.Header().Get(idempotencyReplayHeader))
	assert.Equal(t, int32(1), calls.Load())

	assert.Equal(t, http.StatusConflict, send("").Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestInMemoryIdempotencyStore_Expiry(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Millisecond)
	defer store.Stop()

	store.Set(t.Context(), "k", &CachedResponse{StatusCode: http.StatusOK})
	time.Sleep(5 * time.Millisecond)
	_, found := store.Get(t.Context(), "k")
	assert.False(t, found)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/api/bookings", routeLabel("/api/bookings"))
	assert.Equal(t, "/api/other", routeLabel("/api/unknown"))
	assert.Equal(t, "static", routeLabel("/css/site.css"))
}
