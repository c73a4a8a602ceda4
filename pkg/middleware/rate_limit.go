package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"salonbook/pkg/logger"
)

// maxPhoneBodyBytes bounds how much of the body the extractor buffers.
const maxPhoneBodyBytes = 64 << 10

type PhoneExtractor func(r *http.Request) string

// PhoneRateLimiter is a sliding-window limiter keyed by contact phone.
type PhoneRateLimiter struct {
	mu             sync.Mutex
	requests       map[string][]time.Time
	limit          int
	window         time.Duration
	phoneExtractor PhoneExtractor
	log            *logger.Logger
	stopCh         chan struct{}
	stopOnce       sync.Once
	now            func() time.Time
}

func NewPhoneRateLimiter(limit int, window time.Duration, extractor PhoneExtractor, log *logger.Logger) *PhoneRateLimiter {
	if extractor == nil {
		extractor = BodyPhoneExtractor
	}
	limiter := &PhoneRateLimiter{
		requests:       make(map[string][]time.Time),
		limit:          limit,
		window:         window,
		phoneExtractor: extractor,
		log:            log,
		stopCh:         make(chan struct{}),
		now:            time.Now,
	}

	go limiter.cleanup()

	return limiter
}

func (rl *PhoneRateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for phone, timestamps := range rl.requests {
				if len(timestamps) == 0 || now.Sub(timestamps[len(timestamps)-1]) > rl.window {
					delete(rl.requests, phone)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *PhoneRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *PhoneRateLimiter) Allow(phone string) bool {
	if phone == "" || rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	valid := rl.requests[phone][:0]
	for _, ts := range rl.requests[phone] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[phone] = valid
		return false
	}

	rl.requests[phone] = append(valid, now)
	return true
}

func PhoneRateLimit(limiter *PhoneRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			phone := limiter.phoneExtractor(r)

			if !limiter.Allow(phone) {
				limiter.log.Warn("Rate limit exceeded",
					"request_id", requestIDFrom(r.Context()),
					"phone", phone,
					"path", r.URL.Path,
				)
				reject(w, http.StatusTooManyRequests, "Too many booking requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BodyPhoneExtractor reads the "phone" field of a JSON POST body and puts
// the body back for the handler. Other methods yield no phone.
func BodyPhoneExtractor(r *http.Request) string {
	if r.Method != http.MethodPost || r.Body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxPhoneBodyBytes))
	rest := r.Body
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(data), rest), rest}
	if err != nil {
		return ""
	}

	var body struct {
		Phone string `json:"phone"`
	}
	if json.Unmarshal(data, &body) != nil {
		return ""
	}
	return body.Phone
}
