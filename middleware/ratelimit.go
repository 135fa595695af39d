package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SlidingWindow counts attempts per key over a trailing window.
type SlidingWindow struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	hits        map[string][]time.Time
}

// NewSlidingWindow allows maxAttempts per key within window.
func NewSlidingWindow(maxAttempts int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		maxAttempts: maxAttempts,
		window:      window,
		hits:        make(map[string][]time.Time),
	}
}

// Allow records an attempt for key at now and reports whether it is within the limit.
func (s *SlidingWindow) Allow(key string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := prune(s.hits[key], now.Add(-s.window))
	if len(ts) >= s.maxAttempts {
		s.hits[key] = ts
		return false
	}
	s.hits[key] = append(ts, now)
	return true
}

// Sweep drops keys whose attempts have all left the window.
func (s *SlidingWindow) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-s.window)
	for key, ts := range s.hits {
		if kept := prune(ts, cutoff); len(kept) == 0 {
			delete(s.hits, key)
		} else {
			s.hits[key] = kept
		}
	}
}

// Len returns the number of tracked keys.
func (s *SlidingWindow) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}

func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit limits login attempts per client IP; excess requests get 429.
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := NewSlidingWindow(maxAttempts, window)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			limiter.Sweep(now)
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.Allow(ip, time.Now()) {
			logrus.WithField("client", ip).Warn("login rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "too many login attempts, try again later",
			})
			return
		}
		c.Next()
	}
}
