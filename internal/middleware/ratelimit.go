package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"imageserver/internal/models"
)

// Limiter is consulted once per request with the client key.
type Limiter interface {
	Allow(key string) bool
}

// Quota is what a limiter reports about a key after counting a request.
type Quota struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// quotaLimiter is implemented by limiters that can report the quota of the
// same request they counted.
type quotaLimiter interface {
	AllowWithQuota(key string) (bool, Quota)
}

type window struct {
	start time.Time
	count int
}

// FixedWindow counts requests per key in windows of a fixed length.
// State lives in process memory only.
type FixedWindow struct {
	mu        sync.Mutex
	limit     int
	length    time.Duration
	windows   map[string]*window
	lastSweep time.Time
	now       func() time.Time
}

func NewFixedWindow(limit int, length time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:   limit,
		length:  length,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *FixedWindow) Allow(key string) bool {
	allowed, _ := l.AllowWithQuota(key)
	return allowed
}

// AllowWithQuota counts the request and returns the quota left after it,
// both taken under one lock.
func (l *FixedWindow) AllowWithQuota(key string) (bool, Quota) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.length {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++

	remaining := l.limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= l.limit, Quota{Limit: l.limit, Remaining: remaining, Reset: w.start.Add(l.length)}
}

// sweep drops expired windows at most once per window length. Caller holds mu.
func (l *FixedWindow) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.length {
		return
	}
	for key, w := range l.windows {
		if now.Sub(w.start) >= l.length {
			delete(l.windows, key)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects clients over their quota with 429 and publishes the
// RateLimit-* headers when the limiter can report them.
func RateLimit(limiter Limiter, length time.Duration, logger log.Logger) gin.HandlerFunc {
	message := fmt.Sprintf("Too many requests from this IP, please try again after %s", humanWindow(length))

	return func(c *gin.Context) {
		key := c.ClientIP()

		var allowed bool
		if ql, ok := limiter.(quotaLimiter); ok {
			var q Quota
			allowed, q = ql.AllowWithQuota(key)
			c.Header("RateLimit-Limit", strconv.Itoa(q.Limit))
			c.Header("RateLimit-Remaining", strconv.Itoa(q.Remaining))
			c.Header("RateLimit-Reset", strconv.Itoa(int(math.Ceil(time.Until(q.Reset).Seconds()))))
		} else {
			allowed = limiter.Allow(key)
		}

		if !allowed {
			level.Warn(logger).Log("msg", "rate limit exceeded", "client_ip", key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{Error: message})
			return
		}
		c.Next()
	}
}

func humanWindow(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return strconv.Itoa(n) + " " + unit + "s"
}
