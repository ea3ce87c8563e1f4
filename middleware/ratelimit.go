package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"furniture-catalog/logger"

	"github.com/gin-gonic/gin"
)

const (
	staleAfter      = 10 * time.Minute
	cleanupInterval = 5 * time.Minute
)

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client-IP token bucket for the admin routes.
type RateLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	burst      float64
	refillRate float64 // tokens per second
	log        *logger.Logger
	now        func() time.Time
	stop       chan struct{}
	stopOnce   sync.Once
}

// NewRateLimiter allows maxRequests per client within perDuration, with the
// full amount available as a burst. Call Stop to end the cleanup goroutine.
func NewRateLimiter(maxRequests int, perDuration time.Duration, log *logger.Logger) *RateLimiter {
	if log == nil {
		log = logger.Nop()
	}
	rl := &RateLimiter{
		buckets:    make(map[string]*bucket),
		burst:      float64(maxRequests),
		refillRate: float64(maxRequests) / perDuration.Seconds(),
		log:        log,
		now:        time.Now,
		stop:       make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictStale()
		}
	}
}

func (rl *RateLimiter) evictStale() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	for ip, b := range rl.buckets {
		if now.Sub(b.lastSeen) > staleAfter {
			delete(rl.buckets, ip)
		}
	}
}

// take consumes one token for the client. When none is left it reports how
// long until the next token.
func (rl *RateLimiter) take(clientIP string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[clientIP]
	if !ok {
		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[clientIP] = b
	}

	b.tokens = math.Min(rl.burst, b.tokens+now.Sub(b.lastSeen).Seconds()*rl.refillRate)
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	if rl.refillRate <= 0 {
		return false, time.Minute
	}
	wait := time.Duration((1 - b.tokens) / rl.refillRate * float64(time.Second))
	return false, wait
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		ok, wait := rl.take(clientIP)
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			rl.log.Warn("admin rate limit exceeded", "client_ip", clientIP, "path", c.FullPath())
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}
		c.Next()
	}
}
