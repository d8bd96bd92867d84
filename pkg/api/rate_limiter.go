package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/groupcache/lru"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultRateLimitClients bounds how many client buckets are kept at once.
const DefaultRateLimitClients = 10000

// limiterStore holds one token bucket per client IP. The least recently seen
// clients are dropped once maxClients is reached.
type limiterStore struct {
	mu      sync.Mutex
	clients *lru.Cache
	every   rate.Limit
	burst   int
}

func newLimiterStore(perMinute, burst, maxClients int) *limiterStore {
	if burst <= 0 {
		burst = 1
	}
	if maxClients <= 0 {
		maxClients = DefaultRateLimitClients
	}
	return &limiterStore{
		clients: lru.New(maxClients),
		every:   rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
	}
}

func (s *limiterStore) get(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.clients.Get(ip); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(s.every, s.burst)
	s.clients.Add(ip, limiter)
	return limiter
}

// RateLimitMiddleware allows each client IP perMinute requests with the given
// burst and rejects the rest with 429. The IP comes from c.ClientIP, so
// forwarding headers only count when the engine trusts the proxy that sent them.
func RateLimitMiddleware(perMinute, burst int) gin.HandlerFunc {
	store := newLimiterStore(perMinute, burst, DefaultRateLimitClients)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !store.get(ip).Allow() {
			requestLogger(c, zap.NewNop()).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{Detail: "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}
