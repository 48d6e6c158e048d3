package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// LimiterManager keeps one token bucket per client key.
type LimiterManager struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	rate     rate.Limit
	burst    int
	done     chan struct{}
	once     sync.Once
}

// NewLimiterManager allows requestsPerSecond per key with the given burst.
// Idle keys are evicted in the background until Close.
func NewLimiterManager(requestsPerSecond float64, burst int) *LimiterManager {
	if burst < 1 {
		burst = 1
	}
	m := &LimiterManager{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		done:     make(chan struct{}),
	}
	go m.cleanupRoutine(limiterIdleTTL)
	return m
}

// Allow reports whether a request for key may proceed now.
func (m *LimiterManager) Allow(key string) bool {
	m.mu.Lock()
	l, ok := m.limiters[key]
	if !ok {
		l = rate.NewLimiter(m.rate, m.burst)
		m.limiters[key] = l
	}
	m.lastSeen[key] = time.Now()
	m.mu.Unlock()
	return l.Allow()
}

// Active returns the number of tracked keys.
func (m *LimiterManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.limiters)
}

// Close stops the cleanup goroutine.
func (m *LimiterManager) Close() {
	m.once.Do(func() { close(m.done) })
}

func (m *LimiterManager) cleanupRoutine(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.evictIdle(every)
		case <-m.done:
			return
		}
	}
}

func (m *LimiterManager) evictIdle(age time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for key, seen := range m.lastSeen {
		if now.Sub(seen) > age {
			delete(m.limiters, key)
			delete(m.lastSeen, key)
		}
	}
}

// clientIP prefers the first X-Forwarded-For address, then X-Real-IP, then
// the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, ip := range strings.Split(xff, ",") {
			ip = strings.TrimSpace(ip)
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	if xri := r.Header.Get("X-Real-IP"); net.ParseIP(xri) != nil {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
