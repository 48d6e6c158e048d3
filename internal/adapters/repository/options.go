package repository

import "time"

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix namespaces every key written by the store.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithRecordTTL expires assessment records after ttl. Zero keeps them forever.
func WithRecordTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// BreakerOption configures a BreakerStore.
type BreakerOption func(*breakerSettings)

type breakerSettings struct {
	name         string
	maxRequests  uint32
	interval     time.Duration
	timeout      time.Duration
	minRequests  uint32
	failureRatio float64
}

// WithBreakerName names the breaker in logs.
func WithBreakerName(name string) BreakerOption {
	return func(s *breakerSettings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithBreakerTimeout sets how long the breaker stays open.
func WithBreakerTimeout(d time.Duration) BreakerOption {
	return func(s *breakerSettings) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithTripThreshold opens the breaker once minRequests calls have been made in
// the current interval and at least ratio of them failed.
func WithTripThreshold(minRequests uint32, ratio float64) BreakerOption {
	return func(s *breakerSettings) {
		if minRequests > 0 {
			s.minRequests = minRequests
		}
		if ratio > 0 && ratio <= 1 {
			s.failureRatio = ratio
		}
	}
}
