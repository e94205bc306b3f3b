package resilience

import "time"

// CircuitBreakerConfig tunes a CircuitBreaker. Zero or negative fields are
// replaced with defaults by NormalizeCircuitBreakerConfig.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      15 * time.Second,
		HalfOpenMaxReq:   2,
	}
}

// NormalizeCircuitBreakerConfig fills in defaults for any field that would
// make the breaker inert or divide-by-zero prone.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	def := DefaultCircuitBreakerConfig()
	cfg.FailureThreshold = atLeast(cfg.FailureThreshold, 1, def.FailureThreshold)
	cfg.HalfOpenMaxReq = atLeast(cfg.HalfOpenMaxReq, 1, def.HalfOpenMaxReq)
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return cfg
}

func atLeast(v, min, fallback int) int {
	if v < min {
		return fallback
	}
	return v
}
