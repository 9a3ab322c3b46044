package transport

import (
	"math"
	"math/rand"
	"time"
)

// BackoffConfig defines reconnect delay behavior. A multiplier of 1.0 with
// jitter off gives the fixed inter-attempt delay the reference client uses.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
}

// NextDelay returns the reconnect delay for attempt N (1-based). The first
// attempt always waits InitialDelay; later attempts grow by Multiplier and
// are clamped to MaxDelay when one is set.
func (cfg BackoffConfig) NextDelay(attempt int, rng *rand.Rand) time.Duration {
	if cfg.InitialDelay <= 0 {
		return 0
	}
	if attempt <= 1 {
		return cfg.InitialDelay
	}
	growth := math.Max(cfg.Multiplier, 1.0)
	delay := float64(cfg.InitialDelay) * math.Pow(growth, float64(attempt-1))
	if max := float64(cfg.MaxDelay); cfg.MaxDelay > 0 && delay > max {
		delay = max
	}
	return time.Duration(delay * cfg.jitterFactor(rng))
}

// jitterFactor scales a delay into [0.5, 1.5) when jitter is enabled. Without
// an rng the midpoint is used so the delay stays deterministic.
func (cfg BackoffConfig) jitterFactor(rng *rand.Rand) float64 {
	if !cfg.Jitter {
		return 1.0
	}
	if rng == nil {
		return 0.5
	}
	return 0.5 + rng.Float64()
}
