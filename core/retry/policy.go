package retry

import (
	"math"
	"time"
)

// Class names a failure class with its own policy.
type Class string

const (
	ClassCollection  Class = "collection_errors"
	ClassConversion  Class = "conversion_errors"
	ClassIntegration Class = "integration_errors"
)

// Policy describes how often and how fast a failing operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// BackoffMultiplier scales the delay after every failed attempt.
	BackoffMultiplier float64 `mapstructure:"backoff_multiplier" default:"2"`
	// InitialDelay is the wait after the first failed attempt.
	InitialDelay time.Duration `mapstructure:"initial_delay" default:"500ms"`
	// MaxDelay caps every computed delay.
	MaxDelay time.Duration `mapstructure:"max_delay" default:"10s"`
}

// Delay returns the wait after the given failed attempt (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	mult := p.BackoffMultiplier
	if mult <= 0 {
		mult = 1
	}
	delay := float64(p.InitialDelay) * math.Pow(mult, float64(attempt-1))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// Attempts returns MaxAttempts, never less than one.
func (p Policy) Attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// Config groups the three per-class policies for configuration loading.
type Config struct {
	Collection  Policy `mapstructure:"collection_errors"`
	Conversion  Policy `mapstructure:"conversion_errors"`
	Integration Policy `mapstructure:"integration_errors"`
}

// Policies indexes policies by failure class.
type Policies map[Class]Policy

// Policies converts the configuration into a lookup table.
func (c Config) Policies() Policies {
	return Policies{
		ClassCollection:  c.Collection,
		ClassConversion:  c.Conversion,
		ClassIntegration: c.Integration,
	}
}

// For returns the policy of a class, or a single-attempt policy if unset.
func (p Policies) For(class Class) Policy {
	if policy, ok := p[class]; ok {
		return policy
	}
	return Policy{MaxAttempts: 1}
}

// DefaultPolicies returns the built-in policies.
// Conversion is deterministic, so it is attempted once.
func DefaultPolicies() Policies {
	return Policies{
		ClassCollection: {
			MaxAttempts:       3,
			BackoffMultiplier: 2,
			InitialDelay:      time.Second,
			MaxDelay:          30 * time.Second,
		},
		ClassConversion: {
			MaxAttempts:       1,
			BackoffMultiplier: 1,
		},
		ClassIntegration: {
			MaxAttempts:       2,
			BackoffMultiplier: 2,
			InitialDelay:      500 * time.Millisecond,
			MaxDelay:          5 * time.Second,
		},
	}
}
