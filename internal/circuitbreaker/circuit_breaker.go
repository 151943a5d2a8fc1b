// Package circuitbreaker stops hammering a storage backend that keeps failing.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vibe-guide/internal/logging"
)

// State represents the circuit breaker state
type State string

const (
	// StateClosed means the circuit is closed and requests are allowed
	StateClosed State = "closed"
	// StateOpen means the circuit is open and requests are blocked
	StateOpen State = "open"
	// StateHalfOpen means a single trial request is allowed through
	StateHalfOpen State = "half_open"
)

// ErrCircuitOpen is returned when the circuit breaker is open
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Config configures a circuit breaker
type Config struct {
	Name        string
	MaxFailures int           // consecutive failures before opening
	Cooldown    time.Duration // time spent open before a trial request
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig(name string) *Config {
	return &Config{
		Name:        name,
		MaxFailures: 5,
		Cooldown:    30 * time.Second,
	}
}

// CircuitBreaker implements the circuit breaker pattern
type CircuitBreaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration
	logger      *logging.Logger
	now         func() time.Time

	mu               sync.Mutex
	state            State
	consecutiveFails int
	trialInFlight    bool
	lastStateChange  time.Time
	totalCalls       int
	totalFailures    int
	rejected         int
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(config *Config, logger *logging.Logger) *CircuitBreaker {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	maxFailures := config.MaxFailures
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		name:            config.Name,
		maxFailures:     maxFailures,
		cooldown:        config.Cooldown,
		logger:          logger.WithField("circuitBreaker", config.Name),
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
}

// Execute runs fn unless the circuit is open
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.cooldown {
			cb.rejected++
			return ErrCircuitOpen
		}
		cb.setState(StateHalfOpen)
		cb.logger.Info("Circuit breaker transitioning to half-open")
		cb.trialInFlight = true
		return nil

	case StateHalfOpen:
		if cb.trialInFlight {
			cb.rejected++
			return ErrCircuitOpen
		}
		cb.trialInFlight = true
		return nil

	default:
		return nil
	}
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.totalCalls++
	cb.trialInFlight = false

	if err == nil {
		cb.consecutiveFails = 0
		if cb.state == StateHalfOpen {
			cb.setState(StateClosed)
			cb.logger.Info("Circuit breaker closed after successful recovery")
		}
		return
	}

	cb.totalFailures++
	cb.consecutiveFails++

	switch cb.state {
	case StateClosed:
		if cb.consecutiveFails >= cb.maxFailures {
			cb.setState(StateOpen)
			cb.logger.WithField("consecutiveFails", cb.consecutiveFails).Warn("Circuit breaker opened due to failures")
		}
	case StateHalfOpen:
		cb.setState(StateOpen)
		cb.logger.Warn("Circuit breaker reopened after failure in half-open state")
	}
}

func (cb *CircuitBreaker) setState(state State) {
	cb.state = state
	cb.lastStateChange = cb.now()
}

// GetState returns the current state of the circuit breaker
func (cb *CircuitBreaker) GetState() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats represents circuit breaker statistics
type Stats struct {
	Name             string    `json:"name"`
	State            State     `json:"state"`
	TotalCalls       int       `json:"totalCalls"`
	TotalFailures    int       `json:"totalFailures"`
	ConsecutiveFails int       `json:"consecutiveFails"`
	Rejected         int       `json:"rejected"`
	LastStateChange  time.Time `json:"lastStateChange"`
}

// GetStats returns statistics about the circuit breaker
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		Name:             cb.name,
		State:            cb.state,
		TotalCalls:       cb.totalCalls,
		TotalFailures:    cb.totalFailures,
		ConsecutiveFails: cb.consecutiveFails,
		Rejected:         cb.rejected,
		LastStateChange:  cb.lastStateChange,
	}
}
