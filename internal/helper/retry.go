package helper

import (
	"context"
	"math"
	"time"

	"github.com/caas-team/finch/internal/logger"
)

// Effector is a function that performs a single attempt of some operation
type Effector func(context.Context) error

// RetryConfig is the configuration for the retry mechanism
type RetryConfig struct {
	// Count is the number of retries
	Count int `json:"count" yaml:"count"`
	// Delay is the initial delay between retries
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Retry will retry to run the effector function in an exponential backoff
func Retry(effector Effector, rc RetryConfig) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		for r := 1; ; r++ {
			err := effector(ctx)
			if err == nil || r > rc.Count {
				return err
			}

			delay := getExpBackoff(rc.Delay, r)
			log.Warn("Effector call failed, retrying", "delay", delay.String(), "attempt", r)

			timer := time.NewTimer(delay)

			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
}

// calculate the exponential delay for a given iteration
// first iteration is 1
func getExpBackoff(initialDelay time.Duration, iteration int) time.Duration {
	if iteration <= 1 {
		return initialDelay
	}
	return time.Duration(math.Pow(2, float64(iteration-1))) * initialDelay
}
