package elements

import (
	"fmt"
	"time"

	"fluentwd/wait"
)

type settings struct {
	cfg      wait.Config
	usageErr error
}

func defaultSettings() settings {
	return settings{cfg: wait.DefaultConfig()}
}

// Option configures an Element or Collection handle at construction time.
type Option func(*settings)

// WithTimeout sets the default timeout for every wait on the handle.
// Negative values surface as a UsageError on the first wait call.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d < 0 {
			s.usageErr = &UsageError{Reason: fmt.Sprintf("negative timeout: %v", d)}
			return
		}
		s.cfg.Timeout = d
	}
}

// WithPollInterval sets the default polling interval for every wait on the
// handle. Values below wait.MinPollInterval are clamped by the engine.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) {
		if d < 0 {
			s.usageErr = &UsageError{Reason: fmt.Sprintf("negative poll interval: %v", d)}
			return
		}
		s.cfg.PollInterval = d
	}
}
