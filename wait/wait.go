package wait

import (
	"context"
	"time"

	cm "github.com/lanseg/golang-commons/common"
)

const (
	DefaultTimeout      = 4 * time.Second
	DefaultPollInterval = 100 * time.Millisecond

	// Poll intervals below this floor are clamped so that a zero or
	// near-zero interval cannot starve the driver with a busy loop.
	MinPollInterval = 10 * time.Millisecond
)

var log = cm.NewLogger("wait")

// Class tells the polling loop what to do with an error raised while
// resolving or evaluating a target.
type Class int

const (
	// Transient errors count as "condition not met yet": the loop keeps
	// polling and the error never escapes the waiter.
	Transient Class = iota
	// Fatal errors abort the wait immediately, no matter how much of the
	// timeout budget is left.
	Fatal
)

// Classifier maps an error to its retry class.
type Classifier func(err error) Class

// AlwaysFatal treats every error as non-retryable.
func AlwaysFatal(error) Class {
	return Fatal
}

type Status int

const (
	Satisfied Status = iota
	TimedOut
	Aborted
)

func (s Status) String() string {
	switch s {
	case Satisfied:
		return "satisfied"
	case TimedOut:
		return "timed out"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Outcome is the result of a single wait call.
type Outcome struct {
	Status Status

	// Mismatch is the last observed mismatch description, kept for the
	// user-facing timeout message.
	Mismatch string

	Elapsed  time.Duration
	Attempts int

	// Cause is set when Status is Aborted.
	Cause error
}

type Config struct {
	Timeout      time.Duration
	PollInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
	}
}

func (c Config) interval() time.Duration {
	if c.PollInterval < MinPollInterval {
		return MinPollInterval
	}
	return c.PollInterval
}

// CheckFunc evaluates a freshly resolved target. A non-nil error is
// classified the same way as a resolution error.
type CheckFunc[T any] func(target T) (ok bool, mismatch string, err error)

// Until repeatedly resolves a target and evaluates check against it until
// the check passes, the timeout expires or a fatal error occurs. Each
// iteration performs exactly one resolve-then-evaluate pass; the resolved
// target is never reused across iterations.
//
// At least one pass always happens, even when the timeout is zero or has
// already expired. A passing check returns without any extra sleep. The
// deadline is re-checked both after a failed pass and before the next one,
// so the loop never overshoots the deadline by a full interval.
//
// The sleep between passes is interruptible: cancelling ctx aborts the
// wait with the context error as cause.
func Until[T any](ctx context.Context, resolve func() (T, error), check CheckFunc[T], classify Classifier, cfg Config) Outcome {
	start := time.Now()
	deadline := start.Add(cfg.Timeout)
	interval := cfg.interval()

	mismatch := "condition not met"
	attempts := 0
	for {
		if attempts > 0 && !time.Now().Before(deadline) {
			return Outcome{Status: TimedOut, Mismatch: mismatch, Elapsed: time.Since(start), Attempts: attempts}
		}

		target, err := resolve()
		attempts++
		if err != nil {
			if classify(err) == Fatal {
				log.Debugf("Aborting wait after %d attempts: %s", attempts, err)
				return Outcome{Status: Aborted, Mismatch: mismatch, Elapsed: time.Since(start), Attempts: attempts, Cause: err}
			}
			mismatch = err.Error()
		} else {
			ok, desc, err := check(target)
			if err != nil {
				if classify(err) == Fatal {
					log.Debugf("Aborting wait after %d attempts: %s", attempts, err)
					return Outcome{Status: Aborted, Mismatch: mismatch, Elapsed: time.Since(start), Attempts: attempts, Cause: err}
				}
				mismatch = err.Error()
			} else if ok {
				return Outcome{Status: Satisfied, Elapsed: time.Since(start), Attempts: attempts}
			} else {
				mismatch = desc
			}
		}

		if !time.Now().Before(deadline) {
			return Outcome{Status: TimedOut, Mismatch: mismatch, Elapsed: time.Since(start), Attempts: attempts}
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Outcome{Status: Aborted, Mismatch: mismatch, Elapsed: time.Since(start), Attempts: attempts, Cause: ctx.Err()}
		case <-timer.C:
		}
	}
}
