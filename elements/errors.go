package elements

import (
	"fmt"
	"time"
)

// TimeoutError is raised when the condition did not hold within the
// timeout budget. The message is the primary diagnostic surface and keeps
// a fixed shape: locator, condition, last observed mismatch, elapsed and
// allowed durations.
type TimeoutError struct {
	Kind      string
	Locator   string
	Condition string
	Mismatch  string
	Timeout   time.Duration
	Elapsed   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s should %s: %s (waited %v of %v)",
		e.Kind, e.Locator, e.Condition, e.Mismatch,
		e.Elapsed.Round(time.Millisecond), e.Timeout)
}

// AbortedError is raised when resolution or evaluation failed in a way
// waiting cannot fix; the remaining timeout budget is skipped.
type AbortedError struct {
	Kind      string
	Locator   string
	Condition string
	Cause     error
}

func (e *AbortedError) Error() string {
	return fmt.Sprintf("%s %s should %s: aborted: %s",
		e.Kind, e.Locator, e.Condition, e.Cause)
}

func (e *AbortedError) Unwrap() error {
	return e.Cause
}

// UsageError reports a call that is wrong independently of page state,
// such as a negative timeout. It is detected before polling starts.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string {
	return "invalid usage: " + e.Reason
}
