package conditions

import (
	"fmt"
	"strings"

	"fluentwd/webdriver"
)

// Check is the result of evaluating a condition against one resolved
// target. Mismatch describes the actual state when Ok is false. A non-nil
// Err means the condition could not be evaluated at all; the wait engine
// classifies it like a resolution error.
type Check struct {
	Ok       bool
	Mismatch string
	Err      error
}

func ok() Check {
	return Check{Ok: true}
}

func mismatch(format string, args ...any) Check {
	return Check{Mismatch: fmt.Sprintf(format, args...)}
}

// Condition is a named predicate over a resolved target: either a single
// element snapshot or an ordered collection of them. The name reads as the
// tail of "element X should ...". Conditions are pure: re-checking the
// same snapshot always yields the same result.
type Condition[T any] interface {
	Name() string
	Check(target T) Check
}

type (
	ElementCondition    = Condition[*webdriver.Snapshot]
	CollectionCondition = Condition[[]*webdriver.Snapshot]
)

type condition[T any] struct {
	name  string
	check func(target T) Check
}

func (c *condition[T]) Name() string {
	return c.name
}

func (c *condition[T]) Check(target T) Check {
	return c.check(target)
}

// New builds a condition from a name and a check function. Name and
// mismatch descriptions become part of user-facing failure messages, so
// keep them readable.
func New[T any](name string, check func(target T) Check) Condition[T] {
	return &condition[T]{name: name, check: check}
}

// Not matches when the wrapped condition does not. Evaluation errors pass
// through unchanged: the engine applies the same classification policy
// regardless of negation.
func Not[T any](c Condition[T]) Condition[T] {
	return New("not "+c.Name(), func(target T) Check {
		inner := c.Check(target)
		if inner.Err != nil {
			return inner
		}
		if inner.Ok {
			return mismatch("condition %q still holds", c.Name())
		}
		return ok()
	})
}

// And matches when every condition matches the same target. All
// sub-conditions are checked against the one snapshot of the current poll
// iteration, so the conjunction can only pass when they hold
// simultaneously. The mismatch lists every failing sub-condition in
// declaration order.
func And[T any](conds ...Condition[T]) Condition[T] {
	if len(conds) == 1 {
		return conds[0]
	}
	names := make([]string, len(conds))
	for i, c := range conds {
		names[i] = c.Name()
	}
	return New(strings.Join(names, " and "), func(target T) Check {
		failures := []string{}
		for i, c := range conds {
			result := c.Check(target)
			if result.Err != nil {
				return result
			}
			if !result.Ok {
				failures = append(failures, fmt.Sprintf("%s: %s", names[i], result.Mismatch))
			}
		}
		if len(failures) > 0 {
			return mismatch("%s", strings.Join(failures, "; "))
		}
		return ok()
	})
}
