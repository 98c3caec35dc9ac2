// Package elements is the user-facing surface: lazy element and
// collection handles with retrying should-style assertions on top of the
// wait engine.
package elements

import (
	"context"
	"time"

	cm "github.com/lanseg/golang-commons/common"

	"fluentwd/conditions"
	"fluentwd/wait"
	"fluentwd/webdriver"
)

// Element is a lazy handle to a single page element. Creating one does not
// touch the driver; every wait call re-resolves the selector from scratch
// on each poll iteration.
type Element struct {
	logger   *cm.Logger
	locator  webdriver.Locator
	settings settings
}

func New(driver webdriver.Driver, selector string, opts ...Option) *Element {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return &Element{
		logger:   cm.NewLogger("Element"),
		locator:  webdriver.NewLocator(driver, selector),
		settings: s,
	}
}

// Within derives a handle with a different timeout for subsequent calls.
func (e *Element) Within(timeout time.Duration) *Element {
	derived := *e
	WithTimeout(timeout)(&derived.settings)
	return &derived
}

// PollingEvery derives a handle with a different poll interval.
func (e *Element) PollingEvery(interval time.Duration) *Element {
	derived := *e
	WithPollInterval(interval)(&derived.settings)
	return &derived
}

// Should waits until all conditions hold at the same time. Conditions are
// checked against one shared snapshot per poll iteration, so a conjunction
// only passes when its members hold simultaneously — waiting for each
// condition in sequence would let the earlier ones silently stop holding.
//
// On timeout the returned TimeoutError carries the locator, the condition,
// the last observed mismatch and the waited duration. Fatal resolution
// failures surface immediately as AbortedError.
func (e *Element) Should(ctx context.Context, conds ...conditions.ElementCondition) error {
	cond, err := e.validate(conds)
	if err != nil {
		return err
	}
	outcome := wait.Until(ctx, e.locator.One, checkFunc(cond), webdriver.Classify, e.settings.cfg)
	return e.report(cond, outcome)
}

// ShouldHave reads better for content conditions; same as Should.
func (e *Element) ShouldHave(ctx context.Context, conds ...conditions.ElementCondition) error {
	return e.Should(ctx, conds...)
}

// ShouldBe reads better for state conditions; same as Should.
func (e *Element) ShouldBe(ctx context.Context, conds ...conditions.ElementCondition) error {
	return e.Should(ctx, conds...)
}

// ShouldNot waits until none of the conditions hold. Error classification
// is unchanged by negation.
func (e *Element) ShouldNot(ctx context.Context, conds ...conditions.ElementCondition) error {
	negated := make([]conditions.ElementCondition, len(conds))
	for i, c := range conds {
		negated[i] = conditions.Not(c)
	}
	return e.Should(ctx, negated...)
}

// Text waits for the element to exist and returns its text.
func (e *Element) Text(ctx context.Context) (string, error) {
	cond, err := e.validate([]conditions.ElementCondition{conditions.Exist()})
	if err != nil {
		return "", err
	}

	var last *webdriver.Snapshot
	resolve := func() (*webdriver.Snapshot, error) {
		snapshot, err := e.locator.One()
		if err == nil {
			last = snapshot
		}
		return snapshot, err
	}
	outcome := wait.Until(ctx, resolve, checkFunc(cond), webdriver.Classify, e.settings.cfg)
	if err := e.report(cond, outcome); err != nil {
		return "", err
	}
	return last.Text, nil
}

func (e *Element) validate(conds []conditions.ElementCondition) (conditions.ElementCondition, error) {
	if e.settings.usageErr != nil {
		return nil, e.settings.usageErr
	}
	if len(conds) == 0 {
		return nil, &UsageError{Reason: "at least one condition is required"}
	}
	return conditions.And(conds...), nil
}

func (e *Element) report(cond conditions.ElementCondition, outcome wait.Outcome) error {
	return reportOutcome(e.logger, "element", e.locator.Description, cond.Name(), e.settings.cfg, outcome)
}

// Collection is a lazy handle to an ordered sequence of elements. An empty
// resolution is a normal, retryable state: collections are expected to
// populate asynchronously.
type Collection struct {
	logger   *cm.Logger
	locator  webdriver.Locator
	settings settings
}

func All(driver webdriver.Driver, selector string, opts ...Option) *Collection {
	s := defaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return &Collection{
		logger:   cm.NewLogger("Collection"),
		locator:  webdriver.NewLocator(driver, selector),
		settings: s,
	}
}

func (c *Collection) Within(timeout time.Duration) *Collection {
	derived := *c
	WithTimeout(timeout)(&derived.settings)
	return &derived
}

func (c *Collection) PollingEvery(interval time.Duration) *Collection {
	derived := *c
	WithPollInterval(interval)(&derived.settings)
	return &derived
}

// Should waits until all collection conditions hold against one shared
// snapshot of the full collection per poll iteration.
func (c *Collection) Should(ctx context.Context, conds ...conditions.CollectionCondition) error {
	cond, err := c.validate(conds)
	if err != nil {
		return err
	}
	outcome := wait.Until(ctx, c.locator.All, checkFunc(cond), webdriver.Classify, c.settings.cfg)
	return c.report(cond, outcome)
}

func (c *Collection) ShouldHave(ctx context.Context, conds ...conditions.CollectionCondition) error {
	return c.Should(ctx, conds...)
}

func (c *Collection) ShouldNot(ctx context.Context, conds ...conditions.CollectionCondition) error {
	negated := make([]conditions.CollectionCondition, len(conds))
	for i, cond := range conds {
		negated[i] = conditions.Not(cond)
	}
	return c.Should(ctx, negated...)
}

// Texts waits for the collection to be non-empty and returns the texts in
// document order.
func (c *Collection) Texts(ctx context.Context) ([]string, error) {
	cond, err := c.validate([]conditions.CollectionCondition{conditions.SizeAtLeast(1)})
	if err != nil {
		return nil, err
	}

	var last []*webdriver.Snapshot
	resolve := func() ([]*webdriver.Snapshot, error) {
		snapshots, err := c.locator.All()
		if err == nil {
			last = snapshots
		}
		return snapshots, err
	}
	outcome := wait.Until(ctx, resolve, checkFunc(cond), webdriver.Classify, c.settings.cfg)
	if err := c.report(cond, outcome); err != nil {
		return nil, err
	}
	result := make([]string, len(last))
	for i, snapshot := range last {
		result[i] = snapshot.Text
	}
	return result, nil
}

func (c *Collection) validate(conds []conditions.CollectionCondition) (conditions.CollectionCondition, error) {
	if c.settings.usageErr != nil {
		return nil, c.settings.usageErr
	}
	if len(conds) == 0 {
		return nil, &UsageError{Reason: "at least one condition is required"}
	}
	return conditions.And(conds...), nil
}

func (c *Collection) report(cond conditions.CollectionCondition, outcome wait.Outcome) error {
	return reportOutcome(c.logger, "collection", c.locator.Description, cond.Name(), c.settings.cfg, outcome)
}

func checkFunc[T any](c conditions.Condition[T]) wait.CheckFunc[T] {
	return func(target T) (bool, string, error) {
		result := c.Check(target)
		return result.Ok, result.Mismatch, result.Err
	}
}

func reportOutcome(logger *cm.Logger, kind string, locator string, condition string, cfg wait.Config, outcome wait.Outcome) error {
	switch outcome.Status {
	case wait.Satisfied:
		return nil
	case wait.Aborted:
		err := &AbortedError{
			Kind:      kind,
			Locator:   locator,
			Condition: condition,
			Cause:     outcome.Cause,
		}
		logger.Warningf("%s", err)
		return err
	}
	err := &TimeoutError{
		Kind:      kind,
		Locator:   locator,
		Condition: condition,
		Mismatch:  outcome.Mismatch,
		Timeout:   cfg.Timeout,
		Elapsed:   outcome.Elapsed,
	}
	logger.Warningf("%s (%d attempts in %v)", err, outcome.Attempts, outcome.Elapsed)
	return err
}
