package webdriver

import (
	"errors"
	"strings"

	"github.com/lanseg/golang-commons/optional"

	"fluentwd/wait"
)

// Driver errors are folded into this taxonomy so that the wait engine can
// classify them without knowing which backend produced them.
var (
	ErrNoSuchElement        = errors.New("no such element")
	ErrStaleElement         = errors.New("stale element reference")
	ErrNotVisible           = errors.New("element not visible")
	ErrSessionClosed        = errors.New("session closed")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrInvalidSelector      = errors.New("invalid selector")
)

// Driver is the external collaborator: something that can turn a selector
// into element snapshots. FindAll returns an empty slice, not an error,
// when nothing matches.
type Driver interface {
	Find(selector string) (*Snapshot, error)
	FindAll(selector string) ([]*Snapshot, error)
}

// Snapshot is an immutable point-in-time view of one element. It is
// rebuilt from scratch on every poll iteration and never mutated after
// resolution, so evaluating a condition against it twice gives the same
// answer.
type Snapshot struct {
	Tag       string
	Text      string
	Displayed bool
	Enabled   bool
	Selected  bool
	Attrs     map[string]string
}

// Attribute distinguishes an absent attribute from an empty one.
func (s *Snapshot) Attribute(name string) optional.Optional[string] {
	if value, ok := s.Attrs[name]; ok {
		return optional.Of(value)
	}
	return optional.Nothing[string]{}
}

// Classes returns the whitespace-separated entries of the class attribute.
func (s *Snapshot) Classes() []string {
	return strings.Fields(s.Attribute("class").OrElse(""))
}

// Locator lazily resolves a logical element reference. It keeps no state
// between calls: each One/All invocation goes back to the driver.
type Locator struct {
	Description string
	One         func() (*Snapshot, error)
	All         func() ([]*Snapshot, error)
}

func NewLocator(driver Driver, selector string) Locator {
	return Locator{
		Description: selector,
		One: func() (*Snapshot, error) {
			return driver.Find(selector)
		},
		All: func() ([]*Snapshot, error) {
			return driver.FindAll(selector)
		},
	}
}

// Classify is the default policy for driver errors. Absent, detached and
// not-yet-visible elements can appear with more waiting, so they are
// retried. A closed session, an unsupported operation or a selector the
// driver rejected cannot be fixed by waiting; same for anything the
// taxonomy does not know about.
func Classify(err error) wait.Class {
	switch {
	case errors.Is(err, ErrNoSuchElement),
		errors.Is(err, ErrStaleElement),
		errors.Is(err, ErrNotVisible):
		return wait.Transient
	}
	return wait.Fatal
}
