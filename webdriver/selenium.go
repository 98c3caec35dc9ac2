package webdriver

import (
	"errors"
	"fmt"
	"strings"

	cm "github.com/lanseg/golang-commons/common"
	"github.com/lanseg/golang-commons/concurrent"
	"github.com/lanseg/golang-commons/optional"
	"github.com/tebeka/selenium"
)

// Attributes captured into every snapshot taken from a remote session.
// The wire protocol has no "all attributes" call, so the adapter reads a
// fixed set that covers what conditions usually assert on.
var snapshotAttributes = []string{
	"id", "class", "name", "type", "value", "href", "src", "alt", "title",
	"style", "placeholder", "role", "disabled", "selected", "checked",
	"hidden", "readonly", "data-testid",
}

type remoteDriver struct {
	logger *cm.Logger
	wd     selenium.WebDriver
}

// NewRemote wraps an established selenium session. The adapter only
// delegates: finding elements and reading their state stay single wire
// calls, and every driver failure is folded into the package error
// taxonomy.
func NewRemote(wd selenium.WebDriver) Driver {
	return &remoteDriver{
		logger: cm.NewLogger("RemoteDriver"),
		wd:     wd,
	}
}

// Connect establishes a session against a running WebDriver server,
// retrying until the server accepts one.
func Connect(server string, browser string) optional.Optional[Driver] {
	logger := cm.NewLogger("RemoteDriver")
	return concurrent.WaitForSomething(func() optional.Optional[Driver] {
		wd, err := selenium.NewRemote(selenium.Capabilities{"browserName": browser}, server)
		if err != nil {
			logger.Warningf("Could not connect to %s: %s", server, err)
			return optional.Nothing[Driver]{}
		}
		return optional.Of(NewRemote(wd))
	})
}

func (r *remoteDriver) Find(sel string) (*Snapshot, error) {
	element, err := r.wd.FindElement(selenium.ByCSSSelector, sel)
	if err != nil {
		return nil, mapSeleniumError(err)
	}
	return r.snapshot(element)
}

func (r *remoteDriver) FindAll(sel string) ([]*Snapshot, error) {
	elements, err := r.wd.FindElements(selenium.ByCSSSelector, sel)
	if err != nil {
		return nil, mapSeleniumError(err)
	}
	result := []*Snapshot{}
	for _, element := range elements {
		snap, err := r.snapshot(element)
		if err != nil {
			return nil, err
		}
		result = append(result, snap)
	}
	return result, nil
}

func (r *remoteDriver) snapshot(element selenium.WebElement) (*Snapshot, error) {
	tag, err := element.TagName()
	if err != nil {
		return nil, mapSeleniumError(err)
	}
	text, err := element.Text()
	if err != nil {
		return nil, mapSeleniumError(err)
	}
	displayed, err := element.IsDisplayed()
	if err != nil {
		return nil, mapSeleniumError(err)
	}
	enabled, err := element.IsEnabled()
	if err != nil {
		return nil, mapSeleniumError(err)
	}
	selected, err := element.IsSelected()
	if err != nil {
		return nil, mapSeleniumError(err)
	}

	attrs := map[string]string{}
	for _, name := range snapshotAttributes {
		// A missing attribute comes back as an error; that only means
		// "absent", not a failed resolution.
		if value, err := element.GetAttribute(name); err == nil {
			attrs[name] = value
		}
	}
	return &Snapshot{
		Tag:       tag,
		Text:      text,
		Displayed: displayed,
		Enabled:   enabled,
		Selected:  selected,
		Attrs:     attrs,
	}, nil
}

// mapSeleniumError folds W3C error codes (and the legacy textual variants)
// into the package taxonomy.
func mapSeleniumError(err error) error {
	code := ""
	var serr *selenium.Error
	if errors.As(err, &serr) {
		code = serr.Err
	} else {
		code = strings.ToLower(err.Error())
	}

	wrap := func(sentinel error) error {
		return fmt.Errorf("%w: %s", sentinel, err)
	}
	switch {
	case strings.Contains(code, "no such element"):
		return wrap(ErrNoSuchElement)
	case strings.Contains(code, "stale element reference"):
		return wrap(ErrStaleElement)
	case strings.Contains(code, "element not visible"),
		strings.Contains(code, "element not interactable"):
		return wrap(ErrNotVisible)
	case strings.Contains(code, "invalid session id"),
		strings.Contains(code, "no such window"),
		strings.Contains(code, "session not created"),
		strings.Contains(code, "connection refused"):
		return wrap(ErrSessionClosed)
	case strings.Contains(code, "invalid selector"):
		return wrap(ErrInvalidSelector)
	case strings.Contains(code, "unknown command"),
		strings.Contains(code, "unsupported operation"):
		return wrap(ErrUnsupportedOperation)
	}
	return err
}
