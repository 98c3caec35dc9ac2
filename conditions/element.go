package conditions

import (
	"fmt"
	"strings"

	col "github.com/lanseg/golang-commons/collections"

	"fluentwd/webdriver"
)

// Tags whose selected state is meaningful. Asking anything else for it is
// an unsupported operation, which the wait engine treats as fatal.
var selectableTags = col.NewSet([]string{"input", "option"})

// Exist matches any element the locator resolves: existence is proven by
// resolution itself.
func Exist() ElementCondition {
	return New("exist", func(*webdriver.Snapshot) Check {
		return ok()
	})
}

func Visible() ElementCondition {
	return New("be visible", func(s *webdriver.Snapshot) Check {
		if !s.Displayed {
			return mismatch("element is hidden")
		}
		return ok()
	})
}

func Hidden() ElementCondition {
	return New("be hidden", func(s *webdriver.Snapshot) Check {
		if s.Displayed {
			return mismatch("element is visible")
		}
		return ok()
	})
}

// Text matches when the element text contains the given substring.
func Text(expected string) ElementCondition {
	return New(fmt.Sprintf("have text %q", expected), func(s *webdriver.Snapshot) Check {
		if !strings.Contains(s.Text, expected) {
			return mismatch("text was %q", s.Text)
		}
		return ok()
	})
}

// ExactText matches the whole element text, ignoring surrounding space.
func ExactText(expected string) ElementCondition {
	return New(fmt.Sprintf("have exact text %q", expected), func(s *webdriver.Snapshot) Check {
		if strings.TrimSpace(s.Text) != expected {
			return mismatch("text was %q", s.Text)
		}
		return ok()
	})
}

func TagName(expected string) ElementCondition {
	return New(fmt.Sprintf("be a %q element", expected), func(s *webdriver.Snapshot) Check {
		if s.Tag != expected {
			return mismatch("tag was %q", s.Tag)
		}
		return ok()
	})
}

// Attribute matches when the attribute is present with exactly this value.
func Attribute(name string, expected string) ElementCondition {
	return New(fmt.Sprintf("have attribute %s=%q", name, expected), func(s *webdriver.Snapshot) Check {
		value, err := s.Attribute(name).Get()
		if err != nil {
			return mismatch("attribute %q is not defined", name)
		}
		if value != expected {
			return mismatch("attribute %q was %q", name, value)
		}
		return ok()
	})
}

// AttributeDefined matches when the attribute is present, whatever its
// value (an empty value still counts as present).
func AttributeDefined(name string) ElementCondition {
	return New(fmt.Sprintf("have attribute %q", name), func(s *webdriver.Snapshot) Check {
		if !s.Attribute(name).IsPresent() {
			return mismatch("attribute %q is not defined", name)
		}
		return ok()
	})
}

func CssClass(name string) ElementCondition {
	return New(fmt.Sprintf("have css class %q", name), func(s *webdriver.Snapshot) Check {
		if !col.NewSet(s.Classes()).Contains(name) {
			return mismatch("classes were %v", s.Classes())
		}
		return ok()
	})
}

// Value matches the value attribute, the usual assertion for inputs.
func Value(expected string) ElementCondition {
	return Attribute("value", expected)
}

func Enabled() ElementCondition {
	return New("be enabled", func(s *webdriver.Snapshot) Check {
		if !s.Enabled {
			return mismatch("element is disabled")
		}
		return ok()
	})
}

func Disabled() ElementCondition {
	return New("be disabled", func(s *webdriver.Snapshot) Check {
		if s.Enabled {
			return mismatch("element is enabled")
		}
		return ok()
	})
}

// Selected reports the checked/selected state. Only selectable elements
// have one; anything else fails the wait immediately instead of burning
// the timeout on a question that can never be answered.
func Selected() ElementCondition {
	return New("be selected", func(s *webdriver.Snapshot) Check {
		if !selectableTags.Contains(s.Tag) {
			return Check{Err: fmt.Errorf(
				"%w: %q elements have no selected state", webdriver.ErrUnsupportedOperation, s.Tag)}
		}
		if !s.Selected {
			return mismatch("element is not selected")
		}
		return ok()
	})
}

// Match wraps an arbitrary predicate as a condition.
func Match(name string, predicate func(s *webdriver.Snapshot) bool) ElementCondition {
	return New(name, func(s *webdriver.Snapshot) Check {
		if !predicate(s) {
			return mismatch("predicate %q did not match", name)
		}
		return ok()
	})
}
