package conditions

import (
	"fmt"
	"strings"

	"fluentwd/webdriver"
)

// texts re-reads the full collection snapshot: comparisons never diff
// against a previous iteration, so elements inserted or removed between
// polls cannot shift indexes under a comparison.
func texts(items []*webdriver.Snapshot) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = strings.TrimSpace(item.Text)
	}
	return result
}

func SizeEquals(expected int) CollectionCondition {
	return New(fmt.Sprintf("have size %d", expected), func(items []*webdriver.Snapshot) Check {
		if len(items) != expected {
			return mismatch("size was %d", len(items))
		}
		return ok()
	})
}

func SizeAtLeast(expected int) CollectionCondition {
	return New(fmt.Sprintf("have size at least %d", expected), func(items []*webdriver.Snapshot) Check {
		if len(items) < expected {
			return mismatch("size was %d", len(items))
		}
		return ok()
	})
}

func SizeLessThan(expected int) CollectionCondition {
	return New(fmt.Sprintf("have size less than %d", expected), func(items []*webdriver.Snapshot) Check {
		if len(items) >= expected {
			return mismatch("size was %d", len(items))
		}
		return ok()
	})
}

func Empty() CollectionCondition {
	return New("be empty", func(items []*webdriver.Snapshot) Check {
		if len(items) != 0 {
			return mismatch("size was %d", len(items))
		}
		return ok()
	})
}

// ExactTexts matches element-wise: same size, same texts, same order.
func ExactTexts(expected ...string) CollectionCondition {
	return New(fmt.Sprintf("have exact texts %q", expected), func(items []*webdriver.Snapshot) Check {
		actual := texts(items)
		if len(actual) != len(expected) {
			return mismatch("texts were %q", actual)
		}
		for i := range expected {
			if actual[i] != expected[i] {
				return mismatch("texts were %q", actual)
			}
		}
		return ok()
	})
}

// ContainTexts matches when the given texts appear in the collection in
// the given order, not necessarily adjacent.
func ContainTexts(expected ...string) CollectionCondition {
	return New(fmt.Sprintf("contain texts %q", expected), func(items []*webdriver.Snapshot) Check {
		actual := texts(items)
		next := 0
		for _, text := range actual {
			if next < len(expected) && text == expected[next] {
				next++
			}
		}
		if next != len(expected) {
			return mismatch("texts were %q", actual)
		}
		return ok()
	})
}
