package conditions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentwd/webdriver"
)

func snapshot() *webdriver.Snapshot {
	return &webdriver.Snapshot{
		Tag:       "button",
		Text:      "Submit order",
		Displayed: true,
		Enabled:   true,
		Attrs: map[string]string{
			"id":    "submit",
			"class": "btn btn-primary",
			"value": "",
		},
	}
}

func TestElementConditions(t *testing.T) {
	for _, tc := range []struct {
		name         string
		cond         ElementCondition
		wantOk       bool
		wantMismatch string
	}{
		{name: "exist", cond: Exist(), wantOk: true},
		{name: "visible matches", cond: Visible(), wantOk: true},
		{name: "hidden does not match", cond: Hidden(), wantMismatch: "element is visible"},
		{name: "text substring", cond: Text("Submit"), wantOk: true},
		{name: "text missing", cond: Text("Cancel"), wantMismatch: `text was "Submit order"`},
		{name: "exact text", cond: ExactText("Submit order"), wantOk: true},
		{name: "exact text partial", cond: ExactText("Submit"), wantMismatch: `text was "Submit order"`},
		{name: "tag name", cond: TagName("button"), wantOk: true},
		{name: "tag name wrong", cond: TagName("a"), wantMismatch: `tag was "button"`},
		{name: "attribute", cond: Attribute("id", "submit"), wantOk: true},
		{name: "attribute wrong value", cond: Attribute("id", "cancel"), wantMismatch: `attribute "id" was "submit"`},
		{name: "attribute undefined", cond: Attribute("href", "x"), wantMismatch: `attribute "href" is not defined`},
		{name: "attribute defined empty", cond: AttributeDefined("value"), wantOk: true},
		{name: "attribute defined missing", cond: AttributeDefined("href"), wantMismatch: `attribute "href" is not defined`},
		{name: "css class", cond: CssClass("btn-primary"), wantOk: true},
		{name: "css class missing", cond: CssClass("disabled"), wantMismatch: "classes were [btn btn-primary]"},
		{name: "value empty", cond: Value(""), wantOk: true},
		{name: "enabled", cond: Enabled(), wantOk: true},
		{name: "disabled does not match", cond: Disabled(), wantMismatch: "element is enabled"},
		{name: "custom predicate", cond: Match("start with Submit", func(s *webdriver.Snapshot) bool {
			return len(s.Text) > 0 && s.Text[0] == 'S'
		}), wantOk: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.cond.Check(snapshot())
			require.NoError(t, result.Err)
			assert.Equal(t, tc.wantOk, result.Ok)
			assert.Equal(t, tc.wantMismatch, result.Mismatch)
		})
	}
}

func TestCheckIsIdempotent(t *testing.T) {
	// Snapshots are immutable, so re-checking gives the same answer.
	s := snapshot()
	cond := And(Visible(), Text("order"), CssClass("btn"))
	first := cond.Check(s)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, cond.Check(s))
	}
}

func TestSelectedOnSelectableElements(t *testing.T) {
	checkbox := &webdriver.Snapshot{Tag: "input", Selected: true}
	result := Selected().Check(checkbox)
	require.NoError(t, result.Err)
	assert.True(t, result.Ok)

	unchecked := &webdriver.Snapshot{Tag: "option"}
	result = Selected().Check(unchecked)
	require.NoError(t, result.Err)
	assert.False(t, result.Ok)
	assert.Equal(t, "element is not selected", result.Mismatch)
}

func TestSelectedOnNonSelectableElementIsFatal(t *testing.T) {
	result := Selected().Check(snapshot())
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, webdriver.ErrUnsupportedOperation)
}

func TestNot(t *testing.T) {
	t.Run("inverts a non-matching condition", func(t *testing.T) {
		result := Not(Hidden()).Check(snapshot())
		require.NoError(t, result.Err)
		assert.True(t, result.Ok)
	})

	t.Run("inverts a matching condition", func(t *testing.T) {
		cond := Not(Visible())
		assert.Equal(t, "not be visible", cond.Name())

		result := cond.Check(snapshot())
		require.NoError(t, result.Err)
		assert.False(t, result.Ok)
		assert.Equal(t, `condition "be visible" still holds`, result.Mismatch)
	})

	t.Run("passes evaluation errors through", func(t *testing.T) {
		result := Not(Selected()).Check(snapshot())
		assert.ErrorIs(t, result.Err, webdriver.ErrUnsupportedOperation)
	})
}

func TestAnd(t *testing.T) {
	t.Run("matches when all match", func(t *testing.T) {
		cond := And(Visible(), Text("Submit"), Enabled())
		assert.Equal(t, `be visible and have text "Submit" and be enabled`, cond.Name())

		result := cond.Check(snapshot())
		require.NoError(t, result.Err)
		assert.True(t, result.Ok)
	})

	t.Run("lists failing conditions in declaration order", func(t *testing.T) {
		cond := And(Hidden(), Text("Submit"), Disabled())
		want := `be hidden: element is visible; be disabled: element is enabled`

		// The description is stable across evaluations.
		for i := 0; i < 3; i++ {
			result := cond.Check(snapshot())
			require.NoError(t, result.Err)
			assert.False(t, result.Ok)
			assert.Equal(t, want, result.Mismatch)
		}
	})

	t.Run("single condition passes through", func(t *testing.T) {
		cond := Visible()
		assert.Equal(t, cond, And(cond))
	})

	t.Run("evaluation error wins over mismatches", func(t *testing.T) {
		result := And(Hidden(), Selected()).Check(snapshot())
		assert.ErrorIs(t, result.Err, webdriver.ErrUnsupportedOperation)
	})
}
