package webdriver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPage = `
<html>
  <body>
    <h1 id="title">Order   status</h1>
    <div class="panel main" style="display: none">Hidden panel</div>
    <ul id="items">
      <li class="item">First</li>
      <li class="item">Second</li>
      <li class="item special">Third</li>
    </ul>
    <input id="agree" type="checkbox" checked>
    <button id="submit" class="btn" disabled>Submit</button>
  </body>
</html>`

func newTestDriver(t *testing.T) *StaticDriver {
	t.Helper()
	driver, err := NewStaticDriver(testPage)
	require.NoError(t, err)
	return driver
}

func TestStaticDriverFind(t *testing.T) {
	driver := newTestDriver(t)

	for _, tc := range []struct {
		name     string
		selector string
		wantTag  string
		wantText string
	}{
		{name: "by id", selector: "#title", wantTag: "h1", wantText: "Order status"},
		{name: "by tag", selector: "h1", wantTag: "h1", wantText: "Order status"},
		{name: "by class", selector: ".panel", wantTag: "div", wantText: "Hidden panel"},
		{name: "by tag and class", selector: "li.special", wantTag: "li", wantText: "Third"},
		{name: "by tag and id", selector: "button#submit", wantTag: "button", wantText: "Submit"},
		{name: "first match wins", selector: "li", wantTag: "li", wantText: "First"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			snapshot, err := driver.Find(tc.selector)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTag, snapshot.Tag)
			assert.Equal(t, tc.wantText, snapshot.Text)
		})
	}
}

func TestStaticDriverFindErrors(t *testing.T) {
	driver := newTestDriver(t)

	t.Run("missing element", func(t *testing.T) {
		_, err := driver.Find("#nope")
		assert.ErrorIs(t, err, ErrNoSuchElement)
	})

	t.Run("empty selector", func(t *testing.T) {
		_, err := driver.Find("")
		assert.ErrorIs(t, err, ErrInvalidSelector)
	})

	t.Run("selector with two qualifiers", func(t *testing.T) {
		_, err := driver.Find("li.item.special")
		assert.ErrorIs(t, err, ErrInvalidSelector)
	})
}

func TestStaticDriverSnapshotState(t *testing.T) {
	driver := newTestDriver(t)

	t.Run("hidden by style", func(t *testing.T) {
		snapshot, err := driver.Find(".panel")
		require.NoError(t, err)
		assert.False(t, snapshot.Displayed)
	})

	t.Run("visible by default", func(t *testing.T) {
		snapshot, err := driver.Find("#title")
		require.NoError(t, err)
		assert.True(t, snapshot.Displayed)
	})

	t.Run("disabled button", func(t *testing.T) {
		snapshot, err := driver.Find("#submit")
		require.NoError(t, err)
		assert.False(t, snapshot.Enabled)
	})

	t.Run("checked input", func(t *testing.T) {
		snapshot, err := driver.Find("#agree")
		require.NoError(t, err)
		assert.True(t, snapshot.Selected)
		assert.True(t, snapshot.Enabled)
	})

	t.Run("attribute optionality", func(t *testing.T) {
		snapshot, err := driver.Find("#submit")
		require.NoError(t, err)
		assert.Equal(t, "btn", snapshot.Attribute("class").OrElse(""))
		assert.False(t, snapshot.Attribute("href").IsPresent())
		assert.Equal(t, []string{"btn"}, snapshot.Classes())
	})
}

func TestStaticDriverFindAll(t *testing.T) {
	driver := newTestDriver(t)

	t.Run("ordered matches", func(t *testing.T) {
		items, err := driver.FindAll("li.item")
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "First", items[0].Text)
		assert.Equal(t, "Second", items[1].Text)
		assert.Equal(t, "Third", items[2].Text)
	})

	t.Run("no matches is an empty slice, not an error", func(t *testing.T) {
		items, err := driver.FindAll(".missing")
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestStaticDriverSetContent(t *testing.T) {
	driver := newTestDriver(t)

	_, err := driver.Find("#fresh")
	require.ErrorIs(t, err, ErrNoSuchElement)

	require.NoError(t, driver.SetContent(`<div id="fresh">Hello</div>`))
	snapshot, err := driver.Find("#fresh")
	require.NoError(t, err)
	assert.Equal(t, "Hello", snapshot.Text)

	// The old document is gone.
	_, err = driver.Find("#title")
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestStaticDriverClose(t *testing.T) {
	driver := newTestDriver(t)
	driver.Close()

	_, err := driver.Find("#title")
	assert.ErrorIs(t, err, ErrSessionClosed)

	_, err = driver.FindAll("li")
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestStaticDriverNestedTraversal(t *testing.T) {
	driver, err := NewStaticDriver(`
		<div id="outer">
			<p>intro</p>
			<div class="inner">
				<span class="word">deeply</span>
				<span class="word">nested</span>
			</div>
			<p>outro</p>
		</div>`)
	require.NoError(t, err)

	// Matches are collected in document order, at any depth.
	words, err := driver.FindAll(".word")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "deeply", words[0].Text)
	assert.Equal(t, "nested", words[1].Text)

	// An element's text flattens the whole subtree.
	outer, err := driver.Find("#outer")
	require.NoError(t, err)
	assert.Equal(t, "intro deeply nested outro", outer.Text)
}

func TestSnapshotIsDetachedFromDocument(t *testing.T) {
	driver := newTestDriver(t)
	snapshot, err := driver.Find("#title")
	require.NoError(t, err)

	require.NoError(t, driver.SetContent(`<div id="other"></div>`))

	// Snapshots taken earlier keep their state.
	assert.Equal(t, "Order status", snapshot.Text)
	assert.Equal(t, "h1", snapshot.Tag)
}
