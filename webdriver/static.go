package webdriver

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lanseg/golang-commons/almosthtml"
	col "github.com/lanseg/golang-commons/collections"
	cm "github.com/lanseg/golang-commons/common"
)

// StaticDriver resolves selectors against a parsed HTML document, without
// any browser behind it. The document can be swapped at any time and every
// Find call reads the current one, which is how tests simulate a live page
// changing between poll iterations.
type StaticDriver struct {
	logger *cm.Logger

	mu     sync.RWMutex
	root   *almosthtml.Node
	closed bool
}

func NewStaticDriver(html string) (*StaticDriver, error) {
	root, err := almosthtml.ParseHTML(html)
	if err != nil {
		return nil, err
	}
	return &StaticDriver{
		logger: cm.NewLogger("StaticDriver"),
		root:   root,
	}, nil
}

// SetContent replaces the whole document. Snapshots handed out earlier are
// unaffected; the next resolution sees the new content.
func (d *StaticDriver) SetContent(html string) error {
	root, err := almosthtml.ParseHTML(html)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.root = root
	d.logger.Debugf("Document replaced, %d bytes", len(html))
	return nil
}

// Close makes every subsequent resolution fail with ErrSessionClosed.
func (d *StaticDriver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

func (d *StaticDriver) Find(sel string) (*Snapshot, error) {
	nodes, err := d.match(sel)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: no element matches %q", ErrNoSuchElement, sel)
	}
	return snapshotNode(nodes[0]), nil
}

func (d *StaticDriver) FindAll(sel string) ([]*Snapshot, error) {
	nodes, err := d.match(sel)
	if err != nil {
		return nil, err
	}
	result := []*Snapshot{}
	for _, n := range nodes {
		result = append(result, snapshotNode(n))
	}
	return result, nil
}

func (d *StaticDriver) match(sel string) ([]*almosthtml.Node, error) {
	parsed, err := parseSelector(sel)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, fmt.Errorf("%w: driver is closed", ErrSessionClosed)
	}

	result := []*almosthtml.Node{}
	col.IterateTree(d.root, col.DepthFirst, func(n *almosthtml.Node) []*almosthtml.Node {
		return n.Children
	}).ForEachRemaining(func(n *almosthtml.Node) bool {
		if parsed.matches(n) {
			result = append(result, n)
		}
		return false
	})
	return result, nil
}

// selector supports the subset "tag", "#id", ".class", "tag.class" and
// "tag#id" — enough to address elements in test documents.
type selector struct {
	tag   string
	id    string
	class string
}

func parseSelector(s string) (*selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	result := &selector{}
	rest := s
	if i := strings.IndexAny(s, "#."); i >= 0 {
		result.tag = s[:i]
		rest = s[i:]
	} else {
		result.tag = s
		rest = ""
	}
	switch {
	case rest == "":
	case strings.HasPrefix(rest, "#"):
		result.id = rest[1:]
	case strings.HasPrefix(rest, "."):
		result.class = rest[1:]
	}
	if (result.id != "" && strings.ContainsAny(result.id, "#.")) ||
		(result.class != "" && strings.ContainsAny(result.class, "#.")) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
	if result.tag == "" && result.id == "" && result.class == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, s)
	}
	return result, nil
}

func (s *selector) matches(n *almosthtml.Node) bool {
	if n.Name == "" || strings.HasPrefix(n.Name, "#") || strings.HasPrefix(n.Name, "!") {
		return false
	}
	if s.tag != "" && n.Name != s.tag {
		return false
	}
	if s.id != "" && n.Params["id"] != s.id {
		return false
	}
	if s.class != "" {
		classes := col.NewSet(strings.Fields(n.Params["class"]))
		if !classes.Contains(s.class) {
			return false
		}
	}
	return true
}

func snapshotNode(n *almosthtml.Node) *Snapshot {
	attrs := map[string]string{}
	for k, v := range n.Params {
		attrs[k] = v
	}
	return &Snapshot{
		Tag:       n.Name,
		Text:      nodeText(n),
		Displayed: isDisplayed(attrs),
		Enabled:   !hasParam(attrs, "disabled"),
		Selected:  hasParam(attrs, "selected") || hasParam(attrs, "checked"),
		Attrs:     attrs,
	}
}

func nodeText(root *almosthtml.Node) string {
	parts := []string{}
	col.IterateTree(root, col.DepthFirst, func(n *almosthtml.Node) []*almosthtml.Node {
		return n.Children
	}).ForEachRemaining(func(n *almosthtml.Node) bool {
		if n.Name == "#text" {
			if text := strings.Join(strings.Fields(n.Raw), " "); text != "" {
				parts = append(parts, text)
			}
		}
		return false
	})
	return strings.Join(parts, " ")
}

func isDisplayed(attrs map[string]string) bool {
	if hasParam(attrs, "hidden") || attrs["type"] == "hidden" {
		return false
	}
	style := strings.ReplaceAll(attrs["style"], " ", "")
	return !strings.Contains(style, "display:none") && !strings.Contains(style, "visibility:hidden")
}

func hasParam(attrs map[string]string, name string) bool {
	_, ok := attrs[name]
	return ok
}
