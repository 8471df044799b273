// Package htmldoc implements dom.Document on top of golang.org/x/net/html.
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ziadkadry99/ferrisdoc/internal/dom"
)

var errForeignElement = errors.New("htmldoc: element does not belong to this implementation")

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on error.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Root returns the underlying document node.
func (d *Document) Root() *html.Node { return d.root }

// ElementsByClass implements dom.Document.
func (d *Document) ElementsByClass(class string) []dom.Element {
	var out []dom.Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && hasClass(n, class) {
			out = append(out, &Element{node: n})
		}
		return false
	})
	return out
}

// CreateElement implements dom.Document.
func (d *Document) CreateElement(tag string) dom.Element {
	tag = strings.ToLower(tag)
	return &Element{node: &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}}
}

// Element wraps an element node.
type Element struct {
	node *html.Node
}

// Node returns the wrapped node.
func (e *Element) Node() *html.Node { return e.node }

// Tag returns the lower-case tag name.
func (e *Element) Tag() string { return e.node.Data }

func (e *Element) Parent() dom.Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return &Element{node: p}
}

func (e *Element) QueryClass(class string) dom.Element {
	var found *html.Node
	for c := e.node.FirstChild; c != nil && found == nil; c = c.NextSibling {
		walk(c, func(n *html.Node) bool {
			if n.Type == html.ElementNode && hasClass(n, class) {
				found = n
				return true
			}
			return false
		})
	}
	if found == nil {
		return nil
	}
	return &Element{node: found}
}

func (e *Element) InsertBefore(child, ref dom.Element) error {
	c, err := unwrap(child)
	if err != nil {
		return err
	}
	r, err := unwrap(ref)
	if err != nil {
		return err
	}
	if r.Parent != e.node {
		return fmt.Errorf("htmldoc: insert before <%s>: reference is not a child of <%s>", r.Data, e.node.Data)
	}
	detach(c)
	e.node.InsertBefore(c, r)
	return nil
}

func (e *Element) AppendChild(child dom.Element) error {
	c, err := unwrap(child)
	if err != nil {
		return err
	}
	detach(c)
	e.node.AppendChild(c)
	return nil
}

func (e *Element) SetAttribute(key, value string) {
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

func (e *Element) Attribute(key string) (string, bool) {
	return attr(e.node, key)
}

func (e *Element) AddClass(class string) {
	if hasClass(e.node, class) {
		return
	}
	current, _ := attr(e.node, "class")
	if strings.TrimSpace(current) == "" {
		e.SetAttribute("class", class)
		return
	}
	e.SetAttribute("class", strings.TrimSpace(current)+" "+class)
}

func (e *Element) HasClass(class string) bool {
	return hasClass(e.node, class)
}

func (e *Element) TextContent() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) bool {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		return false
	})
	return b.String()
}

// HiddenClass marks lines mdBook collapses out of a listing.
const HiddenClass = "boring"

func (e *Element) VisibleText() string {
	var b strings.Builder
	visibleText(&b, e.node)
	return b.String()
}

func visibleText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			if hidden(c) {
				continue
			}
			visibleText(b, c)
		}
	}
}

func hidden(n *html.Node) bool {
	if _, ok := attr(n, "hidden"); ok {
		return true
	}
	return hasClass(n, HiddenClass)
}

func unwrap(el dom.Element) (*html.Node, error) {
	e, ok := el.(*Element)
	if !ok || e == nil {
		return nil, errForeignElement
	}
	return e.node, nil
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// walk visits n and its descendants in document order until fn returns true.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if fn(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, fn) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
