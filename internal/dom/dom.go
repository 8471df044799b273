// Package dom defines the minimal document capability the annotator needs.
// Implementations wrap a concrete tree (see htmldoc) or a fake used in tests.
package dom

// Document is a mutable page.
type Document interface {
	// ElementsByClass returns every element whose class list contains
	// class, in document order. The slice is a snapshot: mutations made
	// after the call do not change it.
	ElementsByClass(class string) []Element
	// CreateElement returns a new detached element with the given tag.
	CreateElement(tag string) Element
}

// Element is a single node of a Document.
type Element interface {
	// Parent returns the parent element, or nil when the element is detached
	// or is the document root.
	Parent() Element
	// QueryClass returns the first descendant carrying class, or nil.
	QueryClass(class string) Element
	// InsertBefore inserts child as the previous sibling of ref, which must
	// be a child of the receiver.
	InsertBefore(child, ref Element) error
	// AppendChild adds child as the last child of the receiver.
	AppendChild(child Element) error

	SetAttribute(key, value string)
	Attribute(key string) (string, bool)
	AddClass(class string)
	HasClass(class string) bool
	// TextContent returns the concatenated text of all descendants.
	TextContent() string
	// VisibleText is TextContent without the descendants a reader never
	// sees, such as mdBook's collapsed "boring" lines.
	VisibleText() string
}
