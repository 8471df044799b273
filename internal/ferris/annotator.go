// Package ferris attaches Ferris icons to code blocks marked as failing to
// compile, panicking, or misbehaving.
package ferris

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/ferrisdoc/internal/dom"
)

const (
	IconBasePath = "img/ferris/"
	IconExt      = ".svg"

	ContainerClass = "ferris-container"
	ButtonsClass   = "buttons"
	IconClass      = "ferris"

	IntroLink  = "ch00-00-introduction.html#ferris"
	LinkTarget = "_blank"

	// SmallThreshold is the line count below which an icon is small.
	SmallThreshold = 4
)

// ErrDetached is returned when a matched element has no parent to host a
// container.
var ErrDetached = errors.New("ferris: code block has no parent element")

// Size selects the icon presentation class.
type Size string

const (
	SizeSmall Size = "small"
	SizeLarge Size = "large"
)

// Class returns the size-qualified presentation class, e.g. "ferris-small".
func (s Size) Class() string { return IconClass + "-" + string(s) }

// Stats counts annotated blocks per marker.
type Stats map[string]int

// Total returns the number of icons attached across all kinds.
func (s Stats) Total() int {
	n := 0
	for _, v := range s {
		n += v
	}
	return n
}

// Annotator attaches icons for a fixed list of kinds.
type Annotator struct {
	kinds []Kind
}

// NewAnnotator returns an Annotator using the labels for locale.
func NewAnnotator(locale string) *Annotator {
	return &Annotator{kinds: Kinds(locale)}
}

// Kinds returns a copy of the kinds this annotator attaches, in order.
func (a *Annotator) Kinds() []Kind {
	return append([]Kind(nil), a.kinds...)
}

// Initialize runs Attach for every kind in order. A failing kind does not
// prevent the following kinds from running; all failures are joined.
//
// Initialize does not mark processed blocks, so calling it twice on the
// same document attaches a second set of icons.
func (a *Annotator) Initialize(doc dom.Document) (Stats, error) {
	stats := make(Stats, len(a.kinds))
	var errs []error
	for _, k := range a.kinds {
		n, err := a.Attach(doc, k)
		stats[k.Marker] = n
		if err != nil {
			errs = append(errs, err)
		}
	}
	return stats, errors.Join(errs...)
}

// Attach adds an icon for kind to every element carrying its marker class
// and returns how many were annotated. The first failure stops the pass.
func (a *Annotator) Attach(doc dom.Document, kind Kind) (int, error) {
	annotated := 0
	for _, block := range doc.ElementsByClass(kind.Marker) {
		size := SizeFor(LineCount(block.VisibleText()))

		container, err := ResolveContainer(doc, block, size == SizeSmall)
		if err != nil {
			return annotated, fmt.Errorf("attach %s: %w", kind.Marker, err)
		}
		if err := container.AppendChild(CreateIcon(doc, kind, size)); err != nil {
			return annotated, fmt.Errorf("attach %s: append icon: %w", kind.Marker, err)
		}
		annotated++
	}
	return annotated, nil
}

// LineCount returns the number of visible lines in text after dropping a
// single trailing newline.
func LineCount(text string) int {
	text = strings.TrimSuffix(text, "\n")
	return strings.Count(text, "\n") + 1
}

// SizeFor maps a line count to an icon size.
func SizeFor(lines int) Size {
	if lines < SmallThreshold {
		return SizeSmall
	}
	return SizeLarge
}

// ResolveContainer returns the element that should host the icon for el.
// With preferButtons set, an existing buttons element under el's parent is
// reused. Otherwise a new container is inserted right before el.
func ResolveContainer(doc dom.Document, el dom.Element, preferButtons bool) (dom.Element, error) {
	parent := el.Parent()
	if parent == nil {
		return nil, ErrDetached
	}
	if preferButtons {
		if buttons := parent.QueryClass(ButtonsClass); buttons != nil {
			return buttons, nil
		}
	}

	div := doc.CreateElement("div")
	div.AddClass(ContainerClass)
	if err := parent.InsertBefore(div, el); err != nil {
		return nil, fmt.Errorf("insert container: %w", err)
	}
	return div, nil
}

// CreateIcon builds the link-wrapped image for kind. The caller inserts it.
func CreateIcon(doc dom.Document, kind Kind, size Size) dom.Element {
	a := doc.CreateElement("a")
	a.SetAttribute("href", IntroLink)
	a.SetAttribute("target", LinkTarget)

	img := doc.CreateElement("img")
	img.SetAttribute("src", kind.IconPath())
	img.SetAttribute("title", kind.Label)
	img.AddClass(IconClass)
	img.AddClass(size.Class())

	// A freshly created element always accepts a freshly created child.
	_ = a.AppendChild(img)
	return a
}

// Annotated reports whether doc already carries icons from a previous pass.
func Annotated(doc dom.Document) bool {
	return len(doc.ElementsByClass(ContainerClass)) > 0 || len(doc.ElementsByClass(IconClass)) > 0
}

// HasMarkers reports whether doc contains any element this package would
// annotate.
func HasMarkers(doc dom.Document) bool {
	for _, m := range markers {
		if len(doc.ElementsByClass(m)) > 0 {
			return true
		}
	}
	return false
}
