package memo

import "fmt"

// Controller is the single owner of the memo collection, the current
// selection and the editable content buffer. Views receive read-only
// projections and report intents through Select and EditContent; they never
// hold a mutable reference to this state.
//
// Controller is not safe for concurrent use. All calls are expected to come
// from one event loop.
type Controller struct {
	memos    []Memo
	selected int
	hasSel   bool
	content  string
	edited   bool // buffer changed by EditContent since the last Select
	revision uint64

	normalize func(string) string
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithNormalizer runs every text entering the content buffer through fn.
// Views that can only display a canonical form of the text (no tabs, no
// carriage returns) install their canonicalization here so the buffer and
// the display hold the same string.
func WithNormalizer(fn func(string) string) ControllerOption {
	return func(c *Controller) {
		if fn != nil {
			c.normalize = fn
		}
	}
}

// NewController creates a controller over a copy of memos with nothing
// selected and an empty content buffer.
func NewController(memos []Memo, opts ...ControllerOption) *Controller {
	c := &Controller{
		memos:     append([]Memo(nil), memos...),
		normalize: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select makes id the current selection and snapshots the matching memo's
// title into the content buffer. An unknown id is accepted and yields
// FallbackContent.
func (c *Controller) Select(id int) {
	c.selected = id
	c.hasSel = true
	c.edited = false

	if m, ok := c.find(id); ok {
		c.content = c.normalize(m.Title)
		return
	}
	c.content = c.normalize(FallbackContent)
}

// EditContent replaces the content buffer with text. Edits never write back
// into the collection.
func (c *Controller) EditContent(text string) {
	c.content = c.normalize(text)
	c.edited = true
}

// ApplyFetched places a fetched memo body in the buffer. The result is
// dropped when id is no longer selected, when the buffer has been edited
// since the selection, or when the body is empty, so a slow fetch never
// overwrites newer state.
func (c *Controller) ApplyFetched(id int, content string) bool {
	if !c.hasSel || c.selected != id || c.edited {
		return false
	}
	content = c.normalize(content)
	if content == "" {
		return false
	}
	c.content = content
	return true
}

// Add appends m to the collection.
func (c *Controller) Add(m Memo) error {
	if _, ok := c.find(m.ID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, m.ID)
	}
	c.memos = append(c.memos, m)
	c.revision++
	return nil
}

// Remove drops the memo with the given id. Removing the selected memo also
// clears the selection and the content buffer.
func (c *Controller) Remove(id int) bool {
	for i, m := range c.memos {
		if m.ID != id {
			continue
		}
		c.memos = append(c.memos[:i:i], c.memos[i+1:]...)
		c.revision++
		if c.hasSel && c.selected == id {
			c.clearSelection()
		}
		return true
	}
	return false
}

// Replace swaps in a freshly loaded collection. The selection survives only
// if its id is still present.
func (c *Controller) Replace(memos []Memo) {
	c.memos = append([]Memo(nil), memos...)
	c.revision++
	if c.hasSel {
		if _, ok := c.find(c.selected); !ok {
			c.clearSelection()
		}
	}
}

// Memos returns a copy of the collection in display order.
func (c *Controller) Memos() []Memo {
	return append([]Memo(nil), c.memos...)
}

// Selected returns the selected id, if any.
func (c *Controller) Selected() (int, bool) {
	return c.selected, c.hasSel
}

// SelectedMemo returns the selected memo when the selection resolves to one
// in the collection.
func (c *Controller) SelectedMemo() (Memo, bool) {
	if !c.hasSel {
		return Memo{}, false
	}
	return c.find(c.selected)
}

// Content returns the current content buffer.
func (c *Controller) Content() string {
	return c.content
}

// Revision changes every time the collection is mutated.
func (c *Controller) Revision() uint64 {
	return c.revision
}

// NextID returns the id the next locally created memo should get.
func (c *Controller) NextID() int {
	return NextID(c.memos)
}

func (c *Controller) find(id int) (Memo, bool) {
	for _, m := range c.memos {
		if m.ID == id {
			return m, true
		}
	}
	return Memo{}, false
}

func (c *Controller) clearSelection() {
	c.selected = 0
	c.hasSel = false
	c.content = ""
	c.edited = false
}
