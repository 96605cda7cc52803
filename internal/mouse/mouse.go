// Package mouse provides hit testing, click/drag tracking and the
// outside-click monitor used to dismiss the popover.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const doubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle in terminal cells. The right and bottom edges
// are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return r.W > 0 && r.H > 0 &&
		x >= r.X && x < r.X+r.W &&
		y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions rendered in the current frame.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region. Later regions win when they overlap earlier ones.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect is Add with the rectangle spelled out.
func (h *HitMap) AddRect(id string, x, y, w, ht int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: ht}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// ActionType classifies a mouse event after hit testing.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionDrag
	ActionDragEnd
	ActionHover
)

// Action is the result of HandleMouse.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	DragDX int
	DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks clicks and drags against a HitMap.
type Handler struct {
	HitMap *HitMap

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragRegion     string
	dragStartX     int
	dragStartY     int
	dragStartValue int
}

// NewHandler returns a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// HandleClick hit-tests a click and detects double clicks on the same region.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := time.Now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickTime) < doubleClickWindow
	if double {
		h.lastClickID = ""
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins a drag on region, remembering a caller-defined start value.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragRegion = region
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartValue = startValue
}

// EndDrag stops any drag in progress.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the ID of the region being dragged.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value recorded by StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// Clear resets the hit map, typically before each render.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse turns a raw tea.MouseMsg into an Action.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
		}
		res := h.HandleClick(msg.X, msg.Y)
		if res.Region == nil {
			return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
		}
		typ := ActionClick
		if res.IsDoubleClick {
			typ = ActionDoubleClick
		}
		return Action{Type: typ, Region: res.Region, X: msg.X, Y: msg.Y}

	case tea.MouseActionMotion:
		if h.dragging {
			dx, dy := h.DragDelta(msg.X, msg.Y)
			return Action{Type: ActionDrag, X: msg.X, Y: msg.Y, DragDX: dx, DragDY: dy}
		}
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y), X: msg.X, Y: msg.Y}

	case tea.MouseActionRelease:
		if h.dragging {
			h.EndDrag()
			return Action{Type: ActionDragEnd, X: msg.X, Y: msg.Y}
		}
	}
	return Action{Type: ActionNone, X: msg.X, Y: msg.Y}
}
