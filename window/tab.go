package window

import "github.com/dshills/quill/buffer"

// Color is a packed 0xRRGGBBAA tab accent color.
type Color uint32

// TabWindow is an ordered collection of windows forming one split layout.
// Exactly one window is active within the tab.
type TabWindow struct {
	name    string
	color   Color
	windows []*Window
	active  *Window
}

// NewTabWindow creates an empty tab window.
func NewTabWindow() *TabWindow {
	return &TabWindow{}
}

// Name returns the tab's display name.
func (t *TabWindow) Name() string { return t.name }

// SetName sets the tab's display name.
func (t *TabWindow) SetName(name string) { t.name = name }

// Color returns the tab's accent color.
func (t *TabWindow) Color() Color { return t.color }

// SetColor sets the tab's accent color.
func (t *TabWindow) SetColor(c Color) { t.color = c }

// AddWindow creates a window viewing the given buffer, appends it to the
// layout and makes it active.
func (t *TabWindow) AddWindow(h buffer.Handle) *Window {
	w := newWindow(h)
	w.parent = t
	t.windows = append(t.windows, w)
	t.active = w
	return w
}

// RemoveWindow detaches a window from the tab. If it was active, the last
// remaining window becomes active. Returns false if the window is not a
// member of this tab.
func (t *TabWindow) RemoveWindow(w *Window) bool {
	for i, win := range t.windows {
		if win != w {
			continue
		}
		t.windows = append(t.windows[:i], t.windows[i+1:]...)
		w.parent = nil
		if t.active == w {
			if len(t.windows) > 0 {
				t.active = t.windows[len(t.windows)-1]
			} else {
				t.active = nil
			}
		}
		return true
	}
	return false
}

// Windows returns the tab's windows in layout order. The returned slice is
// a copy.
func (t *TabWindow) Windows() []*Window {
	out := make([]*Window, len(t.windows))
	copy(out, t.windows)
	return out
}

// Len returns the number of windows in the tab.
func (t *TabWindow) Len() int { return len(t.windows) }

// ActiveWindow returns the tab's active window, or nil for an empty tab.
func (t *TabWindow) ActiveWindow() *Window { return t.active }

// SetActiveWindow makes w the tab's active window. Windows belonging to
// other tabs are rejected.
func (t *TabWindow) SetActiveWindow(w *Window) bool {
	for _, win := range t.windows {
		if win == w {
			t.active = w
			return true
		}
	}
	return false
}

// FindWindow returns the first window viewing the given buffer, or nil.
func (t *TabWindow) FindWindow(h buffer.Handle) *Window {
	for _, win := range t.windows {
		if win.Buffer() == h {
			return win
		}
	}
	return nil
}

// Contains reports whether w belongs to this tab.
func (t *TabWindow) Contains(w *Window) bool {
	for _, win := range t.windows {
		if win == w {
			return true
		}
	}
	return false
}
