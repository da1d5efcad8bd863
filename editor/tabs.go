package editor

import (
	"fmt"

	"github.com/dshills/quill/buffer"
	"github.com/dshills/quill/display"
	"github.com/dshills/quill/event"
	"github.com/dshills/quill/window"
)

// AddTabWindow creates a new tab, appends it to the tab order and makes it
// current.
func (e *Editor) AddTabWindow() *window.TabWindow {
	tab := window.NewTabWindow()
	tab.SetName(fmt.Sprintf("Tab %d", len(e.tabs)+1))
	e.tabs = append(e.tabs, tab)
	e.activeTab = tab
	e.layout.Invalidate()
	return tab
}

// RemoveTabWindow removes a tab. If the removed tab was current, the
// previous tab in order becomes current, else the next; removing the last
// tab leaves no current tab. Returns false when the tab is not registered.
func (e *Editor) RemoveTabWindow(tab *window.TabWindow) bool {
	idx := -1
	for i, t := range e.tabs {
		if t == tab {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	e.tabs = append(e.tabs[:idx], e.tabs[idx+1:]...)
	if e.activeTab == tab {
		switch {
		case len(e.tabs) == 0:
			e.activeTab = nil
		case idx > 0:
			e.activeTab = e.tabs[idx-1]
		default:
			e.activeTab = e.tabs[0]
		}
	}
	e.layout.Invalidate()
	return true
}

// SetCurrentTabWindow makes tab the current tab. Unregistered tabs are
// ignored.
func (e *Editor) SetCurrentTabWindow(tab *window.TabWindow) {
	for _, t := range e.tabs {
		if t == tab {
			e.activeTab = tab
			if w := tab.ActiveWindow(); w != nil {
				if b := e.byHandle[w.Buffer()]; b != nil {
					e.touchBuffer(b)
				}
			}
			e.layout.Invalidate()
			return
		}
	}
}

// NextTabWindow cycles the current tab forward, wrapping at the end.
func (e *Editor) NextTabWindow() {
	e.cycleTab(1)
}

// PreviousTabWindow cycles the current tab backward, wrapping at the start.
func (e *Editor) PreviousTabWindow() {
	e.cycleTab(-1)
}

func (e *Editor) cycleTab(dir int) {
	if len(e.tabs) == 0 {
		return
	}
	idx := 0
	for i, t := range e.tabs {
		if t == e.activeTab {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(e.tabs)) % len(e.tabs)
	e.SetCurrentTabWindow(e.tabs[idx])
}

// ActiveTabWindow returns the current tab, or nil when no tab exists.
func (e *Editor) ActiveTabWindow() *window.TabWindow { return e.activeTab }

// TabWindows returns the tabs in creation order.
func (e *Editor) TabWindows() []*window.TabWindow {
	out := make([]*window.TabWindow, len(e.tabs))
	copy(out, e.tabs)
	return out
}

// EnsureTab returns the current tab, creating one when none exists.
func (e *Editor) EnsureTab() *window.TabWindow {
	if e.activeTab == nil {
		return e.AddTabWindow()
	}
	return e.activeTab
}

// EnsureWindow returns a window in the current tab viewing b: the existing
// viewer when the tab already has one, else a new window. Tab and window are
// created as needed, the returned window becomes active and the buffer
// becomes the most recently used. Windows viewing other buffers are left
// alone.
func (e *Editor) EnsureWindow(b *buffer.Buffer) *window.Window {
	tab := e.EnsureTab()
	w := tab.FindWindow(b.Handle())
	if w == nil {
		w = tab.AddWindow(b.Handle())
	} else {
		tab.SetActiveWindow(w)
	}
	e.touchBuffer(b)
	e.layout.Invalidate()
	return w
}

// AddWindow opens a new window viewing b in the current tab (created if
// missing) and makes it the tab's active window.
func (e *Editor) AddWindow(b *buffer.Buffer) *window.Window {
	tab := e.EnsureTab()
	w := tab.AddWindow(b.Handle())
	e.touchBuffer(b)
	e.layout.Invalidate()
	return w
}

// ActiveWindow returns the active window of the current tab, or nil.
func (e *Editor) ActiveWindow() *window.Window {
	if e.activeTab == nil {
		return nil
	}
	return e.activeTab.ActiveWindow()
}

// SetActiveWindow makes w the active window of its tab and makes that tab
// current. The window's buffer becomes the most recently used.
func (e *Editor) SetActiveWindow(w *window.Window) {
	tab := w.Tab()
	if tab == nil {
		return
	}
	tab.SetActiveWindow(w)
	e.SetCurrentTabWindow(tab)
	if b := e.byHandle[w.Buffer()]; b != nil {
		e.touchBuffer(b)
	}
}

// ActiveBuffer returns the buffer viewed by the active window, or nil.
func (e *Editor) ActiveBuffer() *buffer.Buffer {
	w := e.ActiveWindow()
	if w == nil {
		return nil
	}
	return e.byHandle[w.Buffer()]
}

// InitWithText brings a fresh session to its initial valid state: one
// scratch buffer holding text, one tab, one window viewing it.
func (e *Editor) InitWithText(name, text string) *buffer.Buffer {
	b := e.GetEmptyBuffer(name, 0)
	b.SetText(text)
	e.EnsureWindow(b)
	e.scheduleSyntaxRebuild(b)
	return b
}

// InitWithFile brings a fresh session to its initial valid state around a
// file-backed buffer. A missing file yields an empty buffer bound to the
// path.
func (e *Editor) InitWithFile(path string) (*buffer.Buffer, error) {
	b, err := e.GetFileBuffer(path, 0, true)
	if err != nil {
		return nil, err
	}
	e.EnsureWindow(b)
	e.scheduleSyntaxRebuild(b)
	return b, nil
}

// SetDisplaySize records the host pixel region and invalidates the layout.
func (e *Editor) SetDisplaySize(size display.Vec2) {
	e.layout.SetSize(size)
}

// Layout resolves and returns the current screen partition.
func (e *Editor) Layout() *window.Layout {
	e.layout.Resolve(e.layoutOptions())
	return e.layout
}

func (e *Editor) layoutOptions() window.LayoutOptions {
	return window.LayoutOptions{
		ShowTabStrip:    len(e.tabs) > 1,
		CommandLines:    len(e.commandLines),
		AutoHideCommand: e.cfg.AutoHideCommandRegion,
		Scale:           e.display.PixelScale(),
	}
}

// UpdateTabs recomputes the screen partition and pushes each region to the
// display. Hosts call it once per frame before drawing buffer content.
func (e *Editor) UpdateTabs() {
	e.layout.Resolve(e.layoutOptions())

	e.display.DrawRegion(display.RegionEditor, e.layout.Editor)
	if !e.layout.TabStrip.Empty() {
		e.display.DrawRegion(display.RegionTabStrip, e.layout.TabStrip)
	}
	e.display.DrawRegion(display.RegionTabContent, e.layout.TabContent)
	if !e.layout.Command.Empty() {
		e.display.DrawRegion(display.RegionCommand, e.layout.Command)
	}
	if e.activeTab != nil {
		for range e.activeTab.Windows() {
			e.display.DrawRegion(display.RegionWindow, e.layout.TabContent)
		}
	}

	e.Broadcast(event.NewComponentMessage(event.KindComponentChanged, nil))
}
