package window

import "github.com/dshills/quill/display"

// Fixed chrome heights in logical units, scaled by the display's pixel scale
// when the layout is resolved.
const (
	tabStripHeight   = 18.0
	commandRowHeight = 14.0
)

// LayoutOptions are the configuration inputs the layout depends on.
type LayoutOptions struct {
	// ShowTabStrip reserves the tab header strip.
	ShowTabStrip bool

	// CommandLines is the number of command-text rows to reserve.
	CommandLines int

	// AutoHideCommand collapses the command strip when CommandLines is zero.
	AutoHideCommand bool

	// Scale is the display pixel scale applied to the fixed chrome heights.
	Scale display.Vec2
}

// Layout holds the resolved chrome regions. Regions are recomputed lazily:
// topology or size changes mark the layout dirty and the next Resolve call
// recomputes.
type Layout struct {
	dirty bool
	size  display.Vec2
	opts  LayoutOptions

	Editor     display.Rect
	TabStrip   display.Rect
	TabContent display.Rect
	Command    display.Rect
}

// NewLayout creates a layout that needs an initial Resolve.
func NewLayout() *Layout {
	return &Layout{dirty: true}
}

// Invalidate marks the layout dirty without recomputing.
func (l *Layout) Invalidate() { l.dirty = true }

// Dirty reports whether the next Resolve will recompute.
func (l *Layout) Dirty() bool { return l.dirty }

// SetSize records a new display size, invalidating if it changed.
func (l *Layout) SetSize(size display.Vec2) {
	if l.size != size {
		l.size = size
		l.dirty = true
	}
}

// Size returns the last recorded display size.
func (l *Layout) Size() display.Vec2 { return l.size }

// Resolve recomputes the regions if dirty and returns the layout.
func (l *Layout) Resolve(opts LayoutOptions) *Layout {
	if opts.Scale.X == 0 || opts.Scale.Y == 0 {
		opts.Scale = display.Vec2{X: 1, Y: 1}
	}
	if !l.dirty && opts == l.opts {
		return l
	}
	l.opts = opts

	l.Editor = display.NewRect(0, 0, l.size.X, l.size.Y)

	top := float32(0)
	if opts.ShowTabStrip {
		h := float32(tabStripHeight) * opts.Scale.Y
		l.TabStrip = display.NewRect(0, 0, l.size.X, h)
		top = h
	} else {
		l.TabStrip = display.Rect{}
	}

	cmdRows := opts.CommandLines
	if cmdRows == 0 && !opts.AutoHideCommand {
		cmdRows = 1
	}
	cmdHeight := float32(cmdRows) * commandRowHeight * opts.Scale.Y
	if cmdHeight > l.size.Y-top {
		cmdHeight = l.size.Y - top
	}

	bottom := l.size.Y - cmdHeight
	if cmdHeight > 0 {
		l.Command = display.NewRect(0, bottom, l.size.X, cmdHeight)
	} else {
		l.Command = display.Rect{}
	}

	l.TabContent = display.NewRect(0, top, l.size.X, bottom-top)
	l.dirty = false
	return l
}
