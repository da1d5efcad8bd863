// Package display defines the contract between the editing engine and the
// host-provided rendering backend. The engine computes logical geometry and
// hands region-level draw requests to a Display; it never touches pixels.
package display

// Vec2 is a 2D point or size in logical (pre-scale) coordinates.
type Vec2 struct {
	X float32
	Y float32
}

// Add returns the component-wise sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns the vector multiplied component-wise by o.
func (v Vec2) Scale(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Rect is an axis-aligned rectangle described by its min and max corners.
type Rect struct {
	Min Vec2
	Max Vec2
}

// NewRect creates a rectangle from an origin and a size.
func NewRect(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Size returns the rectangle dimensions as a vector.
func (r Rect) Size() Vec2 {
	return Vec2{X: r.Width(), Y: r.Height()}
}

// Contains reports whether the point lies inside the rectangle.
// The max edge is exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// RegionKind identifies which part of the editor chrome a draw call covers.
type RegionKind uint8

const (
	// RegionEditor is the full editor area.
	RegionEditor RegionKind = iota
	// RegionTabStrip is the strip of tab headers.
	RegionTabStrip
	// RegionTabContent is the area hosting the active tab's windows.
	RegionTabContent
	// RegionCommand is the command/status strip under the buffer.
	RegionCommand
	// RegionWindow is a single buffer view inside the tab content.
	RegionWindow
)

// String returns a human-readable region name.
func (k RegionKind) String() string {
	switch k {
	case RegionEditor:
		return "editor"
	case RegionTabStrip:
		return "tab-strip"
	case RegionTabContent:
		return "tab-content"
	case RegionCommand:
		return "command"
	case RegionWindow:
		return "window"
	default:
		return "unknown"
	}
}

// Display is implemented by the host rendering backend.
// PixelScale reports the DPI scale factor applied to logical geometry so the
// engine can produce DPI-aware layouts; DrawRegion receives the resolved
// rectangle for each chrome region on a render pass.
type Display interface {
	PixelScale() Vec2
	DrawRegion(kind RegionKind, rect Rect)
}

// Null is a Display that discards all draw calls. It is the default backend
// when the host does not supply one, and is used by headless tests.
type Null struct {
	// Scale is reported from PixelScale. A zero value means 1:1.
	Scale Vec2
}

// PixelScale returns the configured scale, defaulting to (1, 1).
func (n *Null) PixelScale() Vec2 {
	if n.Scale.X == 0 || n.Scale.Y == 0 {
		return Vec2{X: 1, Y: 1}
	}
	return n.Scale
}

// DrawRegion discards the draw request.
func (n *Null) DrawRegion(RegionKind, Rect) {}
