// Package event implements the editor's process-wide message bus: a fixed
// enumeration of message kinds, an envelope type, and snapshot-based
// broadcast to registered components.
package event

import "github.com/dshills/quill/display"

// Kind discriminates message envelopes.
type Kind int

const (
	// KindHandleCommand asks listeners to execute a command line (Str).
	KindHandleCommand Kind = iota
	// KindRequestQuit asks the host to shut the editor down.
	KindRequestQuit
	// KindGetClipboard asks the clipboard bridge to fill Str from the host clipboard.
	KindGetClipboard
	// KindSetClipboard asks the clipboard bridge to push Str to the host clipboard.
	KindSetClipboard
	// KindMouseMove reports pointer movement at Pos.
	KindMouseMove
	// KindMouseDown reports a button press at Pos.
	KindMouseDown
	// KindMouseUp reports a button release at Pos.
	KindMouseUp
	// KindMouseScroll reports wheel movement; Value carries the scroll amount.
	KindMouseScroll
	// KindBuffer reports that a buffer's content or state changed.
	KindBuffer
	// KindComponentChanged reports that the Source component changed.
	KindComponentChanged
	// KindTick is the per-frame heartbeat.
	KindTick
	// KindConfigChanged reports that editor configuration was reloaded.
	KindConfigChanged
	// KindToolTip requests a tooltip with Str at Pos.
	KindToolTip
	// KindHyperlinkClick reports activation of a hyperlink (Str).
	KindHyperlinkClick

	// KindUser is the first identifier available for host-defined messages.
	KindUser Kind = 100
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindHandleCommand:
		return "handle-command"
	case KindRequestQuit:
		return "request-quit"
	case KindGetClipboard:
		return "get-clipboard"
	case KindSetClipboard:
		return "set-clipboard"
	case KindMouseMove:
		return "mouse-move"
	case KindMouseDown:
		return "mouse-down"
	case KindMouseUp:
		return "mouse-up"
	case KindMouseScroll:
		return "mouse-scroll"
	case KindBuffer:
		return "buffer"
	case KindComponentChanged:
		return "component-changed"
	case KindTick:
		return "tick"
	case KindConfigChanged:
		return "config-changed"
	case KindToolTip:
		return "tooltip"
	case KindHyperlinkClick:
		return "hyperlink-click"
	default:
		if k >= KindUser {
			return "user"
		}
		return "unknown"
	}
}

// MouseButton identifies which pointer button an event refers to.
type MouseButton int

const (
	ButtonUnknown MouseButton = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
	Button4
	Button5
)

// String returns a human-readable button name.
func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case Button4:
		return "button4"
	case Button5:
		return "button5"
	default:
		return "unknown"
	}
}

// Modifier is a bit set of keyboard modifiers attached to an input event.
type Modifier uint32

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// HasShift reports whether the shift bit is set.
func (m Modifier) HasShift() bool { return m&ModShift != 0 }

// HasCtrl reports whether the control bit is set.
func (m Modifier) HasCtrl() bool { return m&ModCtrl != 0 }

// HasAlt reports whether the alt bit is set.
func (m Modifier) HasAlt() bool { return m&ModAlt != 0 }

// HasMeta reports whether the meta/super bit is set.
func (m Modifier) HasMeta() bool { return m&ModMeta != 0 }

// Component receives broadcast messages from the bus.
type Component interface {
	Notify(msg *Message)
}

// MouseRouter is implemented by components that take part in the
// capture-aware mouse routing path, which is distinct from broadcast.
type MouseRouter interface {
	DispatchMouseEvent(msg *Message)
}

// Message is the envelope delivered to components. All fields except Handled
// are set at construction and treated as immutable by receivers; Handled is
// the single mutable slot a receiver may set.
type Message struct {
	Kind      Kind
	Str       string
	Pos       display.Vec2
	Button    MouseButton
	Modifiers Modifier
	Clicks    int
	Value     float64
	Source    Component

	// Handled records that some receiver acted on the message. Broadcast
	// still delivers to every listener; the flag is informational.
	Handled bool
}

// NewMessage creates a message carrying an optional string payload.
func NewMessage(kind Kind, str string) *Message {
	return &Message{Kind: kind, Str: str}
}

// NewMouseMessage creates a pointer event message.
func NewMouseMessage(kind Kind, pos display.Vec2, button MouseButton, mods Modifier, clicks int) *Message {
	if clicks < 1 {
		clicks = 1
	}
	return &Message{Kind: kind, Pos: pos, Button: button, Modifiers: mods, Clicks: clicks}
}

// NewComponentMessage creates a message that refers back to its source
// component.
func NewComponentMessage(kind Kind, source Component) *Message {
	return &Message{Kind: kind, Source: source}
}
