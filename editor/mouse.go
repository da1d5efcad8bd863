package editor

import (
	"github.com/dshills/quill/display"
	"github.com/dshills/quill/event"
	"github.com/dshills/quill/mode"
)

// OnMouseMove reports pointer movement to the editor.
func (e *Editor) OnMouseMove(pos display.Vec2) bool {
	e.mousePos = pos
	msg := event.NewMouseMessage(event.KindMouseMove, pos, event.ButtonUnknown, 0, 1)
	return e.dispatchMouse(msg)
}

// OnMouseDown reports a button press.
func (e *Editor) OnMouseDown(pos display.Vec2, button event.MouseButton, mods event.Modifier, clicks int) bool {
	e.mousePos = pos
	msg := event.NewMouseMessage(event.KindMouseDown, pos, button, mods, clicks)
	return e.dispatchMouse(msg)
}

// OnMouseUp reports a button release.
func (e *Editor) OnMouseUp(pos display.Vec2, button event.MouseButton, mods event.Modifier) bool {
	e.mousePos = pos
	msg := event.NewMouseMessage(event.KindMouseUp, pos, button, mods, 1)
	return e.dispatchMouse(msg)
}

// OnMouseWheel reports scroll wheel movement.
func (e *Editor) OnMouseWheel(pos display.Vec2, delta float64) bool {
	e.mousePos = pos
	msg := event.NewMouseMessage(event.KindMouseScroll, pos, event.ButtonUnknown, 0, 1)
	msg.Value = delta
	return e.dispatchMouse(msg)
}

// MousePos returns the last reported pointer position.
func (e *Editor) MousePos() display.Vec2 { return e.mousePos }

// DispatchMouseEvent routes a pointer message. With a capture holder, only
// the holder sees the event; otherwise the active mouse-aware mode gets the
// first look, then registered mouse routers in order until one handles it.
func (e *Editor) DispatchMouseEvent(msg *event.Message) bool {
	return e.dispatchMouse(msg)
}

func (e *Editor) dispatchMouse(msg *event.Message) bool {
	e.drain()

	if e.capture != nil {
		e.notifyCapture(msg)
		return msg.Handled
	}

	if mm, ok := e.activeMode().(mode.MouseMode); ok && e.ActiveWindow() != nil {
		if e.handleModeMouse(mm, msg) {
			msg.Handled = true
			e.RequestRefresh()
			return true
		}
	}

	handled := e.bus.DispatchMouse(msg)
	if handled {
		e.RequestRefresh()
	}
	return handled
}

// notifyCapture delivers a pointer message to the capture holder. Holder
// panics are contained; the event degrades to a no-op.
func (e *Editor) notifyCapture(msg *event.Message) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("capture holder panic on %s: %v", msg.Kind, r)
		}
	}()
	e.capture.Notify(msg)
}

// handleModeMouse routes a pointer message through a mouse-aware mode. Mode
// panics are contained; the event degrades to an unhandled no-op.
func (e *Editor) handleModeMouse(mm mode.MouseMode, msg *event.Message) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("mode %s panic on mouse: %v", mm.Name(), r)
			handled = false
		}
	}()
	return mm.HandleMouse(e.modeContext(), msg)
}

// CaptureMouse acquires or releases exclusive pointer routing for a
// component. Acquisition fails while another component holds the capture;
// release by a non-holder is ignored. The current holder (nil when free) is
// returned.
func (e *Editor) CaptureMouse(c event.Component, capture bool) event.Component {
	if capture {
		if e.capture == nil || e.capture == c {
			e.capture = c
		}
	} else if e.capture == c {
		e.capture = nil
	}
	return e.capture
}

// MouseCapture returns the component holding pointer capture, or nil.
func (e *Editor) MouseCapture() event.Component { return e.capture }

// IsMouseCaptured reports whether c currently holds pointer capture.
func (e *Editor) IsMouseCaptured(c event.Component) bool {
	return c != nil && e.capture == c
}
