package model

import (
	"github.com/paulmach/orb"
)

// Mode is the active drawing interaction mode. Exactly one mode is
// active per session at any time.
type Mode string

const (
	ModeSelect    Mode = "select"
	ModePolygon   Mode = "polygon"
	ModeRectangle Mode = "rectangle"
	ModeFreehand  Mode = "freehand"
	ModeCircle    Mode = "circle"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSelect, ModePolygon, ModeRectangle, ModeFreehand, ModeCircle:
		return Mode(s), true
	}
	return "", false
}

// InputSource distinguishes pointer from touch delivery. Touch input
// additionally requires the client to suppress default scroll gestures,
// which the engine signals back via PreventDefault on the event result.
type InputSource string

const (
	InputMouse InputSource = "mouse"
	InputTouch InputSource = "touch"
)

// PointerEventType is the kind of a delivered input event.
type PointerEventType string

const (
	PointerPress       PointerEventType = "press"
	PointerMove        PointerEventType = "move"
	PointerRelease     PointerEventType = "release"
	PointerClick       PointerEventType = "click"
	PointerDoubleClick PointerEventType = "dblclick"
)

// PointerEvent is a single input sample in geographic coordinates,
// longitude first.
type PointerEvent struct {
	Type   PointerEventType
	Point  orb.Point
	Shift  bool
	Source InputSource
}

// FreehandSession is the transient point buffer for one drag gesture.
// It is created on press, appended on each qualifying move sample, and
// consumed on release or cancellation. Never persisted past a gesture.
type FreehandSession struct {
	Active bool
	Points []orb.Point
}

// Reset discards accumulated state.
func (s *FreehandSession) Reset() {
	s.Active = false
	s.Points = nil
}

// Last returns the most recently accepted sample.
func (s *FreehandSession) Last() (orb.Point, bool) {
	if len(s.Points) == 0 {
		return orb.Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}
