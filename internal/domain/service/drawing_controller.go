package service

import (
	"github.com/paulmach/orb"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/strategy"
)

// GestureResult is the outcome of one routed input event.
type GestureResult struct {
	// Committed is the shape the event completed, if any.
	Committed *model.Shape
	// AwaitingRadius is set after a circle-center click; the session
	// expects a radius entry next.
	AwaitingRadius bool
	// PreventDefault asks touch clients to suppress the platform's
	// default scroll gesture while a freehand drag is active.
	PreventDefault bool
	// Changed reports that the committed shape set was mutated and a
	// measurement recomputation is due.
	Changed bool
}

// DrawingController owns the active interaction mode and routes
// pointer/touch events to the matching strategy. Mode switches are
// synchronous and eagerly cancel every other strategy's in-flight
// gesture, so two modes can never commit shapes concurrently.
type DrawingController struct {
	view      MapView
	mode      model.Mode
	polygon   *strategy.PolygonStrategy
	rectangle *strategy.RectangleStrategy
	circle    *strategy.CircleStrategy
	freehand  *strategy.FreehandStrategy
}

// NewDrawingController creates a controller over the given view,
// starting in polygon mode like a fresh widget.
func NewDrawingController(view MapView, tuning model.DrawingTuning) *DrawingController {
	c := &DrawingController{
		view:      view,
		polygon:   strategy.NewPolygonStrategy(),
		rectangle: strategy.NewRectangleStrategy(),
		circle:    strategy.NewCircleStrategy(tuning.CircleSteps),
		freehand:  strategy.NewFreehandStrategy(tuning),
	}
	c.SetMode(model.ModePolygon)
	return c
}

// Mode returns the active mode.
func (c *DrawingController) Mode() model.Mode {
	return c.mode
}

// FreehandActive reports whether a freehand gesture is in progress.
func (c *DrawingController) FreehandActive() bool {
	return c.freehand.Active()
}

// FreehandPoints exposes the current session buffer (for preview
// consistency checks and diagnostics).
func (c *DrawingController) FreehandPoints() []orb.Point {
	return c.freehand.Points()
}

// SetMode switches the interaction mode, cancelling any in-flight
// gesture first.
func (c *DrawingController) SetMode(mode model.Mode) {
	c.cancelInFlight()

	c.mode = mode
	switch mode {
	case model.ModePolygon:
		c.polygon.Activate(c.view)
	case model.ModeRectangle:
		c.view.ChangeMode(model.DrawModeSelect)
		c.rectangle.Arm()
	case model.ModeCircle:
		c.view.ChangeMode(model.DrawModeSelect)
		c.circle.Arm(c.view)
	case model.ModeFreehand:
		c.view.ChangeMode(model.DrawModeSelect)
		c.view.SetCursor("crosshair")
	default:
		c.mode = model.ModeSelect
		c.view.ChangeMode(model.DrawModeSelect)
	}
}

// cancelInFlight eagerly tears down every strategy's gesture state.
// Cancellation means discarding accumulated state, never interrupting
// a computation already running.
func (c *DrawingController) cancelInFlight() {
	c.freehand.Cancel(c.view)
	c.rectangle.Cancel(c.view)
	c.circle.Cancel(c.view)
	if c.mode == model.ModePolygon {
		c.polygon.Cancel(c.view)
	}
}

// Click routes a single click to the active mode.
func (c *DrawingController) Click(p orb.Point) (*GestureResult, error) {
	switch c.mode {
	case model.ModePolygon:
		c.view.DrawClick(p)
		return &GestureResult{}, nil
	case model.ModeRectangle:
		shape, err := c.rectangle.HandleClick(c.view, p)
		if err != nil {
			return nil, err
		}
		return &GestureResult{Committed: shape, Changed: shape != nil}, nil
	case model.ModeCircle:
		awaiting := c.circle.HandleClick(c.view, p)
		return &GestureResult{AwaitingRadius: awaiting}, nil
	}
	return &GestureResult{}, nil
}

// DoubleClick completes a native polygon in polygon mode.
func (c *DrawingController) DoubleClick() (*GestureResult, error) {
	if c.mode != model.ModePolygon {
		return &GestureResult{}, nil
	}
	_, committed := c.view.DrawComplete()
	return &GestureResult{Changed: committed}, nil
}

// Press starts a freehand session when the mode is freehand or the
// shift modifier is held. Touch presses additionally request default
// gesture suppression.
func (c *DrawingController) Press(ev model.PointerEvent) *GestureResult {
	if c.mode != model.ModeFreehand && !ev.Shift {
		return &GestureResult{}
	}
	c.freehand.Begin(c.view, ev.Point)
	return &GestureResult{PreventDefault: ev.Source == model.InputTouch}
}

// Move offers a drag sample to the freehand session. Samples are
// processed strictly in delivery order; the preview is updated
// synchronously before the call returns.
func (c *DrawingController) Move(ev model.PointerEvent) *GestureResult {
	accepted := c.freehand.Sample(c.view, ev.Point)
	return &GestureResult{PreventDefault: accepted && ev.Source == model.InputTouch}
}

// Release completes the freehand gesture.
func (c *DrawingController) Release() (*GestureResult, error) {
	shape, err := c.freehand.Finish(c.view)
	if err != nil {
		return nil, err
	}
	return &GestureResult{Committed: shape, Changed: shape != nil}, nil
}

// CommitCircleRadius applies a radius entry to the armed circle. A
// validation failure leaves the circle armed for retry.
func (c *DrawingController) CommitCircleRadius(radius float64, units model.Units) (*GestureResult, error) {
	shape, err := c.circle.CommitRadius(c.view, radius, units)
	if err != nil {
		return nil, err
	}
	return &GestureResult{Committed: shape, Changed: true}, nil
}

// CircleAwaitingRadius reports whether a circle center is recorded and
// the session expects a radius.
func (c *DrawingController) CircleAwaitingRadius() bool {
	return c.circle.AwaitingRadius()
}

// ClearAll removes every committed shape, discards any in-flight
// gesture, restores panning and resets the mode to select.
func (c *DrawingController) ClearAll() {
	c.view.DeleteAllFeatures()
	c.freehand.Clear(c.view)
	c.rectangle.Cancel(c.view)
	c.circle.Cancel(c.view)
	c.mode = model.ModeSelect
	c.view.ChangeMode(model.DrawModeSelect)
}
