package strategy

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"AreaHelper-App/internal/domain/helper"
	"AreaHelper-App/internal/domain/model"
)

// CircleStrategy draws a circle from a clicked center point and a
// numeric radius entered in the session's unit system. A malformed
// radius is a recoverable validation failure: the strategy stays armed
// with its center so the radius can be retried.
type CircleStrategy struct {
	steps  int
	armed  bool
	center *orb.Point
}

// NewCircleStrategy creates the circle mode strategy with the given
// segment count.
func NewCircleStrategy(steps int) *CircleStrategy {
	return &CircleStrategy{steps: steps}
}

func (s *CircleStrategy) Mode() model.Mode {
	return model.ModeCircle
}

// Arm waits for a center click.
func (s *CircleStrategy) Arm(c Canvas) {
	s.armed = true
	s.center = nil
	c.SetCursor("crosshair")
}

// Armed reports whether the strategy is waiting for a center or radius.
func (s *CircleStrategy) Armed() bool {
	return s.armed
}

// AwaitingRadius reports whether a center has been recorded and a
// radius entry is expected next.
func (s *CircleStrategy) AwaitingRadius() bool {
	return s.armed && s.center != nil
}

// HandleClick records the circle center. Returns true when the click
// was consumed and a radius prompt should follow.
func (s *CircleStrategy) HandleClick(c Canvas, p orb.Point) bool {
	if !s.armed || s.center != nil {
		return false
	}
	center := p
	s.center = &center
	c.SetCursor("")
	return true
}

// CommitRadius validates the entered radius, converts it to miles for
// the circle generator and commits the shape. On validation failure the
// center is kept so the entry can be retried.
func (s *CircleStrategy) CommitRadius(c Canvas, radius float64, units model.Units) (*model.Shape, error) {
	if !s.AwaitingRadius() {
		return nil, fmt.Errorf("no circle center recorded")
	}
	if radius <= 0 {
		return nil, &RadiusValidationError{Radius: radius}
	}

	ring, err := helper.CirclePolygon(*s.center, helper.RadiusToMiles(radius, units), s.steps)
	if err != nil {
		return nil, fmt.Errorf("circle generation failed: %w", err)
	}
	shape, err := model.NewShape(uuid.New().String(), model.ShapeKindCircle, ring)
	if err != nil {
		return nil, err
	}
	shape.ID = c.AddFeature(shape.Feature())

	s.armed = false
	s.center = nil
	return shape, nil
}

// Cancel disarms and discards any recorded center.
func (s *CircleStrategy) Cancel(c Canvas) {
	s.armed = false
	s.center = nil
	c.SetCursor("")
}

// RadiusValidationError marks a non-positive radius entry. It is a
// user-facing, recoverable condition, not a fatal error.
type RadiusValidationError struct {
	Radius float64
}

func (e *RadiusValidationError) Error() string {
	return fmt.Sprintf("radius must be a positive number, got %v", e.Radius)
}
