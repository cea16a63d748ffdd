package strategy

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"AreaHelper-App/internal/domain/helper"
	"AreaHelper-App/internal/domain/model"
)

// RectangleStrategy implements the two-click rectangle protocol: the
// first click records corner A, the second commits the axis-aligned
// bounding rectangle of both clicks as a closed 5-point ring. After a
// commit the strategy detaches (one rectangle per activation).
type RectangleStrategy struct {
	armed bool
	first *orb.Point
}

// NewRectangleStrategy creates the rectangle mode strategy.
func NewRectangleStrategy() *RectangleStrategy {
	return &RectangleStrategy{}
}

func (s *RectangleStrategy) Mode() model.Mode {
	return model.ModeRectangle
}

// Arm starts a fresh two-click sequence.
func (s *RectangleStrategy) Arm() {
	s.armed = true
	s.first = nil
}

// Armed reports whether the strategy is waiting for clicks.
func (s *RectangleStrategy) Armed() bool {
	return s.armed
}

// HandleClick consumes one corner click. It returns the committed
// shape after the second click, nil before that.
func (s *RectangleStrategy) HandleClick(c Canvas, p orb.Point) (*model.Shape, error) {
	if !s.armed {
		return nil, nil
	}
	if s.first == nil {
		first := p
		s.first = &first
		return nil, nil
	}

	ring := helper.BoundingBoxRing(*s.first, p)
	shape, err := model.NewShape(uuid.New().String(), model.ShapeKindRectangle, ring)
	if err != nil {
		return nil, err
	}
	shape.ID = c.AddFeature(shape.Feature())

	// Detach: one rectangle per activation, re-arm to draw another.
	s.armed = false
	s.first = nil
	return shape, nil
}

// Cancel discards the recorded corner and detaches the click handler.
func (s *RectangleStrategy) Cancel(c Canvas) {
	s.armed = false
	s.first = nil
}
