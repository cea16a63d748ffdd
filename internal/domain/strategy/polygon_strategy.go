package strategy

import (
	"AreaHelper-App/internal/domain/model"
)

// PolygonStrategy delegates vertex-by-vertex construction and
// double-click completion entirely to the overlay's native
// polygon-drawing mode; its only job is switching the draw store in
// and out of that mode.
type PolygonStrategy struct{}

// NewPolygonStrategy creates the polygon mode strategy.
func NewPolygonStrategy() *PolygonStrategy {
	return &PolygonStrategy{}
}

func (s *PolygonStrategy) Mode() model.Mode {
	return model.ModePolygon
}

// Activate switches the draw store into native polygon drawing.
func (s *PolygonStrategy) Activate(c Canvas) {
	c.ChangeMode(model.DrawModePolygon)
}

// Cancel returns the draw store to selection.
func (s *PolygonStrategy) Cancel(c Canvas) {
	c.ChangeMode(model.DrawModeSelect)
}
