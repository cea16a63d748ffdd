package strategy

import (
	"math"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"AreaHelper-App/internal/domain/helper"
	"AreaHelper-App/internal/domain/model"
)

// FreehandStrategy converts a continuous press-drag-release gesture
// into a smooth closed polygon. Samples are filtered with a
// zoom-adaptive threshold so path density stays visually consistent at
// any map scale, and the full accumulated path is pushed to the
// preview line source synchronously after every accepted sample — the
// preview and the session buffer cannot diverge.
type FreehandStrategy struct {
	tuning  model.DrawingTuning
	session model.FreehandSession
}

// NewFreehandStrategy creates the freehand mode strategy.
func NewFreehandStrategy(tuning model.DrawingTuning) *FreehandStrategy {
	return &FreehandStrategy{tuning: tuning}
}

func (s *FreehandStrategy) Mode() model.Mode {
	return model.ModeFreehand
}

// Active reports whether a drag gesture is in progress.
func (s *FreehandStrategy) Active() bool {
	return s.session.Active
}

// Points returns the accumulated session buffer.
func (s *FreehandStrategy) Points() []orb.Point {
	return s.session.Points
}

// Begin starts a session at the press point, locks panning and sets up
// the dashed preview line.
func (s *FreehandStrategy) Begin(c Canvas, p orb.Point) {
	s.session.Active = true
	s.session.Points = []orb.Point{p}
	c.DisablePan()

	if !c.HasSource(model.FreehandPreviewID) {
		c.AddSource(model.FreehandPreviewID, geojson.NewFeatureCollection())
		c.AddLayer(model.FreehandPreviewID, model.FreehandPreviewID, "line")
	}
}

// Sample offers a move event to the session. The point is appended
// only if it moved past the zoom-adaptive threshold
// base * 2^(referenceZoom - zoom); this is a deliberate noise filter
// against over-sampling at high zoom and under-sampling at low zoom.
func (s *FreehandStrategy) Sample(c Canvas, p orb.Point) bool {
	if !s.session.Active {
		return false
	}
	last, ok := s.session.Last()
	if !ok {
		return false
	}

	threshold := s.tuning.SampleThresholdBase * math.Pow(2, s.tuning.ReferenceZoom-c.Zoom())
	if math.Abs(p[0]-last[0]) <= threshold && math.Abs(p[1]-last[1]) <= threshold {
		return false
	}

	s.session.Points = append(s.session.Points, p)
	c.SetSourceData(model.FreehandPreviewID, s.previewCollection())
	return true
}

// Finish completes the gesture. Fewer than 3 accumulated points is a
// silent discard. Otherwise the path is simplified, smoothed with a
// closed bezier spline, closed into a ring and committed; if either
// simplification or smoothing fails the raw sampled points are
// committed instead — some shape beats no shape.
func (s *FreehandStrategy) Finish(c Canvas) (*model.Shape, error) {
	if !s.session.Active {
		return nil, nil
	}
	raw := s.session.Points
	if len(raw) < 3 {
		s.teardown(c)
		return nil, nil
	}

	coords := raw
	if simplified, err := helper.SimplifyPath(raw, s.tuning.SimplifyTolerance); err == nil && len(simplified) >= 3 {
		if smoothed, err := helper.BezierSpline(simplified, s.tuning.SplineResolution, s.tuning.SplineSharpness); err == nil {
			coords = smoothed
		}
	}

	ring := helper.CloseRing(coords)
	shape, err := model.NewShape(uuid.New().String(), model.ShapeKindFreehand, ring)
	if err != nil {
		// Degenerate smoothing result; commit the raw samples.
		shape, err = model.NewShape(uuid.New().String(), model.ShapeKindFreehand, helper.CloseRing(raw))
		if err != nil {
			s.teardown(c)
			return nil, err
		}
	}
	shape.ID = c.AddFeature(shape.Feature())

	s.teardown(c)
	return shape, nil
}

// Cancel discards the in-flight gesture: buffer cleared, preview
// emptied, panning restored. Safe to call at any time.
func (s *FreehandStrategy) Cancel(c Canvas) {
	if !s.session.Active {
		return
	}
	s.session.Reset()
	if c.HasSource(model.FreehandPreviewID) {
		c.SetSourceData(model.FreehandPreviewID, geojson.NewFeatureCollection())
	}
	c.EnablePan()
	c.SetCursor("")
}

// Clear fully removes the preview overlay and session state, active
// gesture or not (clear-all path).
func (s *FreehandStrategy) Clear(c Canvas) {
	s.teardown(c)
}

// teardown removes the preview overlay entirely and restores view state.
func (s *FreehandStrategy) teardown(c Canvas) {
	if c.HasLayer(model.FreehandPreviewID) {
		c.RemoveLayer(model.FreehandPreviewID)
	}
	if c.HasSource(model.FreehandPreviewID) {
		c.RemoveSource(model.FreehandPreviewID)
	}
	s.session.Reset()
	c.EnablePan()
	c.SetCursor("")
}

func (s *FreehandStrategy) previewCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	line := make(orb.LineString, len(s.session.Points))
	copy(line, s.session.Points)
	fc.Append(geojson.NewFeature(line))
	return fc
}
