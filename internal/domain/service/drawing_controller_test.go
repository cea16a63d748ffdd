package service_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/service"
	"AreaHelper-App/internal/infrastructure/mapview"
)

func newTestView() *mapview.InMemoryMapView {
	return mapview.NewInMemoryMapView(model.DefaultCenter, 15, 1280, 720)
}

func newController(view *mapview.InMemoryMapView) *service.DrawingController {
	return service.NewDrawingController(view, model.DefaultDrawingTuning())
}

func TestDrawingControllerModes(t *testing.T) {
	t.Run("starts in polygon mode", func(t *testing.T) {
		view := newTestView()
		c := newController(view)
		assert.Equal(t, model.ModePolygon, c.Mode())
		assert.Equal(t, model.DrawModePolygon, view.DrawMode())
	})

	t.Run("switching away cancels a freehand gesture", func(t *testing.T) {
		view := newTestView()
		c := newController(view)
		c.SetMode(model.ModeFreehand)

		c.Press(model.PointerEvent{Type: model.PointerPress, Point: orb.Point{-98.58, 39.83}})
		require.True(t, c.FreehandActive())

		c.SetMode(model.ModeRectangle)
		assert.False(t, c.FreehandActive())
		assert.True(t, view.PanEnabled())
		assert.Empty(t, view.Features(), "cancelled gesture must not commit")
	})

	t.Run("switching away discards native polygon vertices", func(t *testing.T) {
		view := newTestView()
		c := newController(view)

		c.Click(orb.Point{0, 0})
		c.Click(orb.Point{0.001, 0})
		c.SetMode(model.ModeCircle)
		c.SetMode(model.ModePolygon)

		// The old vertices are gone; a double-click commits nothing.
		result, err := c.DoubleClick()
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Empty(t, view.Features())
	})
}

func TestDrawingControllerPolygon(t *testing.T) {
	view := newTestView()
	c := newController(view)

	c.Click(orb.Point{0, 0})
	c.Click(orb.Point{0.001, 0})
	c.Click(orb.Point{0.001, 0.001})

	result, err := c.DoubleClick()
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.Len(t, view.Features(), 1)

	shape, err := model.ShapeFromFeature(view.Features()[0])
	require.NoError(t, err)
	assert.Equal(t, model.ShapeKindPolygon, shape.Kind)
	assert.True(t, shape.Ring.Closed())
}

func TestDrawingControllerFreehand(t *testing.T) {
	t.Run("shift press starts freehand from any mode", func(t *testing.T) {
		view := newTestView()
		c := newController(view)
		require.Equal(t, model.ModePolygon, c.Mode())

		result := c.Press(model.PointerEvent{
			Type:  model.PointerPress,
			Point: orb.Point{-98.58, 39.83},
			Shift: true,
		})
		assert.True(t, c.FreehandActive())
		assert.False(t, result.PreventDefault, "mouse press needs no suppression")
	})

	t.Run("touch press and accepted moves request default suppression", func(t *testing.T) {
		view := newTestView()
		c := newController(view)
		c.SetMode(model.ModeFreehand)

		start := orb.Point{-98.58, 39.83}
		result := c.Press(model.PointerEvent{Type: model.PointerPress, Point: start, Source: model.InputTouch})
		assert.True(t, result.PreventDefault)

		moved := orb.Point{start[0] + 0.001, start[1]}
		result = c.Move(model.PointerEvent{Type: model.PointerMove, Point: moved, Source: model.InputTouch})
		assert.True(t, result.PreventDefault)

		// A rejected (sub-threshold) move does not suppress.
		result = c.Move(model.PointerEvent{Type: model.PointerMove, Point: moved, Source: model.InputTouch})
		assert.False(t, result.PreventDefault)
	})

	t.Run("press in other modes without shift is inert", func(t *testing.T) {
		view := newTestView()
		c := newController(view)
		c.SetMode(model.ModeRectangle)

		c.Press(model.PointerEvent{Type: model.PointerPress, Point: orb.Point{0, 0}})
		assert.False(t, c.FreehandActive())
		assert.True(t, view.PanEnabled())
	})
}

func TestDrawingControllerCircleFlow(t *testing.T) {
	view := newTestView()
	c := newController(view)
	c.SetMode(model.ModeCircle)

	result, err := c.Click(orb.Point{-98.5795, 39.8283})
	require.NoError(t, err)
	assert.True(t, result.AwaitingRadius)
	assert.True(t, c.CircleAwaitingRadius())

	_, err = c.CommitCircleRadius(-1, model.UnitsImperial)
	assert.Error(t, err)
	assert.True(t, c.CircleAwaitingRadius(), "failed validation keeps the circle armed")

	result, err = c.CommitCircleRadius(250, model.UnitsImperial)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.NotNil(t, result.Committed)
	assert.Equal(t, model.ShapeKindCircle, result.Committed.Kind)
	assert.Len(t, view.Features(), 1)
}

func TestDrawingControllerClearAll(t *testing.T) {
	view := newTestView()
	c := newController(view)

	c.Click(orb.Point{0, 0})
	c.Click(orb.Point{0.001, 0})
	c.Click(orb.Point{0.001, 0.001})
	_, err := c.DoubleClick()
	require.NoError(t, err)
	require.Len(t, view.Features(), 1)

	c.SetMode(model.ModeFreehand)
	c.Press(model.PointerEvent{Type: model.PointerPress, Point: orb.Point{-98.58, 39.83}})

	c.ClearAll()
	assert.Empty(t, view.Features())
	assert.Equal(t, model.ModeSelect, c.Mode())
	assert.False(t, c.FreehandActive())
	assert.True(t, view.PanEnabled())
	assert.Equal(t, model.DrawModeSelect, view.DrawMode())
}
