package mapview

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaHelper-App/internal/domain/model"
)

func testView() *InMemoryMapView {
	return NewInMemoryMapView(model.DefaultCenter, model.DefaultZoom, 1280, 720)
}

func polyFeature() *geojson.Feature {
	return geojson.NewFeature(orb.Polygon{{{0, 0}, {0.001, 0}, {0.001, 0.001}, {0, 0}}})
}

func TestFeatureStore(t *testing.T) {
	t.Run("features keep insertion order", func(t *testing.T) {
		v := testView()
		id1 := v.AddFeature(polyFeature())
		id2 := v.AddFeature(polyFeature())
		id3 := v.AddFeature(polyFeature())

		features := v.Features()
		require.Len(t, features, 3)
		assert.Equal(t, id1, features[0].ID)
		assert.Equal(t, id2, features[1].ID)
		assert.Equal(t, id3, features[2].ID)
	})

	t.Run("missing id gets generated, explicit id kept", func(t *testing.T) {
		v := testView()
		f := polyFeature()
		f.ID = "my-shape"
		assert.Equal(t, "my-shape", v.AddFeature(f))

		generated := v.AddFeature(polyFeature())
		assert.NotEmpty(t, generated)
	})

	t.Run("re-adding the same id replaces in place", func(t *testing.T) {
		v := testView()
		f := polyFeature()
		f.ID = "my-shape"
		v.AddFeature(f)
		v.AddFeature(f)
		assert.Len(t, v.Features(), 1)
	})

	t.Run("delete all empties the store", func(t *testing.T) {
		v := testView()
		v.AddFeature(polyFeature())
		v.AddFeature(polyFeature())
		v.DeleteAllFeatures()
		assert.Empty(t, v.Features())
	})
}

func TestNativePolygonDraw(t *testing.T) {
	t.Run("clicks accumulate only in polygon draw mode", func(t *testing.T) {
		v := testView()
		v.DrawClick(orb.Point{0, 0})
		_, committed := v.DrawComplete()
		assert.False(t, committed, "clicks outside draw mode are ignored")

		v.ChangeMode(model.DrawModePolygon)
		v.DrawClick(orb.Point{0, 0})
		v.DrawClick(orb.Point{0.001, 0})
		v.DrawClick(orb.Point{0.001, 0.001})

		f, committed := v.DrawComplete()
		require.True(t, committed)
		shape, err := model.ShapeFromFeature(f)
		require.NoError(t, err)
		assert.Equal(t, model.ShapeKindPolygon, shape.Kind)
		assert.True(t, shape.Ring.Closed())
		assert.Len(t, v.Features(), 1)
	})

	t.Run("fewer than 3 vertices discards the attempt", func(t *testing.T) {
		v := testView()
		v.ChangeMode(model.DrawModePolygon)
		v.DrawClick(orb.Point{0, 0})
		v.DrawClick(orb.Point{0.001, 0})

		_, committed := v.DrawComplete()
		assert.False(t, committed)
		assert.Empty(t, v.Features())
	})

	t.Run("leaving draw mode discards in-progress vertices", func(t *testing.T) {
		v := testView()
		v.ChangeMode(model.DrawModePolygon)
		v.DrawClick(orb.Point{0, 0})
		v.DrawClick(orb.Point{0.001, 0})
		v.DrawClick(orb.Point{0.001, 0.001})

		v.ChangeMode(model.DrawModeSelect)
		v.ChangeMode(model.DrawModePolygon)
		_, committed := v.DrawComplete()
		assert.False(t, committed)
	})
}

func TestViewState(t *testing.T) {
	v := testView()

	assert.Equal(t, model.DefaultCenter, v.Center())
	assert.Equal(t, model.DefaultZoom, v.Zoom())
	assert.True(t, v.PanEnabled())
	assert.True(t, v.ViewReady())

	v.SetCenter(orb.Point{135.76, 35.0})
	v.SetZoom(15)
	v.DisablePan()
	v.SetCursor("crosshair")

	assert.Equal(t, orb.Point{135.76, 35.0}, v.Center())
	assert.Equal(t, 15.0, v.Zoom())
	assert.False(t, v.PanEnabled())
	assert.Equal(t, "crosshair", v.Cursor())

	w, h := v.ViewSize()
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestSourcesAndLayers(t *testing.T) {
	v := testView()
	id := model.FreehandPreviewID

	assert.False(t, v.HasSource(id))
	v.AddSource(id, geojson.NewFeatureCollection())
	v.AddLayer(id, id, "line")
	assert.True(t, v.HasSource(id))
	assert.True(t, v.HasLayer(id))

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
	v.SetSourceData(id, fc)
	got, ok := v.SourceData(id)
	require.True(t, ok)
	assert.Len(t, got.Features, 1)

	v.RemoveLayer(id)
	v.RemoveSource(id)
	assert.False(t, v.HasSource(id))
	assert.False(t, v.HasLayer(id))
}
