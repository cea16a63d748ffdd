package test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/infrastructure/firestore"
	"AreaHelper-App/internal/repository"
)

func TestFirestoreSketchRoundTrip(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := firestore.NewFirestoreClient(ctx, projectID)
	require.NoError(t, err)
	defer client.Close()

	repo := repository.NewFirestoreSketchRepository(client.GetClient())

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {0.001, 0}, {0.001, 0.001}, {0, 0}}}))

	sketchID, err := repo.SaveSketch(ctx, &model.SketchRecord{
		Units:   model.UnitsMetric,
		GeoJSON: fc,
	}, 1)
	require.NoError(t, err)
	log.Printf("✅ Sketch saved: %s", sketchID)

	sketch, err := repo.GetSketch(ctx, sketchID)
	require.NoError(t, err)
	assert.Equal(t, model.UnitsMetric, sketch.Units)
	require.NotNil(t, sketch.GeoJSON)
	assert.Len(t, sketch.GeoJSON.Features, 1)

	assert.NoError(t, repo.DeleteSketch(ctx, sketchID))
	log.Println("✅ Sketch round trip complete")
}
