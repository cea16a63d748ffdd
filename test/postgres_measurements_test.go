package test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/infrastructure/database"
	"AreaHelper-App/internal/repository"
)

func TestPostgresMeasurementsSave(t *testing.T) {
	if os.Getenv("POSTGRES_DSN") == "" {
		t.Skip("POSTGRES_DSN not set, skipping integration test")
	}

	client, err := database.NewPostgreSQLClientWithRetry(3, 2*time.Second)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.HealthCheck())
	log.Println("✅ PostgreSQL connection successful")

	repo := repository.NewPostgresMeasurementsRepository(client, "measurements")

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {0.001, 0}, {0.001, 0.001}, {0, 0}}}))

	err = repo.Save(context.Background(), &model.MeasurementRecord{
		CreatedAt:   time.Now().UTC(),
		Units:       model.UnitsMetric,
		AreaSqM:     6182.16,
		AreaSqFt:    66545.12,
		PerimeterM:  380.33,
		PerimeterFt: 1247.8,
		GeoJSON:     fc,
	})
	assert.NoError(t, err)
	log.Println("✅ Measurement row inserted")
}
