package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"

	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/repository"
)

const sketchCollection = "sketches"

// FirestoreSketchRepository stores saved drawing sessions with a TTL
// so a host page can resume a sketch later.
type FirestoreSketchRepository struct {
	client *firestore.Client
}

// NewFirestoreSketchRepository creates the repository.
func NewFirestoreSketchRepository(client *firestore.Client) repository.SketchRepository {
	return &FirestoreSketchRepository{client: client}
}

// firestoreSketch is the document layout; the shape collection is
// stored as a JSON string to keep the document flat.
type firestoreSketch struct {
	ID        string    `firestore:"id"`
	Units     string    `firestore:"units"`
	GeoJSON   string    `firestore:"geojson"`
	CreatedAt time.Time `firestore:"created_at"`
	ExpiresAt time.Time `firestore:"expires_at"`
}

// SaveSketch persists a sketch and returns its generated id.
func (r *FirestoreSketchRepository) SaveSketch(ctx context.Context, sketch *model.SketchRecord, ttlHours int) (string, error) {
	id := sketch.ID
	if id == "" {
		id = uuid.New().String()
	}

	geojsonData, err := json.Marshal(sketch.GeoJSON)
	if err != nil {
		return "", fmt.Errorf("failed to marshal sketch shapes: %w", err)
	}

	now := time.Now()
	doc := firestoreSketch{
		ID:        id,
		Units:     string(sketch.Units),
		GeoJSON:   string(geojsonData),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(ttlHours) * time.Hour),
	}

	if _, err := r.client.Collection(sketchCollection).Doc(id).Set(ctx, doc); err != nil {
		log.Printf("❌ Failed to save sketch %s: %v", id, err)
		return "", fmt.Errorf("failed to save sketch: %w", err)
	}

	log.Printf("✅ Sketch saved: %s (expires in %d hours)", id, ttlHours)
	return id, nil
}

// GetSketch fetches an unexpired sketch by id.
func (r *FirestoreSketchRepository) GetSketch(ctx context.Context, id string) (*model.SketchRecord, error) {
	snap, err := r.client.Collection(sketchCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("sketch %s not found: %w", id, err)
	}

	var doc firestoreSketch
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode sketch %s: %w", id, err)
	}

	if time.Now().After(doc.ExpiresAt) {
		// Expired documents read as not found; cleanup is best-effort.
		if err := r.DeleteSketch(ctx, id); err != nil {
			log.Printf("⚠️ Failed to delete expired sketch %s: %v", id, err)
		}
		return nil, fmt.Errorf("sketch %s has expired", id)
	}

	fc := geojson.NewFeatureCollection()
	if doc.GeoJSON != "" {
		fc, err = geojson.UnmarshalFeatureCollection([]byte(doc.GeoJSON))
		if err != nil {
			return nil, fmt.Errorf("failed to decode sketch %s shapes: %w", id, err)
		}
	}

	units, err := model.ParseUnits(doc.Units)
	if err != nil {
		units = model.UnitsImperial
	}

	return &model.SketchRecord{
		ID:        doc.ID,
		Units:     units,
		GeoJSON:   fc,
		CreatedAt: doc.CreatedAt,
		ExpiresAt: doc.ExpiresAt,
	}, nil
}

// DeleteSketch removes a sketch document.
func (r *FirestoreSketchRepository) DeleteSketch(ctx context.Context, id string) error {
	if _, err := r.client.Collection(sketchCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete sketch %s: %w", id, err)
	}
	return nil
}
