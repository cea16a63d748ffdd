package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"AreaHelper-App/internal/config"
	"AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/repository"
	"AreaHelper-App/internal/domain/service"
	"AreaHelper-App/internal/infrastructure/capability"
	"AreaHelper-App/internal/infrastructure/database"
	fsinfra "AreaHelper-App/internal/infrastructure/firestore"
	"AreaHelper-App/internal/infrastructure/maps"
	"AreaHelper-App/internal/infrastructure/mapview"
	"AreaHelper-App/internal/infrastructure/notify"
	repoImpl "AreaHelper-App/internal/repository"
)

// Errors surfaced to the HTTP layer.
var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrPersistenceNotConfigured = errors.New("persistence gateway is not configured on this session")
	ErrSketchStoreNotConfigured = errors.New("sketch store is not configured")
)

// Capability ids for the memoizing loader. The geocoder id is a key
// prefix: one provider is cached per credential.
const (
	capGeocoder  = "mapbox-geocoder"
	capFirestore = "firestore-sketches"
)

// SessionState is the externally visible state of a widget session.
type SessionState struct {
	ID           string
	Mode         model.Mode
	Units        model.Units
	Center       orb.Point
	Zoom         float64
	Cursor       string
	PanEnabled   bool
	TokenWarning bool
	SaveEnabled  bool
	SketchStore  bool
}

// SketchUseCase drives widget sessions: it routes input events to the
// drawing engine, triggers measurement recomputation, and orchestrates
// search, export, persistence and notifications.
type SketchUseCase interface {
	CreateSession(ctx context.Context, cfg *model.WidgetConfig, queryToken string) (*SessionState, error)
	SessionState(sessionID string) (*SessionState, error)

	SetMode(sessionID string, mode model.Mode) (string, error)
	HandlePointer(sessionID string, ev model.PointerEvent) (*service.GestureResult, *model.MeasurementSummary, error)
	CommitCircleRadius(sessionID string, radius float64) (*model.MeasurementSummary, error)
	ClearAll(sessionID string) (*model.MeasurementSummary, error)

	SetUnits(sessionID string, units model.Units) (*model.MeasurementSummary, error)
	SetView(sessionID string, center *orb.Point, zoom *float64) error
	SetToken(sessionID, token string) error
	Search(ctx context.Context, sessionID, query string) (*model.GeocodeResult, error)

	GetData(sessionID string) (*model.MeasurementSnapshot, error)
	Summary(sessionID string) (*model.MeasurementSummary, error)

	ExportCSV(sessionID string) ([]byte, string, error)
	ExportJSON(sessionID string) ([]byte, string, error)
	ExportPNG(sessionID string) ([]byte, string, error)

	Save(ctx context.Context, sessionID string) (*model.MeasurementRecord, error)
	SaveSketch(ctx context.Context, sessionID string, ttlHours int) (string, error)
	RestoreSketch(ctx context.Context, sessionID, sketchID string) (*model.MeasurementSummary, error)

	Subscribe(sessionID string) (<-chan model.Event, func(), error)
}

// sketchSession is one widget instance. Its mutex serializes event
// handlers, which is what gives the overlay last-write-wins semantics:
// a handler fully finishes before the next one for the same session
// runs.
type sketchSession struct {
	mu sync.Mutex

	id  string
	cfg model.WidgetConfig

	view       *mapview.InMemoryMapView
	controller *service.DrawingController
	measure    *service.MeasurementService
	export     *service.ExportService

	units    model.Units
	address  string
	location *orb.Point

	tokenWarning bool
	token        string

	forwarder        *notify.Forwarder
	measurementsRepo repository.MeasurementsRepository

	listeners map[int]chan model.Event
	nextSub   int
}

type sketchUseCaseImpl struct {
	mu       sync.RWMutex
	sessions map[string]*sketchSession

	loader     *capability.Loader
	tokenStore *config.TokenStore
	geocoder   repository.GeocodingProvider
	sketchRepo repository.SketchRepository
}

// NewSketchUseCase creates the usecase with an empty session registry.
func NewSketchUseCase(tokenStore *config.TokenStore) SketchUseCase {
	return &sketchUseCaseImpl{
		sessions:   map[string]*sketchSession{},
		loader:     capability.NewLoader(),
		tokenStore: tokenStore,
	}
}

// Default raster buffer for the server-side view.
const (
	defaultViewWidth  = 1280
	defaultViewHeight = 720
)

// CreateSession builds a session from the widget attributes. The
// credential resolves attribute > query parameter > saved local value >
// process-global fallback; a query-supplied credential is persisted
// for reuse. A missing credential is a visible warning, not an error.
func (u *sketchUseCaseImpl) CreateSession(ctx context.Context, cfg *model.WidgetConfig, queryToken string) (*SessionState, error) {
	cfg.ApplyDefaults()

	token, source := config.Resolve(
		config.Source{Name: "attribute", Value: cfg.Token},
		config.Source{Name: "query", Value: queryToken},
		config.Source{Name: "saved", Value: u.tokenStore.Load()},
		config.Source{Name: "global", Value: os.Getenv("MAPBOX_TOKEN")},
	)
	if source == "query" {
		if err := u.tokenStore.Save(token); err != nil {
			log.Printf("⚠️ Failed to persist query token: %v", err)
		}
	}

	view := mapview.NewInMemoryMapView(cfg.Center, cfg.Zoom, defaultViewWidth, defaultViewHeight)
	measure := service.NewMeasurementService(view)

	s := &sketchSession{
		id:           uuid.New().String(),
		cfg:          *cfg,
		view:         view,
		controller:   service.NewDrawingController(view, cfg.Tuning),
		measure:      measure,
		export:       service.NewExportService(view, measure),
		units:        cfg.Units,
		token:        token,
		tokenWarning: token == "",
		listeners:    map[int]chan model.Event{},
	}

	if cfg.PostMessage {
		forwarder, err := notify.NewForwarder(cfg.TargetOrigin, cfg.AllowWildcardOrigin)
		if err != nil {
			log.Printf("⚠️ Result forwarding disabled for session %s: %v", s.id, err)
		} else {
			s.forwarder = forwarder
		}
	}

	if cfg.PersistenceConfigured() {
		repo, err := u.measurementsGateway(cfg)
		if err != nil {
			log.Printf("⚠️ Save disabled for session %s: %v", s.id, err)
		} else {
			s.measurementsRepo = repo
		}
	} else if os.Getenv("POSTGRES_DSN") != "" {
		// Self-hosted deployments persist through Postgres directly.
		repo, err := u.postgresGateway(cfg.SupabaseTable)
		if err != nil {
			log.Printf("⚠️ Save disabled for session %s: %v", s.id, err)
		} else {
			s.measurementsRepo = repo
		}
	}

	u.mu.Lock()
	u.sessions[s.id] = s
	u.mu.Unlock()

	log.Printf("🗺️ Session %s created (units: %s, center: %v)", s.id, s.units, cfg.Center)
	return u.stateOf(s), nil
}

// measurementsGateway lazily constructs the persistence gateway for a
// session's connection attributes, sharing one client per distinct
// configuration.
func (u *sketchUseCaseImpl) measurementsGateway(cfg *model.WidgetConfig) (repository.MeasurementsRepository, error) {
	id := "supabase:" + cfg.SupabaseURL + ":" + cfg.SupabaseTable
	handle, err := u.loader.Load(id, func() (any, error) {
		client, err := database.NewSupabaseClient(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			return nil, err
		}
		return repoImpl.NewSupabaseMeasurementsRepository(client, cfg.SupabaseTable), nil
	})
	if err != nil {
		return nil, err
	}
	return handle.(repository.MeasurementsRepository), nil
}

// postgresGateway lazily constructs the direct Postgres gateway used
// when no per-session store is configured but POSTGRES_DSN is set.
func (u *sketchUseCaseImpl) postgresGateway(table string) (repository.MeasurementsRepository, error) {
	if table == "" {
		table = model.DefaultMeasurementsTable
	}
	handle, err := u.loader.Load("postgres:"+table, func() (any, error) {
		client, err := database.NewPostgreSQLClient()
		if err != nil {
			return nil, err
		}
		return repoImpl.NewPostgresMeasurementsRepository(client, table), nil
	})
	if err != nil {
		return nil, err
	}
	return handle.(repository.MeasurementsRepository), nil
}

// geocodingProvider lazily constructs the geocoder for a credential.
// The loader entry is keyed by the token itself, so saving a new
// credential reaches the provider on the very next search instead of
// hitting a stale memoized one.
func (u *sketchUseCaseImpl) geocodingProvider(token string) (repository.GeocodingProvider, error) {
	if u.geocoder != nil {
		return u.geocoder, nil
	}
	handle, err := u.loader.Load(capGeocoder+":"+token, func() (any, error) {
		return maps.NewMapboxGeocodingProvider(token), nil
	})
	if err != nil {
		return nil, err
	}
	return handle.(repository.GeocodingProvider), nil
}

// sketchStore lazily constructs the shared sketch snapshot store. It
// is configured process-wide via FIRESTORE_PROJECT_ID.
func (u *sketchUseCaseImpl) sketchStore(ctx context.Context) (repository.SketchRepository, error) {
	if u.sketchRepo != nil {
		return u.sketchRepo, nil
	}
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		return nil, ErrSketchStoreNotConfigured
	}
	handle, err := u.loader.Load(capFirestore, func() (any, error) {
		client, err := fsinfra.NewFirestoreClient(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return repoImpl.NewFirestoreSketchRepository(client.GetClient()), nil
	})
	if err != nil {
		return nil, err
	}
	return handle.(repository.SketchRepository), nil
}

func (u *sketchUseCaseImpl) session(id string) (*sketchSession, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	s, ok := u.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (u *sketchUseCaseImpl) stateOf(s *sketchSession) *SessionState {
	return &SessionState{
		ID:           s.id,
		Mode:         s.controller.Mode(),
		Units:        s.units,
		Center:       s.view.Center(),
		Zoom:         s.view.Zoom(),
		Cursor:       s.view.Cursor(),
		PanEnabled:   s.view.PanEnabled(),
		TokenWarning: s.tokenWarning,
		SaveEnabled:  s.measurementsRepo != nil,
		SketchStore:  os.Getenv("FIRESTORE_PROJECT_ID") != "",
	}
}

// SessionState returns the session's current state.
func (u *sketchUseCaseImpl) SessionState(sessionID string) (*SessionState, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return u.stateOf(s), nil
}

// modeInstructions mirrors the widget's per-mode helper text.
var modeInstructions = map[model.Mode]string{
	model.ModePolygon:   "Polygon mode: click to add vertices, double-click to finish.",
	model.ModeRectangle: "Rectangle: click first corner, then second corner.",
	model.ModeFreehand:  "Freehand: hold and move to draw; release to finish.",
	model.ModeCircle:    "Click map for circle center…",
	model.ModeSelect:    "Draw shapes then see total area & perimeter.",
}

// SetMode switches the drawing mode, cancelling in-flight gestures.
func (u *sketchUseCaseImpl) SetMode(sessionID string, mode model.Mode) (string, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controller.SetMode(mode)
	return modeInstructions[s.controller.Mode()], nil
}

// HandlePointer routes one input event. When the event mutated the
// shape set, the returned summary is the fresh recomputation.
func (u *sketchUseCaseImpl) HandlePointer(sessionID string, ev model.PointerEvent) (*service.GestureResult, *model.MeasurementSummary, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var result *service.GestureResult
	switch ev.Type {
	case model.PointerPress:
		result = s.controller.Press(ev)
	case model.PointerMove:
		result = s.controller.Move(ev)
	case model.PointerRelease:
		result, err = s.controller.Release()
	case model.PointerClick:
		result, err = s.controller.Click(ev.Point)
	case model.PointerDoubleClick:
		result, err = s.controller.DoubleClick()
	default:
		return nil, nil, fmt.Errorf("unknown pointer event type %q", ev.Type)
	}
	if err != nil {
		return nil, nil, err
	}

	var summary *model.MeasurementSummary
	if result.Changed {
		summary = s.recompute()
	}
	return result, summary, nil
}

// CommitCircleRadius applies a radius entry to the armed circle. A
// validation failure keeps the circle armed for retry.
func (u *sketchUseCaseImpl) CommitCircleRadius(sessionID string, radius float64) (*model.MeasurementSummary, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.controller.CommitCircleRadius(radius, s.units)
	if err != nil {
		return nil, err
	}
	if result.Changed {
		return s.recompute(), nil
	}
	return nil, nil
}

// ClearAll removes all shapes and resets the mode; the returned
// summary reports zero shapes.
func (u *sketchUseCaseImpl) ClearAll(sessionID string) (*model.MeasurementSummary, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.controller.ClearAll()
	return s.recompute(), nil
}

// SetUnits toggles the unit preference. Canonical values are
// untouched; only the unit-selected fields change.
func (u *sketchUseCaseImpl) SetUnits(sessionID string, units model.Units) (*model.MeasurementSummary, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.units = units
	s.emit(model.Event{Type: model.EventUnits, Detail: model.UnitsDetail{Units: units}})
	return s.recompute(), nil
}

// SetView syncs client view state (pan/zoom) into the session.
func (u *sketchUseCaseImpl) SetView(sessionID string, center *orb.Point, zoom *float64) error {
	s, err := u.session(sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if center != nil {
		s.view.SetCenter(*center)
	}
	if zoom != nil {
		s.view.SetZoom(*zoom)
	}
	return nil
}

// SetToken saves a credential for reuse and clears the warning state.
func (u *sketchUseCaseImpl) SetToken(sessionID, token string) error {
	s, err := u.session(sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := u.tokenStore.Save(token); err != nil {
		return err
	}
	s.token = token
	s.tokenWarning = token == ""
	return nil
}

// Search geocodes an address and jumps the view to the result. The
// address is remembered for export headers.
func (u *sketchUseCaseImpl) Search(ctx context.Context, sessionID, query string) (*model.GeocodeResult, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	token := s.token
	s.mu.Unlock()

	geocoder, err := u.geocodingProvider(token)
	if err != nil {
		return nil, err
	}
	result, err := geocoder.Geocode(ctx, query)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = result.PlaceName
	center := result.Center
	s.location = &center
	s.view.SetCenter(center)
	return result, nil
}

// GetData is the host-page snapshot: rounded canonical values plus the
// raw shape collection; zero shapes yields zeros and empty features.
func (u *sketchUseCaseImpl) GetData(sessionID string) (*model.MeasurementSnapshot, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measure.Summarize(s.units).Snapshot(), nil
}

// Summary returns the full unrounded summary.
func (u *sketchUseCaseImpl) Summary(sessionID string) (*model.MeasurementSummary, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.measure.Summarize(s.units), nil
}

// ExportCSV renders the tabular report.
func (u *sketchUseCaseImpl) ExportCSV(sessionID string) ([]byte, string, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.export.CSVReport(s.units, s.address, time.Now())
}

// ExportJSON renders the structured document.
func (u *sketchUseCaseImpl) ExportJSON(sessionID string) ([]byte, string, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.export.JSONDocument(s.units, s.address, s.location, time.Now())
}

// ExportPNG renders the raster snapshot.
func (u *sketchUseCaseImpl) ExportPNG(sessionID string) ([]byte, string, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.export.SnapshotPNG()
}

// Save hands the current measurement record to the persistence
// gateway. Failure leaves the in-memory state unaffected.
func (u *sketchUseCaseImpl) Save(ctx context.Context, sessionID string) (*model.MeasurementRecord, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.measurementsRepo == nil {
		return nil, ErrPersistenceNotConfigured
	}
	sum := s.measure.Summarize(s.units)
	if !sum.HasShapes() {
		return nil, service.ErrNoShapes
	}

	record := &model.MeasurementRecord{
		CreatedAt:   time.Now().UTC(),
		Units:       s.units,
		AreaSqM:     model.Round2(sum.AreaSqM),
		AreaSqFt:    model.Round2(sum.AreaSqFt),
		PerimeterM:  model.Round2(sum.PerimeterM),
		PerimeterFt: model.Round2(sum.PerimeterFt),
		GeoJSON:     sum.Features,
	}
	if err := s.measurementsRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("save failed: %w", err)
	}

	s.emit(model.Event{Type: model.EventSaved, Detail: record})
	return record, nil
}

// SaveSketch snapshots the session's shapes into the sketch store.
func (u *sketchUseCaseImpl) SaveSketch(ctx context.Context, sessionID string, ttlHours int) (string, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return "", err
	}
	store, err := u.sketchStore(ctx)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	sum := s.measure.Summarize(s.units)
	units := s.units
	s.mu.Unlock()

	if !sum.HasShapes() {
		return "", service.ErrNoShapes
	}
	if ttlHours <= 0 {
		ttlHours = 24
	}

	return store.SaveSketch(ctx, &model.SketchRecord{
		Units:   units,
		GeoJSON: sum.Features,
	}, ttlHours)
}

// RestoreSketch replaces the session's shape set with a saved sketch.
func (u *sketchUseCaseImpl) RestoreSketch(ctx context.Context, sessionID, sketchID string) (*model.MeasurementSummary, error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, err
	}
	store, err := u.sketchStore(ctx)
	if err != nil {
		return nil, err
	}
	sketch, err := store.GetSketch(ctx, sketchID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.controller.ClearAll()
	if sketch.GeoJSON != nil {
		for _, f := range sketch.GeoJSON.Features {
			s.view.AddFeature(f)
		}
	}
	s.units = sketch.Units
	return s.recompute(), nil
}

// Subscribe registers an event listener. The returned cancel removes
// it.
func (u *sketchUseCaseImpl) Subscribe(sessionID string) (<-chan model.Event, func(), error) {
	s, err := u.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan model.Event, 16)
	s.listeners[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.listeners[id]; ok {
			delete(s.listeners, id)
			close(c)
		}
	}
	return ch, cancel, nil
}

// recompute refreshes the summary and, with at least one shape, emits
// the change notification and forwards it when configured. Callers
// hold the session lock.
func (s *sketchSession) recompute() *model.MeasurementSummary {
	sum := s.measure.Summarize(s.units)
	if !sum.HasShapes() {
		return sum
	}

	event := model.Event{Type: model.EventChange, Detail: sum}
	s.emit(event)
	if s.forwarder != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.forwarder.Forward(ctx, &event); err != nil {
				log.Printf("⚠️ Forwarding failed for session %s: %v", s.id, err)
			}
		}()
	}
	return sum
}

// emit delivers fire-and-forget; a full listener drops the event
// rather than blocking the input path.
func (s *sketchSession) emit(event model.Event) {
	for _, ch := range s.listeners {
		select {
		case ch <- event:
		default:
		}
	}
}
