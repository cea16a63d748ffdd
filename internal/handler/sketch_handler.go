package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	wire "AreaHelper-App/model"

	domain "AreaHelper-App/internal/domain/model"
	"AreaHelper-App/internal/domain/service"
	"AreaHelper-App/internal/domain/strategy"
	"AreaHelper-App/internal/usecase"
)

// SketchHandler exposes widget sessions over HTTP. Host pages relay
// pointer input here and read back measurements and exports.
type SketchHandler struct {
	sketchUseCase usecase.SketchUseCase
}

// NewSketchHandler creates a SketchHandler.
func NewSketchHandler(sketchUseCase usecase.SketchUseCase) *SketchHandler {
	return &SketchHandler{
		sketchUseCase: sketchUseCase,
	}
}

// RegisterRoutes wires the session endpoints onto the router.
func (h *SketchHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/sessions", h.CreateSession)
	r.GET("/sessions/:id", h.GetSession)
	r.GET("/sessions/:id/measurements", h.GetMeasurements)
	r.POST("/sessions/:id/mode", h.SetMode)
	r.POST("/sessions/:id/events", h.HandlePointerEvent)
	r.POST("/sessions/:id/circle", h.CommitCircleRadius)
	r.POST("/sessions/:id/clear", h.ClearAll)
	r.PUT("/sessions/:id/units", h.SetUnits)
	r.PUT("/sessions/:id/view", h.SetView)
	r.PUT("/sessions/:id/token", h.SetToken)
	r.POST("/sessions/:id/search", h.Search)
	r.GET("/sessions/:id/export/:format", h.Export)
	r.POST("/sessions/:id/save", h.Save)
	r.POST("/sessions/:id/sketch", h.SaveSketch)
	r.GET("/sessions/:id/sketch/:sketchID", h.RestoreSketch)
}

// CreateSession POST /sessions - create a widget session
func (h *SketchHandler) CreateSession(c *gin.Context) {
	var req wire.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	cfg := domain.WidgetConfig{
		Token:               req.Token,
		MapStyle:            req.MapStyle,
		Zoom:                req.Zoom,
		PostMessage:         req.PostMessage,
		TargetOrigin:        req.TargetOrigin,
		AllowWildcardOrigin: req.AllowWildcardOrigin,
		SupabaseURL:         req.SupabaseURL,
		SupabaseKey:         req.SupabaseKey,
		SupabaseTable:       req.SupabaseTable,
	}
	if req.Units != "" {
		units, err := domain.ParseUnits(req.Units)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": err.Error(),
			})
			return
		}
		cfg.Units = units
	}
	if req.Center != "" {
		center, ok := domain.ParseCenter(req.Center)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_parameter",
				"message": "Invalid center: expected \"lng,lat\"",
			})
			return
		}
		cfg.Center = center
	}

	state, err := h.sketchUseCase.CreateSession(c.Request.Context(), &cfg, c.Query("token"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Failed to create session: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, sessionResponse(state))
}

// GetSession GET /sessions/:id - current session state
func (h *SketchHandler) GetSession(c *gin.Context) {
	state, err := h.sketchUseCase.SessionState(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionResponse(state))
}

// GetMeasurements GET /sessions/:id/measurements - rounded snapshot
func (h *SketchHandler) GetMeasurements(c *gin.Context) {
	snapshot, err := h.sketchUseCase.GetData(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SetMode POST /sessions/:id/mode - switch drawing mode
func (h *SketchHandler) SetMode(c *gin.Context) {
	var req wire.SetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	mode, ok := domain.ParseMode(req.Mode)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "unknown mode: " + req.Mode,
		})
		return
	}

	instruction, err := h.sketchUseCase.SetMode(c.Param("id"), mode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.SetModeResponse{Mode: string(mode), Instruction: instruction})
}

// HandlePointerEvent POST /sessions/:id/events - relay one input event
func (h *SketchHandler) HandlePointerEvent(c *gin.Context) {
	var req wire.PointerEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	ev := domain.PointerEvent{
		Type:   domain.PointerEventType(req.Type),
		Shift:  req.Shift,
		Source: domain.InputSource(req.Source),
	}
	if ev.Source == "" {
		ev.Source = domain.InputMouse
	}
	if len(req.Point) >= 2 {
		ev.Point = orb.Point{req.Point[0], req.Point[1]}
	}

	result, summary, err := h.sketchUseCase.HandlePointer(c.Param("id"), ev)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := pointerResponse(result)
	if summary != nil {
		c.JSON(http.StatusOK, gin.H{"result": resp, "measurements": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": resp})
}

// CommitCircleRadius POST /sessions/:id/circle - radius entry for armed circle
func (h *SketchHandler) CommitCircleRadius(c *gin.Context) {
	var req wire.CircleRadiusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	summary, err := h.sketchUseCase.CommitCircleRadius(c.Param("id"), req.Radius)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": summary})
}

// ClearAll POST /sessions/:id/clear - remove all shapes
func (h *SketchHandler) ClearAll(c *gin.Context) {
	summary, err := h.sketchUseCase.ClearAll(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": summary})
}

// SetUnits PUT /sessions/:id/units - toggle unit preference
func (h *SketchHandler) SetUnits(c *gin.Context) {
	var req wire.SetUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	units, err := domain.ParseUnits(req.Units)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": err.Error(),
		})
		return
	}

	summary, err := h.sketchUseCase.SetUnits(c.Param("id"), units)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": summary})
}

// SetView PUT /sessions/:id/view - sync client pan/zoom state
func (h *SketchHandler) SetView(c *gin.Context) {
	var req wire.SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON format: " + err.Error(),
		})
		return
	}

	var center *orb.Point
	if len(req.Center) >= 2 {
		center = &orb.Point{req.Center[0], req.Center[1]}
	}

	if err := h.sketchUseCase.SetView(c.Param("id"), center, req.Zoom); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetToken PUT /sessions/:id/token - save a credential
func (h *SketchHandler) SetToken(c *gin.Context) {
	var req wire.SetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "token is required",
		})
		return
	}

	if err := h.sketchUseCase.SetToken(c.Param("id"), req.Token); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search POST /sessions/:id/search - geocode an address query
func (h *SketchHandler) Search(c *gin.Context) {
	var req wire.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "query is required",
		})
		return
	}

	result, err := h.sketchUseCase.Search(c.Request.Context(), c.Param("id"), req.Query)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wire.SearchResponse{
		PlaceName: result.PlaceName,
		Center:    []float64{result.Center[0], result.Center[1]},
	})
}

// Export GET /sessions/:id/export/:format - csv, json or png artifact
func (h *SketchHandler) Export(c *gin.Context) {
	sessionID := c.Param("id")

	var (
		data        []byte
		fileName    string
		contentType string
		err         error
	)
	switch c.Param("format") {
	case "csv":
		data, fileName, err = h.sketchUseCase.ExportCSV(sessionID)
		contentType = "text/csv"
	case "json":
		data, fileName, err = h.sketchUseCase.ExportJSON(sessionID)
		contentType = "application/json"
	case "png":
		data, fileName, err = h.sketchUseCase.ExportPNG(sessionID)
		contentType = "image/png"
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_parameter",
			"message": "format must be csv, json or png",
		})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// Save POST /sessions/:id/save - persist the current measurement
func (h *SketchHandler) Save(c *gin.Context) {
	record, err := h.sketchUseCase.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wire.SaveResponse{
		Status:  "saved",
		Message: "Measurement saved",
		Record:  record,
	})
}

// SaveSketch POST /sessions/:id/sketch - snapshot shapes for restore
func (h *SketchHandler) SaveSketch(c *gin.Context) {
	var req wire.SaveSketchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body means default TTL.
		req.TTLHours = 0
	}

	sketchID, err := h.sketchUseCase.SaveSketch(c.Request.Context(), c.Param("id"), req.TTLHours)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wire.SaveSketchResponse{SketchID: sketchID})
}

// RestoreSketch GET /sessions/:id/sketch/:sketchID - restore a snapshot
func (h *SketchHandler) RestoreSketch(c *gin.Context) {
	summary, err := h.sketchUseCase.RestoreSketch(c.Request.Context(), c.Param("id"), c.Param("sketchID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"measurements": summary})
}

// respondError maps domain errors to status codes with the standard
// envelope.
func (h *SketchHandler) respondError(c *gin.Context, err error) {
	var radiusErr *strategy.RadiusValidationError
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrNoShapes), errors.As(err, &radiusErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrViewNotReady):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "view_not_ready",
			"message": err.Error(),
		})
	case errors.Is(err, usecase.ErrPersistenceNotConfigured), errors.Is(err, usecase.ErrSketchStoreNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "capability_unavailable",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
	}
}

func sessionResponse(state *usecase.SessionState) wire.SessionResponse {
	return wire.SessionResponse{
		SessionID:    state.ID,
		Mode:         string(state.Mode),
		Units:        string(state.Units),
		Center:       []float64{state.Center[0], state.Center[1]},
		Zoom:         state.Zoom,
		Cursor:       state.Cursor,
		PanEnabled:   state.PanEnabled,
		TokenWarning: state.TokenWarning,
		SaveEnabled:  state.SaveEnabled,
		SketchStore:  state.SketchStore,
	}
}

func pointerResponse(result *service.GestureResult) wire.PointerEventResponse {
	resp := wire.PointerEventResponse{
		AwaitingRadius: result.AwaitingRadius,
		PreventDefault: result.PreventDefault,
		Changed:        result.Changed,
	}
	if result.Committed != nil {
		resp.Committed = true
		resp.ShapeID = result.Committed.ID
	}
	return resp
}
