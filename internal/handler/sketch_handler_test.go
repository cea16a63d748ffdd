package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AreaHelper-App/internal/config"
	"AreaHelper-App/internal/handler"
	"AreaHelper-App/internal/usecase"
	wire "AreaHelper-App/model"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("MAPBOX_TOKEN", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("POSTGRES_DSN", "")
	gin.SetMode(gin.TestMode)

	store := config.NewTokenStore(filepath.Join(t.TempDir(), "token"))
	h := handler.NewSketchHandler(usecase.NewSketchUseCase(store))
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestSession(t *testing.T, r *gin.Engine) wire.SessionResponse {
	t.Helper()
	w := doJSON(t, r, "POST", "/sessions", wire.CreateSessionRequest{Units: "imperial"})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp wire.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.SessionID)
	return resp
}

func TestCreateSessionEndpoint(t *testing.T) {
	r := newTestRouter(t)

	t.Run("defaults", func(t *testing.T) {
		resp := createTestSession(t, r)
		assert.Equal(t, "polygon", resp.Mode)
		assert.Equal(t, "imperial", resp.Units)
		assert.True(t, resp.TokenWarning)
		assert.False(t, resp.SaveEnabled)
	})

	t.Run("custom center and units", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sessions", wire.CreateSessionRequest{
			Units:  "metric",
			Center: "-122.4194,37.7749",
			Zoom:   15,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp wire.SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "metric", resp.Units)
		assert.Equal(t, []float64{-122.4194, 37.7749}, resp.Center)
		assert.Equal(t, 15.0, resp.Zoom)
	})

	t.Run("malformed center is a 400", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sessions", wire.CreateSessionRequest{Center: "not-a-point"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_parameter")
	})

	t.Run("invalid units is a 400", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/sessions", wire.CreateSessionRequest{Units: "nautical"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPointerEventEndpoints(t *testing.T) {
	r := newTestRouter(t)
	session := createTestSession(t, r)
	base := "/sessions/" + session.SessionID

	w := doJSON(t, r, "POST", base+"/mode", wire.SetModeRequest{Mode: "rectangle"})
	require.Equal(t, http.StatusOK, w.Code)
	var modeResp wire.SetModeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &modeResp))
	assert.Equal(t, "rectangle", modeResp.Mode)
	assert.NotEmpty(t, modeResp.Instruction)

	w = doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{
		Type: "click", Point: []float64{0, 0},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{
		Type: "click", Point: []float64{0.001, 0.001},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var eventResp struct {
		Result       wire.PointerEventResponse `json:"result"`
		Measurements *json.RawMessage          `json:"measurements"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &eventResp))
	assert.True(t, eventResp.Result.Committed)
	assert.True(t, eventResp.Result.Changed)
	assert.NotEmpty(t, eventResp.Result.ShapeID)
	require.NotNil(t, eventResp.Measurements, "a commit must carry fresh measurements")

	// The snapshot endpoint reflects the committed rectangle.
	w = doJSON(t, r, "GET", base+"/measurements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snapshot map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snapshot))
	assert.Greater(t, snapshot["area_sq_m"].(float64), 0.0)
}

func TestCircleEndpoint(t *testing.T) {
	r := newTestRouter(t)
	session := createTestSession(t, r)
	base := "/sessions/" + session.SessionID

	w := doJSON(t, r, "POST", base+"/mode", wire.SetModeRequest{Mode: "circle"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{
		Type: "click", Point: []float64{-98.5795, 39.8283},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"awaiting_radius":true`)

	// Invalid radius is a 400, and the circle stays armed for retry.
	w = doJSON(t, r, "POST", base+"/circle", wire.CircleRadiusRequest{Radius: -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", base+"/circle", wire.CircleRadiusRequest{Radius: 250})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"measurements"`)
}

func TestUnitsAndClearEndpoints(t *testing.T) {
	r := newTestRouter(t)
	session := createTestSession(t, r)
	base := "/sessions/" + session.SessionID

	w := doJSON(t, r, "PUT", base+"/units", wire.SetUnitsRequest{Units: "metric"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "PUT", base+"/units", wire.SetUnitsRequest{Units: "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, "POST", base+"/clear", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestExportEndpoints(t *testing.T) {
	r := newTestRouter(t)
	session := createTestSession(t, r)
	base := "/sessions/" + session.SessionID

	t.Run("no shapes is a 400", func(t *testing.T) {
		w := doJSON(t, r, "GET", base+"/export/csv", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown format is a 400", func(t *testing.T) {
		w := doJSON(t, r, "GET", base+"/export/pdf", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("artifacts download with attachment headers", func(t *testing.T) {
		doJSON(t, r, "POST", base+"/mode", wire.SetModeRequest{Mode: "rectangle"})
		doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{Type: "click", Point: []float64{0, 0}})
		doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{Type: "click", Point: []float64{0.001, 0.001}})

		w := doJSON(t, r, "GET", base+"/export/csv", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "area-measurement-")
		assert.Contains(t, w.Body.String(), "Area Measurement Report")

		w = doJSON(t, r, "GET", base+"/export/png", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "area-snapshot.png")
	})
}

func TestErrorEnvelopes(t *testing.T) {
	r := newTestRouter(t)

	t.Run("unknown session is a 404", func(t *testing.T) {
		w := doJSON(t, r, "GET", "/sessions/does-not-exist/measurements", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
		assert.Contains(t, w.Body.String(), `"message"`)
	})

	t.Run("save without a gateway is a 503", func(t *testing.T) {
		session := createTestSession(t, r)
		base := "/sessions/" + session.SessionID
		doJSON(t, r, "POST", base+"/mode", wire.SetModeRequest{Mode: "rectangle"})
		doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{Type: "click", Point: []float64{0, 0}})
		doJSON(t, r, "POST", base+"/events", wire.PointerEventRequest{Type: "click", Point: []float64{0.001, 0.001}})

		w := doJSON(t, r, "POST", base+"/save", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "capability_unavailable")
	})

	t.Run("unknown mode is a 400", func(t *testing.T) {
		session := createTestSession(t, r)
		w := doJSON(t, r, "POST", "/sessions/"+session.SessionID+"/mode", wire.SetModeRequest{Mode: "lasso"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
