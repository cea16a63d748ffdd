package model

// CreateSessionRequest carries the widget attributes a host page
// configures when embedding the measurement tool.
type CreateSessionRequest struct {
	Token               string  `json:"token"`
	Units               string  `json:"units"`                 // imperial | metric
	Center              string  `json:"center"`                // "lng,lat"
	Zoom                float64 `json:"zoom"`
	MapStyle            string  `json:"map_style"`
	PostMessage         bool    `json:"post_message"`          // forward results cross-frame
	TargetOrigin        string  `json:"target_origin"`
	AllowWildcardOrigin bool    `json:"allow_wildcard_origin"`
	SupabaseURL         string  `json:"supabase_url"`
	SupabaseKey         string  `json:"supabase_key"`
	SupabaseTable       string  `json:"supabase_table"`
}

// SessionResponse reports the externally visible session state.
type SessionResponse struct {
	SessionID    string    `json:"session_id"`
	Mode         string    `json:"mode"`
	Units        string    `json:"units"`
	Center       []float64 `json:"center"` // [lng, lat]
	Zoom         float64   `json:"zoom"`
	Cursor       string    `json:"cursor"`
	PanEnabled   bool      `json:"pan_enabled"`
	TokenWarning bool      `json:"token_warning"` // no credential resolved
	SaveEnabled  bool      `json:"save_enabled"`
	SketchStore  bool      `json:"sketch_store"`
}

// SetModeRequest switches the drawing mode.
type SetModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=select polygon rectangle freehand circle"`
}

// SetModeResponse returns the per-mode helper text.
type SetModeResponse struct {
	Mode        string `json:"mode"`
	Instruction string `json:"instruction"`
}

// SetUnitsRequest toggles the unit preference.
type SetUnitsRequest struct {
	Units string `json:"units" validate:"required,oneof=imperial metric"`
}

// SetViewRequest syncs client pan/zoom state into the session. Both
// fields are optional; omitted fields are left unchanged.
type SetViewRequest struct {
	Center []float64 `json:"center"` // [lng, lat]
	Zoom   *float64  `json:"zoom"`
}

// SetTokenRequest saves a credential supplied after session creation.
type SetTokenRequest struct {
	Token string `json:"token" validate:"required"`
}
