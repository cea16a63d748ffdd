package database

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// SupabaseClient wraps the Supabase REST client for the measurements
// gateway.
type SupabaseClient struct {
	Client *supabase.Client
}

// NewSupabaseClient creates a client from explicit connection
// attributes (the component's supabase-url / supabase-key attributes).
func NewSupabaseClient(url, key string) (*SupabaseClient, error) {
	if url == "" {
		return nil, fmt.Errorf("supabase url is not configured")
	}
	if key == "" {
		return nil, fmt.Errorf("supabase key is not configured")
	}

	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize supabase client: %w", err)
	}

	return &SupabaseClient{Client: client}, nil
}

// GetClient returns the underlying client.
func (sc *SupabaseClient) GetClient() *supabase.Client {
	return sc.Client
}

// HealthCheck verifies the client is usable.
func (sc *SupabaseClient) HealthCheck() error {
	if sc.Client == nil {
		return fmt.Errorf("supabase client is not initialized")
	}
	return nil
}
