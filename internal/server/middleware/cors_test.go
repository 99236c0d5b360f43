package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDefaultCORSConfig(t *testing.T) {
	config := DefaultCORSConfig()
	if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
		t.Errorf("expected wildcard origin, got %v", config.AllowedOrigins)
	}
	if config.MaxAge != 300 {
		t.Errorf("expected MaxAge=300, got %d", config.MaxAge)
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		wantOrigin string
	}{
		{
			name:       "wildcard",
			config:     DefaultCORSConfig(),
			origin:     "https://example.com",
			wantOrigin: "*",
		},
		{
			name: "empty list allows all",
			config: CORSConfig{
				AllowedMethods: []string{http.MethodGet},
			},
			origin:     "https://example.com",
			wantOrigin: "*",
		},
		{
			name: "specific origin allowed",
			config: CORSConfig{
				AllowedOrigins: []string{"https://example.com", "https://app.example.com"},
				AllowedMethods: []string{http.MethodGet},
			},
			origin:     "https://app.example.com",
			wantOrigin: "https://app.example.com",
		},
		{
			name: "origin not allowed",
			config: CORSConfig{
				AllowedOrigins: []string{"https://example.com"},
				AllowedMethods: []string{http.MethodGet},
			},
			origin:     "https://evil.com",
			wantOrigin: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := CORS(tt.config)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/strains", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if !called {
				t.Error("expected actual request to pass through")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected Allow-Origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}

func TestCORS_PreflightShortCircuit(t *testing.T) {
	called := false
	handler := CORS(DefaultCORSConfig())(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/import", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if called {
		t.Error("preflight should not reach the handler")
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected Allow-Methods header on preflight")
	}
}
