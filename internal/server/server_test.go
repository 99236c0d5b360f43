package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/strainmap/internal/server"
	"github.com/agentstation/strainmap/internal/server/response"
	"github.com/agentstation/strainmap/pkg/importer"
	"github.com/agentstation/strainmap/pkg/library"
	"github.com/agentstation/strainmap/pkg/strains"
)

type fakeLLM struct {
	researchCalls atomic.Int32
}

func (f *fakeLLM) Extract(_ context.Context, _ string) (strains.Candidate, error) {
	return strains.Candidate{"name": "Blue Dream", "manufacturer": "Aurora Cannabis", "cbd": "<1%"}, nil
}

func (f *fakeLLM) Research(_ context.Context, names []string) ([]strains.Candidate, error) {
	f.researchCalls.Add(1)
	out := make([]strains.Candidate, 0, len(names))
	for _, name := range names {
		out = append(out, strains.Candidate{"name": name, "thc": "20%"})
	}
	return out, nil
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *response.Error `json:"error"`
}

type testServer struct {
	handler http.Handler
	llm     *fakeLLM
}

func newTestServer(t *testing.T, mutate func(*server.Config), withLLM bool) *testServer {
	t.Helper()
	nop := zerolog.Nop()

	store, err := library.New(filepath.Join(t.TempDir(), "strains.yaml"), library.WithLogger(&nop))
	require.NoError(t, err)

	llm := &fakeLLM{}
	opts := []importer.Option{importer.WithLogger(&nop)}
	if withLLM {
		opts = append(opts, importer.WithExtractor(llm), importer.WithResearcher(llm))
	}
	imp, err := importer.New(opts...)
	require.NoError(t, err)

	cfg := server.DefaultConfig()
	cfg.RateLimit = 0
	if mutate != nil {
		mutate(&cfg)
	}

	srv, err := server.New(store, imp, cfg, &nop)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return &testServer{handler: srv.Handler(), llm: llm}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.168.1.10:5000"
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestNewValidation(t *testing.T) {
	_, err := server.New(nil, nil, server.DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil, true)

	w, env := ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, env.Error)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "healthy", data["status"])
	assert.Equal(t, true, data["llm"])
}

func TestDocumentRoutes(t *testing.T) {
	ts := newTestServer(t, nil, false)

	t.Run("seeded document", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/strains", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var doc library.Document
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		assert.Len(t, doc.Strains, 2)
	})

	t.Run("filtered document", func(t *testing.T) {
		_, env := ts.do(t, http.MethodGet, "/api/strains?manufacturer=canopy", nil)

		var doc library.Document
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		require.Len(t, doc.Strains, 1)
		assert.Equal(t, "Pink Kush", doc.Strains[0].Name)
	})

	t.Run("get one", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/strains/blue-dream", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var p strains.Profile
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, "Blue Dream", p.Name)
	})

	t.Run("get missing", func(t *testing.T) {
		w, env := ts.do(t, http.MethodGet, "/api/strains/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("put and delete", func(t *testing.T) {
		w, env := ts.do(t, http.MethodPut, "/api/strains/gelato", map[string]any{"name": "Gelato", "effects": "Euphorisch"})
		require.Equal(t, http.StatusOK, w.Code)

		var p strains.Profile
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, "gelato", p.ID)
		assert.Equal(t, []string{"Euphorisch"}, p.Effects)

		w, _ = ts.do(t, http.MethodDelete, "/api/strains/gelato", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w, _ = ts.do(t, http.MethodDelete, "/api/strains/gelato", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("put keeps createdAt", func(t *testing.T) {
		w, env := ts.do(t, http.MethodPut, "/api/strains/blue-dream", map[string]any{"name": "Blue Dream", "thc": "24%"})
		require.Equal(t, http.StatusOK, w.Code)

		var p strains.Profile
		require.NoError(t, json.Unmarshal(env.Data, &p))
		assert.Equal(t, "24%", p.THC)
		assert.Equal(t, "2026-02-17T00:00:00Z", p.CreatedAt)
	})

	t.Run("replace document", func(t *testing.T) {
		w, env := ts.do(t, http.MethodPost, "/api/strains", map[string]any{
			"strains": []any{map[string]any{"name": "Zkittlez", "terpenes": "Limonene, Caryophyllene"}},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var doc library.Document
		require.NoError(t, json.Unmarshal(env.Data, &doc))
		require.Len(t, doc.Strains, 1)
		assert.Equal(t, "zkittlez", doc.Strains[0].ID)
		assert.Len(t, doc.Strains[0].Terpenes, 2)
		assert.NotEmpty(t, doc.UpdatedAt)
	})

	t.Run("replace requires strains", func(t *testing.T) {
		w, env := ts.do(t, http.MethodPost, "/api/strains", map[string]any{"items": []any{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
	})

	t.Run("facets", func(t *testing.T) {
		_, env := ts.do(t, http.MethodGet, "/api/facets", nil)

		var facets map[string][]string
		require.NoError(t, json.Unmarshal(env.Data, &facets))
		assert.Equal(t, []string{"Caryophyllene", "Limonene"}, facets["terpenes"])
		assert.Empty(t, facets["manufacturers"])
	})
}

func TestImportRoute(t *testing.T) {
	text := "Strain: Blue Dream\nHersteller: Aurora\nTHC: 22%"

	t.Run("local", func(t *testing.T) {
		ts := newTestServer(t, nil, true)
		w, env := ts.do(t, http.MethodPost, "/api/import", map[string]any{"text": text, "useLlm": false})
		require.Equal(t, http.StatusOK, w.Code)

		var res importer.Result
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, importer.StatusLocal, res.Status)
		assert.Equal(t, "Aurora", res.Merged.Manufacturer)
	})

	t.Run("merged", func(t *testing.T) {
		ts := newTestServer(t, nil, true)
		w, env := ts.do(t, http.MethodPost, "/api/import", map[string]any{"text": text})
		require.Equal(t, http.StatusOK, w.Code)

		var res importer.Result
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, importer.StatusMerged, res.Status)
		assert.True(t, res.UsedLLM)
		assert.Equal(t, "Aurora Cannabis", res.Merged.Manufacturer)
		assert.NotEmpty(t, res.Rows)
	})

	t.Run("empty text", func(t *testing.T) {
		ts := newTestServer(t, nil, true)
		w, _ := ts.do(t, http.MethodPost, "/api/import", map[string]any{"text": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		ts := newTestServer(t, nil, true)
		w, env := ts.do(t, http.MethodGet, "/api/import", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Code)
	})

	t.Run("rate limited", func(t *testing.T) {
		ts := newTestServer(t, func(c *server.Config) { c.RateLimit = 1 }, true)
		w, _ := ts.do(t, http.MethodPost, "/api/import", map[string]any{"text": text})
		assert.Equal(t, http.StatusOK, w.Code)
		w, _ = ts.do(t, http.MethodPost, "/api/import", map[string]any{"text": text})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestReviewRoute(t *testing.T) {
	ts := newTestServer(t, nil, false)

	w, env := ts.do(t, http.MethodPost, "/api/review", map[string]any{
		"local":   map[string]any{"name": "Blue Dream", "thc": "22%"},
		"llm":     map[string]any{"name": "Blue Dream", "thc": "21%"},
		"merged":  map[string]any{"name": "Blue Dream", "thc": "20%"},
		"usedLlm": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		Rows []struct {
			Key        string `json:"key"`
			Source     string `json:"source"`
			Confidence string `json:"confidence"`
		} `json:"rows"`
		NeedsAttention []json.RawMessage `json:"needsAttention"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "High", data.Rows[0].Confidence)
	assert.Equal(t, "thc", data.Rows[1].Key)
	assert.Equal(t, "Local+LLM", data.Rows[1].Source)
	assert.Equal(t, "Low", data.Rows[1].Confidence)
	assert.Len(t, data.NeedsAttention, 1)
}

func TestResearchRoute(t *testing.T) {
	t.Run("cached on repeat", func(t *testing.T) {
		ts := newTestServer(t, nil, true)
		body := map[string]any{"names": []string{"Gelato"}, "input": "- Zkittlez\n- Gelato"}

		w, env := ts.do(t, http.MethodPost, "/api/research", body)
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			Profiles []strains.Profile `json:"profiles"`
			Cached   bool              `json:"cached"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		require.Len(t, data.Profiles, 2)
		assert.Equal(t, "Gelato", data.Profiles[0].Name)
		assert.Equal(t, "Zkittlez", data.Profiles[1].Name)
		assert.False(t, data.Cached)

		_, env = ts.do(t, http.MethodPost, "/api/research", body)
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.True(t, data.Cached)
		assert.Equal(t, int32(1), ts.llm.researchCalls.Load())
	})

	t.Run("no names", func(t *testing.T) {
		ts := newTestServer(t, nil, true)
		w, _ := ts.do(t, http.MethodPost, "/api/research", map[string]any{"input": " , "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("llm not configured", func(t *testing.T) {
		ts := newTestServer(t, nil, false)
		w, env := ts.do(t, http.MethodPost, "/api/research", map[string]any{"names": []string{"Gelato"}})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "LLM_ERROR", env.Error.Code)
	})
}

func TestTemplateRoutes(t *testing.T) {
	ts := newTestServer(t, nil, false)

	w, env := ts.do(t, http.MethodGet, "/api/template", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tpl struct {
		Template       string   `json:"template"`
		RequiredLabels []string `json:"requiredLabels"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tpl))
	assert.Contains(t, tpl.Template, "Strain:")
	assert.Len(t, tpl.RequiredLabels, 14)

	_, env = ts.do(t, http.MethodPost, "/api/template/validate", map[string]any{"text": "Strain: X\nTHC: 20%"})
	var v struct {
		Valid   bool     `json:"valid"`
		Missing []string `json:"missing"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	assert.False(t, v.Valid)
	assert.Contains(t, v.Missing, "Hersteller")
	assert.NotContains(t, v.Missing, "THC")
}

func TestUnknownRouteAndCORS(t *testing.T) {
	ts := newTestServer(t, nil, false)

	w, env := ts.do(t, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/strains", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunStopsOnCancel(t *testing.T) {
	nop := zerolog.Nop()
	store, err := library.New(filepath.Join(t.TempDir(), "strains.yaml"), library.WithLogger(&nop))
	require.NoError(t, err)
	imp, err := importer.New(importer.WithLogger(&nop))
	require.NoError(t, err)

	cfg := server.DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	srv, err := server.New(store, imp, cfg, &nop)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
