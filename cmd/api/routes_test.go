package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pokedex/internal/shared/config"
)

// newFakePokeAPI serves a three-entry catalogue in PokeAPI's wire format.
func newFakePokeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	names := []string{"bulbasaur", "ivysaur", "venusaur"}
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon", func(w http.ResponseWriter, r *http.Request) {
		var results []string
		if r.URL.Query().Get("offset") == "0" {
			for i, name := range names {
				results = append(results, fmt.Sprintf(`{"name": %q, "url": "%s/pokemon/%d/"}`, name, srv.URL, i+1))
			}
		}
		fmt.Fprintf(w, `{"count": 3, "results": [%s]}`, strings.Join(results, ","))
	})
	mux.HandleFunc("/pokemon/{id}/", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.PathValue("id"), "%d", &id)
		fmt.Fprintf(w, `{"id": %d, "name": %q, "stats": [{"base_stat": 45, "stat": {"name": "hp"}}],
			"types": [{"slot": 1, "type": {"name": "grass"}}], "sprites": {}}`, id, names[id-1])
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) http.Handler {
	t.Helper()

	api := newFakePokeAPI(t)
	cfg := &config.Config{
		Server:  config.ServerConfig{Port: "3000", Host: "127.0.0.1", AllowedHosts: []string{"pokedex.example.com"}},
		PokeAPI: config.PokeAPIConfig{BaseURL: api.URL},
		Session: config.SessionConfig{TTL: time.Hour},
	}
	if mutate != nil {
		mutate(cfg)
	}

	deps, err := NewDependencies(cfg, zap.NewNop())
	require.NoError(t, err)
	return SetupRoutes(deps, cfg, zap.NewNop())
}

func TestSetupRoutes(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name           string
		method         string
		target         string
		host           string
		expectedStatus int
		bodyContains   string
	}{
		{name: "Index", method: http.MethodGet, target: "/", host: "localhost:3000", expectedStatus: http.StatusOK, bodyContains: "ivysaur"},
		{name: "Cards fragment", method: http.MethodGet, target: "/cards?q=venu", host: "localhost:3000", expectedStatus: http.StatusOK},
		{name: "JSON listing", method: http.MethodGet, target: "/api/pokemon", host: "localhost:3000", expectedStatus: http.StatusOK, bodyContains: `"total":3`},
		{name: "Health", method: http.MethodGet, target: "/health", host: "localhost:3000", expectedStatus: http.StatusOK, bodyContains: "ok"},
		{name: "Allowed host", method: http.MethodGet, target: "/health", host: "pokedex.example.com", expectedStatus: http.StatusOK},
		{name: "Blocked host", method: http.MethodGet, target: "/health", host: "evil.example.com", expectedStatus: http.StatusForbidden, bodyContains: "Blocked request"},
		{name: "Load more requires POST", method: http.MethodGet, target: "/load-more", host: "localhost:3000", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown path", method: http.MethodGet, target: "/nope", host: "localhost:3000", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Host = tt.host
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.bodyContains != "" {
				assert.Contains(t, rr.Body.String(), tt.bodyContains)
			}
		})
	}
}

func TestSetupRoutes_LoadMoreFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.Host = "localhost:3000"
	index := httptest.NewRecorder()
	router.ServeHTTP(index, first)
	require.Equal(t, http.StatusOK, index.Code)
	cookies := index.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodPost, "/load-more", nil)
	req.Host = "localhost:3000"
	req.AddCookie(cookies[0])
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestSetupRoutes_CORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/pokemon", nil)
	req.Host = "pokedex.example.com"
	req.Header.Set("Origin", "https://pokedex.example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "https://pokedex.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSetupRoutes_TLSHeaders(t *testing.T) {
	router := newTestRouter(t, func(cfg *config.Config) {
		cfg.TLS.Enabled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "localhost:3000"
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Strict-Transport-Security"), "max-age=")
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "Secure")
}

func TestRedirectHandler(t *testing.T) {
	handler := redirectHandler([]string{"pokedex.example.com"})

	tests := []struct {
		name             string
		host             string
		expectedStatus   int
		expectedLocation string
	}{
		{name: "Allowed host", host: "pokedex.example.com:80", expectedStatus: http.StatusMovedPermanently, expectedLocation: "https://pokedex.example.com/cards?q=a"},
		{name: "Unknown host", host: "evil.example.com", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/cards?q=a", nil)
			req.Host = tt.host
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLocation != "" {
				assert.Equal(t, tt.expectedLocation, rr.Header().Get("Location"))
			}
		})
	}
}
