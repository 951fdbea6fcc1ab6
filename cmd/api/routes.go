package main

import (
	"net/http"

	"go.uber.org/zap"

	httphandlers "pokedex/internal/interfaces/http"
	"pokedex/internal/shared/config"
	"pokedex/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Pages
	mux.HandleFunc("GET /{$}", deps.PokedexHandler.HandleIndex)
	mux.HandleFunc("GET /cards", deps.PokedexHandler.HandleCards)
	mux.HandleFunc("POST /load-more", deps.PokedexHandler.HandleLoadMore)

	// Health check
	mux.HandleFunc("GET /health", httphandlers.HandleHealth)

	// JSON API
	cors := middleware.CORS(cfg.Server.AllowedHosts)
	listPokemon := cors(http.HandlerFunc(deps.PokedexHandler.HandleListPokemon))
	mux.Handle("GET /api/pokemon", listPokemon)
	mux.Handle("OPTIONS /api/pokemon", listPokemon)

	// Apply global middleware
	var handler http.Handler = middleware.AllowedHosts(cfg.Server.AllowedHosts)(mux)
	// Tracing sits outside the host check so blocked requests are counted
	// under the "unmatched" route.
	handler = middleware.Tracing(handler)
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(handler)
	}
	handler = middleware.Logging(logger.Named("access"))(handler)

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		logger.Info("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
