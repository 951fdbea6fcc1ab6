package main

import (
	"go.uber.org/zap"

	"pokedex/internal/domain/pokemon"
	"pokedex/internal/infrastructure/pokeapi"
	httphandlers "pokedex/internal/interfaces/http"
	"pokedex/internal/interfaces/scheduler"
	"pokedex/internal/shared/config"
	"pokedex/internal/web"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	PokedexHandler *httphandlers.PokedexHandler
	Sessions       *httphandlers.SessionStore
	Janitor        *scheduler.Janitor
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	client := pokeapi.NewClient(cfg.PokeAPI.BaseURL, cfg.PokeAPI.Timeout)
	acc := pokemon.NewAccumulatorWithConcurrency(client, cfg.PokeAPI.MaxConcurrency, logger.Named("accumulator"))
	sessions := httphandlers.NewSessionStore(acc, cfg.Session.TTL)

	logger.Info("dependencies initialized",
		zap.String("pokeapi_base_url", cfg.PokeAPI.BaseURL),
		zap.Duration("pokeapi_timeout", cfg.PokeAPI.Timeout),
		zap.Int("max_concurrency", cfg.PokeAPI.MaxConcurrency),
		zap.Duration("session_ttl", cfg.Session.TTL),
	)

	return &Dependencies{
		PokedexHandler: httphandlers.NewPokedexHandler(sessions, tmpl, logger.Named("http")),
		Sessions:       sessions,
		Janitor:        scheduler.NewJanitor(sessions, cfg.Session.SweepInterval, logger.Named("janitor")),
	}, nil
}
