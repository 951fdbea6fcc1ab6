package pokeapi

import (
	"context"
)

// ClientInterface defines the methods required from the PokeAPI client
type ClientInterface interface {
	ListPokemon(ctx context.Context, offset, limit int) (*ListResponse, error)
	GetPokemon(ctx context.Context, url string) (*PokemonResponse, error)
}
