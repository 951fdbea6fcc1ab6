package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"pokedex/internal/domain/pokemon"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2"
	pokemonPath    = "/pokemon"
)

// Client handles communication with the PokeAPI
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Ensure Client implements ClientInterface and the domain Source
var (
	_ ClientInterface = (*Client)(nil)
	_ pokemon.Source  = (*Client)(nil)
)

// NewClient creates a new PokeAPI client. A zero timeout means requests are
// never cut short by the client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// ListResponse represents one page of the pokemon listing
type ListResponse struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []NamedAPIResource `json:"results"`
}

// NamedAPIResource is a name plus the URL that resolves it
type NamedAPIResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonResponse represents a single pokemon record
type PokemonResponse struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Stats   []StatEntry `json:"stats"`
	Types   []TypeSlot  `json:"types"`
	Sprites Sprites     `json:"sprites"`
}

// StatEntry is one base stat of a pokemon
type StatEntry struct {
	BaseStat int              `json:"base_stat"`
	Effort   int              `json:"effort"`
	Stat     NamedAPIResource `json:"stat"`
}

// TypeSlot is one of the pokemon's types, ordered by slot
type TypeSlot struct {
	Slot int              `json:"slot"`
	Type NamedAPIResource `json:"type"`
}

// Sprites holds the image references of a pokemon
type Sprites struct {
	FrontDefault *string                  `json:"front_default"`
	Other        map[string]SpriteVariant `json:"other"`
}

// SpriteVariant is one of the alternative artwork sets
type SpriteVariant struct {
	FrontDefault *string `json:"front_default"`
}

// ImageURL returns the official artwork, falling back to the default sprite.
// Returns "" when neither is available.
func (s *Sprites) ImageURL() string {
	if art, ok := s.Other["official-artwork"]; ok && art.FrontDefault != nil && *art.FrontDefault != "" {
		return *art.FrontDefault
	}
	if s.FrontDefault != nil {
		return *s.FrontDefault
	}
	return ""
}

// ToDomain converts the API record into a domain Pokemon.
func (p *PokemonResponse) ToDomain() *pokemon.Pokemon {
	stats := make([]pokemon.Stat, 0, len(p.Stats))
	for _, s := range p.Stats {
		stats = append(stats, pokemon.Stat{Name: s.Stat.Name, BaseStat: s.BaseStat})
	}

	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}

	return &pokemon.Pokemon{
		ID:       p.ID,
		Name:     p.Name,
		Stats:    stats,
		Types:    types,
		ImageURL: p.Sprites.ImageURL(),
	}
}

// ListPokemon fetches one page of pokemon references
func (c *Client) ListPokemon(ctx context.Context, offset, limit int) (*ListResponse, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var listResp ListResponse
	if err := c.getJSON(ctx, c.baseURL+pokemonPath+"?"+query.Encode(), &listResp); err != nil {
		return nil, err
	}
	return &listResp, nil
}

// GetPokemon fetches a full pokemon record from its resource URL
func (c *Client) GetPokemon(ctx context.Context, resourceURL string) (*PokemonResponse, error) {
	var pokemonResp PokemonResponse
	if err := c.getJSON(ctx, resourceURL, &pokemonResp); err != nil {
		return nil, err
	}
	return &pokemonResp, nil
}

// ListPage implements pokemon.Source
func (c *Client) ListPage(ctx context.Context, offset, limit int) ([]pokemon.Reference, error) {
	resp, err := c.ListPokemon(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	refs := make([]pokemon.Reference, 0, len(resp.Results))
	for _, r := range resp.Results {
		refs = append(refs, pokemon.Reference{Name: r.Name, URL: r.URL})
	}
	return refs, nil
}

// Resolve implements pokemon.Source
func (c *Client) Resolve(ctx context.Context, ref pokemon.Reference) (*pokemon.Pokemon, error) {
	resp, err := c.GetPokemon(ctx, ref.URL)
	if err != nil {
		return nil, err
	}
	return resp.ToDomain(), nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
