package pokemon

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MockSource implements Source for testing
type MockSource struct {
	ListPageFunc func(ctx context.Context, offset, limit int) ([]Reference, error)
	ResolveFunc  func(ctx context.Context, ref Reference) (*Pokemon, error)
}

func (m *MockSource) ListPage(ctx context.Context, offset, limit int) ([]Reference, error) {
	if m.ListPageFunc != nil {
		return m.ListPageFunc(ctx, offset, limit)
	}
	return nil, nil
}

func (m *MockSource) Resolve(ctx context.Context, ref Reference) (*Pokemon, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ref)
	}
	return nil, nil
}

// pagedSource serves ids [offset+1, offset+limit] from a catalogue of total
// Pokemon, resolving each reference from the id in its URL.
func pagedSource(total int) *MockSource {
	return &MockSource{
		ListPageFunc: func(ctx context.Context, offset, limit int) ([]Reference, error) {
			var refs []Reference
			for id := offset + 1; id <= offset+limit && id <= total; id++ {
				refs = append(refs, refFor(id))
			}
			return refs, nil
		},
		ResolveFunc: func(ctx context.Context, ref Reference) (*Pokemon, error) {
			id, err := idFromURL(ref.URL)
			if err != nil {
				return nil, err
			}
			p := pokemonFor(id)
			return &p, nil
		},
	}
}

func refFor(id int) Reference {
	return Reference{
		Name: fmt.Sprintf("mon-%d", id),
		URL:  fmt.Sprintf("https://pokeapi.test/api/v2/pokemon/%d/", id),
	}
}

func idFromURL(url string) (int, error) {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	return strconv.Atoi(parts[len(parts)-1])
}

func pokemonFor(id int) Pokemon {
	return Pokemon{
		ID:    id,
		Name:  fmt.Sprintf("mon-%d", id),
		Stats: []Stat{{Name: "hp", BaseStat: id}},
		Types: []string{"normal"},
	}
}

func ids(items []Pokemon) []int {
	out := make([]int, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}
