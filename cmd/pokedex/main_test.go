package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pokedex/internal/domain/pokemon"
)

type stubSource struct {
	total    int
	failFrom int
}

func (s *stubSource) ListPage(ctx context.Context, offset, limit int) ([]pokemon.Reference, error) {
	if s.failFrom > 0 && offset >= s.failFrom {
		return nil, errors.New("upstream down")
	}
	var refs []pokemon.Reference
	for id := offset + 1; id <= offset+limit && id <= s.total; id++ {
		refs = append(refs, pokemon.Reference{Name: fmt.Sprintf("mon-%d", id), URL: fmt.Sprint(id)})
	}
	return refs, nil
}

func (s *stubSource) Resolve(ctx context.Context, ref pokemon.Reference) (*pokemon.Pokemon, error) {
	var id int
	fmt.Sscan(ref.URL, &id)
	return &pokemon.Pokemon{ID: id, Name: ref.Name, Types: []string{"fire"}}, nil
}

func newStubSession(src *stubSource) *pokemon.Session {
	return pokemon.NewSession(pokemon.NewAccumulator(src, zap.NewNop()))
}

func TestRunList(t *testing.T) {
	tests := []struct {
		name      string
		source    *stubSource
		pages     int
		search    string
		wantCount string
		wantErr   bool
	}{
		{name: "Single page", source: &stubSource{total: 100}, pages: 1, wantCount: "20 Pokémon"},
		{name: "Three pages", source: &stubSource{total: 100}, pages: 3, wantCount: "60 Pokémon"},
		{name: "Search", source: &stubSource{total: 100}, pages: 2, search: "MON-1", wantCount: "11 Pokémon"},
		{name: "Short catalogue", source: &stubSource{total: 25}, pages: 3, wantCount: "25 Pokémon"},
		{name: "Failure keeps earlier pages", source: &stubSource{total: 100, failFrom: 20}, pages: 3, wantCount: "20 Pokémon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runList(context.Background(), &out, newStubSession(tt.source), tt.pages, tt.search)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, pokemon.ErrListPage)
			} else {
				require.NoError(t, err)
			}
			assert.Contains(t, out.String(), tt.wantCount)
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["browse"])
	assert.True(t, names["list"])
	assert.Equal(t, "1", listCmd.Flags().Lookup("pages").DefValue)
}
