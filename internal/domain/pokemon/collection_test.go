package pokemon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_ZeroValue(t *testing.T) {
	var c Collection

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Contains(1))
	assert.Empty(t, c.Items())
	assert.Empty(t, c.Filter(""))
}

func TestCollection_MergeAppendsInOrder(t *testing.T) {
	c := NewCollection(pokemonFor(3), pokemonFor(1))

	next := c.Merge([]Pokemon{pokemonFor(7), pokemonFor(2)})

	if diff := cmp.Diff([]int{3, 1, 7, 2}, ids(next.Items())); diff != "" {
		t.Errorf("merged order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollection_MergeSkipsExistingIdentities(t *testing.T) {
	c := NewCollection(pokemonFor(1), pokemonFor(2))

	renamed := pokemonFor(2)
	renamed.Name = "impostor"
	next := c.Merge([]Pokemon{renamed, pokemonFor(3)})

	require.Equal(t, 3, next.Len())
	assert.Equal(t, []int{1, 2, 3}, ids(next.Items()))
	assert.Equal(t, "mon-2", next.Items()[1].Name, "existing record must not be replaced")
}

func TestCollection_MergeDeduplicatesWithinBatch(t *testing.T) {
	next := Collection{}.Merge([]Pokemon{pokemonFor(5), pokemonFor(5), pokemonFor(6)})

	assert.Equal(t, []int{5, 6}, ids(next.Items()))
}

func TestCollection_MergeDoesNotMutateReceiver(t *testing.T) {
	c := NewCollection(pokemonFor(1))

	_ = c.Merge([]Pokemon{pokemonFor(2), pokemonFor(3)})

	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Contains(2))
	assert.Equal(t, []int{1}, ids(c.Items()))
}

func TestCollection_ItemsReturnsCopy(t *testing.T) {
	c := NewCollection(pokemonFor(1))

	items := c.Items()
	items[0].Name = "changed"

	assert.Equal(t, "mon-1", c.Items()[0].Name)
}

func TestCollection_MergeNeverShrinks(t *testing.T) {
	c := Collection{}
	batches := [][]Pokemon{
		{pokemonFor(1), pokemonFor(2)},
		{},
		{pokemonFor(2), pokemonFor(1)},
		{pokemonFor(3), pokemonFor(1), pokemonFor(4)},
	}

	for _, batch := range batches {
		next := c.Merge(batch)
		require.GreaterOrEqual(t, next.Len(), c.Len())

		seen := map[int]bool{}
		for _, p := range next.Items() {
			require.False(t, seen[p.ID], "duplicate id %d", p.ID)
			seen[p.ID] = true
		}
		c = next
	}

	assert.Equal(t, []int{1, 2, 3, 4}, ids(c.Items()))
}

func TestCollection_Filter(t *testing.T) {
	c := NewCollection(
		Pokemon{ID: 25, Name: "pikachu"},
		Pokemon{ID: 26, Name: "raichu"},
		Pokemon{ID: 172, Name: "pichu"},
		Pokemon{ID: 1, Name: "bulbasaur"},
	)

	tests := []struct {
		name string
		term string
		want []int
	}{
		{name: "empty term returns everything in order", term: "", want: []int{25, 26, 172, 1}},
		{name: "substring match", term: "chu", want: []int{25, 26, 172}},
		{name: "case insensitive", term: "PIKA", want: []int{25}},
		{name: "mixed case", term: "BulBa", want: []int{1}},
		{name: "no match", term: "mew", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Filter(tt.term)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("Filter(%q) mismatch (-want +got):\n%s", tt.term, diff)
			}
		})
	}

	assert.Equal(t, 4, c.Len(), "filtering must not change the collection")
}
