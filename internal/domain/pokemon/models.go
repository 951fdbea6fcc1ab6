package pokemon

import (
	"errors"
	"fmt"
	"strings"
)

// PageSize is the number of references requested per page.
const PageSize = 20

var (
	ErrListPage       = errors.New("failed to fetch pokemon page")
	ErrResolve        = errors.New("failed to resolve pokemon")
	ErrLoadInProgress = errors.New("a page load is already in progress")
)

// Stat is one named base stat of a Pokemon.
type Stat struct {
	Name     string `json:"name"`
	BaseStat int    `json:"baseStat"`
}

// Pokemon is a fully resolved creature record. ID is its identity.
type Pokemon struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Stats    []Stat   `json:"stats"`
	Types    []string `json:"types"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

// Reference points at a Pokemon that has not been resolved yet.
type Reference struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PageCursor is the offset into the paginated source list.
type PageCursor int

// Offset returns the cursor as a request offset.
func (c PageCursor) Offset() int {
	return int(c)
}

// Next returns the cursor one page further on.
func (c PageCursor) Next() PageCursor {
	return c + PageSize
}

// LoadState is the explicit loading state rendered by every view.
type LoadState int

const (
	Idle LoadState = iota
	Loading
)

func (s LoadState) String() string {
	switch s {
	case Loading:
		return "loading"
	default:
		return "idle"
	}
}

// MarshalText renders the state as "idle" or "loading" in JSON payloads.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names written by MarshalText and rejects anything
// else, so JSON listings decode back into a LoadState.
func (s *LoadState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "loading":
		*s = Loading
	default:
		return fmt.Errorf("unknown load state %q", text)
	}
	return nil
}

// matchesTerm reports whether the display name contains term, ignoring case.
func (p *Pokemon) matchesTerm(term string) bool {
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(term))
}
