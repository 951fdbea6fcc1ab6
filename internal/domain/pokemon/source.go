package pokemon

import (
	"context"
)

// Source is the external paginated data source.
type Source interface {
	ListPage(ctx context.Context, offset, limit int) ([]Reference, error)
	Resolve(ctx context.Context, ref Reference) (*Pokemon, error)
}
