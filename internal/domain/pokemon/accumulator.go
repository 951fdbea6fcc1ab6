package pokemon

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	loadTracer          = otel.Tracer("pokedex/pokemon")
	loadMeter           = otel.Meter("pokedex/pokemon")
	pageLoadTotal, _    = loadMeter.Int64Counter("pokedex.page_load.total", metric.WithDescription("Page loads by status"))
	pageLoadDuration, _ = loadMeter.Float64Histogram("pokedex.page_load.duration", metric.WithDescription("Page load duration in seconds"), metric.WithUnit("s"))
	pokemonAccepted, _  = loadMeter.Int64Counter("pokedex.pokemon.accepted", metric.WithDescription("Pokemon appended to a collection"))
)

// Accumulator loads pages from a Source and merges them into a Collection.
type Accumulator struct {
	source         Source
	maxConcurrency int
	logger         *zap.Logger
}

// NewAccumulator creates an Accumulator that resolves every reference of a
// page at once.
func NewAccumulator(source Source, logger *zap.Logger) *Accumulator {
	return NewAccumulatorWithConcurrency(source, 0, logger)
}

// NewAccumulatorWithConcurrency creates an Accumulator that runs at most
// maxConcurrency resolutions at a time. Zero or less means no limit.
func NewAccumulatorWithConcurrency(source Source, maxConcurrency int, logger *zap.Logger) *Accumulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Accumulator{
		source:         source,
		maxConcurrency: maxConcurrency,
		logger:         logger,
	}
}

// LoadPage fetches the page at cursor, resolves all of its references
// concurrently and merges the result into prev.
//
// The page is all-or-nothing: if the listing or any single resolution fails,
// prev is returned unchanged together with the error.
func (a *Accumulator) LoadPage(ctx context.Context, cursor PageCursor, prev Collection) (Collection, error) {
	ctx, span := loadTracer.Start(ctx, "pokemon.load_page",
		trace.WithAttributes(
			attribute.Int("page.offset", cursor.Offset()),
			attribute.Int("page.limit", PageSize),
		),
	)
	defer span.End()

	start := time.Now()

	resolved, err := a.fetchPage(ctx, cursor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		pageLoadTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "error")))
		pageLoadDuration.Record(ctx, time.Since(start).Seconds())
		a.logger.Warn("page load failed",
			zap.Int("offset", cursor.Offset()),
			zap.Error(err),
		)
		return prev, err
	}

	next := prev.Merge(resolved)
	accepted := next.Len() - prev.Len()

	span.SetAttributes(
		attribute.Int("page.resolved", len(resolved)),
		attribute.Int("page.accepted", accepted),
	)
	pageLoadTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", "success")))
	pageLoadDuration.Record(ctx, time.Since(start).Seconds())
	pokemonAccepted.Add(ctx, int64(accepted))

	a.logger.Info("page loaded",
		zap.Int("offset", cursor.Offset()),
		zap.Int("resolved", len(resolved)),
		zap.Int("accepted", accepted),
		zap.Int("total", next.Len()),
		zap.Duration("duration", time.Since(start)),
	)

	return next, nil
}

// fetchPage lists one page and resolves every reference, returning the
// Pokemon in source order.
func (a *Accumulator) fetchPage(ctx context.Context, cursor PageCursor) ([]Pokemon, error) {
	refs, err := a.source.ListPage(ctx, cursor.Offset(), PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w at offset %d: %w", ErrListPage, cursor.Offset(), err)
	}

	results := make([]Pokemon, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	for i, ref := range refs {
		g.Go(func() error {
			p, err := a.source.Resolve(gctx, ref)
			if err != nil {
				return fmt.Errorf("%w %q: %w", ErrResolve, ref.Name, err)
			}
			if p == nil {
				return fmt.Errorf("%w %q: empty record", ErrResolve, ref.Name)
			}
			results[i] = *p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
