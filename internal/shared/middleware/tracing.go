package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// UnmatchedRoute labels requests that never reached a registered pattern:
// unknown paths, wrong methods and hosts rejected before routing.
const UnmatchedRoute = "unmatched"

var (
	routeTracer = otel.Tracer("pokedex/http")
	routeMeter  = otel.Meter("pokedex/http")
)

var routeDuration, _ = routeMeter.Float64Histogram("pokedex.http.route.duration",
	metric.WithDescription("Time spent in a routed handler in seconds"),
	metric.WithUnit("s"),
)

var routeRequestTotal, _ = routeMeter.Int64Counter("pokedex.http.route.total",
	metric.WithDescription("Requests per matched route and status"),
)

// Tracing records one internal span and one metric point per request,
// labelled with the ServeMux pattern that handled it. The server span itself
// belongs to the Telemetry middleware.
func Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := routeTracer.Start(r.Context(), "route",
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		start := time.Now()
		wrapped := wrapResponseWriter(w)
		// The mux writes the matched pattern into this request.
		routed := r.WithContext(ctx)
		next.ServeHTTP(wrapped, routed)

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routeLabel(routed)

		span.SetName(route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}

		attrs := metric.WithAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		routeDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		routeRequestTotal.Add(ctx, 1, attrs)
	})
}

// routeLabel returns the matched pattern, never the raw path, so the label
// set stays bounded by the routes registered on the mux.
func routeLabel(r *http.Request) string {
	if r.Pattern == "" {
		return UnmatchedRoute
	}
	return r.Pattern
}
