package service

import (
	"context"
	"net/url"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CacheServicesPath is the router endpoint that drops cached service data.
const CacheServicesPath = "/cache/services"

// DefaultNotificationTimeout bounds each DELETE sent to a router.
const DefaultNotificationTimeout = 5 * time.Second

// InvalidationURL builds the invalidation URL for a router at baseURL.
// An empty serviceID addresses the whole cache.
func InvalidationURL(baseURL, serviceID string) string {
	u := baseURL + CacheServicesPath
	if serviceID != "" {
		u += "/" + url.PathEscape(serviceID)
	}
	return u
}

// BroadcasterOption configures a Broadcaster.
type BroadcasterOption func(*Broadcaster)

// WithNotificationTimeout overrides DefaultNotificationTimeout.
func WithNotificationTimeout(d time.Duration) BroadcasterOption {
	return func(b *Broadcaster) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithBroadcasterMetrics records invalidation results in m.
func WithBroadcasterMetrics(m *Metrics) BroadcasterOption {
	return func(b *Broadcaster) { b.metrics = m }
}

// WithBroadcasterTracer overrides the tracer used for broadcast spans.
func WithBroadcasterTracer(t trace.Tracer) BroadcasterOption {
	return func(b *Broadcaster) { b.tracer = t }
}

// Broadcaster tells every registered router to drop its cached view of a service.
// It implements interfaces.RegistryListener so the registry can drive it directly.
type Broadcaster struct {
	routers interfaces.RouterSource
	deleter interfaces.Deleter
	timeout time.Duration
	logger  log.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewBroadcaster creates a broadcaster. Panics on nil routers, deleter or logger.
func NewBroadcaster(routers interfaces.RouterSource, deleter interfaces.Deleter, logger log.Logger, opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		routers: helpers.NilPanic(routers, "service.broadcaster.go: routers is required"),
		deleter: helpers.NilPanic(deleter, "service.broadcaster.go: deleter is required"),
		timeout: DefaultNotificationTimeout,
		logger:  log.With(helpers.NilPanic(logger, "service.broadcaster.go: logger is required"), "component", "broadcaster"),
		tracer:  otel.Tracer("mymesh/service"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NotifyAll sends DELETE {router}/cache/services[/{serviceID}] to every router, one after another.
// Each call is bounded by the notification timeout only: cancellation of ctx is ignored so that a caller hanging up
// cannot cut the broadcast short. Failures are logged and never stop the remaining routers;
// nothing is retried and no error is returned.
func (b *Broadcaster) NotifyAll(ctx context.Context, serviceID string) {
	ctx, span := b.tracer.Start(context.WithoutCancel(ctx), "Broadcaster.NotifyAll", trace.WithAttributes(attribute.String("service.id", serviceID)))
	defer span.End()

	listCtx, cancel := context.WithTimeout(ctx, b.timeout)
	routers, err := b.routers.Routers(listCtx)
	cancel()
	if err != nil {
		span.RecordError(err)
		level.Error(b.logger).Log("msg", "cannot list routers", "service_id", serviceID, "err", err)
		return
	}
	if len(routers) == 0 {
		level.Debug(b.logger).Log("msg", "no routers to notify", "service_id", serviceID)
		return
	}
	span.SetAttributes(attribute.Int("routers", len(routers)))

	ctx = helpers.WithRequestID(ctx, helpers.RequestIDFromContext(ctx))
	for _, router := range routers {
		b.notify(ctx, router, serviceID)
	}
}

func (b *Broadcaster) notify(ctx context.Context, router domain.Instance, serviceID string) {
	target := InvalidationURL(router.BaseURL(), serviceID)
	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := b.deleter.Delete(callCtx, target); err != nil {
		b.metrics.invalidation("failed")
		level.Warn(b.logger).Log(
			"msg", "router cache invalidation failed",
			"router", router.InstanceID,
			"url", target,
			"request_id", helpers.RequestIDFromContext(ctx),
			"err", err,
		)
		return
	}
	b.metrics.invalidation("ok")
	level.Debug(b.logger).Log("msg", "router cache invalidated", "router", router.InstanceID, "url", target)
}

// OnRegistryChange broadcasts the invalidation for the changed service.
func (b *Broadcaster) OnRegistryChange(ctx context.Context, event domain.RegistryEvent) {
	b.NotifyAll(ctx, event.ServiceID)
}
