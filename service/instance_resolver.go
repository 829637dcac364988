package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RegistryHolder implements interfaces.RegistryAccessor around a client that may be set later.
type RegistryHolder struct {
	mu     sync.RWMutex
	client interfaces.RegistryClient
}

// NewRegistryHolder returns a holder for client. A nil client is allowed: lookups then fail fatally until Set is called.
func NewRegistryHolder(client interfaces.RegistryClient) *RegistryHolder {
	return &RegistryHolder{client: client}
}

// Client returns the current registry client or nil.
func (h *RegistryHolder) Client() interfaces.RegistryClient {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.client
}

// Set replaces the registry client.
func (h *RegistryHolder) Set(client interfaces.RegistryClient) {
	h.mu.Lock()
	h.client = client
	h.mu.Unlock()
}

// ResolverOption configures an InstanceResolver.
type ResolverOption func(*InstanceResolver)

// WithResolverMetrics records lookup outcomes in m.
func WithResolverMetrics(m *Metrics) ResolverOption {
	return func(r *InstanceResolver) { r.metrics = m }
}

// WithResolverTracer overrides the tracer used for lookup spans.
func WithResolverTracer(t trace.Tracer) ResolverOption {
	return func(r *InstanceResolver) { r.tracer = t }
}

// InstanceResolver finds a usable instance of a service in the registry.
// Lookup makes one synchronous attempt; Resolve keeps attempting on its own goroutine until an instance
// is found or a fatal failure occurs, reporting through callbacks.
type InstanceResolver struct {
	registry interfaces.RegistryAccessor
	logger   log.Logger
	metrics  *Metrics
	tracer   trace.Tracer
}

// NewInstanceResolver creates a resolver over registry. Panics on nil registry or logger.
func NewInstanceResolver(registry interfaces.RegistryAccessor, logger log.Logger, opts ...ResolverOption) *InstanceResolver {
	r := &InstanceResolver{
		registry: helpers.NilPanic(registry, "service.instance_resolver.go: registry is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.instance_resolver.go: logger is required"), "component", "instance_resolver"),
		tracer:   otel.Tracer("mymesh/service"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lookup makes a single attempt to find the first instance of serviceID.
//
// Failures are classified:
// registry client not configured: registry_unavailable, fatal;
// application unknown: not_found, transient;
// application without instances: no_instances, transient;
// registry errors coded not_found, no_instances or registry_unavailable: transient;
// any other registry error: fatal.
func (r *InstanceResolver) Lookup(ctx context.Context, serviceID string) LookupOutcome {
	ctx, span := r.tracer.Start(ctx, "InstanceResolver.Lookup", trace.WithAttributes(attribute.String("service.id", serviceID)))
	defer span.End()

	outcome := r.lookup(ctx, serviceID)
	if outcome.Err != nil {
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, ToMyErrorCode(outcome.Err))
		span.SetAttributes(attribute.Bool("lookup.fatal", outcome.Fatal))
	}
	return outcome
}

func (r *InstanceResolver) lookup(ctx context.Context, serviceID string) LookupOutcome {
	client := r.registry.Client()
	if client == nil {
		return LookupOutcome{Err: NewRegistryUnavailableError("registry client is not configured", nil), Fatal: true}
	}
	app, err := client.GetApplication(ctx, serviceID)
	if err != nil {
		return LookupOutcome{Err: err, Fatal: !IsTransient(err)}
	}
	if app == nil {
		return LookupOutcome{Err: NewNotFoundError(fmt.Sprintf("service '%s' is not registered", serviceID), nil)}
	}
	if len(app.Instances) == 0 {
		return LookupOutcome{Err: NewNoInstancesError(fmt.Sprintf("service '%s' has no registered instances", serviceID), nil)}
	}
	return LookupOutcome{Instance: app.Instances[0]}
}

// Resolution tracks one Resolve call.
type Resolution struct {
	serviceID string
	done      chan struct{}

	mu       sync.Mutex
	state    ResolverState
	attempts int
}

// Done is closed once no further attempts will run: after the terminal callback has returned,
// or after ctx passed to Resolve has been cancelled.
func (res *Resolution) Done() <-chan struct{} {
	return res.done
}

// State returns the current state.
func (res *Resolution) State() ResolverState {
	res.mu.Lock()
	defer res.mu.Unlock()
	return res.state
}

// Attempts returns the number of lookups made so far.
func (res *Resolution) Attempts() int {
	res.mu.Lock()
	defer res.mu.Unlock()
	return res.attempts
}

// Resolve looks serviceID up repeatedly: first after policy.InitialDelay, then every policy.Period.
// Every transient failure is reported as onFailure(err, false) and the next attempt follows.
// The first success calls onSuccess once and stops; a fatal failure calls onFailure(err, true) once and stops.
// Callbacks run on the resolution's own goroutine, so a slow callback delays only this resolution.
// Cancelling ctx stops further attempts without invoking a callback. Panics on nil callbacks.
func (r *InstanceResolver) Resolve(
	ctx context.Context,
	serviceID string,
	onSuccess func(domain.Instance),
	onFailure func(err error, fatal bool),
	policy domain.RetryPolicy,
) *Resolution {
	helpers.NilPanic(onSuccess, "service.instance_resolver.go: onSuccess is required")
	helpers.NilPanic(onFailure, "service.instance_resolver.go: onFailure is required")
	res := &Resolution{serviceID: serviceID, done: make(chan struct{})}
	go r.run(ctx, res, onSuccess, onFailure, policy.Normalized())
	return res
}

func (r *InstanceResolver) run(
	ctx context.Context,
	res *Resolution,
	onSuccess func(domain.Instance),
	onFailure func(err error, fatal bool),
	policy domain.RetryPolicy,
) {
	defer close(res.done)

	timer := time.NewTimer(policy.InitialDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	ticker := time.NewTicker(policy.Period)
	defer ticker.Stop()
	for {
		if r.attempt(ctx, res, onSuccess, onFailure, policy.Period) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// attempt runs one lookup, applies the transition and invokes the requested callback.
// Returns true when the resolution reached a terminal state.
func (r *InstanceResolver) attempt(
	ctx context.Context,
	res *Resolution,
	onSuccess func(domain.Instance),
	onFailure func(err error, fatal bool),
	timeout time.Duration,
) bool {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	outcome := r.Lookup(attemptCtx, res.serviceID)
	cancel()

	res.mu.Lock()
	res.attempts++
	attempts := res.attempts
	next, action := NextResolverState(res.state, outcome)
	res.state = next
	res.mu.Unlock()

	level.Debug(r.logger).Log(
		"msg", "instance lookup attempt",
		"service_id", res.serviceID,
		"attempt", attempts,
		"state", next,
		"err", outcome.Err,
	)

	switch action {
	case ActionDeliverSuccess:
		r.metrics.lookupAttempt("success")
		onSuccess(outcome.Instance)
	case ActionDeliverTransientFailure:
		r.metrics.lookupAttempt("transient")
		onFailure(outcome.Err, false)
	case ActionDeliverFatalFailure:
		r.metrics.lookupAttempt("fatal")
		level.Error(r.logger).Log(
			"msg", "instance lookup failed permanently",
			"service_id", res.serviceID,
			"err", outcome.Err,
		)
		onFailure(outcome.Err, true)
	}
	return next.Terminal()
}
