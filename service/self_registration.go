package service

import (
	"context"
	"sync"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// DefaultHeartbeatInterval is how often a registered instance renews its lease when no interval is configured.
const DefaultHeartbeatInterval = 30 * time.Second

// SelfRegistration keeps one instance registered: it registers on Start (retrying every interval until the
// registry accepts it), renews the lease every interval, registers again when the registry has forgotten the
// instance, and unregisters on Stop.
type SelfRegistration struct {
	client   interfaces.RegistrationClient
	instance domain.Instance
	interval time.Duration
	logger   log.Logger

	mu         sync.Mutex
	registered bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// NewSelfRegistration creates a SelfRegistration for instance. interval <= 0 means DefaultHeartbeatInterval.
// Panics on nil client or logger and on an instance without id.
func NewSelfRegistration(client interfaces.RegistrationClient, instance domain.Instance, interval time.Duration, logger log.Logger) *SelfRegistration {
	helpers.StrPanic(instance.InstanceID, "service.self_registration.go: instance id is required")
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	return &SelfRegistration{
		client:   helpers.NilPanic(client, "service.self_registration.go: client is required"),
		instance: instance,
		interval: interval,
		logger:   log.With(helpers.NilPanic(logger, "service.self_registration.go: logger is required"), "component", "self_registration", "instance_id", instance.InstanceID),
	}
}

// Start registers the instance and starts the heartbeat loop. The loop ends when ctx is done or Stop is called.
// Calling Start twice is a no-op.
func (s *SelfRegistration) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)
}

// Registered reports whether the last exchange with the registry left the instance registered.
func (s *SelfRegistration) Registered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registered
}

// Stop ends the loop and unregisters the instance if it is registered. ctx bounds the unregister call.
func (s *SelfRegistration) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()
	<-done

	if !s.Registered() {
		return nil
	}
	if err := s.client.Unregister(ctx, s.instance.InstanceID); err != nil {
		level.Warn(s.logger).Log("msg", "unregister failed", "err", err)
		return err
	}
	s.setRegistered(false)
	level.Info(s.logger).Log("msg", "unregistered")
	return nil
}

func (s *SelfRegistration) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick registers when not registered yet, otherwise sends a heartbeat.
func (s *SelfRegistration) tick(ctx context.Context) {
	callCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	if !s.Registered() {
		s.register(callCtx)
		return
	}
	err := s.client.Heartbeat(callCtx, s.instance.InstanceID)
	switch {
	case err == nil:
		level.Debug(s.logger).Log("msg", "heartbeat sent")
	case IsEntityNotFoundError(err):
		level.Warn(s.logger).Log("msg", "registry lost the instance, registering again")
		s.setRegistered(false)
		s.register(callCtx)
	default:
		level.Warn(s.logger).Log("msg", "heartbeat failed", "err", err)
	}
}

func (s *SelfRegistration) register(ctx context.Context) {
	if err := s.client.Register(ctx, s.instance); err != nil {
		level.Warn(s.logger).Log("msg", "registration failed, will retry", "err", err, "retry_in", s.interval)
		return
	}
	s.setRegistered(true)
	level.Info(s.logger).Log("msg", "registered", "app", s.instance.App)
}

func (s *SelfRegistration) setRegistered(v bool) {
	s.mu.Lock()
	s.registered = v
	s.mu.Unlock()
}
