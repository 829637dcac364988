package service

import (
	"context"
	"sort"
	"time"

	"mymesh/domain"

	"github.com/go-kit/log/level"
)

// Sweep compares the store with the instances this registry has seen and emits an expired event for every
// instance whose lease ran out since the previous sweep. Instances registered through another registry
// replica sharing the store are picked up for the next comparison.
func (r *Registry) Sweep(ctx context.Context) error {
	r.mu.Lock()
	current, err := r.listStore(ctx)
	if err != nil {
		r.mu.Unlock()
		return err
	}

	seen := make(map[string]bool, len(current))
	for _, inst := range current {
		seen[inst.InstanceID] = true
	}
	var expired []domain.Instance
	for id, inst := range r.known {
		if !seen[id] {
			expired = append(expired, inst)
			delete(r.known, id)
		}
	}
	for _, inst := range current {
		r.rememberLocked(inst)
	}
	r.mu.Unlock()

	r.metrics.instances(len(current))
	sort.Slice(expired, func(i, j int) bool { return expired[i].InstanceID < expired[j].InstanceID })
	for _, inst := range expired {
		level.Info(r.logger).Log("msg", "instance lease expired", "app", inst.App, "instance_id", inst.InstanceID)
		r.notify(ctx, domain.RegistryEvent{Type: domain.EventExpired, ServiceID: inst.App, InstanceID: inst.InstanceID})
	}
	return nil
}

// RunExpirySweeper calls Sweep every interval until ctx is done. Sweep errors are logged.
func (r *Registry) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Sweep(ctx); err != nil {
				level.Error(r.logger).Log("msg", "expiry sweep failed", "err", err)
			}
		}
	}
}
