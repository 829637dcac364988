// Package etcdregistry stores registry entries in etcd. Every entry is attached to its own lease so that an
// instance that stops sending heartbeats disappears when the lease runs out. A rewrite attaches a fresh lease
// and revokes the one it replaces, so each key holds at most one live lease.
//
//	Key:   {prefix}/{key}
//	Value: JSON-encoded entry
package etcdregistry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mymesh/service"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// DefaultDialTimeout bounds the initial connection to etcd.
const DefaultDialTimeout = 5 * time.Second

type etcdCache[T any] struct {
	kv        clientv3.KV
	lease     clientv3.Lease
	watcher   clientv3.Watcher
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

// NewClient connects to the given etcd endpoints.
func NewClient(endpoints []string) (*clientv3.Client, error) {
	if len(endpoints) == 0 {
		return nil, fmt.Errorf("etcd endpoints are required")
	}
	return clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: DefaultDialTimeout,
	})
}

// NewCache creates etcd implementation of generic cache interface.
func NewCache[T any](client *clientv3.Client, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *etcdCache[T] {
	return newCache[T](client.KV, client.Lease, client.Watcher, prefix, marshal, unmarshal)
}

func newCache[T any](kv clientv3.KV, lease clientv3.Lease, watcher clientv3.Watcher, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *etcdCache[T] {
	var zero T
	return &etcdCache[T]{
		kv:        kv,
		lease:     lease,
		watcher:   watcher,
		prefix:    strings.TrimSuffix(prefix, "/") + "/",
		marshal:   marshal,
		unmarshal: unmarshal,
		zero:      zero,
	}
}

func (c *etcdCache[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	bytes, err := c.marshal(item)
	if err != nil {
		return service.NewInternalServerError("etcd marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	opts := []clientv3.OpOption{clientv3.WithPrevKV()}
	var leaseID clientv3.LeaseID
	if ttlMs > 0 {
		lease, err := c.lease.Grant(ctx, leaseSeconds(ttlMs))
		if err != nil {
			return service.NewInternalServerError("etcd grant lease error", fmt.Errorf("can't grant lease for key '%s', err: %w", key, err))
		}
		leaseID = lease.ID
		opts = append(opts, clientv3.WithLease(leaseID))
	}

	resp, err := c.kv.Put(ctx, c.generateKey(key), string(bytes), opts...)
	if err != nil {
		c.revoke(ctx, leaseID)
		return service.NewInternalServerError("etcd write key error", fmt.Errorf("can't write item of type %T to etcd (key='%s'), err: %w", item, key, err))
	}
	if resp.PrevKv != nil && clientv3.LeaseID(resp.PrevKv.Lease) != leaseID {
		c.revoke(ctx, clientv3.LeaseID(resp.PrevKv.Lease))
	}
	return nil
}

func (c *etcdCache[T]) ReadValue(ctx context.Context, key string) (T, error) {
	resp, err := c.kv.Get(ctx, c.generateKey(key))
	if err != nil {
		return c.zero, service.NewInternalServerError("etcd read key error", fmt.Errorf("can't read item of type %T from etcd (key='%s'), err: %w", c.zero, key, err))
	}
	if len(resp.Kvs) == 0 {
		return c.zero, service.NewEntityNotFoundError("Entity not found", nil)
	}
	item, err := c.unmarshal(resp.Kvs[0].Value)
	if err != nil {
		return c.zero, service.NewInternalServerError("etcd unmarshal item error", fmt.Errorf("can't unmarshal item of type %T (key='%s'), err: %w", c.zero, key, err))
	}
	return item, nil
}

// ListAllValues returns all entries under the prefix; malformed entries are skipped.
func (c *etcdCache[T]) ListAllValues(ctx context.Context) ([]T, error) {
	resp, err := c.kv.Get(ctx, c.prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, service.NewInternalServerError("etcd get keys error", fmt.Errorf("etcd get prefix error, err: %w", err))
	}

	items := make([]T, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		item, err := c.unmarshal(kv.Value)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, service.NewEntityNotFoundError("Entity not found", nil)
	}
	return items, nil
}

// DeleteValue removes the entry and revokes its lease.
func (c *etcdCache[T]) DeleteValue(ctx context.Context, key string) error {
	resp, err := c.kv.Delete(ctx, c.generateKey(key), clientv3.WithPrevKV())
	if err != nil {
		return service.NewInternalServerError("etcd delete key error", fmt.Errorf("can't delete item of type %T from etcd (key='%s'), err: %w", c.zero, key, err))
	}
	for _, kv := range resp.PrevKvs {
		c.revoke(ctx, clientv3.LeaseID(kv.Lease))
	}
	return nil
}

// revoke drops a lease that no key needs anymore. Failures are ignored: the lease still runs out on its own.
func (c *etcdCache[T]) revoke(ctx context.Context, id clientv3.LeaseID) {
	if id == clientv3.NoLease {
		return
	}
	_, _ = c.lease.Revoke(ctx, id)
}

// WatchDeletes calls onDelete with the key of every entry removed under the prefix, including lease expiry,
// until ctx is done.
func (c *etcdCache[T]) WatchDeletes(ctx context.Context, onDelete func(key string)) {
	for resp := range c.watcher.Watch(ctx, c.prefix, clientv3.WithPrefix(), clientv3.WithFilterPut()) {
		for _, ev := range resp.Events {
			if ev.Type == clientv3.EventTypeDelete {
				onDelete(strings.TrimPrefix(string(ev.Kv.Key), c.prefix))
			}
		}
	}
}

func (c *etcdCache[T]) generateKey(key string) string {
	return c.prefix + key
}

// leaseSeconds converts a TTL in milliseconds to whole lease seconds, rounding up, minimum one.
func leaseSeconds(ttlMs int) int64 {
	s := (int64(ttlMs) + 999) / 1000
	if s < 1 {
		return 1
	}
	return s
}
