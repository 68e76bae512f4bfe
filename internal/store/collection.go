package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// collection is a typed view over one bucket holding a JSON array of T.
// Every operation reads the whole array; writes replace it whole.
type collection[T any] struct {
	s      *Store
	bucket string
	key    func(*T) string
}

func newCollection[T any](s *Store, bucket string, key func(*T) string) collection[T] {
	return collection[T]{s: s, bucket: bucket, key: key}
}

// load decodes the bucket. A bucket that was never written is empty;
// undecodable content is returned as an error and left untouched.
func (c collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.s.kv.Load(ctx, c.bucket)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.bucket, err)
	}
	return items, nil
}

func (c collection[T]) store(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.bucket, err)
	}
	return c.s.kv.Save(ctx, c.bucket, data)
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	return c.load(ctx)
}

func (c collection[T]) filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out, nil
}

// first returns the first matching item, or nil.
func (c collection[T]) first(ctx context.Context, match func(*T) bool) (*T, error) {
	items, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(&items[i]) {
			return &items[i], nil
		}
	}
	return nil, nil
}

func (c collection[T]) byKey(ctx context.Context, key string) (*T, error) {
	return c.first(ctx, func(v *T) bool { return c.key(v) == key })
}

// update runs a read-modify-write cycle under the store's write lock.
func (c collection[T]) update(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.store(ctx, items)
}

// upsert replaces the item with the same key, or appends it.
func (c collection[T]) upsert(ctx context.Context, v T) error {
	k := c.key(&v)
	return c.update(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if c.key(&items[i]) == k {
				items[i] = v
				return items, nil
			}
		}
		return append(items, v), nil
	})
}

// prepend inserts v at the head, keeping most-recent-first order.
func (c collection[T]) prepend(ctx context.Context, v T) error {
	return c.update(ctx, func(items []T) ([]T, error) {
		return append([]T{v}, items...), nil
	})
}

func (c collection[T]) replaceAll(ctx context.Context, items []T) error {
	return c.update(ctx, func([]T) ([]T, error) {
		return items, nil
	})
}
