package planstore

import (
	"context"
	"errors"

	"github.com/yuksel-arslan/SmartCon360-sub007/core/model"
)

// TieredStore fronts a durable store with the bounded memory cache so that
// repeated buffer/flowline lookups for the same plan id skip the database.
type TieredStore struct {
	cache   *MemoryStore
	durable Store
}

// NewTieredStore combines cache and durable. durable may be nil, in which
// case the cache is authoritative.
func NewTieredStore(cache *MemoryStore, durable Store) *TieredStore {
	return &TieredStore{cache: cache, durable: durable}
}

func (s *TieredStore) Put(ctx context.Context, p *model.Plan) error {
	if err := s.cache.Put(ctx, p); err != nil {
		return err
	}
	if s.durable != nil {
		return s.durable.Put(ctx, p)
	}
	return nil
}

func (s *TieredStore) Get(ctx context.Context, id string) (*model.Plan, error) {
	p, err := s.cache.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) || s.durable == nil {
		return nil, err
	}
	p, err = s.durable.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Put(ctx, p)
	return p, nil
}

func (s *TieredStore) Delete(ctx context.Context, id string) error {
	cacheErr := s.cache.Delete(ctx, id)
	if s.durable == nil {
		return cacheErr
	}
	durableErr := s.durable.Delete(ctx, id)
	// Deleted if either tier held the plan.
	if durableErr == nil || cacheErr == nil {
		return nil
	}
	return durableErr
}

func (s *TieredStore) Close() error {
	if s.durable != nil {
		return s.durable.Close()
	}
	return nil
}
