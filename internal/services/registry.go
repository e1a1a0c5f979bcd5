package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auction-coordinator/internal/domain"
)

const subscribersKeyPrefix = "subscribers:"

// Registry keeps the list of subscriber endpoints registered under one
// coordinator identity. The list is append-only and deliberately not
// deduplicated: registering the same endpoint twice stores it twice, and a
// dead endpoint stays registered forever.
type Registry struct {
	store domain.KVStore
}

func NewRegistry(store domain.KVStore) *Registry {
	return &Registry{store: store}
}

func (r *Registry) Register(ctx context.Context, coordinatorID, endpoint string) error {
	endpoints, err := r.List(ctx, coordinatorID)
	if err != nil {
		return err
	}

	endpoints = append(endpoints, endpoint)

	data, err := json.Marshal(endpoints)
	if err != nil {
		return fmt.Errorf("encode subscriber list: %w", err)
	}
	return r.store.Put(ctx, subscribersKeyPrefix+coordinatorID, data)
}

func (r *Registry) List(ctx context.Context, coordinatorID string) ([]string, error) {
	data, err := r.store.Get(ctx, subscribersKeyPrefix+coordinatorID)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	var endpoints []string
	if err := json.Unmarshal(data, &endpoints); err != nil {
		return nil, fmt.Errorf("decode subscriber list: %w", err)
	}
	return endpoints, nil
}
