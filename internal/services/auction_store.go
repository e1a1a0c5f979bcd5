package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auction-coordinator/internal/domain"
	"auction-coordinator/pkg/utils"
)

const auctionKeyPrefix = "auction:"

// AuctionStore persists whole auction records as JSON values in the
// key-value store and owns auction identity generation.
type AuctionStore struct {
	store domain.KVStore
}

func NewAuctionStore(store domain.KVStore) *AuctionStore {
	return &AuctionStore{store: store}
}

func (s *AuctionStore) Create(ctx context.Context, item string, openingPrice float64, ownerID string) (*domain.AuctionRecord, error) {
	auctionID, err := s.freshID(ctx)
	if err != nil {
		return nil, err
	}

	record := &domain.AuctionRecord{
		AuctionID:    auctionID,
		Item:         item,
		OpeningPrice: openingPrice,
		OwnerID:      ownerID,
		Bids:         []domain.Bid{},
		Closed:       false,
	}

	if err := s.put(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// freshID draws random ids until one is unused. A collision on 128 random
// bits is not expected in practice; the retry keeps create safe anyway.
func (s *AuctionStore) freshID(ctx context.Context) (string, error) {
	for {
		auctionID := utils.NewID()
		_, err := s.store.Get(ctx, auctionKeyPrefix+auctionID)
		if errors.Is(err, domain.ErrKeyNotFound) {
			return auctionID, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (s *AuctionStore) Get(ctx context.Context, auctionID string) (*domain.AuctionRecord, error) {
	data, err := s.store.Get(ctx, auctionKeyPrefix+auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrAuctionNotFound
		}
		return nil, err
	}

	var record domain.AuctionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode auction %s: %w", auctionID, err)
	}
	return &record, nil
}

func (s *AuctionStore) Update(ctx context.Context, record *domain.AuctionRecord) error {
	return s.put(ctx, record)
}

func (s *AuctionStore) put(ctx context.Context, record *domain.AuctionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode auction %s: %w", record.AuctionID, err)
	}
	return s.store.Put(ctx, auctionKeyPrefix+record.AuctionID, data)
}
