package domain

import (
	"context"
)

// KVStore is the durable key-value service everything above it is built on.
// Get returns ErrKeyNotFound for an absent key. There are no transactions
// across keys; callers own their read-modify-write ordering.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// AuctionRepository persists auction records and generates their identity.
type AuctionRepository interface {
	Create(ctx context.Context, item string, openingPrice float64, ownerID string) (*AuctionRecord, error)
	Get(ctx context.Context, auctionID string) (*AuctionRecord, error)
	Update(ctx context.Context, record *AuctionRecord) error
}

// SubscriberRegistry holds the append-only list of subscriber endpoints
// registered under one coordinator identity. Entries are never pruned.
type SubscriberRegistry interface {
	Register(ctx context.Context, coordinatorID, endpoint string) error
	List(ctx context.Context, coordinatorID string) ([]string, error)
}

// Caller performs one outbound request/response call to a subscriber
// endpoint. The transport behind it is opaque.
type Caller interface {
	Call(ctx context.Context, endpoint, method string, payload []byte) ([]byte, error)
}

// Broadcaster delivers an update to every registered subscriber,
// best-effort. Delivery failures are handled inside the implementation and
// never reach the operation that triggered the broadcast.
type Broadcaster interface {
	Broadcast(ctx context.Context, coordinatorID string, update *AuctionUpdate)
}

// FeedPublisher mirrors updates to locally attached observers.
type FeedPublisher interface {
	Publish(update *AuctionUpdate)
}
