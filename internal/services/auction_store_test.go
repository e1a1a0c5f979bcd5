package services

import (
	"context"
	"testing"

	"auction-coordinator/internal/domain"
	"auction-coordinator/internal/infrastructure/memory"

	"github.com/stretchr/testify/require"
)

func TestAuctionStoreCreateGeneratesDistinctIDs(t *testing.T) {
	store := NewAuctionStore(memory.NewMemoryStore())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		record, err := store.Create(ctx, "vintage radio", 25.0, "owner-1")
		require.NoError(t, err)
		require.Len(t, record.AuctionID, 32, "auction id should be 16 bytes hex")
		require.False(t, seen[record.AuctionID], "auction id %s repeated", record.AuctionID)
		seen[record.AuctionID] = true
	}
}

func TestAuctionStoreCreateInitializesRecord(t *testing.T) {
	store := NewAuctionStore(memory.NewMemoryStore())

	record, err := store.Create(context.Background(), "painting", 100.0, "owner-1")
	require.NoError(t, err)

	require.Equal(t, "painting", record.Item)
	require.Equal(t, 100.0, record.OpeningPrice)
	require.Equal(t, "owner-1", record.OwnerID)
	require.Empty(t, record.Bids)
	require.False(t, record.Closed)
}

func TestAuctionStoreGetRoundTrip(t *testing.T) {
	store := NewAuctionStore(memory.NewMemoryStore())
	ctx := context.Background()

	created, err := store.Create(ctx, "clock", 10.0, "owner-1")
	require.NoError(t, err)

	loaded, err := store.Get(ctx, created.AuctionID)
	require.NoError(t, err)
	require.Equal(t, created, loaded)
}

func TestAuctionStoreGetUnknownID(t *testing.T) {
	store := NewAuctionStore(memory.NewMemoryStore())

	_, err := store.Get(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestAuctionStoreUpdatePersists(t *testing.T) {
	store := NewAuctionStore(memory.NewMemoryStore())
	ctx := context.Background()

	record, err := store.Create(ctx, "clock", 10.0, "owner-1")
	require.NoError(t, err)

	record.Bids = append(record.Bids, domain.Bid{Bidder: "alice", Amount: 12.0, ClientID: "c1"})
	record.Closed = true
	require.NoError(t, store.Update(ctx, record))

	loaded, err := store.Get(ctx, record.AuctionID)
	require.NoError(t, err)
	require.True(t, loaded.Closed)
	require.Len(t, loaded.Bids, 1)
	require.Equal(t, "alice", loaded.Bids[0].Bidder)
}
