package services

import (
	"context"
	"sync"
	"testing"

	"auction-coordinator/internal/domain"
	"auction-coordinator/internal/infrastructure/memory"

	"github.com/stretchr/testify/require"
)

func newCoordinatorFixture() (*Coordinator, *AuctionStore, *recordingNotifier) {
	store := memory.NewMemoryStore()
	auctions := NewAuctionStore(store)
	registry := NewRegistry(store)
	notifier := &recordingNotifier{}
	coordinator := NewCoordinator(auctions, registry, notifier, "coord-1", nopLogger{})
	return coordinator, auctions, notifier
}

func TestOpenAuctionReturnsDistinctIDs(t *testing.T) {
	coordinator, _, _ := newCoordinatorFixture()
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
		require.NoError(t, err)
		require.False(t, seen[auctionID])
		seen[auctionID] = true
	}
}

func TestOpenAuctionBroadcastsNewAuction(t *testing.T) {
	coordinator, _, notifier := newCoordinatorFixture()

	auctionID, err := coordinator.OpenAuction(context.Background(), "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	update := notifier.lastOfType(domain.UpdateNewAuction)
	require.NotNil(t, update)
	require.Equal(t, auctionID, update.AuctionID)
	require.NotNil(t, update.Auction)
	require.Equal(t, "lamp", update.Auction.Item)
}

func TestPlaceBidUnknownAuction(t *testing.T) {
	coordinator, _, notifier := newCoordinatorFixture()

	err := coordinator.PlaceBid(context.Background(), "no-such-id", "alice", 10.0, "c1")
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
	require.Empty(t, notifier.all(), "a failed bid must not broadcast")
}

func TestPlaceBidAppendsAndBroadcasts(t *testing.T) {
	coordinator, auctions, notifier := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "alice", 10.0, "c1"))
	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "bob", 12.0, "c2"))

	record, err := auctions.Get(ctx, auctionID)
	require.NoError(t, err)
	require.Len(t, record.Bids, 2)
	require.Equal(t, "alice", record.Bids[0].Bidder)
	require.Equal(t, "bob", record.Bids[1].Bidder)

	update := notifier.lastOfType(domain.UpdateNewBid)
	require.NotNil(t, update)
	require.Equal(t, "bob", update.Bid.Bidder)
}

func TestCloseAuctionUnknownID(t *testing.T) {
	coordinator, _, _ := newCoordinatorFixture()

	_, err := coordinator.CloseAuction(context.Background(), "no-such-id", "owner-1")
	require.ErrorIs(t, err, domain.ErrAuctionNotFound)
}

func TestCloseAuctionTieGoesToEarliestBid(t *testing.T) {
	coordinator, _, _ := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "A", 10.0, "ca"))
	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "B", 15.0, "cb"))
	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "C", 15.0, "cc"))

	highest, err := coordinator.CloseAuction(ctx, auctionID, "owner-1")
	require.NoError(t, err)
	require.NotNil(t, highest)
	require.Equal(t, "B", highest.Bidder)
	require.Equal(t, 15.0, highest.Amount)
}

func TestCloseAuctionWithNoBids(t *testing.T) {
	coordinator, auctions, notifier := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	highest, err := coordinator.CloseAuction(ctx, auctionID, "owner-1")
	require.NoError(t, err)
	require.Nil(t, highest, "zero bids is a valid terminal outcome")

	record, err := auctions.Get(ctx, auctionID)
	require.NoError(t, err)
	require.True(t, record.Closed)

	update := notifier.lastOfType(domain.UpdateAuctionClosed)
	require.NotNil(t, update)
	require.Nil(t, update.HighestBid)
}

func TestCloseAuctionTwice(t *testing.T) {
	coordinator, _, notifier := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)
	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "alice", 10.0, "c1"))

	first, err := coordinator.CloseAuction(ctx, auctionID, "owner-1")
	require.NoError(t, err)
	require.Equal(t, "alice", first.Bidder)

	second, err := coordinator.CloseAuction(ctx, auctionID, "owner-1")
	require.ErrorIs(t, err, domain.ErrAuctionClosed)
	require.Nil(t, second)

	update := notifier.lastOfType(domain.UpdateAuctionClosedError)
	require.NotNil(t, update)
	require.Equal(t, auctionID, update.AuctionID)
	require.NotEmpty(t, update.Message)
}

func TestCloseAuctionByNonOwner(t *testing.T) {
	coordinator, auctions, notifier := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	_, err = coordinator.CloseAuction(ctx, auctionID, "intruder")
	require.ErrorIs(t, err, domain.ErrNotOwner)

	record, err := auctions.Get(ctx, auctionID)
	require.NoError(t, err)
	require.False(t, record.Closed, "a rejected close must leave the auction open")

	require.NotNil(t, notifier.lastOfType(domain.UpdateAuctionClosedError))
}

func TestPlaceBidAfterCloseIsStillAppended(t *testing.T) {
	coordinator, auctions, _ := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	_, err = coordinator.CloseAuction(ctx, auctionID, "owner-1")
	require.NoError(t, err)

	// Late bids are recorded but cannot change the close outcome.
	require.NoError(t, coordinator.PlaceBid(ctx, auctionID, "late", 100.0, "c9"))

	record, err := auctions.Get(ctx, auctionID)
	require.NoError(t, err)
	require.True(t, record.Closed)
	require.Len(t, record.Bids, 1)
}

func TestConcurrentBidsAreNotLost(t *testing.T) {
	coordinator, auctions, _ := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	const bidders = 50
	var wg sync.WaitGroup
	wg.Add(bidders)
	for i := 0; i < bidders; i++ {
		go func(n int) {
			defer wg.Done()
			err := coordinator.PlaceBid(ctx, auctionID, "bidder", float64(n), "c")
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	record, err := auctions.Get(ctx, auctionID)
	require.NoError(t, err)
	require.Len(t, record.Bids, bidders)
}

func TestConcurrentClosesSucceedExactlyOnce(t *testing.T) {
	coordinator, _, _ := newCoordinatorFixture()
	ctx := context.Background()

	auctionID, err := coordinator.OpenAuction(ctx, "lamp", 5.0, "owner-1")
	require.NoError(t, err)

	const closers = 10
	results := make(chan error, closers)
	var wg sync.WaitGroup
	wg.Add(closers)
	for i := 0; i < closers; i++ {
		go func() {
			defer wg.Done()
			_, err := coordinator.CloseAuction(ctx, auctionID, "owner-1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, alreadyClosed int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, domain.ErrAuctionClosed)
			alreadyClosed++
		}
	}
	require.Equal(t, 1, succeeded)
	require.Equal(t, closers-1, alreadyClosed)
}

func TestRegisterClientConcurrently(t *testing.T) {
	store := memory.NewMemoryStore()
	registry := NewRegistry(store)
	coordinator := NewCoordinator(NewAuctionStore(store), registry, &recordingNotifier{}, "coord-1", nopLogger{})
	ctx := context.Background()

	const subscribers = 20
	var wg sync.WaitGroup
	wg.Add(subscribers)
	for i := 0; i < subscribers; i++ {
		go func() {
			defer wg.Done()
			require.NoError(t, coordinator.RegisterClient(ctx, "http://sub:8090"))
		}()
	}
	wg.Wait()

	endpoints, err := registry.List(ctx, "coord-1")
	require.NoError(t, err)
	require.Len(t, endpoints, subscribers)
}
