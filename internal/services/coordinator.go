package services

import (
	"context"
	"sort"

	"auction-coordinator/internal/domain"
	"auction-coordinator/pkg/logger"
)

// Coordinator owns the auction state machine: Open is the initial state,
// Closed the terminal one, and nothing else. All mutating operations on one
// auction id run under its key lock, so bids are never lost to concurrent
// writes and an auction closes exactly once.
type Coordinator struct {
	auctions      domain.AuctionRepository
	registry      domain.SubscriberRegistry
	notifier      domain.Broadcaster
	coordinatorID string
	locks         *KeyedMutex
	log           logger.Logger
}

func NewCoordinator(
	auctions domain.AuctionRepository,
	registry domain.SubscriberRegistry,
	notifier domain.Broadcaster,
	coordinatorID string,
	log logger.Logger,
) *Coordinator {
	return &Coordinator{
		auctions:      auctions,
		registry:      registry,
		notifier:      notifier,
		coordinatorID: coordinatorID,
		locks:         NewKeyedMutex(),
		log:           log,
	}
}

// RegisterClient appends a subscriber endpoint under this coordinator's
// identity. Duplicate endpoints are stored as-is.
func (c *Coordinator) RegisterClient(ctx context.Context, endpoint string) error {
	unlock := c.locks.Lock(subscribersKeyPrefix + c.coordinatorID)
	defer unlock()

	if err := c.registry.Register(ctx, c.coordinatorID, endpoint); err != nil {
		return err
	}

	c.log.Info("Registered client", "endpoint", endpoint)
	return nil
}

func (c *Coordinator) OpenAuction(ctx context.Context, item string, price float64, clientID string) (string, error) {
	record, err := c.auctions.Create(ctx, item, price, clientID)
	if err != nil {
		return "", err
	}

	c.log.Info("Auction opened", "auction_id", record.AuctionID, "item", item, "price", price)

	c.notifier.Broadcast(ctx, c.coordinatorID, &domain.AuctionUpdate{
		Type:      domain.UpdateNewAuction,
		AuctionID: record.AuctionID,
		Auction:   record,
	})
	return record.AuctionID, nil
}

// PlaceBid appends a bid to the auction's bid sequence. Bids carry no
// amount validation, and a bid on a closed auction is still recorded; the
// winner is whatever closeAuction computed when it closed.
func (c *Coordinator) PlaceBid(ctx context.Context, auctionID, bidder string, amount float64, clientID string) error {
	unlock := c.locks.Lock(auctionKeyPrefix + auctionID)

	record, err := c.auctions.Get(ctx, auctionID)
	if err != nil {
		unlock()
		return err
	}

	bid := domain.Bid{Bidder: bidder, Amount: amount, ClientID: clientID}
	record.Bids = append(record.Bids, bid)

	if err := c.auctions.Update(ctx, record); err != nil {
		unlock()
		return err
	}
	unlock()

	c.log.Info("Bid placed", "auction_id", auctionID, "bidder", bidder, "amount", amount)

	c.notifier.Broadcast(ctx, c.coordinatorID, &domain.AuctionUpdate{
		Type:      domain.UpdateNewBid,
		AuctionID: auctionID,
		Bid:       &bid,
	})
	return nil
}

// CloseAuction transitions the auction to Closed and returns the highest
// bid, nil when there were no bids. Only the opener's client id may close;
// both failure modes broadcast an auctionClosedError before returning.
func (c *Coordinator) CloseAuction(ctx context.Context, auctionID, clientID string) (*domain.Bid, error) {
	unlock := c.locks.Lock(auctionKeyPrefix + auctionID)

	record, err := c.auctions.Get(ctx, auctionID)
	if err != nil {
		unlock()
		return nil, err
	}

	if record.Closed {
		unlock()
		c.broadcastCloseError(ctx, auctionID, domain.ErrAuctionClosed.Error())
		return nil, domain.ErrAuctionClosed
	}

	if record.OwnerID != clientID {
		unlock()
		c.broadcastCloseError(ctx, auctionID, domain.ErrNotOwner.Error())
		return nil, domain.ErrNotOwner
	}

	record.Closed = true
	highest := highestBid(record.Bids)

	// Persisted before the broadcast goes out. The closed flag must never
	// be observable through a notification without being durable.
	if err := c.auctions.Update(ctx, record); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	c.log.Info("Auction closed", "auction_id", auctionID, "bids", len(record.Bids))

	c.notifier.Broadcast(ctx, c.coordinatorID, &domain.AuctionUpdate{
		Type:       domain.UpdateAuctionClosed,
		AuctionID:  auctionID,
		HighestBid: highest,
	})
	return highest, nil
}

func (c *Coordinator) broadcastCloseError(ctx context.Context, auctionID, message string) {
	c.notifier.Broadcast(ctx, c.coordinatorID, &domain.AuctionUpdate{
		Type:      domain.UpdateAuctionClosedError,
		AuctionID: auctionID,
		Message:   message,
	})
}

// highestBid picks the maximum amount; the stable sort keeps the earliest
// bid first among equal amounts, so ties go to the earliest bidder.
func highestBid(bids []domain.Bid) *domain.Bid {
	if len(bids) == 0 {
		return nil
	}

	sorted := make([]domain.Bid, len(bids))
	copy(sorted, bids)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	winner := sorted[0]
	return &winner
}
