package services

import (
	"context"
	"encoding/json"
	"time"

	"auction-coordinator/internal/domain"
	"auction-coordinator/pkg/logger"

	"golang.org/x/sync/errgroup"
)

const methodAuctionUpdate = "auctionUpdate"

// Fanout broadcasts auction updates to every registered subscriber
// endpoint. Delivery is fire-and-forget: each endpoint is attempted in its
// own task with a bounded concurrency limit and a per-call timeout, and a
// failed endpoint never blocks or fails the others. Failures are logged and
// counted, never returned.
type Fanout struct {
	registry    domain.SubscriberRegistry
	caller      domain.Caller
	feed        domain.FeedPublisher
	concurrency int
	callTimeout time.Duration
	log         logger.Logger
}

func NewFanout(
	registry domain.SubscriberRegistry,
	caller domain.Caller,
	feed domain.FeedPublisher,
	concurrency int,
	callTimeout time.Duration,
	log logger.Logger,
) *Fanout {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Fanout{
		registry:    registry,
		caller:      caller,
		feed:        feed,
		concurrency: concurrency,
		callTimeout: callTimeout,
		log:         log,
	}
}

func (f *Fanout) Broadcast(ctx context.Context, coordinatorID string, update *domain.AuctionUpdate) {
	if f.feed != nil {
		f.feed.Publish(update)
	}

	endpoints, err := f.registry.List(ctx, coordinatorID)
	if err != nil {
		f.log.Error("Failed to load subscriber list", "coordinator_id", coordinatorID, "error", err)
		return
	}
	if len(endpoints) == 0 {
		return
	}

	payload, err := json.Marshal(update)
	if err != nil {
		f.log.Error("Failed to encode update", "type", update.Type, "error", err)
		return
	}

	var g errgroup.Group
	g.SetLimit(f.concurrency)

	failed := make(chan string, len(endpoints))
	for _, endpoint := range endpoints {
		endpoint := endpoint
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, f.callTimeout)
			defer cancel()

			if _, err := f.caller.Call(callCtx, endpoint, methodAuctionUpdate, payload); err != nil {
				f.log.Warn("Subscriber unreachable", "endpoint", endpoint,
					"type", update.Type, "auction_id", update.AuctionID, "error", err)
				failed <- endpoint
			}
			return nil
		})
	}
	g.Wait()
	close(failed)

	if n := len(failed); n > 0 {
		f.log.Info("Broadcast finished with failures",
			"type", update.Type, "auction_id", update.AuctionID,
			"subscribers", len(endpoints), "failed", n)
	}
}
