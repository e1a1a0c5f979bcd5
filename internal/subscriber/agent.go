package subscriber

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"auction-coordinator/internal/domain"
	"auction-coordinator/internal/infrastructure/rpc"
	"auction-coordinator/pkg/logger"

	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/mux"
)

// Agent is one subscriber process: it serves the auctionUpdate push method
// and registers its own endpoint with the coordinator at startup.
type Agent struct {
	advertiseURL string
	client       *rpc.Client
	log          logger.Logger
}

func NewAgent(advertiseURL string, client *rpc.Client, log logger.Logger) *Agent {
	return &Agent{
		advertiseURL: advertiseURL,
		client:       client,
		log:          log,
	}
}

// Register announces this agent's endpoint to the coordinator, retrying
// with exponential backoff until the coordinator is reachable.
func (a *Agent) Register(ctx context.Context) error {
	operation := func() (bool, error) {
		return a.client.RegisterClient(ctx, a.advertiseURL)
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(2*time.Minute),
	)
	if err != nil {
		return err
	}

	a.log.Info("Registered with coordinator", "endpoint", a.advertiseURL)
	return nil
}

// Routes configures the agent's HTTP routes.
func (a *Agent) Routes() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", a.HealthCheck).Methods("GET")
	router.HandleFunc("/rpc/auctionUpdate", a.HandleUpdate).Methods("POST")
	return router
}

func (a *Agent) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "auction-subscriber",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleUpdate receives one pushed auction lifecycle event.
func (a *Agent) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var update domain.AuctionUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	switch update.Type {
	case domain.UpdateNewAuction:
		if update.Auction != nil {
			a.log.Info("New auction opened", "auction_id", update.AuctionID,
				"item", update.Auction.Item, "price", update.Auction.OpeningPrice)
		} else {
			a.log.Info("New auction opened", "auction_id", update.AuctionID)
		}
	case domain.UpdateNewBid:
		if update.Bid != nil {
			a.log.Info("New bid placed", "auction_id", update.AuctionID,
				"bidder", update.Bid.Bidder, "amount", update.Bid.Amount)
		} else {
			a.log.Info("New bid placed", "auction_id", update.AuctionID)
		}
	case domain.UpdateAuctionClosed:
		if update.HighestBid != nil {
			a.log.Info("Auction closed", "auction_id", update.AuctionID,
				"winner", update.HighestBid.Bidder, "amount", update.HighestBid.Amount)
		} else {
			a.log.Info("Auction closed with no bids", "auction_id", update.AuctionID)
		}
	case domain.UpdateAuctionClosedError:
		a.log.Warn("Auction close failed", "auction_id", update.AuctionID, "message", update.Message)
	default:
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown update type"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
