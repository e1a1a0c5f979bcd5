// Package api defines the typed request and response envelopes for every
// named method the coordinator exposes. Each method gets its own pair,
// validated at the boundary before anything reaches the coordinator.
package api

import "auction-coordinator/internal/domain"

type RegisterClientRequest struct {
	ServerPublicKey string `json:"serverPublicKey"`
}

type RegisterClientResponse struct {
	Success bool `json:"success"`
}

type OpenAuctionRequest struct {
	Item     string  `json:"item"`
	Price    float64 `json:"price"`
	ClientID string  `json:"clientId"`
}

type OpenAuctionResponse struct {
	AuctionID string `json:"auctionId"`
}

type PlaceBidRequest struct {
	AuctionID string  `json:"auctionId"`
	Bidder    string  `json:"bidder"`
	Amount    float64 `json:"amount"`
	ClientID  string  `json:"clientId"`
}

type PlaceBidResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

type CloseAuctionRequest struct {
	AuctionID string `json:"auctionId"`
	ClientID  string `json:"clientId"`
}

type CloseAuctionResponse struct {
	HighestBid *domain.Bid `json:"highestBid,omitempty"`
	Message    string      `json:"message,omitempty"`
	Error      string      `json:"error,omitempty"`
}
