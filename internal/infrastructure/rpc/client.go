package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"auction-coordinator/internal/api"
	"auction-coordinator/internal/domain"
)

// Client is the typed client for the coordinator's RPC methods, used by the
// CLI and by subscriber agents registering themselves.
type Client struct {
	coordinatorURL string
	caller         domain.Caller
}

func NewClient(coordinatorURL string, caller domain.Caller) *Client {
	return &Client{coordinatorURL: coordinatorURL, caller: caller}
}

func (c *Client) call(ctx context.Context, method string, req, resp interface{}) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	body, err := c.caller.Call(ctx, c.coordinatorURL, method, payload)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, resp); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

func (c *Client) RegisterClient(ctx context.Context, serverPublicKey string) (bool, error) {
	var resp api.RegisterClientResponse
	err := c.call(ctx, "registerClient", &api.RegisterClientRequest{ServerPublicKey: serverPublicKey}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *Client) OpenAuction(ctx context.Context, item string, price float64, clientID string) (string, error) {
	var resp api.OpenAuctionResponse
	req := &api.OpenAuctionRequest{Item: item, Price: price, ClientID: clientID}
	if err := c.call(ctx, "openAuction", req, &resp); err != nil {
		return "", err
	}
	return resp.AuctionID, nil
}

func (c *Client) PlaceBid(ctx context.Context, auctionID, bidder string, amount float64, clientID string) (*api.PlaceBidResponse, error) {
	var resp api.PlaceBidResponse
	req := &api.PlaceBidRequest{AuctionID: auctionID, Bidder: bidder, Amount: amount, ClientID: clientID}
	if err := c.call(ctx, "placeBid", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CloseAuction(ctx context.Context, auctionID, clientID string) (*api.CloseAuctionResponse, error) {
	var resp api.CloseAuctionResponse
	req := &api.CloseAuctionRequest{AuctionID: auctionID, ClientID: clientID}
	if err := c.call(ctx, "closeAuction", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
