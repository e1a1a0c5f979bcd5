package handlers

import (
	"errors"
	"net/http"

	"auction-coordinator/internal/api"
	"auction-coordinator/internal/domain"
	"auction-coordinator/internal/services"
	"auction-coordinator/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RPCHandler dispatches the coordinator's named methods. Each method has
// its own typed request and response envelope, validated here before the
// coordinator sees it.
type RPCHandler struct {
	coordinator *services.Coordinator
	log         logger.Logger
}

func NewRPCHandler(coordinator *services.Coordinator, log logger.Logger) *RPCHandler {
	return &RPCHandler{
		coordinator: coordinator,
		log:         log,
	}
}

func (h *RPCHandler) Register(e *echo.Echo) {
	rpc := e.Group("/rpc")
	rpc.POST("/registerClient", h.RegisterClient)
	rpc.POST("/openAuction", h.OpenAuction)
	rpc.POST("/placeBid", h.PlaceBid)
	rpc.POST("/closeAuction", h.CloseAuction)
}

func (h *RPCHandler) RegisterClient(c echo.Context) error {
	var req api.RegisterClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.ServerPublicKey == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "serverPublicKey is required"})
	}

	if err := h.coordinator.RegisterClient(c.Request().Context(), req.ServerPublicKey); err != nil {
		h.log.Error("Failed to register client", "endpoint", req.ServerPublicKey, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to register client"})
	}

	return c.JSON(http.StatusOK, api.RegisterClientResponse{Success: true})
}

func (h *RPCHandler) OpenAuction(c echo.Context) error {
	var req api.OpenAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Item == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "item is required"})
	}
	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "clientId is required"})
	}

	auctionID, err := h.coordinator.OpenAuction(c.Request().Context(), req.Item, req.Price, req.ClientID)
	if err != nil {
		h.log.Error("Failed to open auction", "item", req.Item, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to open auction"})
	}

	return c.JSON(http.StatusOK, api.OpenAuctionResponse{AuctionID: auctionID})
}

func (h *RPCHandler) PlaceBid(c echo.Context) error {
	var req api.PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.AuctionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "auctionId is required"})
	}
	if req.Bidder == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bidder is required"})
	}
	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "clientId is required"})
	}

	err := h.coordinator.PlaceBid(c.Request().Context(), req.AuctionID, req.Bidder, req.Amount, req.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrAuctionNotFound) {
			return c.JSON(http.StatusNotFound, api.PlaceBidResponse{Error: domain.ErrAuctionNotFound.Error()})
		}
		h.log.Error("Failed to place bid", "auction_id", req.AuctionID, "error", err)
		return c.JSON(http.StatusInternalServerError, api.PlaceBidResponse{Error: "Failed to place bid"})
	}

	return c.JSON(http.StatusOK, api.PlaceBidResponse{Success: true})
}

func (h *RPCHandler) CloseAuction(c echo.Context) error {
	var req api.CloseAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.AuctionID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "auctionId is required"})
	}
	if req.ClientID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "clientId is required"})
	}

	highest, err := h.coordinator.CloseAuction(c.Request().Context(), req.AuctionID, req.ClientID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuctionNotFound):
			return c.JSON(http.StatusNotFound, api.CloseAuctionResponse{Error: domain.ErrAuctionNotFound.Error()})
		case errors.Is(err, domain.ErrAuctionClosed):
			return c.JSON(http.StatusConflict, api.CloseAuctionResponse{Message: domain.ErrAuctionClosed.Error()})
		case errors.Is(err, domain.ErrNotOwner):
			return c.JSON(http.StatusForbidden, api.CloseAuctionResponse{Message: domain.ErrNotOwner.Error()})
		}
		h.log.Error("Failed to close auction", "auction_id", req.AuctionID, "error", err)
		return c.JSON(http.StatusInternalServerError, api.CloseAuctionResponse{Error: "Failed to close auction"})
	}

	// highest is nil for an auction that closed with zero bids; that is a
	// valid terminal outcome, not an error.
	return c.JSON(http.StatusOK, api.CloseAuctionResponse{HighestBid: highest})
}
