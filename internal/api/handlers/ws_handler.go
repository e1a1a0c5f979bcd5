package handlers

import (
	"net/http"

	ws "auction-coordinator/internal/infrastructure/websocket"
	"auction-coordinator/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in development
	},
}

// FeedHandler upgrades observers onto the live event feed. The feed is
// read-only; inbound frames are drained just to notice disconnects.
type FeedHandler struct {
	feed *ws.Feed
	log  logger.Logger
}

func NewFeedHandler(feed *ws.Feed, log logger.Logger) *FeedHandler {
	return &FeedHandler{feed: feed, log: log}
}

func (h *FeedHandler) Register(e *echo.Echo) {
	e.GET("/ws", h.HandleConnection)
}

func (h *FeedHandler) HandleConnection(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return err
	}

	feedConn := ws.NewConn(uuid.NewString(), conn)
	h.feed.Attach(feedConn)

	go func() {
		defer func() {
			h.feed.Detach(feedConn.ID())
			feedConn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return nil
}
