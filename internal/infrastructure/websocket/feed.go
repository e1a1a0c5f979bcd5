package websocket

import (
	"encoding/json"
	"sync"

	"auction-coordinator/internal/domain"
	"auction-coordinator/pkg/logger"
)

// FeedConnection is one attached observer of the live event feed.
type FeedConnection interface {
	Send(message []byte) error
	Close() error
	ID() string
}

// Feed mirrors every auction update to locally attached websocket
// observers. A send failure on one connection is logged and does not stop
// delivery to the others.
type Feed struct {
	mu    sync.RWMutex
	conns map[string]FeedConnection
	log   logger.Logger
}

func NewFeed(log logger.Logger) *Feed {
	return &Feed{
		conns: make(map[string]FeedConnection),
		log:   log,
	}
}

func (f *Feed) Attach(conn FeedConnection) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.conns[conn.ID()] = conn
	f.log.Info("Feed observer attached", "conn_id", conn.ID())
}

func (f *Feed) Detach(connID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.conns[connID]; exists {
		delete(f.conns, connID)
		f.log.Info("Feed observer detached", "conn_id", connID)
	}
}

func (f *Feed) Publish(update *domain.AuctionUpdate) {
	message, err := json.Marshal(update)
	if err != nil {
		f.log.Error("Failed to encode feed message", "error", err)
		return
	}

	f.mu.RLock()
	conns := make([]FeedConnection, 0, len(f.conns))
	for _, conn := range f.conns {
		conns = append(conns, conn)
	}
	f.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Send(message); err != nil {
			f.log.Error("Failed to send feed message", "conn_id", conn.ID(), "error", err)
			// Continue to other connections
		}
	}
}

func (f *Feed) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.conns)
}
