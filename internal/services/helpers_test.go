package services

import (
	"context"
	"sync"

	"auction-coordinator/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Fatal(msg string, keysAndValues ...interface{}) {}

// recordingNotifier captures every broadcast for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	updates []*domain.AuctionUpdate
}

func (r *recordingNotifier) Broadcast(ctx context.Context, coordinatorID string, update *domain.AuctionUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, update)
}

func (r *recordingNotifier) all() []*domain.AuctionUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AuctionUpdate, len(r.updates))
	copy(out, r.updates)
	return out
}

func (r *recordingNotifier) lastOfType(t domain.UpdateType) *domain.AuctionUpdate {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.updates) - 1; i >= 0; i-- {
		if r.updates[i].Type == t {
			return r.updates[i]
		}
	}
	return nil
}
