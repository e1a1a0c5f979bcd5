package domain

import "errors"

var (
	// ErrKeyNotFound is returned by KVStore.Get for an absent key.
	ErrKeyNotFound = errors.New("key not found")

	ErrAuctionNotFound = errors.New("auction not found")
	ErrAuctionClosed   = errors.New("auction already closed")
	ErrNotOwner        = errors.New("unauthorized: only the auction owner can close it")
)
