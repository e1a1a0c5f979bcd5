package domain

// Bid is one entry in an auction's bid sequence. ClientID is the
// self-reported identity of the caller that submitted it.
type Bid struct {
	Bidder   string  `json:"bidder"`
	Amount   float64 `json:"amount"`
	ClientID string  `json:"clientId"`
}

// AuctionRecord is the persisted state of one auction. OwnerID is the
// self-reported identity of the client that opened it and is the only
// identity allowed to close it. Records are never deleted.
type AuctionRecord struct {
	AuctionID    string  `json:"auctionId"`
	Item         string  `json:"item"`
	OpeningPrice float64 `json:"price"`
	OwnerID      string  `json:"clientId"`
	Bids         []Bid   `json:"bids"`
	Closed       bool    `json:"closed"`
}

type UpdateType string

const (
	UpdateNewAuction         UpdateType = "newAuction"
	UpdateNewBid             UpdateType = "newBid"
	UpdateAuctionClosed      UpdateType = "auctionClosed"
	UpdateAuctionClosedError UpdateType = "auctionClosedError"
)

// AuctionUpdate is the push notification envelope delivered to every
// registered subscriber. Exactly one of Auction, Bid, HighestBid or
// Message is set, depending on Type.
type AuctionUpdate struct {
	Type       UpdateType     `json:"type"`
	AuctionID  string         `json:"auctionId"`
	Auction    *AuctionRecord `json:"auction,omitempty"`
	Bid        *Bid           `json:"bid,omitempty"`
	HighestBid *Bid           `json:"highestBid,omitempty"`
	Message    string         `json:"message,omitempty"`
}
