package ports

import "context"

// FeedItem is a single order item as published by the upstream order system.
type FeedItem struct {
	ExternalOrderID string
	ExternalItemID  string
	ProductName     string
	ProductSKU      string
	Quantity        int
	IsLeather       bool
	IsPattern       bool
}

// ItemFeed is the upstream source of new order items. The sync job pulls from
// it on a schedule and registers anything not seen before.
type ItemFeed interface {
	Fetch(ctx context.Context) ([]FeedItem, error)
}
