// Package feed provides the HTTP client for the upstream order system's item
// feed. The sync job polls it on a schedule; items already registered are
// skipped by the ingestion command, so the feed does not need to track what
// was delivered.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tracking/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// feedPayload mirrors the upstream JSON document.
type feedPayload struct {
	Items []feedItemPayload `json:"items"`
}

type feedItemPayload struct {
	OrderID     string `json:"order_id"`
	ItemID      string `json:"item_id"`
	ProductName string `json:"product_name"`
	ProductSKU  string `json:"sku"`
	Quantity    int    `json:"quantity"`
	IsLeather   bool   `json:"is_leather"`
	IsPattern   bool   `json:"is_pattern"`
}

// HTTPItemFeed implements ItemFeed over the upstream REST endpoint.
type HTTPItemFeed struct {
	endpoint string
	client   *http.Client
}

// NewHTTPItemFeed creates a feed client for the given endpoint URL.
func NewHTTPItemFeed(endpoint string) *HTTPItemFeed {
	return &HTTPItemFeed{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// Fetch retrieves the current batch of order items from the upstream system.
func (f *HTTPItemFeed) Fetch(ctx context.Context) ([]ports.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch item feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("item feed returned status %d", resp.StatusCode)
	}

	var payload feedPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode item feed: %w", err)
	}

	items := make([]ports.FeedItem, 0, len(payload.Items))
	for _, raw := range payload.Items {
		items = append(items, ports.FeedItem{
			ExternalOrderID: raw.OrderID,
			ExternalItemID:  raw.ItemID,
			ProductName:     raw.ProductName,
			ProductSKU:      raw.ProductSKU,
			Quantity:        raw.Quantity,
			IsLeather:       raw.IsLeather,
			IsPattern:       raw.IsPattern,
		})
	}

	return items, nil
}
