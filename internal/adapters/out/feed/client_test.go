package feed_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tracking/internal/adapters/out/feed"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPItemFeed_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"items": [
				{
					"order_id": "ORD-100",
					"item_id": "ITEM-1",
					"product_name": "Leather tote",
					"sku": "SKU-TOTE-01",
					"quantity": 2,
					"is_leather": true,
					"is_pattern": false
				},
				{
					"order_id": "ORD-100",
					"item_id": "ITEM-2",
					"product_name": "Canvas pattern",
					"sku": "SKU-PAT-03",
					"quantity": 1,
					"is_leather": false,
					"is_pattern": true
				}
			]
		}`))
		assert.NoError(t, err)
	}))
	defer server.Close()

	client := feed.NewHTTPItemFeed(server.URL)

	items, err := client.Fetch(t.Context())

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ports.FeedItem{
		ExternalOrderID: "ORD-100",
		ExternalItemID:  "ITEM-1",
		ProductName:     "Leather tote",
		ProductSKU:      "SKU-TOTE-01",
		Quantity:        2,
		IsLeather:       true,
		IsPattern:       false,
	}, items[0])
	assert.True(t, items[1].IsPattern)
}

func TestHTTPItemFeed_Fetch_EmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client := feed.NewHTTPItemFeed(server.URL)

	items, err := client.Fetch(t.Context())

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHTTPItemFeed_Fetch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := feed.NewHTTPItemFeed(server.URL)

	_, err := client.Fetch(t.Context())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestHTTPItemFeed_Fetch_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := feed.NewHTTPItemFeed(server.URL)

	_, err := client.Fetch(t.Context())

	require.Error(t, err)
}
