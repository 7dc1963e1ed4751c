package jobs

import (
	"context"
	"log/slog"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ExternalSyncJob polls the upstream order system's item feed on a schedule
// and registers anything not seen before. Ingestion is idempotent on the
// external identity pair, so re-reading the same feed is harmless.
type ExternalSyncJob struct {
	feed      ports.ItemFeed
	handler   commands.IngestItemsCommandHandler
	storeName string
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewExternalSyncJob creates a job that syncs the item feed on the given cron
// schedule (with seconds field, e.g. "0 * * * * *" for every minute).
func NewExternalSyncJob(
	feed ports.ItemFeed,
	handler commands.IngestItemsCommandHandler,
	storeName string,
	schedule string,
	logger *slog.Logger,
) *ExternalSyncJob {
	return &ExternalSyncJob{
		feed:      feed,
		handler:   handler,
		storeName: storeName,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "external_sync_job"),
	}
}

// Start begins the scheduled feed sync.
func (j *ExternalSyncJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "External sync job started", "schedule", j.schedule)
	return nil
}

// Stop stops the scheduled feed sync.
func (j *ExternalSyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "External sync job stopped")
}

func (j *ExternalSyncJob) runOnce() {
	ctx := context.Background()

	feedItems, err := j.feed.Fetch(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Item feed fetch failed", "error", err)
		return
	}
	if len(feedItems) == 0 {
		return
	}

	items := make([]commands.IngestItem, 0, len(feedItems))
	for _, feedItem := range feedItems {
		items = append(items, commands.IngestItem{
			ExternalOrderID: feedItem.ExternalOrderID,
			ExternalItemID:  feedItem.ExternalItemID,
			ProductName:     feedItem.ProductName,
			ProductSKU:      feedItem.ProductSKU,
			Quantity:        feedItem.Quantity,
			IsLeather:       feedItem.IsLeather,
			IsPattern:       feedItem.IsPattern,
		})
	}

	cmd, err := commands.NewIngestItemsCommand(items, j.storeName, nil, nil)
	if err != nil {
		j.logger.ErrorContext(ctx, "Feed produced an invalid ingestion batch", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Item ingestion failed", "error", err)
		return
	}

	if len(result.CreatedIDs) > 0 {
		j.logger.InfoContext(ctx, "Feed sync registered new items",
			"created", len(result.CreatedIDs), "skipped", result.Skipped)
	}
}
