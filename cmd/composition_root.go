package cmd

import (
	"log/slog"

	"tracking/internal/adapters/out/directory"
	"tracking/internal/adapters/out/feed"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateCheckInCommandHandler() commands.CheckInCommandHandler {
	return commands.NewCheckInCommandHandler(
		c.createUoWFactory(),
		directory.NewGormActorVerifier(c.gormDB),
		directory.NewGormDepartmentDirectory(c.gormDB),
	)
}

func (c *CompositionRoot) CreateCheckOutCommandHandler() commands.CheckOutCommandHandler {
	return commands.NewCheckOutCommandHandler(
		c.createUoWFactory(),
		directory.NewGormActorVerifier(c.gormDB),
		directory.NewGormDepartmentDirectory(c.gormDB),
	)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	return commands.NewUpdateStatusCommandHandler(
		c.createUoWFactory(),
		directory.NewGormActorVerifier(c.gormDB),
		directory.NewGormDepartmentDirectory(c.gormDB),
	)
}

func (c *CompositionRoot) CreateReturnToStageCommandHandler() commands.ReturnToStageCommandHandler {
	return commands.NewReturnToStageCommandHandler(
		c.createUoWFactory(),
		directory.NewGormActorVerifier(c.gormDB),
		directory.NewGormDepartmentDirectory(c.gormDB),
	)
}

func (c *CompositionRoot) CreateIngestItemsCommandHandler() commands.IngestItemsCommandHandler {
	return commands.NewIngestItemsCommandHandler(
		c.createItemUoWFactory(),
		directory.NewGormRoleDirectory(c.gormDB),
	)
}

func (c *CompositionRoot) CreateGenerateScanTokenCommandHandler() commands.GenerateScanTokenCommandHandler {
	return commands.NewGenerateScanTokenCommandHandler(c.createItemUoWFactory())
}

func (c *CompositionRoot) CreateDeleteItemCommandHandler() commands.DeleteItemCommandHandler {
	return commands.NewDeleteItemCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateGetItemByScanTokenQueryHandler() queries.GetItemByScanTokenQueryHandler {
	return queries.NewGetItemByScanTokenQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListItemsQueryHandler() queries.ListItemsQueryHandler {
	return queries.NewListItemsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTrackingHistoryQueryHandler() queries.ListTrackingHistoryQueryHandler {
	return queries.NewListTrackingHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	syncJob := jobs.NewExternalSyncJob(
		feed.NewHTTPItemFeed(c.config.FeedURL),
		c.CreateIngestItemsCommandHandler(),
		c.config.FeedStoreName,
		c.config.FeedSyncSchedule,
		logger,
	)
	return jobs.NewJobManager(syncJob)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createItemUoWFactory() commands.ItemUoWFactory {
	return FuncItemUoWFactory(func() commands.ItemUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncItemUoWFactory func() commands.ItemUoW

func (f FuncItemUoWFactory) Create() commands.ItemUoW {
	return f()
}
