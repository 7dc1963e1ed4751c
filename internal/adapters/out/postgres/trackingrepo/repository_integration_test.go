package trackingrepo_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres/trackingrepo"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TrackingRepositoryIntegrationTestSuite provides integration tests for the
// ledger repository using PostgreSQL containers.
type TrackingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *trackingrepo.GormTrackingRepository
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&trackingrepo.EntryDTO{}))
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE tracking_entries").Error)

	suite.repository = trackingrepo.NewGormTrackingRepository(suite.db)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAppend_PersistsEntry() {
	ctx := context.Background()

	entry := createTestEntry(suite.T(), kernel.NewUUID())
	err := suite.repository.Append(ctx, entry)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, entry.ID())
	suite.Require().NoError(err)
	suite.Equal(entry.ID(), retrieved.ID())
	suite.Equal(entry.ItemID(), retrieved.ItemID())
	suite.Equal(entry.DepartmentID(), retrieved.DepartmentID())
	suite.Equal(entry.ActorID(), retrieved.ActorID())
	suite.Equal(tracking.ActionCheckIn, retrieved.Action())
	suite.Equal(item.CheckedIn, retrieved.Status())
	suite.Equal(item.Pending, retrieved.PreviousStatus())
	suite.Equal(stage.CuttingInProgress, retrieved.SubStatus())
	suite.Equal(item.InHouse, retrieved.PreparationType())
	suite.Equal("received from cutting table", retrieved.Notes())
	suite.WithinDuration(entry.CreatedAt(), retrieved.CreatedAt(), time.Millisecond)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestDeleteByItem_RemovesAllEntriesOfItem() {
	ctx := context.Background()

	itemID := kernel.NewUUID()
	otherItemID := kernel.NewUUID()

	first := createTestEntry(suite.T(), itemID)
	second := createTestEntry(suite.T(), itemID)
	unrelated := createTestEntry(suite.T(), otherItemID)

	suite.Require().NoError(suite.repository.Append(ctx, first))
	suite.Require().NoError(suite.repository.Append(ctx, second))
	suite.Require().NoError(suite.repository.Append(ctx, unrelated))

	err := suite.repository.DeleteByItem(ctx, itemID)
	suite.Require().NoError(err)

	_, err = suite.repository.Get(ctx, first.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.Get(ctx, second.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	// Entries of other items stay untouched.
	retrieved, err := suite.repository.Get(ctx, unrelated.ID())
	suite.Require().NoError(err)
	suite.Equal(unrelated.ID(), retrieved.ID())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestDeleteByItem_NoEntriesIsNotAnError() {
	ctx := context.Background()

	err := suite.repository.DeleteByItem(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
}

func createTestEntry(t *testing.T, itemID kernel.UUID) *tracking.Entry {
	t.Helper()

	entry, err := tracking.NewEntry(
		kernel.NewUUID(), itemID, kernel.NewUUID(), kernel.NewUUID(),
		tracking.ActionCheckIn,
		item.CheckedIn, item.Pending,
		stage.CuttingInProgress,
		item.InHouse,
		"received from cutting table",
	)
	if err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}
	return entry
}

func TestTrackingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingRepositoryIntegrationTestSuite))
}
