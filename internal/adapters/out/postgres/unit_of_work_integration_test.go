package postgres_test

import (
	"context"
	"sync"
	"testing"

	postgres_adapter "tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/itemrepo"
	"tracking/internal/adapters/out/postgres/trackingrepo"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides integration testing for the
// GORM-based Unit of Work implementation with a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(&itemrepo.ItemDTO{}, &trackingrepo.EntryDTO{})
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE items, tracking_entries").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.ItemRepository(), "First instance should provide item repository")
	suite.NotNil(uow1.TrackingRepository(), "First instance should provide tracking repository")
	suite.NotNil(uow2.ItemRepository(), "Second instance should provide item repository")
	suite.NotNil(uow2.TrackingRepository(), "Second instance should provide tracking repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_WorkflowTransaction verifies a full workflow mutation: the
// item projection update and the ledger append commit as one unit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WorkflowTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testItem := createWorkflowItem(suite.T())
	department := kernel.NewUUID()
	actor := kernel.NewUUID()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ItemRepository().Add(ctx, testItem)
	suite.Require().NoError(err)

	previousStatus := testItem.Status()
	err = testItem.CheckIn(department, item.InHouse, stage.CuttingInProgress)
	suite.Require().NoError(err)
	err = uow.ItemRepository().Update(ctx, testItem)
	suite.Require().NoError(err)

	entry, err := tracking.NewEntry(
		kernel.NewUUID(), testItem.ID(), department, actor,
		tracking.ActionCheckIn,
		testItem.Status(), previousStatus,
		testItem.SubStatus(), testItem.PreparationType(),
		"",
	)
	suite.Require().NoError(err)
	err = uow.TrackingRepository().Append(ctx, entry)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify both writes persisted using a new unit of work
	newUow := suite.factory.Create()
	retrieved, err := newUow.ItemRepository().Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Equal(item.CheckedIn, retrieved.Status())

	retrievedEntry, err := newUow.TrackingRepository().Get(ctx, entry.ID())
	suite.Require().NoError(err)
	suite.Equal(testItem.ID(), retrievedEntry.ItemID())
}

// TestUnitOfWork_TransactionRollback verifies rollback discards the item
// update and the ledger append together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()

	testItem := createWorkflowItem(suite.T())
	department := kernel.NewUUID()
	actor := kernel.NewUUID()

	// Persist the item outside the transaction under test.
	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.Begin(ctx))
	suite.Require().NoError(setupUow.ItemRepository().Add(ctx, testItem))
	suite.Require().NoError(setupUow.Commit(ctx))

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	previousStatus := testItem.Status()
	suite.Require().NoError(testItem.CheckIn(department, item.InHouse, stage.CuttingInProgress))
	suite.Require().NoError(uow.ItemRepository().Update(ctx, testItem))

	entry, err := tracking.NewEntry(
		kernel.NewUUID(), testItem.ID(), department, actor,
		tracking.ActionCheckIn,
		testItem.Status(), previousStatus,
		testItem.SubStatus(), testItem.PreparationType(),
		"",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingRepository().Append(ctx, entry))

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Item is back to its pre-transaction state, ledger entry gone.
	newUow := suite.factory.Create()
	retrieved, err := newUow.ItemRepository().Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Equal(item.Pending, retrieved.Status())

	_, err = newUow.TrackingRepository().Get(ctx, entry.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUnitOfWork_ConcurrentCheckInsSerialize verifies the row lock taken by
// the scan-token read: two simultaneous check-ins at the same department run
// one after the other, so exactly one succeeds and the loser observes the
// winner's committed state.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentCheckInsSerialize() {
	ctx := context.Background()

	testItem := createWorkflowItem(suite.T())
	department := kernel.NewUUID()
	actor := kernel.NewUUID()

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.Begin(ctx))
	suite.Require().NoError(setupUow.ItemRepository().Add(ctx, testItem))
	suite.Require().NoError(setupUow.Commit(ctx))

	checkIn := func() error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback(ctx) //nolint:errcheck //no-op after commit

		current, err := uow.ItemRepository().GetByScanToken(ctx, testItem.ScanToken())
		if err != nil {
			return err
		}

		previousStatus := current.Status()
		if err := current.CheckIn(department, item.InHouse, stage.CuttingInProgress); err != nil {
			return err
		}
		if err := uow.ItemRepository().Update(ctx, current); err != nil {
			return err
		}

		entry, err := tracking.NewEntry(
			kernel.NewUUID(), current.ID(), department, actor,
			tracking.ActionCheckIn,
			current.Status(), previousStatus,
			current.SubStatus(), current.PreparationType(),
			"",
		)
		if err != nil {
			return err
		}
		if err := uow.TrackingRepository().Append(ctx, entry); err != nil {
			return err
		}

		return uow.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			results[slot] = checkIn()
		}(i)
	}
	wg.Wait()

	successes, alreadyCheckedIn := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		default:
			suite.Require().ErrorIs(err, errs.ErrAlreadyCheckedIn)
			alreadyCheckedIn++
		}
	}
	suite.Equal(1, successes, "exactly one concurrent check-in should win")
	suite.Equal(1, alreadyCheckedIn, "the loser should see the winner's committed state")

	// Exactly one ledger entry was written.
	var count int64
	err := suite.db.Model(&trackingrepo.EntryDTO{}).
		Where("item_id = ?", testItem.ID().Bytes()).
		Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
}

// TestUnitOfWork_RepositoryWithoutTransaction verifies repositories work in
// auto-commit mode when no transaction was started.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testItem := createWorkflowItem(suite.T())
	err := uow.ItemRepository().Add(ctx, testItem)
	suite.Require().NoError(err)

	retrieved, err := suite.factory.Create().ItemRepository().Get(ctx, testItem.ID())
	suite.Require().NoError(err)
	suite.Equal(testItem.ID(), retrieved.ID())
}

func createWorkflowItem(t *testing.T) *item.Item {
	t.Helper()

	aggregate, err := item.NewItem(
		kernel.NewUUID(),
		"ORD-700", "ITEM-1", "atelier-main",
		"Leather satchel", "SKU-SATCHEL-01",
		1,
		true, false,
		nil,
	)
	if err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return aggregate
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
