package queries_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres/itemrepo"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type ListItemsQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.ListItemsQueryHandler
}

func (suite *ListItemsQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&itemrepo.ItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewListItemsQueryHandler(db)
}

func (suite *ListItemsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ListItemsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE items").Error
	suite.Require().NoError(err)
}

func (suite *ListItemsQueryHandlerTestSuite) seedItem(
	externalItemID, storeName string,
	visibility *item.Visibility,
) *item.Item {
	aggregate, err := item.NewItem(
		kernel.NewUUID(),
		"ORD-LIST", externalItemID, storeName,
		"Leather bag", "SKU-BAG-01",
		1,
		true, false,
		visibility,
	)
	suite.Require().NoError(err)

	repo := itemrepo.NewGormItemRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *ListItemsQueryHandlerTestSuite) TestHandle_EmptyDatabase() {
	query, err := queries.NewListItemsQuery(queries.ItemFilters{}, queries.RoleFilter{}, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result.Items)
	suite.Equal(0, result.Total)
	suite.Equal(1, result.Page)
	suite.Equal(1, result.LastPage)
}

func (suite *ListItemsQueryHandlerTestSuite) TestHandle_FiltersByStore() {
	suite.seedItem("ITEM-1", "atelier-main", nil)
	suite.seedItem("ITEM-2", "atelier-main", nil)
	suite.seedItem("ITEM-3", "atelier-outlet", nil)

	query, err := queries.NewListItemsQuery(
		queries.ItemFilters{StoreName: "atelier-main"}, queries.RoleFilter{}, 1, 20,
	)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(2, result.Total)
	suite.Len(result.Items, 2)
	for _, listed := range result.Items {
		suite.Equal("atelier-main", listed.StoreName)
	}
}

func (suite *ListItemsQueryHandlerTestSuite) TestHandle_FiltersByStatusAndDepartment() {
	department := kernel.NewUUID()

	checkedIn := suite.seedItem("ITEM-1", "atelier-main", nil)
	suite.Require().NoError(checkedIn.CheckIn(department, item.InHouse, stage.CuttingInProgress))
	repo := itemrepo.NewGormItemRepository(suite.db, noopTracker{})
	suite.Require().NoError(repo.Update(context.Background(), checkedIn))

	suite.seedItem("ITEM-2", "atelier-main", nil)

	query, err := queries.NewListItemsQuery(
		queries.ItemFilters{Status: item.CheckedIn, DepartmentID: &department},
		queries.RoleFilter{},
		1, 20,
	)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal(checkedIn.ID(), result.Items[0].ID)
	suite.Equal("checked_in", result.Items[0].Status)
	suite.Require().NotNil(result.Items[0].CurrentDepartmentID)
	suite.Equal(department, *result.Items[0].CurrentDepartmentID)
}

func (suite *ListItemsQueryHandlerTestSuite) TestHandle_HiddenItemsExcludedFromTotals() {
	roleID := kernel.NewUUID()
	visibility, err := item.NewVisibility([]kernel.UUID{roleID}, nil)
	suite.Require().NoError(err)

	public := suite.seedItem("ITEM-1", "atelier-main", nil)
	restricted := suite.seedItem("ITEM-2", "atelier-main", visibility)

	// Without the role only the public item is listed, and totals reflect that.
	query, err := queries.NewListItemsQuery(queries.ItemFilters{}, queries.RoleFilter{}, 1, 20)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(1, result.Total)
	suite.Require().Len(result.Items, 1)
	suite.Equal(public.ID(), result.Items[0].ID)

	// With the role both items are listed.
	query, err = queries.NewListItemsQuery(
		queries.ItemFilters{}, queries.RoleFilter{RoleIDs: []kernel.UUID{roleID}}, 1, 20,
	)
	suite.Require().NoError(err)

	result, err = suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(2, result.Total)
	listedIDs := []kernel.UUID{result.Items[0].ID, result.Items[1].ID}
	suite.Contains(listedIDs, restricted.ID())
}

func (suite *ListItemsQueryHandlerTestSuite) TestHandle_Pagination() {
	for i := range 5 {
		suite.seedItem(fmt.Sprintf("ITEM-%d", i+1), "atelier-main", nil)
	}

	query, err := queries.NewListItemsQuery(queries.ItemFilters{}, queries.RoleFilter{}, 2, 2)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result.Items, 2)
	suite.Equal(5, result.Total)
	suite.Equal(2, result.Page)
	suite.Equal(3, result.LastPage)

	// The page past the end is empty but keeps the totals.
	query, err = queries.NewListItemsQuery(queries.ItemFilters{}, queries.RoleFilter{}, 4, 2)
	suite.Require().NoError(err)

	result, err = suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result.Items)
	suite.Equal(5, result.Total)
	suite.Equal(3, result.LastPage)
}

func (suite *ListItemsQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.ListItemsQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewListItemsQuery constructor")
}

func TestListItemsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ListItemsQueryHandlerTestSuite))
}
