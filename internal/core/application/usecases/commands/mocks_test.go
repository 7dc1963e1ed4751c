package commands_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations shared by the handler tests in this package.

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, aggregate *item.Item) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) GetByScanToken(ctx context.Context, token kernel.ScanToken) (*item.Item, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) GetByExternalIdentity(ctx context.Context, externalOrderID, externalItemID string) (*item.Item, error) {
	args := m.Called(ctx, externalOrderID, externalItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTrackingRepository struct {
	mock.Mock
}

func (m *MockTrackingRepository) Append(ctx context.Context, entry *tracking.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTrackingRepository) Get(ctx context.Context, id kernel.UUID) (*tracking.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Entry), args.Error(1)
}

func (m *MockTrackingRepository) DeleteByItem(ctx context.Context, itemID kernel.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockItemUoWFactory struct {
	mock.Mock
}

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	args := m.Called()
	return args.Get(0).(commands.ItemUoW)
}

type MockActorVerifier struct {
	mock.Mock
}

func (m *MockActorVerifier) Verify(ctx context.Context, userID kernel.UUID, password string) (ports.Actor, error) {
	args := m.Called(ctx, userID, password)
	return args.Get(0).(ports.Actor), args.Error(1)
}

type MockDepartmentDirectory struct {
	mock.Mock
}

func (m *MockDepartmentDirectory) Lookup(ctx context.Context, id kernel.UUID) (ports.Department, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(ports.Department), args.Error(1)
}

type MockRoleDirectory struct {
	mock.Mock
}

func (m *MockRoleDirectory) LookupByIDs(ctx context.Context, ids []kernel.UUID) ([]ports.Role, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Role), args.Error(1)
}

func (m *MockRoleDirectory) LookupByNames(ctx context.Context, names []string) ([]ports.Role, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Role), args.Error(1)
}

// restoreHolding builds an item held by the given department in the given
// lifecycle status, the way the repository would load it.
func restoreHolding(t *testing.T, status item.Status, dept kernel.UUID) *item.Item {
	t.Helper()

	it, err := item.RestoreItem(
		kernel.NewUUID(),
		"ORD-100", "ITEM-1", "atelier-main",
		kernel.NewScanToken(),
		"Leather Tote Bag", "SKU-LTB-01",
		1,
		true, false,
		item.PreparationNone,
		status,
		stage.SubStatusUnknown,
		&dept, nil, nil,
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return it
}

// restorePending builds a freshly ingested item with no department.
func restorePending(t *testing.T) *item.Item {
	t.Helper()

	it, err := item.RestoreItem(
		kernel.NewUUID(),
		"ORD-100", "ITEM-1", "atelier-main",
		kernel.NewScanToken(),
		"Leather Tote Bag", "SKU-LTB-01",
		1,
		true, false,
		item.PreparationNone,
		item.Pending,
		stage.SubStatusUnknown,
		nil, nil, nil,
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return it
}

// restoreCheckedOut builds an item checked out towards the given handover
// department.
func restoreCheckedOut(t *testing.T, lastDept, handoverDept kernel.UUID) *item.Item {
	t.Helper()

	it, err := item.RestoreItem(
		kernel.NewUUID(),
		"ORD-100", "ITEM-1", "atelier-main",
		kernel.NewScanToken(),
		"Leather Tote Bag", "SKU-LTB-01",
		1,
		true, false,
		item.PreparationNone,
		item.CheckedOut,
		stage.SubStatusUnknown,
		nil, &lastDept, &handoverDept,
		nil,
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return it
}
