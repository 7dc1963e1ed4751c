package commands_test

import (
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusCommandHandler_Handle_MoveToInProgress(t *testing.T) {
	// Arrange
	ctx := t.Context()
	deptID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	trackedItem := restoreHolding(t, item.CheckedIn, deptID)

	cmd, err := commands.NewUpdateStatusCommand(
		trackedItem.ScanToken(), item.InProgress, deptID, actorID, "secret",
		item.PreparationNone, stage.CuttingInProgress, "",
	)
	require.NoError(t, err)

	mockVerifier := new(MockActorVerifier)
	mockDirectory := new(MockDepartmentDirectory)
	mockItemRepo := new(MockItemRepository)
	mockTrackingRepo := new(MockTrackingRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockVerifier.On("Verify", ctx, actorID, "secret").
		Return(ports.Actor{ID: actorID, Name: "Maja"}, nil).Once()
	mockDirectory.On("Lookup", ctx, deptID).
		Return(ports.Department{ID: deptID, Name: "cutting"}, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ItemRepository").Return(mockItemRepo).Once(),
		mockItemRepo.On("GetByScanToken", ctx, trackedItem.ScanToken()).Return(trackedItem, nil).Once(),
		mockItemRepo.On("Update", ctx, trackedItem).Return(nil).Once(),
		mockUoW.On("TrackingRepository").Return(mockTrackingRepo).Once(),
		mockTrackingRepo.On("Append", ctx, mock.AnythingOfType("*tracking.Entry")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateStatusCommandHandler(mockFactory, mockVerifier, mockDirectory)

	// Act
	confirmation, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, item.InProgress, trackedItem.Status())
	require.NotNil(t, trackedItem.CurrentDepartment())
	assert.True(t, trackedItem.CurrentDepartment().IsEqual(deptID))
	assert.Equal(t, tracking.ActionStatusUpdate, confirmation.Entry.Action())
	mockUoW.AssertExpectations(t)
}

func TestUpdateStatusCommandHandler_Handle_CheckedOutToCheckedInSkipsHandoverMatch(t *testing.T) {
	// The status-update entry point deliberately does not enforce the handover
	// department, unlike check-in.

	// Arrange
	ctx := t.Context()
	lastDept := kernel.NewUUID()
	handoverDept := kernel.NewUUID()
	otherDept := kernel.NewUUID()
	actorID := kernel.NewUUID()
	trackedItem := restoreCheckedOut(t, lastDept, handoverDept)

	cmd, err := commands.NewUpdateStatusCommand(
		trackedItem.ScanToken(), item.CheckedIn, otherDept, actorID, "secret",
		item.PreparationNone, stage.SubStatusUnknown, "",
	)
	require.NoError(t, err)

	mockVerifier := new(MockActorVerifier)
	mockDirectory := new(MockDepartmentDirectory)
	mockItemRepo := new(MockItemRepository)
	mockTrackingRepo := new(MockTrackingRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockVerifier.On("Verify", ctx, actorID, "secret").
		Return(ports.Actor{ID: actorID, Name: "Maja"}, nil).Once()
	mockDirectory.On("Lookup", ctx, otherDept).
		Return(ports.Department{ID: otherDept, Name: "stitching"}, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ItemRepository").Return(mockItemRepo).Once(),
		mockItemRepo.On("GetByScanToken", ctx, trackedItem.ScanToken()).Return(trackedItem, nil).Once(),
		mockItemRepo.On("Update", ctx, trackedItem).Return(nil).Once(),
		mockUoW.On("TrackingRepository").Return(mockTrackingRepo).Once(),
		mockTrackingRepo.On("Append", ctx, mock.AnythingOfType("*tracking.Entry")).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateStatusCommandHandler(mockFactory, mockVerifier, mockDirectory)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, item.CheckedIn, trackedItem.Status())
	require.NotNil(t, trackedItem.CurrentDepartment())
	assert.True(t, trackedItem.CurrentDepartment().IsEqual(otherDept))
	assert.Nil(t, trackedItem.HandoverTarget())
}

func TestUpdateStatusCommandHandler_Handle_InvalidTransitionRejected(t *testing.T) {
	// Arrange
	ctx := t.Context()
	deptID := kernel.NewUUID()
	actorID := kernel.NewUUID()
	trackedItem := restorePending(t)

	cmd, err := commands.NewUpdateStatusCommand(
		trackedItem.ScanToken(), item.Shipped, deptID, actorID, "secret",
		item.PreparationNone, stage.SubStatusUnknown, "",
	)
	require.NoError(t, err)

	mockVerifier := new(MockActorVerifier)
	mockDirectory := new(MockDepartmentDirectory)
	mockItemRepo := new(MockItemRepository)
	mockUoW := new(MockUoW)
	mockFactory := new(MockUoWFactory)

	mockVerifier.On("Verify", ctx, actorID, "secret").
		Return(ports.Actor{ID: actorID, Name: "Maja"}, nil).Once()
	mockDirectory.On("Lookup", ctx, deptID).
		Return(ports.Department{ID: deptID, Name: "logistics"}, nil).Once()
	mockFactory.On("Create").Return(mockUoW).Once()

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("ItemRepository").Return(mockItemRepo).Once(),
		mockItemRepo.On("GetByScanToken", ctx, trackedItem.ScanToken()).Return(trackedItem, nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewUpdateStatusCommandHandler(mockFactory, mockVerifier, mockDirectory)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.Equal(t, item.Pending, trackedItem.Status())
	mockUoW.AssertNotCalled(t, "Commit", ctx)
}
