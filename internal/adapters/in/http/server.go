// Package http exposes the tracking workflows over REST. It coordinates
// between HTTP handlers and application use cases; all business rules live
// in the command and query layer.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/item"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/stage"

	"github.com/labstack/echo/v4"
)

// Server handles HTTP requests for the tracking API.
type Server struct {
	// Command handlers
	checkInHandler           commands.CheckInCommandHandler
	checkOutHandler          commands.CheckOutCommandHandler
	updateStatusHandler      commands.UpdateStatusCommandHandler
	returnToStageHandler     commands.ReturnToStageCommandHandler
	ingestItemsHandler       commands.IngestItemsCommandHandler
	generateScanTokenHandler commands.GenerateScanTokenCommandHandler
	deleteItemHandler        commands.DeleteItemCommandHandler

	// Query handlers
	getItemByScanTokenHandler  queries.GetItemByScanTokenQueryHandler
	listItemsHandler           queries.ListItemsQueryHandler
	listTrackingHistoryHandler queries.ListTrackingHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkInHandler commands.CheckInCommandHandler,
	checkOutHandler commands.CheckOutCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	returnToStageHandler commands.ReturnToStageCommandHandler,
	ingestItemsHandler commands.IngestItemsCommandHandler,
	generateScanTokenHandler commands.GenerateScanTokenCommandHandler,
	deleteItemHandler commands.DeleteItemCommandHandler,
	getItemByScanTokenHandler queries.GetItemByScanTokenQueryHandler,
	listItemsHandler queries.ListItemsQueryHandler,
	listTrackingHistoryHandler queries.ListTrackingHistoryQueryHandler,
) *Server {
	return &Server{
		checkInHandler:             checkInHandler,
		checkOutHandler:            checkOutHandler,
		updateStatusHandler:        updateStatusHandler,
		returnToStageHandler:       returnToStageHandler,
		ingestItemsHandler:         ingestItemsHandler,
		generateScanTokenHandler:   generateScanTokenHandler,
		deleteItemHandler:          deleteItemHandler,
		getItemByScanTokenHandler:  getItemByScanTokenHandler,
		listItemsHandler:           listItemsHandler,
		listTrackingHistoryHandler: listTrackingHistoryHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/items", s.IngestItems)
	api.GET("/items", s.ListItems)
	api.DELETE("/items/:id", s.DeleteItem)
	api.POST("/items/:id/token", s.GenerateScanToken)
	api.GET("/items/:id/history", s.ListTrackingHistory)

	api.GET("/scan/:token", s.GetItemByScanToken)
	api.POST("/scan/:token/check-in", s.CheckIn)
	api.POST("/scan/:token/check-out", s.CheckOut)
	api.POST("/scan/:token/status", s.UpdateStatus)
	api.POST("/scan/:token/return", s.ReturnToStage)
}

// CheckIn handles POST /api/v1/scan/:token/check-in - a department receiving an item.
func (s *Server) CheckIn(ctx echo.Context) error {
	token, err := kernel.ScanTokenFromString(ctx.Param("token"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid scan token")
	}

	var request workflowRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	departmentID, actorID, err := parseActingPair(request)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	preparation, subStatus, err := parseStageFields(request)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCheckInCommand(
		token, departmentID, actorID, request.Password, preparation, subStatus, request.Notes,
	)
	if err != nil {
		return respondBadRequest(ctx, "Invalid check-in data: "+err.Error())
	}

	confirmation, err := s.checkInHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConfirmationResponse(confirmation))
}

// CheckOut handles POST /api/v1/scan/:token/check-out - an item leaving a department.
func (s *Server) CheckOut(ctx echo.Context) error {
	token, err := kernel.ScanTokenFromString(ctx.Param("token"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid scan token")
	}

	var request checkOutRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	departmentID, actorID, err := parseActingPair(request.workflowRequest)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	handoverID, err := kernel.UUIDFromString(request.HandoverDepartmentID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid handover department id")
	}

	cmd, err := commands.NewCheckOutCommand(
		token, departmentID, actorID, request.Password, handoverID, request.Notes,
	)
	if err != nil {
		return respondBadRequest(ctx, "Invalid check-out data: "+err.Error())
	}

	confirmation, err := s.checkOutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConfirmationResponse(confirmation))
}

// UpdateStatus handles POST /api/v1/scan/:token/status - a lifecycle move.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	token, err := kernel.ScanTokenFromString(ctx.Param("token"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid scan token")
	}

	var request updateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	newStatus, err := item.StatusFromString(request.NewStatus)
	if err != nil {
		return respondBadRequest(ctx, "Invalid status: "+request.NewStatus)
	}

	departmentID, actorID, err := parseActingPair(request.workflowRequest)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	preparation, subStatus, err := parseStageFields(request.workflowRequest)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateStatusCommand(
		token, newStatus, departmentID, actorID, request.Password, preparation, subStatus, request.Notes,
	)
	if err != nil {
		return respondBadRequest(ctx, "Invalid status update data: "+err.Error())
	}

	confirmation, err := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConfirmationResponse(confirmation))
}

// ReturnToStage handles POST /api/v1/scan/:token/return - sending an item back
// to an earlier production stage for rework.
func (s *Server) ReturnToStage(ctx echo.Context) error {
	token, err := kernel.ScanTokenFromString(ctx.Param("token"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid scan token")
	}

	var request returnToStageRequest
	if err = ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	targetStage, err := stage.SubStatusFromString(request.TargetStage)
	if err != nil {
		return respondBadRequest(ctx, "Invalid target stage: "+request.TargetStage)
	}

	departmentID, actorID, err := parseActingPair(request.workflowRequest)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	cmd, err := commands.NewReturnToStageCommand(
		token, targetStage, departmentID, actorID, request.Password, request.Reason, request.Notes,
	)
	if err != nil {
		return respondBadRequest(ctx, "Invalid return data: "+err.Error())
	}

	confirmation, err := s.returnToStageHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toConfirmationResponse(confirmation))
}

// IngestItems handles POST /api/v1/items - registering order items for tracking.
func (s *Server) IngestItems(ctx echo.Context) error {
	var request ingestRequest
	if err := ctx.Bind(&request); err != nil {
		return respondBadRequest(ctx, "Invalid request body")
	}

	roleIDs, err := parseUUIDList(request.RoleIDs)
	if err != nil {
		return respondBadRequest(ctx, "Invalid role id: "+err.Error())
	}

	items := make([]commands.IngestItem, 0, len(request.Items))
	for _, entry := range request.Items {
		items = append(items, commands.IngestItem{
			ExternalOrderID: entry.ExternalOrderID,
			ExternalItemID:  entry.ExternalItemID,
			ProductName:     entry.ProductName,
			ProductSKU:      entry.ProductSKU,
			Quantity:        entry.Quantity,
			IsLeather:       entry.IsLeather,
			IsPattern:       entry.IsPattern,
		})
	}

	cmd, err := commands.NewIngestItemsCommand(items, request.StoreName, roleIDs, request.RoleNames)
	if err != nil {
		return respondBadRequest(ctx, "Invalid ingestion data: "+err.Error())
	}

	result, err := s.ingestItemsHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	createdIDs := make([]string, 0, len(result.CreatedIDs))
	for _, id := range result.CreatedIDs {
		createdIDs = append(createdIDs, id.String())
	}

	return ctx.JSON(http.StatusCreated, ingestResponse{
		CreatedIDs: createdIDs,
		Skipped:    result.Skipped,
	})
}

// GenerateScanToken handles POST /api/v1/items/:id/token - rotating an item's
// scan token, for example after a damaged label is reprinted.
func (s *Server) GenerateScanToken(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewGenerateScanTokenCommand(itemID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid token request: "+err.Error())
	}

	token, err := s.generateScanTokenHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, scanTokenResponse{ScanToken: token.String()})
}

// DeleteItem handles DELETE /api/v1/items/:id - removing an item and its ledger.
func (s *Server) DeleteItem(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewDeleteItemCommand(itemID)
	if err != nil {
		return respondBadRequest(ctx, "Invalid delete request: "+err.Error())
	}

	if err = s.deleteItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetItemByScanToken handles GET /api/v1/scan/:token - resolving a scanned code.
func (s *Server) GetItemByScanToken(ctx echo.Context) error {
	token, err := kernel.ScanTokenFromString(ctx.Param("token"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid scan token")
	}

	roles, err := parseRoleFilter(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	query, err := queries.NewGetItemByScanTokenQuery(token, roles)
	if err != nil {
		return respondBadRequest(ctx, "Invalid lookup: "+err.Error())
	}

	result, err := s.getItemByScanTokenHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackedItem(result))
}

// ListItems handles GET /api/v1/items - listing tracked items.
func (s *Server) ListItems(ctx echo.Context) error {
	roles, err := parseRoleFilter(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	filters := queries.ItemFilters{StoreName: ctx.QueryParam("store")}

	if raw := ctx.QueryParam("status"); raw != "" {
		status, statusErr := item.StatusFromString(raw)
		if statusErr != nil {
			return respondBadRequest(ctx, "Invalid status: "+raw)
		}
		filters.Status = status
	}

	if raw := ctx.QueryParam("departmentId"); raw != "" {
		departmentID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return respondBadRequest(ctx, "Invalid department id")
		}
		filters.DepartmentID = &departmentID
	}

	page, limit := parsePagination(ctx)

	query, err := queries.NewListItemsQuery(filters, roles, page, limit)
	if err != nil {
		return respondBadRequest(ctx, "Invalid listing: "+err.Error())
	}

	result, err := s.listItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	items := make([]trackedItem, 0, len(result.Items))
	for _, listed := range result.Items {
		items = append(items, toTrackedItem(listed))
	}

	return ctx.JSON(http.StatusOK, itemListResponse{
		Items:    items,
		Total:    result.Total,
		Page:     result.Page,
		LastPage: result.LastPage,
	})
}

// ListTrackingHistory handles GET /api/v1/items/:id/history - an item's ledger.
func (s *Server) ListTrackingHistory(ctx echo.Context) error {
	itemID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondBadRequest(ctx, "Invalid item id")
	}

	roles, err := parseRoleFilter(ctx)
	if err != nil {
		return respondBadRequest(ctx, err.Error())
	}

	var departmentID *kernel.UUID
	if raw := ctx.QueryParam("departmentId"); raw != "" {
		id, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return respondBadRequest(ctx, "Invalid department id")
		}
		departmentID = &id
	}

	page, limit := parsePagination(ctx)

	query, err := queries.NewListTrackingHistoryQuery(itemID, departmentID, roles, page, limit)
	if err != nil {
		return respondBadRequest(ctx, "Invalid history listing: "+err.Error())
	}

	result, err := s.listTrackingHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	entries := make([]trackingEntry, 0, len(result.Entries))
	for _, entry := range result.Entries {
		entries = append(entries, toHistoryEntry(entry))
	}

	return ctx.JSON(http.StatusOK, historyResponse{
		Entries:  entries,
		Total:    result.Total,
		Page:     result.Page,
		LastPage: result.LastPage,
	})
}

// parseActingPair reads the acting department and actor ids shared by all
// workflow requests.
func parseActingPair(request workflowRequest) (kernel.UUID, kernel.UUID, error) {
	departmentID, err := kernel.UUIDFromString(request.DepartmentID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid department id")
	}

	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("Invalid actor id")
	}

	return departmentID, actorID, nil
}

// parseStageFields reads the optional preparation type and sub-status fields.
func parseStageFields(request workflowRequest) (item.PreparationType, stage.SubStatus, error) {
	preparation, err := item.PreparationTypeFromString(request.PreparationType)
	if err != nil {
		return item.PreparationNone, stage.SubStatusUnknown, err
	}

	subStatus := stage.SubStatusUnknown
	if request.SubStatus != "" {
		if subStatus, err = stage.SubStatusFromString(request.SubStatus); err != nil {
			return item.PreparationNone, stage.SubStatusUnknown, err
		}
	}

	return preparation, subStatus, nil
}

// parseRoleFilter reads the caller's roles from query parameters. In a full
// deployment these come from the authenticated session; the API accepts them
// as parameters so field devices can pass through what the gateway resolved.
func parseRoleFilter(ctx echo.Context) (queries.RoleFilter, error) {
	filter := queries.RoleFilter{
		RoleName:  ctx.QueryParam("roleName"),
		RoleNames: splitList(ctx.QueryParam("roleNames")),
	}

	if raw := ctx.QueryParam("roleId"); raw != "" {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return queries.RoleFilter{}, errors.New("Invalid role id")
		}
		filter.RoleID = &id
	}

	ids, err := parseUUIDList(splitList(ctx.QueryParam("roleIds")))
	if err != nil {
		return queries.RoleFilter{}, errors.New("Invalid role id")
	}
	filter.RoleIDs = ids

	return filter, nil
}

func parseUUIDList(raw []string) ([]kernel.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parsePagination reads page/limit query parameters with defaults.
func parsePagination(ctx echo.Context) (int, int) {
	page := 1
	if raw := ctx.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	limit := 20
	if raw := ctx.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	return page, limit
}
