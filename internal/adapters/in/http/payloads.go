package http

import (
	"strings"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// workflowRequest carries the fields shared by every workflow mutation:
// who is acting, where, and their password.
type workflowRequest struct {
	DepartmentID    string `json:"departmentId"`
	ActorID         string `json:"actorId"`
	Password        string `json:"password"`
	PreparationType string `json:"preparationType,omitempty"`
	SubStatus       string `json:"subStatus,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type checkOutRequest struct {
	workflowRequest
	HandoverDepartmentID string `json:"handoverDepartmentId"`
}

type updateStatusRequest struct {
	workflowRequest
	NewStatus string `json:"newStatus"`
}

type returnToStageRequest struct {
	workflowRequest
	TargetStage string `json:"targetStage"`
	Reason      string `json:"reason,omitempty"`
}

type ingestRequest struct {
	StoreName string            `json:"storeName"`
	RoleIDs   []string          `json:"roleIds,omitempty"`
	RoleNames []string          `json:"roleNames,omitempty"`
	Items     []ingestItemEntry `json:"items"`
}

type ingestItemEntry struct {
	ExternalOrderID string `json:"externalOrderId"`
	ExternalItemID  string `json:"externalItemId"`
	ProductName     string `json:"productName"`
	ProductSKU      string `json:"productSku,omitempty"`
	Quantity        int    `json:"quantity"`
	IsLeather       bool   `json:"isLeather,omitempty"`
	IsPattern       bool   `json:"isPattern,omitempty"`
}

type ingestResponse struct {
	CreatedIDs []string `json:"createdIds"`
	Skipped    int      `json:"skipped"`
}

type scanTokenResponse struct {
	ScanToken string `json:"scanToken"`
}

type confirmationResponse struct {
	Message string        `json:"message"`
	Entry   trackingEntry `json:"entry"`
}

type trackingEntry struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"itemId"`
	DepartmentID    string    `json:"departmentId"`
	ActorID         string    `json:"actorId"`
	Action          string    `json:"action"`
	Status          string    `json:"status"`
	PreviousStatus  string    `json:"previousStatus"`
	SubStatus       string    `json:"subStatus,omitempty"`
	PreparationType string    `json:"preparationType,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type trackedItem struct {
	ID              string `json:"id"`
	ExternalOrderID string `json:"externalOrderId"`
	ExternalItemID  string `json:"externalItemId"`
	StoreName       string `json:"storeName"`
	ScanToken       string `json:"scanToken"`
	ProductName     string `json:"productName"`
	ProductSKU      string `json:"productSku,omitempty"`
	Quantity        int    `json:"quantity"`
	IsLeather       bool   `json:"isLeather"`
	IsPattern       bool   `json:"isPattern"`
	PreparationType string `json:"preparationType,omitempty"`
	Status          string `json:"status"`
	SubStatus       string `json:"subStatus,omitempty"`

	CurrentDepartmentID *string `json:"currentDepartmentId,omitempty"`
	LastDepartmentID    *string `json:"lastDepartmentId,omitempty"`
	HandoverTargetID    *string `json:"handoverTargetId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type itemListResponse struct {
	Items    []trackedItem `json:"items"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	LastPage int           `json:"lastPage"`
}

type historyResponse struct {
	Entries  []trackingEntry `json:"entries"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	LastPage int             `json:"lastPage"`
}

func toConfirmationResponse(confirmation commands.Confirmation) confirmationResponse {
	return confirmationResponse{
		Message: confirmation.Message,
		Entry:   toTrackingEntry(confirmation.Entry),
	}
}

func toTrackingEntry(entry *tracking.Entry) trackingEntry {
	var subStatus string
	if s := entry.SubStatus().String(); s != "" {
		subStatus = s
	}

	return trackingEntry{
		ID:              entry.ID().String(),
		ItemID:          entry.ItemID().String(),
		DepartmentID:    entry.DepartmentID().String(),
		ActorID:         entry.ActorID().String(),
		Action:          entry.Action().String(),
		Status:          entry.Status().String(),
		PreviousStatus:  entry.PreviousStatus().String(),
		SubStatus:       subStatus,
		PreparationType: entry.PreparationType().String(),
		Notes:           entry.Notes(),
		CreatedAt:       entry.CreatedAt(),
	}
}

func toTrackedItem(response queries.ItemResponse) trackedItem {
	return trackedItem{
		ID:                  response.ID.String(),
		ExternalOrderID:     response.ExternalOrderID,
		ExternalItemID:      response.ExternalItemID,
		StoreName:           response.StoreName,
		ScanToken:           response.ScanToken,
		ProductName:         response.ProductName,
		ProductSKU:          response.ProductSKU,
		Quantity:            response.Quantity,
		IsLeather:           response.IsLeather,
		IsPattern:           response.IsPattern,
		PreparationType:     response.PreparationType,
		Status:              response.Status,
		SubStatus:           response.SubStatus,
		CurrentDepartmentID: optionalID(response.CurrentDepartmentID),
		LastDepartmentID:    optionalID(response.LastDepartmentID),
		HandoverTargetID:    optionalID(response.HandoverTargetID),
		CreatedAt:           response.CreatedAt,
	}
}

func toHistoryEntry(response queries.TrackingEntryResponse) trackingEntry {
	return trackingEntry{
		ID:              response.ID.String(),
		ItemID:          response.ItemID.String(),
		DepartmentID:    response.DepartmentID.String(),
		ActorID:         response.ActorID.String(),
		Action:          response.Action,
		Status:          response.Status,
		PreviousStatus:  response.PreviousStatus,
		SubStatus:       response.SubStatus,
		PreparationType: response.PreparationType,
		Notes:           response.Notes,
		CreatedAt:       response.CreatedAt,
	}
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// splitList parses a comma-separated query parameter into its entries.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
