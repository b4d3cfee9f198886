package domain

import (
	"context"
	"time"
)

// CreateRequest is the shared input for both request kinds.
type CreateRequest struct {
	TransactionID string `json:"transaction_id"`
	StaffID       string `json:"staff_id"`
	Notes         string `json:"notes,omitempty"`
}

// CreateForTableRequest fans a print-bill request out across every open
// transaction on one table.
type CreateForTableRequest struct {
	TableID string `json:"table_id"`
	StaffID string `json:"staff_id"`
	Notes   string `json:"notes,omitempty"`
}

type CompleteRequest struct {
	RequestID   string `json:"request_id"`
	CompletedBy string `json:"completed_by,omitempty"`
}

type Response struct {
	Request *BillRequest `json:"request"`
	// Existing is true when an already-pending request was returned
	// instead of a newly created one.
	Existing bool   `json:"existing"`
	Message  string `json:"message"`
}

type CreateForTableResponse struct {
	TableID    string   `json:"table_id"`
	Count      int      `json:"count"`
	RequestIDs []string `json:"request_ids"`
	Message    string   `json:"message"`
}

type PendingRequest struct {
	RequestID     string    `json:"request_id"`
	TransactionID string    `json:"transaction_id"`
	StaffID       string    `json:"staff_id"`
	StaffName     string    `json:"staff_name"`
	TableID       *string   `json:"table_id,omitempty"`
	TableName     *string   `json:"table_name,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	RequestedAt   time.Time `json:"requested_at"`
}

// Service is the request queue: mobile devices append, the desktop terminal
// polls ListPending and terminates requests by completing or cancelling.
type Service interface {
	CreatePrintBill(ctx context.Context, req CreateRequest) (*Response, error)
	CreatePrintBillForTable(ctx context.Context, req CreateForTableRequest) (*CreateForTableResponse, error)
	CreatePayEntireBill(ctx context.Context, req CreateRequest) (*Response, error)
	ListPending(ctx context.Context, kind Kind) ([]PendingRequest, error)
	Complete(ctx context.Context, req CompleteRequest) (bool, error)
	Cancel(ctx context.Context, requestID string) (bool, error)
}
