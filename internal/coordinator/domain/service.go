package domain

import (
	"context"

	taxauditdomain "github.com/smallbiznis/tavolo/internal/taxaudit/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
)

type AddNotesRequest struct {
	TransactionID string `json:"transaction_id"`
	StaffID       string `json:"staff_id"`
	Notes         string `json:"notes"`
}

type AddNotesResponse struct {
	TransactionID string `json:"transaction_id"`
	Notes         string `json:"notes"`
	Message       string `json:"message"`
}

type TransferServerRequest struct {
	TransactionID string `json:"transaction_id"`
	ToStaffID     string `json:"to_staff_id"`
}

type TransferServerResponse struct {
	TransactionID string  `json:"transaction_id"`
	FromStaffID   *string `json:"from_staff_id,omitempty"`
	ToStaffID     string  `json:"to_staff_id"`
	Message       string  `json:"message"`
}

type ShiftHandoverRequest struct {
	FromStaffID string `json:"from_staff_id"`
	ToStaffID   string `json:"to_staff_id"`
}

type ShiftHandoverResponse struct {
	TransactionIDs []string `json:"transaction_ids"`
	Count          int      `json:"count"`
	Message        string   `json:"message"`
}

type MoveOrderRequest struct {
	TransactionID string `json:"transaction_id"`
	ToTableID     string `json:"to_table_id"`
}

type MoveOrderResponse struct {
	TransactionID string  `json:"transaction_id"`
	FromTableID   *string `json:"from_table_id,omitempty"`
	ToTableID     string  `json:"to_table_id"`
	Message       string  `json:"message"`
}

type RefireRequest struct {
	TransactionID string `json:"transaction_id"`
	StaffID       string `json:"staff_id"`
	Reason        string `json:"reason"`
	// ItemIndexes selects a subset of items to refire; empty means all.
	ItemIndexes []int `json:"item_indexes,omitempty"`
}

type RefireResponse struct {
	TransactionID string `json:"transaction_id"`
	ItemsRefired  int    `json:"items_refired"`
	Message       string `json:"message"`
}

type RemoveTaxesRequest struct {
	TransactionID string `json:"transaction_id"`
	StaffID       string `json:"staff_id"`
	Reason        string `json:"reason"`
}

type RemoveTaxesResponse struct {
	TransactionID     string `json:"transaction_id"`
	OriginalTaxAmount int64  `json:"original_tax_amount"`
	ItemsAffected     int    `json:"items_affected"`
	AuditLogID        string `json:"audit_log_id"`
	Message           string `json:"message"`
}

type CombineRequest struct {
	TransactionIDs []string `json:"transaction_ids"`
	TargetTableID  string   `json:"target_table_id"`
	TargetStaffID  string   `json:"target_staff_id"`
	Notes          string   `json:"notes,omitempty"`
}

type CombineResponse struct {
	NewTransactionID string `json:"new_transaction_id"`
	MergedItemsCount int    `json:"merged_items_count"`
	TotalAmount      int64  `json:"total_amount"`
	Message          string `json:"message"`
}

type ListTransactionsRequest struct {
	StaffID string
	TableID string
	Status  trxdomain.TransactionStatus
}

// Service orchestrates the restaurant operations that share the waiting
// transaction state machine.
type Service interface {
	AddNotes(ctx context.Context, req AddNotesRequest) (*AddNotesResponse, error)
	TransferServer(ctx context.Context, req TransferServerRequest) (*TransferServerResponse, error)
	ShiftHandover(ctx context.Context, req ShiftHandoverRequest) (*ShiftHandoverResponse, error)
	MoveOrder(ctx context.Context, req MoveOrderRequest) (*MoveOrderResponse, error)
	Refire(ctx context.Context, req RefireRequest) (*RefireResponse, error)
	RemoveTaxesAndFees(ctx context.Context, req RemoveTaxesRequest) (*RemoveTaxesResponse, error)
	Combine(ctx context.Context, req CombineRequest) (*CombineResponse, error)

	GetTransaction(ctx context.Context, transactionID string) (*trxdomain.WaitingTransaction, error)
	ListTransactions(ctx context.Context, req ListTransactionsRequest) ([]trxdomain.WaitingTransaction, error)
	ListTaxAdjustments(ctx context.Context, transactionID string) ([]taxauditdomain.AuditLog, error)
}
