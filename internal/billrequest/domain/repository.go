package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists bill requests. Methods take the database handle so the
// read-check-insert sequence can run inside one transaction, and so combine
// cleanup can join the coordinator's unit of work.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, kind Kind, req *BillRequest) error
	FindByID(ctx context.Context, db *gorm.DB, kind Kind, requestID string) (*BillRequest, error)
	FindPendingByTransaction(ctx context.Context, db *gorm.DB, kind Kind, transactionID string) (*BillRequest, error)
	ListPending(ctx context.Context, db *gorm.DB, kind Kind) ([]BillRequest, error)
	Update(ctx context.Context, db *gorm.DB, kind Kind, req *BillRequest) error
	DeleteByTransaction(ctx context.Context, db *gorm.DB, kind Kind, transactionID string) error
}
