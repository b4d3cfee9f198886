package domain

import (
	"context"

	"gorm.io/gorm"
)

// ListFilter narrows List results. Zero values mean no constraint.
type ListFilter struct {
	StaffID string
	TableID string
	Status  TransactionStatus
}

// Repository is the waiting-transaction store. Methods take the database
// handle so callers can compose them into one transactional unit of work.
type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*WaitingTransaction, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]WaitingTransaction, error)
	Insert(ctx context.Context, db *gorm.DB, trx *WaitingTransaction) error
	Update(ctx context.Context, db *gorm.DB, trx *WaitingTransaction) error
	Delete(ctx context.Context, db *gorm.DB, id string) error
}
