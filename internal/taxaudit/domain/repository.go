package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	ListByTransaction(ctx context.Context, db *gorm.DB, transactionID string) ([]AuditLog, error)
	DeleteByTransaction(ctx context.Context, db *gorm.DB, transactionID string) error
}
