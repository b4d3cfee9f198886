package domain

import (
	"context"

	"gorm.io/gorm"
)

// SetStatusParams carries the optional pointers updated alongside a status
// change. Nil clears the column.
type SetStatusParams struct {
	CustomerID    *string
	TransactionID *string
}

type Repository interface {
	FindByID(ctx context.Context, db *gorm.DB, id string) (*Table, error)
	AnySeatOccupied(ctx context.Context, db *gorm.DB, tableID string) (bool, error)
	SetStatus(ctx context.Context, db *gorm.DB, tableID string, status TableStatus, params SetStatusParams) error
}
