package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/tavolo/internal/floor/domain"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Table, error) {
	var table domain.Table
	err := db.WithContext(ctx).
		Where("table_id = ?", id).
		Limit(1).
		Find(&table).Error
	if err != nil {
		return nil, err
	}
	if table.TableID == "" {
		return nil, nil
	}
	return &table, nil
}

func (r *repo) AnySeatOccupied(ctx context.Context, db *gorm.DB, tableID string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Seat{}).
		Where("table_id = ? AND occupied = ?", tableID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) SetStatus(ctx context.Context, db *gorm.DB, tableID string, status domain.TableStatus, params domain.SetStatusParams) error {
	return db.WithContext(ctx).
		Model(&domain.Table{}).
		Where("table_id = ?", tableID).
		Updates(map[string]any{
			"status":                 status,
			"current_customer_id":    params.CustomerID,
			"current_transaction_id": params.TransactionID,
			"updated_at":             time.Now().UTC(),
		}).Error
}
