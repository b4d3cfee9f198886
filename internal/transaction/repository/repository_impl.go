package repository

import (
	"context"

	"github.com/smallbiznis/tavolo/internal/transaction/domain"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.WaitingTransaction, error) {
	var trx domain.WaitingTransaction
	err := db.WithContext(ctx).
		Where("transaction_id = ?", id).
		Limit(1).
		Find(&trx).Error
	if err != nil {
		return nil, err
	}
	if trx.TransactionID == "" {
		return nil, nil
	}
	return &trx, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.WaitingTransaction, error) {
	var items []domain.WaitingTransaction
	stmt := db.WithContext(ctx).Model(&domain.WaitingTransaction{})

	if filter.StaffID != "" {
		stmt = stmt.Where("staff_id = ?", filter.StaffID)
	}
	if filter.TableID != "" {
		stmt = stmt.Where("table_id = ?", filter.TableID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	if err := stmt.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, trx *domain.WaitingTransaction) error {
	return db.WithContext(ctx).Create(trx).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, trx *domain.WaitingTransaction) error {
	return db.WithContext(ctx).
		Model(&domain.WaitingTransaction{}).
		Where("transaction_id = ?", trx.TransactionID).
		Select("*").
		Omit("transaction_id", "created_at").
		Updates(trx).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Where("transaction_id = ?", id).
		Delete(&domain.WaitingTransaction{}).Error
}
