package repository

import (
	"context"

	"github.com/smallbiznis/tavolo/internal/taxaudit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditLog) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListByTransaction(ctx context.Context, db *gorm.DB, transactionID string) ([]domain.AuditLog, error) {
	var logs []domain.AuditLog
	err := db.WithContext(ctx).
		Model(&domain.AuditLog{}).
		Where("transaction_id = ?", transactionID).
		Order("created_at desc, id desc").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *repo) DeleteByTransaction(ctx context.Context, db *gorm.DB, transactionID string) error {
	return db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Delete(&domain.AuditLog{}).Error
}
