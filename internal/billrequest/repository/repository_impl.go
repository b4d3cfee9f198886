package repository

import (
	"context"

	"github.com/smallbiznis/tavolo/internal/billrequest/domain"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, kind domain.Kind, req *domain.BillRequest) error {
	return db.WithContext(ctx).Table(kind.Table()).Create(req).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, kind domain.Kind, requestID string) (*domain.BillRequest, error) {
	var req domain.BillRequest
	err := db.WithContext(ctx).
		Table(kind.Table()).
		Where("request_id = ?", requestID).
		Limit(1).
		Find(&req).Error
	if err != nil {
		return nil, err
	}
	if req.RequestID == "" {
		return nil, nil
	}
	return &req, nil
}

func (r *repo) FindPendingByTransaction(ctx context.Context, db *gorm.DB, kind domain.Kind, transactionID string) (*domain.BillRequest, error) {
	var req domain.BillRequest
	err := db.WithContext(ctx).
		Table(kind.Table()).
		Where("transaction_id = ? AND status = ?", transactionID, domain.StatusPending).
		Limit(1).
		Find(&req).Error
	if err != nil {
		return nil, err
	}
	if req.RequestID == "" {
		return nil, nil
	}
	return &req, nil
}

func (r *repo) ListPending(ctx context.Context, db *gorm.DB, kind domain.Kind) ([]domain.BillRequest, error) {
	var items []domain.BillRequest
	err := db.WithContext(ctx).
		Table(kind.Table()).
		Where("status = ?", domain.StatusPending).
		Order("requested_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, kind domain.Kind, req *domain.BillRequest) error {
	return db.WithContext(ctx).
		Table(kind.Table()).
		Where("request_id = ?", req.RequestID).
		Updates(map[string]any{
			"status":       req.Status,
			"completed_at": req.CompletedAt,
			"completed_by": req.CompletedBy,
		}).Error
}

func (r *repo) DeleteByTransaction(ctx context.Context, db *gorm.DB, kind domain.Kind, transactionID string) error {
	return db.WithContext(ctx).
		Table(kind.Table()).
		Where("transaction_id = ?", transactionID).
		Delete(&domain.BillRequest{}).Error
}
