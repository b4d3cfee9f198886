package repository

import (
	"context"

	"github.com/smallbiznis/tavolo/internal/staff/domain"
	"gorm.io/gorm"
)

type repo struct{}

func New() domain.Repository {
	return &repo{}
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.Staff, error) {
	var staff domain.Staff
	err := db.WithContext(ctx).
		Where("staff_id = ?", id).
		Limit(1).
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	if staff.StaffID == "" {
		return nil, nil
	}
	return &staff, nil
}
