package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/tavolo/internal/coordinator/domain"
	taxauditdomain "github.com/smallbiznis/tavolo/internal/taxaudit/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RemoveTaxesAndFees zeroes the cached tax amount on every item and records
// one audit row, in a single unit of work: the mutation and the audit entry
// exist together or not at all. Re-running on an already-clean order is a
// no-op that still appends an audit row.
func (s *Service) RemoveTaxesAndFees(ctx context.Context, req domain.RemoveTaxesRequest) (*domain.RemoveTaxesResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	var resp *domain.RemoveTaxesResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, err := s.fetchTransaction(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}
		staff, err := s.fetchStaff(ctx, tx, req.StaffID)
		if err != nil {
			return err
		}

		var originalTax int64
		affected := 0
		for i := range trx.Items {
			originalTax += trx.Items[i].TaxAmount
			if trx.Items[i].TaxAmount > 0 {
				trx.Items[i].TaxAmount = 0
				trx.Items[i].Taxable = false
				affected++
			}
		}

		trx.UpdatedAt = s.clock.Now()
		if err := s.trxRepo.Update(ctx, tx, trx); err != nil {
			return err
		}

		entry := &taxauditdomain.AuditLog{
			ID:                s.node.Generate(),
			TransactionID:     trx.TransactionID,
			StaffID:           staff.StaffID,
			Action:            taxauditdomain.ActionRemove,
			Scope:             taxauditdomain.ScopeOrder,
			OriginalTaxAmount: originalTax,
			NewTaxAmount:      0,
			Reason:            reason,
			Metadata: datatypes.JSONMap{
				"items_affected": affected,
				"item_count":     len(trx.Items),
			},
			CreatedAt: s.clock.Now(),
		}
		if err := s.taxAuditRepo.Insert(ctx, tx, entry); err != nil {
			return err
		}

		resp = &domain.RemoveTaxesResponse{
			TransactionID:     trx.TransactionID,
			OriginalTaxAmount: originalTax,
			ItemsAffected:     affected,
			AuditLogID:        entry.ID.String(),
			Message: fmt.Sprintf("Removed taxes and fees from %d item(s) on transaction %s",
				affected, trx.TransactionID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("taxes removed",
		zap.String("transaction_id", resp.TransactionID),
		zap.Int64("original_tax_amount", resp.OriginalTaxAmount),
		zap.Int("items_affected", resp.ItemsAffected),
	)
	return resp, nil
}
