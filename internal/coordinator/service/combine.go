package service

import (
	"context"
	"fmt"

	billreqdomain "github.com/smallbiznis/tavolo/internal/billrequest/domain"
	"github.com/smallbiznis/tavolo/internal/coordinator/domain"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Combine atomically folds two or more open orders into one new order on the
// target table and staff, coalescing duplicate line items. Source
// transactions, their bill requests of both kinds and their tax audit rows
// are removed in the same unit of work; any failure rolls everything back.
func (s *Service) Combine(ctx context.Context, req domain.CombineRequest) (*domain.CombineResponse, error) {
	ids := dedupe(req.TransactionIDs)
	if len(ids) < 2 {
		return nil, domain.ErrAtLeastTwoTransactions
	}

	var resp *domain.CombineResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sources := make([]*trxdomain.WaitingTransaction, 0, len(ids))
		for _, id := range ids {
			trx, err := s.fetchTransaction(ctx, tx, id)
			if err != nil {
				return err
			}
			sources = append(sources, trx)
		}

		table, err := s.floorRepo.FindByID(ctx, tx, req.TargetTableID)
		if err != nil {
			return err
		}
		if table == nil {
			return floordomain.ErrNotFound
		}

		staff, err := s.fetchActiveStaff(ctx, tx, req.TargetStaffID)
		if err != nil {
			return err
		}

		itemLists := make([]trxdomain.CartItems, 0, len(sources))
		for _, src := range sources {
			itemLists = append(itemLists, src.Items)
		}
		merged, mergedCount := mergeItems(itemLists)

		now := s.clock.Now()
		combined := &trxdomain.WaitingTransaction{
			TransactionID: s.genID.TransactionID(),
			CustomerID:    sources[0].CustomerID,
			TableID:       &table.TableID,
			TableNumber:   &table.Number,
			TableName:     &table.Name,
			StaffID:       &staff.StaffID,
			Status:        trxdomain.StatusPending,
			Notes:         req.Notes,
			Items:         merged,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.trxRepo.Insert(ctx, tx, combined); err != nil {
			return err
		}

		// Referential cleanup: requests and audit rows reference source
		// transaction ids and would otherwise dangle.
		for _, src := range sources {
			if err := s.billReqRepo.DeleteByTransaction(ctx, tx, billreqdomain.KindPrintBill, src.TransactionID); err != nil {
				return err
			}
			if err := s.billReqRepo.DeleteByTransaction(ctx, tx, billreqdomain.KindPayEntireBill, src.TransactionID); err != nil {
				return err
			}
			if err := s.taxAuditRepo.DeleteByTransaction(ctx, tx, src.TransactionID); err != nil {
				return err
			}
			if err := s.trxRepo.Delete(ctx, tx, src.TransactionID); err != nil {
				return err
			}
		}

		if err := s.floorRepo.SetStatus(ctx, tx, table.TableID, floordomain.TableOccupied, floordomain.SetStatusParams{
			CustomerID:    combined.CustomerID,
			TransactionID: &combined.TransactionID,
		}); err != nil {
			return err
		}

		resp = &domain.CombineResponse{
			NewTransactionID: combined.TransactionID,
			MergedItemsCount: mergedCount,
			TotalAmount:      totalAmount(merged),
			Message: fmt.Sprintf("Successfully combined %d order(s) into %s on table %s",
				len(sources), combined.TransactionID, table.Name),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("orders combined",
		zap.Strings("source_transaction_ids", ids),
		zap.String("new_transaction_id", resp.NewTransactionID),
		zap.Int("merged_items_count", resp.MergedItemsCount),
	)
	return resp, nil
}

func dedupe(ids []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
