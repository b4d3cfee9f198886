package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	billreqdomain "github.com/smallbiznis/tavolo/internal/billrequest/domain"
	"github.com/smallbiznis/tavolo/internal/clock"
	"github.com/smallbiznis/tavolo/internal/coordinator/domain"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	"github.com/smallbiznis/tavolo/internal/idgen"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	taxauditdomain "github.com/smallbiznis/tavolo/internal/taxaudit/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Clock        clock.Clock
	GenID        idgen.Generator
	Node         *snowflake.Node
	TrxRepo      trxdomain.Repository
	StaffRepo    staffdomain.Repository
	FloorRepo    floordomain.Repository
	BillReqRepo  billreqdomain.Repository
	TaxAuditRepo taxauditdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	clock        clock.Clock
	genID        idgen.Generator
	node         *snowflake.Node
	trxRepo      trxdomain.Repository
	staffRepo    staffdomain.Repository
	floorRepo    floordomain.Repository
	billReqRepo  billreqdomain.Repository
	taxAuditRepo taxauditdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("coordinator.service"),
		clock:        p.Clock,
		genID:        p.GenID,
		node:         p.Node,
		trxRepo:      p.TrxRepo,
		staffRepo:    p.StaffRepo,
		floorRepo:    p.FloorRepo,
		billReqRepo:  p.BillReqRepo,
		taxAuditRepo: p.TaxAuditRepo,
	}
}

// AddNotes appends a timestamped, staff-attributed line to the transaction's
// notes. Prior notes are never overwritten.
func (s *Service) AddNotes(ctx context.Context, req domain.AddNotesRequest) (*domain.AddNotesResponse, error) {
	notes := strings.TrimSpace(req.Notes)
	if notes == "" {
		return nil, domain.ErrNotesRequired
	}

	var resp *domain.AddNotesResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, err := s.fetchTransaction(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}
		staff, err := s.fetchStaff(ctx, tx, req.StaffID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		line := fmt.Sprintf("[%s] %s: %s", now.Format("2006-01-02 15:04"), staff.DisplayName(), notes)
		if trx.Notes != "" {
			trx.Notes += "\n"
		}
		trx.Notes += line
		trx.UpdatedAt = now

		if err := s.trxRepo.Update(ctx, tx, trx); err != nil {
			return err
		}

		resp = &domain.AddNotesResponse{
			TransactionID: trx.TransactionID,
			Notes:         trx.Notes,
			Message:       fmt.Sprintf("Note added to transaction %s", trx.TransactionID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// TransferServer reassigns a transaction to another staff member and
// propagates the new staff id onto every cart item; items carry their own
// attribution independent of the parent transaction.
func (s *Service) TransferServer(ctx context.Context, req domain.TransferServerRequest) (*domain.TransferServerResponse, error) {
	var resp *domain.TransferServerResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, err := s.fetchTransaction(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}
		target, err := s.fetchActiveStaff(ctx, tx, req.ToStaffID)
		if err != nil {
			return err
		}

		from := trx.StaffID
		s.assignStaff(trx, target.StaffID)

		if err := s.trxRepo.Update(ctx, tx, trx); err != nil {
			return err
		}

		resp = &domain.TransferServerResponse{
			TransactionID: trx.TransactionID,
			FromStaffID:   from,
			ToStaffID:     target.StaffID,
			Message:       fmt.Sprintf("Successfully transferred transaction %s to %s", trx.TransactionID, target.DisplayName()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("server transferred",
		zap.String("transaction_id", resp.TransactionID),
		zap.String("to_staff_id", resp.ToStaffID),
	)
	return resp, nil
}

// ShiftHandover bulk-transfers every open transaction owned by the outgoing
// staff member. Zero matches is a success with an empty list.
func (s *Service) ShiftHandover(ctx context.Context, req domain.ShiftHandoverRequest) (*domain.ShiftHandoverResponse, error) {
	var resp *domain.ShiftHandoverResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		outgoing, err := s.fetchStaff(ctx, tx, req.FromStaffID)
		if err != nil {
			return err
		}
		incoming, err := s.fetchActiveStaff(ctx, tx, req.ToStaffID)
		if err != nil {
			return err
		}

		open, err := s.trxRepo.List(ctx, tx, trxdomain.ListFilter{StaffID: outgoing.StaffID})
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(open))
		for i := range open {
			trx := &open[i]
			s.assignStaff(trx, incoming.StaffID)
			if err := s.trxRepo.Update(ctx, tx, trx); err != nil {
				return err
			}
			ids = append(ids, trx.TransactionID)
		}

		resp = &domain.ShiftHandoverResponse{
			TransactionIDs: ids,
			Count:          len(ids),
			Message: fmt.Sprintf("Successfully transferred %d order(s) from %s to %s",
				len(ids), outgoing.DisplayName(), incoming.DisplayName()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("shift handover",
		zap.String("from_staff_id", req.FromStaffID),
		zap.String("to_staff_id", req.ToStaffID),
		zap.Int("count", resp.Count),
	)
	return resp, nil
}

// MoveOrder reassigns a transaction to another table. The target must be
// unoccupied with no occupied seats; on success the source table is freed
// and the target marked occupied by the transaction.
func (s *Service) MoveOrder(ctx context.Context, req domain.MoveOrderRequest) (*domain.MoveOrderResponse, error) {
	var resp *domain.MoveOrderResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, err := s.fetchTransaction(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}

		target, err := s.floorRepo.FindByID(ctx, tx, req.ToTableID)
		if err != nil {
			return err
		}
		if target == nil {
			return floordomain.ErrNotFound
		}
		if target.Status == floordomain.TableOccupied {
			return domain.ErrTableOccupied
		}
		seated, err := s.floorRepo.AnySeatOccupied(ctx, tx, target.TableID)
		if err != nil {
			return err
		}
		if seated {
			return domain.ErrTableOccupied
		}

		fromTableID := trx.TableID

		trx.TableID = &target.TableID
		trx.TableNumber = &target.Number
		trx.TableName = &target.Name
		trx.UpdatedAt = s.clock.Now()
		if err := s.trxRepo.Update(ctx, tx, trx); err != nil {
			return err
		}

		if fromTableID != nil && *fromTableID != target.TableID {
			if err := s.floorRepo.SetStatus(ctx, tx, *fromTableID, floordomain.TableAvailable, floordomain.SetStatusParams{}); err != nil {
				return err
			}
		}
		if err := s.floorRepo.SetStatus(ctx, tx, target.TableID, floordomain.TableOccupied, floordomain.SetStatusParams{
			CustomerID:    trx.CustomerID,
			TransactionID: &trx.TransactionID,
		}); err != nil {
			return err
		}

		resp = &domain.MoveOrderResponse{
			TransactionID: trx.TransactionID,
			FromTableID:   fromTableID,
			ToTableID:     target.TableID,
			Message:       fmt.Sprintf("Successfully moved transaction %s to table %s", trx.TransactionID, target.Name),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order moved",
		zap.String("transaction_id", resp.TransactionID),
		zap.String("to_table_id", resp.ToTableID),
	)
	return resp, nil
}

// Refire stamps refire metadata on the transaction so the kitchen resends
// the selected items. An empty index list means all items.
func (s *Service) Refire(ctx context.Context, req domain.RefireRequest) (*domain.RefireResponse, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, domain.ErrReasonRequired
	}

	var resp *domain.RefireResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, err := s.fetchTransaction(ctx, tx, req.TransactionID)
		if err != nil {
			return err
		}
		staff, err := s.fetchStaff(ctx, tx, req.StaffID)
		if err != nil {
			return err
		}

		for _, idx := range req.ItemIndexes {
			if idx < 0 || idx >= len(trx.Items) {
				return domain.ErrItemIndexOutOfRange
			}
		}

		refired := len(req.ItemIndexes)
		if refired == 0 {
			refired = len(trx.Items)
		}

		now := s.clock.Now()
		trx.RefireFlag = true
		trx.RefireReason = &reason
		trx.RefireStaffID = &staff.StaffID
		trx.RefiredAt = &now
		trx.UpdatedAt = now

		if err := s.trxRepo.Update(ctx, tx, trx); err != nil {
			return err
		}

		resp = &domain.RefireResponse{
			TransactionID: trx.TransactionID,
			ItemsRefired:  refired,
			Message:       fmt.Sprintf("Refire requested for %d item(s) on transaction %s", refired, trx.TransactionID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) GetTransaction(ctx context.Context, transactionID string) (*trxdomain.WaitingTransaction, error) {
	trx, err := s.trxRepo.FindByID(ctx, s.db, transactionID)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, trxdomain.ErrNotFound
	}
	return trx, nil
}

func (s *Service) ListTransactions(ctx context.Context, req domain.ListTransactionsRequest) ([]trxdomain.WaitingTransaction, error) {
	return s.trxRepo.List(ctx, s.db, trxdomain.ListFilter{
		StaffID: req.StaffID,
		TableID: req.TableID,
		Status:  req.Status,
	})
}

func (s *Service) ListTaxAdjustments(ctx context.Context, transactionID string) ([]taxauditdomain.AuditLog, error) {
	return s.taxAuditRepo.ListByTransaction(ctx, s.db, transactionID)
}

func (s *Service) assignStaff(trx *trxdomain.WaitingTransaction, staffID string) {
	trx.StaffID = &staffID
	for i := range trx.Items {
		trx.Items[i].StaffID = staffID
	}
	trx.UpdatedAt = s.clock.Now()
}

func (s *Service) fetchTransaction(ctx context.Context, tx *gorm.DB, id string) (*trxdomain.WaitingTransaction, error) {
	trx, err := s.trxRepo.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if trx == nil {
		return nil, trxdomain.ErrNotFound
	}
	return trx, nil
}

func (s *Service) fetchStaff(ctx context.Context, tx *gorm.DB, id string) (*staffdomain.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, staffdomain.ErrNotFound
	}
	return staff, nil
}

func (s *Service) fetchActiveStaff(ctx context.Context, tx *gorm.DB, id string) (*staffdomain.Staff, error) {
	staff, err := s.fetchStaff(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !staff.IsActive {
		return nil, staffdomain.ErrInactive
	}
	return staff, nil
}
