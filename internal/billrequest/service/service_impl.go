package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallbiznis/tavolo/internal/billrequest/domain"
	"github.com/smallbiznis/tavolo/internal/clock"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	"github.com/smallbiznis/tavolo/internal/idgen"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
	"github.com/smallbiznis/tavolo/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	GenID     idgen.Generator
	Repo      domain.Repository
	TrxRepo   trxdomain.Repository
	StaffRepo staffdomain.Repository
	FloorRepo floordomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	genID     idgen.Generator
	repo      domain.Repository
	trxRepo   trxdomain.Repository
	staffRepo staffdomain.Repository
	floorRepo floordomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("billrequest.service"),
		clock:     p.Clock,
		genID:     p.GenID,
		repo:      p.Repo,
		trxRepo:   p.TrxRepo,
		staffRepo: p.StaffRepo,
		floorRepo: p.FloorRepo,
	}
}

// CreatePrintBill queues a print-bill handoff for the desktop terminal.
// Creation is idempotent: an already-pending print request is returned
// unchanged so mobile callers can retry safely. A pending payment request on
// the same transaction is a conflict, since printing while the desktop
// finalizes payment could double-process the order.
func (s *Service) CreatePrintBill(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	var resp *domain.Response
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, staff, err := s.resolveActors(ctx, tx, req.TransactionID, req.StaffID)
		if err != nil {
			return err
		}

		pending, err := s.repo.FindPendingByTransaction(ctx, tx, domain.KindPayEntireBill, req.TransactionID)
		if err != nil {
			return err
		}
		if pending != nil {
			return domain.ErrPaymentRequestPending
		}

		existing, err := s.repo.FindPendingByTransaction(ctx, tx, domain.KindPrintBill, req.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil {
			resp = &domain.Response{
				Request:  existing,
				Existing: true,
				Message:  fmt.Sprintf("Print bill request %s is already pending", existing.RequestID),
			}
			return nil
		}

		created, err := s.insert(ctx, tx, domain.KindPrintBill, trx, staff, req.Notes)
		if err != nil {
			if db.IsDuplicateKeyErr(err) {
				// Lost the race to a concurrent creator; return the winner.
				winner, findErr := s.repo.FindPendingByTransaction(ctx, tx, domain.KindPrintBill, req.TransactionID)
				if findErr != nil {
					return findErr
				}
				if winner != nil {
					resp = &domain.Response{
						Request:  winner,
						Existing: true,
						Message:  fmt.Sprintf("Print bill request %s is already pending", winner.RequestID),
					}
					return nil
				}
			}
			return err
		}

		resp = &domain.Response{
			Request: created,
			Message: fmt.Sprintf("Print bill request %s created for transaction %s", created.RequestID, trx.TransactionID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("print bill request",
		zap.String("request_id", resp.Request.RequestID),
		zap.String("transaction_id", resp.Request.TransactionID),
		zap.Bool("existing", resp.Existing),
	)
	return resp, nil
}

// CreatePrintBillForTable fans out CreatePrintBill across every transaction
// open on a table. Transactions with a pending payment request are silently
// skipped; existing pending print requests contribute their id instead of a
// new one. Only a table with zero open transactions is an error.
func (s *Service) CreatePrintBillForTable(ctx context.Context, req domain.CreateForTableRequest) (*domain.CreateForTableResponse, error) {
	var resp *domain.CreateForTableResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		table, err := s.floorRepo.FindByID(ctx, tx, req.TableID)
		if err != nil {
			return err
		}
		if table == nil {
			return floordomain.ErrNotFound
		}

		staff, err := s.staffRepo.FindByID(ctx, tx, req.StaffID)
		if err != nil {
			return err
		}
		if staff == nil {
			return staffdomain.ErrNotFound
		}

		open, err := s.trxRepo.List(ctx, tx, trxdomain.ListFilter{TableID: req.TableID})
		if err != nil {
			return err
		}
		if len(open) == 0 {
			return domain.ErrNoOpenTransactions
		}

		ids := make([]string, 0, len(open))
		for i := range open {
			trx := &open[i]

			payPending, err := s.repo.FindPendingByTransaction(ctx, tx, domain.KindPayEntireBill, trx.TransactionID)
			if err != nil {
				return err
			}
			if payPending != nil {
				continue
			}

			existing, err := s.repo.FindPendingByTransaction(ctx, tx, domain.KindPrintBill, trx.TransactionID)
			if err != nil {
				return err
			}
			if existing != nil {
				ids = append(ids, existing.RequestID)
				continue
			}

			created, err := s.insert(ctx, tx, domain.KindPrintBill, trx, staff, req.Notes)
			if err != nil {
				return err
			}
			ids = append(ids, created.RequestID)
		}

		resp = &domain.CreateForTableResponse{
			TableID:    req.TableID,
			Count:      len(ids),
			RequestIDs: ids,
			Message:    fmt.Sprintf("Print bill requested for %d order(s) on table %s", len(ids), table.Name),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreatePayEntireBill queues a full-payment handoff. The print-vs-pay
// exclusion is enforced symmetrically: a pending print request blocks
// payment creation just as a pending payment blocks printing.
func (s *Service) CreatePayEntireBill(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	var resp *domain.Response
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		trx, staff, err := s.resolveActors(ctx, tx, req.TransactionID, req.StaffID)
		if err != nil {
			return err
		}

		printPending, err := s.repo.FindPendingByTransaction(ctx, tx, domain.KindPrintBill, req.TransactionID)
		if err != nil {
			return err
		}
		if printPending != nil {
			return domain.ErrPrintRequestPending
		}

		created, err := s.insert(ctx, tx, domain.KindPayEntireBill, trx, staff, req.Notes)
		if err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrPaymentRequestPending
			}
			return err
		}

		resp = &domain.Response{
			Request: created,
			Message: fmt.Sprintf("Payment request %s created for transaction %s", created.RequestID, trx.TransactionID),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("pay entire bill request",
		zap.String("request_id", resp.Request.RequestID),
		zap.String("transaction_id", resp.Request.TransactionID),
	)
	return resp, nil
}

// ListPending returns outstanding requests oldest first, the order the
// desktop terminal processes them in.
func (s *Service) ListPending(ctx context.Context, kind domain.Kind) ([]domain.PendingRequest, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	items, err := s.repo.ListPending(ctx, s.db, kind)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PendingRequest, 0, len(items))
	for _, item := range items {
		out = append(out, domain.PendingRequest{
			RequestID:     item.RequestID,
			TransactionID: item.TransactionID,
			StaffID:       item.StaffID,
			StaffName:     item.StaffName,
			TableID:       item.TableID,
			TableName:     item.TableName,
			Notes:         item.Notes,
			RequestedAt:   item.RequestedAt,
		})
	}
	return out, nil
}

// Complete transitions Pending to Completed. A missing or already-terminal
// request yields false, not an error, so retried completions are no-ops.
func (s *Service) Complete(ctx context.Context, req domain.CompleteRequest) (bool, error) {
	return s.terminate(ctx, req.RequestID, domain.StatusCompleted, req.CompletedBy)
}

// Cancel transitions Pending to Cancelled with the same no-op semantics as
// Complete.
func (s *Service) Cancel(ctx context.Context, requestID string) (bool, error) {
	return s.terminate(ctx, requestID, domain.StatusCancelled, "")
}

func (s *Service) terminate(ctx context.Context, requestID string, status domain.Status, completedBy string) (bool, error) {
	kind, ok := domain.KindFromRequestID(requestID)
	if !ok {
		return false, nil
	}

	done := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		req, err := s.repo.FindByID(ctx, tx, kind, requestID)
		if err != nil {
			return err
		}
		if req == nil || req.Status != domain.StatusPending {
			return nil
		}

		now := s.clock.Now()
		req.Status = status
		req.CompletedAt = &now
		if by := strings.TrimSpace(completedBy); by != "" {
			req.CompletedBy = &by
		}

		if err := s.repo.Update(ctx, tx, kind, req); err != nil {
			return err
		}
		done = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if done {
		s.log.Info("bill request terminated",
			zap.String("request_id", requestID),
			zap.String("status", string(status)),
		)
	}
	return done, nil
}

func (s *Service) resolveActors(ctx context.Context, tx *gorm.DB, transactionID, staffID string) (*trxdomain.WaitingTransaction, *staffdomain.Staff, error) {
	trx, err := s.trxRepo.FindByID(ctx, tx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	if trx == nil {
		return nil, nil, trxdomain.ErrNotFound
	}

	staff, err := s.staffRepo.FindByID(ctx, tx, staffID)
	if err != nil {
		return nil, nil, err
	}
	if staff == nil {
		return nil, nil, staffdomain.ErrNotFound
	}
	return trx, staff, nil
}

func (s *Service) insert(ctx context.Context, tx *gorm.DB, kind domain.Kind, trx *trxdomain.WaitingTransaction, staff *staffdomain.Staff, notes string) (*domain.BillRequest, error) {
	req := &domain.BillRequest{
		RequestID:     s.genID.RequestID(kind.Prefix()),
		TransactionID: trx.TransactionID,
		StaffID:       staff.StaffID,
		StaffName:     staff.DisplayName(),
		TableID:       trx.TableID,
		TableName:     trx.TableName,
		Status:        domain.StatusPending,
		Notes:         strings.TrimSpace(notes),
		RequestedAt:   s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, tx, kind, req); err != nil {
		return nil, err
	}
	return req, nil
}
