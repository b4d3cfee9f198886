package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/tavolo/internal/billrequest/domain"
	billreqrepo "github.com/smallbiznis/tavolo/internal/billrequest/repository"
	"github.com/smallbiznis/tavolo/internal/clock"
	"github.com/smallbiznis/tavolo/internal/dbtest"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	floorrepo "github.com/smallbiznis/tavolo/internal/floor/repository"
	"github.com/smallbiznis/tavolo/internal/idgen"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	staffrepo "github.com/smallbiznis/tavolo/internal/staff/repository"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
	trxrepo "github.com/smallbiznis/tavolo/internal/transaction/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	clk   *clock.FakeClock
	genID *idgen.Fake
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := dbtest.Open(t)
	clk := clock.NewFakeClock(time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC))
	genID := idgen.NewFake()

	svc := New(Params{
		DB:        conn,
		Log:       zaptest.NewLogger(t),
		Clock:     clk,
		GenID:     genID,
		Repo:      billreqrepo.New(),
		TrxRepo:   trxrepo.New(),
		StaffRepo: staffrepo.New(),
		FloorRepo: floorrepo.New(),
	})
	return &fixture{svc: svc, db: conn, clk: clk, genID: genID}
}

func (f *fixture) seedStaff(t *testing.T, id, first, last string, active bool) {
	t.Helper()
	now := f.clk.Now()
	err := f.db.Create(&staffdomain.Staff{
		StaffID:   id,
		FirstName: first,
		LastName:  last,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
	require.NoError(t, err)
}

func (f *fixture) seedTable(t *testing.T, id, name string, number int) {
	t.Helper()
	now := f.clk.Now()
	err := f.db.Create(&floordomain.Table{
		TableID:   id,
		Name:      name,
		Number:    number,
		Status:    floordomain.TableAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
	require.NoError(t, err)
}

func (f *fixture) seedTransaction(t *testing.T, id, tableID string) {
	t.Helper()
	now := f.clk.Now()
	trx := &trxdomain.WaitingTransaction{
		TransactionID: id,
		Status:        trxdomain.StatusPending,
		Items:         trxdomain.CartItems{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if tableID != "" {
		trx.TableID = &tableID
	}
	require.NoError(t, f.db.Create(trx).Error)
}

func TestCreatePrintBillIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1000", "")

	ctx := context.Background()
	first, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	require.NoError(t, err)
	assert.False(t, first.Existing)
	assert.Equal(t, domain.StatusPending, first.Request.Status)
	assert.Equal(t, "Ana Gomez", first.Request.StaffName)

	second, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	require.NoError(t, err)
	assert.True(t, second.Existing)
	assert.Equal(t, first.Request.RequestID, second.Request.RequestID)

	var count int64
	f.db.Table("print_bill_requests").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreatePrintBillBlockedByPendingPayment(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1000", "")

	ctx := context.Background()
	_, err := f.svc.CreatePayEntireBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	require.NoError(t, err)

	_, err = f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	assert.ErrorIs(t, err, domain.ErrPaymentRequestPending)
}

func TestCreatePayEntireBillBlockedByPendingPrint(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1000", "")

	ctx := context.Background()
	_, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	require.NoError(t, err)

	_, err = f.svc.CreatePayEntireBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	assert.ErrorIs(t, err, domain.ErrPrintRequestPending)
}

func TestCreatePrintBillUnknownActors(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1000", "")

	ctx := context.Background()
	_, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M-missing", StaffID: "S-1"})
	assert.ErrorIs(t, err, trxdomain.ErrNotFound)

	_, err = f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-missing"})
	assert.ErrorIs(t, err, staffdomain.ErrNotFound)
}

func TestCreatePrintBillForTable(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTable(t, "T-1", "Table 1", 1)
	f.seedTransaction(t, "M1", "T-1")
	f.seedTransaction(t, "M2", "T-1")
	f.seedTransaction(t, "M3", "T-1")

	ctx := context.Background()

	// M1 already has a pending print request; its id must be reused.
	existing, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1", StaffID: "S-1"})
	require.NoError(t, err)

	// M2 has a pending payment request; it must be skipped silently.
	_, err = f.svc.CreatePayEntireBill(ctx, domain.CreateRequest{TransactionID: "M2", StaffID: "S-1"})
	require.NoError(t, err)

	resp, err := f.svc.CreatePrintBillForTable(ctx, domain.CreateForTableRequest{TableID: "T-1", StaffID: "S-1"})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Contains(t, resp.RequestIDs, existing.Request.RequestID)
	assert.Len(t, resp.RequestIDs, 2)
}

func TestCreatePrintBillForTableNoOpenTransactions(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTable(t, "T-9", "Table 9", 9)

	_, err := f.svc.CreatePrintBillForTable(context.Background(), domain.CreateForTableRequest{
		TableID: "T-9",
		StaffID: "S-1",
	})
	assert.ErrorIs(t, err, domain.ErrNoOpenTransactions)
}

func TestCompleteIsIdempotentSafe(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1000", "")

	ctx := context.Background()
	created, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	require.NoError(t, err)

	done, err := f.svc.Complete(ctx, domain.CompleteRequest{RequestID: created.Request.RequestID, CompletedBy: "desk-1"})
	require.NoError(t, err)
	assert.True(t, done)

	var stored domain.BillRequest
	require.NoError(t, f.db.Table("print_bill_requests").Where("request_id = ?", created.Request.RequestID).Find(&stored).Error)
	require.NotNil(t, stored.CompletedAt)
	firstCompletedAt := *stored.CompletedAt

	f.clk.Advance(5 * time.Minute)
	done, err = f.svc.Complete(ctx, domain.CompleteRequest{RequestID: created.Request.RequestID})
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, f.db.Table("print_bill_requests").Where("request_id = ?", created.Request.RequestID).Find(&stored).Error)
	require.NotNil(t, stored.CompletedAt)
	assert.True(t, firstCompletedAt.Equal(*stored.CompletedAt))
}

func TestCompleteUnknownRequest(t *testing.T) {
	f := newFixture(t)

	done, err := f.svc.Complete(context.Background(), domain.CompleteRequest{RequestID: "PBR-does-not-exist"})
	require.NoError(t, err)
	assert.False(t, done)

	done, err = f.svc.Complete(context.Background(), domain.CompleteRequest{RequestID: "garbage"})
	require.NoError(t, err)
	assert.False(t, done)
}

func TestCancelPendingRequest(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1000", "")

	ctx := context.Background()
	created, err := f.svc.CreatePayEntireBill(ctx, domain.CreateRequest{TransactionID: "M1000", StaffID: "S-1"})
	require.NoError(t, err)

	done, err := f.svc.Cancel(ctx, created.Request.RequestID)
	require.NoError(t, err)
	assert.True(t, done)

	var stored domain.BillRequest
	require.NoError(t, f.db.Table("pay_entire_bill_requests").Where("request_id = ?", created.Request.RequestID).Find(&stored).Error)
	assert.Equal(t, domain.StatusCancelled, stored.Status)

	// Cancelled is terminal; completing it is a no-op.
	done, err = f.svc.Complete(ctx, domain.CompleteRequest{RequestID: created.Request.RequestID})
	require.NoError(t, err)
	assert.False(t, done)
}

func TestListPendingOldestFirst(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, "M1", "")
	f.seedTransaction(t, "M2", "")

	ctx := context.Background()
	first, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M1", StaffID: "S-1"})
	require.NoError(t, err)

	f.clk.Advance(2 * time.Minute)
	second, err := f.svc.CreatePrintBill(ctx, domain.CreateRequest{TransactionID: "M2", StaffID: "S-1"})
	require.NoError(t, err)

	pending, err := f.svc.ListPending(ctx, domain.KindPrintBill)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.Request.RequestID, pending[0].RequestID)
	assert.Equal(t, second.Request.RequestID, pending[1].RequestID)
}

func TestListPendingInvalidKind(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListPending(context.Background(), domain.Kind("refund"))
	assert.ErrorIs(t, err, domain.ErrInvalidKind)
}
