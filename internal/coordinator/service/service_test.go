package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	billreqrepo "github.com/smallbiznis/tavolo/internal/billrequest/repository"
	"github.com/smallbiznis/tavolo/internal/clock"
	"github.com/smallbiznis/tavolo/internal/coordinator/domain"
	"github.com/smallbiznis/tavolo/internal/dbtest"
	floordomain "github.com/smallbiznis/tavolo/internal/floor/domain"
	floorrepo "github.com/smallbiznis/tavolo/internal/floor/repository"
	"github.com/smallbiznis/tavolo/internal/idgen"
	staffdomain "github.com/smallbiznis/tavolo/internal/staff/domain"
	staffrepo "github.com/smallbiznis/tavolo/internal/staff/repository"
	taxauditrepo "github.com/smallbiznis/tavolo/internal/taxaudit/repository"
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

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:           conn,
		Log:          zaptest.NewLogger(t),
		Clock:        clk,
		GenID:        genID,
		Node:         node,
		TrxRepo:      trxrepo.New(),
		StaffRepo:    staffrepo.New(),
		FloorRepo:    floorrepo.New(),
		BillReqRepo:  billreqrepo.New(),
		TaxAuditRepo: taxauditrepo.New(),
	})
	return &fixture{svc: svc, db: conn, clk: clk, genID: genID}
}

func (f *fixture) seedStaff(t *testing.T, id, first, last string, active bool) {
	t.Helper()
	now := f.clk.Now()
	require.NoError(t, f.db.Create(&staffdomain.Staff{
		StaffID:   id,
		FirstName: first,
		LastName:  last,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func (f *fixture) seedTable(t *testing.T, id, name string, number int, status floordomain.TableStatus) {
	t.Helper()
	now := f.clk.Now()
	require.NoError(t, f.db.Create(&floordomain.Table{
		TableID:   id,
		Name:      name,
		Number:    number,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func (f *fixture) seedSeat(t *testing.T, seatID, tableID string, occupied bool) {
	t.Helper()
	require.NoError(t, f.db.Create(&floordomain.Seat{
		SeatID:   seatID,
		TableID:  tableID,
		Number:   1,
		Occupied: occupied,
	}).Error)
}

func (f *fixture) seedTransaction(t *testing.T, trx *trxdomain.WaitingTransaction) {
	t.Helper()
	now := f.clk.Now()
	if trx.Status == "" {
		trx.Status = trxdomain.StatusPending
	}
	if trx.Items == nil {
		trx.Items = trxdomain.CartItems{}
	}
	trx.CreatedAt = now
	trx.UpdatedAt = now
	require.NoError(t, f.db.Create(trx).Error)
}

func (f *fixture) loadTransaction(t *testing.T, id string) *trxdomain.WaitingTransaction {
	t.Helper()
	var trx trxdomain.WaitingTransaction
	require.NoError(t, f.db.Where("transaction_id = ?", id).Find(&trx).Error)
	if trx.TransactionID == "" {
		return nil
	}
	return &trx
}

func (f *fixture) loadTable(t *testing.T, id string) *floordomain.Table {
	t.Helper()
	var table floordomain.Table
	require.NoError(t, f.db.Where("table_id = ?", id).Find(&table).Error)
	return &table
}

func strptr(s string) *string { return &s }

func TestTransferServerPropagatesStaffToItems(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedStaff(t, "S-2", "Ben", "Reyes", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{
		TransactionID: "M1",
		StaffID:       strptr("S-1"),
		Items: trxdomain.CartItems{
			{ProductID: "P1", Name: "Burger", Quantity: 1, Price: 1000, StaffID: "S-1"},
			{ProductID: "P2", Name: "Fries", Quantity: 2, Price: 400, StaffID: "S-1"},
		},
	})

	resp, err := f.svc.TransferServer(context.Background(), domain.TransferServerRequest{
		TransactionID: "M1",
		ToStaffID:     "S-2",
	})
	require.NoError(t, err)
	assert.Equal(t, "S-2", resp.ToStaffID)
	require.NotNil(t, resp.FromStaffID)
	assert.Equal(t, "S-1", *resp.FromStaffID)
	assert.Contains(t, resp.Message, "Ben Reyes")

	stored := f.loadTransaction(t, "M1")
	require.NotNil(t, stored.StaffID)
	assert.Equal(t, "S-2", *stored.StaffID)
	for _, item := range stored.Items {
		assert.Equal(t, "S-2", item.StaffID)
	}
}

func TestTransferServerInactiveTarget(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedStaff(t, "S-3", "Carla", "Lim", false)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M1", StaffID: strptr("S-1")})

	_, err := f.svc.TransferServer(context.Background(), domain.TransferServerRequest{
		TransactionID: "M1",
		ToStaffID:     "S-3",
	})
	assert.ErrorIs(t, err, staffdomain.ErrInactive)
}

func TestShiftHandoverMovesAllOrders(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedStaff(t, "S-2", "Ben", "Reyes", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M1", StaffID: strptr("S-1")})
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M2", StaffID: strptr("S-1")})
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M3", StaffID: strptr("S-2")})

	resp, err := f.svc.ShiftHandover(context.Background(), domain.ShiftHandoverRequest{
		FromStaffID: "S-1",
		ToStaffID:   "S-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.ElementsMatch(t, []string{"M1", "M2"}, resp.TransactionIDs)
	assert.Contains(t, resp.Message, "2 order(s)")
	assert.Contains(t, resp.Message, "Ana Gomez")
	assert.Contains(t, resp.Message, "Ben Reyes")

	for _, id := range []string{"M1", "M2"} {
		stored := f.loadTransaction(t, id)
		require.NotNil(t, stored.StaffID)
		assert.Equal(t, "S-2", *stored.StaffID)
	}
}

func TestShiftHandoverNoOrdersIsSuccess(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedStaff(t, "S-2", "Ben", "Reyes", true)

	resp, err := f.svc.ShiftHandover(context.Background(), domain.ShiftHandoverRequest{
		FromStaffID: "S-1",
		ToStaffID:   "S-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.TransactionIDs)
}

func TestMoveOrderToSeatedTableIsConflict(t *testing.T) {
	f := newFixture(t)
	f.seedTable(t, "T-1", "Table 1", 1, floordomain.TableOccupied)
	f.seedTable(t, "T-2", "Table 2", 2, floordomain.TableAvailable)
	f.seedSeat(t, "T-2-S1", "T-2", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{
		TransactionID: "M1",
		TableID:       strptr("T-1"),
		TableName:     strptr("Table 1"),
	})

	_, err := f.svc.MoveOrder(context.Background(), domain.MoveOrderRequest{
		TransactionID: "M1",
		ToTableID:     "T-2",
	})
	assert.ErrorIs(t, err, domain.ErrTableOccupied)

	// Nothing moved: transaction table fields and both table rows unchanged.
	stored := f.loadTransaction(t, "M1")
	require.NotNil(t, stored.TableID)
	assert.Equal(t, "T-1", *stored.TableID)
	assert.Equal(t, floordomain.TableOccupied, f.loadTable(t, "T-1").Status)
	assert.Equal(t, floordomain.TableAvailable, f.loadTable(t, "T-2").Status)
}

func TestMoveOrderToOccupiedTableIsConflict(t *testing.T) {
	f := newFixture(t)
	f.seedTable(t, "T-1", "Table 1", 1, floordomain.TableOccupied)
	f.seedTable(t, "T-2", "Table 2", 2, floordomain.TableOccupied)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M1", TableID: strptr("T-1")})

	_, err := f.svc.MoveOrder(context.Background(), domain.MoveOrderRequest{
		TransactionID: "M1",
		ToTableID:     "T-2",
	})
	assert.ErrorIs(t, err, domain.ErrTableOccupied)
}

func TestMoveOrderFreesSourceAndOccupiesTarget(t *testing.T) {
	f := newFixture(t)
	f.seedTable(t, "T-1", "Table 1", 1, floordomain.TableOccupied)
	f.seedTable(t, "T-2", "Table 2", 2, floordomain.TableAvailable)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{
		TransactionID: "M1",
		CustomerID:    strptr("C-7"),
		TableID:       strptr("T-1"),
		TableName:     strptr("Table 1"),
	})

	resp, err := f.svc.MoveOrder(context.Background(), domain.MoveOrderRequest{
		TransactionID: "M1",
		ToTableID:     "T-2",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.FromTableID)
	assert.Equal(t, "T-1", *resp.FromTableID)

	stored := f.loadTransaction(t, "M1")
	require.NotNil(t, stored.TableID)
	assert.Equal(t, "T-2", *stored.TableID)
	require.NotNil(t, stored.TableName)
	assert.Equal(t, "Table 2", *stored.TableName)

	source := f.loadTable(t, "T-1")
	assert.Equal(t, floordomain.TableAvailable, source.Status)
	assert.Nil(t, source.CurrentTransactionID)

	target := f.loadTable(t, "T-2")
	assert.Equal(t, floordomain.TableOccupied, target.Status)
	require.NotNil(t, target.CurrentTransactionID)
	assert.Equal(t, "M1", *target.CurrentTransactionID)
	require.NotNil(t, target.CurrentCustomerID)
	assert.Equal(t, "C-7", *target.CurrentCustomerID)
}

func TestRefireAllItems(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{
		TransactionID: "M1",
		Items: trxdomain.CartItems{
			{ProductID: "P1", Name: "Burger", Quantity: 1, Price: 1000},
			{ProductID: "P2", Name: "Fries", Quantity: 1, Price: 400},
		},
	})

	resp, err := f.svc.Refire(context.Background(), domain.RefireRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "cold food",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ItemsRefired)

	stored := f.loadTransaction(t, "M1")
	assert.True(t, stored.RefireFlag)
	require.NotNil(t, stored.RefireReason)
	assert.Equal(t, "cold food", *stored.RefireReason)
	require.NotNil(t, stored.RefireStaffID)
	assert.Equal(t, "S-1", *stored.RefireStaffID)
	require.NotNil(t, stored.RefiredAt)
}

func TestRefireSubsetAndBounds(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{
		TransactionID: "M1",
		Items: trxdomain.CartItems{
			{ProductID: "P1", Name: "Burger", Quantity: 1, Price: 1000},
			{ProductID: "P2", Name: "Fries", Quantity: 1, Price: 400},
		},
	})

	resp, err := f.svc.Refire(context.Background(), domain.RefireRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "wrong side",
		ItemIndexes:   []int{1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ItemsRefired)

	_, err = f.svc.Refire(context.Background(), domain.RefireRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "wrong side",
		ItemIndexes:   []int{2},
	})
	assert.ErrorIs(t, err, domain.ErrItemIndexOutOfRange)

	_, err = f.svc.Refire(context.Background(), domain.RefireRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "",
	})
	assert.ErrorIs(t, err, domain.ErrReasonRequired)
}

func TestAddNotesAppends(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M1"})

	ctx := context.Background()
	_, err := f.svc.AddNotes(ctx, domain.AddNotesRequest{TransactionID: "M1", StaffID: "S-1", Notes: "no ice"})
	require.NoError(t, err)

	f.clk.Advance(3 * time.Minute)
	resp, err := f.svc.AddNotes(ctx, domain.AddNotesRequest{TransactionID: "M1", StaffID: "S-1", Notes: "rush dessert"})
	require.NoError(t, err)

	lines := strings.Split(resp.Notes, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "no ice")
	assert.Contains(t, lines[1], "rush dessert")
	assert.Contains(t, lines[1], "Ana Gomez")

	_, err = f.svc.AddNotes(ctx, domain.AddNotesRequest{TransactionID: "M1", StaffID: "S-1", Notes: "   "})
	assert.ErrorIs(t, err, domain.ErrNotesRequired)
}

func TestRemoveTaxesAndFeesTwice(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{
		TransactionID: "M1",
		Items: trxdomain.CartItems{
			{ProductID: "P1", Name: "Burger", Quantity: 1, Price: 1000, Taxable: true, TaxAmount: 300},
			{ProductID: "P2", Name: "Fries", Quantity: 1, Price: 400, Taxable: true, TaxAmount: 200},
			{ProductID: "P3", Name: "Water", Quantity: 1, Price: 100, Taxable: false, TaxAmount: 0},
		},
	})

	ctx := context.Background()
	resp, err := f.svc.RemoveTaxesAndFees(ctx, domain.RemoveTaxesRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "exempt",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.OriginalTaxAmount)
	assert.Equal(t, 2, resp.ItemsAffected)
	assert.NotEmpty(t, resp.AuditLogID)

	stored := f.loadTransaction(t, "M1")
	for _, item := range stored.Items {
		assert.Zero(t, item.TaxAmount)
		assert.False(t, item.Taxable)
	}

	// Already clean: a no-op that is still audited.
	again, err := f.svc.RemoveTaxesAndFees(ctx, domain.RemoveTaxesRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "exempt",
	})
	require.NoError(t, err)
	assert.Zero(t, again.OriginalTaxAmount)
	assert.Zero(t, again.ItemsAffected)

	var auditCount int64
	f.db.Table("tax_adjustment_audit_logs").Where("transaction_id = ?", "M1").Count(&auditCount)
	assert.EqualValues(t, 2, auditCount)

	logs, err := f.svc.ListTaxAdjustments(ctx, "M1")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "exempt", logs[0].Reason)
}

func TestRemoveTaxesRequiresReason(t *testing.T) {
	f := newFixture(t)
	f.seedStaff(t, "S-1", "Ana", "Gomez", true)
	f.seedTransaction(t, &trxdomain.WaitingTransaction{TransactionID: "M1"})

	_, err := f.svc.RemoveTaxesAndFees(context.Background(), domain.RemoveTaxesRequest{
		TransactionID: "M1",
		StaffID:       "S-1",
		Reason:        "  ",
	})
	assert.ErrorIs(t, err, domain.ErrReasonRequired)

	var auditCount int64
	f.db.Table("tax_adjustment_audit_logs").Count(&auditCount)
	assert.Zero(t, auditCount)
}

func TestGetTransactionNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetTransaction(context.Background(), "M-missing")
	assert.ErrorIs(t, err, trxdomain.ErrNotFound)
}
