package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var schema = []string{
	`CREATE TABLE staff (
		staff_id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		daily_code_hash TEXT,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE tables (
		table_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		number INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'Available',
		current_transaction_id TEXT,
		current_customer_id TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE seats (
		seat_id TEXT PRIMARY KEY,
		table_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		occupied BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE waiting_transactions (
		transaction_id TEXT PRIMARY KEY,
		customer_id TEXT,
		table_id TEXT,
		table_number INTEGER,
		table_name TEXT,
		staff_id TEXT,
		status TEXT NOT NULL DEFAULT 'Pending',
		notes TEXT,
		items TEXT,
		refire_flag BOOLEAN NOT NULL DEFAULT FALSE,
		refire_reason TEXT,
		refire_staff_id TEXT,
		refired_at DATETIME,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE TABLE print_bill_requests (
		request_id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		staff_id TEXT NOT NULL,
		staff_name TEXT,
		table_id TEXT,
		table_name TEXT,
		status TEXT NOT NULL DEFAULT 'Pending',
		notes TEXT,
		requested_at DATETIME NOT NULL,
		completed_at DATETIME,
		completed_by TEXT
	)`,
	`CREATE UNIQUE INDEX uq_print_bill_requests_pending
		ON print_bill_requests (transaction_id) WHERE status = 'Pending'`,
	`CREATE TABLE pay_entire_bill_requests (
		request_id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		staff_id TEXT NOT NULL,
		staff_name TEXT,
		table_id TEXT,
		table_name TEXT,
		status TEXT NOT NULL DEFAULT 'Pending',
		notes TEXT,
		requested_at DATETIME NOT NULL,
		completed_at DATETIME,
		completed_by TEXT
	)`,
	`CREATE UNIQUE INDEX uq_pay_entire_bill_requests_pending
		ON pay_entire_bill_requests (transaction_id) WHERE status = 'Pending'`,
	`CREATE TABLE tax_adjustment_audit_logs (
		id BIGINT PRIMARY KEY,
		transaction_id TEXT NOT NULL,
		staff_id TEXT NOT NULL,
		action TEXT NOT NULL,
		scope TEXT NOT NULL,
		original_tax_amount BIGINT NOT NULL,
		new_tax_amount BIGINT NOT NULL,
		reason TEXT NOT NULL,
		metadata TEXT,
		created_at DATETIME NOT NULL
	)`,
}

// Open returns an isolated in-memory database with the full schema applied.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}

	for _, stmt := range schema {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to apply schema: %v", err)
		}
	}
	return conn
}
