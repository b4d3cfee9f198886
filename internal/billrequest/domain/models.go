package domain

import (
	"strings"
	"time"
)

// Kind distinguishes the two cross-device request queues. Each kind lives in
// its own table so the pending-uniqueness constraint stays per kind.
type Kind string

const (
	KindPrintBill     Kind = "print_bill"
	KindPayEntireBill Kind = "pay_entire_bill"
)

func (k Kind) Valid() bool {
	return k == KindPrintBill || k == KindPayEntireBill
}

// Prefix is the request-id prefix for this kind.
func (k Kind) Prefix() string {
	if k == KindPayEntireBill {
		return "PER"
	}
	return "PBR"
}

// Table is the backing table name for this kind.
func (k Kind) Table() string {
	if k == KindPayEntireBill {
		return "pay_entire_bill_requests"
	}
	return "print_bill_requests"
}

// KindFromRequestID recovers the kind from a generated request id.
func KindFromRequestID(requestID string) (Kind, bool) {
	switch {
	case strings.HasPrefix(requestID, "PBR-"):
		return KindPrintBill, true
	case strings.HasPrefix(requestID, "PER-"):
		return KindPayEntireBill, true
	default:
		return "", false
	}
}

// Status is the per-request state machine: Pending is the only non-terminal
// state; Completed and Cancelled are terminal.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// BillRequest is a cross-device handoff ticket: created by a mobile device,
// consumed by the desktop terminal through polling. Terminal rows are
// retained for audit, never deleted outside combine cleanup.
type BillRequest struct {
	RequestID     string `gorm:"column:request_id;primaryKey" json:"request_id"`
	TransactionID string `gorm:"column:transaction_id;index;not null" json:"transaction_id"`

	StaffID   string `gorm:"column:staff_id;not null" json:"staff_id"`
	StaffName string `gorm:"column:staff_name" json:"staff_name"`

	TableID   *string `gorm:"column:table_id" json:"table_id,omitempty"`
	TableName *string `gorm:"column:table_name" json:"table_name,omitempty"`

	Status Status `gorm:"column:status;type:text;not null;default:Pending" json:"status"`
	Notes  string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	RequestedAt time.Time  `gorm:"column:requested_at;not null" json:"requested_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CompletedBy *string    `gorm:"column:completed_by" json:"completed_by,omitempty"`
}
