package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	ActionRemove = "Remove"
	ScopeOrder   = "Order"
)

// AuditLog is one tamper-evident record of a tax adjustment. Rows are
// append-only: never updated, never deleted outside combine cleanup of a
// source transaction.
type AuditLog struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	TransactionID string       `gorm:"column:transaction_id;index;not null" json:"transaction_id"`
	StaffID       string       `gorm:"column:staff_id;not null" json:"staff_id"`

	Action string `gorm:"column:action;type:text;not null" json:"action"`
	Scope  string `gorm:"column:scope;type:text;not null" json:"scope"`

	OriginalTaxAmount int64 `gorm:"column:original_tax_amount;not null" json:"original_tax_amount"`
	NewTaxAmount      int64 `gorm:"column:new_tax_amount;not null" json:"new_tax_amount"`

	Reason   string            `gorm:"column:reason;type:text;not null" json:"reason"`
	Metadata datatypes.JSONMap `gorm:"column:metadata;type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (AuditLog) TableName() string { return "tax_adjustment_audit_logs" }
