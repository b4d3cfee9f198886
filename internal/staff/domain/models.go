package domain

import (
	"errors"
	"strings"
	"time"
)

// Staff is one member of the restaurant staff. The coordinator only ever
// reads this table; daily-code authentication lives at the boundary and the
// hash column is carried as opaque data.
type Staff struct {
	StaffID   string `gorm:"column:staff_id;primaryKey"`
	FirstName string `gorm:"column:first_name;not null"`
	LastName  string `gorm:"column:last_name;not null"`

	DailyCodeHash string `gorm:"column:daily_code_hash"`
	IsActive      bool   `gorm:"column:is_active;not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Staff) TableName() string { return "staff" }

func (s Staff) DisplayName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

var (
	ErrNotFound = errors.New("staff_not_found")
	ErrInactive = errors.New("staff_inactive")
)
