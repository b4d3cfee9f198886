package domain

import (
	"errors"
	"time"
)

// TableStatus is the closed set of floor-table states.
type TableStatus string

const (
	TableAvailable TableStatus = "Available"
	TableOccupied  TableStatus = "Occupied"
	TableReserved  TableStatus = "Reserved"
	TableCleaning  TableStatus = "Cleaning"
)

// Table is one physical table on the floor plan. Geometry is out of scope;
// only identity and occupancy are tracked here.
type Table struct {
	TableID string `gorm:"column:table_id;primaryKey"`
	Name    string `gorm:"column:name;not null"`
	Number  int    `gorm:"column:number;not null"`

	Status TableStatus `gorm:"column:status;type:text;not null;default:Available"`

	CurrentTransactionID *string `gorm:"column:current_transaction_id"`
	CurrentCustomerID    *string `gorm:"column:current_customer_id"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Table) TableName() string { return "tables" }

// Seat is one seat at a table, tracked only for occupancy checks.
type Seat struct {
	SeatID   string `gorm:"column:seat_id;primaryKey"`
	TableID  string `gorm:"column:table_id;index;not null"`
	Number   int    `gorm:"column:number;not null"`
	Occupied bool   `gorm:"column:occupied;not null;default:false"`
}

func (Seat) TableName() string { return "seats" }

var (
	ErrNotFound = errors.New("table_not_found")
)
