package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// TransactionStatus is the closed lifecycle state of a waiting transaction.
// The wire/database representation stays the historical free-text values.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "Pending"
	StatusPreparing TransactionStatus = "Preparing"
	StatusServed    TransactionStatus = "Served"
)

// AppliedModifier is one modifier applied to a cart item.
type AppliedModifier struct {
	ModifierID string `json:"modifier_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
}

// CartItem is one product line inside a waiting transaction. Items have no
// identity of their own; the list is always rewritten wholesale with its
// parent row.
type CartItem struct {
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	Price     int64             `json:"price"`
	Discount  int64             `json:"discount"`
	TaxID     string            `json:"tax_id,omitempty"`
	Taxable   bool              `json:"taxable"`
	TaxAmount int64             `json:"tax_amount"`
	Modifiers []AppliedModifier `json:"modifiers,omitempty"`
	StaffID   string            `json:"staff_id,omitempty"`
}

// Subtotal is price*quantity - discount. Tax is cached externally computed,
// never derived here.
func (i CartItem) Subtotal() int64 {
	return i.Price*int64(i.Quantity) - i.Discount
}

// CartItems serializes the owned item list as a JSON column.
type CartItems []CartItem

func (items CartItems) Value() (driver.Value, error) {
	if items == nil {
		items = CartItems{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *CartItems) Scan(value any) error {
	if value == nil {
		*items = CartItems{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported cart items column type")
	}
	if len(b) == 0 {
		*items = CartItems{}
		return nil
	}
	return json.Unmarshal(b, items)
}

// WaitingTransaction is one active order not yet finalized or paid.
type WaitingTransaction struct {
	TransactionID string  `gorm:"column:transaction_id;primaryKey" json:"transaction_id"`
	CustomerID    *string `gorm:"column:customer_id" json:"customer_id,omitempty"`

	TableID     *string `gorm:"column:table_id;index" json:"table_id,omitempty"`
	TableNumber *int    `gorm:"column:table_number" json:"table_number,omitempty"`
	TableName   *string `gorm:"column:table_name" json:"table_name,omitempty"`

	StaffID *string `gorm:"column:staff_id;index" json:"staff_id,omitempty"`

	Status TransactionStatus `gorm:"column:status;type:text;not null;default:Pending" json:"status"`
	Notes  string            `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Items CartItems `gorm:"column:items;type:text" json:"items"`

	RefireFlag    bool       `gorm:"column:refire_flag;not null;default:false" json:"refire_flag"`
	RefireReason  *string    `gorm:"column:refire_reason" json:"refire_reason,omitempty"`
	RefireStaffID *string    `gorm:"column:refire_staff_id" json:"refire_staff_id,omitempty"`
	RefiredAt     *time.Time `gorm:"column:refired_at" json:"refired_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TotalAmount is the sum over items of price*quantity plus the cached tax.
func (t WaitingTransaction) TotalAmount() int64 {
	var total int64
	for _, item := range t.Items {
		total += item.Price*int64(item.Quantity) + item.TaxAmount
	}
	return total
}
