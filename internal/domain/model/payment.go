package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the status of a payment attempt.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Scan implements sql.Scanner interface
func (s *PaymentStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = PaymentStatus(v)
	case []byte:
		*s = PaymentStatus(v)
	default:
		*s = PaymentStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s PaymentStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// PaymentMethod is how the user paid.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodWallet     PaymentMethod = "wallet"
)

// Payment is a record of one payment attempt. The amount is immutable once
// created; status is the only field reconciliation may change, and the card
// metadata is set exactly once together with the succeeded status. Payments
// are never deleted (audit trail).
type Payment struct {
	ID                      int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID                  int64           `gorm:"not null;index" json:"user_id"`
	Amount                  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	PaymentMethod           PaymentMethod   `gorm:"size:50;not null;default:'credit_card'" json:"payment_method"`
	PaymentStatus           PaymentStatus   `gorm:"size:50;not null;default:'pending';index" json:"payment_status"`
	ProviderPaymentIntentID *string         `gorm:"column:provider_payment_intent_id;unique;size:100" json:"provider_payment_intent_id,omitempty"`
	LastFour                *string         `gorm:"size:4" json:"last_four,omitempty"`
	CardBrand               *string         `gorm:"size:20" json:"card_brand,omitempty"`
	TransactionDate         time.Time       `gorm:"default:now()" json:"transaction_date"`
	CreatedAt               time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt               time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// IsTerminal reports whether the payment has reached a final status.
func (p *Payment) IsTerminal() bool {
	return p.PaymentStatus == PaymentStatusSucceeded || p.PaymentStatus == PaymentStatusFailed
}
