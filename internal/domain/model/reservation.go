package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusFailed    ReservationStatus = "failed"
)

// Scan implements sql.Scanner interface
func (s *ReservationStatus) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = ReservationStatus(v)
	case []byte:
		*s = ReservationStatus(v)
	default:
		*s = ReservationStatusPending
	}
	return nil
}

// Value implements driver.Valuer interface
func (s ReservationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Reservation is a booking of one spot by one user for a time window. The
// total price is always recomputed server-side from the spot rate and the
// duration; client-supplied totals are ignored.
type Reservation struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64             `gorm:"not null;index" json:"user_id"`
	ParkingSpotID int64             `gorm:"not null;index" json:"parking_spot_id"`
	Date          string            `gorm:"not null;size:20" json:"date"`
	StartTime     string            `gorm:"not null;size:20" json:"start_time"`
	Duration      int               `gorm:"not null" json:"duration"`
	VehicleType   string            `gorm:"size:50" json:"vehicle_type"`
	LicensePlate  string            `gorm:"not null;size:20" json:"license_plate"`
	TotalPrice    decimal.Decimal   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status        ReservationStatus `gorm:"size:50;not null;default:'pending'" json:"status"`
	PaymentID     *int64            `gorm:"index" json:"payment_id,omitempty"`
	CreatedAt     time.Time         `gorm:"default:now()" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"default:now()" json:"updated_at"`

	// Relations
	ParkingSpot *ParkingSpot `gorm:"foreignKey:ParkingSpotID;constraint:OnDelete:CASCADE" json:"parking_spot,omitempty"`
	Payment     *Payment     `gorm:"foreignKey:PaymentID" json:"payment,omitempty"`
}

// TableName specifies the table name for GORM
func (Reservation) TableName() string {
	return "reservations"
}

// IsTerminalCancelled reports whether the reservation has already been
// cancelled; cancelled is the only state a cancel cannot leave.
func (r *Reservation) IsTerminalCancelled() bool {
	return r.Status == ReservationStatusCancelled
}
