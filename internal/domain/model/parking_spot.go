package model

import (
	"database/sql/driver"
	"time"

	"github.com/shopspring/decimal"
)

// SpotSource identifies where a parking spot record came from.
type SpotSource string

const (
	SpotSourceLocal         SpotSource = "local"
	SpotSourceStaticCatalog SpotSource = "static_catalog"
	SpotSourceExternalAPI   SpotSource = "external_api"
)

// Scan implements sql.Scanner interface
func (s *SpotSource) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = SpotSource(v)
	case []byte:
		*s = SpotSource(v)
	default:
		*s = SpotSourceLocal
	}
	return nil
}

// Value implements driver.Valuer interface
func (s SpotSource) Value() (driver.Value, error) {
	return string(s), nil
}

// ParkingSpot is the canonical record for a parking location regardless of
// which source produced it. Static-catalog and external spots are materialized
// per request and only persisted when explicitly imported, so ID is zero for
// them.
type ParkingSpot struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"not null;size:255" json:"name"`
	Address        string          `gorm:"not null;size:255" json:"address"`
	City           string          `gorm:"not null;size:100;index" json:"city"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	AvailableSpots int             `gorm:"not null;default:0" json:"available_spots"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	Source         SpotSource      `gorm:"size:50;not null;default:'local'" json:"source"`
	ExternalID     *string         `gorm:"column:external_id;size:100" json:"external_id,omitempty"`
	Rating         *float64        `json:"rating,omitempty"`
	CreatedAt      time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"default:now()" json:"updated_at"`

	// Distance from the search location in miles. Transient: populated by the
	// search path, never persisted.
	Distance *float64 `gorm:"-" json:"distance,omitempty"`
}

// TableName specifies the table name for GORM
func (ParkingSpot) TableName() string {
	return "parking_spots"
}
