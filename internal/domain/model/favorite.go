package model

import "time"

// Favorite is a user's saved parking spot. The (user_id, parking_spot_id)
// pair is unique; the storage constraint is the real guarantee against
// concurrent duplicate adds.
type Favorite struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;uniqueIndex:idx_favorites_user_spot" json:"user_id"`
	ParkingSpotID int64     `gorm:"not null;uniqueIndex:idx_favorites_user_spot" json:"parking_spot_id"`
	CreatedAt     time.Time `gorm:"default:now()" json:"created_at"`

	// Relations
	ParkingSpot *ParkingSpot `gorm:"foreignKey:ParkingSpotID;constraint:OnDelete:CASCADE" json:"parking_spot,omitempty"`
}

// TableName specifies the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}
