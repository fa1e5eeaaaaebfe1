package model

import "time"

// User is the account identity referenced by reservations, payments, and
// favorites. Credential handling lives outside this service; only profile
// fields are stored here.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"unique;not null;size:100" json:"username"`
	Name      string    `gorm:"size:255" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`

	// Relations
	Reservations []Reservation `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Payments     []Payment     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Favorites    []Favorite    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}
