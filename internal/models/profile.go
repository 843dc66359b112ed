package models

import "time"

// Profile holds the per-user account settings created alongside the user at
// signup. AvatarHash is derived from Email and must be recomputed whenever
// the email changes.
type Profile struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	UserID     uint64    `gorm:"uniqueIndex;not null" json:"user_id"`
	Email      string    `gorm:"type:varchar(255)" json:"email"`
	AvatarHash string    `gorm:"type:varchar(32)" json:"avatar_hash"`
	TaxRate    *int      `json:"tax_rate"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
