package models

import (
	"time"
)

// Payment is an immutable ledger entry against a rental. There is no update
// or delete path once recorded.
type Payment struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	RentalID    uint64    `gorm:"not null;index" json:"rental_id"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	PaidAt      time.Time `gorm:"not null;index" json:"paid_at"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Rental Rental `gorm:"foreignKey:RentalID" json:"-"`
}
