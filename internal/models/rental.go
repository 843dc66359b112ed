package models

import (
	"time"
)

// Rental is a property tracked by its owning user. All monetary fields are
// integer cents. LastPaymentAt is derived: it always equals the latest
// PaidAt among the rental's payments, or nil when none exist.
type Rental struct {
	ID                     uint64     `gorm:"primarykey" json:"id"`
	UserID                 uint64     `gorm:"not null;index" json:"user_id"`
	Address                string     `gorm:"type:varchar(255);not null" json:"address"`
	Tenant                 string     `gorm:"type:varchar(255);not null" json:"tenant"`
	RentCents              int64      `gorm:"not null" json:"rent_cents"`
	Commercial             bool       `gorm:"not null" json:"commercial"`
	PropertyTaxAnnualCents *int64     `json:"property_tax_annual_cents"`
	InsuranceAnnualCents   *int64     `json:"insurance_annual_cents"`
	LastPaymentAt          *time.Time `json:"last_payment_at"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`

	// Relations
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Payments []Payment `gorm:"foreignKey:RentalID" json:"payments,omitempty"`
}
