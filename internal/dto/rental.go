package dto

import (
	"time"

	"github.com/ktaneda/rental-ledger-api/internal/models"
	"github.com/ktaneda/rental-ledger-api/internal/utils"
)

// RentalDTO represents a rental in API responses
type RentalDTO struct {
	ID                     uint64     `json:"id"`
	UserID                 uint64     `json:"user_id"`
	Address                string     `json:"address"`
	Tenant                 string     `json:"tenant"`
	RentCents              int64      `json:"rent_cents"`
	Commercial             bool       `json:"commercial"`
	PropertyTaxAnnualCents *int64     `json:"property_tax_annual_cents,omitempty"`
	InsuranceAnnualCents   *int64     `json:"insurance_annual_cents,omitempty"`
	LastPaymentAt          *time.Time `json:"last_payment_at"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// PaymentDTO represents a payment in API responses
type PaymentDTO struct {
	ID          uint64    `json:"id"`
	RentalID    uint64    `json:"rental_id"`
	AmountCents int64     `json:"amount_cents"`
	PaidAt      time.Time `json:"paid_at"`
}

// RentalListResponse represents a user's rentals in ledger order
type RentalListResponse struct {
	Rentals []RentalDTO `json:"rentals"`
}

// RentalDetailResponse represents a rental with its payment history and balance
type RentalDetailResponse struct {
	Rental         RentalDTO                `json:"rental"`
	Payments       []PaymentDTO             `json:"payments"`
	TotalPaidCents int64                    `json:"total_paid_cents"`
	Pagination     utils.PaginationResponse `json:"pagination"`
}

// ToRentalDTO converts a Rental model to RentalDTO
func ToRentalDTO(rental models.Rental) RentalDTO {
	return RentalDTO{
		ID:                     rental.ID,
		UserID:                 rental.UserID,
		Address:                rental.Address,
		Tenant:                 rental.Tenant,
		RentCents:              rental.RentCents,
		Commercial:             rental.Commercial,
		PropertyTaxAnnualCents: rental.PropertyTaxAnnualCents,
		InsuranceAnnualCents:   rental.InsuranceAnnualCents,
		LastPaymentAt:          rental.LastPaymentAt,
		CreatedAt:              rental.CreatedAt,
		UpdatedAt:              rental.UpdatedAt,
	}
}

// ToRentalDTOs converts a slice of rentals preserving order
func ToRentalDTOs(rentals []models.Rental) []RentalDTO {
	dtos := make([]RentalDTO, len(rentals))
	for i, rental := range rentals {
		dtos[i] = ToRentalDTO(rental)
	}
	return dtos
}

// ToPaymentDTO converts a Payment model to PaymentDTO
func ToPaymentDTO(payment models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          payment.ID,
		RentalID:    payment.RentalID,
		AmountCents: payment.AmountCents,
		PaidAt:      payment.PaidAt,
	}
}

// ToPaymentDTOs converts a slice of payments preserving order
func ToPaymentDTOs(payments []models.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(payments))
	for i, payment := range payments {
		dtos[i] = ToPaymentDTO(payment)
	}
	return dtos
}
