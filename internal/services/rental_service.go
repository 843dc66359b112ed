package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ktaneda/rental-ledger-api/internal/models"
	"github.com/ktaneda/rental-ledger-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRentalNotFound     = errors.New("rental not found")
	ErrAddressRequired    = errors.New("address is required")
	ErrTenantRequired     = errors.New("tenant is required")
	ErrRentNotPositive    = errors.New("rent must be a positive amount of cents")
	ErrAmountNotPositive  = errors.New("amount must be a positive amount of cents")
	ErrNegativeAnnualCost = errors.New("annual costs cannot be negative")
)

// RentalService handles the rental ledger business logic.
type RentalService struct {
	rentalRepo repository.RentalRepository
}

// NewRentalService creates a new RentalService.
func NewRentalService(rentalRepo repository.RentalRepository) *RentalService {
	return &RentalService{
		rentalRepo: rentalRepo,
	}
}

// CreateRentalInput represents input for creating a rental.
type CreateRentalInput struct {
	UserID                 uint64
	Address                string
	Tenant                 string
	RentCents              int64
	Commercial             bool
	PropertyTaxAnnualCents *int64
	InsuranceAnnualCents   *int64
}

// UpdateRentalInput represents a partial update of a rental's editable fields.
type UpdateRentalInput struct {
	Address                *string
	Tenant                 *string
	RentCents              *int64
	Commercial             *bool
	PropertyTaxAnnualCents *int64
	ClearPropertyTax       bool
	InsuranceAnnualCents   *int64
	ClearInsurance         bool
}

// RecordPaymentInput represents input for recording a payment.
type RecordPaymentInput struct {
	RentalID    uint64
	AmountCents int64
	PaidAt      *time.Time
}

// RentalBalance bundles a rental with its payment history and running total.
type RentalBalance struct {
	Rental         *models.Rental
	Payments       []models.Payment
	TotalPaidCents int64
	PaymentCount   int64
}

// CreateRental validates and creates a rental. New rentals start with no
// payments and no last payment time.
func (s *RentalService) CreateRental(input CreateRentalInput) (*models.Rental, error) {
	if strings.TrimSpace(input.Address) == "" {
		return nil, ErrAddressRequired
	}
	if strings.TrimSpace(input.Tenant) == "" {
		return nil, ErrTenantRequired
	}
	if input.RentCents <= 0 {
		return nil, ErrRentNotPositive
	}
	if input.PropertyTaxAnnualCents != nil && *input.PropertyTaxAnnualCents < 0 {
		return nil, ErrNegativeAnnualCost
	}
	if input.InsuranceAnnualCents != nil && *input.InsuranceAnnualCents < 0 {
		return nil, ErrNegativeAnnualCost
	}

	rental := &models.Rental{
		UserID:                 input.UserID,
		Address:                strings.TrimSpace(input.Address),
		Tenant:                 strings.TrimSpace(input.Tenant),
		RentCents:              input.RentCents,
		Commercial:             input.Commercial,
		PropertyTaxAnnualCents: input.PropertyTaxAnnualCents,
		InsuranceAnnualCents:   input.InsuranceAnnualCents,
	}

	if err := s.rentalRepo.Create(rental); err != nil {
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}

	return rental, nil
}

// UpdateRental applies an owner's field edits to an existing rental.
func (s *RentalService) UpdateRental(rentalID uint64, input UpdateRentalInput) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("failed to find rental: %w", err)
	}

	if input.Address != nil {
		if strings.TrimSpace(*input.Address) == "" {
			return nil, ErrAddressRequired
		}
		rental.Address = strings.TrimSpace(*input.Address)
	}
	if input.Tenant != nil {
		if strings.TrimSpace(*input.Tenant) == "" {
			return nil, ErrTenantRequired
		}
		rental.Tenant = strings.TrimSpace(*input.Tenant)
	}
	if input.RentCents != nil {
		if *input.RentCents <= 0 {
			return nil, ErrRentNotPositive
		}
		rental.RentCents = *input.RentCents
	}
	if input.Commercial != nil {
		rental.Commercial = *input.Commercial
	}
	if input.ClearPropertyTax {
		rental.PropertyTaxAnnualCents = nil
	} else if input.PropertyTaxAnnualCents != nil {
		if *input.PropertyTaxAnnualCents < 0 {
			return nil, ErrNegativeAnnualCost
		}
		rental.PropertyTaxAnnualCents = input.PropertyTaxAnnualCents
	}
	if input.ClearInsurance {
		rental.InsuranceAnnualCents = nil
	} else if input.InsuranceAnnualCents != nil {
		if *input.InsuranceAnnualCents < 0 {
			return nil, ErrNegativeAnnualCost
		}
		rental.InsuranceAnnualCents = input.InsuranceAnnualCents
	}

	if err := s.rentalRepo.Update(rental); err != nil {
		return nil, fmt.Errorf("failed to update rental: %w", err)
	}

	return rental, nil
}

// RecordPayment records a payment against a rental. PaidAt defaults to the
// current time. The insert and the rental's last_payment_at derivation
// happen atomically in the repository.
func (s *RentalService) RecordPayment(input RecordPaymentInput) (*models.Payment, error) {
	if input.AmountCents <= 0 {
		return nil, ErrAmountNotPositive
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := &models.Payment{
		RentalID:    input.RentalID,
		AmountCents: input.AmountCents,
		PaidAt:      paidAt,
	}

	if err := s.rentalRepo.RecordPayment(payment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return payment, nil
}

// ListRentals returns a user's rentals in ledger order: ascending by last
// payment time, never-paid rentals first.
func (s *RentalService) ListRentals(userID uint64) ([]models.Rental, error) {
	rentals, err := s.rentalRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, nil
}

// GetRentalWithBalance returns a rental together with its payment history
// and the sum of everything paid. A rental with no payments has a total of
// zero.
func (s *RentalService) GetRentalWithBalance(rentalID uint64, filter repository.PaymentFilter) (*RentalBalance, error) {
	rental, err := s.rentalRepo.FindByID(rentalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, fmt.Errorf("failed to find rental: %w", err)
	}

	payments, total, err := s.rentalRepo.ListPayments(rentalID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	totalPaid, err := s.rentalRepo.SumPayments(rentalID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum payments: %w", err)
	}

	return &RentalBalance{
		Rental:         rental,
		Payments:       payments,
		TotalPaidCents: totalPaid,
		PaymentCount:   total,
	}, nil
}
