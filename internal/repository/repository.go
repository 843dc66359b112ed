package repository

import (
	"time"

	"github.com/ktaneda/rental-ledger-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithProfile creates a user and their account profile within a
	// single transaction.
	CreateWithProfile(user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByName finds a user by name
	FindByName(name string) (*models.User, error)

	// UpdatePasswordHash replaces a user's password hash
	UpdatePasswordHash(id uint64, passwordHash string) error
}

// RentalRepository defines the interface for rental and payment data access
type RentalRepository interface {
	// Create creates a new rental
	Create(rental *models.Rental) error

	// FindByID finds a rental by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Rental, error)

	// ListByUser lists a user's rentals in ledger order: ascending by
	// last payment time, never-paid rentals first
	ListByUser(userID uint64) ([]models.Rental, error)

	// Update updates a rental
	Update(rental *models.Rental) error

	// RecordPayment inserts the payment and advances the rental's
	// last_payment_at in one transaction. The rental row is locked for the
	// duration, and last_payment_at only moves forward
	RecordPayment(payment *models.Payment) error

	// ListPayments retrieves a rental's payments, newest first, with pagination
	ListPayments(rentalID uint64, filter PaymentFilter) ([]models.Payment, int64, error)

	// SumPayments returns the total of all payment amounts for a rental,
	// zero when there are none
	SumPayments(rentalID uint64) (int64, error)
}

// PaymentFilter holds filtering options for listing payments
type PaymentFilter struct {
	PaidFrom *time.Time
	PaidTo   *time.Time
	Page     int
	PageSize int
}

// ProfileRepository defines the interface for account profile data access
type ProfileRepository interface {
	// FindByUserID finds the profile owned by a user
	FindByUserID(userID uint64) (*models.Profile, error)

	// Update updates a profile
	Update(profile *models.Profile) error
}
