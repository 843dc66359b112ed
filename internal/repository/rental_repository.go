package repository

import (
	"github.com/ktaneda/rental-ledger-api/internal/models"
	"gorm.io/gorm"
)

// GormRentalRepository is a GORM implementation of RentalRepository
type GormRentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository creates a new RentalRepository
func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &GormRentalRepository{db: db}
}

// Create creates a new rental
func (r *GormRentalRepository) Create(rental *models.Rental) error {
	return r.db.Create(rental).Error
}

// FindByID finds a rental by ID with optional preloading
func (r *GormRentalRepository) FindByID(id uint64, preload ...string) (*models.Rental, error) {
	var rental models.Rental
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&rental, id).Error; err != nil {
		return nil, err
	}

	return &rental, nil
}

// ListByUser lists a user's rentals ascending by last payment time.
// Rentals with no payments yet sort first: they are the most urgent.
func (r *GormRentalRepository) ListByUser(userID uint64) ([]models.Rental, error) {
	var rentals []models.Rental
	err := r.db.
		Where("user_id = ?", userID).
		Order("CASE WHEN last_payment_at IS NULL THEN 0 ELSE 1 END, last_payment_at ASC").
		Find(&rentals).Error
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

// Update updates a rental
func (r *GormRentalRepository) Update(rental *models.Rental) error {
	return r.db.Save(rental).Error
}

// RecordPayment inserts the payment and advances the rental's
// last_payment_at in a single transaction. The update is guarded in SQL so
// last_payment_at only ever moves forward: a back-dated payment is recorded
// but never regresses a later timestamp, even under concurrent writers.
func (r *GormRentalRepository) RecordPayment(payment *models.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var rental models.Rental
		if err := tx.First(&rental, payment.RentalID).Error; err != nil {
			return err
		}

		if err := tx.Create(payment).Error; err != nil {
			return err
		}

		return tx.Model(&models.Rental{}).
			Where("id = ? AND (last_payment_at IS NULL OR last_payment_at < ?)", rental.ID, payment.PaidAt).
			Update("last_payment_at", payment.PaidAt).Error
	})
}

// ListPayments retrieves a rental's payments, newest first, with pagination
func (r *GormRentalRepository) ListPayments(rentalID uint64, filter PaymentFilter) ([]models.Payment, int64, error) {
	var payments []models.Payment

	query := r.db.Model(&models.Payment{}).Where("rental_id = ?", rentalID)

	if filter.PaidFrom != nil {
		query = query.Where("paid_at >= ?", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		query = query.Where("paid_at < ?", *filter.PaidTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("paid_at DESC, id DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// SumPayments returns the total paid against a rental. A rental with no
// payments sums to zero, not an error.
func (r *GormRentalRepository) SumPayments(rentalID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&models.Payment{}).
		Where("rental_id = ?", rentalID).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&total).Error
	return total, err
}
