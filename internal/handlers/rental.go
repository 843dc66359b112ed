package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ktaneda/rental-ledger-api/internal/dto"
	apierrors "github.com/ktaneda/rental-ledger-api/internal/errors"
	"github.com/ktaneda/rental-ledger-api/internal/middleware"
	"github.com/ktaneda/rental-ledger-api/internal/repository"
	"github.com/ktaneda/rental-ledger-api/internal/services"
	"github.com/ktaneda/rental-ledger-api/internal/utils"
)

// RentalHandler coordinates rental ledger HTTP handlers.
type RentalHandler struct {
	rentalService *services.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalService *services.RentalService) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
	}
}

// ListRentals returns the current user's rentals in ledger order:
// never-paid rentals first, then ascending by last payment time.
func (h *RentalHandler) ListRentals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	rentals, err := h.rentalService.ListRentals(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch rentals")
		return
	}

	c.JSON(http.StatusOK, dto.RentalListResponse{
		Rentals: dto.ToRentalDTOs(rentals),
	})
}

// CreateRental creates a rental owned by the current user. Rent can be sent
// as integer cents or as a decimal dollar string; the string form is
// truncated to whole cents at this boundary.
func (h *RentalHandler) CreateRental(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateRentalRequest struct {
		Address                string `json:"address" binding:"required"`
		Tenant                 string `json:"tenant" binding:"required"`
		RentCents              int64  `json:"rent_cents"`
		Rent                   string `json:"rent"`
		Commercial             *bool  `json:"commercial" binding:"required"`
		PropertyTaxAnnualCents *int64 `json:"property_tax_annual_cents"`
		InsuranceAnnualCents   *int64 `json:"insurance_annual_cents"`
	}

	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rentCents := req.RentCents
	if req.Rent != "" {
		parsed, err := utils.ParseDollarsToCents(req.Rent)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid rent amount", gin.H{"field": "rent"})
			return
		}
		rentCents = parsed
	}

	rental, err := h.rentalService.CreateRental(services.CreateRentalInput{
		UserID:                 userID,
		Address:                req.Address,
		Tenant:                 req.Tenant,
		RentCents:              rentCents,
		Commercial:             *req.Commercial,
		PropertyTaxAnnualCents: req.PropertyTaxAnnualCents,
		InsuranceAnnualCents:   req.InsuranceAnnualCents,
	})
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRentalDTO(*rental))
}

// GetRental returns a rental with its payment history and total paid.
// Ownership was already checked by RequireRentalAccess.
func (h *RentalHandler) GetRental(c *gin.Context) {
	rental, ok := middleware.GetRental(c)
	if !ok {
		apierrors.InternalError(c, "Rental not loaded")
		return
	}

	params := utils.GetPaginationParams(c)

	balance, err := h.rentalService.GetRentalWithBalance(rental.ID, repository.PaymentFilter{
		Page:     params.Page,
		PageSize: params.Limit,
	})
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RentalDetailResponse{
		Rental:         dto.ToRentalDTO(*balance.Rental),
		Payments:       dto.ToPaymentDTOs(balance.Payments),
		TotalPaidCents: balance.TotalPaidCents,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: balance.PaymentCount,
		},
	})
}

// UpdateRental applies partial edits to a rental's fields.
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	rental, ok := middleware.GetRental(c)
	if !ok {
		apierrors.InternalError(c, "Rental not loaded")
		return
	}

	type UpdateRentalRequest struct {
		Address                *string `json:"address"`
		Tenant                 *string `json:"tenant"`
		RentCents              *int64  `json:"rent_cents"`
		Commercial             *bool   `json:"commercial"`
		PropertyTaxAnnualCents *int64  `json:"property_tax_annual_cents"`
		ClearPropertyTax       bool    `json:"clear_property_tax"`
		InsuranceAnnualCents   *int64  `json:"insurance_annual_cents"`
		ClearInsurance         bool    `json:"clear_insurance"`
	}

	var req UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.rentalService.UpdateRental(rental.ID, services.UpdateRentalInput{
		Address:                req.Address,
		Tenant:                 req.Tenant,
		RentCents:              req.RentCents,
		Commercial:             req.Commercial,
		PropertyTaxAnnualCents: req.PropertyTaxAnnualCents,
		ClearPropertyTax:       req.ClearPropertyTax,
		InsuranceAnnualCents:   req.InsuranceAnnualCents,
		ClearInsurance:         req.ClearInsurance,
	})
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRentalDTO(*updated))
}

// RecordPayment records a payment against a rental. The amount can be sent
// as integer cents or a decimal dollar string; paid_at defaults to now.
func (h *RentalHandler) RecordPayment(c *gin.Context) {
	rental, ok := middleware.GetRental(c)
	if !ok {
		apierrors.InternalError(c, "Rental not loaded")
		return
	}

	type RecordPaymentRequest struct {
		AmountCents int64      `json:"amount_cents"`
		Amount      string     `json:"amount"`
		PaidAt      *time.Time `json:"paid_at"`
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	amountCents := req.AmountCents
	if req.Amount != "" {
		parsed, err := utils.ParseDollarsToCents(req.Amount)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid payment amount", gin.H{"field": "amount"})
			return
		}
		amountCents = parsed
	}

	payment, err := h.rentalService.RecordPayment(services.RecordPaymentInput{
		RentalID:    rental.ID,
		AmountCents: amountCents,
		PaidAt:      req.PaidAt,
	})
	if err != nil {
		respondRentalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentDTO(*payment))
}

func respondRentalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAddressRequired):
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"field": "address"})
	case errors.Is(err, services.ErrTenantRequired):
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"field": "tenant"})
	case errors.Is(err, services.ErrRentNotPositive):
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"field": "rent_cents"})
	case errors.Is(err, services.ErrAmountNotPositive):
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"field": "amount_cents"})
	case errors.Is(err, services.ErrNegativeAnnualCost):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrRentalNotFound):
		apierrors.NotFound(c, "Rental not found")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
