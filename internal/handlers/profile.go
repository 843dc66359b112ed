package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ktaneda/rental-ledger-api/internal/dto"
	apierrors "github.com/ktaneda/rental-ledger-api/internal/errors"
	"github.com/ktaneda/rental-ledger-api/internal/middleware"
	"github.com/ktaneda/rental-ledger-api/internal/services"
)

// ProfileHandler coordinates account profile HTTP handlers.
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// GetProfile returns the current user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// UpdateProfile applies a partial update to the current user's profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Email        *string `json:"email" binding:"omitempty,email"`
		TaxRate      *int    `json:"tax_rate"`
		ClearTaxRate bool    `json:"clear_tax_rate"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(userID, services.UpdateProfileInput{
		Email:        req.Email,
		TaxRate:      req.TaxRate,
		ClearTaxRate: req.ClearTaxRate,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidTaxRate):
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"field": "tax_rate"})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
