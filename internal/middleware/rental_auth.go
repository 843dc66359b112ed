package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ktaneda/rental-ledger-api/internal/constants"
	"github.com/ktaneda/rental-ledger-api/internal/database"
	apierrors "github.com/ktaneda/rental-ledger-api/internal/errors"
	"github.com/ktaneda/rental-ledger-api/internal/models"
)

// RequireRentalAccess checks that the rental in the URL belongs to the
// authenticated user. A rental owned by someone else answers exactly like a
// rental that does not exist, so rental IDs leak nothing across accounts.
func RequireRentalAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		rentalIDStr := c.Param("id")
		rentalID, err := strconv.ParseUint(rentalIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid rental ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var rental models.Rental
		if err := database.GetDB().First(&rental, rentalID).Error; err != nil {
			apierrors.NotFound(c, "Rental not found")
			c.Abort()
			return
		}

		// Return 404 instead of 403 to avoid leaking rental existence
		if rental.UserID != userID {
			apierrors.NotFound(c, "Rental not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyRental, rental)
		c.Next()
	}
}

// GetRental retrieves the rental loaded by RequireRentalAccess from context
func GetRental(c *gin.Context) (models.Rental, bool) {
	value, exists := c.Get(constants.ContextKeyRental)
	if !exists {
		return models.Rental{}, false
	}

	rental, ok := value.(models.Rental)
	return rental, ok
}
