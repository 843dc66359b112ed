package dto

import (
	"github.com/ktaneda/rental-ledger-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ProfileDTO represents an account profile in API responses
type ProfileDTO struct {
	UserID     uint64 `json:"user_id"`
	Email      string `json:"email"`
	AvatarHash string `json:"avatar_hash"`
	AvatarURL  string `json:"avatar_url"`
	TaxRate    *int   `json:"tax_rate"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:   user.ID,
		Name: user.Name,
	}
}

// ToProfileDTO converts a Profile model to ProfileDTO
func ToProfileDTO(profile models.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:     profile.UserID,
		Email:      profile.Email,
		AvatarHash: profile.AvatarHash,
		AvatarURL:  "https://gravatar.com/avatar/" + profile.AvatarHash,
		TaxRate:    profile.TaxRate,
	}
}
