package constants

// SessionCookieName is the name of the session cookie issued at login.
const SessionCookieName = "rental_session"

// ContextKeyUserID is the session and gin context key holding the
// authenticated user's ID.
const ContextKeyUserID = "user_id"

// ContextKeyRental is the gin context key holding the rental loaded by the
// ownership middleware.
const ContextKeyRental = "rental"

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8

// Pagination limits for payment listings.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
