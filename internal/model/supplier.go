package model

import "time"

// Supplier represents an invited fulfiller as stored in the `suppliers`
// table. Suppliers are created by an admin, never via registration, and
// authenticate with the "Supplier" role against their own email pool
// (a supplier email may coincide with an admin email without conflict).
//
// UserID is the owning admin and is immutable after creation.
type Supplier struct {
	ID                 uint64    // suppliers.id
	Email              string    // suppliers.email (unique within suppliers)
	FirstName          string    // suppliers.first_name
	LastName           string    // suppliers.last_name
	CompanyName        string    // suppliers.company_name
	PhoneNumber        string    // suppliers.phone_number
	PasswordHash       string    // suppliers.password_hash
	Role               string    // always "Supplier"
	Token              string    // last issued access token (bookkeeping)
	RefreshToken       string    // current refresh token
	RefreshTokenExpiry time.Time // suppliers.refresh_token_expiry
	UserID             uint64    // owning admin (suppliers.user_id)
	CreatedAt          time.Time // suppliers.created_at
	UpdatedAt          time.Time // suppliers.updated_at
}
