package model

import "time"

// Admin represents an account owner as stored in the `admins` table.
// Admins register themselves, own their suppliers, kanban cards and
// orders, and authenticate with the "Admin" role.
//
// Token, RefreshToken and RefreshTokenExpiry are session bookkeeping
// columns: they are overwritten on every successful authenticate or
// refresh. The signed JWT presented by the client, not the stored
// Token copy, is what authorizes requests.
type Admin struct {
	ID                 uint64    // admins.id
	Email              string    // admins.email (unique)
	FirstName          string    // admins.first_name
	LastName           string    // admins.last_name
	PhoneNumber        string    // admins.phone_number
	PasswordHash       string    // admins.password_hash
	Role               string    // always "Admin"
	Token              string    // last issued access token (bookkeeping)
	RefreshToken       string    // current refresh token
	RefreshTokenExpiry time.Time // admins.refresh_token_expiry
	CreatedAt          time.Time // admins.created_at
	UpdatedAt          time.Time // admins.updated_at
}
