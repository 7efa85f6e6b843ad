package identity

import "time"

// AppUser is the persisted profile row, reconciled on every login.
// (auth_provider, provider_user_id) is unique; email is globally unique.
type AppUser struct {
	ID             int64      `json:"id"`
	AuthProvider   string     `json:"auth_provider"`
	ProviderUserID string     `json:"provider_user_id"`
	Email          string     `json:"email"`
	FullName       string     `json:"full_name,omitempty"`
	PictureURL     string     `json:"picture_url,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
}

// Profile is the normalized identity-provider payload used for upsert.
type Profile struct {
	Subject string
	Email   string
	Name    string
	Picture string
}
