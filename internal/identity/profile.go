package identity

import (
	"errors"
	"strings"
)

// ErrInvalidProfile is returned when a provider payload lacks a subject
// or email after normalization.
var ErrInvalidProfile = errors.New("profile missing email or subject")

// NormalizeProfile trims all fields and lower-cases the email, failing
// when the subject or email is empty afterwards.
func NormalizeProfile(p Profile) (Profile, error) {
	p.Subject = strings.TrimSpace(p.Subject)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Name = strings.TrimSpace(p.Name)
	p.Picture = strings.TrimSpace(p.Picture)

	if p.Subject == "" || p.Email == "" {
		return Profile{}, ErrInvalidProfile
	}
	return p, nil
}
