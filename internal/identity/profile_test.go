package identity

import (
	"errors"
	"testing"
)

func TestNormalizeProfile(t *testing.T) {
	p, err := NormalizeProfile(Profile{
		Subject: "  115678  ",
		Email:   "  User@Example.COM ",
		Name:    " Ada Lovelace ",
		Picture: " https://lh3.example/photo.jpg ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Subject != "115678" {
		t.Errorf("subject not trimmed: %q", p.Subject)
	}
	if p.Email != "user@example.com" {
		t.Errorf("email not lower-cased and trimmed: %q", p.Email)
	}
	if p.Name != "Ada Lovelace" || p.Picture != "https://lh3.example/photo.jpg" {
		t.Errorf("name/picture not trimmed: %q %q", p.Name, p.Picture)
	}
}

func TestNormalizeProfileRejectsMissingFields(t *testing.T) {
	cases := map[string]Profile{
		"missing subject":    {Email: "a@b.com"},
		"missing email":      {Subject: "123"},
		"whitespace subject": {Subject: "   ", Email: "a@b.com"},
		"whitespace email":   {Subject: "123", Email: "   "},
		"both empty":         {},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NormalizeProfile(in); !errors.Is(err, ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}
