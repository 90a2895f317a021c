package domain

import (
	"time"
)

type User struct {
	ID                 string     `json:"id"`
	GoogleID           string     `json:"-"`
	Email              string     `json:"email"`
	Name               string     `json:"name"`
	Picture            string     `json:"picture,omitempty"`
	SocialHandle       string     `json:"socialHandle,omitempty"`
	Gender             string     `json:"gender,omitempty"`
	Age                *int       `json:"age,omitempty"`
	Location           string     `json:"location,omitempty"`
	Interests          []string   `json:"interests,omitempty"`
	OnboardingComplete bool       `json:"onboardingComplete"`
	ProfileCreated     bool       `json:"profileCreated"`
	LastLogin          *time.Time `json:"lastLogin,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// OnboardingProfile holds the fields collected on the onboarding screen.
type OnboardingProfile struct {
	Name         string
	SocialHandle string
	Gender       string
	Age          *int
	Location     string
}
