package cms

import (
	"time"

	"saaskit/internal/model"
)

// envelope wraps write payloads the way Strapi expects them.
type envelope struct {
	Data any `json:"data"`
}

// entry is a Strapi v4 collection entry: {id, attributes}.
type entry struct {
	ID         int        `json:"id"`
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	ClerkID   string    `json:"clerkId"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
	Bio       *string   `json:"bio"`
	Locale    *string   `json:"locale"`
	Timezone  *string   `json:"timezone"`
	IsActive  *bool     `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *entry) profile() *model.Profile {
	a := e.Attributes
	p := &model.Profile{
		ID:        e.ID,
		ClerkID:   a.ClerkID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Locale:    "en",
		Timezone:  "UTC",
		IsActive:  true,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Bio != nil {
		p.Bio = *a.Bio
	}
	if a.Locale != nil && *a.Locale != "" {
		p.Locale = *a.Locale
	}
	if a.Timezone != nil && *a.Timezone != "" {
		p.Timezone = *a.Timezone
	}
	if a.IsActive != nil {
		p.IsActive = *a.IsActive
	}
	return p
}
