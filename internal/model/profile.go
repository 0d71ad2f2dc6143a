package model

import "time"

// Profile is the CMS-owned user profile record, keyed by the identity provider's user id.
type Profile struct {
	ID        int       `json:"id"`
	ClerkID   string    `json:"clerkId"`
	Email     string    `json:"email"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Bio       string    `json:"bio"`
	Locale    string    `json:"locale"`
	Timezone  string    `json:"timezone"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the user-editable profile fields. Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	Locale    *string `json:"locale,omitempty" validate:"omitempty,oneof=en es da"`
	Timezone  *string `json:"timezone,omitempty" validate:"omitempty,max=64"`
}

// IsEmpty reports whether the update carries no fields.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Bio == nil && u.Locale == nil && u.Timezone == nil
}

// NewProfile is the payload used to create a profile in the CMS.
type NewProfile struct {
	ClerkID   string  `json:"clerkId" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Bio       string  `json:"bio"`
	Locale    string  `json:"locale" validate:"omitempty,oneof=en es da"`
	Timezone  string  `json:"timezone"`
	IsActive  bool    `json:"isActive"`
}
