package model

// User is the minimal mirror of the identity provider's user record.
// It is refreshed on each authenticated request and cleared on sign-out.
type User struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
}

// DisplayName returns the best human-readable name for the user.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	first, last := deref(u.FirstName), deref(u.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	case last != "":
		return last
	default:
		return u.Email
	}
}

// Initials returns up to two uppercase initials for avatar placeholders.
func (u *User) Initials() string {
	name := []rune(u.DisplayName())
	if len(name) == 0 {
		return "?"
	}
	out := []rune{toUpper(name[0])}
	for i := 1; i < len(name); i++ {
		if name[i-1] == ' ' && name[i] != ' ' {
			out = append(out, toUpper(name[i]))
			break
		}
	}
	return string(out)
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
