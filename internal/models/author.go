package models

import "time"

// Author as exposed by the author directory. GUID is the reference catalog
// items carry; ID is the directory's own numeric identifier.
type Author struct {
	ID        string     `json:"id,omitempty"`
	GUID      string     `json:"guid"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	FullName  string     `json:"full_name,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// DisplayName assembles a human-readable name, preferring the directory's
// precomputed full name.
func (a *Author) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}

	name := a.FirstName
	if a.LastName != "" {
		if name != "" {
			name += " "
		}
		name += a.LastName
	}

	return name
}

type CreateAuthorRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	BirthDate string `json:"birth_date" validate:"required"`
}
