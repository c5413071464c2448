// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "time"

// Author is the creator of one or more [Book] records. Books hold the author
// id; an Author never lists its books itself.
type Author struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	FamilyName  string     `json:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	DateOfDeath *time.Time `json:"date_of_death,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Form field names of the author forms (wire contract).
const (
	FieldFirstName   = "first_name"
	FieldFamilyName  = "family_name"
	FieldDateOfBirth = "date_of_birth"
	FieldDateOfDeath = "date_of_death"
)

// Name returns "family_name, first_name", or an empty string when either part is missing.
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// Lifespan renders the author's dates for display.
//
//	both absent  → ""
//	birth only   → "Jan 3, 1892 -"
//	death only   → "- Sep 2, 1973"
//	both present → "Jan 3, 1892 - Sep 2, 1973"
func (a *Author) Lifespan() string {
	switch {
	case a.DateOfBirth == nil && a.DateOfDeath == nil:
		return ""
	case a.DateOfDeath == nil:
		return formatDate(a.DateOfBirth) + " -"
	case a.DateOfBirth == nil:
		return "- " + formatDate(a.DateOfDeath)
	default:
		return formatDate(a.DateOfBirth) + " - " + formatDate(a.DateOfDeath)
	}
}

// DateOfBirthInput returns the birth date as an ISO form value.
func (a *Author) DateOfBirthInput() string { return isoDate(a.DateOfBirth) }

// DateOfDeathInput returns the death date as an ISO form value.
func (a *Author) DateOfDeathInput() string { return isoDate(a.DateOfDeath) }

// URL is the path of the author's detail view.
func (a *Author) URL() string { return "/authors/" + a.ID }

// Clone returns a deep copy of the author.
func (a *Author) Clone() *Author {
	c := *a
	c.DateOfBirth = cloneDate(a.DateOfBirth)
	c.DateOfDeath = cloneDate(a.DateOfDeath)
	return &c
}

// AuthorFilter narrows an author query. The zero value matches every author.
type AuthorFilter struct {
	IDs []string
}
