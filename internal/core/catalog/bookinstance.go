// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "time"

// # Domain Enums

// Status is the circulation state of a physical copy.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusMaintenance Status = "Maintenance"
	StatusLoaned      Status = "Loaned"
	StatusReserved    Status = "Reserved"
)

// Statuses lists every [Status] in display order.
var Statuses = []Status{StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved}

// StatusNames returns the [Statuses] as plain strings.
func StatusNames() []string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return names
}

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusMaintenance, StatusLoaned, StatusReserved:
		return true
	}
	return false
}

// # Entity

// BookInstance is one physical copy of a [Book]. Nothing references a copy,
// so it can always be deleted.
type BookInstance struct {
	ID      string     `json:"id"`
	BookID  string     `json:"book_id"`
	Imprint string     `json:"imprint"`
	Status  Status     `json:"status"`
	DueBack *time.Time `json:"due_back,omitempty"`

	// Book is resolved by services for list and detail views; stores leave it nil.
	Book *Book `json:"book,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Form field names of the copy forms (wire contract).
const (
	FieldBook    = "book"
	FieldImprint = "imprint"
	FieldStatus  = "status"
	FieldDueBack = "due_back"
)

// URL is the path of the copy's detail view.
func (bi *BookInstance) URL() string { return "/bookinstances/" + bi.ID }

// DueBackFormatted renders the due date for display. The date only matters
// while the copy is out, so it is empty for available copies.
func (bi *BookInstance) DueBackFormatted() string {
	if bi.Status == StatusAvailable {
		return ""
	}
	return formatDate(bi.DueBack)
}

// DueBackInput returns the due date as an ISO form value.
func (bi *BookInstance) DueBackInput() string { return isoDate(bi.DueBack) }

// Clone returns a deep copy of the copy record, without the resolved book.
func (bi *BookInstance) Clone() *BookInstance {
	c := *bi
	c.DueBack = cloneDate(bi.DueBack)
	c.Book = nil
	return &c
}

// BookInstanceFilter narrows a copy query. The zero value matches every copy.
type BookInstanceFilter struct {
	BookID string
	Status Status
}
