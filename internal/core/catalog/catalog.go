// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog defines the entities of the library catalog and the storage
contract every higher component depends on.

Core Responsibility:

  - Entities: Author, Genre, Book and BookInstance (a physical copy of a Book).
  - References: entities point at each other by id, never by embedded copy.
  - Storage: the [Store] interface is the only way in or out of persistence.
    PostgreSQL ([NewPostgresStore]) and in-memory ([NewMemoryStore])
    implementations are provided.

Integrity rules (duplicate genres, guarded deletes) live above this package;
the store itself enforces only identity.
*/
package catalog

import "time"

// displayDate is the human date format used by derived display strings.
const displayDate = "Jan 2, 2006"

// formatDate renders an optional date for display, empty when absent.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(displayDate)
}

// isoDate renders an optional date as the form input value, empty when absent.
func isoDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// cloneDate returns an independent copy of an optional date.
func cloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
