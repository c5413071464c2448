// Copyright (c) 2026 Local Library. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package fold computes comparison keys under which names that a human reads
// as "the same" compare equal.
//
// # Usage
//
// Genre names are deduplicated on their folded key: "Fantasy", "FANTASY" and
// "Fántasy" all fold to "fantasy".
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key returns the folded comparison key of s.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Applies Unicode case folding (ß → ss, Σ/ς → σ).
// 4. Recomposes to NFC.
// 5. Collapses inner whitespace runs and trims the ends.
func Key(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), cases.Fold(), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		result = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(result), " ")
}
