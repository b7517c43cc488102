package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// EmailKey normalizes an email address for comparison: the text is put in
// NFC form and case-folded. Surrounding space is kept, so a padded address
// never matches a stored one. Two customers whose emails have the same key
// are the same customer for uniqueness purposes.
//
// A Caser is stateful, so a fresh one is built per call.
func EmailKey(email string) string {
	return cases.Fold().String(norm.NFC.String(email))
}

// SameEmail reports whether a and b are equal ignoring case.
func SameEmail(a, b string) bool {
	return EmailKey(a) == EmailKey(b)
}
