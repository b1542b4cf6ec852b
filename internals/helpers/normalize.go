package helper

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText collapses whitespace and composes to NFC so that visually
// equal Cyrillic titles compare equal in the database.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}

// NormalizePtr is NormalizeText for optional fields; blank becomes nil.
func NormalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := NormalizeText(*s)
	if v == "" {
		return nil
	}
	return &v
}

// NormalizeEmail lowercases and trims.
func NormalizeEmail(s *string) *string {
	v := NormalizePtr(s)
	if v == nil {
		return nil
	}
	lower := strings.ToLower(*v)
	return &lower
}
