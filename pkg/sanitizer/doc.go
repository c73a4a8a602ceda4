// Package sanitizer cleans free-text booking input before storage.
//
// Only unprintable control bytes are removed. Spacing, line breaks and case
// are stored as the customer typed them. Slot fields and phone numbers are
// compared literally elsewhere and must not pass through this package.
package sanitizer
