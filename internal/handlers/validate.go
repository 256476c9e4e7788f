package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for client request fields.
const (
	maxNameLen    = 200
	maxEmailLen   = 320
	maxPhoneLen   = 50
	maxMessageLen = 5_000
	maxTreeRefs   = 100
)

// validateRequest checks request form inputs and returns the first error found.
func validateRequest(name, email, message string, trees []string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long (max 320 characters)."
	}
	if !validEmail(email) {
		return "Email address is not valid."
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}

	if len(trees) > maxTreeRefs {
		return "Too many requested trees."
	}
	return ""
}

// validEmail does a minimal shape check: one @ with something on both
// sides and a dot in the domain. Real validation happens when the nursery
// replies.
func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	if strings.IndexByte(domain, '@') != -1 {
		return false
	}
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// validatePhone checks the optional phone field.
func validatePhone(phone string) string {
	if utf8.RuneCountInString(phone) > maxPhoneLen {
		return "Phone number is too long (max 50 characters)."
	}
	return ""
}
