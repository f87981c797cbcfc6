package services

import "regexp"

// Domain suffix must be lowercase; "a@b.CO" is rejected.
var reEmail = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-z]{2,}$`)

// ValidEmail reports whether email matches its confirmation byte for byte
// and has an acceptable shape. Both values are expected trimmed.
func ValidEmail(email, confirm string) bool {
	return email == confirm && reEmail.MatchString(email)
}
