package services

import (
	"regexp"
	"unicode/utf16"

	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordMinLen = 8
	PasswordMaxLen = 20
)

var (
	reLetter = regexp.MustCompile(`[A-Za-z]`)
	reDigit  = regexp.MustCompile(`[0-9]`)
)

// ValidPassword: matching confirmation, 8..20 characters, at least one
// letter and one digit. Characters are UTF-16 code units, so 20 of them never
// exceed bcrypt's 72-byte input limit.
func ValidPassword(pw, confirm string) bool {
	if pw != confirm {
		return false
	}
	n := len(utf16.Encode([]rune(pw)))
	if n < PasswordMinLen || n > PasswordMaxLen {
		return false
	}
	return reLetter.MatchString(pw) && reDigit.MatchString(pw)
}

// PasswordHasher turns the entered password into what gets stored.
type PasswordHasher func(pw string) (string, error)

// Plaintext stores the password as entered.
func Plaintext(pw string) (string, error) { return pw, nil }

// Bcrypt stores a bcrypt hash of the password.
func Bcrypt(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a stored bcrypt hash with a candidate password.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
