package services_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lojf/regform/internal/apperrors"
	svc "github.com/lojf/regform/internal/services"
)

func ip(n int) *int { return &n }

// today pins "now" so that a 2000-05-01 birthday is 25 years old.
var today = time.Date(2025, 10, 19, 14, 30, 0, 0, time.UTC)

func validInput() svc.RegistrationInput {
	return svc.RegistrationInput{
		FirstName:       "Ann",
		LastName:        "Lee",
		Email:           "a@b.co",
		ConfirmEmail:    "a@b.co",
		Password:        "abc12345",
		ConfirmPassword: "abc12345",
		Year:            ip(2000),
		Month:           ip(5),
		Day:             ip(1),
		Gender:          "Female",
		Department:      "CSE",
	}
}

func TestValidate_Accepts(t *testing.T) {
	in := validInput()
	in.FirstName = "  Ann "
	in.LastName = "\tLee"
	in.Email = " a@b.co"
	in.Password = "abc12345 "

	rec, err := svc.Validate(in, today)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if rec.ID != "" {
		t.Errorf("validator must not assign an id, got %q", rec.ID)
	}
	if rec.FirstName != "Ann" || rec.LastName != "Lee" {
		t.Errorf("names not trimmed: %q %q", rec.FirstName, rec.LastName)
	}
	if rec.GenderCode != "F" || rec.Department != "CSE" {
		t.Errorf("gender/department: %q %q", rec.GenderCode, rec.Department)
	}
	if rec.Email != "a@b.co" || rec.Password != "abc12345" {
		t.Errorf("email/password: %q %q", rec.Email, rec.Password)
	}
	if got := rec.DateOfBirth.Format("2006-01-02"); got != "2000-05-01" {
		t.Errorf("dob: %s", got)
	}

	in.Gender = "Male"
	in.Department = "E&C"
	rec, err = svc.Validate(in, today)
	if err != nil {
		t.Fatalf("Validate male/E&C: %v", err)
	}
	if rec.GenderCode != "M" || rec.Department != "E&C" {
		t.Errorf("gender/department: %q %q", rec.GenderCode, rec.Department)
	}
}

func TestValidate_IncompleteForm(t *testing.T) {
	cases := map[string]func(in *svc.RegistrationInput){
		"first name":       func(in *svc.RegistrationInput) { in.FirstName = "" },
		"blank last name":  func(in *svc.RegistrationInput) { in.LastName = "   " },
		"email":            func(in *svc.RegistrationInput) { in.Email = "" },
		"confirm email":    func(in *svc.RegistrationInput) { in.ConfirmEmail = " " },
		"password":         func(in *svc.RegistrationInput) { in.Password = "" },
		"confirm password": func(in *svc.RegistrationInput) { in.ConfirmPassword = "" },
		"year":             func(in *svc.RegistrationInput) { in.Year = nil },
		"month":            func(in *svc.RegistrationInput) { in.Month = nil },
		"day":              func(in *svc.RegistrationInput) { in.Day = nil },
		"gender":           func(in *svc.RegistrationInput) { in.Gender = "" },
		"unknown gender":   func(in *svc.RegistrationInput) { in.Gender = "Other" },
		"department":       func(in *svc.RegistrationInput) { in.Department = "" },
		"unknown dept":     func(in *svc.RegistrationInput) { in.Department = "Law" },
		"feb 30":           func(in *svc.RegistrationInput) { in.Month = ip(2); in.Day = ip(30) },
		"month 13":         func(in *svc.RegistrationInput) { in.Month = ip(13) },
		// completeness wins over every later check
		"empty and bad email": func(in *svc.RegistrationInput) { in.FirstName = ""; in.Email = "nope" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			if _, err := svc.Validate(in, today); !errors.Is(err, apperrors.ErrIncompleteForm) {
				t.Fatalf("want ErrIncompleteForm, got %v", err)
			}
		})
	}
}

func TestValidate_InvalidEmail(t *testing.T) {
	cases := []struct{ email, confirm string }{
		{"a@b.co", "a@b.com"},
		{"A@b.co", "a@b.co"},
		{"ab.co", "ab.co"},
		{"a@b", "a@b"},
		{"a@b.c", "a@b.c"},
		{"a@b.CO", "a@b.CO"},
		{"a b@c.co", "a b@c.co"},
		{"a@b.co1", "a@b.co1"},
		{"a+b@c.co", "a+b@c.co"},
	}
	for _, tc := range cases {
		in := validInput()
		in.Email, in.ConfirmEmail = tc.email, tc.confirm
		// also break the password: email is checked first
		in.Password = "short"
		if _, err := svc.Validate(in, today); !errors.Is(err, apperrors.ErrInvalidEmail) {
			t.Errorf("%q/%q: want ErrInvalidEmail, got %v", tc.email, tc.confirm, err)
		}
	}

	for _, ok := range []string{"first.last@uni-x.edu", "a_b@c.d.org", "x-1@y.io"} {
		in := validInput()
		in.Email, in.ConfirmEmail = ok, ok
		if _, err := svc.Validate(in, today); err != nil {
			t.Errorf("%q: unexpected %v", ok, err)
		}
	}
}

func TestValidate_InvalidPassword(t *testing.T) {
	cases := []struct{ name, pw, confirm string }{
		{"mismatch", "abc12345", "abc12346"},
		{"too short", "abc1234", "abc1234"},
		{"too long", "abc1234567890123456789", "abc1234567890123456789"},
		{"no letter", "12345678", "12345678"},
		{"no digit", "abcdefgh", "abcdefgh"},
		// 20 runes but 38 UTF-16 units (and 74 bytes)
		{"astral too long", "a1" + strings.Repeat("😀", 18), "a1" + strings.Repeat("😀", 18)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.Password, in.ConfirmPassword = tc.pw, tc.confirm
			in.Year = ip(2020) // too young as well: password is checked first
			if _, err := svc.Validate(in, today); !errors.Is(err, apperrors.ErrInvalidPassword) {
				t.Fatalf("want ErrInvalidPassword, got %v", err)
			}
		})
	}

	for _, pw := range []string{"abcdefg1", strings.Repeat("a", 19) + "1", "a1" + strings.Repeat("😀", 9)} {
		in := validInput()
		in.Password, in.ConfirmPassword = pw, pw
		if _, err := svc.Validate(in, today); err != nil {
			t.Errorf("%q (len %d): unexpected %v", pw, len(pw), err)
		}
	}
}

func TestValidate_AgeBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		y, m, d int
		ok      bool
	}{
		{"16 today", 2009, 10, 19, true},
		{"16 tomorrow", 2009, 10, 20, false},
		{"60 today", 1965, 10, 19, true},
		{"61 today", 1964, 10, 19, false},
		{"60, 61 tomorrow", 1964, 10, 20, true},
		{"25", 2000, 5, 1, true},
		{"newborn", 2025, 1, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.Year, in.Month, in.Day = ip(tc.y), ip(tc.m), ip(tc.d)
			_, err := svc.Validate(in, today)
			if tc.ok && err != nil {
				t.Fatalf("want accepted, got %v", err)
			}
			if !tc.ok && !errors.Is(err, apperrors.ErrInvalidAge) {
				t.Fatalf("want ErrInvalidAge, got %v", err)
			}
		})
	}
}

func TestAgeOn(t *testing.T) {
	leap := time.Date(2008, 2, 29, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 15},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 16},
		{time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC), 16},
		{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 17},
	}
	for _, tc := range cases {
		if got := svc.AgeOn(leap, tc.now); got != tc.want {
			t.Errorf("AgeOn(2008-02-29, %s) = %d, want %d", tc.now.Format("2006-01-02"), got, tc.want)
		}
	}
}
