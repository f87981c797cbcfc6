package services

import (
	"time"

	"github.com/lojf/regform/internal/apperrors"
	"github.com/lojf/regform/internal/models"
)

const (
	MinAge = 16
	MaxAge = 60
)

// Validate checks in against the form rules and returns the normalized
// record without an ID. Checks run in order and the first failure wins:
// completeness, email, password, age. now supplies "today".
func Validate(in RegistrationInput, now time.Time) (models.StudentRecord, error) {
	in = in.trimmed()

	if !in.complete() {
		return models.StudentRecord{}, apperrors.ErrIncompleteForm
	}
	// A day the picker would never offer (Feb 30) counts as unselected.
	dob, ok := calendarDate(*in.Year, *in.Month, *in.Day)
	if !ok {
		return models.StudentRecord{}, apperrors.ErrIncompleteForm
	}

	if !ValidEmail(in.Email, in.ConfirmEmail) {
		return models.StudentRecord{}, apperrors.ErrInvalidEmail
	}
	if !ValidPassword(in.Password, in.ConfirmPassword) {
		return models.StudentRecord{}, apperrors.ErrInvalidPassword
	}
	if age := AgeOn(dob, now); age < MinAge || age > MaxAge {
		return models.StudentRecord{}, apperrors.ErrInvalidAge
	}

	return models.StudentRecord{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		GenderCode:  in.Gender[:1],
		Department:  in.Department,
		DateOfBirth: dob,
		Email:       in.Email,
		Password:    in.Password,
	}, nil
}

// AgeOn returns the whole years between dob and the calendar date of now,
// counting a year only once the birthday has been reached.
func AgeOn(dob, now time.Time) int {
	y, m, d := now.Date()
	age := y - dob.Year()
	if m < dob.Month() || (m == dob.Month() && d < dob.Day()) {
		age--
	}
	return age
}

// calendarDate builds a UTC midnight date, rejecting values time.Date would
// silently normalize.
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > DaysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}
