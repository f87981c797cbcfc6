package apperrors

import "errors"

// Form input errors. These are recovered locally and shown to the user.
var (
	ErrIncompleteForm  = errors.New("incomplete form")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidAge      = errors.New("invalid age")
)

// Record store errors.
var (
	ErrStoreUnavailable    = errors.New("store unavailable")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrSaveFailed          = errors.New("save failed")
	ErrStudentNotFound     = errors.New("student not found")
)

var userText = map[error]string{
	ErrIncompleteForm:  "All fields are required!",
	ErrInvalidEmail:    "Invalid or mismatched Email!",
	ErrInvalidPassword: "Invalid or mismatched password!",
	ErrInvalidAge:      "Age must be between 16 and 60!",
	ErrSaveFailed:      "Database save failed!",
}

var kindCode = map[error]string{
	ErrIncompleteForm:      "IncompleteForm",
	ErrInvalidEmail:        "InvalidEmail",
	ErrInvalidPassword:     "InvalidPassword",
	ErrInvalidAge:          "InvalidAge",
	ErrStoreUnavailable:    "StoreUnavailable",
	ErrConstraintViolation: "ConstraintViolation",
	ErrSaveFailed:          "SaveFailed",
}

// UserMessage returns the text shown in the form's error box for err.
func UserMessage(err error) string {
	for sentinel, text := range userText {
		if errors.Is(err, sentinel) {
			return text
		}
	}
	return "Something went wrong."
}

// Kind returns the failure kind name used by the JSON API, or "" for unknown errors.
func Kind(err error) string {
	// ErrSaveFailed wraps a store error; report the outer kind first.
	if errors.Is(err, ErrSaveFailed) {
		return kindCode[ErrSaveFailed]
	}
	for sentinel, code := range kindCode {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ""
}

// IsInputError reports whether err is one of the form validation failures.
func IsInputError(err error) bool {
	return Is(err, ErrIncompleteForm, ErrInvalidEmail, ErrInvalidPassword, ErrInvalidAge)
}

// Is returns whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
