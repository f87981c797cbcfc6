package models

import "time"

// Fixed option sets offered by the form.
var (
	Genders     = []string{"Male", "Female"}
	Departments = []string{"Civil", "CSE", "Electrical", "E&C", "Mechanical"}
)

// StudentRecord is a validated, normalized registration. It is built once
// after validation and never modified afterwards.
type StudentRecord struct {
	ID          string
	FirstName   string
	LastName    string
	GenderCode  string // "M" or "F"
	Department  string
	DateOfBirth time.Time
	Email       string
	Password    string
}

// Summary is the one-line echo appended to the output log.
func (r StudentRecord) Summary() string {
	return "ID: " + r.ID + " | " + r.FirstName + " " + r.LastName + " | " + r.GenderCode +
		" | " + r.Department + " | " + r.DateOfBirth.Format("2006-01-02") + " | " + r.Email
}

// Student is the persisted row in the students table.
type Student struct {
	ID        string `gorm:"primaryKey;type:text"` // <year>-<seq>
	CreatedAt time.Time

	FirstName  string    `gorm:"not null"`
	LastName   string    `gorm:"not null"`
	Gender     string    `gorm:"size:1;not null"`
	Department string    `gorm:"not null"`
	DOB        time.Time `gorm:"column:dob;not null"`
	Email      string    `gorm:"not null"`
	Password   string    `gorm:"not null"` // plaintext or bcrypt, see security.hash_passwords
}

// ToRow converts a record into its table row.
func (r StudentRecord) ToRow() Student {
	return Student{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Gender:     r.GenderCode,
		Department: r.Department,
		DOB:        r.DateOfBirth,
		Email:      r.Email,
		Password:   r.Password,
	}
}

// Record converts a stored row back into a StudentRecord.
func (s Student) Record() StudentRecord {
	return StudentRecord{
		ID:          s.ID,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		GenderCode:  s.Gender,
		Department:  s.Department,
		DateOfBirth: s.DOB,
		Email:       s.Email,
		Password:    s.Password,
	}
}
