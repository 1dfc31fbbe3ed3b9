package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Account roles. The Role discriminant decides which optional field group
// (roll components for students, class codes for teachers) is meaningful.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Account is the unified identity record for students, teachers and admins.
type Account struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string         `gorm:"size:255;not null" json:"-"`
	Role            string         `gorm:"size:32;not null;default:student" json:"role"`
	RollYear        string         `gorm:"size:16" json:"roll_year,omitempty"`
	RollDept        string         `gorm:"size:16" json:"roll_dept,omitempty"`
	RollSerial      string         `gorm:"size:16" json:"roll_serial,omitempty"`
	Section         string         `gorm:"size:4" json:"section,omitempty"`
	RollNumber      *string        `gorm:"size:64;uniqueIndex" json:"roll_number,omitempty"`
	Classes         datatypes.JSON `json:"classes,omitempty"`
	ProfileImageURL string         `gorm:"size:512" json:"profile_image"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// BeforeSave derives the roll number for student accounts. The roll number is
// the lowercase concatenation of year, department and serial codes and doubles
// as a login handle, so it is kept in sync on every write.
func (a *Account) BeforeSave(tx *gorm.DB) error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))

	if a.Role == RoleStudent && a.RollYear != "" && a.RollDept != "" && a.RollSerial != "" {
		roll := DeriveRollNumber(a.RollYear, a.RollDept, a.RollSerial)
		a.RollNumber = &roll
	}

	return nil
}

// DeriveRollNumber builds the unique student login handle from its components.
func DeriveRollNumber(year, dept, serial string) string {
	return strings.ToLower(year + dept + serial)
}

// IsStudent reports whether the account carries student semantics.
func (a Account) IsStudent() bool { return a.Role == RoleStudent }

// IsTeacher reports whether the account carries teacher semantics.
func (a Account) IsTeacher() bool { return a.Role == RoleTeacher }
