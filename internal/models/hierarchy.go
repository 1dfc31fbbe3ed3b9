package models

import "time"

// Year is an academic intake such as FA24 ("Fall 2024").
type Year struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Department is a degree program inside a year, e.g. BCS under FA24.
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:16;not null;uniqueIndex" json:"code"`
	Label     string    `gorm:"size:255;not null" json:"label"`
	YearID    uint      `gorm:"not null;index" json:"year_id"`
	Year      Year      `json:"year,omitempty"`
	Sections  []Section `json:"sections,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Section is a lettered class group inside a department. Each department may
// hold each letter at most once.
type Section struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"size:4;not null;uniqueIndex:idx_sections_code_department" json:"code"`
	DepartmentID uint      `gorm:"not null;uniqueIndex:idx_sections_code_department" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SectionCodes enumerates the permitted section letters.
var SectionCodes = []string{"A", "B", "C", "D", "E", "F"}

// IsValidSectionCode reports whether code is one of the permitted letters.
func IsValidSectionCode(code string) bool {
	for _, allowed := range SectionCodes {
		if code == allowed {
			return true
		}
	}
	return false
}
