package course

import (
	"fmt"
	"strings"
)

// Course is a course whose completion data can be reported on.
type Course struct {
	ID                int64
	FullName          string
	ShortName         string
	CompletionEnabled bool
}

// User is a user enrolled in a course.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	IDNumber  string
}

// FullName returns the display name used in reports.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IdentityField returns the value of an extra identity column, or "" for
// unknown fields.
func (u User) IdentityField(field string) string {
	switch field {
	case "email":
		return u.Email
	case "idnumber":
		return u.IDNumber
	default:
		return ""
	}
}

// Section is a course section grouping activities.
type Section struct {
	ID     int64
	Number int
	Name   string
}

// DisplayName returns the section name, falling back to the default names
// of unnamed sections.
func (s Section) DisplayName() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	if s.Number == 0 {
		return "General"
	}
	return fmt.Sprintf("Topic %d", s.Number)
}
