package records

import (
	"fmt"
	"strings"
	"time"
)

// Role classifies a person record.
type Role string

const (
	RoleStudent  Role = "student"
	RoleFaculty  Role = "faculty"
	RoleGuardian Role = "guardian"
	RoleAdmin    Role = "admin"
)

// Collection names a document table in the store.
type Collection string

const (
	// CollectionStudents and CollectionFaculty are the role-specific
	// primary collections.
	CollectionStudents Collection = "students"
	CollectionFaculty  Collection = "faculty"
	// CollectionPeople is the generic index collection used for lookup
	// and auth linkage.
	CollectionPeople Collection = "people"
)

var personCollections = map[Collection]struct{}{
	CollectionStudents: {},
	CollectionFaculty:  {},
	CollectionPeople:   {},
}

// PrimaryFor returns the primary collection for a role.
func PrimaryFor(role Role) (Collection, error) {
	switch role {
	case RoleStudent:
		return CollectionStudents, nil
	case RoleFaculty, RoleAdmin:
		return CollectionFaculty, nil
	default:
		return "", fmt.Errorf("role %q has no primary collection", role)
	}
}

// PersonRecord is a student, teacher, or guardian document.
type PersonRecord struct {
	ID           string
	DisplayName  string
	FirstName    string
	LastName     string
	Role         Role
	ContactEmail string
	DateOfBirth  string
	Guardians    []string
	Cohort       string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the normalizable "first last" form.
func (p PersonRecord) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// EnrollmentRecord is a denormalized enrollment snapshot embedded in a
// course document. The PersonID must resolve in both collections at write
// time; the snapshot fields exist for display only.
type EnrollmentRecord struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Cohort   string `json:"cohort,omitempty"`
}

// CourseDocument is the per-batch aggregate referencing resolved identities.
type CourseDocument struct {
	ID         string
	Title      string
	Cohort     string
	Enrollment []EnrollmentRecord
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
