package models

// Semester represents an academic semester
type Semester string

// Semester constants
const (
	SemesterFall   Semester = "FALL"
	SemesterSpring Semester = "SPRING"
)

// ReviewerRole defines the reviewer role type
type ReviewerRole string

const (
	RoleAdmissionOfficer ReviewerRole = "ADMISSION_OFFICER"
	RoleAdmin            ReviewerRole = "ADMIN"
)
