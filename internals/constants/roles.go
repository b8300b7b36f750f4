package constants

import "fmt"

// Role yang dikenali sistem (klaim "role" di JWT)
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess      = "Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyInstructorsCanAccess = "Hanya instructor yang boleh mengakses fitur %s."
	ErrOnlyStudentsCanAccess    = "Hanya student yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess       = "Hanya admin atau instructor yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// Grouped role slices untuk middleware OnlyRoles
var (
	AdminOnly      = []string{RoleAdmin}
	InstructorOnly = []string{RoleInstructor}
	StudentOnly    = []string{RoleStudent}
	AdminAndAbove  = []string{RoleAdmin, RoleInstructor}
	AllRoles       = []string{RoleAdmin, RoleInstructor, RoleStudent}
)
