package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin              = "Admin"
	RoleProjectManager     = "ProjectManager"
	RoleEngineer           = "Engineer"
	RoleProcurementOfficer = "ProcurementOfficer"
	RoleStoreKeeper        = "StoreKeeper"
)

// ValidRole indica si el rol es válido.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleProjectManager, RoleEngineer, RoleProcurementOfficer, RoleStoreKeeper:
		return true
	}
	return false
}

// User identidad de acceso al sistema.
type User struct {
	ID             string
	FullName       string
	EmployeeID     string
	Email          string
	Phone          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Designation    string
	Department     string
	Role           string
	IsActive       bool
	ActiveProjects []string

	// Recuperación de contraseña.
	ResetOTP     string
	OTPExpiresAt *time.Time
	OTPVerified  bool

	JoinedAt  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
