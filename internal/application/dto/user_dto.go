package dto

import "time"

// SignupRequest entrada para registro (password en texto, se hashea en use case).
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SendOTPRequest body para POST /api/auth/send-otp.
type SendOTPRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest body para POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest body para POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfileRequest campos editables por el propio usuario.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName"`
	Phone       *string `json:"phone"`
	Designation *string `json:"designation"`
	Department  *string `json:"department"`
}

// AdminUpdateUserRequest campos editables por un administrador.
type AdminUpdateUserRequest struct {
	Role        *string `json:"role"`
	EmployeeID  *string `json:"employeeId"`
	Designation *string `json:"designation"`
	Department  *string `json:"department"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"isActive"`
}

// UserResponse salida de un usuario (sin password ni OTP).
type UserResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	EmployeeID     string    `json:"employeeId,omitempty"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Designation    string    `json:"designation,omitempty"`
	Department     string    `json:"department,omitempty"`
	Role           string    `json:"role"`
	IsActive       bool      `json:"isActive"`
	ActiveProjects []string  `json:"activeProjects"`
	JoinedAt       time.Time `json:"joinedAt"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
