package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/jhoicas/gridaura-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

const minPasswordLen = 8

// AuthUseCase casos de uso de autenticación: registro, login, recuperación por OTP y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	mailer   ports.Mailer
	jwtCfg   JWTConfig
	otpTTL   time.Duration
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, mailer ports.Mailer, jwtCfg JWTConfig, otpTTL time.Duration) *AuthUseCase {
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &AuthUseCase{userRepo: userRepo, mailer: mailer, jwtCfg: jwtCfg, otpTTL: otpTTL, now: time.Now}
}

// Signup crea un usuario con rol Engineer: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.FullName) == "" || !strings.Contains(email, "@") || len(in.Password) < minPasswordLen {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:             uuid.New().String(),
		FullName:       strings.TrimSpace(in.FullName),
		Email:          email,
		Phone:          in.Phone,
		PasswordHash:   string(hash),
		Role:           entity.RoleEngineer,
		IsActive:       true,
		ActiveProjects: []string{},
		JoinedAt:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// SendOTP genera un OTP de 6 dígitos con vencimiento y lo entrega por el Mailer.
// Un OTP nuevo invalida cualquier verificación anterior.
func (uc *AuthUseCase) SendOTP(ctx context.Context, in dto.SendOTPRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expires := uc.now().Add(uc.otpTTL)
	user.ResetOTP = otp
	user.OTPExpiresAt = &expires
	user.OTPVerified = false
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return uc.mailer.SendOTP(ctx, user.Email, otp, expires)
}

// VerifyOTP marca el OTP como verificado si coincide y no ha vencido.
func (uc *AuthUseCase) VerifyOTP(ctx context.Context, in dto.VerifyOTPRequest) error {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if user.ResetOTP == "" || subtle.ConstantTimeCompare([]byte(user.ResetOTP), []byte(in.OTP)) != 1 {
		return domain.ErrInvalidOTP
	}
	if user.OTPExpiresAt == nil || uc.now().After(*user.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	user.OTPVerified = true
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// ResetPassword cambia la contraseña; requiere un OTP verificado y limpia los campos OTP.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	if len(in.NewPassword) < minPasswordLen {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.OTPVerified {
		return domain.ErrOTPNotVerified
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.ResetOTP = ""
	user.OTPExpiresAt = nil
	user.OTPVerified = false
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

// Profile devuelve el usuario autenticado.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// UpdateProfile edición de los campos propios del usuario.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		if strings.TrimSpace(*in.FullName) == "" {
			return nil, domain.ErrInvalidInput
		}
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Designation != nil {
		user.Designation = *in.Designation
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// AdminUpdate edición administrativa: rol, código de empleado, cargo, área, teléfono y estado.
func (uc *AuthUseCase) AdminUpdate(ctx context.Context, userID string, in dto.AdminUpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.EmployeeID != nil {
		user.EmployeeID = *in.EmployeeID
	}
	if in.Designation != nil {
		user.Designation = *in.Designation
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	user.UpdatedAt = uc.now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) load(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	projects := u.ActiveProjects
	if projects == nil {
		projects = []string{}
	}
	return &dto.UserResponse{
		ID:             u.ID,
		FullName:       u.FullName,
		EmployeeID:     u.EmployeeID,
		Email:          u.Email,
		Phone:          u.Phone,
		Designation:    u.Designation,
		Department:     u.Department,
		Role:           u.Role,
		IsActive:       u.IsActive,
		ActiveProjects: projects,
		JoinedAt:       u.JoinedAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
