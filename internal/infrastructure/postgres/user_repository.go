package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, full_name, employee_id, email, phone, password_hash, designation, department,
		role, is_active, active_projects, reset_otp, otp_expires_at, otp_verified, joined_at, created_at, updated_at`

// UserRepo implementación sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario. Email repetido -> domain.ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.FullName, u.EmployeeID, u.Email, u.Phone, u.PasswordHash, u.Designation, u.Department,
		u.Role, u.IsActive, nonNil(u.ActiveProjects), u.ResetOTP, u.OTPExpiresAt, u.OTPVerified,
		u.JoinedAt, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.FullName, &u.EmployeeID, &u.Email, &u.Phone, &u.PasswordHash, &u.Designation, &u.Department,
		&u.Role, &u.IsActive, &u.ActiveProjects, &u.ResetOTP, &u.OTPExpiresAt, &u.OTPVerified,
		&u.JoinedAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update reemplaza el perfil, el rol y el estado OTP.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users SET full_name = $2, employee_id = $3, phone = $4, password_hash = $5, designation = $6,
			department = $7, role = $8, is_active = $9, active_projects = $10, reset_otp = $11,
			otp_expires_at = $12, otp_verified = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		u.ID, u.FullName, u.EmployeeID, u.Phone, u.PasswordHash, u.Designation,
		u.Department, u.Role, u.IsActive, nonNil(u.ActiveProjects), u.ResetOTP,
		u.OTPExpiresAt, u.OTPVerified, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
