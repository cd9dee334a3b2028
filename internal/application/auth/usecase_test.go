package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/jhoicas/gridaura-api/internal/testutil"
	"github.com/jhoicas/gridaura-api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingMailer struct {
	email string
	otp   string
	err   error
}

func (m *capturingMailer) SendOTP(_ context.Context, email, otp string, _ time.Time) error {
	m.email, m.otp = email, otp
	return m.err
}

func newTestAuth(t *testing.T) (*AuthUseCase, *capturingMailer) {
	t.Helper()
	mailer := &capturingMailer{}
	uc := NewAuthUseCase(testutil.NewStore().Users(), mailer, JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "gridaura"}, 10*time.Minute)
	_, err := uc.Signup(context.Background(), dto.SignupRequest{FullName: "Asha Verma", Email: " Asha@Grid.in ", Password: "s3cretpass"})
	require.NoError(t, err)
	return uc, mailer
}

func TestSignup(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := uc.Signup(ctx, dto.SignupRequest{FullName: "Otro", Email: "asha@grid.in", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Signup(ctx, dto.SignupRequest{FullName: "Corto", Email: "c@grid.in", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Signup(ctx, dto.SignupRequest{FullName: "Sin arroba", Email: "grid.in", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ASHA@grid.in", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "asha@grid.in", res.User.Email)
	assert.Equal(t, entity.RoleEngineer, res.User.Role)

	userID, role, err := jwt.Parse("test-secret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
	assert.Equal(t, entity.RoleEngineer, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "asha@grid.in", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nobody@grid.in", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_InactiveUser(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()
	res, err := uc.Login(ctx, dto.LoginRequest{Email: "asha@grid.in", Password: "s3cretpass"})
	require.NoError(t, err)

	inactive := false
	_, err = uc.AdminUpdate(ctx, res.User.ID, dto.AdminUpdateUserRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "asha@grid.in", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPasswordResetFlow(t *testing.T) {
	uc, mailer := newTestAuth(t)
	ctx := context.Background()

	err := uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "asha@grid.in", NewPassword: "n3wpassword"})
	assert.ErrorIs(t, err, domain.ErrOTPNotVerified)

	require.NoError(t, uc.SendOTP(ctx, dto.SendOTPRequest{Email: "asha@grid.in"}))
	assert.Equal(t, "asha@grid.in", mailer.email)
	assert.Len(t, mailer.otp, 6)

	wrong := "000000"
	if mailer.otp == wrong {
		wrong = "111111"
	}
	assert.ErrorIs(t, uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "asha@grid.in", OTP: wrong}), domain.ErrInvalidOTP)

	require.NoError(t, uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "asha@grid.in", OTP: mailer.otp}))
	require.NoError(t, uc.ResetPassword(ctx, dto.ResetPasswordRequest{Email: "asha@grid.in", NewPassword: "n3wpassword"}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "asha@grid.in", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "asha@grid.in", Password: "n3wpassword"})
	require.NoError(t, err)

	// El OTP se consume con el reset.
	assert.ErrorIs(t, uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "asha@grid.in", OTP: mailer.otp}), domain.ErrInvalidOTP)
}

func TestVerifyOTP_Expired(t *testing.T) {
	uc, mailer := newTestAuth(t)
	ctx := context.Background()
	require.NoError(t, uc.SendOTP(ctx, dto.SendOTPRequest{Email: "asha@grid.in"}))

	uc.now = func() time.Time { return time.Now().Add(11 * time.Minute) }
	err := uc.VerifyOTP(ctx, dto.VerifyOTPRequest{Email: "asha@grid.in", OTP: mailer.otp})
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestSendOTP_Errors(t *testing.T) {
	uc, mailer := newTestAuth(t)
	ctx := context.Background()

	assert.ErrorIs(t, uc.SendOTP(ctx, dto.SendOTPRequest{Email: "nobody@grid.in"}), domain.ErrUserNotFound)

	mailer.err = errors.New("smtp caído")
	assert.Error(t, uc.SendOTP(ctx, dto.SendOTPRequest{Email: "asha@grid.in"}))
}

func TestProfileAndAdminUpdate(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()
	login, err := uc.Login(ctx, dto.LoginRequest{Email: "asha@grid.in", Password: "s3cretpass"})
	require.NoError(t, err)
	id := login.User.ID

	dept := "Transmisión"
	p, err := uc.UpdateProfile(ctx, id, dto.UpdateProfileRequest{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, dept, p.Department)

	empty := " "
	_, err = uc.UpdateProfile(ctx, id, dto.UpdateProfileRequest{FullName: &empty})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	role := entity.RoleStoreKeeper
	p, err = uc.AdminUpdate(ctx, id, dto.AdminUpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStoreKeeper, p.Role)

	bogus := "Overlord"
	_, err = uc.AdminUpdate(ctx, id, dto.AdminUpdateUserRequest{Role: &bogus})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Profile(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
