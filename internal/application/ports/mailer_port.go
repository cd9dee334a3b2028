package ports

import (
	"context"
	"time"
)

// Mailer entrega del OTP de recuperación de contraseña. El transporte real es externo.
type Mailer interface {
	SendOTP(ctx context.Context, email, otp string, expiresAt time.Time) error
}
