package mail

import (
	"context"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/rs/zerolog"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer registra el OTP en el log en lugar de enviarlo. La entrega real de correo
// queda fuera del servicio; en producción el nivel debug suele estar apagado.
type LogMailer struct {
	log zerolog.Logger
}

// NewLogMailer construye el mailer sobre el logger dado.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

// SendOTP registra el código. Nunca falla.
func (m *LogMailer) SendOTP(_ context.Context, email, otp string, expiresAt time.Time) error {
	m.log.Debug().
		Str("email", email).
		Str("otp", otp).
		Time("expires_at", expiresAt).
		Msg("OTP de recuperación de contraseña")
	m.log.Info().Str("email", email).Msg("OTP de recuperación generado")
	return nil
}
