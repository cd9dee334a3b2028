package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// RetryPolicy reintentos ante fallas transitorias de la BD (domain.ErrTransient).
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration // se multiplica por el número de intento
}

// DefaultRetryPolicy 3 intentos con backoff lineal corto.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 25 * time.Millisecond}

// Do ejecuta fn hasta Attempts veces mientras el error sea transitorio.
// Validaciones y precondiciones fallan en el primer intento.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = fn()
		if err == nil || !errors.Is(err, domain.ErrTransient) {
			return err
		}
		if i == attempts {
			break
		}
		log.Warn().Err(err).Str("operation", op).Int("attempt", i).Msg("ledger: falla transitoria, reintentando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff * time.Duration(i)):
		}
	}
	return err
}
