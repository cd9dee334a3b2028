package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/gridaura-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	code, _ := pgCode(err)
	return code == codeForeignKeyViolation
}

// checkViolation devuelve el nombre del CHECK violado (23514), o "" si no aplica.
func checkViolation(err error) string {
	code, constraint := pgCode(err)
	if code != codeCheckViolation {
		return ""
	}
	if constraint == "" {
		return "check"
	}
	return constraint
}

// isTransient fallas que se pueden reintentar: serialización, deadlock, clase 08 (conexión)
// o errores que pgconn marca como seguros de reintentar.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	code, _ := pgCode(err)
	switch {
	case code == codeSerializationFailure, code == codeDeadlockDetected:
		return true
	case len(code) == 5 && code[:2] == "08":
		return true
	}
	return pgconn.SafeToRetry(err)
}

// classify marca como domain.ErrTransient las fallas reintentables.
func classify(err error) error {
	if err == nil || errors.Is(err, domain.ErrTransient) || !isTransient(err) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrTransient, err)
}
