package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrReferenced         = errors.New("el recurso está referenciado por otros registros")

	// Precondiciones del ledger de inventario.
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrInsufficientReservation = errors.New("stock reservado insuficiente")

	// Falla del optimizador externo (servicio ML).
	ErrUpstream = errors.New("servicio externo no disponible")

	// Falla transitoria de persistencia (serialización, deadlock, conexión); se puede reintentar.
	ErrTransient = errors.New("falla transitoria de base de datos")

	// Flujo de recuperación de contraseña por OTP.
	ErrInvalidOTP     = errors.New("OTP inválido")
	ErrOTPExpired     = errors.New("OTP expirado")
	ErrOTPNotVerified = errors.New("OTP no verificado")
)
