package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// Mensajes de precondición del ledger. Los clientes existentes comparan el texto literal.
const (
	msgInsufficientStock       = "Insufficient stock"
	msgInsufficientToReserve   = "Insufficient available stock to reserve"
	msgInsufficientReservation = "Not enough reserved stock to release"
)

type errorMapping struct {
	status  int
	code    string
	message string
}

// errorMappings se recorre en orden; gana el primer errors.Is que coincide.
var errorMappings = []struct {
	target error
	errorMapping
}{
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"}},
	{domain.ErrUserNotFound, errorMapping{fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado"}},
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION", "entrada inválida"}},
	{domain.ErrDuplicate, errorMapping{fiber.StatusBadRequest, "DUPLICATE", "el recurso ya existe"}},
	{domain.ErrConflict, errorMapping{fiber.StatusBadRequest, "CONFLICT", "conflicto con el estado actual"}},
	{domain.ErrEmailAlreadyExists, errorMapping{fiber.StatusBadRequest, "EMAIL_EXISTS", "el email ya está registrado"}},
	{domain.ErrInsufficientStock, errorMapping{fiber.StatusBadRequest, "INSUFFICIENT_STOCK", msgInsufficientStock}},
	{domain.ErrInsufficientReservation, errorMapping{fiber.StatusBadRequest, "INSUFFICIENT_RESERVATION", msgInsufficientReservation}},
	{domain.ErrInvalidOTP, errorMapping{fiber.StatusBadRequest, "INVALID_OTP", "OTP inválido"}},
	{domain.ErrOTPExpired, errorMapping{fiber.StatusBadRequest, "OTP_EXPIRED", "OTP expirado"}},
	{domain.ErrOTPNotVerified, errorMapping{fiber.StatusBadRequest, "OTP_NOT_VERIFIED", "OTP no verificado"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"}},
	{domain.ErrReferenced, errorMapping{fiber.StatusConflict, "REFERENCED", "el recurso está en uso por otros registros"}},
	{domain.ErrUpstream, errorMapping{fiber.StatusBadGateway, "UPSTREAM", "el servicio de optimización no respondió correctamente"}},
}

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Lo que no es un error de dominio conocido es 500 y se registra.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// writeNotFound 404 con mensaje propio del recurso.
func writeNotFound(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
	}
	return writeError(c, err)
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func invalidBody(c *fiber.Ctx) error {
	return badRequest(c, "INVALID_BODY", "cuerpo inválido")
}

func missingID(c *fiber.Ctx) error {
	return badRequest(c, "MISSING_ID", "id es requerido")
}
