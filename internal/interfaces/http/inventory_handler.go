package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const noOptimizationMessage = "No optimization data yet"

// InventoryHandler maneja el ledger de inventario (/api/inv).
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	optimizer *inventory.OptimizationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, optimizer *inventory.OptimizationUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, optimizer: optimizer}
}

// Create godoc
// @Summary      Crear fila de inventario
// @Description  Una fila por par (material, ubicación).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "Material, ubicación y cantidades"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inv [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Material == "" || in.Location == "" {
		return badRequest(c, "VALIDATION", "material y location son requeridos")
	}
	out, err := h.ledger.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return badRequest(c, "DUPLICATE", "ya existe inventario para ese material en esa ubicación")
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        material  query  string  false  "ID de material"
// @Param        location  query  string  false  "Ubicación (sin distinguir mayúsculas)"
// @Success      200       {object}  dto.InventoryListResponse
// @Router       /api/inv [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.List(c.UserContext(), repository.InventoryFilter{
		MaterialID: c.Query("material"),
		Location:   c.Query("location"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de inventario"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inv/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.ledger.GetByID(c.UserContext(), id)
	if err != nil {
		return writeNotFound(c, err, "inventario no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar fila de inventario
// @Description  Edición directa; queda registrada como ADJUSTMENT en el diario.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de inventario"
// @Param        body  body  dto.UpdateInventoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inv/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return badRequest(c, "DUPLICATE", "ya existe inventario para ese material en esa ubicación")
		}
		return writeNotFound(c, err, "inventario no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar fila de inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de inventario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inv/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.ledger.Delete(c.UserContext(), id); err != nil {
		return writeNotFound(c, err, "inventario no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "Inventory deleted"})
}

// Increase godoc
// @Summary      Aumentar stock disponible
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de inventario"
// @Param        body  body  dto.StockQuantityRequest  true  "Cantidad (> 0)"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inv/{id}/increase [put]
func (h *InventoryHandler) Increase(c *fiber.Ctx) error {
	return h.stock(c, h.ledger.Increase, msgInsufficientStock)
}

// Decrease godoc
// @Summary      Consumir stock disponible
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de inventario"
// @Param        body  body  dto.StockQuantityRequest  true  "Cantidad (> 0)"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse  "Insufficient stock"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inv/{id}/decrease [put]
func (h *InventoryHandler) Decrease(c *fiber.Ctx) error {
	return h.stock(c, h.ledger.Decrease, msgInsufficientStock)
}

// Reserve godoc
// @Summary      Reservar stock
// @Description  Mueve cantidad de disponible a reservado.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de inventario"
// @Param        body  body  dto.StockQuantityRequest  true  "Cantidad (> 0)"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse  "Insufficient available stock to reserve"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inv/{id}/reserve [put]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	return h.stock(c, h.ledger.Reserve, msgInsufficientToReserve)
}

// Release godoc
// @Summary      Liberar reserva
// @Description  Inverso exacto de reserve.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de inventario"
// @Param        body  body  dto.StockQuantityRequest  true  "Cantidad (> 0)"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse  "Not enough reserved stock to release"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inv/{id}/release [put]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	return h.stock(c, h.ledger.Release, msgInsufficientReservation)
}

type stockFunc func(ctx context.Context, userID, id string, qty decimal.Decimal) (*dto.InventoryResponse, error)

// stock parsea {quantity} y aplica la mutación. insufficientMsg es el texto para ErrInsufficientStock.
func (h *InventoryHandler) stock(c *fiber.Ctx, apply stockFunc, insufficientMsg string) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.StockQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !in.Quantity.IsPositive() {
		return badRequest(c, "VALIDATION", "quantity debe ser mayor que 0")
	}
	out, err := apply(c.UserContext(), GetUserID(c), id, in.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			return badRequest(c, "INSUFFICIENT_STOCK", insufficientMsg)
		case errors.Is(err, domain.ErrInsufficientReservation):
			return badRequest(c, "INSUFFICIENT_RESERVATION", insufficientMsg)
		}
		return writeNotFound(c, err, "inventario no encontrado")
	}
	return c.JSON(out)
}

// GetOptimization godoc
// @Summary      Anotación del optimizador
// @Description  Devuelve optimizedData o un mensaje si la fila aún no fue optimizada.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de inventario"
// @Success      200  {object}  dto.OptimizedDataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inv/{id}/optimization [get]
func (h *InventoryHandler) GetOptimization(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.ledger.GetOptimization(c.UserContext(), id)
	if err != nil {
		return writeNotFound(c, err, "inventario no encontrado")
	}
	if out == nil {
		return c.JSON(dto.OptimizationPlaceholderResponse{Message: noOptimizationMessage})
	}
	return c.JSON(out)
}

// Movements godoc
// @Summary      Diario de movimientos de una fila
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de inventario"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.InventoryMovementListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inv/{id}/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	limit := c.QueryInt("limit", 20)
	if limit > 100 {
		limit = 100
	}
	page := dto.PageRequest{Limit: limit, Offset: c.QueryInt("offset", 0)}
	out, err := h.ledger.Movements(c.UserContext(), id, page)
	if err != nil {
		return writeNotFound(c, err, "inventario no encontrado")
	}
	return c.JSON(out)
}

// Optimize godoc
// @Summary      Ejecutar optimización de inventario
// @Description  Exporta el ledger al servicio ML y guarda sus recomendaciones por fila.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OptimizeInventoryRequest  false  "Escenario de simulación"
// @Success      200   {object}  dto.OptimizeInventoryResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/inv/optimize [post]
func (h *InventoryHandler) Optimize(c *fiber.Ctx) error {
	var in dto.OptimizeInventoryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.optimizer.Run(c.UserContext(), in.SimulationScenario)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
