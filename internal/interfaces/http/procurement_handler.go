package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// ProcurementHandler órdenes de compra (/api/procurement-orders).
type ProcurementHandler struct {
	uc *usecase.ProcurementUseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *usecase.ProcurementUseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Description  totalCost = quantity * unitPrice.
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProcurementOrderRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.ProcurementOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/procurement-orders [post]
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProcurementOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Project == "" || in.Material == "" || in.Vendor == "" {
		return badRequest(c, "VALIDATION", "project, material y vendor son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeNotFound(c, err, "proyecto, material o proveedor no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProcurementOrderListResponse
// @Router       /api/procurement-orders [get]
func (h *ProcurementHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.ProcurementOrderFilter{})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProject godoc
// @Summary      Órdenes de compra de un proyecto
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200        {object}  dto.ProcurementOrderListResponse
// @Router       /api/procurement-orders/project/{projectId} [get]
func (h *ProcurementHandler) ListByProject(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return missingID(c)
	}
	out, err := h.uc.List(c.UserContext(), repository.ProcurementOrderFilter{ProjectID: projectID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.ProcurementOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement-orders/{id} [get]
func (h *ProcurementHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeNotFound(c, err, "orden de compra no encontrada")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de compra
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateProcurementOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProcurementOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/procurement-orders/{id} [put]
func (h *ProcurementHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProcurementOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeNotFound(c, err, "orden de compra no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden de compra
// @Tags         procurement
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/procurement-orders/{id} [delete]
func (h *ProcurementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeNotFound(c, err, "orden de compra no encontrada")
	}
	return c.JSON(dto.MessageResponse{Message: "Procurement order deleted"})
}
