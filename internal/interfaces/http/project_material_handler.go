package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain/repository"
)

// ProjectMaterialHandler asignaciones de material a proyectos (/api/project-materials).
type ProjectMaterialHandler struct {
	uc *usecase.ProjectMaterialUseCase
}

// NewProjectMaterialHandler construye el handler.
func NewProjectMaterialHandler(uc *usecase.ProjectMaterialUseCase) *ProjectMaterialHandler {
	return &ProjectMaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Asignar material a proyecto
// @Description  Crea la asignación y la enlaza en el proyecto.
// @Tags         project-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectMaterialRequest  true  "Proyecto, material y cantidades"
// @Success      201   {object}  dto.ProjectMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/project-materials [post]
func (h *ProjectMaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Project == "" || in.Material == "" {
		return badRequest(c, "VALIDATION", "project y material son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeNotFound(c, err, "proyecto o material no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asignaciones
// @Tags         project-materials
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProjectMaterialListResponse
// @Router       /api/project-materials [get]
func (h *ProjectMaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), repository.ProjectMaterialFilter{})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProject godoc
// @Summary      Asignaciones de un proyecto
// @Tags         project-materials
// @Security     Bearer
// @Produce      json
// @Param        projectId  path  string  true  "ID del proyecto"
// @Success      200        {object}  dto.ProjectMaterialListResponse
// @Router       /api/project-materials/project/{projectId} [get]
func (h *ProjectMaterialHandler) ListByProject(c *fiber.Ctx) error {
	projectID := c.Params("projectId")
	if projectID == "" {
		return missingID(c)
	}
	out, err := h.uc.List(c.UserContext(), repository.ProjectMaterialFilter{ProjectID: projectID})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar asignación
// @Tags         project-materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la asignación"
// @Param        body  body  dto.UpdateProjectMaterialRequest  true  "Cantidades y observaciones"
// @Success      200   {object}  dto.ProjectMaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/project-materials/{id} [put]
func (h *ProjectMaterialHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProjectMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeNotFound(c, err, "asignación no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar asignación
// @Description  También la quita de la lista de materiales del proyecto.
// @Tags         project-materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la asignación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/project-materials/{id} [delete]
func (h *ProjectMaterialHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeNotFound(c, err, "asignación no encontrada")
	}
	return c.JSON(dto.MessageResponse{Message: "Project material deleted"})
}
