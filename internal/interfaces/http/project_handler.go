package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
)

// ProjectHandler proyectos de construcción y su reporte descargable.
type ProjectHandler struct {
	uc      *usecase.ProjectUseCase
	reports *usecase.ReportUseCase
}

// NewProjectHandler construye el handler.
func NewProjectHandler(uc *usecase.ProjectUseCase, reports *usecase.ReportUseCase) *ProjectHandler {
	return &ProjectHandler{uc: uc, reports: reports}
}

// Create godoc
// @Summary      Crear proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProjectRequest  true  "Datos del proyecto"
// @Success      201   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Name == "" || in.Location == "" {
		return badRequest(c, "VALIDATION", "name y location son requeridos")
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar proyectos
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProjectListResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener proyecto con activos y materiales
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [get]
func (h *ProjectHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeNotFound(c, err, "proyecto no encontrado")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.UpdateProjectRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [put]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.UpdateProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeNotFound(c, err, "proyecto no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeNotFound(c, err, "proyecto no encontrado")
	}
	return c.JSON(dto.MessageResponse{Message: "Project deleted"})
}

// LinkAsset godoc
// @Summary      Enlazar activo existente al proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.LinkAssetRequest  true  "ID del activo"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/assets [post]
func (h *ProjectHandler) LinkAsset(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.LinkAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.AssetID == "" {
		return badRequest(c, "VALIDATION", "assetId es requerido")
	}
	out, err := h.uc.LinkAsset(c.UserContext(), id, in.AssetID)
	if err != nil {
		return writeNotFound(c, err, "proyecto o activo no encontrado")
	}
	return c.JSON(out)
}

// LinkMaterial godoc
// @Summary      Enlazar asignación de material al proyecto
// @Tags         projects
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proyecto"
// @Param        body  body  dto.LinkMaterialRequest  true  "ID de la asignación"
// @Success      200   {object}  dto.ProjectResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/materials [post]
func (h *ProjectHandler) LinkMaterial(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.LinkMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.MaterialID == "" {
		return badRequest(c, "VALIDATION", "materialId es requerido")
	}
	out, err := h.uc.LinkMaterial(c.UserContext(), id, in.MaterialID)
	if err != nil {
		return writeNotFound(c, err, "proyecto o asignación no encontrada")
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen del proyecto
// @Tags         projects
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.ProjectSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/summary [get]
func (h *ProjectHandler) Summary(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Summary(c.UserContext(), id)
	if err != nil {
		return writeNotFound(c, err, "proyecto no encontrado")
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Descargar reporte del proyecto
// @Description  Genera el documento al vuelo; format=pdf (por defecto) o xlsx.
// @Tags         projects
// @Security     Bearer
// @Produce      application/pdf
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id      path   string  true   "ID del proyecto"
// @Param        format  query  string  false  "pdf | xlsx"  default(pdf)
// @Success      200     {file}    binary
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/projects/{id}/report [get]
func (h *ProjectHandler) Report(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	doc, err := h.reports.Render(c.UserContext(), id, c.Query("format", usecase.ReportFormatPDF), GetUserID(c))
	if err != nil {
		return writeNotFound(c, err, "proyecto no encontrado")
	}
	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.FileName))
	return c.Send(doc.Data)
}
