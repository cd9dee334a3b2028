package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/gridaura-api/internal/application/auth"
	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	MaterialUC        *usecase.MaterialUseCase
	Ledger            *inventory.LedgerUseCase
	Optimization      *inventory.OptimizationUseCase
	ProjectMaterialUC *usecase.ProjectMaterialUseCase
	ProjectUC         *usecase.ProjectUseCase
	AssetUC           *usecase.AssetUseCase
	VendorUC          *usecase.VendorUseCase
	ProcurementUC     *usecase.ProcurementUseCase
	ReportUC          *usecase.ReportUseCase
	JWTSecret         string
	ServiceName       string
	// MetricsHandler expone /metrics si no es nil.
	MetricsHandler nethttp.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/send-otp", authHandler.SendOTP)
	authGroup.Post("/verify-otp", authHandler.VerifyOTP)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/profile", userHandler.Profile)
	users.Put("/profile", userHandler.UpdateProfile)
	users.Put("/:id", adminOnly, userHandler.AdminUpdate)

	// Catálogo: lectura para todos, escritura solo Admin
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", adminOnly, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/summary", materialHandler.Summary)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", adminOnly, materialHandler.Update)
	materials.Delete("/:id", adminOnly, materialHandler.Delete)

	// Ledger de inventario
	inv := protected.Group("/inv")
	invHandler := NewInventoryHandler(deps.Ledger, deps.Optimization)
	inv.Post("/", invHandler.Create)
	inv.Get("/", invHandler.List)
	inv.Post("/optimize", invHandler.Optimize)
	inv.Get("/:id", invHandler.GetByID)
	inv.Put("/:id", invHandler.Update)
	inv.Delete("/:id", invHandler.Delete)
	inv.Put("/:id/increase", invHandler.Increase)
	inv.Put("/:id/decrease", invHandler.Decrease)
	inv.Put("/:id/reserve", invHandler.Reserve)
	inv.Put("/:id/release", invHandler.Release)
	inv.Get("/:id/optimization", invHandler.GetOptimization)
	inv.Get("/:id/movements", invHandler.Movements)

	projectMaterials := protected.Group("/project-materials")
	pmHandler := NewProjectMaterialHandler(deps.ProjectMaterialUC)
	projectMaterials.Post("/", pmHandler.Create)
	projectMaterials.Get("/", pmHandler.List)
	projectMaterials.Get("/project/:projectId", pmHandler.ListByProject)
	projectMaterials.Put("/:id", pmHandler.Update)
	projectMaterials.Delete("/:id", pmHandler.Delete)

	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.ReportUC)
	projects.Post("/", projectHandler.Create)
	projects.Get("/", projectHandler.List)
	projects.Get("/:id", projectHandler.GetByID)
	projects.Put("/:id", projectHandler.Update)
	projects.Delete("/:id", projectHandler.Delete)
	projects.Post("/:id/assets", projectHandler.LinkAsset)
	projects.Post("/:id/materials", projectHandler.LinkMaterial)
	projects.Get("/:id/summary", projectHandler.Summary)
	projects.Get("/:id/report", projectHandler.Report)

	assets := protected.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", assetHandler.Update)
	assets.Delete("/:id", assetHandler.Delete)

	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Post("/", vendorHandler.Create)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Put("/:id", vendorHandler.Update)
	vendors.Delete("/:id", vendorHandler.Delete)
	vendors.Put("/:id/assign-materials", vendorHandler.AssignMaterials)

	orders := protected.Group("/procurement-orders")
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	orders.Post("/", procurementHandler.Create)
	orders.Get("/", procurementHandler.List)
	orders.Get("/project/:projectId", procurementHandler.ListByProject)
	orders.Get("/:id", procurementHandler.GetByID)
	orders.Put("/:id", procurementHandler.Update)
	orders.Delete("/:id", procurementHandler.Delete)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/", reportHandler.Create)
	reports.Get("/", reportHandler.List)
	reports.Post("/generate", reportHandler.Generate)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Put("/:id", reportHandler.Update)
	reports.Delete("/:id", reportHandler.Delete)
}
