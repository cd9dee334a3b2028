package ports

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
)

// InventoryOptimizer define el puerto de salida hacia el servicio ML de optimización.
// La aplicación solo conoce este contrato; el adaptador HTTP vive en infraestructura.
type InventoryOptimizer interface {
	// Optimize envía el lote exportado y devuelve una recomendación por material.
	// Cualquier falla de transporte o respuesta no-2xx se reporta envolviendo domain.ErrUpstream.
	Optimize(ctx context.Context, req dto.OptimizerRequest) (*dto.OptimizerResponse, error)
}
