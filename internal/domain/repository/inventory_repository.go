package repository

import (
	"context"

	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryFilter filtros del listado del ledger.
type InventoryFilter struct {
	MaterialID string
	Location   string
}

// InventoryRepository define el puerto del ledger de inventario.
// Cada mutación de stock es una única sentencia condicional: el repositorio nunca
// hace lectura-verificación-escritura en dos viajes.
type InventoryRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe fila para (material, ubicación).
	Create(ctx context.Context, inv *entity.Inventory) error
	// GetByID devuelve la fila con el material poblado, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE); solo tiene sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Inventory, error)
	List(ctx context.Context, filter InventoryFilter) ([]*entity.Inventory, error)
	// Update reemplaza material, ubicación y contadores. OptimizedData no se toca.
	Update(ctx context.Context, inv *entity.Inventory) error
	// Delete elimina sin condiciones y devuelve la fila eliminada (nil si no existía).
	Delete(ctx context.Context, id string) (*entity.Inventory, error)

	// ApplyStock aplica la operación de forma atómica y devuelve la fila resultante.
	// Errores: domain.ErrNotFound, domain.ErrInsufficientStock, domain.ErrInsufficientReservation.
	ApplyStock(ctx context.Context, id string, op entity.StockOperation, qty decimal.Decimal) (*entity.Inventory, error)

	// SetOptimizedData sobrescribe la anotación completa (última escritura gana).
	SetOptimizedData(ctx context.Context, id string, data *entity.OptimizedData) error
}
