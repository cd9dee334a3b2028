package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryRequest body para POST /api/inv.
type CreateInventoryRequest struct {
	Material     string           `json:"material"`
	Location     string           `json:"location"`
	AvailableQty decimal.Decimal  `json:"availableQty"`
	ReservedQty  *decimal.Decimal `json:"reservedQty,omitempty"`
}

// UpdateInventoryRequest body para PUT /api/inv/:id. No incluye optimizedData: si el cliente
// lo envía se descarta al decodificar.
type UpdateInventoryRequest struct {
	Material     *string          `json:"material"`
	Location     *string          `json:"location"`
	AvailableQty *decimal.Decimal `json:"availableQty"`
	ReservedQty  *decimal.Decimal `json:"reservedQty"`
}

// StockQuantityRequest body para increase/decrease/reserve/release.
type StockQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// OptimizedDataResponse anotación del optimizador.
type OptimizedDataResponse struct {
	RecommendedReorderPoint decimal.Decimal `json:"recommendedReorderPoint"`
	OptimalStockLevel       decimal.Decimal `json:"optimalStockLevel"`
	SafetyStock             decimal.Decimal `json:"safetyStock"`
	Comment                 string          `json:"comment"`
	PriceTrendInfo          string          `json:"priceTrendInfo"`
	LastOptimizationDate    time.Time       `json:"lastOptimizationDate"`
	Scenario                string          `json:"scenario"`
}

// InventoryResponse fila del ledger con el material poblado.
type InventoryResponse struct {
	ID            string                 `json:"id"`
	Material      *MaterialRefResponse   `json:"material"`
	Location      string                 `json:"location"`
	AvailableQty  decimal.Decimal        `json:"availableQty"`
	ReservedQty   decimal.Decimal        `json:"reservedQty"`
	OptimizedData *OptimizedDataResponse `json:"optimizedData,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// InventoryListResponse listado del ledger.
type InventoryListResponse struct {
	Items []InventoryResponse `json:"items"`
	Total int                 `json:"total"`
}

// InventoryMovementResponse entrada del diario del ledger.
type InventoryMovementResponse struct {
	ID              string          `json:"id"`
	InventoryID     string          `json:"inventoryId"`
	MaterialID      string          `json:"materialId"`
	Type            string          `json:"type"`
	Quantity        decimal.Decimal `json:"quantity"`
	AvailableBefore decimal.Decimal `json:"availableBefore"`
	AvailableAfter  decimal.Decimal `json:"availableAfter"`
	ReservedBefore  decimal.Decimal `json:"reservedBefore"`
	ReservedAfter   decimal.Decimal `json:"reservedAfter"`
	CreatedBy       string          `json:"createdBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// InventoryMovementListResponse página del diario.
type InventoryMovementListResponse struct {
	Items []InventoryMovementResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}
