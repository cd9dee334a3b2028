package dto

import "github.com/shopspring/decimal"

// OptimizeInventoryRequest body para POST /api/inv/optimize.
type OptimizeInventoryRequest struct {
	SimulationScenario string `json:"simulation_scenario"`
}

// OptimizeInventoryResponse resultado de una corrida de optimización.
type OptimizeInventoryResponse struct {
	Scenario  string   `json:"scenario"`
	Exported  int      `json:"exported"`
	Applied   int      `json:"applied"`
	Unmatched []string `json:"unmatched"`
}

// OptimizationPlaceholderResponse se devuelve cuando la fila aún no tiene anotación.
type OptimizationPlaceholderResponse struct {
	Message string `json:"message"`
}

// OptimizerMaterialInput entrada por material del contrato del servicio ML.
type OptimizerMaterialInput struct {
	Name                    string          `json:"name"`
	CurrentStock            decimal.Decimal `json:"current_stock"`
	AvgMonthlyConsumption   decimal.Decimal `json:"avg_monthly_consumption"`
	ForecastDemandNextMonth decimal.Decimal `json:"forecast_demand_next_month"`
	LeadTimeDays            int             `json:"lead_time_days"`
	CostPerUnit             decimal.Decimal `json:"cost_per_unit"`
	Criticality             string          `json:"criticality"`
}

// OptimizerRequest cuerpo de POST {ML_BASE_URL}/optimize_inventory.
type OptimizerRequest struct {
	Materials          []OptimizerMaterialInput `json:"materials"`
	SimulationScenario string                   `json:"simulation_scenario"`
}

// OptimizerRecommendation recomendación por material devuelta por el servicio ML.
type OptimizerRecommendation struct {
	Name                    string          `json:"name"`
	RecommendedReorderPoint decimal.Decimal `json:"recommended_reorder_point"`
	OptimalStockLevel       decimal.Decimal `json:"optimal_stock_level"`
	SafetyStock             decimal.Decimal `json:"safety_stock"`
	Comment                 string          `json:"comment"`
	PriceTrendInfo          string          `json:"price_trend_info"`
}

// OptimizerResponse respuesta del servicio ML.
type OptimizerResponse struct {
	Scenario           string                    `json:"scenario"`
	OptimizedInventory []OptimizerRecommendation `json:"optimized_inventory"`
}
