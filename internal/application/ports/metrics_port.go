package ports

import "time"

// Resultados posibles de una operación del ledger para métricas.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected" // precondición o validación
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// LedgerMetrics métricas del ledger y del optimizador.
type LedgerMetrics interface {
	LedgerOperation(operation, outcome string)
	OptimizerRequest(elapsed time.Duration, err error)
}

// NopMetrics implementación vacía para cuando las métricas están deshabilitadas.
type NopMetrics struct{}

func (NopMetrics) LedgerOperation(string, string)        {}
func (NopMetrics) OptimizerRequest(time.Duration, error) {}
