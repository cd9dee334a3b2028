package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/ports"
	"github.com/jhoicas/gridaura-api/internal/domain"
)

// Verificar en tiempo de compilación que OptimizerClient implementa InventoryOptimizer.
var _ ports.InventoryOptimizer = (*OptimizerClient)(nil)

const (
	optimizePath     = "/optimize_inventory"
	maxResponseBytes = 1 << 20
)

// OptimizerClient adaptador HTTP del servicio ML de optimización de inventario.
// POST {baseURL}/optimize_inventory con {materials, simulation_scenario}.
type OptimizerClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOptimizerClient construye el adaptador. Si baseURL está vacío las llamadas devuelven
// domain.ErrUpstream en lugar de intentar la red.
func NewOptimizerClient(baseURL string, timeout time.Duration) *OptimizerClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OptimizerClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type optimizerError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// Optimize envía la exportación del ledger y devuelve las recomendaciones.
// Cualquier falla (red, timeout, HTTP != 200, cuerpo inválido) sale envuelta en domain.ErrUpstream.
func (c *OptimizerClient) Optimize(ctx context.Context, in dto.OptimizerRequest) (*dto.OptimizerResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: ML_BASE_URL no configurado", domain.ErrUpstream)
	}

	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("optimizer: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+optimizePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("optimizer: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrUpstream, ctx.Err())
		}
		return nil, fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		var e optimizerError
		if jsonErr := json.Unmarshal(raw, &e); jsonErr == nil && (e.Error != "" || e.Detail != "") {
			return nil, fmt.Errorf("%w: optimizer HTTP %d: %s%s", domain.ErrUpstream, resp.StatusCode, e.Error, e.Detail)
		}
		return nil, fmt.Errorf("%w: optimizer HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, truncate(string(raw), 256))
	}

	var out dto.OptimizerResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: deserializar respuesta: %v", domain.ErrUpstream, err)
	}
	if out.OptimizedInventory == nil {
		return nil, fmt.Errorf("%w: respuesta sin optimized_inventory", domain.ErrUpstream)
	}
	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
