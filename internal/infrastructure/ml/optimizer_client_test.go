package ml

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_PostsExportAndDecodesRecommendations(t *testing.T) {
	var got dto.OptimizerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/optimize_inventory", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"scenario":"monsoon","optimized_inventory":[
			{"name":"Steel","recommended_reorder_point":120.5,"optimal_stock_level":900,"safety_stock":80,
			 "comment":"stock alto","price_trend_info":"estable"}]}`))
	}))
	defer srv.Close()

	c := NewOptimizerClient(srv.URL+"/", time.Second)
	out, err := c.Optimize(context.Background(), dto.OptimizerRequest{
		SimulationScenario: "monsoon",
		Materials: []dto.OptimizerMaterialInput{{
			Name: "Steel", CurrentStock: decimal.NewFromInt(700), Criticality: "high",
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "monsoon", got.SimulationScenario)
	require.Len(t, got.Materials, 1)
	assert.True(t, got.Materials[0].CurrentStock.Equal(decimal.NewFromInt(700)))

	assert.Equal(t, "monsoon", out.Scenario)
	require.Len(t, out.OptimizedInventory, 1)
	assert.True(t, out.OptimizedInventory[0].RecommendedReorderPoint.Equal(decimal.RequireFromString("120.5")))
	assert.Equal(t, "estable", out.OptimizedInventory[0].PriceTrendInfo)
}

func TestOptimize_HTTPErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"model not loaded"}`))
	}))
	defer srv.Close()

	_, err := NewOptimizerClient(srv.URL, time.Second).Optimize(context.Background(), dto.OptimizerRequest{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestOptimize_MalformedBodyIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"scenario":"default"}`))
	}))
	defer srv.Close()

	_, err := NewOptimizerClient(srv.URL, time.Second).Optimize(context.Background(), dto.OptimizerRequest{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestOptimize_TimeoutIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewOptimizerClient(srv.URL, 20*time.Millisecond).Optimize(context.Background(), dto.OptimizerRequest{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestOptimize_NotConfigured(t *testing.T) {
	_, err := NewOptimizerClient("", 0).Optimize(context.Background(), dto.OptimizerRequest{})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
