package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gridaura-api/internal/application/auth"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/jhoicas/gridaura-api/internal/application/inventory"
	"github.com/jhoicas/gridaura-api/internal/application/usecase"
	"github.com/jhoicas/gridaura-api/internal/domain/entity"
	apphttp "github.com/jhoicas/gridaura-api/internal/interfaces/http"
	"github.com/jhoicas/gridaura-api/internal/testutil"
	"github.com/shopspring/decimal"
)

type stubOptimizer struct {
	resp *dto.OptimizerResponse
	err  error
}

func (s *stubOptimizer) Optimize(_ context.Context, _ dto.OptimizerRequest) (*dto.OptimizerResponse, error) {
	return s.resp, s.err
}

type nopMailer struct{}

func (nopMailer) SendOTP(context.Context, string, string, time.Time) error { return nil }

type apiFixture struct {
	t         *testing.T
	app       *fiber.App
	store     *testutil.Store
	optimizer *stubOptimizer
	token     string
}

func newAPIFixture(t *testing.T, role string) *apiFixture {
	t.Helper()
	store := testutil.NewStore()
	tx := store.TxRunner()
	opt := &stubOptimizer{resp: &dto.OptimizerResponse{Scenario: "default"}}
	projectUC := usecase.NewProjectUseCase(store.Projects(), store.Assets(), store.ProjectMaterials())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:            auth.NewAuthUseCase(store.Users(), nopMailer{}, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, 0),
		MaterialUC:        usecase.NewMaterialUseCase(store.Materials(), nil),
		Ledger:            inventory.NewLedgerUseCase(tx, store.Inventories(), store.Movements(), store.Materials(), nil),
		Optimization:      inventory.NewOptimizationUseCase(store.Inventories(), store.Materials(), store.Movements(), store.ProjectMaterials(), opt, nil),
		ProjectMaterialUC: usecase.NewProjectMaterialUseCase(tx, store.ProjectMaterials(), store.Materials()),
		ProjectUC:         projectUC,
		AssetUC:           usecase.NewAssetUseCase(tx, store.Assets()),
		VendorUC:          usecase.NewVendorUseCase(store.Vendors(), store.Materials()),
		ProcurementUC:     usecase.NewProcurementUseCase(store.ProcurementOrders(), store.Projects(), store.Materials(), store.Vendors()),
		ReportUC:          usecase.NewReportUseCase(store.Reports(), projectUC, nil, nil, nil),
		JWTSecret:         testJWTSecret,
		ServiceName:       "gridaura-test",
	})

	require.NoError(t, store.Materials().Create(context.Background(), &entity.Material{
		ID: "mat-steel", Code: "STL01", Name: "Steel", Category: "Structural", Unit: "kg",
		CostPerUnit: decimal.NewFromInt(65), CreatedAt: time.Now(),
	}))
	return &apiFixture{t: t, app: app, store: store, optimizer: opt, token: tokenForRole(t, role)}
}

func (f *apiFixture) do(method, path string, body any) (int, []byte) {
	f.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", f.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(f.t, err)
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(f.t, err)
	return resp.StatusCode, buf.Bytes()
}

func (f *apiFixture) createRow(location string, qty int) dto.InventoryResponse {
	f.t.Helper()
	status, body := f.do(http.MethodPost, "/api/inv", map[string]any{"material": "mat-steel", "location": location, "availableQty": qty})
	require.Equal(f.t, http.StatusCreated, status, string(body))
	var out dto.InventoryResponse
	require.NoError(f.t, json.Unmarshal(body, &out))
	return out
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestInventoryAPI_ReserveConsumeScenario(t *testing.T) {
	f := newAPIFixture(t, entity.RoleStoreKeeper)
	row := f.createRow("Delhi", 1000)
	require.NotNil(t, row.Material)
	assert.Equal(t, "Steel", row.Material.Name)

	status, body := f.do(http.MethodPut, "/api/inv/"+row.ID+"/reserve", map[string]any{"quantity": 300})
	require.Equal(t, http.StatusOK, status, string(body))
	var out dto.InventoryResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.AvailableQty.Equal(decimal.NewFromInt(700)))
	assert.True(t, out.ReservedQty.Equal(decimal.NewFromInt(300)))

	status, _ = f.do(http.MethodPut, "/api/inv/"+row.ID+"/decrease", map[string]any{"quantity": 700})
	require.Equal(t, http.StatusOK, status)

	status, body = f.do(http.MethodPut, "/api/inv/"+row.ID+"/decrease", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient stock", decodeError(t, body).Message)

	status, body = f.do(http.MethodPut, "/api/inv/"+row.ID+"/reserve", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient available stock to reserve", decodeError(t, body).Message)

	status, body = f.do(http.MethodPut, "/api/inv/"+row.ID+"/release", map[string]any{"quantity": 301})
	assert.Equal(t, http.StatusBadRequest, status)
	released := decodeError(t, body)
	assert.Equal(t, "INSUFFICIENT_RESERVATION", released.Code)
	assert.Equal(t, "Not enough reserved stock to release", released.Message)
}

func TestInventoryAPI_RejectsQuantityBeyondColumnScale(t *testing.T) {
	f := newAPIFixture(t, entity.RoleStoreKeeper)
	row := f.createRow("Delhi", 1)

	status, body := f.do(http.MethodPut, "/api/inv/"+row.ID+"/reserve", map[string]any{"quantity": 0.00005})
	assert.Equal(t, http.StatusBadRequest, status, string(body))
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)

	status, _ = f.do(http.MethodPut, "/api/inv/"+row.ID+"/reserve", map[string]any{"quantity": 0.0001})
	assert.Equal(t, http.StatusOK, status)
}

func TestInventoryAPI_Validation(t *testing.T) {
	f := newAPIFixture(t, entity.RoleEngineer)
	row := f.createRow("Delhi", 10)

	status, body := f.do(http.MethodPut, "/api/inv/"+row.ID+"/increase", map[string]any{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)

	status, body = f.do(http.MethodPost, "/api/inv", map[string]any{"location": "Delhi"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)

	status, body = f.do(http.MethodPost, "/api/inv", map[string]any{"material": "ghost", "location": "Delhi"})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	status, body = f.do(http.MethodPost, "/api/inv", map[string]any{"material": "mat-steel", "location": "Delhi"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DUPLICATE", decodeError(t, body).Code)

	status, _ = f.do(http.MethodPut, "/api/inv/ghost/increase", map[string]any{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestInventoryAPI_OptimizationPlaceholderAndRun(t *testing.T) {
	f := newAPIFixture(t, entity.RoleProjectManager)
	row := f.createRow("Delhi", 10)

	status, body := f.do(http.MethodGet, "/api/inv/"+row.ID+"/optimization", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"No optimization data yet"}`, string(body))

	f.optimizer.resp = &dto.OptimizerResponse{Scenario: "monsoon", OptimizedInventory: []dto.OptimizerRecommendation{
		{Name: "steel", OptimalStockLevel: decimal.NewFromInt(40), Comment: "ok"},
	}}
	status, body = f.do(http.MethodPost, "/api/inv/optimize", map[string]any{"simulation_scenario": "monsoon"})
	require.Equal(t, http.StatusOK, status, string(body))
	var run dto.OptimizeInventoryResponse
	require.NoError(t, json.Unmarshal(body, &run))
	assert.Equal(t, 1, run.Applied)

	status, body = f.do(http.MethodGet, "/api/inv/"+row.ID+"/optimization", nil)
	require.Equal(t, http.StatusOK, status)
	var data dto.OptimizedDataResponse
	require.NoError(t, json.Unmarshal(body, &data))
	assert.Equal(t, "monsoon", data.Scenario)
	assert.True(t, data.OptimalStockLevel.Equal(decimal.NewFromInt(40)))
}

func TestInventoryAPI_OptimizerDown(t *testing.T) {
	f := newAPIFixture(t, entity.RoleAdmin)
	f.createRow("Delhi", 10)
	f.optimizer.err = errors.New("dial tcp: connection refused")

	status, body := f.do(http.MethodPost, "/api/inv/optimize", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "UPSTREAM", decodeError(t, body).Code)
}

func TestInventoryAPI_DeleteAndMovements(t *testing.T) {
	f := newAPIFixture(t, entity.RoleStoreKeeper)
	row := f.createRow("Delhi", 10)
	f.do(http.MethodPut, "/api/inv/"+row.ID+"/increase", map[string]any{"quantity": 5})

	status, body := f.do(http.MethodGet, "/api/inv/"+row.ID+"/movements?limit=500", nil)
	require.Equal(t, http.StatusOK, status)
	var page dto.InventoryMovementListResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 100, page.Page.Limit)
	require.Len(t, page.Items, 2)
	assert.Equal(t, entity.MovementTypeIN, page.Items[0].Type)

	status, body = f.do(http.MethodDelete, "/api/inv/"+row.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Inventory deleted"}`, string(body))

	status, _ = f.do(http.MethodGet, "/api/inv/"+row.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMaterialAPI_WritesRequireAdmin(t *testing.T) {
	body := map[string]any{"code": "CBL01", "name": "ACSR Cable", "category": "Conductor", "unit": "m"}

	engineer := newAPIFixture(t, entity.RoleEngineer)
	status, _ := engineer.do(http.MethodPost, "/api/materials", body)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = engineer.do(http.MethodGet, "/api/materials", nil)
	assert.Equal(t, http.StatusOK, status)

	admin := newAPIFixture(t, entity.RoleAdmin)
	status, _ = admin.do(http.MethodPost, "/api/materials", body)
	assert.Equal(t, http.StatusCreated, status)
	status, resp := admin.do(http.MethodPost, "/api/materials", body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "DUPLICATE", decodeError(t, resp).Code)

	// El material sembrado tiene una fila en el ledger: no se puede borrar.
	admin.createRow("Delhi", 1)
	status, resp = admin.do(http.MethodDelete, "/api/materials/mat-steel", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "REFERENCED", decodeError(t, resp).Code)
}

func TestHealthIsPublic(t *testing.T) {
	f := newAPIFixture(t, entity.RoleEngineer)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/inv", nil)
	resp, err = f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
