package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/devicepos-api/internal/application/analytics"
	"github.com/jhoicas/devicepos-api/internal/application/auth"
	"github.com/jhoicas/devicepos-api/internal/application/catalog"
	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/application/sales"
	"github.com/jhoicas/devicepos-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/devicepos-api/internal/interfaces/http"
	"github.com/jhoicas/devicepos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de la API completa sobre el driver en memoria
// ──────────────────────────────────────────────────────────────────────────────

func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	devices, ledger := store.Devices(), store.Sales()

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Use(apphttp.RequestLogger(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog:   catalog.NewCatalogUseCase(devices),
		Sales:     sales.NewSaleUseCase(memory.NewTxRunner(store), devices, ledger, sales.Config{AffinityEnabled: true}, logger.Nop(), nil),
		Analytics: appanalytics.NewAnalyticsUseCase(ledger, devices),
		Dashboard: appanalytics.NewDashboardUseCase(ledger, devices),
		Inventory: appanalytics.NewInventoryReportUseCase(devices),
		Auth:      auth.NewAuthUseCase(store.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		JWTSecret: testJWTSecret,
	})
	return app
}

// call envía method+path con body JSON opcional y el header Authorization dado.
func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seedCatalog crea un móvil (stock 5) y un cargador (stock 10) con el rol owner.
func seedCatalog(t *testing.T, app *fiber.App) (phone, charger dto.DeviceResponse) {
	t.Helper()
	owner := tokenForRole(t, "owner")

	resp := call(t, app, http.MethodPost, "/api/devices", owner, map[string]any{
		"name": "iPhone 15", "device_type": "mobile", "manufacturer": "Apple",
		"cost_price": 600, "sales_price": 900, "final_price": 850, "inventory_qty": 5, "camera_mp": 48,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	phone = decode[dto.DeviceResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/addons", owner, map[string]any{
		"name": "Cargador USB-C", "category": "Charger",
		"cost_price": 5, "sales_price": 20, "inventory_qty": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	charger = decode[dto.DeviceResponse](t, resp)
	return phone, charger
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistrarVentaYConsultarAnalitica(t *testing.T) {
	app := buildAPI(t)
	phone, charger := seedCatalog(t, app)

	resp := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, "cashier"), map[string]any{
		"payment_method": "cash",
		"items": []map[string]any{
			{"uid": phone.UID, "quantity_sold": 2},
			{"uid": charger.UID},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[dto.SaleResponse](t, resp)
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, "1720", sale.TotalPrice.String(), "2×850 + 1×20")
	assert.Equal(t, 1, sale.Items[1].QuantitySold, "cantidad omitida = 1")

	owner := tokenForRole(t, "owner")
	resp = call(t, app, http.MethodGet, "/api/devices/"+phone.UID, owner, nil)
	got := decode[dto.DeviceResponse](t, resp)
	assert.Equal(t, 3, got.InventoryQty)
	assert.Equal(t, 2, got.SoldQty)
	assert.Contains(t, got.AlsoBoughtTogether, "Cargador USB-C")

	resp = call(t, app, http.MethodGet, "/api/addons/"+charger.UID, owner, nil)
	addon := decode[dto.DeviceResponse](t, resp)
	require.NotNil(t, addon.SoldWithDevice)
	assert.Equal(t, 1, *addon.SoldWithDevice)

	resp = call(t, app, http.MethodGet, "/api/sales/analytics/realtime", owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rt := decode[dto.RealtimeAnalyticsDTO](t, resp)
	assert.Equal(t, 1, rt.LastHour.TotalSales)
	assert.Equal(t, 3, rt.Last24Hours.TotalItemsSold)

	resp = call(t, app, http.MethodGet, "/api/sales/analytics/total-profit", owner, nil)
	profit := decode[dto.TotalProfitDTO](t, resp)
	assert.Equal(t, "515", profit.TotalProfit.String(), "(850-600)×2 + (20-5)×1")

	resp = call(t, app, http.MethodGet, "/api/sales/correlation-analytics", owner, nil)
	rows := decode[[]dto.CorrelationRowDTO](t, resp)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mobile", rows[0].Device)
	assert.Equal(t, 100, rows[0].Charger)

	cashier := tokenForRole(t, "cashier")
	resp = call(t, app, http.MethodGet, "/api/sales", cashier, nil)
	list := decode[dto.SaleListResponse](t, resp)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 20, list.Page.Limit, "límite por defecto")
	require.Len(t, list.Items, 1)

	resp = call(t, app, http.MethodGet, "/api/sales?limit=101", cashier, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_VentaSinStock_NoDescuentaNada(t *testing.T) {
	app := buildAPI(t)
	phone, charger := seedCatalog(t, app)
	cashier := tokenForRole(t, "cashier")

	resp := call(t, app, http.MethodPost, "/api/sales", cashier, map[string]any{
		"payment_method": "card",
		"items": []map[string]any{
			{"uid": charger.UID, "quantity_sold": 1},
			{"uid": phone.UID, "quantity_sold": 6},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "iPhone 15")

	resp = call(t, app, http.MethodGet, "/api/addons/"+charger.UID, cashier, nil)
	got := decode[dto.DeviceResponse](t, resp)
	assert.Equal(t, 10, got.InventoryQty, "la primera línea no debe quedar descontada")

	resp = call(t, app, http.MethodGet, "/api/sales", cashier, nil)
	list := decode[dto.SaleListResponse](t, resp)
	assert.Empty(t, list.Items)
}

func TestAPI_VentaUIDInexistente_Retorna404(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, "cashier"), map[string]any{
		"payment_method": "cash",
		"items":          []map[string]any{{"uid": "no-existe"}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Contains(t, body.Message, "no-existe")
}

func TestAPI_VentaSinItems_Retorna400ConDetalle(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodPost, "/api/sales", tokenForRole(t, "cashier"), map[string]any{
		"payment_method": "cash",
		"items":          []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Details, "items")
}

func TestAPI_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildAPI(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "cashier"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CashierNoAccedeAnaliticaNiEscrituraCatalogo(t *testing.T) {
	app := buildAPI(t)
	cashier := tokenForRole(t, "cashier")

	for _, path := range []string{
		"/api/sales/analytics/realtime",
		"/api/sales/analytics/dashboard",
		"/api/sales/correlation-analytics",
		"/api/inventory/turnaround-times",
		"/api/users",
	} {
		resp := call(t, app, http.MethodGet, path, cashier, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
	}

	resp := call(t, app, http.MethodPost, "/api/devices", cashier, map[string]any{"name": "X", "device_type": "mobile"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/devices", "", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo e inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CatalogoFamiliasYAjusteDeStock(t *testing.T) {
	app := buildAPI(t)
	phone, charger := seedCatalog(t, app)
	owner := tokenForRole(t, "owner")

	resp := call(t, app, http.MethodGet, "/api/addons/"+phone.UID, owner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "un móvil no es visible por /addons")

	resp = call(t, app, http.MethodGet, "/api/devices", owner, nil)
	list := decode[dto.DeviceListResponse](t, resp)
	require.Len(t, list.Items, 1, "el listado de devices excluye accesorios")
	assert.Equal(t, "iPhone 15", list.Items[0].Name)

	resp = call(t, app, http.MethodPost, "/api/devices", owner, map[string]any{"name": "iPhone 15", "device_type": "mobile"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "nombre duplicado")

	resp = call(t, app, http.MethodPatch, "/api/addons/"+charger.UID+"/stock", owner, map[string]any{"quantity": 5, "action": "add"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	adj := decode[dto.StockAdjustResponse](t, resp)
	assert.Equal(t, 15, adj.NewInventoryQty)

	resp = call(t, app, http.MethodPatch, "/api/devices/"+phone.UID+"/stock", owner, map[string]any{"quantity": 9, "action": "subtract"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = call(t, app, http.MethodPatch, "/api/devices/"+phone.UID+"/stock", owner, map[string]any{"quantity": 1, "action": "steal"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/inventory/mobile", owner, nil)
	stats := decode[dto.InventoryStatsDTO](t, resp)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, 5, stats.TotalInventory)

	resp = call(t, app, http.MethodGet, "/api/inventory/summary", owner, nil)
	summary := decode[dto.InventorySummaryDTO](t, resp)
	assert.Equal(t, 5, summary.TotalInventory, "el cargador (15 unidades) no suma en los totales")

	resp = call(t, app, http.MethodDelete, "/api/devices/"+phone.UID, owner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, app, http.MethodDelete, "/api/devices/"+phone.UID, owner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_SignupLoginYAdministracion(t *testing.T) {
	app := buildAPI(t)

	resp := call(t, app, http.MethodPost, "/api/users/signup", tokenForRole(t, "admin"), map[string]any{"username": "duena", "password": "secreto", "role": "owner"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	signup := decode[dto.AuthResponse](t, resp)
	assert.Equal(t, "owner", signup.User.Role)

	resp = call(t, app, http.MethodPost, "/api/users/signup", "", map[string]any{"username": "duena", "password": "secreto"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/users/signup", "", map[string]any{"username": "caja", "password": "123"})
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body.Details, "password")

	resp = call(t, app, http.MethodPost, "/api/users/signup", "", map[string]any{"username": "caja", "password": "123456"})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/users/login", "", map[string]any{"username": "duena", "password": "malo"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/users/login", "", map[string]any{"username": "duena", "password": "secreto"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	login := decode[dto.AuthResponse](t, resp)
	owner := "Bearer " + login.Token

	resp = call(t, app, http.MethodGet, "/api/users?role=cashier", owner, nil)
	users := decode[[]dto.UserResponse](t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "caja", users[0].Username)

	resp = call(t, app, http.MethodPatch, "/api/users/caja", owner, map[string]any{"role": "manager"})
	updated := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "manager", updated.Role)

	resp = call(t, app, http.MethodDelete, "/api/users/caja", owner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, app, http.MethodDelete, "/api/users/caja", owner, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_SignupAnonimoNoPuedeElegirRolDeGestion(t *testing.T) {
	app := buildAPI(t)

	for _, role := range []string{"owner", "manager", "admin"} {
		resp := call(t, app, http.MethodPost, "/api/users/signup", "", map[string]any{"username": "intruso", "password": "secreto", "role": role})
		body := decode[dto.ErrorResponse](t, resp)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, role)
		assert.Equal(t, "FORBIDDEN", body.Code)
	}

	resp := call(t, app, http.MethodPost, "/api/users/signup", tokenForRole(t, "cashier"), map[string]any{"username": "intruso", "password": "secreto", "role": "owner"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "un cashier tampoco crea owners")

	resp = call(t, app, http.MethodPost, "/api/users/signup", "Bearer token.invalido.aqui", map[string]any{"username": "intruso", "password": "secreto"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token presente pero inválido")

	resp = call(t, app, http.MethodPost, "/api/users/login", "", map[string]any{"username": "intruso", "password": "secreto"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "ningún intento creó el usuario")

	resp = call(t, app, http.MethodPost, "/api/users/signup", "", map[string]any{"username": "caja", "password": "secreto"})
	signup := decode[dto.AuthResponse](t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "cashier", signup.User.Role)

	resp = call(t, app, http.MethodGet, "/api/sales/analytics/total-profit", "Bearer "+signup.Token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAPI_RutaDesconocida_Retorna404JSON(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodGet, "/api/no-existe", "", nil)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
