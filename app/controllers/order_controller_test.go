package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tyabelawras/api/app/controllers"
	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/auth"
	"github.com/tyabelawras/api/pkg/database"
	"github.com/tyabelawras/api/pkg/router"
	"github.com/tyabelawras/api/pkg/ws"
)

var dbSeq atomic.Int64

type apiEnvelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ctrl%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.MenuItem{}, &models.DeliveryArea{},
		&models.Order{}, &models.OrderItem{},
		&models.Announcement{}, &models.GalleryImage{}, &models.Video{},
		&models.WorkingTime{},
		&models.Rating{}, &models.Contact{}, &models.NewsletterSubscriber{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

// orderServer wires just the order routes, without auth middleware, so the
// handlers can be exercised directly.
func orderServer(t *testing.T, hub *ws.Hub) *httptest.Server {
	t.Helper()

	c := controllers.NewOrderController()
	r := router.New()
	r.Post("/api/orders", "orders.store", c.Store)
	r.Get("/api/orders", "orders.index", c.Index)
	r.Get("/api/orders/{id}", "orders.show", c.Show)
	r.Put("/api/orders/{id}", "orders.update", c.UpdateStatus)
	if hub != nil {
		r.Get("/ws/orders", "ws.orders", c.Notifications(hub))
	}

	srv := httptest.NewServer(r.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) (*http.Response, apiEnvelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	return resp, env
}

func validOrderBody(menuItemID uint) map[string]interface{} {
	return map[string]interface{}{
		"items":           []map[string]interface{}{{"menuItem": menuItemID, "quantity": 2}},
		"deliveryArea":    "Batna Centre",
		"deliveryFee":     300,
		"customerName":    "Amine",
		"customerPhone":   "0551234567",
		"deliveryAddress": "Rue de la Liberte 12",
	}
}

func seedCatalog(t *testing.T, db *gorm.DB) models.MenuItem {
	t.Helper()
	pizza := models.MenuItem{Name: "Pizza Margherita", Price: 500, Type: "food"}
	require.NoError(t, db.Create(&pizza).Error)
	require.NoError(t, db.Create(&models.DeliveryArea{Name: "Batna Centre", Price: 300}).Error)
	return pizza
}

func TestOrderIndexEmptyIs404(t *testing.T) {
	setupDB(t)
	srv := orderServer(t, nil)

	resp, err := http.Get(srv.URL + "/api/orders")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var env apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "No orders found", env.Message)
}

func TestOrderStoreCreates(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	resp, env := postJSON(t, srv.URL+"/api/orders", validOrderBody(pizza.ID))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Order created successfully", env.Message)

	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, 1300.0, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestOrderStoreFeeMismatch(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	body := validOrderBody(pizza.ID)
	body["deliveryFee"] = 250

	resp, env := postJSON(t, srv.URL+"/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Delivery fee does not match area", env.Message)
}

func TestOrderStoreUnknownArea(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	body := validOrderBody(pizza.ID)
	body["deliveryArea"] = "Atlantis"

	resp, env := postJSON(t, srv.URL+"/api/orders", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid delivery area", env.Message)
}

func TestOrderStoreValidation(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	body := validOrderBody(pizza.ID)
	body["customerPhone"] = "12345" // not an Algerian mobile number

	resp, env := postJSON(t, srv.URL+"/api/orders", body)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "customerPhone")
}

func TestOrderUpdateStatus(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	_, env := postJSON(t, srv.URL+"/api/orders", validOrderBody(pizza.ID))
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))

	raw, _ := json.Marshal(map[string]string{"status": "in_delivery"})
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/orders/%d", srv.URL, order.ID), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, "Order updated successfully", updated.Message)
}

func TestOrderUpdateStatusRejectsUnknown(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	_, env := postJSON(t, srv.URL+"/api/orders", validOrderBody(pizza.ID))
	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))

	raw, _ := json.Marshal(map[string]string{"status": "shipped"})
	req, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/api/orders/%d", srv.URL, order.ID), bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var rejected apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rejected))
	assert.Equal(t, "Invalid status", rejected.Message)
}

// A cart line with quantity below one must never reach the database; the
// payload fails field validation before the service runs.
func TestOrderStoreRejectsBadQuantity(t *testing.T) {
	db := setupDB(t)
	pizza := seedCatalog(t, db)
	srv := orderServer(t, nil)

	for _, qty := range []int{0, -3} {
		body := validOrderBody(pizza.ID)
		body["items"] = []map[string]interface{}{{"menuItem": pizza.ID, "quantity": qty}}

		resp, env := postJSON(t, srv.URL+"/api/orders", body)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "quantity %d", qty)
		assert.Contains(t, env.Errors, "items.0.quantity")
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestNotificationsRequiresToken(t *testing.T) {
	setupDB(t)
	hub := ws.NewHub()
	go hub.Run()
	srv := orderServer(t, hub)

	resp, err := http.Get(srv.URL + "/ws/orders")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws/orders?token=garbage")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNotificationsRejectsNonAdmin(t *testing.T) {
	setupDB(t)
	hub := ws.NewHub()
	go hub.Run()
	srv := orderServer(t, hub)

	token, err := auth.GenerateToken(1, "customer")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/ws/orders?token=" + token)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
