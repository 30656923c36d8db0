package services_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/services"
	"github.com/tyabelawras/api/pkg/database"
	"github.com/tyabelawras/api/pkg/event"
)

var dbSeq atomic.Int64

// setupDB points the shared connection at a fresh in-memory database.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ordersvc%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.MenuItem{}, &models.DeliveryArea{},
		&models.Order{}, &models.OrderItem{},
	))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.MenuItem, models.DeliveryArea) {
	t.Helper()

	pizza := models.MenuItem{Name: "Pizza Margherita", Price: 500, Type: "food", Kind: "pizza"}
	require.NoError(t, db.Create(&pizza).Error)

	area := models.DeliveryArea{Name: "Batna Centre", Price: 300}
	require.NoError(t, db.Create(&area).Error)

	return pizza, area
}

func TestCreateOrderComputesTotals(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	svc := services.NewOrderService()
	order, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 2}},
		DeliveryArea:    area.Name,
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Rue de la Liberte 12",
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, order.Subtotal)
	assert.Equal(t, 300.0, order.DeliveryFee)
	assert.Equal(t, 1300.0, order.TotalAmount)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)

	require.Len(t, order.Items, 1)
	assert.Equal(t, pizza.Name, order.Items[0].Name)
	assert.Equal(t, pizza.Price, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.NotZero(t, order.ID)
}

func TestCreateOrderUnknownArea(t *testing.T) {
	db := setupDB(t)
	pizza, _ := seedCatalog(t, db)

	svc := services.NewOrderService()
	_, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 1}},
		DeliveryArea:    "Atlantis",
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
	})
	assert.ErrorIs(t, err, services.ErrAreaNotFound)
}

func TestCreateOrderFeeMismatch(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	svc := services.NewOrderService()
	_, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 1}},
		DeliveryArea:    area.Name,
		DeliveryFee:     250, // area charges 300
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
	})
	assert.ErrorIs(t, err, services.ErrFeeMismatch)
}

func TestCreateOrderUnknownMenuItem(t *testing.T) {
	db := setupDB(t)
	_, area := seedCatalog(t, db)

	svc := services.NewOrderService()
	_, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: 9999, Quantity: 1}},
		DeliveryArea:    area.Name,
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
	})
	assert.ErrorIs(t, err, services.ErrMenuItemInvalid)
}

func TestCreateOrderRejectsZeroPriceItem(t *testing.T) {
	db := setupDB(t)
	_, area := seedCatalog(t, db)

	free := models.MenuItem{Name: "Sample", Price: 0, Type: "food"}
	require.NoError(t, db.Create(&free).Error)

	svc := services.NewOrderService()
	_, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: free.ID, Quantity: 1}},
		DeliveryArea:    area.Name,
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
	})
	assert.ErrorIs(t, err, services.ErrMenuItemInvalid)
}

// Quantities below one would produce negative money amounts; the service
// refuses them even when the caller skipped payload validation.
func TestCreateOrderRejectsNonPositiveQuantity(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	svc := services.NewOrderService()
	for _, qty := range []int{0, -3} {
		_, err := svc.Create(services.OrderInput{
			Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: qty}},
			DeliveryArea:    area.Name,
			DeliveryFee:     300,
			CustomerName:    "Amine",
			CustomerPhone:   "0551234567",
			DeliveryAddress: "Somewhere 1",
		})
		assert.ErrorIs(t, err, services.ErrBadQuantity, "quantity %d", qty)
	}

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

// A wrong client subtotal is logged, not rejected; the server number wins.
func TestClientSubtotalIsAdvisory(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	wrong := 1.0
	svc := services.NewOrderService()
	order, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 2}},
		DeliveryArea:    area.Name,
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
		Subtotal:        &wrong,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000.0, order.Subtotal)
}

func TestCreateOrderFiresEvent(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	event.Flush()
	defer event.Flush()

	got := make(chan *models.Order, 1)
	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		if o, ok := payload.(*models.Order); ok {
			got <- o
		}
	})

	svc := services.NewOrderService()
	order, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 1}},
		DeliveryArea:    area.Name,
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
	})
	require.NoError(t, err)

	select {
	case published := <-got:
		assert.Equal(t, order.ID, published.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("order.created event never fired")
	}
}

func TestUpdateStatus(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	svc := services.NewOrderService()
	order, err := svc.Create(services.OrderInput{
		Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 1}},
		DeliveryArea:    area.Name,
		DeliveryFee:     300,
		CustomerName:    "Amine",
		CustomerPhone:   "0551234567",
		DeliveryAddress: "Somewhere 1",
	})
	require.NoError(t, err)

	// Any known status is reachable from any other.
	for _, status := range []string{
		models.StatusInDelivery,
		models.StatusDelivered,
		models.StatusPending,
		models.StatusCancelled,
	} {
		updated, err := svc.UpdateStatus(order.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}

	_, err = svc.UpdateStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, services.ErrBadStatus)
}

func TestAllNewestFirst(t *testing.T) {
	db := setupDB(t)
	pizza, area := seedCatalog(t, db)

	svc := services.NewOrderService()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(services.OrderInput{
			Items:           []services.OrderItemInput{{MenuItem: pizza.ID, Quantity: 1}},
			DeliveryArea:    area.Name,
			DeliveryFee:     300,
			CustomerName:    fmt.Sprintf("Client %d", i),
			CustomerPhone:   "0551234567",
			DeliveryAddress: "Somewhere 1",
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond) // distinct created_at timestamps
	}

	orders, err := svc.All()
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "Client 2", orders[0].CustomerName)
}
