package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/pkg/event"
	"github.com/tyabelawras/api/pkg/logger"
	"github.com/tyabelawras/api/pkg/metrics"
	"gorm.io/gorm"
)

// EventOrderCreated is fired after an order is persisted. The payload is
// the *models.Order with items loaded.
const EventOrderCreated = "order.created"

// Domain errors mapped to 400 by the controller.
var (
	ErrAreaNotFound    = errors.New("delivery area not found")
	ErrFeeMismatch     = errors.New("delivery fee does not match area")
	ErrMenuItemInvalid = errors.New("order references an unavailable menu item")
	ErrBadQuantity     = errors.New("quantity must be at least 1")
	ErrBadStatus       = errors.New("invalid order status")
)

// OrderInput is the public order payload. Prices are reconciled against
// the database, never trusted.
type OrderInput struct {
	Items           []OrderItemInput `json:"items" validate:"required"`
	DeliveryArea    string           `json:"deliveryArea" validate:"required"`
	DeliveryFee     float64          `json:"deliveryFee" validate:"gte=0"`
	CustomerName    string           `json:"customerName" validate:"required,min=1,max=100"`
	CustomerPhone   string           `json:"customerPhone" validate:"required,phone"`
	DeliveryAddress string           `json:"deliveryAddress" validate:"required,min=1,max=200"`
	Notes           string           `json:"notes" validate:"nullable,max=1000"`
	Subtotal        *float64         `json:"subtotal"` // optional client cross-check
}

// OrderItemInput is one requested line item.
type OrderItemInput struct {
	MenuItem uint `json:"menuItem" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,gte=1"`
}

type OrderService struct {
	orders  *repositories.OrderRepository
	catalog *repositories.CatalogRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:  repositories.NewOrderRepository(),
		catalog: repositories.NewCatalogRepository(),
	}
}

// Create validates in against the catalog, recomputes all money amounts
// server-side, persists the order and fires the new-order notification.
//
// The price lookups and the insert are not wrapped in a transaction; a
// concurrent menu edit can race the snapshot. Accepted: the snapshot on the
// order item is authoritative once written.
func (s *OrderService) Create(in OrderInput) (models.Order, error) {
	area, err := s.catalog.FindAreaByName(in.DeliveryArea)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrAreaNotFound
		}
		return models.Order{}, fmt.Errorf("order: area lookup: %w", err)
	}

	if round2(area.Price) != round2(in.DeliveryFee) {
		return models.Order{}, ErrFeeMismatch
	}
	fee := round2(area.Price)

	var (
		items    []models.OrderItem
		subtotal float64
	)
	for _, line := range in.Items {
		if line.Quantity < 1 {
			return models.Order{}, ErrBadQuantity
		}
		item, err := s.catalog.FindMenuItem(line.MenuItem)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Order{}, ErrMenuItemInvalid
			}
			return models.Order{}, fmt.Errorf("order: menu lookup: %w", err)
		}
		if item.Price <= 0 {
			return models.Order{}, ErrMenuItemInvalid
		}

		subtotal += item.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   line.Quantity,
		})
	}
	subtotal = round2(subtotal)

	// Client subtotal is advisory only; log the drift, persist our number.
	if in.Subtotal != nil && math.Abs(*in.Subtotal-subtotal) > 0.01 {
		logger.Warn("order: client subtotal mismatch",
			"client", *in.Subtotal, "server", subtotal)
	}

	order := models.Order{
		Items:           items,
		Subtotal:        subtotal,
		DeliveryFee:     fee,
		TotalAmount:     round2(subtotal + fee),
		DeliveryArea:    area.Name,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		DeliveryAddress: in.DeliveryAddress,
		Notes:           in.Notes,
		PaymentMethod:   models.PaymentCashOnDelivery,
		Status:          models.StatusPending,
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: create: %w", err)
	}

	metrics.OrdersCreated.Inc()

	// Best effort: listeners run in their own goroutines and a missing
	// or failing socket never affects the HTTP response.
	event.FireAsync(EventOrderCreated, &order)

	return order, nil
}

// All returns every order, newest first.
func (s *OrderService) All() ([]models.Order, error) {
	return s.orders.All()
}

// Find loads one order by id.
func (s *OrderService) Find(id uint) (models.Order, error) {
	return s.orders.FindByID(id)
}

// UpdateStatus moves an order to status. Any of the four known statuses is
// accepted from any other.
func (s *OrderService) UpdateStatus(id uint, status string) (models.Order, error) {
	if !models.ValidStatus(status) {
		return models.Order{}, ErrBadStatus
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}

	order.Status = status
	if err := s.orders.Update(&order); err != nil {
		return models.Order{}, fmt.Errorf("order: update status: %w", err)
	}

	return order, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
