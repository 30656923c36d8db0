package controllers

import (
	"errors"
	"net/http"

	"github.com/tyabelawras/api/app/services"
	"github.com/tyabelawras/api/pkg/auth"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/response"
	"github.com/tyabelawras/api/pkg/ws"
	"gorm.io/gorm"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{service: services.NewOrderService()}
}

// Store accepts a public order. All money amounts are recomputed from the
// database before anything is persisted.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.Create(in)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAreaNotFound):
			response.Error(w, http.StatusBadRequest, "Invalid delivery area")
		case errors.Is(err, services.ErrFeeMismatch):
			response.Error(w, http.StatusBadRequest, "Delivery fee does not match area")
		case errors.Is(err, services.ErrMenuItemInvalid):
			response.Error(w, http.StatusBadRequest, "One or more menu items are unavailable")
		case errors.Is(err, services.ErrBadQuantity):
			response.Error(w, http.StatusBadRequest, "Invalid quantity")
		default:
			response.Error(w, http.StatusInternalServerError, "Could not create order")
		}
		return
	}

	response.CreatedMsg(w, "Order created successfully", order)
}

// Index lists all orders for the admin dashboard, newest first.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	orders, err := c.service.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	if len(orders) == 0 {
		response.NotFound(w, "No orders found")
		return
	}
	response.Success(w, orders)
}

// Show returns one order with its items.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	order, err := c.service.Find(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Order not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load order")
		return
	}
	response.Success(w, order)
}

// The status set is checked by the service, not an in= tag, so unknown
// values get the 400 "Invalid status" the admin dashboard expects.
type statusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order between statuses. Transitions are not
// restricted; any known status may follow any other.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var in statusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.service.UpdateStatus(id, in.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadStatus):
			response.Error(w, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(w, "Order not found")
		default:
			response.Error(w, http.StatusInternalServerError, "Could not update order")
		}
		return
	}

	response.SuccessMsg(w, "Order updated successfully", order)
}

// Notifications upgrades the connection to the live order channel.
// Browsers cannot set headers on WebSocket handshakes, so the JWT arrives
// as a query parameter instead of an Authorization header.
func (c *OrderController) Notifications(hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if token == "" {
			response.Unauthorized(w)
			return
		}

		claims, err := auth.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w)
			return
		}
		if claims.Role != "admin" && claims.Role != "superadmin" {
			response.Forbidden(w)
			return
		}

		ws.Upgrade(w, r, hub)
	}
}
