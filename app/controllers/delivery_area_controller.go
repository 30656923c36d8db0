package controllers

import (
	"errors"
	"net/http"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"gorm.io/gorm"
)

type DeliveryAreaController struct {
	catalog *repositories.CatalogRepository
}

func NewDeliveryAreaController() *DeliveryAreaController {
	return &DeliveryAreaController{catalog: repositories.NewCatalogRepository()}
}

type areaInput struct {
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

// Index lists every delivery area with its fee (public).
func (c *DeliveryAreaController) Index(w http.ResponseWriter, r *http.Request) {
	areas, err := c.catalog.AllAreas()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load delivery areas")
		return
	}
	response.Success(w, areas)
}

// Store creates a delivery area. Names are unique.
func (c *DeliveryAreaController) Store(w http.ResponseWriter, r *http.Request) {
	var in areaInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if _, err := c.catalog.FindAreaByName(in.Name); err == nil {
		response.Error(w, http.StatusBadRequest, "Delivery area already exists")
		return
	}

	area := models.DeliveryArea{Name: in.Name, Price: in.Price}
	if err := orm.DB().Create(&area); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create delivery area")
		return
	}
	response.CreatedMsg(w, "Delivery area created successfully", area)
}

// Update edits a delivery area's name or fee.
func (c *DeliveryAreaController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid delivery area id")
		return
	}

	var area models.DeliveryArea
	if err := orm.DB().Model(&models.DeliveryArea{}).Where("id = ?", id).First(&area); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Delivery area not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load delivery area")
		return
	}

	var in areaInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	area.Name = in.Name
	area.Price = in.Price
	if err := orm.DB().Save(&area); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update delivery area")
		return
	}
	response.SuccessMsg(w, "Delivery area updated successfully", area)
}

// Destroy removes a delivery area.
func (c *DeliveryAreaController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid delivery area id")
		return
	}

	var area models.DeliveryArea
	if err := orm.DB().Model(&models.DeliveryArea{}).Where("id = ?", id).First(&area); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Delivery area not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load delivery area")
		return
	}

	if err := orm.DB().Delete(&area); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete delivery area")
		return
	}
	response.SuccessMsg(w, "Delivery area deleted successfully", nil)
}
