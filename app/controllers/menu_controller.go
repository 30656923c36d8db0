package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/cache"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"github.com/tyabelawras/api/pkg/validate"
	"gorm.io/gorm"
)

type MenuController struct {
	catalog *repositories.CatalogRepository
}

func NewMenuController() *MenuController {
	return &MenuController{catalog: repositories.NewCatalogRepository()}
}

type menuInput struct {
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	Price float64 `json:"price" validate:"required,gte=0"`
	Image string  `json:"image" validate:"nullable,url"`
	Type  string  `json:"type" validate:"required,max=100"`
	Kind  string  `json:"kind" validate:"nullable,max=100"`
}

// Index lists the full menu (public, served through the redis cache).
func (c *MenuController) Index(w http.ResponseWriter, r *http.Request) {
	items, err := c.catalog.AllMenuItems()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load menu")
		return
	}
	response.Success(w, items)
}

// Show returns one menu item.
func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	item, err := c.catalog.FindMenuItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Menu item not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load menu item")
		return
	}
	response.Success(w, item)
}

// Store creates a menu item. Accepts JSON, or multipart form-data with an
// "image" file that is saved to the storage disk.
func (c *MenuController) Store(w http.ResponseWriter, r *http.Request) {
	in, errs, err := c.bindMenu(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item := models.MenuItem{
		Name:  in.Name,
		Price: in.Price,
		Image: in.Image,
		Type:  in.Type,
		Kind:  in.Kind,
	}
	if err := orm.DB().Create(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create menu item")
		return
	}

	cache.Forget(repositories.MenuCacheKey) //nolint:errcheck
	response.CreatedMsg(w, "Menu item created successfully", item)
}

// Update edits a menu item; image is replaced only when a new one is sent.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	item, err := c.catalog.FindMenuItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Menu item not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load menu item")
		return
	}

	in, errs, err := c.bindMenu(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item.Name = in.Name
	item.Price = in.Price
	item.Type = in.Type
	item.Kind = in.Kind
	if in.Image != "" {
		item.Image = in.Image
	}

	if err := orm.DB().Save(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update menu item")
		return
	}

	cache.Forget(repositories.MenuCacheKey) //nolint:errcheck
	response.SuccessMsg(w, "Menu item updated successfully", item)
}

// Destroy removes a menu item.
func (c *MenuController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid menu item id")
		return
	}

	item, err := c.catalog.FindMenuItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Menu item not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load menu item")
		return
	}

	if err := orm.DB().Delete(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete menu item")
		return
	}

	cache.Forget(repositories.MenuCacheKey) //nolint:errcheck
	response.SuccessMsg(w, "Menu item deleted successfully", nil)
}

// bindMenu reads a menuInput from either a JSON body or a multipart form.
func (c *MenuController) bindMenu(r *http.Request) (menuInput, map[string]string, error) {
	var in menuInput

	if !isMultipart(r) {
		errs, err := bind.JSON(r, &in)
		return in, errs, err
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return in, nil, errors.New("invalid multipart form")
	}

	in.Name = r.FormValue("name")
	in.Type = r.FormValue("type")
	in.Kind = r.FormValue("kind")
	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, map[string]string{"price": "The price field must be a number."}, nil
		}
		in.Price = price
	}

	if fhs := r.MultipartForm.File["image"]; len(fhs) > 0 {
		url, err := saveUpload(fhs[0], "menu")
		if err != nil {
			return in, nil, err
		}
		in.Image = url
	}

	errs := validate.Struct(&in)
	if validate.HasErrors(errs) {
		return in, errs, nil
	}
	return in, nil, nil
}
