package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/app/repositories"
	"github.com/tyabelawras/api/pkg/auth"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/response"
	"gorm.io/gorm"
)

// UserController manages back-office accounts. Routes are gated to
// superadmin in the route table.
type UserController struct {
	users *repositories.UserRepository
}

func NewUserController() *UserController {
	return &UserController{users: repositories.NewUserRepository()}
}

type userInput struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	UserType string `json:"userType" validate:"required,in=admin,superadmin"`
}

type userUpdateInput struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"nullable,min=6"` // blank keeps current
	UserType string `json:"userType" validate:"required,in=admin,superadmin"`
}

// Index lists users with pagination (?page=&limit=).
func (c *UserController) Index(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, pagination, err := c.users.All(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load users")
		return
	}
	response.Success(w, map[string]interface{}{
		"users":      users,
		"pagination": pagination,
	})
}

// Store creates a user account.
func (c *UserController) Store(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	if _, err := c.users.FindByEmail(in.Email); err == nil {
		response.Error(w, http.StatusBadRequest, "Email already in use")
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create user")
		return
	}

	user := models.User{Name: in.Name, Email: in.Email, Password: hash, UserType: in.UserType}
	if err := c.users.Create(&user); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create user")
		return
	}
	response.CreatedMsg(w, "User created successfully", user)
}

// Update edits a user. A blank password keeps the existing one.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := c.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load user")
		return
	}

	var in userUpdateInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user.Name = in.Name
	user.Email = in.Email
	user.UserType = in.UserType
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not update user")
			return
		}
		user.Password = hash
	}

	if err := c.users.Update(&user); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update user")
		return
	}
	response.SuccessMsg(w, "User updated successfully", user)
}

// Destroy removes a user account.
func (c *UserController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := c.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load user")
		return
	}

	if err := c.users.Delete(&user); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete user")
		return
	}
	response.SuccessMsg(w, "User deleted successfully", nil)
}
