package controllers

import (
	"errors"
	"net/http"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/bind"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"gorm.io/gorm"
)

type RatingController struct{}

func NewRatingController() *RatingController {
	return &RatingController{}
}

type ratingInput struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Rating  int    `json:"rating" validate:"required,integer,gte=1,lte=5"`
	Comment string `json:"comment" validate:"nullable,max=1000"`
}

// Index lists all ratings.
func (c *RatingController) Index(w http.ResponseWriter, r *http.Request) {
	var ratings []models.Rating
	if err := orm.DB().Model(&models.Rating{}).Order("created_at desc").Get(&ratings); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load ratings")
		return
	}
	response.Success(w, ratings)
}

// Store accepts a public rating submission.
func (c *RatingController) Store(w http.ResponseWriter, r *http.Request) {
	var in ratingInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	rating := models.Rating{Name: in.Name, Rating: in.Rating, Comment: in.Comment}
	if err := orm.DB().Create(&rating); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not save rating")
		return
	}
	response.CreatedMsg(w, "Thank you for your feedback", rating)
}

// Destroy removes a rating (admin).
func (c *RatingController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid rating id")
		return
	}

	var rating models.Rating
	if err := orm.DB().Model(&models.Rating{}).Where("id = ?", id).First(&rating); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Rating not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load rating")
		return
	}

	if err := orm.DB().Delete(&rating); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete rating")
		return
	}
	response.SuccessMsg(w, "Rating deleted successfully", nil)
}
