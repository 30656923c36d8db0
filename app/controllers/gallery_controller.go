package controllers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/tyabelawras/api/app/models"
	"github.com/tyabelawras/api/pkg/orm"
	"github.com/tyabelawras/api/pkg/response"
	"github.com/tyabelawras/api/pkg/workerpool"
	"gorm.io/gorm"
)

// maxGalleryFiles caps one upload request.
const maxGalleryFiles = 10

type GalleryController struct {
	uploads *workerpool.Pool
}

// NewGalleryController shares the upload pool with the video controller so
// total concurrent media writes stay bounded.
func NewGalleryController(uploads *workerpool.Pool) *GalleryController {
	return &GalleryController{uploads: uploads}
}

// Index lists all gallery images (public).
func (c *GalleryController) Index(w http.ResponseWriter, r *http.Request) {
	var images []models.GalleryImage
	if err := orm.DB().Model(&models.GalleryImage{}).Order("created_at desc").Get(&images); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load gallery")
		return
	}
	response.Success(w, images)
}

// Store uploads up to 10 images in one multipart request under "images".
// Files are written through the bounded worker pool; a full pool rejects
// the request with 429 instead of queueing unbounded work.
func (c *GalleryController) Store(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No images provided")
		return
	}
	if len(files) > maxGalleryFiles {
		response.Error(w, http.StatusBadRequest, "At most 10 images per upload")
		return
	}

	urls := make([]string, len(files))
	uploadErrs := make([]error, len(files))
	var wg sync.WaitGroup

	for i, fh := range files {
		i, fh := i, fh
		wg.Add(1)
		err := c.uploads.Submit(func() {
			defer wg.Done()
			urls[i], uploadErrs[i] = saveUpload(fh, "gallery")
		})
		if err != nil {
			wg.Done()
			if errors.Is(err, workerpool.ErrPoolFull) {
				response.Error(w, http.StatusTooManyRequests, "Upload capacity reached, try again shortly")
				return
			}
			response.Error(w, http.StatusInternalServerError, "Could not process upload")
			return
		}
	}
	wg.Wait()

	var created []models.GalleryImage
	for i := range files {
		if uploadErrs[i] != nil {
			response.Error(w, http.StatusInternalServerError, "Could not store one or more images")
			return
		}
		img := models.GalleryImage{Image: urls[i]}
		if err := orm.DB().Create(&img); err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not save gallery image")
			return
		}
		created = append(created, img)
	}

	response.CreatedMsg(w, "Images uploaded successfully", created)
}

// Destroy removes one gallery image.
func (c *GalleryController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid image id")
		return
	}

	var img models.GalleryImage
	if err := orm.DB().Model(&models.GalleryImage{}).Where("id = ?", id).First(&img); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Image not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load image")
		return
	}

	if err := orm.DB().Delete(&img); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete image")
		return
	}
	response.SuccessMsg(w, "Image deleted successfully", nil)
}
