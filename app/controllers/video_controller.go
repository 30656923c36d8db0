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

// maxVideoFiles caps one upload request.
const maxVideoFiles = 5

type VideoController struct {
	uploads *workerpool.Pool
}

func NewVideoController(uploads *workerpool.Pool) *VideoController {
	return &VideoController{uploads: uploads}
}

// Index lists all videos (public).
func (c *VideoController) Index(w http.ResponseWriter, r *http.Request) {
	var videos []models.Video
	if err := orm.DB().Model(&models.Video{}).Order("created_at desc").Get(&videos); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load videos")
		return
	}
	response.Success(w, videos)
}

// Store uploads up to 5 videos in one multipart request under "videos".
func (c *VideoController) Store(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["videos"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No videos provided")
		return
	}
	if len(files) > maxVideoFiles {
		response.Error(w, http.StatusBadRequest, "At most 5 videos per upload")
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
			urls[i], uploadErrs[i] = saveUpload(fh, "videos")
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

	var created []models.Video
	for i := range files {
		if uploadErrs[i] != nil {
			response.Error(w, http.StatusInternalServerError, "Could not store one or more videos")
			return
		}
		v := models.Video{Video: urls[i]}
		if err := orm.DB().Create(&v); err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not save video")
			return
		}
		created = append(created, v)
	}

	response.CreatedMsg(w, "Videos uploaded successfully", created)
}

// Destroy removes one video.
func (c *VideoController) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid video id")
		return
	}

	var v models.Video
	if err := orm.DB().Model(&models.Video{}).Where("id = ?", id).First(&v); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(w, "Video not found")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Could not load video")
		return
	}

	if err := orm.DB().Delete(&v); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete video")
		return
	}
	response.SuccessMsg(w, "Video deleted successfully", nil)
}
