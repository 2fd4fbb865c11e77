package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"trading_edu_backend/internal/service"
	"trading_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MediaController handles image/video uploads for case-study exercises.
// The stored URL goes into the exercise's media field.
type MediaController struct {
	Storage *service.StorageService
}

func NewMediaController(storage *service.StorageService) *MediaController {
	return &MediaController{Storage: storage}
}

var allowedMediaExt = map[string]string{
	".jpg":  "image",
	".jpeg": "image",
	".png":  "image",
	".gif":  "image",
	".webp": "image",
	".mp4":  "video",
	".webm": "video",
	".mov":  "video",
}

// @Summary Upload exercise media
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "image or video"
// @Success 201 {object} util.Response
// @Router /api/media/upload [post]
func (c *MediaController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "missing file")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	mediaType, ok := allowedMediaExt[ext]
	if !ok {
		util.BadRequest(ctx, util.ErrUnsupportedMedia.Error())
		return
	}

	tmp := filepath.Join(os.TempDir(), uuid.New().String()+ext)
	if err := ctx.SaveUploadedFile(fileHeader, tmp); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmp)

	data := gin.H{"type": mediaType}

	// Videos get probed so the screens can show duration without loading
	// the file; a probe failure does not block the upload.
	if mediaType == "video" {
		if info, err := util.ProbeVideo(tmp); err == nil {
			data["video"] = info
		}
	}

	file, err := os.Open(tmp)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("media/%s%s", uuid.New().String(), ext)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := c.Storage.Upload(ctx.Request.Context(), filename, file, fileHeader.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	data["url"] = url

	util.Created(ctx, data)
}
