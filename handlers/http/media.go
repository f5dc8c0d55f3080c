package httpHandler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"realestate-server/apperr"
	"realestate-server/dtos"
	"realestate-server/handlers/middleware"
	"realestate-server/usecases"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	propertyField    = "property"
	defaultMaxMemory = 32 << 20
	defaultMaxBody   = 512 << 20
)

type MediaHandler struct {
	useCase   *usecases.MediaUseCase
	maxMemory int64
	maxBody   int64
}

// NewMediaHandler builds the media handler. maxMemory is how much of a form
// is held in memory before spooling to disk; maxBody caps the whole request.
func NewMediaHandler(useCase *usecases.MediaUseCase, maxMemory, maxBody int64) *MediaHandler {
	if maxMemory <= 0 {
		maxMemory = defaultMaxMemory
	}
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &MediaHandler{
		useCase:   useCase,
		maxMemory: maxMemory,
		maxBody:   maxBody,
	}
}

// CreatePropertyWithMedia handles POST /api/v1/properties/with-media.
// The "property" field carries the listing JSON; files are sent under
// fields named after their media category.
func (h *MediaHandler) CreatePropertyWithMedia(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	defer form.RemoveAll()

	raw := form.Value[propertyField]
	if len(raw) == 0 || raw[0] == "" {
		respondError(c, apperr.Validation("property field is required"))
		return
	}
	var req dtos.PropertyRequest
	if err := binding.JSON.BindBody([]byte(raw[0]), &req); err != nil {
		respondError(c, bindError(err))
		return
	}

	property, err := h.useCase.CreatePropertyWithMedia(c.Request.Context(), &req, mediaFiles(form))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Property created successfully",
		"data":    property,
	})
}

// UploadMedia handles POST /api/v1/properties/:id/media
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	defer form.RemoveAll()

	media, err := h.useCase.UploadMediaBatch(c.Request.Context(), id, mediaFiles(form))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Media uploaded successfully",
		"data":    media,
		"count":   len(media),
	})
}

// GetPropertyMedia handles GET /api/v1/properties/:id/media
func (h *MediaHandler) GetPropertyMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	media, err := h.useCase.ListMedia(id, middleware.Authenticated(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  media,
		"count": len(media),
	})
}

// DeleteMedia handles DELETE /api/v1/properties/:id/media/:media_id
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	mediaID, ok := parseID(c, "media_id")
	if !ok {
		return
	}

	if err := h.useCase.DeleteMedia(c.Request.Context(), id, mediaID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Media deleted successfully",
	})
}

func (h *MediaHandler) parseForm(c *gin.Context) (*multipart.Form, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody)
	if err := c.Request.ParseMultipartForm(h.maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, apperr.New(http.StatusRequestEntityTooLarge, apperr.CodeFileTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)))
			return nil, false
		}
		respondError(c, apperr.BadRequest("expected a multipart/form-data body"))
		return nil, false
	}
	return c.Request.MultipartForm, true
}

// mediaFiles flattens the form's file fields. Field names are sorted so
// the batch order does not depend on map iteration.
func mediaFiles(form *multipart.Form) []usecases.MediaFile {
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var files []usecases.MediaFile
	for _, field := range fields {
		for _, fh := range form.File[field] {
			header := fh
			files = append(files, usecases.MediaFile{
				Category: field,
				Filename: header.Filename,
				Size:     header.Size,
				Open: func() (io.ReadCloser, error) {
					return header.Open()
				},
			})
		}
	}
	return files
}
