package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopapi/backend/internal/application/catalog"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
)

// ImportHandler accepts supplier catalog documents
type ImportHandler struct {
	BaseHandler
	importService *catalogapp.ImportService
	maxSize       int64
}

// NewImportHandler creates a new ImportHandler accepting documents of up to
// maxSize bytes
func NewImportHandler(importService *catalogapp.ImportService, maxSize int64) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxSize:       maxSize,
	}
}

// Import godoc
// @Summary      Import a catalog
// @Description  Upserts the shop, categories, products, listings and parameters of a supplier document.
// @Description  The document is sent as multipart field "file" or as the raw request body.
// @Tags         partner
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        file formData file false "Catalog document"
// @Success      200 {object} dto.Response{data=catalogapp.ImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /import [post]
func (h *ImportHandler) Import(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	data, err := h.readDocument(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.Is(err, errDocumentTooLarge) || errors.As(err, &tooLarge) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
				fmt.Sprintf("Import document exceeds %d bytes", h.maxSize))
			return
		}
		h.HandleError(c, err)
		return
	}

	result, err := h.importService.Import(c.Request.Context(), actor, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

var errDocumentTooLarge = errors.New("import document too large")

func (h *ImportHandler) readDocument(c *gin.Context) ([]byte, error) {
	var src io.Reader = c.Request.Body
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		file, _, err := c.Request.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, err
			}
			return nil, shared.NewValidationError("file", "This field is required")
		}
		defer file.Close()
		src = file
	}

	data, err := io.ReadAll(io.LimitReader(src, h.maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > h.maxSize {
		return nil, errDocumentTooLarge
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, shared.NewValidationError("file", "Import document is empty")
	}
	return data, nil
}
