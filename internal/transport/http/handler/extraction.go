package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"passport-extractor/internal/app"
	"passport-extractor/internal/export"
	"passport-extractor/internal/extend"
	"passport-extractor/internal/intake"
	"passport-extractor/internal/transport/http/middleware"
	"passport-extractor/internal/transport/http/response"
)

type ExtractionHandler struct {
	service *app.ExtractionService
	intake  intake.Options
}

func NewExtractionHandler(service *app.ExtractionService, intakeOpts intake.Options) *ExtractionHandler {
	return &ExtractionHandler{service: service, intake: intakeOpts}
}

// Create accepts a multipart form with "file" (passport image or PDF) and
// optional "api_token" / "processor_id" overrides, runs one synchronous
// extraction, and returns the flattened fields.
func (h *ExtractionHandler) Create(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "missing session")
		return
	}

	// Leave headroom for the multipart framing around the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.intake.MaxSizeBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing file (form field 'file')")
		return
	}
	if fileHeader.Size > h.intake.MaxSizeBytes {
		response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge,
			fmt.Sprintf("file too large (max %dMB)", h.intake.MaxSizeBytes>>20))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "failed to open uploaded file")
		return
	}
	defer f.Close()

	spooled, err := intake.Spool(h.intake, fileHeader.Filename, fileHeader.Size, f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer spooled.Cleanup()

	result, err := h.service.Extract(c.Request.Context(), app.ExtractInput{
		SessionID: sessionID,
		File:      spooled,
		Override: app.VendorOverride{
			APIToken:    c.PostForm("api_token"),
			ProcessorID: c.PostForm("processor_id"),
		},
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// List returns the session's extraction history, newest first.
func (h *ExtractionHandler) List(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "missing session")
		return
	}
	entries := h.service.History(sessionID)
	response.OK(c, gin.H{
		"total":       len(entries),
		"extractions": entries,
	})
}

// Get returns one history entry.
func (h *ExtractionHandler) Get(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "missing session")
		return
	}
	result, err := h.service.Get(sessionID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, result)
}

// Export streams one history entry as csv, json, raw, xlsx, or pdf.
func (h *ExtractionHandler) Export(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "missing session")
		return
	}
	result, err := h.service.Get(sessionID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	f, err := export.ParseFormat(c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	body, err := export.Render(f, result)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "render export failed")
		return
	}
	filename := f.Filename(result.Timestamp)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, f.ContentType(), body)
}

// Clear wipes the session's history.
func (h *ExtractionHandler) Clear(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "missing session")
		return
	}
	h.service.ClearHistory(sessionID)
	response.OK(c, gin.H{"cleared": true})
}

func (h *ExtractionHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, intake.ErrFileRequired):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, intake.ErrUnsupportedType):
		response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFile, "only PDF, PNG, JPG, and JPEG files are allowed")
	case errors.Is(err, intake.ErrTooLarge):
		response.Error(c, http.StatusBadRequest, response.CodeFileTooLarge, err.Error())
	case errors.Is(err, intake.ErrUnreadable):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrInvalidInput), errors.Is(err, app.ErrVendorConfig):
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
	case errors.Is(err, app.ErrExtractionNotFound):
		response.Error(c, http.StatusNotFound, response.CodeExtractionNotFound, err.Error())
	case errors.Is(err, extend.ErrAuth):
		response.Error(c, http.StatusUnauthorized, response.CodeAuthFailed, "extend api token rejected")
	case errors.Is(err, extend.ErrProcessorNotFound):
		response.Error(c, http.StatusNotFound, response.CodeProcessorNotFound, "processor id not recognized")
	case errors.Is(err, extend.ErrUpload):
		response.Error(c, http.StatusBadGateway, response.CodeUploadFailed, "file upload to extend failed")
	case errors.Is(err, extend.ErrExtraction):
		response.Error(c, http.StatusBadGateway, response.CodeExtractionFailed, "extend extraction failed")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "extraction failed")
	}
}
