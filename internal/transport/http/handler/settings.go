package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"passport-extractor/internal/app"
	"passport-extractor/internal/transport/http/middleware"
	"passport-extractor/internal/transport/http/response"
)

type SettingsHandler struct {
	service *app.ExtractionService
}

func NewSettingsHandler(service *app.ExtractionService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Show reports whether the vendor token is configured, the active processor
// id, and how many extractions this session has run.
func (h *SettingsHandler) Show(c *gin.Context) {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "missing session")
		return
	}
	response.OK(c, h.service.SettingsFor(sessionID))
}
