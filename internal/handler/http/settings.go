package http

import (
	"net/http"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Replace(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{settingsService: settingsService}
}

func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Replace overwrites the whole settings document.
func (h *settingsHandlerImpl) Replace(w http.ResponseWriter, r *http.Request) {
	var req settings.ReplaceSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.settingsService.Replace(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated successfully", result)
}
