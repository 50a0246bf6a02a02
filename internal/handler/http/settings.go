package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hadirin/absensi-backend-go/internal/domain/office"
	"github.com/hadirin/absensi-backend-go/internal/domain/shift"
	"github.com/hadirin/absensi-backend-go/internal/handler/http/response"
	"github.com/hadirin/absensi-backend-go/internal/service/settings"
)

type SettingsHandler interface {
	GetOfficeLocation(w http.ResponseWriter, r *http.Request)
	UpdateOfficeLocation(w http.ResponseWriter, r *http.Request)
	GetShiftPolicy(w http.ResponseWriter, r *http.Request)
	UpdateShiftPolicy(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.Service
}

func NewSettingsHandler(settingsService settings.Service) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// GetOfficeLocation implements SettingsHandler.
func (h *settingsHandlerImpl) GetOfficeLocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetOfficeLocation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateOfficeLocation implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateOfficeLocation(w http.ResponseWriter, r *http.Request) {
	var req office.UpdateLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateOfficeLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.UpdateOfficeLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated", result)
}

// GetShiftPolicy implements SettingsHandler.
func (h *settingsHandlerImpl) GetShiftPolicy(w http.ResponseWriter, r *http.Request) {
	result, err := h.settingsService.GetShiftPolicy(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateShiftPolicy implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateShiftPolicy(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdatePolicyRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateShiftPolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.settingsService.UpdateShiftPolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift policy updated", result)
}
