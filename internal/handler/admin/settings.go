package admin

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// SettingsHandler manages the raw site settings rows.
type SettingsHandler struct {
	settings domain.SettingsService
}

func NewSettingsHandler(settings domain.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// View handles GET /api/admin/settings
func (h *SettingsHandler) View(w http.ResponseWriter, r *http.Request) {
	rows, err := h.settings.GetRaw(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, rows)
}

// Update handles PUT /api/admin/settings
//
// The body is a flat key/value object. Numeric pricing keys are validated
// before anything is written, so a bad value rejects the whole batch.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if err := handler.Decode(r, &values); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	if len(values) == 0 {
		handler.ErrorResponse(w, r, domain.Invalid("admin.settings", "No settings provided"))
		return
	}

	if err := h.settings.UpdateSettings(r.Context(), values); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	rows, err := h.settings.GetRaw(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, rows)
}
