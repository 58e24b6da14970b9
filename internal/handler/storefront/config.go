package storefront

import (
	"net/http"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/handler"
)

// ConfigHandler serves the public site configuration.
type ConfigHandler struct {
	settings domain.SettingsService
}

func NewConfigHandler(settings domain.SettingsService) *ConfigHandler {
	return &ConfigHandler{settings: settings}
}

type siteConfigResponse struct {
	SiteName        string `json:"site_name"`
	SiteDescription string `json:"site_description,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	ContactPhone    string `json:"contact_phone,omitempty"`
	MaintenanceMode bool   `json:"maintenance_mode"`

	ShippingFee             float64 `json:"shipping_fee"`
	FreeShippingThreshold   float64 `json:"free_shipping_threshold"`
	CODFee                  float64 `json:"cod_fee"`
	TransferDiscountPercent float64 `json:"bank_transfer_discount"`

	BankName      string `json:"bank_name,omitempty"`
	IBAN          string `json:"iban_number,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
}

// View handles GET /api/config
//
// The client reads the pricing constants from here to pre-render totals,
// but the authoritative numbers always come from the quote endpoint.
func (h *ConfigHandler) View(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.GetSiteConfig(r.Context())
	if err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, siteConfigResponse{
		SiteName:                cfg.SiteName,
		SiteDescription:         cfg.SiteDescription,
		ContactEmail:            cfg.ContactEmail,
		ContactPhone:            cfg.ContactPhone,
		MaintenanceMode:         cfg.MaintenanceMode,
		ShippingFee:             cfg.ShippingFee,
		FreeShippingThreshold:   cfg.FreeShippingThreshold,
		CODFee:                  cfg.CODFee,
		TransferDiscountPercent: cfg.TransferDiscountPercent,
		BankName:                cfg.BankName,
		IBAN:                    cfg.IBAN,
		AccountHolder:           cfg.AccountHolder,
	})
}
