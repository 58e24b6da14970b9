package domain

import (
	"context"
	"strconv"
)

// Default pricing settings, used when the corresponding row is absent.
const (
	DefaultShippingFee           = 49.90
	DefaultFreeShippingThreshold = 750
	DefaultCODFee                = 29.90
	DefaultTransferDiscountPct   = 5
)

// SiteConfig is the strongly-typed view of the site_settings key/value rows.
// Rows are parsed and validated once at the read boundary; malformed numeric
// values are rejected there instead of propagating NaN into pricing math.
type SiteConfig struct {
	SiteName        string
	SiteDescription string
	ContactEmail    string
	ContactPhone    string
	MaintenanceMode bool

	// Pricing inputs.
	ShippingFee             float64
	FreeShippingThreshold   float64
	CODFee                  float64
	TransferDiscountPercent float64

	// Bank transfer instructions shown on the payment step.
	BankName      string
	IBAN          string
	AccountHolder string
}

// ParseSiteConfig builds a SiteConfig from raw key/value rows.
// Missing keys fall back to defaults; present but malformed numeric values
// are an EINVALID error.
func ParseSiteConfig(rows map[string]string) (*SiteConfig, error) {
	cfg := &SiteConfig{
		SiteName:                rows["site_name"],
		SiteDescription:         rows["site_description"],
		ContactEmail:            rows["contact_email"],
		ContactPhone:            rows["contact_phone"],
		BankName:                rows["bank_name"],
		IBAN:                    rows["iban_number"],
		AccountHolder:           rows["account_holder"],
		ShippingFee:             DefaultShippingFee,
		FreeShippingThreshold:   DefaultFreeShippingThreshold,
		CODFee:                  DefaultCODFee,
		TransferDiscountPercent: DefaultTransferDiscountPct,
	}

	if v, ok := rows["maintenance_mode"]; ok {
		cfg.MaintenanceMode = v == "true" || v == "1"
	}

	numeric := []struct {
		key    string
		target *float64
	}{
		{"shipping_fee", &cfg.ShippingFee},
		{"free_shipping_threshold", &cfg.FreeShippingThreshold},
		{"cod_fee", &cfg.CODFee},
		{"bank_transfer_discount", &cfg.TransferDiscountPercent},
	}
	for _, n := range numeric {
		v, ok := rows[n.key]
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, Errorf(EINVALID, "settings.parse", "setting %s is not a number: %q", n.key, v)
		}
		if f < 0 {
			return nil, Errorf(EINVALID, "settings.parse", "setting %s must not be negative: %q", n.key, v)
		}
		*n.target = f
	}

	// A discount above 100% would price orders negative.
	if cfg.TransferDiscountPercent > 100 {
		return nil, Errorf(EINVALID, "settings.parse", "bank_transfer_discount must be at most 100, got %v", cfg.TransferDiscountPercent)
	}

	return cfg, nil
}

// SettingsService loads and updates the site settings rows.
type SettingsService interface {
	// GetSiteConfig loads all settings rows and parses them.
	// No caching: last fetched wins.
	GetSiteConfig(ctx context.Context) (*SiteConfig, error)

	// GetRaw returns the raw key/value rows (admin settings screen).
	GetRaw(ctx context.Context) (map[string]string, error)

	// UpdateSettings upserts the given keys. Numeric pricing keys are
	// validated before writing.
	UpdateSettings(ctx context.Context, values map[string]string) error
}
