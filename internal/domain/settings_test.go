package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizgunduz/pazar/internal/domain"
)

func TestParseSiteConfig_Defaults(t *testing.T) {
	cfg, err := domain.ParseSiteConfig(map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, 49.90, cfg.ShippingFee)
	assert.Equal(t, 750.0, cfg.FreeShippingThreshold)
	assert.Equal(t, 29.90, cfg.CODFee)
	assert.Equal(t, 5.0, cfg.TransferDiscountPercent)
	assert.False(t, cfg.MaintenanceMode)
}

func TestParseSiteConfig_Overrides(t *testing.T) {
	rows := map[string]string{
		"site_name":               "Pazar",
		"shipping_fee":            "59.90",
		"free_shipping_threshold": "1000",
		"cod_fee":                 "19.90",
		"bank_transfer_discount":  "3",
		"maintenance_mode":        "true",
		"iban_number":             "TR00 0000 0000 0000 0000 0000 00",
	}

	cfg, err := domain.ParseSiteConfig(rows)

	require.NoError(t, err)
	assert.Equal(t, "Pazar", cfg.SiteName)
	assert.Equal(t, 59.90, cfg.ShippingFee)
	assert.Equal(t, 1000.0, cfg.FreeShippingThreshold)
	assert.Equal(t, 19.90, cfg.CODFee)
	assert.Equal(t, 3.0, cfg.TransferDiscountPercent)
	assert.True(t, cfg.MaintenanceMode)
	assert.Equal(t, "TR00 0000 0000 0000 0000 0000 00", cfg.IBAN)
}

func TestParseSiteConfig_RejectsMalformedNumbers(t *testing.T) {
	tests := []struct {
		name string
		rows map[string]string
	}{
		{"non-numeric fee", map[string]string{"shipping_fee": "abc"}},
		{"negative threshold", map[string]string{"free_shipping_threshold": "-5"}},
		{"discount above 100", map[string]string{"bank_transfer_discount": "150"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseSiteConfig(tt.rows)

			require.Error(t, err)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestParseSiteConfig_EmptyValueFallsBack(t *testing.T) {
	cfg, err := domain.ParseSiteConfig(map[string]string{"cod_fee": ""})

	require.NoError(t, err)
	assert.Equal(t, 29.90, cfg.CODFee)
}
