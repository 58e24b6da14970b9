package service

import (
	"context"
	"strconv"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

// Numeric settings keys validated before writing.
var numericSettingKeys = map[string]bool{
	"shipping_fee":            true,
	"free_shipping_threshold": true,
	"cod_fee":                 true,
	"bank_transfer_discount":  true,
}

type settingsService struct {
	repo repository.Querier
}

// NewSettingsService creates a new SettingsService instance.
func NewSettingsService(repo repository.Querier) domain.SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetSiteConfig(ctx context.Context) (*domain.SiteConfig, error) {
	rows, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	return domain.ParseSiteConfig(rows)
}

func (s *settingsService) GetRaw(ctx context.Context) (map[string]string, error) {
	return s.repo.ListSettings(ctx)
}

// UpdateSettings validates numeric keys up front so a bad value cannot be
// half-written before the parse boundary rejects it.
func (s *settingsService) UpdateSettings(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if !numericSettingKeys[key] || value == "" {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return domain.Errorf(domain.EINVALID, "settings.update", "setting %s is not a number: %q", key, value)
		}
		if f < 0 {
			return domain.Errorf(domain.EINVALID, "settings.update", "setting %s must not be negative: %q", key, value)
		}
		if key == "bank_transfer_discount" && f > 100 {
			return domain.Errorf(domain.EINVALID, "settings.update", "bank_transfer_discount must be at most 100")
		}
	}

	for key, value := range values {
		if err := s.repo.UpsertSetting(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}
