package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/denizgunduz/pazar/internal/domain"
	"github.com/denizgunduz/pazar/internal/repository"
)

type addressService struct {
	store    checkoutStore
	validate *validator.Validate
}

// NewAddressService creates a new AddressService instance.
func NewAddressService(store checkoutStore) domain.AddressService {
	return &addressService{store: store, validate: validator.New()}
}

func (s *addressService) ListAddresses(ctx context.Context, userID string) ([]domain.Address, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	return s.store.ListAddresses(ctx, uid)
}

func (s *addressService) LatestAddress(ctx context.Context, userID string) (*domain.Address, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	addr, err := s.store.GetLatestAddress(ctx, uid)
	if err != nil {
		if domain.IsCode(err, domain.ENOTFOUND) {
			return nil, nil
		}
		return nil, err
	}
	return addr, nil
}

func (s *addressService) CreateAddress(ctx context.Context, userID string, input domain.AddressInput) (*domain.Address, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.Invalid("address.create", "All address fields are required")
	}

	var created *domain.Address
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if input.IsDefault {
			if err := q.ClearDefaultAddress(ctx, uid); err != nil {
				return err
			}
		}
		var txErr error
		created, txErr = q.CreateAddress(ctx, uid, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *addressService) UpdateAddress(ctx context.Context, userID, addressID string, input domain.AddressInput) (*domain.Address, error) {
	uid, err := parseUUID(userID)
	if err != nil {
		return nil, err
	}
	aid, err := parseUUID(addressID)
	if err != nil {
		return nil, domain.ErrAddressNotFound
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, domain.Invalid("address.update", "All address fields are required")
	}

	var updated *domain.Address
	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		if input.IsDefault {
			if err := q.ClearDefaultAddress(ctx, uid); err != nil {
				return err
			}
		}
		var txErr error
		updated, txErr = q.UpdateAddress(ctx, uid, aid, input)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *addressService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return err
	}
	aid, err := parseUUID(addressID)
	if err != nil {
		return domain.ErrAddressNotFound
	}
	return s.store.DeleteAddress(ctx, uid, aid)
}

func (s *addressService) SetDefaultAddress(ctx context.Context, userID, addressID string) error {
	uid, err := parseUUID(userID)
	if err != nil {
		return err
	}
	aid, err := parseUUID(addressID)
	if err != nil {
		return domain.ErrAddressNotFound
	}
	return s.store.ExecTx(ctx, func(q repository.Querier) error {
		if err := q.ClearDefaultAddress(ctx, uid); err != nil {
			return err
		}
		return q.SetDefaultAddress(ctx, uid, aid)
	})
}
