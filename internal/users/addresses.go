package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Aman2975/hugli-backend/pkg/db/models"
	pkgerrors "github.com/Aman2975/hugli-backend/pkg/errors"
)

// AddressService manages the saved delivery addresses used to prefill
// order drafts.
type AddressService interface {
	List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input SaveAddressInput) (*AddressDTO, error)
	Update(ctx context.Context, userID, addressID uuid.UUID, input SaveAddressInput) (*AddressDTO, error)
	Delete(ctx context.Context, userID, addressID uuid.UUID) error
	SetDefault(ctx context.Context, userID, addressID uuid.UUID) error
}

type addressRepository interface {
	CreateAddress(ctx context.Context, address *models.UserAddress) error
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.UserAddress, error)
	FindAddress(ctx context.Context, userID, addressID uuid.UUID) (*models.UserAddress, error)
	SaveAddress(ctx context.Context, address *models.UserAddress) error
	DeleteAddress(ctx context.Context, userID, addressID uuid.UUID) error
	ClearDefaultAddress(ctx context.Context, userID uuid.UUID) error
}

type addressService struct {
	repo addressRepository
}

// NewAddressService constructs the address service.
func NewAddressService(repo addressRepository) (AddressService, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository is required")
	}
	return &addressService{repo: repo}, nil
}

func (s *addressService) List(ctx context.Context, userID uuid.UUID) ([]AddressDTO, error) {
	rows, err := s.repo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list addresses")
	}
	out := make([]AddressDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *AddressFromModel(&rows[i]))
	}
	return out, nil
}

func (s *addressService) Create(ctx context.Context, userID uuid.UUID, input SaveAddressInput) (*AddressDTO, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.repo.ClearDefaultAddress(ctx, userID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
		}
	}

	address := &models.UserAddress{
		UserID:      userID,
		Name:        strings.TrimSpace(input.Name),
		Phone:       strings.TrimSpace(input.Phone),
		AddressLine: strings.TrimSpace(input.AddressLine),
		City:        strings.TrimSpace(input.City),
		State:       strings.TrimSpace(input.State),
		Pincode:     strings.TrimSpace(input.Pincode),
		IsDefault:   input.IsDefault,
	}
	if err := s.repo.CreateAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create address")
	}
	return AddressFromModel(address), nil
}

func (s *addressService) Update(ctx context.Context, userID, addressID uuid.UUID, input SaveAddressInput) (*AddressDTO, error) {
	if err := validateAddressInput(input); err != nil {
		return nil, err
	}

	address, err := s.repo.FindAddress(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}

	if input.IsDefault && !address.IsDefault {
		if err := s.repo.ClearDefaultAddress(ctx, userID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
		}
	}

	address.Name = strings.TrimSpace(input.Name)
	address.Phone = strings.TrimSpace(input.Phone)
	address.AddressLine = strings.TrimSpace(input.AddressLine)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.Pincode = strings.TrimSpace(input.Pincode)
	address.IsDefault = input.IsDefault

	if err := s.repo.SaveAddress(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save address")
	}
	return AddressFromModel(address), nil
}

func (s *addressService) Delete(ctx context.Context, userID, addressID uuid.UUID) error {
	if err := s.repo.DeleteAddress(ctx, userID, addressID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete address")
	}
	return nil
}

func (s *addressService) SetDefault(ctx context.Context, userID, addressID uuid.UUID) error {
	address, err := s.repo.FindAddress(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load address")
	}
	if address.IsDefault {
		return nil
	}
	if err := s.repo.ClearDefaultAddress(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear default address")
	}
	address.IsDefault = true
	if err := s.repo.SaveAddress(ctx, address); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save address")
	}
	return nil
}

func validateAddressInput(input SaveAddressInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", input.Name},
		{"phone", input.Phone},
		{"address_line", input.AddressLine},
		{"city", input.City},
		{"state", input.State},
		{"pincode", input.Pincode},
	}
	missing := []string{}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "all address fields are required").
			WithDetails(map[string]any{"missing": missing})
	}
	return nil
}
