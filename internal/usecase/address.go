package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/domain/repository"
)

// AddressUseCase manages the per-user address book. Pincode format is
// validated here; serviceability is only enforced at checkout so users can
// keep addresses outside the current delivery area.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

// List returns the user's addresses, default first.
func (u *AddressUseCase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}

// Get returns a single address by its per-user identifier.
func (u *AddressUseCase) Get(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	return u.addresses.Get(ctx, userID, addressID)
}

// Create validates the address and stores it. The first stored address
// becomes the default.
func (u *AddressUseCase) Create(ctx context.Context, address *model.Address) (*model.Address, error) {
	if err := u.validate(address); err != nil {
		return nil, err
	}
	return u.addresses.Create(ctx, address)
}

// Update replaces a stored address in place.
func (u *AddressUseCase) Update(ctx context.Context, address *model.Address) error {
	if err := u.validate(address); err != nil {
		return err
	}
	return u.addresses.Update(ctx, address)
}

// Delete removes the address.
func (u *AddressUseCase) Delete(ctx context.Context, userID, addressID int64) error {
	return u.addresses.Delete(ctx, userID, addressID)
}

// SetDefault marks the address as the user's default delivery address.
func (u *AddressUseCase) SetDefault(ctx context.Context, userID, addressID int64) error {
	return u.addresses.SetDefault(ctx, userID, addressID)
}

func (u *AddressUseCase) validate(address *model.Address) error {
	address.Line1 = strings.TrimSpace(address.Line1)
	address.Pincode = strings.TrimSpace(address.Pincode)
	if address.Line1 == "" {
		return domainErrors.ErrInvalidAddress
	}
	if !ValidatePincode(address.Pincode) {
		return domainErrors.ErrInvalidPincode
	}
	return nil
}
