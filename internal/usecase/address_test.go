package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	testhelpers "github.com/greenmandi/storefront/internal/test"
)

func newAddressFixture() (*AddressUseCase, *testhelpers.AddressRepositoryStub) {
	addresses := testhelpers.NewAddressRepositoryStub()
	return NewAddressUseCase(addresses), addresses
}

func TestAddressCreate(t *testing.T) {
	uc, _ := newAddressFixture()
	ctx := context.Background()

	created, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "12 Green St", Pincode: "560001"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.AddressID != 1 || !created.IsDefault {
		t.Fatalf("expected first address default with id 1: %+v", created)
	}

	second, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "4 Hill Rd", Pincode: "560001"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.AddressID != 2 || second.IsDefault {
		t.Fatalf("unexpected second address: %+v", second)
	}
}

func TestAddressCreateValidation(t *testing.T) {
	uc, _ := newAddressFixture()
	ctx := context.Background()

	if _, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: " ", Pincode: "560001"}); !errors.Is(err, domainErrors.ErrInvalidAddress) {
		t.Fatalf("expected ErrInvalidAddress, got %v", err)
	}
	if _, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "12 Green St", Pincode: "56001"}); !errors.Is(err, domainErrors.ErrInvalidPincode) {
		t.Fatalf("expected ErrInvalidPincode, got %v", err)
	}

	// Format is checked here; serviceability only matters at checkout.
	if _, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "12 Green St", Pincode: "999999"}); err != nil {
		t.Fatalf("non-serviceable pincode must still be storable: %v", err)
	}
}

func TestAddressUpdateAndDelete(t *testing.T) {
	uc, repo := newAddressFixture()
	ctx := context.Background()

	created, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "12 Green St", Pincode: "560001"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Line1 = "12A Green St"
	if err := uc.Update(ctx, created); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, _ := repo.Get(ctx, 7, created.AddressID)
	if stored.Line1 != "12A Green St" {
		t.Fatalf("update not persisted: %+v", stored)
	}

	missing := &model.Address{UserID: 7, AddressID: 99, Line1: "x", Pincode: "560001"}
	if err := uc.Update(ctx, missing); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := uc.Delete(ctx, 7, created.AddressID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := uc.Get(ctx, 7, created.AddressID); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestAddressSetDefault(t *testing.T) {
	uc, _ := newAddressFixture()
	ctx := context.Background()

	if _, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "12 Green St", Pincode: "560001"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := uc.Create(ctx, &model.Address{UserID: 7, Line1: "4 Hill Rd", Pincode: "560001"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := uc.SetDefault(ctx, 7, second.AddressID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	list, err := uc.List(ctx, 7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, a := range list {
		if a.IsDefault != (a.AddressID == second.AddressID) {
			t.Fatalf("unexpected default flags: %+v", list)
		}
	}
}
