package handlers

import (
	"context"

	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/stream"
	"github.com/greenmandi/storefront/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RequestCode(ctx context.Context, phone string) error
	VerifyCode(ctx context.Context, phone, code string) (*usecase.AuthResult, error)
	CompleteRegistration(ctx context.Context, phone, name, email string) (*model.User, string, error)
	ParseToken(token string) (int64, error)
	Profile(ctx context.Context, userID int64) (*model.User, error)
	Deactivate(ctx context.Context, userID int64) error
}

// OrderFacade encapsulates checkout and payment operations exposed via HTTP.
type OrderFacade interface {
	Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error)
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	Order(ctx context.Context, userID, number int64) (*model.Order, error)
	ConfirmPayment(ctx context.Context, userID, number int64, gatewayPaymentID, signature string) (*model.Order, error)
	FailPayment(ctx context.Context, userID, number int64, reason string) (*model.Order, error)
	ReportGatewayFailure(ctx context.Context, number int64, gatewayPaymentID, signature, reason string) error
	WatchOrder(ctx context.Context, userID, number int64) (*model.Order, <-chan stream.OrderEvent, func(), error)
	ValidateCoupon(ctx context.Context, code string, subtotal float64) (*usecase.CouponQuote, error)
}

// AddressFacade provides address book operations.
type AddressFacade interface {
	Addresses(ctx context.Context, userID int64) ([]model.Address, error)
	CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error)
	UpdateAddress(ctx context.Context, address *model.Address) error
	DeleteAddress(ctx context.Context, userID, addressID int64) error
	SetDefaultAddress(ctx context.Context, userID, addressID int64) error
}

// CatalogFacade provides catalog browsing operations.
type CatalogFacade interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Products(ctx context.Context, categoryID int64) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	Search(ctx context.Context, prefix string, limit int) ([]model.Product, error)
	CheckPincode(ctx context.Context, code string) (*model.Pincode, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	OrderFacade
	AddressFacade
	CatalogFacade
}
