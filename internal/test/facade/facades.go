package facade

import (
	"context"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/stream"
	"github.com/greenmandi/storefront/internal/usecase"
)

// StorefrontFacadeStub simulates the application facade for HTTP layer tests.
// Every method has a function override; unset overrides return benign
// defaults.
type StorefrontFacadeStub struct {
	RequestCodeFn          func(context.Context, string) error
	VerifyCodeFn           func(context.Context, string, string) (*usecase.AuthResult, error)
	CompleteRegistrationFn func(context.Context, string, string, string) (*model.User, string, error)
	ParseFn                func(string) (int64, error)
	ProfileFn              func(context.Context, int64) (*model.User, error)
	DeactivateFn           func(context.Context, int64) error

	CheckoutFn             func(context.Context, usecase.CheckoutInput) (*model.Order, error)
	OrdersFn               func(context.Context, int64) ([]model.Order, error)
	OrderFn                func(context.Context, int64, int64) (*model.Order, error)
	ConfirmPaymentFn       func(context.Context, int64, int64, string, string) (*model.Order, error)
	FailPaymentFn          func(context.Context, int64, int64, string) (*model.Order, error)
	ReportGatewayFailureFn func(context.Context, int64, string, string, string) error
	WatchOrderFn           func(context.Context, int64, int64) (*model.Order, <-chan stream.OrderEvent, func(), error)
	ValidateCouponFn       func(context.Context, string, float64) (*usecase.CouponQuote, error)

	AddressesFn         func(context.Context, int64) ([]model.Address, error)
	CreateAddressFn     func(context.Context, *model.Address) (*model.Address, error)
	UpdateAddressFn     func(context.Context, *model.Address) error
	DeleteAddressFn     func(context.Context, int64, int64) error
	SetDefaultAddressFn func(context.Context, int64, int64) error

	CategoriesFn   func(context.Context) ([]model.Category, error)
	ProductsFn     func(context.Context, int64) ([]model.Product, error)
	ProductFn      func(context.Context, int64) (*model.Product, error)
	SearchFn       func(context.Context, string, int) ([]model.Product, error)
	CheckPincodeFn func(context.Context, string) (*model.Pincode, error)
}

func (s *StorefrontFacadeStub) RequestCode(ctx context.Context, phone string) error {
	if s.RequestCodeFn != nil {
		return s.RequestCodeFn(ctx, phone)
	}
	return nil
}

func (s *StorefrontFacadeStub) VerifyCode(ctx context.Context, phone, code string) (*usecase.AuthResult, error) {
	if s.VerifyCodeFn != nil {
		return s.VerifyCodeFn(ctx, phone, code)
	}
	return &usecase.AuthResult{
		Outcome: usecase.AuthOutcomeExisting,
		User:    &model.User{ID: 1, Phone: phone},
		Token:   "token",
	}, nil
}

func (s *StorefrontFacadeStub) CompleteRegistration(ctx context.Context, phone, name, email string) (*model.User, string, error) {
	if s.CompleteRegistrationFn != nil {
		return s.CompleteRegistrationFn(ctx, phone, name, email)
	}
	return &model.User{ID: 1, Phone: phone, Name: name, Email: email}, "token", nil
}

func (s *StorefrontFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s *StorefrontFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Phone: "9876543210", Name: "Asha"}, nil
}

func (s *StorefrontFacadeStub) Deactivate(ctx context.Context, userID int64) error {
	if s.DeactivateFn != nil {
		return s.DeactivateFn(ctx, userID)
	}
	return nil
}

func (s *StorefrontFacadeStub) Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, input)
	}
	return &model.Order{Number: 1, UserID: input.UserID, Status: model.OrderStatusPlaced, PaymentStatus: model.PaymentStatusPending}, nil
}

func (s *StorefrontFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return nil, nil
}

func (s *StorefrontFacadeStub) Order(ctx context.Context, userID, number int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, userID, number)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *StorefrontFacadeStub) ConfirmPayment(ctx context.Context, userID, number int64, gatewayPaymentID, signature string) (*model.Order, error) {
	if s.ConfirmPaymentFn != nil {
		return s.ConfirmPaymentFn(ctx, userID, number, gatewayPaymentID, signature)
	}
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusPlaced, PaymentStatus: model.PaymentStatusPaid}, nil
}

func (s *StorefrontFacadeStub) FailPayment(ctx context.Context, userID, number int64, reason string) (*model.Order, error) {
	if s.FailPaymentFn != nil {
		return s.FailPaymentFn(ctx, userID, number, reason)
	}
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusPaymentFailed, PaymentStatus: model.PaymentStatusFailed, FailureReason: reason}, nil
}

func (s *StorefrontFacadeStub) ReportGatewayFailure(ctx context.Context, number int64, gatewayPaymentID, signature, reason string) error {
	if s.ReportGatewayFailureFn != nil {
		return s.ReportGatewayFailureFn(ctx, number, gatewayPaymentID, signature, reason)
	}
	return nil
}

func (s *StorefrontFacadeStub) WatchOrder(ctx context.Context, userID, number int64) (*model.Order, <-chan stream.OrderEvent, func(), error) {
	if s.WatchOrderFn != nil {
		return s.WatchOrderFn(ctx, userID, number)
	}
	ch := make(chan stream.OrderEvent)
	close(ch)
	return &model.Order{Number: number, UserID: userID, Status: model.OrderStatusPlaced, PaymentStatus: model.PaymentStatusPaid}, ch, func() {}, nil
}

func (s *StorefrontFacadeStub) ValidateCoupon(ctx context.Context, code string, subtotal float64) (*usecase.CouponQuote, error) {
	if s.ValidateCouponFn != nil {
		return s.ValidateCouponFn(ctx, code, subtotal)
	}
	return &usecase.CouponQuote{Code: code, Discount: 0}, nil
}

func (s *StorefrontFacadeStub) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	if s.AddressesFn != nil {
		return s.AddressesFn(ctx, userID)
	}
	return nil, nil
}

func (s *StorefrontFacadeStub) CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	if s.CreateAddressFn != nil {
		return s.CreateAddressFn(ctx, address)
	}
	created := *address
	created.AddressID = 1
	created.IsDefault = true
	return &created, nil
}

func (s *StorefrontFacadeStub) UpdateAddress(ctx context.Context, address *model.Address) error {
	if s.UpdateAddressFn != nil {
		return s.UpdateAddressFn(ctx, address)
	}
	return nil
}

func (s *StorefrontFacadeStub) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	if s.DeleteAddressFn != nil {
		return s.DeleteAddressFn(ctx, userID, addressID)
	}
	return nil
}

func (s *StorefrontFacadeStub) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	if s.SetDefaultAddressFn != nil {
		return s.SetDefaultAddressFn(ctx, userID, addressID)
	}
	return nil
}

func (s *StorefrontFacadeStub) Categories(ctx context.Context) ([]model.Category, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return nil, nil
}

func (s *StorefrontFacadeStub) Products(ctx context.Context, categoryID int64) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, categoryID)
	}
	return nil, nil
}

func (s *StorefrontFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *StorefrontFacadeStub) Search(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, prefix, limit)
	}
	return nil, nil
}

func (s *StorefrontFacadeStub) CheckPincode(ctx context.Context, code string) (*model.Pincode, error) {
	if s.CheckPincodeFn != nil {
		return s.CheckPincodeFn(ctx, code)
	}
	return &model.Pincode{Code: code, Area: "Test Area", DeliveryDays: 1}, nil
}
