package app

import (
	"context"
	"time"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/stream"
	"github.com/greenmandi/storefront/internal/usecase"
)

// StorefrontFacade is the single application surface consumed by the HTTP
// layer and the reconciliation worker.
type StorefrontFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	addresses *usecase.AddressUseCase
	catalog   *usecase.CatalogUseCase
	gateway   payment.Client

	paymentGrace time.Duration
	now          func() time.Time
}

// NewStorefrontFacade constructs the facade.
func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	addresses *usecase.AddressUseCase,
	catalog *usecase.CatalogUseCase,
	gateway payment.Client,
	paymentGrace time.Duration,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:         auth,
		orders:       orders,
		addresses:    addresses,
		catalog:      catalog,
		gateway:      gateway,
		paymentGrace: paymentGrace,
		now:          time.Now,
	}
}

func (f *StorefrontFacade) RequestCode(ctx context.Context, phone string) error {
	return f.auth.RequestCode(ctx, phone)
}

func (f *StorefrontFacade) VerifyCode(ctx context.Context, phone, code string) (*usecase.AuthResult, error) {
	return f.auth.VerifyCode(ctx, phone, code)
}

func (f *StorefrontFacade) CompleteRegistration(ctx context.Context, phone, name, email string) (*model.User, string, error) {
	return f.auth.CompleteRegistration(ctx, phone, name, email)
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.GetByID(ctx, userID)
}

func (f *StorefrontFacade) Deactivate(ctx context.Context, userID int64) error {
	return f.auth.Deactivate(ctx, userID)
}

func (f *StorefrontFacade) Checkout(ctx context.Context, input usecase.CheckoutInput) (*model.Order, error) {
	return f.orders.Checkout(ctx, input)
}

func (f *StorefrontFacade) ConfirmPayment(ctx context.Context, userID, number int64, gatewayPaymentID, signature string) (*model.Order, error) {
	return f.orders.ConfirmPayment(ctx, userID, number, gatewayPaymentID, signature)
}

func (f *StorefrontFacade) FailPayment(ctx context.Context, userID, number int64, reason string) (*model.Order, error) {
	return f.orders.FailPayment(ctx, userID, number, reason)
}

func (f *StorefrontFacade) ReportGatewayFailure(ctx context.Context, number int64, gatewayPaymentID, signature, reason string) error {
	return f.orders.ReportGatewayFailure(ctx, number, gatewayPaymentID, signature, reason)
}

func (f *StorefrontFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.orders.OrdersByUser(ctx, userID)
}

func (f *StorefrontFacade) Order(ctx context.Context, userID, number int64) (*model.Order, error) {
	return f.orders.OrderByNumber(ctx, userID, number)
}

func (f *StorefrontFacade) WatchOrder(ctx context.Context, userID, number int64) (*model.Order, <-chan stream.OrderEvent, func(), error) {
	return f.orders.Watch(ctx, userID, number)
}

func (f *StorefrontFacade) ValidateCoupon(ctx context.Context, code string, subtotal float64) (*usecase.CouponQuote, error) {
	return f.orders.ValidateCoupon(ctx, code, subtotal)
}

func (f *StorefrontFacade) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return f.addresses.List(ctx, userID)
}

func (f *StorefrontFacade) Address(ctx context.Context, userID, addressID int64) (*model.Address, error) {
	return f.addresses.Get(ctx, userID, addressID)
}

func (f *StorefrontFacade) CreateAddress(ctx context.Context, address *model.Address) (*model.Address, error) {
	return f.addresses.Create(ctx, address)
}

func (f *StorefrontFacade) UpdateAddress(ctx context.Context, address *model.Address) error {
	return f.addresses.Update(ctx, address)
}

func (f *StorefrontFacade) DeleteAddress(ctx context.Context, userID, addressID int64) error {
	return f.addresses.Delete(ctx, userID, addressID)
}

func (f *StorefrontFacade) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	return f.addresses.SetDefault(ctx, userID, addressID)
}

func (f *StorefrontFacade) Categories(ctx context.Context) ([]model.Category, error) {
	return f.catalog.Categories(ctx)
}

func (f *StorefrontFacade) Products(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return f.catalog.ProductsByCategory(ctx, categoryID)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *StorefrontFacade) Search(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	return f.catalog.Search(ctx, prefix, limit)
}

func (f *StorefrontFacade) CheckPincode(ctx context.Context, code string) (*model.Pincode, error) {
	return f.catalog.CheckPincode(ctx, code)
}

// StalePaymentOrders lists online orders whose payment stayed pending past
// the grace period.
func (f *StorefrontFacade) StalePaymentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	cutoff := f.now().Add(-f.paymentGrace)
	return f.orders.StaleOnlineOrders(ctx, cutoff, limit)
}

func (f *StorefrontFacade) LatestPayment(ctx context.Context, gatewayOrderID string) (*payment.GatewayPayment, error) {
	return f.gateway.LatestPayment(ctx, gatewayOrderID)
}

func (f *StorefrontFacade) SettlePayment(ctx context.Context, number int64, gatewayPaymentID string) error {
	return f.orders.SettlePayment(ctx, number, gatewayPaymentID)
}

func (f *StorefrontFacade) ExpirePayment(ctx context.Context, number int64, reason string) error {
	return f.orders.ExpirePayment(ctx, number, reason)
}
