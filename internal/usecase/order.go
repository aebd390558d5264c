package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/domain/repository"
	"github.com/greenmandi/storefront/internal/stream"
)

// OrderConfig tunes checkout pricing and payment verification.
type OrderConfig struct {
	DeliveryFee       float64
	FreeDeliveryAbove float64
	PaymentKeySecret  string
}

// CheckoutItem is a requested cart line.
type CheckoutItem struct {
	ProductID int64
	Quantity  int
}

// CheckoutInput carries everything needed to place an order.
type CheckoutInput struct {
	UserID        int64
	AddressID     int64
	Items         []CheckoutItem
	CouponCode    string
	PaymentMethod model.PaymentMethod
}

// CouponQuote is the result of validating a coupon against a subtotal.
type CouponQuote struct {
	Code     string
	Discount float64
}

// OrderUseCase coordinates checkout and the payment lifecycle.
type OrderUseCase struct {
	orders    repository.OrderRepository
	catalog   repository.CatalogRepository
	coupons   repository.CouponRepository
	pincodes  repository.PincodeRepository
	addresses repository.AddressRepository
	gateway   payment.Client
	hub       *stream.Hub
	cfg       OrderConfig
	now       func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	catalog repository.CatalogRepository,
	coupons repository.CouponRepository,
	pincodes repository.PincodeRepository,
	addresses repository.AddressRepository,
	gateway payment.Client,
	hub *stream.Hub,
	cfg OrderConfig,
) *OrderUseCase {
	return &OrderUseCase{
		orders:    orders,
		catalog:   catalog,
		coupons:   coupons,
		pincodes:  pincodes,
		addresses: addresses,
		gateway:   gateway,
		hub:       hub,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Checkout prices the cart, snapshots the delivery address, and creates the
// order. COD orders are placed immediately; online orders are registered with
// the payment gateway and stay payment_pending until the payment settles.
func (u *OrderUseCase) Checkout(ctx context.Context, input CheckoutInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, domainErrors.ErrEmptyOrder
	}
	if input.PaymentMethod != model.PaymentMethodCOD && input.PaymentMethod != model.PaymentMethodOnline {
		return nil, domainErrors.ErrInvalidPayment
	}

	address, err := u.addresses.Get(ctx, input.UserID, input.AddressID)
	if err != nil {
		return nil, err
	}
	if _, err := u.pincodes.Get(ctx, address.Pincode); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotServiceable
		}
		return nil, err
	}

	items, subtotal, err := u.priceItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	var discount float64
	couponCode := strings.ToUpper(strings.TrimSpace(input.CouponCode))
	if couponCode != "" {
		quote, err := u.ValidateCoupon(ctx, couponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discount = quote.Discount
	}

	deliveryFee := u.cfg.DeliveryFee
	if subtotal-discount >= u.cfg.FreeDeliveryAbove {
		deliveryFee = 0
	}
	grandTotal := subtotal - discount + deliveryFee

	order := &model.Order{
		Number:        u.now().UnixMilli(),
		UserID:        input.UserID,
		Address:       *address,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Discount:      discount,
		CouponCode:    couponCode,
		GrandTotal:    grandTotal,
		PaymentMethod: input.PaymentMethod,
		Status:        model.OrderStatusPlaced,
		PaymentStatus: model.PaymentStatusPending,
	}

	if input.PaymentMethod == model.PaymentMethodOnline {
		gatewayOrder, err := u.gateway.CreateOrder(ctx, grandTotal, strconv.FormatInt(order.Number, 10))
		if err != nil {
			return nil, err
		}
		order.Status = model.OrderStatusPaymentPending
		order.GatewayOrderID = gatewayOrder.ID
	}

	return u.orders.Create(ctx, order)
}

func (u *OrderUseCase) priceItems(ctx context.Context, requested []CheckoutItem) ([]model.OrderItem, float64, error) {
	ids := make([]int64, 0, len(requested))
	for _, item := range requested {
		if item.Quantity <= 0 {
			return nil, 0, domainErrors.ErrEmptyOrder
		}
		ids = append(ids, item.ProductID)
	}

	products, err := u.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]model.OrderItem, 0, len(requested))
	var subtotal float64
	for _, item := range requested {
		product, ok := byID[item.ProductID]
		if !ok || !product.Active || product.Stock < item.Quantity {
			return nil, 0, domainErrors.ErrProductUnavailable
		}
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
		subtotal += product.Price * float64(item.Quantity)
	}
	return items, subtotal, nil
}

// ValidateCoupon resolves a coupon code against a subtotal.
func (u *OrderUseCase) ValidateCoupon(ctx context.Context, code string, subtotal float64) (*CouponQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, domainErrors.ErrInvalidCoupon
	}
	coupon, err := u.coupons.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCoupon
		}
		return nil, err
	}
	if !coupon.Active || u.now().After(coupon.ExpiresAt) || subtotal < coupon.MinOrderValue {
		return nil, domainErrors.ErrInvalidCoupon
	}
	return &CouponQuote{Code: coupon.Code, Discount: coupon.DiscountFor(subtotal)}, nil
}

// ConfirmPayment settles an online order after the gateway reports success.
// The signature binds the gateway order to the payment attempt. A replayed
// confirmation of an already paid order is a no-op.
func (u *OrderUseCase) ConfirmPayment(ctx context.Context, userID, number int64, gatewayPaymentID, signature string) (*model.Order, error) {
	order, err := u.ownedOrder(ctx, userID, number)
	if err != nil {
		return nil, err
	}
	if !payment.VerifySignature(order.GatewayOrderID, gatewayPaymentID, signature, u.cfg.PaymentKeySecret) {
		return nil, domainErrors.ErrInvalidSignature
	}

	transitioned, err := u.orders.MarkPaid(ctx, number, gatewayPaymentID)
	if err != nil {
		return nil, err
	}
	updated, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if transitioned {
		u.publish(updated)
		return updated, nil
	}
	if updated.PaymentStatus == model.PaymentStatusPaid {
		return updated, nil
	}
	return nil, domainErrors.ErrInvalidTransition
}

// FailPayment records a failed or abandoned payment attempt. Failing an
// already failed order is a no-op; failing a paid order is rejected.
func (u *OrderUseCase) FailPayment(ctx context.Context, userID, number int64, reason string) (*model.Order, error) {
	if _, err := u.ownedOrder(ctx, userID, number); err != nil {
		return nil, err
	}

	transitioned, err := u.orders.MarkPaymentFailed(ctx, number, reason)
	if err != nil {
		return nil, err
	}
	updated, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if transitioned {
		u.publish(updated)
		return updated, nil
	}
	if updated.PaymentStatus == model.PaymentStatusFailed {
		return updated, nil
	}
	return nil, domainErrors.ErrInvalidTransition
}

// ReportGatewayFailure records a failed payment pushed by the gateway
// webhook. The signature proves the report came from the gateway.
func (u *OrderUseCase) ReportGatewayFailure(ctx context.Context, number int64, gatewayPaymentID, signature, reason string) error {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if !payment.VerifySignature(order.GatewayOrderID, gatewayPaymentID, signature, u.cfg.PaymentKeySecret) {
		return domainErrors.ErrInvalidSignature
	}
	return u.ExpirePayment(ctx, number, reason)
}

// StaleOnlineOrders returns online orders whose payment was still pending
// before the cutoff. Used by the reconciliation worker.
func (u *OrderUseCase) StaleOnlineOrders(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePaymentPending(ctx, cutoff, limit)
}

// SettlePayment marks an order paid based on the gateway's own record. Unlike
// ConfirmPayment no signature is required since the status was fetched over
// the authenticated gateway API. Settling a settled order is a no-op.
func (u *OrderUseCase) SettlePayment(ctx context.Context, number int64, gatewayPaymentID string) error {
	transitioned, err := u.orders.MarkPaid(ctx, number, gatewayPaymentID)
	if err != nil || !transitioned {
		return err
	}
	updated, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	u.publish(updated)
	return nil
}

// ExpirePayment marks a pending payment failed. Expiring a settled order is
// a no-op.
func (u *OrderUseCase) ExpirePayment(ctx context.Context, number int64, reason string) error {
	transitioned, err := u.orders.MarkPaymentFailed(ctx, number, reason)
	if err != nil || !transitioned {
		return err
	}
	updated, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	u.publish(updated)
	return nil
}

// OrdersByUser returns the user's orders, newest first.
func (u *OrderUseCase) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// OrderByNumber returns a single order owned by the user.
func (u *OrderUseCase) OrderByNumber(ctx context.Context, userID, number int64) (*model.Order, error) {
	return u.ownedOrder(ctx, userID, number)
}

// Watch subscribes to status updates for the order. The returned snapshot is
// current as of subscription; if the payment has already settled the channel
// is closed immediately so watchers never wait on a decided order.
func (u *OrderUseCase) Watch(ctx context.Context, userID, number int64) (*model.Order, <-chan stream.OrderEvent, func(), error) {
	ch, cancel := u.hub.Subscribe(number, 8)
	order, err := u.ownedOrder(ctx, userID, number)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	snapshot := stream.OrderEvent{
		Number:        order.Number,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		FailureReason: order.FailureReason,
	}
	if snapshot.Terminal() {
		cancel()
	}
	return order, ch, cancel, nil
}

func (u *OrderUseCase) ownedOrder(ctx context.Context, userID, number int64) (*model.Order, error) {
	order, err := u.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if userID != 0 && order.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

func (u *OrderUseCase) publish(order *model.Order) {
	u.hub.Publish(stream.OrderEvent{
		Number:        order.Number,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		FailureReason: order.FailureReason,
	})
}
