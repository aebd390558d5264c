package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/stream"
	testhelpers "github.com/greenmandi/storefront/internal/test"
)

const testKeySecret = "test-secret"

type orderFixture struct {
	uc        *OrderUseCase
	orders    *testhelpers.OrderRepositoryStub
	catalog   *testhelpers.CatalogRepositoryStub
	coupons   *testhelpers.CouponRepositoryStub
	pincodes  *testhelpers.PincodeRepositoryStub
	addresses *testhelpers.AddressRepositoryStub
	gateway   *testhelpers.PaymentClientStub
	hub       *stream.Hub
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    testhelpers.NewOrderRepositoryStub(),
		catalog:   testhelpers.NewCatalogRepositoryStub(),
		coupons:   testhelpers.NewCouponRepositoryStub(),
		pincodes:  testhelpers.NewPincodeRepositoryStub(),
		addresses: testhelpers.NewAddressRepositoryStub(),
		gateway:   testhelpers.NewPaymentClientStub(),
		hub:       stream.NewHub(),
	}
	f.uc = NewOrderUseCase(
		f.orders, f.catalog, f.coupons, f.pincodes, f.addresses, f.gateway, f.hub,
		OrderConfig{DeliveryFee: 40, FreeDeliveryAbove: 500, PaymentKeySecret: testKeySecret},
	)
	// Advance a fake clock per call so order numbers never collide.
	base := time.Now()
	var ticks int64
	f.uc.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Millisecond)
	}

	f.pincodes.Pincodes["560001"] = model.Pincode{Code: "560001", Area: "Bengaluru GPO", DeliveryDays: 1}
	f.addresses.Addresses[7] = []*model.Address{
		{UserID: 7, AddressID: 1, Line1: "12 Green St", Pincode: "560001", IsDefault: true},
		{UserID: 7, AddressID: 2, Line1: "4 Hill Rd", Pincode: "999999"},
	}
	f.catalog.Products[1] = model.Product{ID: 1, CategoryID: 1, Name: "Organic Tomato", Unit: "kg", Price: 80, Stock: 25, Active: true}
	f.catalog.Products[2] = model.Product{ID: 2, CategoryID: 1, Name: "Organic Spinach", Unit: "bunch", Price: 30, Stock: 10, Active: true}
	f.catalog.Products[3] = model.Product{ID: 3, CategoryID: 2, Name: "Mango", Unit: "kg", Price: 200, Stock: 0, Active: true}
	f.catalog.Products[4] = model.Product{ID: 4, CategoryID: 2, Name: "Jackfruit", Unit: "kg", Price: 120, Stock: 5, Active: false}
	f.coupons.Coupons["ORGANIC10"] = model.Coupon{
		Code: "ORGANIC10", Kind: model.CouponKindPercent, Value: 10, MinOrderValue: 100,
		ExpiresAt: time.Now().Add(24 * time.Hour), Active: true,
	}
	return f
}

func TestCheckoutCODPlacesOrder(t *testing.T) {
	f := newOrderFixture()

	order, err := f.uc.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		AddressID:     1,
		Items:         []CheckoutItem{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
		PaymentMethod: model.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != model.OrderStatusPlaced {
		t.Fatalf("expected placed status, got %s", order.Status)
	}
	if order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", order.PaymentStatus)
	}
	if order.Subtotal != 190 || order.DeliveryFee != 40 || order.GrandTotal != 230 {
		t.Fatalf("unexpected pricing: %+v", order)
	}
	if order.Number == 0 {
		t.Fatal("expected order number assigned")
	}
	if order.Address.Pincode != "560001" {
		t.Fatalf("address not snapshotted: %+v", order.Address)
	}
	if len(f.gateway.CreatedOrders) != 0 {
		t.Fatal("COD checkout must not touch the gateway")
	}
}

func TestCheckoutOnlineRegistersGatewayOrder(t *testing.T) {
	f := newOrderFixture()

	order, err := f.uc.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		AddressID:     1,
		Items:         []CheckoutItem{{ProductID: 1, Quantity: 2}},
		PaymentMethod: model.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != model.OrderStatusPaymentPending {
		t.Fatalf("expected payment_pending, got %s", order.Status)
	}
	if order.GatewayOrderID == "" {
		t.Fatal("expected gateway order registered")
	}
	if len(f.gateway.CreatedOrders) != 1 || f.gateway.CreatedOrders[0].Amount != order.GrandTotal {
		t.Fatalf("unexpected gateway orders: %+v", f.gateway.CreatedOrders)
	}
}

func TestCheckoutAppliesCouponAndFreeDelivery(t *testing.T) {
	f := newOrderFixture()

	// 8 kg of tomatoes: 640 subtotal, 64 off, free delivery above 500.
	order, err := f.uc.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		AddressID:     1,
		Items:         []CheckoutItem{{ProductID: 1, Quantity: 8}},
		CouponCode:    "organic10",
		PaymentMethod: model.PaymentMethodCOD,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Discount != 64 {
		t.Fatalf("expected discount 64, got %v", order.Discount)
	}
	if order.DeliveryFee != 0 {
		t.Fatalf("expected free delivery, got %v", order.DeliveryFee)
	}
	if order.GrandTotal != 576 {
		t.Fatalf("expected total 576, got %v", order.GrandTotal)
	}
	if order.CouponCode != "ORGANIC10" {
		t.Fatalf("expected normalized coupon code, got %q", order.CouponCode)
	}
}

func TestCheckoutRejections(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	base := CheckoutInput{UserID: 7, AddressID: 1, PaymentMethod: model.PaymentMethodCOD}

	cases := []struct {
		name    string
		mutate  func(*CheckoutInput)
		wantErr error
	}{
		{"empty cart", func(in *CheckoutInput) { in.Items = nil }, domainErrors.ErrEmptyOrder},
		{"zero quantity", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 1, Quantity: 0}}
		}, domainErrors.ErrEmptyOrder},
		{"unknown payment method", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 1, Quantity: 1}}
			in.PaymentMethod = "wallet"
		}, domainErrors.ErrInvalidPayment},
		{"unknown address", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 1, Quantity: 1}}
			in.AddressID = 99
		}, domainErrors.ErrNotFound},
		{"unserviceable address", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 1, Quantity: 1}}
			in.AddressID = 2
		}, domainErrors.ErrNotServiceable},
		{"unknown product", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 99, Quantity: 1}}
		}, domainErrors.ErrProductUnavailable},
		{"out of stock", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 3, Quantity: 1}}
		}, domainErrors.ErrProductUnavailable},
		{"inactive product", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 4, Quantity: 1}}
		}, domainErrors.ErrProductUnavailable},
		{"unknown coupon", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 1, Quantity: 1}}
			in.CouponCode = "NOPE"
		}, domainErrors.ErrInvalidCoupon},
		{"coupon below minimum", func(in *CheckoutInput) {
			in.Items = []CheckoutItem{{ProductID: 2, Quantity: 1}}
			in.CouponCode = "ORGANIC10"
		}, domainErrors.ErrInvalidCoupon},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := base
			tc.mutate(&input)
			if _, err := f.uc.Checkout(ctx, input); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidateCoupon(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()

	quote, err := f.uc.ValidateCoupon(ctx, " organic10 ", 200)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if quote.Code != "ORGANIC10" || quote.Discount != 20 {
		t.Fatalf("unexpected quote: %+v", quote)
	}

	if _, err := f.uc.ValidateCoupon(ctx, "ORGANIC10", 50); !errors.Is(err, domainErrors.ErrInvalidCoupon) {
		t.Fatalf("expected ErrInvalidCoupon below minimum, got %v", err)
	}

	expired := f.coupons.Coupons["ORGANIC10"]
	expired.ExpiresAt = time.Now().Add(-time.Hour)
	f.coupons.Coupons["OLD"] = expired
	if _, err := f.uc.ValidateCoupon(ctx, "OLD", 200); !errors.Is(err, domainErrors.ErrInvalidCoupon) {
		t.Fatalf("expected ErrInvalidCoupon for expired coupon, got %v", err)
	}
}

func onlineOrder(f *orderFixture, t *testing.T) *model.Order {
	t.Helper()
	order, err := f.uc.Checkout(context.Background(), CheckoutInput{
		UserID:        7,
		AddressID:     1,
		Items:         []CheckoutItem{{ProductID: 1, Quantity: 2}},
		PaymentMethod: model.PaymentMethodOnline,
	})
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	return order
}

func TestConfirmPayment(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)
	signature := payment.Sign(order.GatewayOrderID, "pay_1", testKeySecret)

	events, cancel := f.hub.Subscribe(order.Number, 2)
	defer cancel()

	updated, err := f.uc.ConfirmPayment(ctx, 7, order.Number, "pay_1", signature)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if updated.PaymentStatus != model.PaymentStatusPaid || updated.Status != model.OrderStatusPlaced {
		t.Fatalf("unexpected state: %+v", updated)
	}
	if updated.GatewayPayment != "pay_1" {
		t.Fatalf("payment id not recorded: %+v", updated)
	}

	select {
	case ev := <-events:
		if ev.PaymentStatus != model.PaymentStatusPaid {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected paid event published")
	}

	// Replay is a no-op rather than an error.
	again, err := f.uc.ConfirmPayment(ctx, 7, order.Number, "pay_1", signature)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if again.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("unexpected replay state: %+v", again)
	}
}

func TestConfirmPaymentBadSignature(t *testing.T) {
	f := newOrderFixture()
	order := onlineOrder(f, t)

	_, err := f.uc.ConfirmPayment(context.Background(), 7, order.Number, "pay_1", "deadbeef")
	if !errors.Is(err, domainErrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	stored, _ := f.orders.GetByNumber(context.Background(), order.Number)
	if stored.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("order must stay pending: %+v", stored)
	}
}

func TestConfirmPaymentAfterFailureRejected(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)

	if _, err := f.uc.FailPayment(ctx, 7, order.Number, "card declined"); err != nil {
		t.Fatalf("fail payment failed: %v", err)
	}

	signature := payment.Sign(order.GatewayOrderID, "pay_1", testKeySecret)
	if _, err := f.uc.ConfirmPayment(ctx, 7, order.Number, "pay_1", signature); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestFailPayment(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)

	events, cancel := f.hub.Subscribe(order.Number, 2)
	defer cancel()

	updated, err := f.uc.FailPayment(ctx, 7, order.Number, "card declined")
	if err != nil {
		t.Fatalf("fail payment failed: %v", err)
	}
	if updated.Status != model.OrderStatusPaymentFailed || updated.PaymentStatus != model.PaymentStatusFailed {
		t.Fatalf("unexpected state: %+v", updated)
	}
	if updated.FailureReason != "card declined" {
		t.Fatalf("reason not recorded: %+v", updated)
	}

	select {
	case ev := <-events:
		if ev.FailureReason != "card declined" {
			t.Fatalf("unexpected event: %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected failure event published")
	}

	// Repeated failure reports are a no-op.
	if _, err := f.uc.FailPayment(ctx, 7, order.Number, "timeout"); err != nil {
		t.Fatalf("repeat fail errored: %v", err)
	}

	// A settled payment cannot fail afterwards.
	paid := onlineOrder(f, t)
	signature := payment.Sign(paid.GatewayOrderID, "pay_2", testKeySecret)
	if _, err := f.uc.ConfirmPayment(ctx, 7, paid.Number, "pay_2", signature); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if _, err := f.uc.FailPayment(ctx, 7, paid.Number, "late failure"); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestReportGatewayFailure(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)

	if err := f.uc.ReportGatewayFailure(ctx, order.Number, "pay_1", "deadbeef", "declined"); !errors.Is(err, domainErrors.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}

	signature := payment.Sign(order.GatewayOrderID, "pay_1", testKeySecret)
	if err := f.uc.ReportGatewayFailure(ctx, order.Number, "pay_1", signature, "declined"); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	stored, _ := f.orders.GetByNumber(ctx, order.Number)
	if stored.Status != model.OrderStatusPaymentFailed || stored.FailureReason != "declined" {
		t.Fatalf("unexpected state: %+v", stored)
	}

	// A settled order ignores late failure reports.
	paid := onlineOrder(f, t)
	if err := f.uc.SettlePayment(ctx, paid.Number, "pay_9"); err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	late := payment.Sign(paid.GatewayOrderID, "pay_9", testKeySecret)
	if err := f.uc.ReportGatewayFailure(ctx, paid.Number, "pay_9", late, "declined"); err != nil {
		t.Fatalf("late report must be a no-op: %v", err)
	}
	settled, _ := f.orders.GetByNumber(ctx, paid.Number)
	if settled.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("settled order must stay paid: %+v", settled)
	}
}

func TestOrderOwnership(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)

	if _, err := f.uc.OrderByNumber(ctx, 8, order.Number); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.uc.ConfirmPayment(ctx, 8, order.Number, "pay_1", "sig"); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	got, err := f.uc.OrderByNumber(ctx, 7, order.Number)
	if err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if got.Number != order.Number {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestWatchStreamsUntilSettled(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)

	snapshot, events, cancel, err := f.uc.Watch(ctx, 7, order.Number)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer cancel()
	if snapshot.Status != model.OrderStatusPaymentPending {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	signature := payment.Sign(order.GatewayOrderID, "pay_1", testKeySecret)
	if _, err := f.uc.ConfirmPayment(ctx, 7, order.Number, "pay_1", signature); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	var paidSeen int
	for ev := range events {
		if ev.PaymentStatus == model.PaymentStatusPaid {
			paidSeen++
		}
	}
	if paidSeen != 1 {
		t.Fatalf("expected paid delivered exactly once, got %d", paidSeen)
	}
	if f.hub.Subscribers(order.Number) != 0 {
		t.Fatal("expected watcher unsubscribed after settlement")
	}
}

func TestWatchSettledOrderClosesImmediately(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	order := onlineOrder(f, t)
	signature := payment.Sign(order.GatewayOrderID, "pay_1", testKeySecret)
	if _, err := f.uc.ConfirmPayment(ctx, 7, order.Number, "pay_1", signature); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	snapshot, events, cancel, err := f.uc.Watch(ctx, 7, order.Number)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer cancel()
	if snapshot.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	select {
	case _, open := <-events:
		if open {
			t.Fatal("expected closed channel for settled order")
		}
	case <-time.After(time.Second):
		t.Fatal("expected channel closed immediately")
	}
}

func TestOrdersByUser(t *testing.T) {
	f := newOrderFixture()
	ctx := context.Background()
	first := onlineOrder(f, t)
	second := onlineOrder(f, t)

	orders, err := f.uc.OrdersByUser(ctx, 7)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Number != second.Number || orders[1].Number != first.Number {
		t.Fatalf("expected newest first: %+v", orders)
	}
}
