package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/server/http/dto"
	"github.com/greenmandi/storefront/internal/stream"
	"github.com/greenmandi/storefront/internal/usecase"
)

// OrderHandler manages checkout and payment endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders/checkout.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.CheckoutInput{
		UserID:        CurrentUserID(c),
		AddressID:     req.AddressID,
		CouponCode:    req.CouponCode,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, usecase.CheckoutItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := h.facade.Checkout(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder), errors.Is(err, domainErrors.ErrInvalidPayment):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrProductUnavailable):
			c.Status(http.StatusConflict)
		case errors.Is(err, domainErrors.ErrNotServiceable), errors.Is(err, domainErrors.ErrInvalidCoupon):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:number.
func (h *OrderHandler) Get(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}
	order, err := h.facade.Order(c.Request.Context(), CurrentUserID(c), number)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// ConfirmPayment handles POST /api/orders/:number/payment/confirm.
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}
	var req dto.PaymentConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.ConfirmPayment(c.Request.Context(), CurrentUserID(c), number, req.GatewayPaymentID, req.Signature)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// FailPayment handles POST /api/orders/:number/payment/fail.
func (h *OrderHandler) FailPayment(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}
	var req dto.PaymentFailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Reason == "" {
		req.Reason = "cancelled by user"
	}

	order, err := h.facade.FailPayment(c.Request.Context(), CurrentUserID(c), number, req.Reason)
	if err != nil {
		h.orderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Webhook handles POST /api/payment/webhook, the gateway's server-to-server
// notification channel. Authentication is the payment signature itself.
func (h *OrderHandler) Webhook(c *gin.Context) {
	var req dto.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	ctx := c.Request.Context()
	var err error
	switch req.Event {
	case "payment.captured":
		_, err = h.facade.ConfirmPayment(ctx, 0, req.OrderNumber, req.GatewayPaymentID, req.Signature)
	case "payment.failed":
		reason := req.Reason
		if reason == "" {
			reason = "payment failed at gateway"
		}
		err = h.facade.ReportGatewayFailure(ctx, req.OrderNumber, req.GatewayPaymentID, req.Signature, reason)
	default:
		c.Status(http.StatusBadRequest)
		return
	}

	if err != nil {
		h.orderError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// Events handles GET /api/orders/:number/events as a server-sent event
// stream. The current snapshot is sent first; the stream ends once the
// payment settles or the order reaches a terminal status.
func (h *OrderHandler) Events(c *gin.Context) {
	number, ok := orderNumber(c)
	if !ok {
		return
	}

	order, events, cancel, err := h.facade.WatchOrder(c.Request.Context(), CurrentUserID(c), number)
	if err != nil {
		h.orderError(c, err)
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	snapshot := stream.OrderEvent{
		Number:        order.Number,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		FailureReason: order.FailureReason,
	}
	c.SSEvent("status", toOrderEventResponse(snapshot))
	c.Writer.Flush()
	if snapshot.Terminal() {
		// A terminal snapshot already tells the whole story; a hub event
		// buffered before the subscription was cancelled would repeat it.
		return
	}

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, open := <-events:
			if !open {
				return
			}
			c.SSEvent("status", toOrderEventResponse(event))
			c.Writer.Flush()
		}
	}
}

// ValidateCoupon handles POST /api/orders/coupon.
func (h *OrderHandler) ValidateCoupon(c *gin.Context) {
	var req dto.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	quote, err := h.facade.ValidateCoupon(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCoupon) {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.CouponResponse{Code: quote.Code, Discount: quote.Discount})
}

func (h *OrderHandler) orderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, domainErrors.ErrForbidden):
		c.Status(http.StatusForbidden)
	case errors.Is(err, domainErrors.ErrInvalidSignature):
		c.Status(http.StatusBadRequest)
	case errors.Is(err, domainErrors.ErrInvalidTransition):
		c.Status(http.StatusConflict)
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func orderNumber(c *gin.Context) (int64, bool) {
	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil || number <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return number, true
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return dto.OrderResponse{
		Number:         order.Number,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		PaymentMethod:  string(order.PaymentMethod),
		Items:          items,
		Address:        toAddressResponse(order.Address),
		Subtotal:       order.Subtotal,
		DeliveryFee:    order.DeliveryFee,
		Discount:       order.Discount,
		CouponCode:     order.CouponCode,
		GrandTotal:     order.GrandTotal,
		GatewayOrderID: order.GatewayOrderID,
		FailureReason:  order.FailureReason,
		PlacedAt:       order.PlacedAt,
	}
}

func toOrderEventResponse(event stream.OrderEvent) dto.OrderEventResponse {
	return dto.OrderEventResponse{
		Number:        event.Number,
		Status:        string(event.Status),
		PaymentStatus: string(event.PaymentStatus),
		FailureReason: event.FailureReason,
	}
}
