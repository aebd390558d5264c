package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	"github.com/greenmandi/storefront/internal/domain/model"
)

// PaymentFacade exposes the subset of application functionality required by the worker.
type PaymentFacade interface {
	StalePaymentOrders(ctx context.Context, limit int) ([]model.Order, error)
	LatestPayment(ctx context.Context, gatewayOrderID string) (*payment.GatewayPayment, error)
	SettlePayment(ctx context.Context, number int64, gatewayPaymentID string) error
	ExpirePayment(ctx context.Context, number int64, reason string) error
}

// Failure reasons recorded by the reconciler.
const (
	ReasonAbandoned     = "payment not completed"
	ReasonGatewayFailed = "payment failed at gateway"
)

// PaymentReconciler polls the gateway for orders stuck in payment_pending and
// settles or expires them concurrently. It covers checkouts where the client
// never delivered the payment outcome back to the server.
type PaymentReconciler struct {
	facade       PaymentFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewPaymentReconciler constructs the reconciliation worker pool.
func NewPaymentReconciler(facade PaymentFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *PaymentReconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &PaymentReconciler{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Order, batchSize*workers),
	}
}

// Start launches background reconciliation.
func (p *PaymentReconciler) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *PaymentReconciler) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *PaymentReconciler) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *PaymentReconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := p.facade.StalePaymentOrders(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch stale orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- order:
		}
	}
}

func (p *PaymentReconciler) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-p.jobs:
			if !ok {
				return
			}
			p.reconcile(ctx, order)
		}
	}
}

func (p *PaymentReconciler) reconcile(ctx context.Context, order model.Order) {
	result, err := p.facade.LatestPayment(ctx, order.GatewayOrderID)
	if err != nil {
		if errors.Is(err, payment.ErrOrderUnknown) {
			// No payment attempt reached the gateway inside the grace
			// period; release the order.
			if err := p.facade.ExpirePayment(ctx, order.Number, ReasonAbandoned); err != nil {
				p.logger.Error("expire payment failed", slog.Int64("order", order.Number), slog.String("error", err.Error()))
			}
			return
		}
		p.logger.Error("gateway payment fetch failed", slog.Int64("order", order.Number), slog.String("error", err.Error()))
		return
	}

	switch result.Status {
	case payment.GatewayPaymentCaptured:
		if err := p.facade.SettlePayment(ctx, order.Number, result.ID); err != nil {
			p.logger.Error("settle payment failed", slog.Int64("order", order.Number), slog.String("error", err.Error()))
		}
	case payment.GatewayPaymentFailed:
		if err := p.facade.ExpirePayment(ctx, order.Number, ReasonGatewayFailed); err != nil {
			p.logger.Error("expire payment failed", slog.Int64("order", order.Number), slog.String("error", err.Error()))
		}
	default:
		// created or authorized: the attempt is still in flight, check
		// again on the next poll.
	}
}
