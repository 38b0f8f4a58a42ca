package services

import (
	"context"

	"storefront-service/common/logger"
	"storefront-service/database"
	"storefront-service/events"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService defines order placement.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.OrderIn) (database.Document, *ServiceError)
}

type orderServiceImpl struct {
	repo      repository.OrderRepo
	publisher events.Publisher
	metrics   MetricsRecorder
	logger    *zap.Logger
}

func NewOrderService(
	repo repository.OrderRepo,
	publisher events.Publisher,
	metrics MetricsRecorder,
	logger *zap.Logger,
) OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &orderServiceImpl{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateOrder prices and stores an order in status pending.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *models.OrderIn) (database.Document, *ServiceError) {
	if !s.repo.Available() {
		return nil, storageUnavailable()
	}
	if len(req.Items) == 0 {
		return nil, validationFailure(MsgEmptyOrder, nil)
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, in.Item())
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
		TotalAmount:     OrderTotal(items),
		Status:          models.OrderStatusPending,
	}

	id, err := s.repo.Create(ctx, order.Document())
	if err != nil {
		s.log(ctx).Error("Failed to create order", zap.String("customer_email", order.CustomerEmail), zap.Error(err))
		return nil, storageFailure(err)
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("Failed to read back created order", zap.String("order_id", id.Hex()), zap.Error(err))
		return nil, storageFailure(err)
	}

	out := database.ToAPIShape(doc)
	if err := s.publisher.Publish(ctx, events.NewEvent(models.EventOrderPlaced, id.Hex(), out)); err != nil {
		s.log(ctx).Error("Failed to publish order_placed event", zap.String("order_id", id.Hex()), zap.Error(err))
	}
	recordAsync(s.metrics, awspkg.MetricOrdersCreated)

	s.log(ctx).Info("Order placed",
		zap.String("order_id", id.Hex()),
		zap.Int("items", len(items)),
		zap.Float64("total_amount", order.TotalAmount),
	)
	return out, nil
}

// OrderTotal sums price x quantity over items, counting quantities below 1
// as 1, and rounds half away from zero to 2 decimal places.
func OrderTotal(items []models.OrderItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(qty)))
		total = total.Add(line)
	}
	return total.Round(2).InexactFloat64()
}

func (s *orderServiceImpl) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}
