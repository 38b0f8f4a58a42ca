package services

import (
	"context"
	"errors"

	"storefront-service/cache"
	"storefront-service/common/logger"
	"storefront-service/database"
	"storefront-service/events"
	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
	"storefront-service/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductService defines the catalog operations.
type ProductService interface {
	ListProducts(ctx context.Context) ([]database.Document, *ServiceError)
	GetProduct(ctx context.Context, id string) (database.Document, *ServiceError)
	CreateProduct(ctx context.Context, req *models.ProductIn) (database.Document, *ServiceError)
	SeedProducts(ctx context.Context) ([]database.Document, *ServiceError)
}

type productServiceImpl struct {
	repo      repository.ProductRepo
	cache     *cache.ProductCache
	publisher events.Publisher
	metrics   MetricsRecorder
	logger    *zap.Logger
}

// NewProductService creates a ProductService. cache, publisher and metrics
// may be nil.
func NewProductService(
	repo repository.ProductRepo,
	productCache *cache.ProductCache,
	publisher events.Publisher,
	metrics MetricsRecorder,
	logger *zap.Logger,
) ProductService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &productServiceImpl{
		repo:      repo,
		cache:     productCache,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// ListProducts returns every product. Without a database it returns an
// empty list instead of failing.
func (s *productServiceImpl) ListProducts(ctx context.Context) ([]database.Document, *ServiceError) {
	if !s.repo.Available() {
		return []database.Document{}, nil
	}

	cached, version, ok := s.cache.GetList(ctx)
	if ok {
		return cached, nil
	}

	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log(ctx).Error("Failed to list products", zap.Error(err))
		return nil, storageFailure(err)
	}

	out := database.ToAPIShapes(docs)
	s.cache.SetListAsync(version, out)
	return out, nil
}

// GetProduct returns one product by its hex identifier.
func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (database.Document, *ServiceError) {
	if !s.repo.Available() {
		return nil, storageUnavailable()
	}

	oid, err := database.ParseID(id)
	if err != nil {
		return nil, validationFailure(MsgInvalidProductID, err)
	}

	if doc, ok := s.cache.GetProduct(ctx, oid.Hex()); ok {
		return doc, nil
	}

	doc, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, database.ErrDocumentNotFound) {
			return nil, notFound(MsgProductNotFound, err)
		}
		s.log(ctx).Error("Failed to fetch product", zap.String("product_id", id), zap.Error(err))
		return nil, storageFailure(err)
	}

	out := database.ToAPIShape(doc)
	s.cache.SetProductAsync(oid.Hex(), out)
	return out, nil
}

// CreateProduct stores a product and returns it as re-read from storage.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.ProductIn) (database.Document, *ServiceError) {
	if !s.repo.Available() {
		return nil, storageUnavailable()
	}

	product := req.Product()
	id, err := s.repo.Create(ctx, product.Document())
	if err != nil {
		s.log(ctx).Error("Failed to create product", zap.String("title", product.Title), zap.Error(err))
		return nil, storageFailure(err)
	}

	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Error("Failed to read back created product", zap.String("product_id", id.Hex()), zap.Error(err))
		return nil, storageFailure(err)
	}

	out := database.ToAPIShape(doc)
	s.invalidateList(ctx)
	s.publish(ctx, events.NewEvent(models.EventProductCreated, id.Hex(), out))
	recordAsync(s.metrics, awspkg.MetricProductsCreated)

	s.log(ctx).Info("Product created", zap.String("product_id", id.Hex()), zap.String("title", product.Title))
	return out, nil
}

// SeedProducts inserts the sample catalog and returns the inserted products.
func (s *productServiceImpl) SeedProducts(ctx context.Context) ([]database.Document, *ServiceError) {
	if !s.repo.Available() {
		return nil, storageUnavailable()
	}

	catalog := sampleCatalog()
	ids := make([]primitive.ObjectID, 0, len(catalog))
	for _, p := range catalog {
		id, err := s.repo.Create(ctx, p.Document())
		if err != nil {
			s.log(ctx).Error("Failed to seed product", zap.String("title", p.Title), zap.Error(err))
			return nil, storageFailure(err)
		}
		ids = append(ids, id)
	}

	docs, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		s.log(ctx).Error("Failed to read back seeded products", zap.Error(err))
		return nil, storageFailure(err)
	}

	out := database.ToAPIShapes(docs)
	s.invalidateList(ctx)
	for _, doc := range out {
		id, _ := doc[database.APIIDField].(string)
		s.publish(ctx, events.NewEvent(models.EventProductCreated, id, doc))
	}
	recordAsync(s.metrics, awspkg.MetricProductsSeeded)

	s.log(ctx).Info("Seeded sample products", zap.Int("count", len(out)))
	return out, nil
}

func (s *productServiceImpl) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log(ctx).Warn("Failed to invalidate product list cache", zap.Error(err))
	}
}

func (s *productServiceImpl) publish(ctx context.Context, event models.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log(ctx).Error("Failed to publish event",
			zap.String("event_type", event.EventType),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
	}
}

func (s *productServiceImpl) log(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, s.logger)
}
