package products

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanguardgg/sitecms/internal/dependencies/clock"
	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/services/media"
	"github.com/vanguardgg/sitecms/internal/storage"
	"github.com/vanguardgg/sitecms/internal/validation"
)

// CreateInput is the data accepted when listing a product
type CreateInput struct {
	Name        string                `json:"name" validate:"notblank"`
	Description string                `json:"description"`
	Price       *decimal.Decimal      `json:"price" validate:"required,gte=0"`
	Image       string                `json:"image"`
	Category    model.ProductCategory `json:"category" validate:"oneof=jerseys apparel accessories collectibles"`
	// InStock defaults to true when omitted
	InStock *bool `json:"inStock"`

	File *multipart.FileHeader `json:"-"`
}

// UpdateInput holds the fields to change; nil fields are left as they are
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *model.ProductCategory
	InStock     *bool

	File *multipart.FileHeader
}

// Service manages store products
type Service struct {
	storage storage.ProductStorage
	images  *media.Images
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new products Service
func New(storage storage.ProductStorage, images *media.Images, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		images:  images,
		clock:   clock,
		logger:  logger,
	}
}

// List returns every product, including those out of stock
func (s *Service) List(ctx context.Context) ([]*model.Product, error) {
	return s.storage.ListProducts(ctx, model.ProductFilter{})
}

// ListInStock returns the products shown on the public store
func (s *Service) ListInStock(ctx context.Context) ([]*model.Product, error) {
	return s.storage.ListProducts(ctx, model.ProductFilter{InStockOnly: true})
}

// Get returns a single product
func (s *Service) Get(ctx context.Context, id string) (*model.Product, error) {
	if err := model.ValidateID(id); err != nil {
		return nil, err
	}
	return s.storage.GetProduct(ctx, id)
}

// GetInStock returns a product only if it is visible on the public store
func (s *Service) GetInStock(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create lists a product. An image, uploaded or by URL, is required.
func (s *Service) Create(ctx context.Context, in CreateInput) (*model.Product, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.File == nil && strings.TrimSpace(in.Image) == "" {
		return nil, model.NewValidationError("image", "is required")
	}

	var url *string
	if in.Image != "" {
		url = &in.Image
	}
	img, err := s.images.Resolve(in.File, url, "")
	if err != nil {
		return nil, err
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	now := s.clock.Now()
	product := &model.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		Image:       img.Path,
		Category:    in.Category,
		InStock:     inStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.CreateProduct(ctx, product); err != nil {
		s.images.Rollback(img)
		s.logger.Error("failed to create product",
			slog.String("name", product.Name),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("product created",
		slog.String("product_id", product.ID),
		slog.String("category", string(product.Category)),
		slog.String("price", product.Price.StringFixed(2)),
	)
	return product, nil
}

// Update applies a partial update
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*model.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	img, err := s.images.Resolve(in.File, in.Image, product.Image)
	if err != nil {
		return nil, err
	}
	if img.Path == "" {
		return nil, model.NewValidationError("image", "is required")
	}
	previous := product.Image

	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	product.Image = img.Path
	product.UpdatedAt = s.clock.Now()

	if err := s.storage.UpdateProduct(ctx, product); err != nil {
		s.images.Rollback(img)
		return nil, err
	}
	s.images.Superseded(previous, img)

	s.logger.Info("product updated",
		slog.String("product_id", product.ID),
		slog.Bool("in_stock", product.InStock),
	)
	return product, nil
}

// Delete removes a product and its uploaded image
func (s *Service) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.storage.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.images.Discard(product.Image)

	s.logger.Info("product deleted", slog.String("product_id", id))
	return nil
}

func validateUpdate(in UpdateInput) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return model.NewValidationError("name", "is required")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return model.NewValidationError("price", "must be greater than or equal to 0")
	}
	if in.Category != nil && !in.Category.Valid() {
		return model.NewValidationError("category", "must be one of: jerseys, apparel, accessories, collectibles")
	}
	return nil
}
