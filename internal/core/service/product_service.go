package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductService implements catalog CRUD on top of the repository, with a
// read-through cache for single-product lookups. Deleting a product also
// removes its image metadata and stored bytes.
type ProductService struct {
	repo   ports.ProductRepository
	images ports.ImageRepository
	files  ports.FileStore
	cache  ports.ProductCache
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, images ports.ImageRepository, files ports.FileStore, cache ports.ProductCache, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, images: images, files: files, cache: cache, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Quantity:    input.Quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", created.ID).Str("name", created.Name).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if cached, err := s.cache.Get(ctx, id); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("cache lookup failed")
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("cache fill failed")
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Description = strings.TrimSpace(input.Description)
	product.Price = input.Price
	product.Quantity = input.Quantity
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("cache invalidation failed")
	}
	return product, nil
}

// Delete removes the product together with its image metadata and the bytes
// behind each image. Missing files are logged and skipped.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	images, err := s.images.FindAllByProductID(ctx, id)
	if err != nil {
		return err
	}
	for _, img := range images {
		if _, err := s.files.Delete(img.Filename); err != nil {
			s.logger.Error().Err(err).Str("filename", img.Filename).Msg("failed to delete image file")
		}
		if err := s.images.Delete(ctx, img.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Debug().Err(err).Str("product_id", id).Msg("cache invalidation failed")
	}

	s.logger.Info().Str("product_id", id).Int("images_removed", len(images)).Msg("product deleted")
	return nil
}

func (s *ProductService) List(ctx context.Context, page, size int, nameFilter string) (*ports.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	items, total, err := s.repo.FindPage(ctx, page, size, strings.TrimSpace(nameFilter))
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.ProductPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
