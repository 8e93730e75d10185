package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

// ImageService manages product images: the bytes live in the file store
// under a server-generated name, the metadata in the image repository.
type ImageService struct {
	products ports.ProductRepository
	images   ports.ImageRepository
	files    ports.FileStore
	logger   zerolog.Logger
}

func NewImageService(products ports.ProductRepository, images ports.ImageRepository, files ports.FileStore, logger zerolog.Logger) *ImageService {
	return &ImageService{products: products, images: images, files: files, logger: logger}
}

// Upload stores the bytes and records the metadata. The stored filename is
// generated by the file store; originalFilename contributes its extension
// only and is validated there.
func (s *ImageService) Upload(ctx context.Context, productID string, data []byte, originalFilename string) (*domain.ProductImage, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	filename, err := s.files.Store(data, originalFilename)
	if err != nil {
		return nil, err
	}

	image := &domain.ProductImage{
		ProductID:  product.ID,
		Filename:   filename,
		URL:        fmt.Sprintf("/api/v1/products/%s/images/%s", product.ID, filename),
		UploadedAt: time.Now().UTC(),
	}

	created, err := s.images.Create(ctx, image)
	if err != nil {
		// metadata write failed: don't leave orphaned bytes behind
		if _, delErr := s.files.Delete(filename); delErr != nil {
			s.logger.Error().Err(delErr).Str("filename", filename).Msg("failed to clean up stored file")
		}
		return nil, err
	}

	s.logger.Info().Str("product_id", product.ID).Str("filename", filename).Msg("image uploaded")
	return created, nil
}

func (s *ImageService) List(ctx context.Context, productID string) ([]domain.ProductImage, error) {
	return s.images.FindAllByProductID(ctx, productID)
}

// Serve opens the stored bytes for streaming. The caller closes the reader.
func (s *ImageService) Serve(filename string) (io.ReadCloser, error) {
	return s.files.Load(filename)
}

// Delete removes the stored bytes, then the metadata. A file already absent
// on disk is logged, not treated as an error.
func (s *ImageService) Delete(ctx context.Context, imageID string) error {
	image, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}

	present, err := s.files.Delete(image.Filename)
	if err != nil {
		return err
	}
	if !present {
		s.logger.Warn().Str("filename", image.Filename).Msg("image file already absent")
	}

	if err := s.images.Delete(ctx, image.ID); err != nil {
		return err
	}

	s.logger.Info().Str("image_id", image.ID).Str("filename", image.Filename).Msg("image deleted")
	return nil
}
