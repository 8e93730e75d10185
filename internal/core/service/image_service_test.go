package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

func newTestImageService(repo *stubProductRepo, images *stubImageRepo, files *stubFileStore) *ImageService {
	return NewImageService(repo, images, files, zerolog.Nop())
}

func seedProduct(t *testing.T, repo *stubProductRepo) *domain.Product {
	t.Helper()
	p, err := repo.Create(context.Background(), &domain.Product{Name: "Widget"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return p
}

func TestImageService_Upload_Success(t *testing.T) {
	repo := newStubProductRepo()
	images := newStubImageRepo()
	files := newStubFileStore()
	svc := newTestImageService(repo, images, files)
	product := seedProduct(t, repo)

	img, err := svc.Upload(context.Background(), product.ID, []byte("png-bytes"), "photo.png")
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if img.ProductID != product.ID {
		t.Fatalf("unexpected product id: %s", img.ProductID)
	}
	wantURL := "/api/v1/products/" + product.ID + "/images/" + img.Filename
	if img.URL != wantURL {
		t.Fatalf("expected url %s, got %s", wantURL, img.URL)
	}

	rc, err := svc.Serve(img.Filename)
	if err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "png-bytes" {
		t.Fatalf("served bytes differ from uploaded bytes")
	}
}

func TestImageService_Upload_UnknownProduct(t *testing.T) {
	svc := newTestImageService(newStubProductRepo(), newStubImageRepo(), newStubFileStore())

	if _, err := svc.Upload(context.Background(), "missing", []byte("x"), "a.png"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestImageService_Upload_EmptyPayload(t *testing.T) {
	repo := newStubProductRepo()
	svc := newTestImageService(repo, newStubImageRepo(), newStubFileStore())
	product := seedProduct(t, repo)

	if _, err := svc.Upload(context.Background(), product.ID, nil, "a.png"); !errors.Is(err, domain.ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
}

type failingImageRepo struct {
	*stubImageRepo
}

func (r *failingImageRepo) Create(context.Context, *domain.ProductImage) (*domain.ProductImage, error) {
	return nil, errors.New("insert failed")
}

func TestImageService_Upload_MetadataFailureCleansUpFile(t *testing.T) {
	repo := newStubProductRepo()
	files := newStubFileStore()
	svc := NewImageService(repo, &failingImageRepo{newStubImageRepo()}, files, zerolog.Nop())
	product := seedProduct(t, repo)

	if _, err := svc.Upload(context.Background(), product.ID, []byte("x"), "a.png"); err == nil {
		t.Fatalf("expected error")
	}
	if len(files.files) != 0 {
		t.Fatalf("expected orphaned file to be removed, %d left", len(files.files))
	}
}

func TestImageService_List(t *testing.T) {
	repo := newStubProductRepo()
	images := newStubImageRepo()
	files := newStubFileStore()
	svc := newTestImageService(repo, images, files)
	product := seedProduct(t, repo)

	for i := 0; i < 2; i++ {
		if _, err := svc.Upload(context.Background(), product.ID, []byte{byte(i + 1)}, "a.png"); err != nil {
			t.Fatalf("upload %d: %v", i, err)
		}
	}

	list, err := svc.List(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 images, got %d", len(list))
	}
	for _, img := range list {
		if !strings.HasPrefix(img.URL, "/api/v1/products/") {
			t.Fatalf("unexpected url: %s", img.URL)
		}
	}
}

func TestImageService_Delete(t *testing.T) {
	repo := newStubProductRepo()
	images := newStubImageRepo()
	files := newStubFileStore()
	svc := newTestImageService(repo, images, files)
	product := seedProduct(t, repo)

	img, err := svc.Upload(context.Background(), product.ID, []byte("x"), "a.png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), img.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.Serve(img.Filename); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound after delete, got %v", err)
	}
	if _, err := images.FindByID(context.Background(), img.ID); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected metadata gone, got %v", err)
	}
}

func TestImageService_Delete_UnknownImage(t *testing.T) {
	svc := newTestImageService(newStubProductRepo(), newStubImageRepo(), newStubFileStore())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

var _ ports.ImageService = (*ImageService)(nil)
var _ ports.ProductService = (*ProductService)(nil)
var _ ports.AuthService = (*AuthService)(nil)
var _ ports.TokenService = (*JWTTokenService)(nil)
