package handler

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/invensys/inventory-api/internal/api/metrics"
	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
)

// ImageHandler handles product image upload, listing, serving and deletion.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

type imageResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Filename   string `json:"filename"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploaded_at"`
}

func toImageResponse(img *domain.ProductImage) imageResponse {
	return imageResponse{
		ID:         img.ID,
		ProductID:  img.ProductID,
		Filename:   img.Filename,
		URL:        img.URL,
		UploadedAt: img.UploadedAt.Format(time.RFC3339),
	}
}

// Upload handles POST /products/:productID/images. The multipart part must
// be named "file", be non-empty, and carry an image/* content type.
//
// @Summary      Upload a product image
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        productID  path      string  true  "Product id"
// @Param        file       formData  file    true  "Image file"
// @Success      201        {object}  imageResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /products/{productID}/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, "file must be an image")
	}

	src, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("read upload: %w", err)
	}

	image, err := h.service.Upload(c.Request().Context(), c.Param("productID"), data, fh.Filename)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.UploadsTotal.WithLabelValues("success").Inc()
	metrics.UploadBytes.Observe(float64(len(data)))
	return c.JSON(http.StatusCreated, toImageResponse(image))
}

// List handles GET /products/:productID/images.
//
// @Summary      List product images
// @Tags         images
// @Produce      json
// @Security     BearerAuth
// @Param        productID  path      string  true  "Product id"
// @Success      200        {array}   imageResponse
// @Router       /products/{productID}/images [get]
func (h *ImageHandler) List(c echo.Context) error {
	images, err := h.service.List(c.Request().Context(), c.Param("productID"))
	if err != nil {
		return err
	}

	out := make([]imageResponse, 0, len(images))
	for i := range images {
		out = append(out, toImageResponse(&images[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Serve handles GET /products/:productID/images/:filename, streaming the
// stored bytes with a content type inferred from the extension.
//
// @Summary      Serve a stored image
// @Tags         images
// @Produce      octet-stream
// @Param        productID  path  string  true  "Product id"
// @Param        filename   path  string  true  "Stored filename"
// @Success      200  {file}    file
// @Failure      404  {object}  map[string]string
// @Router       /products/{productID}/images/{filename} [get]
func (h *ImageHandler) Serve(c echo.Context) error {
	filename := c.Param("filename")

	rc, err := h.service.Serve(filename)
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Stream(http.StatusOK, contentType, rc)
}

// Delete handles DELETE /products/:productID/images/:imageID.
//
// @Summary      Delete a product image
// @Tags         images
// @Security     BearerAuth
// @Param        productID  path  string  true  "Product id"
// @Param        imageID    path  string  true  "Image id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /products/{productID}/images/{imageID} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("imageID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
