package usecase

import (
	"context"
	"io"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/logger"
	"lapak-storefront/pkg/utils"
)

// ImageStore keeps processed images and serves them from a public URL.
type ImageStore interface {
	Upload(ctx context.Context, folder, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// UploadUsecase prepares admin product images for the catalog.
type UploadUsecase struct {
	store ImageStore
}

func NewUploadUsecase(store ImageStore) *UploadUsecase {
	return &UploadUsecase{store: store}
}

// UploadProductImage resizes and re-encodes an image, then stores it under
// products/ and returns its URL.
func (u *UploadUsecase) UploadProductImage(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	if !utils.IsImage(contentType) {
		return "", domain.ErrInvalidInput
	}
	data, outType, err := utils.ProcessImage(r, name, utils.ProductImageMaxWidth)
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	url, err := u.store.Upload(ctx, "products", name, data, outType)
	if err != nil {
		return "", err
	}
	logger.WithContext(ctx).Info().Str("url", url).Int("bytes", len(data)).Msg("Product image uploaded")
	return url, nil
}

func (u *UploadUsecase) DeleteImage(ctx context.Context, fileURL string) error {
	if fileURL == "" {
		return domain.ErrInvalidInput
	}
	return u.store.Delete(ctx, fileURL)
}
