package usecase

import (
	"bytes"
	"context"
	"path"
	"strings"

	"lapak-storefront/internal/domain"
	"lapak-storefront/pkg/utils"
)

// ReturnUsecase handles pengembalian requests and their moderation.
type ReturnUsecase struct {
	remote domain.ReturnGateway
}

func NewReturnUsecase(remote domain.ReturnGateway) *ReturnUsecase {
	return &ReturnUsecase{remote: remote}
}

// Create re-encodes the evidence photo (resize + WebP) and forwards the
// request. Photos that are not images are rejected.
func (u *ReturnUsecase) Create(ctx context.Context, in domain.CreateReturnInput) (*domain.ReturnRequest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	processed, contentType, err := utils.ProcessImage(bytes.NewReader(in.Photo), in.PhotoName, utils.EvidencePhotoMaxWidth)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	in.Photo = processed
	in.PhotoContentType = contentType
	in.PhotoName = evidenceName(in.PhotoName, contentType)
	return u.remote.CreateReturn(ctx, in)
}

func evidenceName(name, contentType string) string {
	base := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if base == "" || base == "." || base == "/" {
		base = "evidence"
	}
	if contentType == "image/webp" {
		return base + ".webp"
	}
	return base + ".jpg"
}

func (u *ReturnUsecase) Mine(ctx context.Context) ([]domain.ReturnRequest, error) {
	return u.remote.ListMyReturns(ctx)
}

func (u *ReturnUsecase) List(ctx context.Context) ([]domain.ReturnRequest, error) {
	return u.remote.ListReturns(ctx)
}

func (u *ReturnUsecase) Approve(ctx context.Context, id, note string) (*domain.ReturnRequest, error) {
	return u.remote.ApproveReturn(ctx, id, strings.TrimSpace(note))
}

func (u *ReturnUsecase) Reject(ctx context.Context, id, note string) (*domain.ReturnRequest, error) {
	return u.remote.RejectReturn(ctx, id, strings.TrimSpace(note))
}

func (u *ReturnUsecase) Damaged(ctx context.Context) ([]domain.DamagedProduct, error) {
	return u.remote.DamagedProducts(ctx)
}
