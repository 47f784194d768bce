package usecase

import (
	"context"
	"strings"

	"lapak-storefront/internal/domain"
)

type StaffUsecase struct {
	remote domain.StaffGateway
}

func NewStaffUsecase(remote domain.StaffGateway) *StaffUsecase {
	return &StaffUsecase{remote: remote}
}

func (u *StaffUsecase) List(ctx context.Context) ([]domain.Staff, error) {
	return u.remote.ListStaff(ctx)
}

func (u *StaffUsecase) Create(ctx context.Context, in domain.StaffInput) (*domain.Staff, error) {
	in = normalizeStaff(in)
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	return u.remote.CreateStaff(ctx, in)
}

// Update leaves the password unchanged when it is empty.
func (u *StaffUsecase) Update(ctx context.Context, id string, in domain.StaffInput) (*domain.Staff, error) {
	in = normalizeStaff(in)
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	return u.remote.UpdateStaff(ctx, id, in)
}

// Delete refuses to remove the calling account.
func (u *StaffUsecase) Delete(ctx context.Context, id string) error {
	if s := domain.SessionFromContext(ctx); s != nil && s.UserID == id {
		return domain.ErrForbidden
	}
	return u.remote.DeleteStaff(ctx, id)
}

func normalizeStaff(in domain.StaffInput) domain.StaffInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))
	return in
}
