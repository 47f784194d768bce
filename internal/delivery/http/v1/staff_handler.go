package v1

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

// StaffHandler manages petugas and admin accounts.
type StaffHandler struct {
	staffUC *usecase.StaffUsecase
}

func NewStaffHandler(uc *usecase.StaffUsecase) *StaffHandler {
	return &StaffHandler{staffUC: uc}
}

func (h *StaffHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.staffUC.List(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if staff == nil {
		staff = []domain.Staff{}
	}
	utils.WriteData(w, http.StatusOK, staff)
}

func (h *StaffHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req domain.StaffInput
	if !decode(w, r, &req) {
		return
	}
	s, err := h.staffUC.Create(r.Context(), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, s)
}

func (h *StaffHandler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req domain.StaffInput
	if !decode(w, r, &req) {
		return
	}
	s, err := h.staffUC.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, s)
}

func (h *StaffHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	if err := h.staffUC.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Staff deleted")
}
