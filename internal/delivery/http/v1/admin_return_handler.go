package v1

import (
	"net/http"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

type AdminReturnHandler struct {
	returnUC *usecase.ReturnUsecase
}

func NewAdminReturnHandler(uc *usecase.ReturnUsecase) *AdminReturnHandler {
	return &AdminReturnHandler{returnUC: uc}
}

// GET /api/v1/admin/returns
func (h *AdminReturnHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.returnUC.List(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]domain.ReturnRequest, 0, len(returns))
		for _, ret := range returns {
			if ret.Status == status {
				filtered = append(filtered, ret)
			}
		}
		returns = filtered
	}
	if returns == nil {
		returns = []domain.ReturnRequest{}
	}
	utils.WriteData(w, http.StatusOK, returns)
}

type noteReq struct {
	Note string `json:"note"`
}

// readNote accepts an empty body since the note is optional.
func readNote(r *http.Request, w http.ResponseWriter) (string, bool) {
	if r.ContentLength == 0 {
		return "", true
	}
	var req noteReq
	if !decode(w, r, &req) {
		return "", false
	}
	return req.Note, true
}

// POST /api/v1/admin/returns/{id}/approve
func (h *AdminReturnHandler) Approve(w http.ResponseWriter, r *http.Request) {
	note, ok := readNote(r, w)
	if !ok {
		return
	}
	ret, err := h.returnUC.Approve(r.Context(), r.PathValue("id"), note)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, ret)
}

// POST /api/v1/admin/returns/{id}/reject
func (h *AdminReturnHandler) Reject(w http.ResponseWriter, r *http.Request) {
	note, ok := readNote(r, w)
	if !ok {
		return
	}
	ret, err := h.returnUC.Reject(r.Context(), r.PathValue("id"), note)
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusOK, ret)
}

// GET /api/v1/admin/returns/damaged
func (h *AdminReturnHandler) Damaged(w http.ResponseWriter, r *http.Request) {
	damaged, err := h.returnUC.Damaged(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if damaged == nil {
		damaged = []domain.DamagedProduct{}
	}
	utils.WriteData(w, http.StatusOK, damaged)
}
