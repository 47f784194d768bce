package v1

import (
	"io"
	"net/http"
	"strconv"

	"lapak-storefront/internal/domain"
	"lapak-storefront/internal/usecase"
	"lapak-storefront/pkg/utils"
)

// ReturnHandler serves a shopper's pengembalian requests.
type ReturnHandler struct {
	returnUC      *usecase.ReturnUsecase
	maxUploadSize int64
}

func NewReturnHandler(uc *usecase.ReturnUsecase, maxUploadSizeMB int64) *ReturnHandler {
	return &ReturnHandler{returnUC: uc, maxUploadSize: maxUploadSizeMB << 20}
}

// POST /api/v1/returns (multipart: orderId, productId, quantity, reason, photo)
func (h *ReturnHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Photo evidence is required")
		return
	}
	defer file.Close()

	photo, err := io.ReadAll(file)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		quantity = 1
	}

	ret, err := h.returnUC.Create(r.Context(), domain.CreateReturnInput{
		OrderID:          r.FormValue("orderId"),
		ProductID:        r.FormValue("productId"),
		Quantity:         quantity,
		Reason:           r.FormValue("reason"),
		Photo:            photo,
		PhotoName:        header.Filename,
		PhotoContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeErr(w, r, err)
		return
	}
	utils.WriteData(w, http.StatusCreated, ret)
}

// GET /api/v1/returns
func (h *ReturnHandler) GetMyReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.returnUC.Mine(r.Context())
	if err != nil {
		writeErr(w, r, err)
		return
	}
	if returns == nil {
		returns = []domain.ReturnRequest{}
	}
	utils.WriteData(w, http.StatusOK, returns)
}
