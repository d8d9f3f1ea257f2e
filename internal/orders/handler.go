package orders

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pleko-crm/pleko-crm/internal/accounts"
	"github.com/pleko-crm/pleko-crm/internal/platform/httpx"
	"github.com/pleko-crm/pleko-crm/internal/shared"
)

// ProductNamer resolves a product id to its display name for quick entry.
type ProductNamer interface {
	ProductName(ctx context.Context, productID int64) (string, error)
}

type Handler struct {
	logger    *slog.Logger
	service   *Service
	products  ProductNamer
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, products ProductNamer) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		products:  products,
		validator: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListOrdersRequest{Limit: 50}

	if v := r.URL.Query().Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid account_id")
			return
		}
		req.AccountID = &id
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date_from must be YYYY-MM-DD")
			return
		}
		req.DateFrom = &parsed
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "date_to must be YYYY-MM-DD")
			return
		}
		req.DateTo = &parsed
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	orders, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list orders failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}

	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("get order failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.Create(r.Context(), req, h.userID(r))
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "account not found")
		case errors.Is(err, ErrAccountInactive):
			httpx.Problem(w, http.StatusUnprocessableEntity, "Account Inactive", err.Error())
		default:
			h.logger.Error("create order failed", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, order)
}

// QuickCreate posts a same-day order priced from the account's agreed
// pricing, for entry from the field.
func (h *Handler) QuickCreate(w http.ResponseWriter, r *http.Request) {
	var req QuickCreateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	productName, err := h.products.ProductName(r.Context(), req.ProductID)
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "product not found")
		return
	}

	order, err := h.service.QuickCreate(r.Context(), req, productName, h.userID(r))
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "account not found")
		case errors.Is(err, ErrNoAgreedPrice):
			httpx.Problem(w, http.StatusUnprocessableEntity, "No Agreed Price", err.Error())
		case errors.Is(err, ErrAccountInactive):
			httpx.Problem(w, http.StatusUnprocessableEntity, "Account Inactive", err.Error())
		default:
			h.logger.Error("quick order failed", slog.Any("error", err))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}

	httpx.JSON(w, http.StatusCreated, order)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}

	var req UpdateOrderRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	order, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("update order failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, order)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid order id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "order not found")
			return
		}
		h.logger.Error("delete order failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.NoContent(w)
}

func (h *Handler) userID(r *http.Request) int64 {
	if identity := shared.IdentityFromContext(r.Context()); identity != nil {
		return identity.UserID
	}
	return 0
}
