package accounts

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pleko-crm/pleko-crm/internal/ledger"
	"github.com/pleko-crm/pleko-crm/internal/platform/httpx"
	"github.com/pleko-crm/pleko-crm/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	ledger    *ledger.Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		ledger:    ledgerSvc,
		validator: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListAccountsRequest{Limit: 50}

	if search := r.URL.Query().Get("search"); search != "" {
		req.Search = &search
	}
	if v := r.URL.Query().Get("is_active"); v != "" {
		active := v == "true"
		req.IsActive = &active
	}
	if v := r.URL.Query().Get("sentiment"); v != "" {
		req.Sentiment = &v
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

	accounts, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list accounts failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"total":    total,
		"limit":    req.Limit,
		"offset":   req.Offset,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid account id")
		return
	}

	account, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "account not found")
			return
		}
		h.logger.Error("get account failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, account)
}

// Snapshot serves the account-detail dashboard: aggregates, aging breakdown,
// chart series and recent payments in one payload.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid account id")
		return
	}

	var asOf time.Time
	if v := r.URL.Query().Get("as_of"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "as_of must be YYYY-MM-DD")
			return
		}
		asOf = parsed
	}

	snap, err := h.ledger.Snapshot(r.Context(), id, asOf)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "account not found")
			return
		}
		h.logger.Error("account snapshot failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, snap)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	identity := shared.IdentityFromContext(r.Context())
	var createdBy int64
	if identity != nil {
		createdBy = identity.UserID
	}

	account, err := h.service.Create(r.Context(), req, createdBy)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
			return
		}
		h.logger.Error("create account failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusCreated, account)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid account id")
		return
	}

	var req UpdateAccountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	account, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "account not found")
		case errors.Is(err, ErrAlreadyExists):
			httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
		default:
			h.logger.Error("update account failed", slog.Any("error", err), slog.Int64("id", id))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}

	httpx.JSON(w, http.StatusOK, account)
}
