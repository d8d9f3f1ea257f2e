package activities

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/pleko-crm/pleko-crm/internal/platform/httpx"
	"github.com/pleko-crm/pleko-crm/internal/shared"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListActivitiesRequest{Limit: 50}

	if v := r.URL.Query().Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid account_id")
			return
		}
		req.AccountID = &id
	}
	if v := r.URL.Query().Get("opportunity_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid opportunity_id")
			return
		}
		req.OpportunityID = &id
	}
	if v := r.URL.Query().Get("kind"); v != "" {
		kind := Kind(v)
		if !ValidKind(kind) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown kind")
			return
		}
		req.Kind = &kind
	}
	if v := r.URL.Query().Get("pending"); v == "true" {
		req.PendingOnly = true
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

	activities, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list activities failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"activities": activities,
		"total":      total,
		"limit":      req.Limit,
		"offset":     req.Offset,
	})
}

// Agenda lists pending follow-ups due within the horizon (default one week).
func (h *Handler) Agenda(w http.ResponseWriter, r *http.Request) {
	var horizon time.Time
	if v := r.URL.Query().Get("until"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "until must be YYYY-MM-DD")
			return
		}
		horizon = parsed
	}

	items, err := h.service.Agenda(r.Context(), horizon)
	if err != nil {
		h.logger.Error("agenda failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{"agenda": items})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid activity id")
		return
	}

	activity, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "activity not found")
			return
		}
		h.logger.Error("get activity failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, activity)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateActivityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	var createdBy int64
	if identity := shared.IdentityFromContext(r.Context()); identity != nil {
		createdBy = identity.UserID
	}

	activity, err := h.service.Create(r.Context(), req, createdBy)
	if err != nil {
		if errors.Is(err, ErrInvalidKind) {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown kind")
			return
		}
		h.logger.Error("create activity failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusCreated, activity)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid activity id")
		return
	}

	var req UpdateActivityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	activity, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.Problem(w, http.StatusNotFound, "Not Found", "activity not found")
		case errors.Is(err, ErrInvalidKind):
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown kind")
		default:
			h.logger.Error("update activity failed", slog.Any("error", err), slog.Int64("id", id))
			httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		}
		return
	}

	httpx.JSON(w, http.StatusOK, activity)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid activity id")
		return
	}

	activity, err := h.service.Complete(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "activity not found")
			return
		}
		h.logger.Error("complete activity failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, activity)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid activity id")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "activity not found")
			return
		}
		h.logger.Error("delete activity failed", slog.Any("error", err), slog.Int64("id", id))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.NoContent(w)
}
