package request

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(service *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("SubmitRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Submit(r.Context(), user.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitRequest: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SubmitRequest: request created", "request_id", req.ID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusCreated, req)
}

func (h *Handler) ResolveRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ResolveRequest: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestIDStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("ResolveRequest: invalid request ID", "id", requestIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto ResolveRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ResolveRequest: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := h.Service.Resolve(r.Context(), requestID, user.ID, dto)
	if err != nil {
		h.Logger.Error("ResolveRequest: service error", "error", err, "request_id", requestID, "admin_id", user.ID)

		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "asset request not found")
		case ErrAlreadyResolved:
			h.WriteError(w, http.StatusConflict, "asset request already resolved")
		case ErrAlreadyAssigned:
			h.WriteError(w, http.StatusConflict, "asset is already assigned")
		case ErrNotAvailable:
			h.WriteError(w, http.StatusConflict, "asset is not available")
		case ErrAssetNotFound:
			h.WriteError(w, http.StatusNotFound, "asset not found")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("ResolveRequest: request resolved",
		"request_id", requestID,
		"decision", dto.Decision,
		"admin_id", user.ID)

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestIDStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	req, err := h.Service.GetRequest(requestID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "asset request not found")
		return
	}

	// Employees can only see their own requests.
	if req.RequestedBy != user.ID && !user.HasAnyPermission([]string{"resolve_requests", "admin"}) {
		h.Logger.Warn("GetRequest: access denied", "request_id", requestID, "user_id", user.ID)
		h.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	h.WriteJSON(w, http.StatusOK, req)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := transport.Pagination(r)

	var (
		requests []*AssetRequest
		err      error
	)
	if user.HasAnyPermission([]string{"resolve_requests", "admin"}) {
		requests, err = h.Service.ListAll(limit, offset)
	} else {
		requests, err = h.Service.ListByRequester(user.ID, limit, offset)
	}
	if err != nil {
		h.Logger.Error("ListRequests: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema_version": transport.SchemaVersion,
		"requests":       requests,
		"limit":          limit,
		"offset":         offset,
	})
}
