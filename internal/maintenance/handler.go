package maintenance

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

func (h *Handler) SubmitMaintenance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("SubmitMaintenance: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto SubmitMaintenanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitMaintenance: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.Submit(r.Context(), user.ID, dto)
	if err != nil {
		h.Logger.Error("SubmitMaintenance: service error", "error", err, "user_id", user.ID)

		switch err {
		case ErrAssetNotFound:
			h.WriteError(w, http.StatusNotFound, "asset not found")
		case ErrAssetUnavailable:
			h.WriteError(w, http.StatusConflict, "asset cannot enter maintenance")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("SubmitMaintenance: request created", "request_id", m.ID, "asset_id", m.AssetID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) UpdateMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("UpdateMaintenanceStatus: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestIDStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(requestIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("UpdateMaintenanceStatus: invalid request ID", "id", requestIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateMaintenanceStatus: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.UpdateStatus(r.Context(), requestID, user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateMaintenanceStatus: service error", "error", err, "request_id", requestID, "admin_id", user.ID)

		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "maintenance request not found")
		case ErrAlreadyCompleted:
			h.WriteError(w, http.StatusConflict, "maintenance request already completed")
		case ErrInvalidStatus:
			h.WriteError(w, http.StatusBadRequest, "invalid maintenance status")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("UpdateMaintenanceStatus: status updated",
		"request_id", requestID,
		"status", dto.Status,
		"admin_id", user.ID)

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
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

	m, err := h.Service.GetRequest(requestID)
	if err != nil {
		h.WriteError(w, http.StatusNotFound, "maintenance request not found")
		return
	}

	// Employees can only see requests they filed.
	if m.RequestedBy != user.ID && !user.HasAnyPermission([]string{"manage_maintenance", "admin"}) {
		h.Logger.Warn("GetMaintenance: access denied", "request_id", requestID, "user_id", user.ID)
		h.WriteError(w, http.StatusForbidden, "access denied")
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := transport.Pagination(r)

	var (
		requests []*MaintenanceRequest
		err      error
	)
	if user.HasAnyPermission([]string{"manage_maintenance", "admin"}) {
		requests, err = h.Service.ListAll(limit, offset)
	} else {
		requests, err = h.Service.ListByRequester(user.ID, limit, offset)
	}
	if err != nil {
		h.Logger.Error("ListMaintenance: service error", "error", err, "user_id", user.ID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list maintenance requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema_version": transport.SchemaVersion,
		"maintenance":    requests,
		"limit":          limit,
		"offset":         offset,
	})
}
