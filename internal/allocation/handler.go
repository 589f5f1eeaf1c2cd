package allocation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-management/internal/auth"
	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Assign(ctx context.Context, assetID int64, dto AssignAssetDTO) error
	Return(ctx context.Context, assetID, callerID int64, dto ReturnAssetDTO) (*ReturnedAsset, error)
	ListReturns(limit, offset int) ([]*ReturnedAsset, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) AssignAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("AssignAsset: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("AssignAsset: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var dto AssignAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AssignAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Assign(r.Context(), assetID, dto); err != nil {
		h.Logger.Error("AssignAsset: service error", "error", err, "asset_id", assetID, "admin_id", user.ID)

		switch err {
		case ErrAssetNotFound:
			h.WriteError(w, http.StatusNotFound, "asset not found")
		case ErrNotAvailable:
			h.WriteError(w, http.StatusConflict, "asset is not available")
		case ErrUserNotFound:
			h.WriteError(w, http.StatusNotFound, "user not found")
		case ErrUserInactive:
			h.WriteError(w, http.StatusConflict, "user is inactive")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("AssignAsset: asset assigned", "asset_id", assetID, "user_id", dto.UserID, "admin_id", user.ID)
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *Handler) ReturnAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("ReturnAsset: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("ReturnAsset: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var dto ReturnAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ReturnAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	returned, err := h.Service.Return(r.Context(), assetID, user.ID, dto)
	if err != nil {
		h.Logger.Error("ReturnAsset: service error", "error", err, "asset_id", assetID, "user_id", user.ID)

		switch err {
		case ErrAssetNotFound:
			h.WriteError(w, http.StatusNotFound, "asset not found")
		case ErrNotAssignedToCaller:
			h.WriteError(w, http.StatusConflict, "asset is not assigned to you")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("ReturnAsset: asset returned", "asset_id", assetID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusCreated, returned)
}

func (h *Handler) ListReturns(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	returns, err := h.Service.ListReturns(limit, offset)
	if err != nil {
		h.Logger.Error("ListReturns: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list returns")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema_version": transport.SchemaVersion,
		"returns":        returns,
		"limit":          limit,
		"offset":         offset,
	})
}
