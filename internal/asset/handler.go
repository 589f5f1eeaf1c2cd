package asset

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

type ServiceAPI interface {
	CreateAsset(dto CreateAssetDTO) (*Asset, error)
	GetAsset(id int64) (*Asset, error)
	ListAssets(limit, offset int, status string) ([]*Asset, error)
	UpdateAsset(id int64, dto UpdateAssetDTO) (*Asset, error)
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

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error("CreateAsset: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.CreateAsset(dto)
	if err != nil {
		h.Logger.Error("CreateAsset: service error", "error", err, "asset_tag", dto.AssetTag)
		switch err {
		case ErrTagTaken:
			h.WriteError(w, http.StatusConflict, "asset tag already in use")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.Logger.Info("CreateAsset: asset created",
		"asset_id", a.ID,
		"asset_tag", a.AssetTag,
		"created_by", user.ID)

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetAsset: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	a, err := h.Service.GetAsset(assetID)
	if err != nil {
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "asset not found")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to get asset")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)
	status := r.URL.Query().Get("status")

	assets, err := h.Service.ListAssets(limit, offset, status)
	if err != nil {
		h.Logger.Error("ListAssets: service error", "error", err, "status", status)
		switch err {
		case ErrInvalidStatus:
			h.WriteError(w, http.StatusBadRequest, "unknown status filter")
		default:
			h.WriteError(w, http.StatusInternalServerError, "failed to list assets")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema_version": transport.SchemaVersion,
		"assets":         assets,
		"limit":          limit,
		"offset":         offset,
	})
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	var dto UpdateAssetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateAsset: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.Service.UpdateAsset(assetID, dto)
	if err != nil {
		h.Logger.Error("UpdateAsset: service error", "error", err, "asset_id", assetID, "user_id", user.ID)
		switch err {
		case ErrNotFound:
			h.WriteError(w, http.StatusNotFound, "asset not found")
		default:
			h.HandleServiceError(w, err)
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}
