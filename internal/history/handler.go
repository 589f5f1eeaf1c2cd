package history

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-management/internal/transport"
	"github.com/frahmantamala/asset-management/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListAll(limit, offset int) ([]*Entry, error)
	ListByAsset(assetID int64, limit, offset int) ([]*Entry, error)
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

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset := transport.Pagination(r)

	entries, err := h.Service.ListAll(limit, offset)
	if err != nil {
		h.Logger.Error("ListHistory: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema_version": transport.SchemaVersion,
		"history":        entries,
		"limit":          limit,
		"offset":         offset,
	})
}

func (h *Handler) ListAssetHistory(w http.ResponseWriter, r *http.Request) {
	assetIDStr := chi.URLParam(r, "id")
	assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("ListAssetHistory: invalid asset ID", "id", assetIDStr)
		h.WriteError(w, http.StatusBadRequest, "invalid asset ID")
		return
	}

	limit, offset := transport.Pagination(r)

	entries, err := h.Service.ListByAsset(assetID, limit, offset)
	if err != nil {
		h.Logger.Error("ListAssetHistory: service error", "error", err, "asset_id", assetID)
		h.WriteError(w, http.StatusInternalServerError, "failed to list asset history")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"schema_version": transport.SchemaVersion,
		"asset_id":       assetID,
		"history":        entries,
		"limit":          limit,
		"offset":         offset,
	})
}
