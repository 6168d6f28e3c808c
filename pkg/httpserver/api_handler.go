package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/mselser95/trade-hauls/internal/names"
	"github.com/mselser95/trade-hauls/internal/scan"
	"github.com/mselser95/trade-hauls/internal/storage"
	"github.com/mselser95/trade-hauls/pkg/types"
	"go.uber.org/zap"
)

// maxNameBody bounds the PUT body for a name update.
const maxNameBody = 4096

// SnapshotSource returns the latest scan result, or nil before the first scan.
type SnapshotSource interface {
	Latest() *scan.Snapshot
}

// NameService reads and writes display names.
type NameService interface {
	All(ctx context.Context) (names.Names, error)
	SaveResource(ctx context.Context, guid, name string) error
	SaveShop(ctx context.Context, shopID, name string) error
}

// APIHandler serves the dashboard JSON API.
type APIHandler struct {
	snapshots SnapshotSource
	names     NameService
	logger    *zap.Logger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(snapshots SnapshotSource, nameService NameService, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		snapshots: snapshots,
		names:     nameService,
		logger:    logger,
	}
}

// StatusResponse is returned while no scan has completed yet.
type StatusResponse struct {
	Status string `json:"status"`
}

// HaulsResponse is the body of GET /api/hauls.
type HaulsResponse struct {
	RunID    string                  `json:"run_id"`
	Hauls    []types.Haul            `json:"hauls"`
	Balances []types.ResourceBalance `json:"balances"`
}

// NameRequest is the body of a name update.
type NameRequest struct {
	Name string `json:"name"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

var bootstrapping = StatusResponse{Status: "bootstrapping"}

// HandleMetrics handles GET /api/metrics.
func (h *APIHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Latest()
	if snap == nil {
		h.writeJSON(w, http.StatusOK, bootstrapping)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// HandleHauls handles GET /api/hauls.
func (h *APIHandler) HandleHauls(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshots.Latest()
	if snap == nil {
		h.writeJSON(w, http.StatusOK, bootstrapping)
		return
	}
	h.writeJSON(w, http.StatusOK, HaulsResponse{
		RunID:    snap.RunID,
		Hauls:    snap.Hauls,
		Balances: snap.Balances,
	})
}

// HandleNames handles GET /api/names.
func (h *APIHandler) HandleNames(w http.ResponseWriter, r *http.Request) {
	all, err := h.names.All(r.Context())
	if err != nil {
		h.logger.Error("names-load-failed", zap.Error(err))
		h.writeError(w, "names unavailable", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

// HandleSaveResourceName handles PUT /api/names/resources/{id}.
func (h *APIHandler) HandleSaveResourceName(w http.ResponseWriter, r *http.Request) {
	h.saveName(w, r, h.names.SaveResource)
}

// HandleSaveShopName handles PUT /api/names/shops/{id}.
func (h *APIHandler) HandleSaveShopName(w http.ResponseWriter, r *http.Request) {
	h.saveName(w, r, h.names.SaveShop)
}

func (h *APIHandler) saveName(w http.ResponseWriter, r *http.Request, save func(context.Context, string, string) error) {
	id := chi.URLParam(r, "id")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxNameBody))
	if err != nil {
		h.writeError(w, "read body", http.StatusBadRequest)
		return
	}

	var req NameRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	err = save(r.Context(), id, req.Name)
	if errors.Is(err, storage.ErrEmptyName) || errors.Is(err, storage.ErrNameTooLong) {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("name-save-failed", zap.String("id", id), zap.Error(err))
		h.writeError(w, "save failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("name-saved", zap.String("path", r.URL.Path), zap.String("name", req.Name))
	w.WriteHeader(http.StatusNoContent)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
		h.writeError(w, "encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeError writes a JSON error response.
func (h *APIHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	err := json.NewEncoder(w).Encode(ErrorResponse{Error: message})
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
