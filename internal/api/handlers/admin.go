package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/Harshitk-cp/brainbase/internal/service"
	"github.com/Harshitk-cp/brainbase/internal/store"
	"go.uber.org/zap"
)

const maxSnapshotBytes = 32 << 20

// SnapshotLoader reloads the database from its configured source.
type SnapshotLoader interface {
	Load(ctx context.Context) ([]string, error)
}

type AdminHandler struct {
	db     *service.Database
	loader SnapshotLoader
	logger *zap.Logger
}

func NewAdminHandler(db *service.Database, loader SnapshotLoader, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{db: db, loader: loader, logger: logger}
}

// Reset rebuilds the database from the snapshot in the request body.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSnapshotBytes)).Decode(&snap); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids, err := h.db.Reset(&snap)
	if err != nil {
		h.writeResetError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"collision_brain_ids": ids})
}

// Reload rebuilds the database from the configured snapshot source.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.loader == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot source configured")
		return
	}

	ids, err := h.loader.Load(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshot available")
			return
		}
		h.writeResetError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"collision_brain_ids": ids})
}

func (h *AdminHandler) writeResetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMalformedSnapshot):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnknownPropertyType), errors.Is(err, service.ErrInvalidDefault):
		h.logger.Error("behavior schema rejected snapshot", zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.Error("failed to reset behavior database", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to reset behavior database")
	}
}
