package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/store"
)

// RecordsHandler exposes the record store: listing, positional delete and
// the confirmation-gated clear-all.
type RecordsHandler struct {
	records  *store.RecordStore
	notifier Notifier
	logger   *zap.Logger
}

// Notifier fans user-facing notices out to the configured channel.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification)
}

// NewRecordsHandler constructs the HTTP adapter over the record store.
// notifier may be nil.
func NewRecordsHandler(records *store.RecordStore, notifier Notifier, logger *zap.Logger) *RecordsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordsHandler{records: records, notifier: notifier, logger: logger}
}

// List returns the full sequence, newest first.
func (h *RecordsHandler) List(c *gin.Context) {
	snapshot := h.records.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"total":   len(snapshot),
		"records": snapshot,
	})
}

// Delete removes the record at the given position. An out-of-bounds index
// is a silent no-op, matching the store contract.
func (h *RecordsHandler) Delete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Índice inválido.")
		return
	}

	if err := h.records.RemoveAt(c.Request.Context(), index); err != nil {
		h.logger.Error("delete failed", zap.Int("index", index), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Não foi possível remover o registro.")
		return
	}

	c.Status(http.StatusNoContent)
}

// Clear empties the store. The operation is destructive and irreversible,
// so it requires an explicit confirm=true query parameter.
func (h *RecordsHandler) Clear(c *gin.Context) {
	if c.Query("confirm") != "true" {
		respondError(c, http.StatusBadRequest, "Confirmação necessária: repita com confirm=true.")
		return
	}

	if err := h.records.Clear(c.Request.Context()); err != nil {
		h.logger.Error("clear failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Não foi possível limpar o inventário.")
		return
	}

	notice := models.Success("Inventário limpo", "Todos os registros foram removidos.")
	if h.notifier != nil {
		h.notifier.Notify(c.Request.Context(), notice)
	}
	h.logger.Info("store cleared")
	c.JSON(http.StatusOK, gin.H{"notice": notice})
}
