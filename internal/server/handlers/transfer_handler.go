package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inventario-backend/internal/service/codec"
	"inventario-backend/internal/service/exporter"
	"inventario-backend/internal/service/importer"
)

// TransferHandler exposes the export and import surfaces.
type TransferHandler struct {
	exporter *exporter.Service
	importer *importer.Service
	logger   *zap.Logger
}

// NewTransferHandler constructs the HTTP adapter over the transfer services.
func NewTransferHandler(exporterSvc *exporter.Service, importerSvc *importer.Service, logger *zap.Logger) *TransferHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TransferHandler{exporter: exporterSvc, importer: importerSvc, logger: logger}
}

// ExportCSV streams the store as a CSV attachment.
func (h *TransferHandler) ExportCSV(c *gin.Context) {
	artifact, err := h.exporter.CSV(c.Request.Context())
	if err != nil {
		h.exportError(c, err)
		return
	}
	h.sendArtifact(c, artifact)
}

// ExportBackup streams the store as a JSON backup envelope attachment.
func (h *TransferHandler) ExportBackup(c *gin.Context) {
	artifact, err := h.exporter.Backup(c.Request.Context())
	if err != nil {
		h.exportError(c, err)
		return
	}
	h.sendArtifact(c, artifact)
}

// ExportSpreadsheet pushes the multi-sheet workbook to Google Sheets and
// returns the spreadsheet URL.
func (h *TransferHandler) ExportSpreadsheet(c *gin.Context) {
	url, err := h.exporter.Spreadsheet(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, exporter.ErrSheetsDisabled):
			respondError(c, http.StatusServiceUnavailable, "Exportação de planilha não está configurada.")
		case errors.Is(err, exporter.ErrNoRecords):
			respondError(c, http.StatusBadRequest, "Nenhum registro para exportar.")
		default:
			h.logger.Error("spreadsheet export failed", zap.Error(err))
			respondError(c, http.StatusBadGateway, "Falha ao gravar a planilha.")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ImportCSV parses the request body as CSV text and prepends its rows.
func (h *TransferHandler) ImportCSV(c *gin.Context) {
	h.runImport(c, h.importer.CSV)
}

// ImportJSON parses the request body with the lenient JSON normalizer.
func (h *TransferHandler) ImportJSON(c *gin.Context) {
	h.runImport(c, h.importer.JSON)
}

// Restore parses the request body as a backup envelope and prepends its
// rows verbatim.
func (h *TransferHandler) Restore(c *gin.Context) {
	h.runImport(c, h.importer.Restore)
}

func (h *TransferHandler) runImport(c *gin.Context, ingest func(ctx context.Context, data []byte) (int, error)) {
	data, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Não foi possível ler o arquivo enviado.")
		return
	}

	n, err := ingest(c.Request.Context(), data)
	if err != nil {
		h.importError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": n,
		"notice":   fmt.Sprintf("%d registros adicionados ao inventário.", n),
	})
}

func (h *TransferHandler) sendArtifact(c *gin.Context, artifact exporter.Artifact) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func (h *TransferHandler) exportError(c *gin.Context, err error) {
	if errors.Is(err, exporter.ErrNoRecords) {
		respondError(c, http.StatusBadRequest, "Nenhum registro para exportar.")
		return
	}
	h.logger.Error("export failed", zap.Error(err))
	respondError(c, http.StatusInternalServerError, "Falha ao gerar o arquivo.")
}

// importError distinguishes malformed input (the caller's fault, store left
// untouched) from persistence failures.
func (h *TransferHandler) importError(c *gin.Context, err error) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, codec.ErrNoRows):
		respondError(c, http.StatusBadRequest, "O arquivo não contém registros utilizáveis.")
	case errors.Is(err, codec.ErrUnrecognizedFormat):
		respondError(c, http.StatusBadRequest, "Formato de arquivo não reconhecido.")
	case errors.Is(err, codec.ErrMissingRows):
		respondError(c, http.StatusBadRequest, "O arquivo não é um backup válido.")
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		respondError(c, http.StatusBadRequest, "O arquivo não contém JSON válido.")
	default:
		h.logger.Error("import failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Falha ao importar os registros.")
	}
}
