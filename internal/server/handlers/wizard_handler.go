package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inventario-backend/internal/domain/models"
	"inventario-backend/internal/service/wizard"
)

// WizardHandler exposes the stepped data-entry wizard.
type WizardHandler struct {
	svc    *wizard.Service
	logger *zap.Logger
}

// NewWizardHandler constructs the HTTP adapter over the wizard service.
func NewWizardHandler(svc *wizard.Service, logger *zap.Logger) *WizardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardHandler{svc: svc, logger: logger}
}

type fieldView struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

type stateResponse struct {
	SessionID string       `json:"session_id"`
	Step      int          `json:"step"`
	Field     fieldView    `json:"field"`
	Draft     models.Draft `json:"draft"`
}

func (h *WizardHandler) stateResponse(sessionID string, st wizard.State) stateResponse {
	field := wizard.CurrentField(h.svc.Fields(), st)
	return stateResponse{
		SessionID: sessionID,
		Step:      st.Step,
		Field: fieldView{
			Key:    string(field.Key),
			Label:  field.Label,
			Prompt: field.Prompt,
		},
		Draft: st.Draft,
	}
}

// CreateSession mints a fresh wizard session.
func (h *WizardHandler) CreateSession(c *gin.Context) {
	id := h.svc.NewSession()
	c.JSON(http.StatusCreated, gin.H{"session_id": id})
}

// State returns the session's current step, prompted field and draft.
func (h *WizardHandler) State(c *gin.Context) {
	id := c.DefaultQuery("session_id", DefaultSession)
	st, _ := h.svc.State(id)
	c.JSON(http.StatusOK, h.stateResponse(id, st))
}

type submitRequest struct {
	SessionID string `json:"session_id"`
	Value     string `json:"value"`
}

func (r *submitRequest) session() string {
	if r.SessionID == "" {
		return DefaultSession
	}
	return r.SessionID
}

// Submit feeds one field value into the wizard. The response carries the
// next state; when the submission finalized a record, also the record and a
// success notice.
func (h *WizardHandler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	st, rec, err := h.svc.Submit(c.Request.Context(), req.session(), req.Value)
	if err != nil {
		h.logger.Error("submit failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Não foi possível salvar o registro.")
		return
	}

	resp := gin.H{"state": h.stateResponse(req.session(), st)}
	if rec != nil {
		resp["record"] = rec
		resp["notice"] = models.Success("Registro salvo", "Registro adicionado ao inventário.")
	}
	c.JSON(http.StatusOK, resp)
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

func (r *sessionRequest) session() string {
	if r.SessionID == "" {
		return DefaultSession
	}
	return r.SessionID
}

// Back steps the wizard to the previous field, never past the first.
func (h *WizardHandler) Back(c *gin.Context) {
	var req sessionRequest
	_ = c.ShouldBindJSON(&req)

	st := h.svc.Back(req.session())
	c.JSON(http.StatusOK, h.stateResponse(req.session(), st))
}

// QuickAdd finalizes the current partial draft, bypassing the remaining
// steps. An all-empty draft is a validation failure.
func (h *WizardHandler) QuickAdd(c *gin.Context) {
	var req sessionRequest
	_ = c.ShouldBindJSON(&req)

	st, rec, err := h.svc.QuickAdd(c.Request.Context(), req.session())
	if err != nil {
		if errors.Is(err, wizard.ErrEmptyDraft) {
			respondError(c, http.StatusBadRequest, "Nada para salvar: preencha ao menos um campo.")
			return
		}
		h.logger.Error("quick add failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Não foi possível salvar o registro.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":  h.stateResponse(req.session(), st),
		"record": rec,
		"notice": models.Success("Registro salvo", "Registro parcial adicionado ao inventário."),
	})
}
