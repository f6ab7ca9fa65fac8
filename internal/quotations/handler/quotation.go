package handler

import (
	"encoding/json"
	"net/http"

	"banquetdesk/internal/access"
	"banquetdesk/internal/quotations/service"
	"banquetdesk/internal/quotations/validator"
	apperrors "banquetdesk/pkg/errors"
	httputil "banquetdesk/pkg/http"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/middleware"
	"banquetdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type QuotationHandler struct {
	service service.QuotationService
	log     *logger.Logger
}

func NewQuotationHandler(service service.QuotationService, log *logger.Logger) *QuotationHandler {
	return &QuotationHandler{
		service: service,
		log:     log,
	}
}

type statusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var quotation model.Quotation
	if err := json.NewDecoder(r.Body).Decode(&quotation); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &quotation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, quotation); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *QuotationHandler) Generate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req validator.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Generate", "error", writeErr)
		}
		return
	}

	quotation, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Generate", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, quotation); err != nil {
		h.log.Error("failed to write created response", "handler", "Generate", "error", err)
	}
}

func (h *QuotationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	quotation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, quotation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *QuotationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	status := r.URL.Query().Get("status")
	enquiryID := r.URL.Query().Get("enquiryId")

	quotations, total, err := h.service.GetAll(r.Context(), status, enquiryID, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, quotations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *QuotationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	quotation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	if err := h.authorizeEdit(r, quotation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	var req statusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	if err := h.service.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateStatus", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	quotation, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := h.authorizeEdit(r, quotation); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *QuotationHandler) authorizeEdit(r *http.Request, quotation *model.Quotation) error {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		return apperrors.Unauthorized("Missing actor identity")
	}
	if !access.CanEdit(actor, quotation) {
		return apperrors.Forbidden("You do not have permission to modify this quotation")
	}
	return nil
}

func (h *QuotationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/quotations", h.Create)
	router.POST("/api/v1/quotations/generate", h.Generate)
	router.GET("/api/v1/quotations", h.GetAll)
	router.GET("/api/v1/quotations/id/:id", h.GetByID)
	router.PATCH("/api/v1/quotations/id/:id/status", h.UpdateStatus)
	router.DELETE("/api/v1/quotations/id/:id", h.Delete)
}
