package handler

import (
	"encoding/json"
	"net/http"

	"banquetdesk/internal/access"
	"banquetdesk/internal/enquiries/service"
	apperrors "banquetdesk/pkg/errors"
	httputil "banquetdesk/pkg/http"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/middleware"
	"banquetdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type EnquiryHandler struct {
	service service.EnquiryService
	log     *logger.Logger
}

func NewEnquiryHandler(service service.EnquiryService, log *logger.Logger) *EnquiryHandler {
	return &EnquiryHandler{
		service: service,
		log:     log,
	}
}

func (h *EnquiryHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var enquiry model.Enquiry
	if err := json.NewDecoder(r.Body).Decode(&enquiry); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &enquiry); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, enquiry); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *EnquiryHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	enquiry, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, enquiry); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *EnquiryHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	status := r.URL.Query().Get("status")

	enquiries, total, err := h.service.GetAll(r.Context(), status, limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, enquiries, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *EnquiryHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	enquiry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.authorizeEdit(r, enquiry); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	var updates model.EnquiryUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	enquiry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	if err := h.authorizeEdit(r, enquiry); err != nil {
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

func (h *EnquiryHandler) Convert(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	enquiry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Convert", "error", writeErr)
		}
		return
	}

	if err := h.authorizeEdit(r, enquiry); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Convert", "error", writeErr)
		}
		return
	}

	booking, err := h.service.Convert(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Convert", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Convert", "error", err)
	}
}

func (h *EnquiryHandler) authorizeEdit(r *http.Request, enquiry *model.Enquiry) error {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		return apperrors.Unauthorized("Missing actor identity")
	}
	if !access.CanEdit(actor, enquiry) {
		return apperrors.Forbidden("You do not have permission to modify this enquiry")
	}
	return nil
}

func (h *EnquiryHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/enquiries", h.Create)
	router.GET("/api/v1/enquiries", h.GetAll)
	router.GET("/api/v1/enquiries/id/:id", h.GetByID)
	router.PATCH("/api/v1/enquiries/id/:id", h.Update)
	router.DELETE("/api/v1/enquiries/id/:id", h.Delete)
	router.POST("/api/v1/enquiries/id/:id/convert", h.Convert)
}
