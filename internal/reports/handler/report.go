package handler

import (
	"net/http"

	"banquetdesk/internal/reports/service"
	httputil "banquetdesk/pkg/http"
	"banquetdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ReportHandler struct {
	service service.ReportService
	log     *logger.Logger
}

func NewReportHandler(service service.ReportService, log *logger.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

func (h *ReportHandler) Bookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()

	report, err := h.service.BookingsReport(r.Context(), q.Get("groupBy"), q.Get("from"), q.Get("to"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Bookings", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, report); err != nil {
		h.log.Error("failed to write success response", "handler", "Bookings", "error", err)
	}
}

func (h *ReportHandler) EnquiryFunnel(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	funnel, err := h.service.EnquiryFunnel(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "EnquiryFunnel", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, funnel); err != nil {
		h.log.Error("failed to write success response", "handler", "EnquiryFunnel", "error", err)
	}
}

func (h *ReportHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/reports/bookings", h.Bookings)
	router.GET("/api/v1/reports/enquiry-funnel", h.EnquiryFunnel)
}
