package handler

import (
	"encoding/json"
	"net/http"

	"banquetdesk/internal/access"
	"banquetdesk/internal/catalog/service"
	apperrors "banquetdesk/pkg/errors"
	httputil "banquetdesk/pkg/http"
	"banquetdesk/pkg/logger"
	"banquetdesk/pkg/middleware"
	"banquetdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// CatalogHandler exposes the venue, room type and menu package inventory.
// Reads are open to any authenticated role; mutations are admin-only.
type CatalogHandler struct {
	service service.CatalogService
	log     *logger.Logger
}

func NewCatalogHandler(service service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log,
	}
}

func (h *CatalogHandler) authorizeAdmin(r *http.Request) error {
	actor := middleware.ActorFromContext(r.Context())
	if actor == nil {
		return apperrors.Unauthorized("Missing actor identity")
	}
	if access.NormalizeRole(actor.Role) != access.RoleAdmin {
		return apperrors.Forbidden("Catalog changes require the admin role")
	}
	return nil
}

func (h *CatalogHandler) writeErr(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "error", writeErr)
	}
}

func activeOnly(r *http.Request) bool {
	return r.URL.Query().Get("includeInactive") != "true"
}

// --- Venues ---

func (h *CatalogHandler) CreateVenue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "CreateVenue", err)
		return
	}

	var venue model.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		h.writeErr(w, "CreateVenue", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CreateVenue(r.Context(), &venue); err != nil {
		h.writeErr(w, "CreateVenue", err)
		return
	}

	if err := httputil.WriteCreated(w, venue); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateVenue", "error", err)
	}
}

func (h *CatalogHandler) GetVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	venue, err := h.service.GetVenue(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "GetVenue", err)
		return
	}
	if err := httputil.WriteSuccess(w, venue); err != nil {
		h.log.Error("failed to write success response", "handler", "GetVenue", "error", err)
	}
}

func (h *CatalogHandler) ListVenues(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	venues, err := h.service.ListVenues(r.Context(), activeOnly(r))
	if err != nil {
		h.writeErr(w, "ListVenues", err)
		return
	}
	if err := httputil.WriteSuccess(w, venues); err != nil {
		h.log.Error("failed to write success response", "handler", "ListVenues", "error", err)
	}
}

func (h *CatalogHandler) UpdateVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "UpdateVenue", err)
		return
	}

	var venue model.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		h.writeErr(w, "UpdateVenue", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.UpdateVenue(r.Context(), ps.ByName("id"), &venue); err != nil {
		h.writeErr(w, "UpdateVenue", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) DeleteVenue(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "DeleteVenue", err)
		return
	}
	if err := h.service.DeleteVenue(r.Context(), ps.ByName("id")); err != nil {
		h.writeErr(w, "DeleteVenue", err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- Room types ---

func (h *CatalogHandler) CreateRoomType(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "CreateRoomType", err)
		return
	}

	var roomType model.RoomType
	if err := json.NewDecoder(r.Body).Decode(&roomType); err != nil {
		h.writeErr(w, "CreateRoomType", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CreateRoomType(r.Context(), &roomType); err != nil {
		h.writeErr(w, "CreateRoomType", err)
		return
	}

	if err := httputil.WriteCreated(w, roomType); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateRoomType", "error", err)
	}
}

func (h *CatalogHandler) GetRoomType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomType, err := h.service.GetRoomType(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "GetRoomType", err)
		return
	}
	if err := httputil.WriteSuccess(w, roomType); err != nil {
		h.log.Error("failed to write success response", "handler", "GetRoomType", "error", err)
	}
}

func (h *CatalogHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	roomTypes, err := h.service.ListRoomTypes(r.Context(), activeOnly(r))
	if err != nil {
		h.writeErr(w, "ListRoomTypes", err)
		return
	}
	if err := httputil.WriteSuccess(w, roomTypes); err != nil {
		h.log.Error("failed to write success response", "handler", "ListRoomTypes", "error", err)
	}
}

func (h *CatalogHandler) UpdateRoomType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "UpdateRoomType", err)
		return
	}

	var roomType model.RoomType
	if err := json.NewDecoder(r.Body).Decode(&roomType); err != nil {
		h.writeErr(w, "UpdateRoomType", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.UpdateRoomType(r.Context(), ps.ByName("id"), &roomType); err != nil {
		h.writeErr(w, "UpdateRoomType", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) DeleteRoomType(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "DeleteRoomType", err)
		return
	}
	if err := h.service.DeleteRoomType(r.Context(), ps.ByName("id")); err != nil {
		h.writeErr(w, "DeleteRoomType", err)
		return
	}
	httputil.WriteNoContent(w)
}

// --- Menu packages ---

func (h *CatalogHandler) CreateMenuPackage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "CreateMenuPackage", err)
		return
	}

	var pkg model.MenuPackage
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		h.writeErr(w, "CreateMenuPackage", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.CreateMenuPackage(r.Context(), &pkg); err != nil {
		h.writeErr(w, "CreateMenuPackage", err)
		return
	}

	if err := httputil.WriteCreated(w, pkg); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateMenuPackage", "error", err)
	}
}

func (h *CatalogHandler) GetMenuPackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pkg, err := h.service.GetMenuPackage(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeErr(w, "GetMenuPackage", err)
		return
	}
	if err := httputil.WriteSuccess(w, pkg); err != nil {
		h.log.Error("failed to write success response", "handler", "GetMenuPackage", "error", err)
	}
}

func (h *CatalogHandler) ListMenuPackages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pkgs, err := h.service.ListMenuPackages(r.Context(), activeOnly(r))
	if err != nil {
		h.writeErr(w, "ListMenuPackages", err)
		return
	}
	if err := httputil.WriteSuccess(w, pkgs); err != nil {
		h.log.Error("failed to write success response", "handler", "ListMenuPackages", "error", err)
	}
}

func (h *CatalogHandler) UpdateMenuPackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "UpdateMenuPackage", err)
		return
	}

	var pkg model.MenuPackage
	if err := json.NewDecoder(r.Body).Decode(&pkg); err != nil {
		h.writeErr(w, "UpdateMenuPackage", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if err := h.service.UpdateMenuPackage(r.Context(), ps.ByName("id"), &pkg); err != nil {
		h.writeErr(w, "UpdateMenuPackage", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) DeleteMenuPackage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.authorizeAdmin(r); err != nil {
		h.writeErr(w, "DeleteMenuPackage", err)
		return
	}
	if err := h.service.DeleteMenuPackage(r.Context(), ps.ByName("id")); err != nil {
		h.writeErr(w, "DeleteMenuPackage", err)
		return
	}
	httputil.WriteNoContent(w)
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/venues", h.CreateVenue)
	router.GET("/api/v1/venues", h.ListVenues)
	router.GET("/api/v1/venues/id/:id", h.GetVenue)
	router.PUT("/api/v1/venues/id/:id", h.UpdateVenue)
	router.DELETE("/api/v1/venues/id/:id", h.DeleteVenue)

	router.POST("/api/v1/room-types", h.CreateRoomType)
	router.GET("/api/v1/room-types", h.ListRoomTypes)
	router.GET("/api/v1/room-types/id/:id", h.GetRoomType)
	router.PUT("/api/v1/room-types/id/:id", h.UpdateRoomType)
	router.DELETE("/api/v1/room-types/id/:id", h.DeleteRoomType)

	router.POST("/api/v1/menu-packages", h.CreateMenuPackage)
	router.GET("/api/v1/menu-packages", h.ListMenuPackages)
	router.GET("/api/v1/menu-packages/id/:id", h.GetMenuPackage)
	router.PUT("/api/v1/menu-packages/id/:id", h.UpdateMenuPackage)
	router.DELETE("/api/v1/menu-packages/id/:id", h.DeleteMenuPackage)
}
