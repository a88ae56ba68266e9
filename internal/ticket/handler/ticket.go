// Package handler exposes the ticket HTTP surface: CRUD plus the search
// endpoint. The /id/:id segment keeps the path wildcard clear of /search.
package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"busline/internal/resource"
	"busline/internal/ticket/service"
	httputil "busline/pkg/http"
	"busline/pkg/logger"
	"busline/pkg/model"
)

type TicketHandler struct {
	service service.TicketService
	log     *logger.Logger
}

func NewTicketHandler(svc service.TicketService, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		service: svc,
		log:     log,
	}
}

func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	tickets, err := h.service.GetAll(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, tickets); err != nil {
		h.log.Error("failed to write success response", "operation", "List", "error", err)
	}
}

func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ticket, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "Get", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ticket); err != nil {
		h.log.Error("failed to write success response", "operation", "Get", "error", err)
	}
}

func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var ticket model.Ticket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "operation", "Create", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &ticket)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "operation", "Create", "error", err)
	}
}

func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "operation", "Update", "error", writeErr)
		}
		return
	}

	set, err := resource.SetFields[model.Ticket](body)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "Update", "error", writeErr)
		}
		return
	}

	updated, err := h.service.Update(r.Context(), id, set)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "operation", "Update", "error", err)
	}
}

func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteDeleted(w, id); err != nil {
		h.log.Error("failed to write deleted response", "operation", "Delete", "error", err)
	}
}

func (h *TicketHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	params := service.SearchParams{
		TicketCatalogName:    query.Get("ticket_catalog_name"),
		SeatName:             query.Get("seat_name"),
		DeparturePointName:   query.Get("departure_point_name"),
		DestinationPointName: query.Get("destination_point_name"),
	}

	tickets, err := h.service.Search(r.Context(), params)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "Search", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, tickets); err != nil {
		h.log.Error("failed to write success response", "operation", "Search", "error", err)
	}
}

func (h *TicketHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/tickets", h.List)
	router.POST("/api/v1/tickets", h.Create)
	router.GET("/api/v1/tickets/search", h.Search)
	router.GET("/api/v1/tickets/id/:id", h.Get)
	router.PUT("/api/v1/tickets/id/:id", h.Update)
	router.DELETE("/api/v1/tickets/id/:id", h.Delete)
}
