package resource

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	httputil "busline/pkg/http"
	"busline/pkg/logger"
)

// Handler exposes the five CRUD operations of one entity type under a base
// path. The /id/:id segment keeps the wildcard clear of sibling routes such
// as /search.
type Handler[T any] struct {
	name    string
	path    string
	service Service[T]
	log     *logger.Logger
}

func NewHandler[T any](name, path string, service Service[T], log *logger.Logger) *Handler[T] {
	return &Handler[T]{
		name:    name,
		path:    path,
		service: service,
		log:     log,
	}
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	entities, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", h.name, "operation", "List", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, entities); err != nil {
		h.log.Error("failed to write success response", "handler", h.name, "operation", "List", "error", err)
	}
}

func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	entity, err := h.service.Get(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", h.name, "operation", "Get", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, entity); err != nil {
		h.log.Error("failed to write success response", "handler", h.name, "operation", "Get", "error", err)
	}
}

func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entity T
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", h.name, "operation", "Create", "error", writeErr)
		}
		return
	}

	created, err := h.service.Create(r.Context(), &entity)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", h.name, "operation", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, created); err != nil {
		h.log.Error("failed to write created response", "handler", h.name, "operation", "Create", "error", err)
	}
}

func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", h.name, "operation", "Update", "error", writeErr)
		}
		return
	}

	set, err := SetFields[T](body)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", h.name, "operation", "Update", "error", writeErr)
		}
		return
	}

	updated, err := h.service.Update(r.Context(), id, set)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", h.name, "operation", "Update", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, updated); err != nil {
		h.log.Error("failed to write success response", "handler", h.name, "operation", "Update", "error", err)
	}
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", h.name, "operation", "Delete", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteDeleted(w, id); err != nil {
		h.log.Error("failed to write deleted response", "handler", h.name, "operation", "Delete", "error", err)
	}
}

func (h *Handler[T]) RegisterRoutes(router *httprouter.Router) {
	router.GET(h.path, h.List)
	router.POST(h.path, h.Create)
	router.GET(h.path+"/id/:id", h.Get)
	router.PUT(h.path+"/id/:id", h.Update)
	router.DELETE(h.path+"/id/:id", h.Delete)
}
