// Package handler exposes the token issuance endpoint.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"busline/internal/auth/service"
	httputil "busline/pkg/http"
	"busline/pkg/logger"
)

type tokenRequest struct {
	UserID string `json:"user_id"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type AuthHandler struct {
	tokens service.TokenService
	log    *logger.Logger
}

func NewAuthHandler(tokens service.TokenService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		log:    log,
	}
}

func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "operation", "IssueToken", "error", writeErr)
		}
		return
	}

	token, err := h.tokens.Issue(r.Context(), req.UserID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "operation", "IssueToken", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, tokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write success response", "operation", "IssueToken", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/token", h.IssueToken)
}
