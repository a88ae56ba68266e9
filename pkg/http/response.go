package http

import (
	"encoding/json"
	"net/http"

	apperrors "busline/pkg/errors"
)

type ErrorResponse struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data,omitempty"`
}

// DeleteConfirmation is the uniform body returned by every delete endpoint.
type DeleteConfirmation struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// No recovery possible after WriteHeader; return the error so the caller can log.
	return json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), ErrorResponse{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}

func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteDeleted(w http.ResponseWriter, id string) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Data: DeleteConfirmation{ID: id, Deleted: true}})
}
