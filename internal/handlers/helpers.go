package handlers

import (
	"encoding/json"
	"net/http"

	"promptforge-backend/internal/models"
	"promptforge-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// handleServiceError translates typed service errors into the uniform wire
// envelope. Error kinds propagate unchanged up to here; this is the only
// place they become HTTP statuses.
func handleServiceError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeError(w, http.StatusBadRequest, e.Message)
	case *services.UnauthorizedError:
		writeError(w, http.StatusUnauthorized, e.Message)
	case *services.ForbiddenError:
		writeError(w, http.StatusForbidden, e.Message)
	case *services.NotFoundError:
		writeError(w, http.StatusNotFound, e.Message)
	case *services.ConflictError:
		writeError(w, http.StatusConflict, e.Message)
	case *services.ClassificationError:
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "Could not determine the project type",
			Details: e.Error(),
		})
	case *services.GatewayError:
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{
			Error:   "AI generation failed",
			Details: e.Error(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Error:   "An unexpected error occurred",
			Details: err.Error(),
		})
	}
}
