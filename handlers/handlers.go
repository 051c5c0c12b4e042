package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/syedmehedi34/scsi-job-task-server/logging"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Anything unclassified is a store failure: logged, surfaced as a 500, never
// retried.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrMissingField):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.Logger.Errorf("Event ID: STORE_ERROR, Description: Store operation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
