package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/syedmehedi34/scsi-job-task-server/logging"
	"github.com/syedmehedi34/scsi-job-task-server/models"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register stores a new user keyed by email and answers with the generated
// id. A duplicate email is rejected without touching the existing record.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	insertedID, err := h.service.Register(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User registered with email %s", user.Email)
	writeJSON(w, http.StatusOK, map[string]string{"insertedId": insertedID.Hex()})
}

// GetUser fetches a user by the email query parameter. A missing user is not
// an error: the response is 200 with a null body.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	user, err := h.service.FetchByEmail(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
