package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/syedmehedi34/scsi-job-task-server/logging"
	"github.com/syedmehedi34/scsi-job-task-server/models"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// GetTasks lists every task owned by the email given in the query string.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	tasks, err := h.service.ListByOwner(r.Context(), email)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// UpsertTask stores the posted task under its caller-supplied id: a new id
// answers 201 with the inserted record, an existing id has every field
// replaced and answers 200 with the updated task.
func (h *TaskHandler) UpsertTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		NewTask *models.Task `json:"newTask"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if body.NewTask == nil {
		writeError(w, http.StatusBadRequest, "newTask is required")
		return
	}

	task, inserted, err := h.service.Upsert(r.Context(), *body.NewTask)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	logging.Logger.Infof("Event ID: TASK_UPSERTED, Description: Task %s stored for %s (inserted=%t)", task.ID, task.User, inserted)
	writeJSON(w, status, task)
}

// DragTask moves a task to another category, leaving the rest of the
// document untouched.
func (h *TaskHandler) DragTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TaskID      string `json:"taskId"`
		NewCategory string `json:"newCategory"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.UpdateCategory(r.Context(), body.TaskID, body.NewCategory)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_MOVED, Description: Task %s moved to category %s", task.ID, task.Category)
	writeJSON(w, http.StatusOK, task)
}

// DeleteTask removes the task with the posted id.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TaskID string `json:"taskId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.Remove(r.Context(), body.TaskID); err != nil {
		writeServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted", body.TaskID)
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}
