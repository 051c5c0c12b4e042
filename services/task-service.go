package services

import (
	"context"

	"github.com/sony/gobreaker"

	"github.com/syedmehedi34/scsi-job-task-server/models"
)

// TaskStore is the persistence surface TaskService depends on. The Mongo
// implementation lives in the db package; tests supply an in-memory one.
type TaskStore interface {
	ListByOwner(ctx context.Context, email string) ([]models.Task, error)
	// Upsert atomically replaces the task with the same id, inserting it if
	// none exists. The bool result is true on the insert path.
	Upsert(ctx context.Context, task models.Task) (models.Task, bool, error)
	UpdateCategory(ctx context.Context, taskID, category string) (models.Task, error)
	Remove(ctx context.Context, taskID string) error
}

type TaskService struct {
	store   TaskStore
	breaker *gobreaker.CircuitBreaker
}

func NewTaskService(store TaskStore, breaker *gobreaker.CircuitBreaker) *TaskService {
	return &TaskService{store: store, breaker: breaker}
}

// ListByOwner returns every task whose user field equals the given email.
// The result is never nil so handlers always render a JSON array.
func (s *TaskService) ListByOwner(ctx context.Context, email string) ([]models.Task, error) {
	if email == "" {
		return nil, missingField("email")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.store.ListByOwner(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	tasks := result.([]models.Task)
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

type upsertResult struct {
	task     models.Task
	inserted bool
}

// Upsert stores the task under its caller-supplied id, replacing every field
// of an existing task with the same id. The returned bool is true when a new
// document was created.
func (s *TaskService) Upsert(ctx context.Context, task models.Task) (models.Task, bool, error) {
	if task.ID == "" {
		return models.Task{}, false, missingField("newTask.id")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		stored, inserted, err := s.store.Upsert(ctx, task)
		return upsertResult{task: stored, inserted: inserted}, err
	})
	if err != nil {
		return models.Task{}, false, err
	}

	res := result.(upsertResult)
	return res.task, res.inserted, nil
}

// UpdateCategory moves a task to another category, leaving every other field
// untouched.
func (s *TaskService) UpdateCategory(ctx context.Context, taskID, category string) (models.Task, error) {
	if taskID == "" {
		return models.Task{}, missingField("taskId")
	}
	if category == "" {
		return models.Task{}, missingField("newCategory")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.store.UpdateCategory(ctx, taskID, category)
	})
	if err != nil {
		return models.Task{}, err
	}
	return result.(models.Task), nil
}

// Remove deletes the task with the given id.
func (s *TaskService) Remove(ctx context.Context, taskID string) error {
	if taskID == "" {
		return missingField("taskId")
	}

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.store.Remove(ctx, taskID)
	})
	return err
}
