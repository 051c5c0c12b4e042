package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/syedmehedi34/scsi-job-task-server/models"
)

// errStoreDown stands in for any backing-store failure in tests.
var errStoreDown = errors.New("store unavailable")

type fakeTaskStore struct {
	tasks []models.Task
	down  bool
}

func (f *fakeTaskStore) ListByOwner(ctx context.Context, email string) ([]models.Task, error) {
	if f.down {
		return nil, errStoreDown
	}
	var out []models.Task
	for _, t := range f.tasks {
		if t.User == email {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Upsert(ctx context.Context, task models.Task) (models.Task, bool, error) {
	if f.down {
		return models.Task{}, false, errStoreDown
	}
	for i, t := range f.tasks {
		if t.ID == task.ID {
			f.tasks[i] = task
			return task, false, nil
		}
	}
	f.tasks = append(f.tasks, task)
	return task, true, nil
}

func (f *fakeTaskStore) UpdateCategory(ctx context.Context, taskID, category string) (models.Task, error) {
	if f.down {
		return models.Task{}, errStoreDown
	}
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks[i].Category = category
			return f.tasks[i], nil
		}
	}
	return models.Task{}, ErrTaskNotFound
}

func (f *fakeTaskStore) Remove(ctx context.Context, taskID string) error {
	if f.down {
		return errStoreDown
	}
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

type fakeUserStore struct {
	users []models.User
	down  bool
}

func (f *fakeUserStore) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if f.down {
		return primitive.NilObjectID, errStoreDown
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return user.ID, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.down {
		return nil, errStoreDown
	}
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}
