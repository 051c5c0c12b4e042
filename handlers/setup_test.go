package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/syedmehedi34/scsi-job-task-server/middleware"
	"github.com/syedmehedi34/scsi-job-task-server/models"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

// In-memory store fakes so handler tests exercise the full stack below the
// router without a running MongoDB.

type fakeTaskStore struct {
	tasks []models.Task
}

func (f *fakeTaskStore) ListByOwner(ctx context.Context, email string) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.User == email {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Upsert(ctx context.Context, task models.Task) (models.Task, bool, error) {
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
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks[i].Category = category
			return f.tasks[i], nil
		}
	}
	return models.Task{}, services.ErrTaskNotFound
}

func (f *fakeTaskStore) Remove(ctx context.Context, taskID string) error {
	for i, t := range f.tasks {
		if t.ID == taskID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return services.ErrTaskNotFound
}

type fakeUserStore struct {
	users []models.User
}

func (f *fakeUserStore) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, services.ErrEmailTaken
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return user.ID, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

const testSecret = "0123456789abcdef0123456789abcdef"

// setupHTTP wires the same routes main serves, backed by the fakes.
func setupHTTP(t *testing.T) (http.Handler, *fakeTaskStore, *fakeUserStore) {
	t.Helper()

	taskStore := &fakeTaskStore{}
	userStore := &fakeUserStore{}

	jwtService := services.NewJWTService(testSecret)
	taskService := services.NewTaskService(taskStore, services.NewStoreBreaker("tasks-store-cb-test"))
	userService := services.NewUserService(userStore, services.NewStoreBreaker("users-store-cb-test"))

	authHandler := NewAuthHandler(jwtService, false)
	taskHandler := NewTaskHandler(taskService)
	userHandler := NewUserHandler(userService)

	r := mux.NewRouter()
	r.HandleFunc("/jwt", authHandler.IssueToken).Methods(http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	guarded := r.NewRoute().Subrouter()
	guarded.Use(mux.MiddlewareFunc(middleware.JWTAuthMiddleware(jwtService)))
	guarded.HandleFunc("/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	guarded.HandleFunc("/tasks", taskHandler.UpsertTask).Methods(http.MethodPatch)
	guarded.HandleFunc("/tasks", taskHandler.DeleteTask).Methods(http.MethodDelete)
	guarded.HandleFunc("/drag_tasks", taskHandler.DragTask).Methods(http.MethodPatch)
	guarded.HandleFunc("/users", userHandler.Register).Methods(http.MethodPost)
	guarded.HandleFunc("/user", userHandler.GetUser).Methods(http.MethodGet)

	return r, taskStore, userStore
}

// sessionCookieFor logs a test user in through POST /jwt and returns the
// session cookie the server set.
func sessionCookieFor(t *testing.T, router http.Handler, email string) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"`+email+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /jwt status=%d body=%s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("POST /jwt did not set a session cookie")
	return nil
}
