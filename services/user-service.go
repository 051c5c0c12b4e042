package services

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/syedmehedi34/scsi-job-task-server/models"
)

// UserStore is the persistence surface UserService depends on.
type UserStore interface {
	// Insert stores a new user and returns the generated id. It fails with
	// ErrEmailTaken when the email is already registered.
	Insert(ctx context.Context, user models.User) (primitive.ObjectID, error)
	// FindByEmail returns nil without error when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserService struct {
	store   UserStore
	breaker *gobreaker.CircuitBreaker
}

func NewUserService(store UserStore, breaker *gobreaker.CircuitBreaker) *UserService {
	return &UserService{store: store, breaker: breaker}
}

// Register stamps the registration time and stores the user. Duplicate
// emails fail with ErrEmailTaken and leave the existing record untouched.
func (s *UserService) Register(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	if user.Email == "" {
		return primitive.NilObjectID, missingField("email")
	}
	user.CreatedAt = time.Now().UTC()

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.store.Insert(ctx, user)
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.(primitive.ObjectID), nil
}

// FetchByEmail looks a user up by email. Absence is not an error: the result
// is nil when no user is registered under the address.
func (s *UserService) FetchByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, missingField("email")
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.store.FindByEmail(ctx, email)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.User), nil
}
