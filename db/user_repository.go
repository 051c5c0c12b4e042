package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/syedmehedi34/scsi-job-task-server/models"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

// UserRepository implements services.UserStore on a MongoDB collection.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *mongo.Client, dbName string) *UserRepository {
	return &UserRepository{collection: client.Database(dbName).Collection("users")}
}

// EnsureIndexes provisions the unique email index that makes duplicate
// registrations fail inside the store instead of in a racy existence check.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %v", err)
	}
	return nil
}

func (r *UserRepository) Insert(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	result, err := r.collection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, services.ErrEmailTaken
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to save user: %v", err)
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %v", err)
	}
	return &user, nil
}
