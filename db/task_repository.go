package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/syedmehedi34/scsi-job-task-server/models"
	"github.com/syedmehedi34/scsi-job-task-server/services"
)

// TaskRepository implements services.TaskStore on a MongoDB collection.
type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(client *mongo.Client, dbName string) *TaskRepository {
	return &TaskRepository{collection: client.Database(dbName).Collection("tasks")}
}

// EnsureIndexes provisions the unique index on the caller-supplied task id.
// The index backs the one-document-per-id invariant that the atomic upsert
// relies on.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create tasks index: %v", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, email string) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": email})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	for cursor.Next(ctx) {
		var task models.Task
		if err := cursor.Decode(&task); err != nil {
			return nil, fmt.Errorf("failed to decode task: %v", err)
		}
		tasks = append(tasks, task)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return tasks, nil
}

// Upsert replaces the document matching the task id, inserting it when no
// match exists. A single ReplaceOne keeps the check and the write atomic.
func (r *TaskRepository) Upsert(ctx context.Context, task models.Task) (models.Task, bool, error) {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"id": task.ID}, task, options.Replace().SetUpsert(true))
	if err != nil {
		return models.Task{}, false, fmt.Errorf("failed to upsert task: %v", err)
	}
	return task, result.UpsertedCount > 0, nil
}

func (r *TaskRepository) UpdateCategory(ctx context.Context, taskID, category string) (models.Task, error) {
	var task models.Task
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"id": taskID},
		bson.M{"$set": bson.M{"category": category}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Task{}, services.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task category: %v", err)
	}
	return task, nil
}

func (r *TaskRepository) Remove(ctx context.Context, taskID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": taskID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrTaskNotFound
	}
	return nil
}
