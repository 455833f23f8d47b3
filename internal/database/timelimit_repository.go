package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/models"
	"github.com/Paterne-Byiringiro/project-fritter-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TimelimitDocument represents a user's active timing session in MongoDB
type TimelimitDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	AuthorID    primitive.ObjectID `bson:"authorId"`
	StartTime   time.Time          `bson:"startTime"`
	ElapsedTime int64              `bson:"elapsedTime"` // milliseconds
}

func timelimitDocumentToModel(doc *TimelimitDocument) *models.Timelimit {
	return &models.Timelimit{
		ID:          doc.ID,
		AuthorID:    doc.AuthorID,
		StartTime:   doc.StartTime,
		ElapsedTime: doc.ElapsedTime,
	}
}

// StartTimelimit resolves the username and upserts the author's single timing
// record. Calling it again for the same user replaces the active session
// rather than stacking a second one.
func (m *MongoDB) StartTimelimit(ctx context.Context, username string, startTime time.Time, elapsedTime int64) (*models.Timelimit, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	doc := TimelimitDocument{
		ID:          primitive.NewObjectID(),
		AuthorID:    author.ID,
		StartTime:   startTime,
		ElapsedTime: elapsedTime,
	}

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"authorId": author.ID}
	update := bson.M{
		"$set": bson.M{
			"startTime":   doc.StartTime,
			"elapsedTime": doc.ElapsedTime,
		},
		"$setOnInsert": bson.M{"_id": doc.ID},
	}

	if _, err := m.Timelimits.UpdateOne(ctx, filter, update, opts); err != nil {
		return nil, fmt.Errorf("failed to start timelimit: %v", err)
	}

	return m.getTimelimitByAuthor(ctx, author.ID)
}

// GetTimelimit resolves the username and queries by the author's id.
func (m *MongoDB) GetTimelimit(ctx context.Context, username string) (*models.Timelimit, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return m.getTimelimitByAuthor(ctx, author.ID)
}

func (m *MongoDB) getTimelimitByAuthor(ctx context.Context, authorID primitive.ObjectID) (*models.Timelimit, error) {
	var doc TimelimitDocument
	err := m.Timelimits.FindOne(ctx, bson.M{"authorId": authorID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrTimelimitNotFound, "Timelimit not found for author: "+authorID.Hex(), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timelimit: %v", err)
	}
	return timelimitDocumentToModel(&doc), nil
}

// DeleteTimelimit resolves the username and removes the author's timing
// record. Returns whether a delete occurred.
func (m *MongoDB) DeleteTimelimit(ctx context.Context, username string) (bool, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	result, err := m.Timelimits.DeleteOne(ctx, bson.M{"authorId": author.ID})
	if err != nil {
		return false, fmt.Errorf("failed to delete timelimit: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteTimelimitsByAuthor removes the author's timing record by id. Used
// when a user account is deleted.
func (m *MongoDB) DeleteTimelimitsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := m.Timelimits.DeleteMany(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return fmt.Errorf("failed to delete timelimits by author: %v", err)
	}
	return nil
}

// EnsureTimelimitIndexes creates required indexes for the timelimits
// collection. The unique authorId index backs the one-record-per-author
// upsert in StartTimelimit.
func (m *MongoDB) EnsureTimelimitIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "authorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.Timelimits.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create timelimit indexes: %v", err)
	}

	return nil
}
