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

// FreetDocument represents freet data in MongoDB
type FreetDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
	Content      string             `bson:"content"`
	DateCreated  time.Time          `bson:"dateCreated"`
	DateModified time.Time          `bson:"dateModified"`
}

func freetDocumentToModel(doc *FreetDocument) *models.Freet {
	return &models.Freet{
		ID:           doc.ID,
		AuthorID:     doc.AuthorID,
		Content:      doc.Content,
		DateCreated:  doc.DateCreated,
		DateModified: doc.DateModified,
	}
}

// CreateFreet persists a new freet with both timestamps set to now.
func (m *MongoDB) CreateFreet(ctx context.Context, authorID primitive.ObjectID, content string) (*models.Freet, error) {
	now := time.Now()
	doc := FreetDocument{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		Content:      content,
		DateCreated:  now,
		DateModified: now,
	}

	if _, err := m.Freets.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create freet: %v", err)
	}

	return freetDocumentToModel(&doc), nil
}

// GetFreet retrieves a freet by id
func (m *MongoDB) GetFreet(ctx context.Context, id primitive.ObjectID) (*models.Freet, error) {
	var doc FreetDocument
	err := m.Freets.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewFreetNotFoundError(id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get freet: %v", err)
	}
	return freetDocumentToModel(&doc), nil
}

// AllFreets returns every freet sorted from most to least recently modified.
func (m *MongoDB) AllFreets(ctx context.Context) ([]*models.Freet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateModified", Value: -1}})
	cursor, err := m.Freets.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get freets: %v", err)
	}

	docs, err := decodeAll[FreetDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}

	freets := make([]*models.Freet, len(docs))
	for i := range docs {
		freets[i] = freetDocumentToModel(&docs[i])
	}
	return freets, nil
}

// FreetsByAuthor returns all freets authored by the given user.
func (m *MongoDB) FreetsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Freet, error) {
	cursor, err := m.Freets.Find(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return nil, fmt.Errorf("failed to get freets by author: %v", err)
	}

	docs, err := decodeAll[FreetDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}

	freets := make([]*models.Freet, len(docs))
	for i := range docs {
		freets[i] = freetDocumentToModel(&docs[i])
	}
	return freets, nil
}

// FreetsByUsername resolves the username first, then queries by the author id.
func (m *MongoDB) FreetsByUsername(ctx context.Context, username string) ([]*models.Freet, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return m.FreetsByAuthor(ctx, author.ID)
}

// UpdateFreet replaces the content and advances dateModified.
func (m *MongoDB) UpdateFreet(ctx context.Context, id primitive.ObjectID, content string) (*models.Freet, error) {
	update := bson.M{
		"$set": bson.M{
			"content":      content,
			"dateModified": time.Now(),
		},
	}

	result, err := m.Freets.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update freet: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewFreetNotFoundError(id.Hex())
	}

	return m.GetFreet(ctx, id)
}

// DeleteFreet removes a freet. Returns whether a delete occurred. Comments
// and reactions on the freet are left in place.
func (m *MongoDB) DeleteFreet(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := m.Freets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete freet: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteFreetsByAuthor bulk-removes all freets by an author. Used when a user
// account is deleted.
func (m *MongoDB) DeleteFreetsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := m.Freets.DeleteMany(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return fmt.Errorf("failed to delete freets by author: %v", err)
	}
	return nil
}

// EnsureFreetIndexes creates required indexes for the freets collection
func (m *MongoDB) EnsureFreetIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "dateModified", Value: -1}},
		},
	}

	_, err := m.Freets.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create freet indexes: %v", err)
	}

	return nil
}
