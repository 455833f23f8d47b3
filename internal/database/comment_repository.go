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

// CommentDocument represents comment data in MongoDB
type CommentDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
	FreetID      primitive.ObjectID `bson:"freetId"`
	Content      string             `bson:"content"`
	DateCreated  time.Time          `bson:"dateCreated"`
	DateModified time.Time          `bson:"dateModified"`
}

func commentDocumentToModel(doc *CommentDocument) *models.Comment {
	return &models.Comment{
		ID:           doc.ID,
		AuthorID:     doc.AuthorID,
		FreetID:      doc.FreetID,
		Content:      doc.Content,
		DateCreated:  doc.DateCreated,
		DateModified: doc.DateModified,
	}
}

func commentDocumentsToModels(docs []CommentDocument) []*models.Comment {
	comments := make([]*models.Comment, len(docs))
	for i := range docs {
		comments[i] = commentDocumentToModel(&docs[i])
	}
	return comments
}

// AddComment inserts a comment. The freet reference is trusted: existence is
// checked by middleware before this call.
func (m *MongoDB) AddComment(ctx context.Context, authorID, freetID primitive.ObjectID, content string) (*models.Comment, error) {
	now := time.Now()
	doc := CommentDocument{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		FreetID:      freetID,
		Content:      content,
		DateCreated:  now,
		DateModified: now,
	}

	if _, err := m.Comments.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to add comment: %v", err)
	}

	return commentDocumentToModel(&doc), nil
}

// GetComment retrieves a comment by id
func (m *MongoDB) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var doc CommentDocument
	err := m.Comments.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found: "+id.Hex(), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %v", err)
	}
	return commentDocumentToModel(&doc), nil
}

// AllComments returns every comment sorted from most to least recently
// modified.
func (m *MongoDB) AllComments(ctx context.Context) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateModified", Value: -1}})
	cursor, err := m.Comments.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}

	docs, err := decodeAll[CommentDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return commentDocumentsToModels(docs), nil
}

// CommentsByAuthor returns all comments authored by the given user.
func (m *MongoDB) CommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]*models.Comment, error) {
	cursor, err := m.Comments.Find(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return nil, fmt.Errorf("failed to get comments by author: %v", err)
	}

	docs, err := decodeAll[CommentDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return commentDocumentsToModels(docs), nil
}

// CommentsByUsername resolves the username via the user directory first.
func (m *MongoDB) CommentsByUsername(ctx context.Context, username string) ([]*models.Comment, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return m.CommentsByAuthor(ctx, author.ID)
}

// CommentsByFreet resolves the freet handle first, then queries by its id.
func (m *MongoDB) CommentsByFreet(ctx context.Context, freetID primitive.ObjectID) ([]*models.Comment, error) {
	freet, err := m.GetFreet(ctx, freetID)
	if err != nil {
		return nil, err
	}

	cursor, err := m.Comments.Find(ctx, bson.M{"freetId": freet.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to get comments by freet: %v", err)
	}

	docs, err := decodeAll[CommentDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return commentDocumentsToModels(docs), nil
}

// CommentByAuthorAndFreet returns the comments a user left on one freet.
func (m *MongoDB) CommentByAuthorAndFreet(ctx context.Context, authorID, freetID primitive.ObjectID) ([]*models.Comment, error) {
	cursor, err := m.Comments.Find(ctx, bson.M{"authorId": authorID, "freetId": freetID})
	if err != nil {
		return nil, fmt.Errorf("failed to get comments by author and freet: %v", err)
	}

	docs, err := decodeAll[CommentDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return commentDocumentsToModels(docs), nil
}

// UpdateComment replaces the content and advances dateModified. Signals a
// clean not-found when the id does not resolve.
func (m *MongoDB) UpdateComment(ctx context.Context, id primitive.ObjectID, content string) (*models.Comment, error) {
	update := bson.M{
		"$set": bson.M{
			"content":      content,
			"dateModified": time.Now(),
		},
	}

	result, err := m.Comments.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, utils.NewAppError(utils.ErrCommentNotFound, "Comment not found: "+id.Hex(), nil)
	}

	return m.GetComment(ctx, id)
}

// DeleteComment removes a comment. Returns whether a delete occurred.
func (m *MongoDB) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := m.Comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteCommentsByAuthor bulk-removes all comments by an author. Used when a
// user account is deleted.
func (m *MongoDB) DeleteCommentsByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := m.Comments.DeleteMany(ctx, bson.M{"authorId": authorID})
	if err != nil {
		return fmt.Errorf("failed to delete comments by author: %v", err)
	}
	return nil
}

// CountCommentsOnFreet is a derived count over CommentsByFreet, not a
// maintained counter.
func (m *MongoDB) CountCommentsOnFreet(ctx context.Context, freetID primitive.ObjectID) (int, error) {
	comments, err := m.CommentsByFreet(ctx, freetID)
	if err != nil {
		return 0, err
	}
	return len(comments), nil
}

// EnsureCommentIndexes creates required indexes for the comments collection
func (m *MongoDB) EnsureCommentIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "freetId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "authorId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "dateModified", Value: -1}},
		},
	}

	_, err := m.Comments.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %v", err)
	}

	return nil
}
