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

// ReactionDocument represents reaction data in MongoDB. Likes and dislikes
// share this collection; the dislike flag partitions the two views.
type ReactionDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	AuthorID     primitive.ObjectID `bson:"authorId"`
	FreetID      primitive.ObjectID `bson:"freetId"`
	Dislike      bool               `bson:"dislike"`
	DateCreated  time.Time          `bson:"dateCreated"`
	DateModified time.Time          `bson:"dateModified"`
}

func reactionDocumentToModel(doc *ReactionDocument) *models.Reaction {
	return &models.Reaction{
		ID:           doc.ID,
		AuthorID:     doc.AuthorID,
		FreetID:      doc.FreetID,
		Polarity:     models.PolarityFromFlag(doc.Dislike),
		DateCreated:  doc.DateCreated,
		DateModified: doc.DateModified,
	}
}

func reactionDocumentsToModels(docs []ReactionDocument) []*models.Reaction {
	reactions := make([]*models.Reaction, len(docs))
	for i := range docs {
		reactions[i] = reactionDocumentToModel(&docs[i])
	}
	return reactions
}

// AddReaction inserts a reaction with the given polarity. No uniqueness is
// enforced on (author, freet, polarity): the same author can react to the
// same freet more than once.
func (m *MongoDB) AddReaction(ctx context.Context, authorID, freetID primitive.ObjectID, polarity models.Polarity) (*models.Reaction, error) {
	now := time.Now()
	doc := ReactionDocument{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		FreetID:      freetID,
		Dislike:      polarity.IsDislike(),
		DateCreated:  now,
		DateModified: now,
	}

	if _, err := m.Reactions.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to add reaction: %v", err)
	}

	return reactionDocumentToModel(&doc), nil
}

// GetReaction retrieves a reaction by id within one polarity partition.
func (m *MongoDB) GetReaction(ctx context.Context, id primitive.ObjectID, polarity models.Polarity) (*models.Reaction, error) {
	var doc ReactionDocument
	err := m.Reactions.FindOne(ctx, bson.M{"_id": id, "dislike": polarity.IsDislike()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrReactionNotFound, "Reaction not found: "+id.Hex(), err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reaction: %v", err)
	}
	return reactionDocumentToModel(&doc), nil
}

// AllReactions returns one polarity partition sorted from most to least
// recently modified.
func (m *MongoDB) AllReactions(ctx context.Context, polarity models.Polarity) ([]*models.Reaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "dateModified", Value: -1}})
	cursor, err := m.Reactions.Find(ctx, bson.M{"dislike": polarity.IsDislike()}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions: %v", err)
	}

	docs, err := decodeAll[ReactionDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return reactionDocumentsToModels(docs), nil
}

// ReactionsByAuthor returns all reactions of one polarity by the given user.
func (m *MongoDB) ReactionsByAuthor(ctx context.Context, authorID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error) {
	cursor, err := m.Reactions.Find(ctx, bson.M{"authorId": authorID, "dislike": polarity.IsDislike()})
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions by author: %v", err)
	}

	docs, err := decodeAll[ReactionDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return reactionDocumentsToModels(docs), nil
}

// ReactionsByUsername resolves the username via the user directory first.
func (m *MongoDB) ReactionsByUsername(ctx context.Context, username string, polarity models.Polarity) ([]*models.Reaction, error) {
	author, err := m.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return m.ReactionsByAuthor(ctx, author.ID, polarity)
}

// ReactionsByFreet resolves the freet handle first, then queries one polarity
// partition by its id.
func (m *MongoDB) ReactionsByFreet(ctx context.Context, freetID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error) {
	freet, err := m.GetFreet(ctx, freetID)
	if err != nil {
		return nil, err
	}

	cursor, err := m.Reactions.Find(ctx, bson.M{"freetId": freet.ID, "dislike": polarity.IsDislike()})
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions by freet: %v", err)
	}

	docs, err := decodeAll[ReactionDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return reactionDocumentsToModels(docs), nil
}

// ReactionByAuthorAndFreet returns the reactions of one polarity a user left
// on one freet.
func (m *MongoDB) ReactionByAuthorAndFreet(ctx context.Context, authorID, freetID primitive.ObjectID, polarity models.Polarity) ([]*models.Reaction, error) {
	cursor, err := m.Reactions.Find(ctx, bson.M{
		"authorId": authorID,
		"freetId":  freetID,
		"dislike":  polarity.IsDislike(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions by author and freet: %v", err)
	}

	docs, err := decodeAll[ReactionDocument](ctx, cursor)
	if err != nil {
		return nil, err
	}
	return reactionDocumentsToModels(docs), nil
}

// DeleteReaction removes a reaction from one polarity partition. Returns
// whether a delete occurred.
func (m *MongoDB) DeleteReaction(ctx context.Context, id primitive.ObjectID, polarity models.Polarity) (bool, error) {
	result, err := m.Reactions.DeleteOne(ctx, bson.M{"_id": id, "dislike": polarity.IsDislike()})
	if err != nil {
		return false, fmt.Errorf("failed to delete reaction: %v", err)
	}
	return result.DeletedCount > 0, nil
}

// DeleteReactionsByAuthor bulk-removes one polarity partition of an author's
// reactions. Used when a user account is deleted.
func (m *MongoDB) DeleteReactionsByAuthor(ctx context.Context, authorID primitive.ObjectID, polarity models.Polarity) error {
	_, err := m.Reactions.DeleteMany(ctx, bson.M{"authorId": authorID, "dislike": polarity.IsDislike()})
	if err != nil {
		return fmt.Errorf("failed to delete reactions by author: %v", err)
	}
	return nil
}

// CountReactionsOnFreet is a derived count over ReactionsByFreet, not a
// maintained counter. Duplicate reactions by one author count separately.
func (m *MongoDB) CountReactionsOnFreet(ctx context.Context, freetID primitive.ObjectID, polarity models.Polarity) (int, error) {
	reactions, err := m.ReactionsByFreet(ctx, freetID, polarity)
	if err != nil {
		return 0, err
	}
	return len(reactions), nil
}

// EnsureReactionIndexes creates required indexes for the reactions collection
func (m *MongoDB) EnsureReactionIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "freetId", Value: 1},
				{Key: "dislike", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "authorId", Value: 1},
				{Key: "dislike", Value: 1},
			},
		},
	}

	_, err := m.Reactions.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create reaction indexes: %v", err)
	}

	return nil
}
